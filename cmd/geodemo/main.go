/*
 * Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License").
 * You may not use this file except in compliance with the License.
 * A copy of the License is located at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * or in the "license" file accompanying this file. This file is distributed
 * on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either
 * express or implied. See the License for the specific language governing
 * permissions and limitations under the License.
 */

package main

import (
	"os"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/Michael-R-R/serde-serialization-example/geom"
	"github.com/Michael-R-R/serde-serialization-example/internal/demo"
)

// main round-trips the sample Point through JSON and RON, saving copies
// under ./data.
func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	if err := run(logger); err != nil {
		logger.Error("round trip failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(logger *zap.Logger) error {
	p := demo.NewPipeline(demo.DefaultConfig(), afero.NewOsFs(), logger, os.Stdout)
	_, err := p.Run(geom.NewSamplePoint())
	return err
}
