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

package codec

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeToString(t *testing.T) {
	for i := NoType; i <= MapType+1; i++ {
		assert.NotEmpty(t, i.String(), fmt.Sprintf("type %d", i))
	}
	assert.Equal(t, "<unknown type 10>", Type(10).String())
}

func TestTypeClassification(t *testing.T) {
	test := func(typ Type, scalar, container bool) {
		t.Run(typ.String(), func(t *testing.T) {
			assert.Equal(t, scalar, IsScalar(typ))
			assert.Equal(t, container, IsContainer(typ))
		})
	}

	test(NoType, false, false)
	test(NullType, true, false)
	test(FloatType, true, false)
	test(SymbolType, true, false)
	test(ListType, false, true)
	test(StructType, false, true)
	test(MapType, false, true)
}
