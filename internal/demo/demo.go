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

// Package demo runs the Point round trip through each codec format: encode,
// print, save a copy under the data directory, decode and print again.
package demo

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/Michael-R-R/serde-serialization-example/codec"
	"github.com/Michael-R-R/serde-serialization-example/geom"
)

// Config controls where the round trip saves its output and which formats it runs.
type Config struct {
	// DataDir is the directory serialized copies are written to, relative to
	// the working directory. It is created if missing.
	DataDir string

	// Formats are run in order.
	Formats []codec.Format
}

// DefaultConfig returns a Config that saves to ./data and runs JSON, then RON.
func DefaultConfig() Config {
	return Config{
		DataDir: "data",
		Formats: codec.Formats,
	}
}

// A Pipeline round-trips Points. Human-readable output goes to out; problems
// that do not stop the round trip go to the logger.
type Pipeline struct {
	cfg Config
	fs  afero.Fs
	log *zap.Logger
	out io.Writer
}

// NewPipeline creates a Pipeline saving its copies to fs.
func NewPipeline(cfg Config, fs afero.Fs, log *zap.Logger, out io.Writer) *Pipeline {
	return &Pipeline{
		cfg: cfg,
		fs:  fs,
		log: log,
		out: out,
	}
}

// Run round-trips pt through every configured format, returning the decoded
// Points in the same order.
func (p *Pipeline) Run(pt geom.Point) ([]geom.Point, error) {
	p.log.Info("starting round trip",
		zap.Strings("formats", lo.Map(p.cfg.Formats, func(f codec.Format, _ int) string { return f.String() })),
		zap.String("dataDir", p.cfg.DataDir))

	decoded := make([]geom.Point, 0, len(p.cfg.Formats))
	for _, f := range p.cfg.Formats {
		d, err := p.RoundTrip(f, pt)
		if err != nil {
			return nil, err
		}
		decoded = append(decoded, d)
	}
	return decoded, nil
}

// RoundTrip encodes pt in the given format, prints and saves the text, then
// decodes it and prints the result. Failing to save is logged and otherwise
// ignored.
func (p *Pipeline) RoundTrip(f codec.Format, pt geom.Point) (geom.Point, error) {
	blob, err := f.MarshalPretty(pt)
	if err != nil {
		return geom.Point{}, errors.Wrapf(err, "failed to serialize %v", f)
	}
	fmt.Fprintf(p.out, "%v Serialized: %s\n", f, blob)

	p.save(f, blob)

	var decoded geom.Point
	if err := f.Unmarshal(blob, &decoded); err != nil {
		return geom.Point{}, errors.Wrapf(err, "failed to deserialize %v", f)
	}
	fmt.Fprintf(p.out, "%v Deserialized: %v\n\n", f, decoded)

	return decoded, nil
}

// Load decodes the copy saved by an earlier round trip in the given format.
func (p *Pipeline) Load(f codec.Format) (geom.Point, error) {
	path := p.path(f)
	blob, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return geom.Point{}, errors.Wrapf(err, "failed to read %v", path)
	}

	var pt geom.Point
	if err := f.Unmarshal(blob, &pt); err != nil {
		return geom.Point{}, errors.Wrapf(err, "failed to deserialize %v", path)
	}
	return pt, nil
}

func (p *Pipeline) path(f codec.Format) string {
	return filepath.Join(p.cfg.DataDir, "data."+f.Ext())
}

// save writes blob to the data directory, best effort.
func (p *Pipeline) save(f codec.Format, blob []byte) {
	path := p.path(f)

	if err := p.fs.MkdirAll(p.cfg.DataDir, 0o755); err != nil {
		p.log.Warn("failed to create data directory", zap.String("dir", p.cfg.DataDir), zap.Error(err))
		return
	}
	if err := afero.WriteFile(p.fs, path, blob, 0o644); err != nil {
		p.log.Warn("failed to save serialized data", zap.String("path", path), zap.Error(err))
		return
	}
	p.log.Debug("saved serialized data", zap.String("path", path), zap.Int("bytes", len(blob)))
}
