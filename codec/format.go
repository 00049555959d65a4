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
	"io"
	"strings"
)

// A Format is one of the textual formats this package reads and writes.
type Format uint8

const (
	// JSON is RFC 8259 JSON.
	JSON Format = iota
	// RON is Rusty Object Notation.
	RON
)

// Formats lists every supported Format.
var Formats = []Format{JSON, RON}

// String implements fmt.Stringer for Format.
func (f Format) String() string {
	switch f {
	case JSON:
		return "JSON"
	case RON:
		return "RON"
	default:
		return fmt.Sprintf("<unknown format %v>", uint8(f))
	}
}

// Ext returns the file extension for the format, without a dot.
func (f Format) Ext() string {
	switch f {
	case JSON:
		return "json"
	case RON:
		return "ron"
	default:
		return ""
	}
}

// NewWriter returns a Writer for the format.
func (f Format) NewWriter(out io.Writer, opts TextWriterOpts) Writer {
	if f == RON {
		return NewRONWriterOpts(out, opts)
	}
	return NewJSONWriterOpts(out, opts)
}

// NewReader returns a Reader over the given text in the format.
func (f Format) NewReader(in []byte) Reader {
	if f == RON {
		return NewRONReader(in)
	}
	return NewJSONReader(in)
}

// NewReaderFrom reads everything from in and returns a Reader over it.
func (f Format) NewReaderFrom(in io.Reader) (Reader, error) {
	bs, err := readAll(in)
	if err != nil {
		return nil, err
	}
	return f.NewReader(bs), nil
}

// Marshal marshals a value in the format, compactly.
func (f Format) Marshal(v interface{}) ([]byte, error) {
	if f == RON {
		return MarshalRON(v)
	}
	return MarshalJSON(v)
}

// MarshalPretty marshals a value in the format, pretty-printed.
func (f Format) MarshalPretty(v interface{}) ([]byte, error) {
	if f == RON {
		return MarshalRONPretty(v)
	}
	return MarshalJSONPretty(v)
}

// Unmarshal unmarshals a single value in the format.
func (f Format) Unmarshal(data []byte, v interface{}) error {
	return unmarshal(f.NewReader(data), v)
}

// ParseFormat returns the Format named by s, ignoring case, or by a file
// extension with or without its dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return JSON, nil
	case "ron":
		return RON, nil
	}
	return 0, &UsageError{"ParseFormat", fmt.Sprintf("unknown format %q", s)}
}
