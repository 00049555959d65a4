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
	"strconv"
)

// ronWriter is a Writer that writes Rusty Object Notation.
type ronWriter struct {
	writer
	out            io.Writer
	opts           TextWriterOpts
	needsSeparator bool
	emptyContainer bool
	indent         int

	// keys saves the needKey state of each enclosing map while a nested
	// container is open.
	keys []bool
}

// NewRONWriter returns a new compact RON writer.
func NewRONWriter(out io.Writer) Writer {
	return NewRONWriterOpts(out, 0)
}

// NewRONWriterOpts returns a new RON writer with the given options.
// TextWriterPretty puts each entry on its own line, indented by four spaces,
// with a trailing comma.
func NewRONWriterOpts(out io.Writer, opts TextWriterOpts) Writer {
	return &ronWriter{
		out:  ioWriter{out},
		opts: opts,
	}
}

// WriteNull writes None.
func (w *ronWriter) WriteNull() error {
	return w.writeValue("Writer.WriteNull", "None")
}

// WriteBool writes a boolean value.
func (w *ronWriter) WriteBool(val bool) error {
	return w.writeValue("Writer.WriteBool", strconv.FormatBool(val))
}

// WriteInt writes an integer value.
func (w *ronWriter) WriteInt(val int64) error {
	return w.writeValue("Writer.WriteInt", strconv.FormatInt(val, 10))
}

// WriteUint writes an unsigned integer value.
func (w *ronWriter) WriteUint(val uint64) error {
	return w.writeValue("Writer.WriteUint", strconv.FormatUint(val, 10))
}

// WriteFloat32 writes a 32-bit floating-point value.
func (w *ronWriter) WriteFloat32(val float32) error {
	return w.writeValue("Writer.WriteFloat32", formatFloat(float64(val), 32))
}

// WriteFloat writes a 64-bit floating-point value.
func (w *ronWriter) WriteFloat(val float64) error {
	return w.writeValue("Writer.WriteFloat", formatFloat(val, 64))
}

// WriteString writes a string.
func (w *ronWriter) WriteString(val string) error {
	if w.err != nil {
		return w.err
	}
	if w.err = w.beginValue("Writer.WriteString"); w.err != nil {
		return w.err
	}
	if w.err = writeQuotedString(val, w.out); w.err != nil {
		return w.err
	}
	w.err = w.endValue()
	return w.err
}

// BeginList begins writing a list.
func (w *ronWriter) BeginList(n int) error {
	if w.err == nil {
		w.err = w.begin("Writer.BeginList", ctxInList, '[')
	}
	return w.err
}

// EndList finishes writing a list.
func (w *ronWriter) EndList() error {
	if w.err == nil {
		w.err = w.end("Writer.EndList", ctxInList, ']')
	}
	return w.err
}

// BeginStruct begins writing an unnamed struct.
func (w *ronWriter) BeginStruct() error {
	if w.err == nil {
		w.err = w.begin("Writer.BeginStruct", ctxInStruct, '(')
	}
	return w.err
}

// EndStruct finishes writing a struct.
func (w *ronWriter) EndStruct() error {
	if w.err == nil {
		w.err = w.end("Writer.EndStruct", ctxInStruct, ')')
	}
	return w.err
}

// BeginMap begins writing a map.
func (w *ronWriter) BeginMap() error {
	if w.err == nil {
		w.err = w.begin("Writer.BeginMap", ctxInMap, '{')
	}
	return w.err
}

// EndMap finishes writing a map.
func (w *ronWriter) EndMap() error {
	if w.err == nil {
		w.err = w.end("Writer.EndMap", ctxInMap, '}')
	}
	return w.err
}

// BeginOption begins writing Some(...).
func (w *ronWriter) BeginOption() error {
	if w.err != nil {
		return w.err
	}
	if w.err = w.beginValue("Writer.BeginOption"); w.err != nil {
		return w.err
	}
	w.ctx.push(ctxInOption)
	w.err = writeRawString("Some(", w.out)
	return w.err
}

// EndOption finishes writing Some(...).
func (w *ronWriter) EndOption() error {
	if w.err != nil {
		return w.err
	}
	if w.ctx.peek() != ctxInOption {
		w.err = &UsageError{"Writer.EndOption", "not in that kind of container"}
		return w.err
	}
	if w.err = writeRawChar(')', w.out); w.err != nil {
		return w.err
	}
	w.ctx.pop()
	w.err = w.endValue()
	return w.err
}

// Finish finishes writing the current stream. Values written after it are
// separated from earlier ones by a newline.
func (w *ronWriter) Finish() error {
	if w.err != nil {
		return w.err
	}
	if w.ctx.peek() != ctxAtTopLevel {
		return &UsageError{"Writer.Finish", "not at top level"}
	}

	w.clear()
	return nil
}

func (w *ronWriter) pretty() bool {
	return w.opts&TextWriterPretty == TextWriterPretty
}

// writeValue writes a value that needs no escaping.
func (w *ronWriter) writeValue(api string, val string) error {
	if w.err != nil {
		return w.err
	}
	if w.err = w.beginValue(api); w.err != nil {
		return w.err
	}
	if w.err = writeRawString(val, w.out); w.err != nil {
		return w.err
	}
	w.err = w.endValue()
	return w.err
}

// beginValue writes out the separator, newline, indentation and field name
// that precede a value.
func (w *ronWriter) beginValue(api string) error {
	switch w.ctx.peek() {
	case ctxInOption:
		// The value goes straight inside Some(.
		return nil

	case ctxAtTopLevel:
		// At the top level, values are separated by newlines.
		if w.needsSeparator {
			return writeRawChar('\n', w.out)
		}
		return nil

	case ctxInMap:
		if !w.needKey {
			// A map value follows its key on the same line.
			return nil
		}
	}

	if w.needsSeparator {
		if err := writeRawChar(',', w.out); err != nil {
			return err
		}
	}

	if w.pretty() {
		if err := writeRawChar('\n', w.out); err != nil {
			return err
		}
		if err := w.writeIndent(); err != nil {
			return err
		}
	}

	if w.IsInStruct() {
		return w.writeFieldName(api)
	}
	return nil
}

// writeFieldName writes the pending field name and its colon.
func (w *ronWriter) writeFieldName(api string) error {
	name, err := w.takeFieldName(api)
	if err != nil {
		return err
	}
	if !isIdentifier(name) {
		return &UsageError{api, fmt.Sprintf("field name %q is not an identifier", name)}
	}
	if err := writeRawString(name, w.out); err != nil {
		return err
	}
	return w.writeColon()
}

func (w *ronWriter) writeColon() error {
	sep := ":"
	if w.pretty() {
		sep = ": "
	}
	return writeRawString(sep, w.out)
}

// endValue finishes the process of writing a value.
func (w *ronWriter) endValue() error {
	w.needsSeparator = true
	w.emptyContainer = false

	if w.ctx.peek() == ctxInMap {
		if w.needKey {
			w.needKey = false
			return w.writeColon()
		}
		w.needKey = true
	}
	return nil
}

// begin starts writing a container of the given type.
func (w *ronWriter) begin(api string, t ctx, c byte) error {
	if err := w.beginValue(api); err != nil {
		return err
	}

	w.ctx.push(t)
	w.keys = append(w.keys, w.needKey)
	w.needKey = t == ctxInMap
	w.indent++
	w.needsSeparator = false
	w.emptyContainer = true

	return writeRawChar(c, w.out)
}

// end finishes writing a container of the given type.
func (w *ronWriter) end(api string, t ctx, c byte) error {
	if err := w.checkEnd(api, t); err != nil {
		return err
	}

	w.indent--

	if !w.emptyContainer && w.pretty() {
		if err := writeRawString(",\n", w.out); err != nil {
			return err
		}
		if err := w.writeIndent(); err != nil {
			return err
		}
	}

	if err := writeRawChar(c, w.out); err != nil {
		return err
	}

	w.clear()
	w.ctx.pop()
	w.needKey = w.keys[len(w.keys)-1]
	w.keys = w.keys[:len(w.keys)-1]
	return w.endValue()
}

// writeIndent writes four spaces per level of nesting.
func (w *ronWriter) writeIndent() error {
	for i := 0; i < w.indent; i++ {
		if err := writeRawString("    ", w.out); err != nil {
			return err
		}
	}
	return nil
}
