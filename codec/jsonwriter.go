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
	"math"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var (
	jsonCompactAPI = jsoniter.Config{EscapeHTML: false}.Froze()
	jsonPrettyAPI  = jsoniter.Config{EscapeHTML: false, IndentionStep: 2}.Froze()
)

// jsonWriter is a Writer that writes JSON through a json-iterator stream.
//
// Containers are opened lazily so that empty ones come out as [] and {}
// rather than as a bracket pair split across lines.
type jsonWriter struct {
	writer
	stream *jsoniter.Stream

	counts   []int // entries written so far, one per open list, struct or map
	key      *string
	wroteTop bool
}

// NewJSONWriter returns a new compact JSON writer.
func NewJSONWriter(out io.Writer) Writer {
	return NewJSONWriterOpts(out, 0)
}

// NewJSONWriterOpts returns a new JSON writer with the given options.
// TextWriterPretty indents nested values by two spaces.
func NewJSONWriterOpts(out io.Writer, opts TextWriterOpts) Writer {
	api := jsonCompactAPI
	if opts&TextWriterPretty != 0 {
		api = jsonPrettyAPI
	}
	return &jsonWriter{
		stream: jsoniter.NewStream(api, out, 512),
	}
}

// WriteNull writes null.
func (w *jsonWriter) WriteNull() error {
	return w.writeScalar("Writer.WriteNull", nil, w.stream.WriteNil)
}

// WriteBool writes a boolean value.
func (w *jsonWriter) WriteBool(val bool) error {
	return w.writeScalar("Writer.WriteBool",
		func() string { return strconv.FormatBool(val) },
		func() { w.stream.WriteBool(val) })
}

// WriteInt writes an integer value.
func (w *jsonWriter) WriteInt(val int64) error {
	return w.writeScalar("Writer.WriteInt",
		func() string { return strconv.FormatInt(val, 10) },
		func() { w.stream.WriteInt64(val) })
}

// WriteUint writes an unsigned integer value.
func (w *jsonWriter) WriteUint(val uint64) error {
	return w.writeScalar("Writer.WriteUint",
		func() string { return strconv.FormatUint(val, 10) },
		func() { w.stream.WriteUint64(val) })
}

// WriteFloat32 writes a 32-bit floating-point value.
func (w *jsonWriter) WriteFloat32(val float32) error {
	if err := w.checkFinite("Writer.WriteFloat32", float64(val)); err != nil {
		return err
	}
	return w.writeScalar("Writer.WriteFloat32",
		func() string { return strconv.FormatFloat(float64(val), 'g', -1, 32) },
		func() { w.stream.WriteFloat32(val) })
}

// WriteFloat writes a 64-bit floating-point value.
func (w *jsonWriter) WriteFloat(val float64) error {
	if err := w.checkFinite("Writer.WriteFloat", val); err != nil {
		return err
	}
	return w.writeScalar("Writer.WriteFloat",
		func() string { return strconv.FormatFloat(val, 'g', -1, 64) },
		func() { w.stream.WriteFloat64(val) })
}

// WriteString writes a string.
func (w *jsonWriter) WriteString(val string) error {
	return w.writeScalar("Writer.WriteString",
		func() string { return val },
		func() { w.stream.WriteString(val) })
}

// BeginList begins writing an array. JSON arrays carry no length, so n is
// only a hint.
func (w *jsonWriter) BeginList(n int) error {
	if w.err == nil {
		w.err = w.begin("Writer.BeginList", ctxInList)
	}
	return w.err
}

// EndList finishes writing an array.
func (w *jsonWriter) EndList() error {
	if w.err == nil {
		w.err = w.end("Writer.EndList", ctxInList)
	}
	return w.err
}

// BeginStruct begins writing an object.
func (w *jsonWriter) BeginStruct() error {
	if w.err == nil {
		w.err = w.begin("Writer.BeginStruct", ctxInStruct)
	}
	return w.err
}

// EndStruct finishes writing an object.
func (w *jsonWriter) EndStruct() error {
	if w.err == nil {
		w.err = w.end("Writer.EndStruct", ctxInStruct)
	}
	return w.err
}

// BeginMap begins writing an object whose member names are stringified keys.
func (w *jsonWriter) BeginMap() error {
	if w.err == nil {
		w.err = w.begin("Writer.BeginMap", ctxInMap)
	}
	return w.err
}

// EndMap finishes writing a map.
func (w *jsonWriter) EndMap() error {
	if w.err == nil {
		w.err = w.end("Writer.EndMap", ctxInMap)
	}
	return w.err
}

// BeginOption begins a present optional value. JSON has no wrapper for it;
// the value is written in place.
func (w *jsonWriter) BeginOption() error {
	if w.err != nil {
		return w.err
	}
	if w.ctx.peek() == ctxInMap && w.needKey {
		w.err = &UsageError{"Writer.BeginOption", "map key must be a scalar"}
		return w.err
	}
	w.ctx.push(ctxInOption)
	return nil
}

// EndOption finishes a present optional value.
func (w *jsonWriter) EndOption() error {
	if w.err != nil {
		return w.err
	}
	if w.ctx.peek() != ctxInOption {
		w.err = &UsageError{"Writer.EndOption", "not in that kind of container"}
		return w.err
	}
	w.ctx.pop()
	return nil
}

// Finish flushes everything written so far.
func (w *jsonWriter) Finish() error {
	if w.err != nil {
		return w.err
	}
	if w.ctx.peek() != ctxAtTopLevel {
		return &UsageError{"Writer.Finish", "not at top level"}
	}
	w.err = w.flush()
	return w.err
}

// parent returns the innermost context that is not an option wrapper.
func (w *jsonWriter) parent() ctx {
	for i := len(w.ctx.arr) - 1; i >= 0; i-- {
		if c := w.ctx.arr[i]; c != ctxInOption {
			return c
		}
	}
	return ctxAtTopLevel
}

// writeScalar writes a scalar value, or records it as the pending key when
// a map is waiting for one.
func (w *jsonWriter) writeScalar(api string, key func() string, write func()) error {
	if w.err != nil {
		return w.err
	}

	if w.ctx.peek() == ctxInMap && w.needKey {
		if key == nil {
			w.err = &UsageError{api, "map key must not be null"}
			return w.err
		}
		k := key()
		w.key = &k
		w.needKey = false
		return nil
	}

	if w.err = w.beginValue(api); w.err != nil {
		return w.err
	}
	write()
	w.err = w.endValue()
	return w.err
}

func (w *jsonWriter) checkFinite(api string, val float64) error {
	if w.err != nil {
		return w.err
	}
	if math.IsNaN(val) || math.IsInf(val, 0) {
		w.err = &UsageError{api, fmt.Sprintf("JSON cannot represent %v", val)}
	}
	return w.err
}

// beginValue writes whatever has to precede a value in the current context:
// a separator, and a member name inside objects.
func (w *jsonWriter) beginValue(api string) error {
	switch w.parent() {
	case ctxInStruct:
		name, err := w.takeFieldName(api)
		if err != nil {
			return err
		}
		w.separate()
		w.stream.WriteObjectField(name)

	case ctxInMap:
		if w.key == nil {
			return &UsageError{api, "map key not set"}
		}
		w.separate()
		w.stream.WriteObjectField(*w.key)
		w.key = nil

	case ctxInList:
		w.separate()

	default:
		// At the top level, values are separated by newlines.
		if w.wroteTop {
			w.stream.WriteRaw("\n")
		}
	}
	return nil
}

// separate opens the enclosing container on its first entry and writes a
// comma before every later one.
func (w *jsonWriter) separate() {
	i := len(w.counts) - 1
	if w.counts[i] == 0 {
		if w.parent() == ctxInList {
			w.stream.WriteArrayStart()
		} else {
			w.stream.WriteObjectStart()
		}
	} else {
		w.stream.WriteMore()
	}
	w.counts[i]++
}

// endValue finishes the process of writing a value.
func (w *jsonWriter) endValue() error {
	if w.stream.Error != nil {
		return &IOError{w.stream.Error}
	}

	switch w.parent() {
	case ctxAtTopLevel:
		w.wroteTop = true
		return w.flush()
	case ctxInMap:
		w.needKey = true
	}
	return nil
}

// begin starts writing a container of the given type.
func (w *jsonWriter) begin(api string, c ctx) error {
	if w.ctx.peek() == ctxInMap && w.needKey {
		return &UsageError{api, "map key must be a scalar"}
	}
	if err := w.beginValue(api); err != nil {
		return err
	}

	w.ctx.push(c)
	w.counts = append(w.counts, 0)
	w.needKey = c == ctxInMap
	return nil
}

// end finishes writing a container of the given type.
func (w *jsonWriter) end(api string, c ctx) error {
	if err := w.checkEnd(api, c); err != nil {
		return err
	}

	i := len(w.counts) - 1
	switch {
	case w.counts[i] == 0 && c == ctxInList:
		w.stream.WriteEmptyArray()
	case w.counts[i] == 0:
		w.stream.WriteEmptyObject()
	case c == ctxInList:
		w.stream.WriteArrayEnd()
	default:
		w.stream.WriteObjectEnd()
	}

	w.counts = w.counts[:i]
	w.ctx.pop()
	w.clear()
	return w.endValue()
}

func (w *jsonWriter) flush() error {
	if err := w.stream.Flush(); err != nil {
		return &IOError{err}
	}
	return nil
}
