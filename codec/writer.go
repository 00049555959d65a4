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

// A Writer writes a stream of values in one textual format.
//
// The various Write methods write atomic values to the current output stream. The
// Begin methods begin writing a list, struct, map or option respectively. Subsequent
// calls to Write will write values inside of the container until a matching
// End method is called.
//
//	var w Writer
//	w.BeginList(2)
//	{
//		w.WriteFloat32(1.5)
//		w.WriteFloat32(2.5)
//	}
//	w.EndList()
//
// When writing values inside a struct, the FieldName method must be called before
// each value to set the value's field name.
//
//	var w Writer
//	w.BeginStruct()
//	{
//		w.FieldName("width")
//		w.WriteFloat32(33.45)
//		w.FieldName("height")
//		w.WriteFloat32(12.35)
//	}
//	w.EndStruct()
//
// Inside a map, values alternate between keys and values, starting with a key.
//
//	w.BeginMap()
//	{
//		w.WriteUint(1)
//		w.WriteString("one")
//	}
//	w.EndMap()
//
// Implementations remember the first error, no-op subsequent calls, and return
// that error again. This lets you keep code a bit cleaner by only checking the
// return value of the final method call (generally Finish).
type Writer interface {
	// FieldName sets the field name for the next value written.
	FieldName(name string) error

	// WriteNull writes an absent value: JSON null, RON None.
	WriteNull() error

	// WriteBool writes a boolean value.
	WriteBool(val bool) error

	// WriteInt writes a signed integer value.
	WriteInt(val int64) error

	// WriteUint writes an unsigned integer value.
	WriteUint(val uint64) error

	// WriteFloat32 writes a 32-bit floating-point value with just enough digits
	// to read back the same float32.
	WriteFloat32(val float32) error

	// WriteFloat writes a 64-bit floating-point value.
	WriteFloat(val float64) error

	// WriteString writes a string value.
	WriteString(val string) error

	// BeginList begins writing an ordered sequence. n is the number of elements
	// that will follow, or -1 if unknown.
	BeginList(n int) error

	// EndList finishes writing an ordered sequence.
	EndList() error

	// BeginStruct begins writing a record with named fields.
	BeginStruct() error

	// EndStruct finishes writing a record.
	EndStruct() error

	// BeginMap begins writing a map.
	BeginMap() error

	// EndMap finishes writing a map.
	EndMap() error

	// BeginOption begins writing a present optional value.
	BeginOption() error

	// EndOption finishes writing a present optional value.
	EndOption() error

	// Finish finishes writing values and flushes any buffered data.
	Finish() error

	// IsInStruct indicates if we are currently writing a struct or not.
	IsInStruct() bool
}

// TextWriterOpts defines a set of bit flag options for text writers.
type TextWriterOpts uint8

const (
	// TextWriterPretty enables pretty-printing mode.
	TextWriterPretty TextWriterOpts = 1
)

// A writer holds shared stuff for all writers.
type writer struct {
	ctx ctxstack
	err error

	fieldName *string

	// needKey is true inside a map when the next value written is a key.
	needKey bool
}

// FieldName sets the field name for the next value written.
// It may only be called while writing a struct.
func (w *writer) FieldName(name string) error {
	if w.err != nil {
		return w.err
	}
	if !w.IsInStruct() {
		w.err = &UsageError{"Writer.FieldName", "called when not writing a struct"}
		return w.err
	}

	w.fieldName = &name
	return nil
}

// IsInStruct returns true if we're currently writing a struct.
func (w *writer) IsInStruct() bool {
	return w.ctx.peek() == ctxInStruct
}

// Clear clears the field name after writing a value.
func (w *writer) clear() {
	w.fieldName = nil
}

// takeFieldName returns the pending field name, failing if none was set.
func (w *writer) takeFieldName(api string) (string, error) {
	if w.fieldName == nil {
		return "", &UsageError{api, "field name not set"}
	}
	name := *w.fieldName
	w.fieldName = nil
	return name, nil
}

// checkEnd verifies that the innermost open container is of the given kind.
func (w *writer) checkEnd(api string, c ctx) error {
	if w.ctx.peek() != c {
		return &UsageError{api, "not in that kind of container"}
	}
	if c == ctxInMap && !w.needKey {
		return &UsageError{api, "map key written without a value"}
	}
	return nil
}
