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
	"bytes"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
)

// EncoderOpts holds bit-flag options for an Encoder.
type EncoderOpts uint

const (
	// EncodeSortMaps instructs the encoder to write map keys in sorted order:
	// numerically for numeric keys, lexically for strings.
	EncodeSortMaps EncoderOpts = 1
)

// Marshaler is the interface implemented by types that can marshal themselves.
type Marshaler interface {
	MarshalCodec(w Writer) error
}

// MarshalJSON marshals a value to compact JSON.
//
// Go values map to JSON and RON as follows:
//
//	  Go type                          JSON              RON
//	----------------------------     ---------------   -------------------
//	  bool                             true              true
//	  ints, uints                      1                 1
//	  float32, float64                 1.5               1.5
//	  string                           "s"               "s"
//	  slice, array                     [1,2]             [1,2]
//	  struct                           {"a":1}           (a:1)
//	  map                              {"1":2}           {1:2}
//	  nil pointer                      null              None
//	  non-nil pointer                  value             Some(value)
//
// Struct fields are named by their `codec:"name"` tag, or by the Go field name
// if untagged. A field tagged `codec:"-"` is never written. Map keys must be
// strings, bools or numbers; maps are written with sorted keys.
func MarshalJSON(v interface{}) ([]byte, error) {
	return marshal(v, NewJSONWriter)
}

// MarshalJSONPretty marshals a value to JSON indented by two spaces.
func MarshalJSONPretty(v interface{}) ([]byte, error) {
	return marshal(v, func(out io.Writer) Writer {
		return NewJSONWriterOpts(out, TextWriterPretty)
	})
}

// MarshalRON marshals a value to compact RON.
func MarshalRON(v interface{}) ([]byte, error) {
	return marshal(v, NewRONWriter)
}

// MarshalRONPretty marshals a value to RON with one entry per line, indented
// by four spaces.
func MarshalRONPretty(v interface{}) ([]byte, error) {
	return marshal(v, func(out io.Writer) Writer {
		return NewRONWriterOpts(out, TextWriterPretty)
	})
}

func marshal(v interface{}, newWriter func(io.Writer) Writer) ([]byte, error) {
	buf := bytes.Buffer{}
	e := Encoder{
		w:    newWriter(&buf),
		opts: EncodeSortMaps,
	}

	if err := e.Encode(v); err != nil {
		return nil, err
	}
	if err := e.Finish(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// MarshalTo marshals the given value to the given writer. It does
// not call Finish, so is suitable for encoding values inside of
// a partially-constructed value.
func MarshalTo(w Writer, v interface{}) error {
	e := Encoder{
		w:    w,
		opts: EncodeSortMaps,
	}
	return e.Encode(v)
}

// An Encoder writes values to a Writer.
type Encoder struct {
	w    Writer
	opts EncoderOpts
}

// NewEncoder creates a new encoder.
func NewEncoder(w Writer) *Encoder {
	return NewEncoderOpts(w, 0)
}

// NewEncoderOpts creates a new encoder with the specified options.
func NewEncoderOpts(w Writer, opts EncoderOpts) *Encoder {
	return &Encoder{
		w:    w,
		opts: opts,
	}
}

// Encode marshals the given value, writing it to the underlying writer.
func (m *Encoder) Encode(v interface{}) error {
	return m.encodeValue(reflect.ValueOf(v))
}

// Finish finishes writing the current stream.
func (m *Encoder) Finish() error {
	return m.w.Finish()
}

var marshalerType = reflect.TypeOf((*Marshaler)(nil)).Elem()

// encodeValue recursively encodes a value.
func (m *Encoder) encodeValue(v reflect.Value) error {
	if !v.IsValid() {
		return m.w.WriteNull()
	}

	t := v.Type()
	if t.Kind() != reflect.Ptr && v.CanAddr() && reflect.PtrTo(t).Implements(marshalerType) {
		return v.Addr().Interface().(Marshaler).MarshalCodec(m.w)
	}
	if t.Implements(marshalerType) && (t.Kind() != reflect.Ptr || !v.IsNil()) {
		return v.Interface().(Marshaler).MarshalCodec(m.w)
	}

	switch t.Kind() {
	case reflect.Bool:
		return m.w.WriteBool(v.Bool())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return m.w.WriteInt(v.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return m.w.WriteUint(v.Uint())

	case reflect.Float32:
		return m.w.WriteFloat32(float32(v.Float()))

	case reflect.Float64:
		return m.w.WriteFloat(v.Float())

	case reflect.String:
		return m.w.WriteString(v.String())

	case reflect.Ptr:
		return m.encodePtr(v)

	case reflect.Interface:
		if v.IsNil() {
			return m.w.WriteNull()
		}
		return m.encodeValue(v.Elem())

	case reflect.Struct:
		return m.encodeStruct(v)

	case reflect.Map:
		return m.encodeMap(v)

	case reflect.Slice, reflect.Array:
		return m.encodeArray(v)

	default:
		return &UsageError{"Encoder.Encode", fmt.Sprintf("unsupported type: %v", t)}
	}
}

// encodePtr encodes a null if the pointer is nil, and otherwise encodes the
// value that the pointer is pointing to as a present option.
func (m *Encoder) encodePtr(v reflect.Value) error {
	if v.IsNil() {
		return m.w.WriteNull()
	}
	if err := m.w.BeginOption(); err != nil {
		return err
	}
	if err := m.encodeValue(v.Elem()); err != nil {
		return err
	}
	return m.w.EndOption()
}

// encodeMap encodes a map. A nil map is written as an empty one.
func (m *Encoder) encodeMap(v reflect.Value) error {
	keys, err := keysFor(v)
	if err != nil {
		return err
	}
	if m.opts&EncodeSortMaps != 0 {
		sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })
	}

	if err := m.w.BeginMap(); err != nil {
		return err
	}

	for _, key := range keys {
		if err := m.encodeValue(key.v); err != nil {
			return err
		}
		if err := m.encodeValue(v.MapIndex(key.v)); err != nil {
			return err
		}
	}

	return m.w.EndMap()
}

// A mapkey holds the reflective map key value as well as its sort key.
type mapkey struct {
	v reflect.Value
	s string
	f float64
}

func (k mapkey) less(o mapkey) bool {
	switch k.v.Kind() {
	case reflect.String, reflect.Bool:
		return k.s < o.s
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return k.v.Int() < o.v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return k.v.Uint() < o.v.Uint()
	default:
		return k.f < o.f
	}
}

// keysFor returns the keys for the given map, failing if they are not scalars.
func keysFor(v reflect.Value) ([]mapkey, error) {
	kt := v.Type().Key()
	switch kt.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
	default:
		return nil, &UsageError{"Encoder.Encode", fmt.Sprintf("unsupported map key type: %v", kt)}
	}

	keys := v.MapKeys()
	res := make([]mapkey, len(keys))
	for i, key := range keys {
		res[i] = mapkey{v: key}
		switch key.Kind() {
		case reflect.String:
			res[i].s = key.String()
		case reflect.Bool:
			res[i].s = strconv.FormatBool(key.Bool())
		case reflect.Float32, reflect.Float64:
			res[i].f = key.Float()
		}
	}
	return res, nil
}

// encodeArray encodes a slice or array as a list. A nil slice is written as
// an empty list.
func (m *Encoder) encodeArray(v reflect.Value) error {
	if err := m.w.BeginList(v.Len()); err != nil {
		return err
	}

	for i := 0; i < v.Len(); i++ {
		if err := m.encodeValue(v.Index(i)); err != nil {
			return err
		}
	}

	return m.w.EndList()
}

// encodeStruct encodes a struct, skipping transient fields.
func (m *Encoder) encodeStruct(v reflect.Value) error {
	fields := fieldsFor(v.Type())

	if err := m.w.BeginStruct(); err != nil {
		return err
	}

	for i := range fields {
		f := &fields[i]

		fv := v
		for _, i := range f.path {
			fv = fv.Field(i)
		}

		if f.omitEmpty && emptyValue(fv) {
			continue
		}

		if f.remote != "" {
			r, err := remoteFor("Encoder.Encode", f)
			if err != nil {
				return err
			}
			fv = r.to(fv)
		}

		if err := m.w.FieldName(f.name); err != nil {
			return err
		}
		if err := m.encodeValue(fv); err != nil {
			return err
		}
	}

	return m.w.EndStruct()
}

// emptyValue returns true if the given value is the empty value for its type.
func emptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}
