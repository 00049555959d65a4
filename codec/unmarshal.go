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
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

var (
	// ErrNoInput is returned when there is no input to decode
	ErrNoInput = errors.New("codec: no input to decode")
)

// DecoderOpts holds bit-flag options for a Decoder.
type DecoderOpts uint

const (
	// DecodeDisallowUnknownFields makes input fields with no matching struct
	// field an error instead of being skipped.
	DecodeDisallowUnknownFields DecoderOpts = 1
)

// Unmarshaler is the interface implemented by types that can unmarshal themselves.
// UnmarshalCodec is called with the Reader positioned on the value. Paths in
// the schema errors it returns are taken as relative to that value, e.g. [1]
// for its second element, and are prefixed with the value's own path.
type Unmarshaler interface {
	UnmarshalCodec(r Reader) error
}

// UnmarshalJSON unmarshals a single JSON value to the given object, which must
// be a non-nil pointer.
//
// Struct fields must all be present in the input, except those tagged
// `codec:"-"`, which are left zero, those tagged omitempty or default, and
// pointers. Input fields with no matching struct field are ignored. Numbers
// decode into any numeric type they fit in, and map keys are parsed from
// their text into the map's key type.
//
//	  Go type                              JSON / RON
//	--------------------------           ---------------
//	  nil pointer, interface{}             null, None
//	  bool, interface{}                    bool
//	  ints, uints, floats, interface{}     int
//	  float32, float64, interface{}        float
//	  string, interface{}                  string, RON identifier
//	  slice, array, []interface{}          list, RON tuple
//	  struct, map, map[string]interface{}  object, RON struct, RON map
func UnmarshalJSON(data []byte, v interface{}) error {
	return unmarshal(NewJSONReader(data), v)
}

// UnmarshalRON unmarshals a single RON value to the given object.
func UnmarshalRON(data []byte, v interface{}) error {
	return unmarshal(NewRONReader(data), v)
}

func unmarshal(r Reader, v interface{}) error {
	if err := NewDecoder(r).DecodeTo(v); err != nil {
		return err
	}
	if r.Next() {
		return &SyntaxError{"unexpected value after top-level value", r.Pos()}
	}
	return r.Err()
}

// UnmarshalFrom unmarshals the next value from a reader to the given object.
func UnmarshalFrom(r Reader, v interface{}) error {
	return NewDecoder(r).DecodeTo(v)
}

// A Decoder decodes go values from a Reader.
type Decoder struct {
	r    Reader
	opts DecoderOpts
	path []string
}

// NewDecoder creates a new decoder.
func NewDecoder(r Reader) *Decoder {
	return NewDecoderOpts(r, 0)
}

// NewDecoderOpts creates a new decoder with the specified options.
func NewDecoderOpts(r Reader, opts DecoderOpts) *Decoder {
	return &Decoder{
		r:    r,
		opts: opts,
	}
}

// Decode decodes a value from the underlying reader without any expectations
// about what it's going to get. Structs and maps become map[string]interface{}s,
// lists become []interface{}s.
func (d *Decoder) Decode() (interface{}, error) {
	if !d.r.Next() {
		if d.r.Err() != nil {
			return nil, d.r.Err()
		}
		return nil, ErrNoInput
	}

	return d.decode()
}

// Helper form of Decode for when you've already called Next.
func (d *Decoder) decode() (interface{}, error) {
	switch d.r.Type() {
	case NullType:
		return nil, nil

	case BoolType:
		return d.r.BoolValue()

	case IntType:
		if i, err := d.r.Int64Value(); err == nil {
			return i, nil
		}
		if u, err := d.r.Uint64Value(); err == nil {
			return u, nil
		}
		return d.r.FloatValue()

	case FloatType:
		return d.r.FloatValue()

	case StringType, SymbolType:
		return d.r.StringValue()

	case StructType, MapType:
		return d.decodeMap()

	case ListType:
		return d.decodeSlice()

	default:
		panic("cannot recognize the Type")
	}
}

// decodeMap decodes a struct or map to a map[string]interface{}.
func (d *Decoder) decodeMap() (map[string]interface{}, error) {
	if err := d.r.StepIn(); err != nil {
		return nil, err
	}

	result := map[string]interface{}{}

	for d.r.Next() {
		name := d.r.FieldName()
		value, err := d.decode()
		if err != nil {
			return nil, err
		}
		result[name] = value
	}

	if err := d.r.StepOut(); err != nil {
		return nil, err
	}

	return result, nil
}

// decodeSlice decodes a list to a go slice.
func (d *Decoder) decodeSlice() ([]interface{}, error) {
	if err := d.r.StepIn(); err != nil {
		return nil, err
	}

	result := []interface{}{}

	for d.r.Next() {
		value, err := d.decode()
		if err != nil {
			return nil, err
		}
		result = append(result, value)
	}

	if err := d.r.StepOut(); err != nil {
		return nil, err
	}

	return result, nil
}

// DecodeTo decodes a value from the underlying reader into the value provided.
func (d *Decoder) DecodeTo(v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return &UsageError{"Decoder.DecodeTo", "v must be a non-nil pointer"}
	}

	if !d.r.Next() {
		if d.r.Err() != nil {
			return d.r.Err()
		}
		return ErrNoInput
	}

	d.path = d.path[:0]
	return d.decodeTo(rv)
}

var unmarshalerType = reflect.TypeOf((*Unmarshaler)(nil)).Elem()

// decodeTo decodes the current value into v, filling the current path into
// any schema error that does not have one yet.
func (d *Decoder) decodeTo(v reflect.Value) error {
	err := d.decodeValueTo(v)
	if err == nil {
		return nil
	}

	path := d.pathString()
	switch e := err.(type) {
	case *MissingFieldError:
		if e.Path == "" {
			e.Path = path
		}
	case *UnknownFieldError:
		if e.Path == "" {
			e.Path = path
		}
	case *TypeMismatchError:
		if e.Path == "" {
			e.Path = path
		}
	case *InvalidLengthError:
		if e.Path == "" {
			e.Path = path
		}
	}
	return err
}

// relocate prefixes the current path onto the path of a schema error from an
// Unmarshaler, whose paths are relative to the value it decodes.
func (d *Decoder) relocate(err error) error {
	if err == nil {
		return nil
	}

	path := d.pathString()
	switch e := err.(type) {
	case *MissingFieldError:
		e.Path = joinPath(path, e.Path)
	case *UnknownFieldError:
		e.Path = joinPath(path, e.Path)
	case *TypeMismatchError:
		e.Path = joinPath(path, e.Path)
	case *InvalidLengthError:
		e.Path = joinPath(path, e.Path)
	}
	return err
}

// joinPath appends a relative path such as [0] or x to base.
func joinPath(base, rel string) string {
	switch {
	case rel == "":
		return base
	case base == "" || strings.HasPrefix(rel, "["):
		return base + rel
	default:
		return base + "." + rel
	}
}

func (d *Decoder) decodeValueTo(v reflect.Value) error {
	if !v.IsValid() {
		// Don't actually have anywhere to put this value; skip it.
		return nil
	}

	isNull := d.r.IsNull()
	v = indirect(v, isNull)
	if isNull {
		switch v.Kind() {
		case reflect.Ptr, reflect.Interface:
			v.Set(reflect.Zero(v.Type()))
			return nil
		}
		return d.mismatch(v)
	}

	t := v.Type()
	if t.Kind() != reflect.Ptr && v.CanAddr() && reflect.PtrTo(t).Implements(unmarshalerType) {
		return d.relocate(v.Addr().Interface().(Unmarshaler).UnmarshalCodec(d.r))
	}

	switch d.r.Type() {
	case BoolType:
		return d.decodeBoolTo(v)

	case IntType:
		return d.decodeIntTo(v)

	case FloatType:
		return d.decodeFloatTo(v)

	case StringType, SymbolType:
		return d.decodeStringTo(v)

	case StructType, MapType:
		return d.decodeStructTo(v)

	case ListType:
		return d.decodeSliceTo(v)

	default:
		panic("cannot recognize the Type")
	}
}

// mismatch reports that the current value cannot be decoded into v.
func (d *Decoder) mismatch(v reflect.Value) error {
	return &TypeMismatchError{
		Path:     d.pathString(),
		Expected: v.Type().String(),
		Actual:   d.r.Type().String(),
		Position: d.r.Pos(),
	}
}

func isEmptyInterface(v reflect.Value) bool {
	return v.Kind() == reflect.Interface && v.NumMethod() == 0
}

func (d *Decoder) decodeBoolTo(v reflect.Value) error {
	val, err := d.r.BoolValue()
	if err != nil {
		return err
	}

	switch {
	case v.Kind() == reflect.Bool:
		// Too easy.
		v.SetBool(val)
		return nil

	case isEmptyInterface(v):
		v.Set(reflect.ValueOf(val))
		return nil
	}
	return d.mismatch(v)
}

func (d *Decoder) decodeIntTo(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		val, err := d.r.Int64Value()
		if err != nil {
			return err
		}
		if v.OverflowInt(val) {
			return d.overflow(v)
		}
		v.SetInt(val)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		val, err := d.r.Uint64Value()
		if err != nil {
			return err
		}
		if v.OverflowUint(val) {
			return d.overflow(v)
		}
		v.SetUint(val)
		return nil

	case reflect.Float32, reflect.Float64:
		return d.decodeFloatTo(v)

	case reflect.Interface:
		if v.NumMethod() == 0 {
			val, err := d.decode()
			if err != nil {
				return err
			}
			v.Set(reflect.ValueOf(val))
			return nil
		}
	}
	return d.mismatch(v)
}

func (d *Decoder) overflow(v reflect.Value) error {
	return &TypeMismatchError{
		Path:     d.pathString(),
		Expected: v.Type().String(),
		Actual:   "int out of range",
		Position: d.r.Pos(),
	}
}

func (d *Decoder) decodeFloatTo(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Float32:
		val, err := d.r.Float32Value()
		if err != nil {
			return err
		}
		v.SetFloat(float64(val))
		return nil

	case reflect.Float64:
		val, err := d.r.FloatValue()
		if err != nil {
			return err
		}
		v.SetFloat(val)
		return nil

	case reflect.Interface:
		if v.NumMethod() == 0 {
			val, err := d.r.FloatValue()
			if err != nil {
				return err
			}
			v.Set(reflect.ValueOf(val))
			return nil
		}
	}
	return d.mismatch(v)
}

func (d *Decoder) decodeStringTo(v reflect.Value) error {
	val, err := d.r.StringValue()
	if err != nil {
		return err
	}

	switch {
	case v.Kind() == reflect.String:
		v.SetString(val)
		return nil

	case isEmptyInterface(v):
		v.Set(reflect.ValueOf(val))
		return nil
	}
	return d.mismatch(v)
}

func (d *Decoder) decodeStructTo(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Struct:
		return d.decodeStructToStruct(v)

	case reflect.Map:
		return d.decodeStructToMap(v)

	case reflect.Interface:
		if v.NumMethod() == 0 {
			m, err := d.decodeMap()
			if err != nil {
				return err
			}
			v.Set(reflect.ValueOf(m))
			return nil
		}
	}
	return d.mismatch(v)
}

// decodeStructToStruct decodes into a struct, which is reset first so that
// transient and absent optional fields end up zero.
func (d *Decoder) decodeStructToStruct(v reflect.Value) error {
	fields := fieldsFor(v.Type())
	v.Set(reflect.Zero(v.Type()))

	if err := d.r.StepIn(); err != nil {
		return err
	}

	seen := make([]bool, len(fields))
	for d.r.Next() {
		name := d.r.FieldName()
		_, i, ok := lo.FindIndexOf(fields, func(f field) bool { return f.name == name })
		if !ok {
			if d.opts&DecodeDisallowUnknownFields != 0 {
				return &UnknownFieldError{Path: d.pathString(), Field: name}
			}
			continue
		}
		seen[i] = true

		d.push(name)
		err := d.decodeFieldTo(findSubvalue(v, &fields[i]), &fields[i])
		d.pop()
		if err != nil {
			return err
		}
	}

	if err := d.r.StepOut(); err != nil {
		return err
	}

	missing := lo.Filter(fields, func(f field, i int) bool {
		return !seen[i] && !f.optional
	})
	if len(missing) > 0 {
		return &MissingFieldError{Path: d.pathString(), Field: missing[0].name}
	}
	return nil
}

// decodeFieldTo decodes a struct field, through its remote twin if it has one.
func (d *Decoder) decodeFieldTo(v reflect.Value, f *field) error {
	if f.remote == "" {
		return d.decodeTo(v)
	}

	r, err := remoteFor("Decoder.DecodeTo", f)
	if err != nil {
		return err
	}

	twin := reflect.New(r.twin).Elem()
	if err := d.decodeTo(twin); err != nil {
		return err
	}
	v.Set(r.from(twin))
	return nil
}

func findSubvalue(v reflect.Value, f *field) reflect.Value {
	for _, i := range f.path {
		v = v.Field(i)
	}
	return v
}

// decodeStructToMap decodes into a map, parsing each key from its text. The
// map is replaced rather than merged into.
func (d *Decoder) decodeStructToMap(v reflect.Value) error {
	t := v.Type()
	if _, err := parseKey(t.Key(), ""); errors.Is(err, errBadKeyType) {
		return d.mismatch(v)
	}

	v.Set(reflect.MakeMap(t))

	if err := d.r.StepIn(); err != nil {
		return err
	}

	for d.r.Next() {
		name := d.r.FieldName()

		d.push("[" + name + "]")
		kv, err := parseKey(t.Key(), name)
		if err != nil {
			err = &TypeMismatchError{
				Path:     d.pathString(),
				Expected: t.Key().String() + " key",
				Actual:   strconv.Quote(name),
				Position: d.r.Pos(),
			}
			d.pop()
			return err
		}

		subv := reflect.New(t.Elem()).Elem()
		err = d.decodeTo(subv)
		d.pop()
		if err != nil {
			return err
		}

		v.SetMapIndex(kv, subv)
	}

	return d.r.StepOut()
}

var errBadKeyType = errors.New("codec: unsupported map key type")

// parseKey parses the text of a map key into a value of type t.
func parseKey(t reflect.Type, s string) (reflect.Value, error) {
	kv := reflect.New(t).Elem()

	switch t.Kind() {
	case reflect.String:
		kv.SetString(s)

	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return kv, err
		}
		kv.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 10, t.Bits())
		if err != nil {
			return kv, err
		}
		kv.SetInt(i)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, t.Bits())
		if err != nil {
			return kv, err
		}
		kv.SetUint(u)

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, t.Bits())
		if err != nil {
			return kv, err
		}
		kv.SetFloat(f)

	default:
		return kv, errBadKeyType
	}
	return kv, nil
}

// decodeSliceTo decodes a list into a slice or array. Arrays must have
// exactly as many elements as the list.
func (d *Decoder) decodeSliceTo(v reflect.Value) error {
	k := v.Kind()

	// If all we know is we need an interface{}, decode an []interface{} with
	// types based on the value stream.
	if isEmptyInterface(v) {
		s, err := d.decodeSlice()
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(s))
		return nil
	}

	// Only other valid targets are arrays and slices.
	if k != reflect.Array && k != reflect.Slice {
		return d.mismatch(v)
	}

	if k == reflect.Slice {
		v.Set(reflect.MakeSlice(v.Type(), 0, 0))
	}

	if err := d.r.StepIn(); err != nil {
		return err
	}

	i := 0

	// Decode values into the array or slice.
	for d.r.Next() {
		if k == reflect.Slice {
			v.Set(reflect.Append(v, reflect.Zero(v.Type().Elem())))
		}

		if i < v.Len() {
			d.push("[" + strconv.Itoa(i) + "]")
			err := d.decodeTo(v.Index(i))
			d.pop()
			if err != nil {
				return err
			}
		}

		i++
	}

	if err := d.r.StepOut(); err != nil {
		return err
	}

	if k == reflect.Array && i != v.Len() {
		return &InvalidLengthError{Path: d.pathString(), Len: i, Expected: v.Type().String()}
	}
	return nil
}

func (d *Decoder) push(seg string) {
	d.path = append(d.path, seg)
}

func (d *Decoder) pop() {
	d.path = d.path[:len(d.path)-1]
}

// pathString renders the current path, e.g. my_map[1].x.
func (d *Decoder) pathString() string {
	sb := strings.Builder{}
	for i, seg := range d.path {
		if i > 0 && !strings.HasPrefix(seg, "[") {
			sb.WriteByte('.')
		}
		sb.WriteString(seg)
	}
	return sb.String()
}

// Dig in through any pointers to find the actual underlying value that we want
// to set. If wantPtr is false, the algorithm terminates at a non-ptr value (e.g.,
// if passed an *int, it returns the int it points to, allocating such an int if the
// pointer is currently nil). If wantPtr is true, it terminates on a pointer to that
// value (allowing said pointer to be set to nil, generally).
func indirect(v reflect.Value, wantPtr bool) reflect.Value {
	for {
		if v.Kind() == reflect.Interface && !v.IsNil() {
			e := v.Elem()
			if e.Kind() == reflect.Ptr && !e.IsNil() && (!wantPtr || e.Elem().Kind() == reflect.Ptr) {
				v = e
				continue
			}
		}

		if v.Kind() != reflect.Ptr {
			break
		}

		if v.Elem().Kind() != reflect.Ptr && wantPtr && v.CanSet() {
			break
		}

		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}

		v = v.Elem()
	}

	return v
}
