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
	"fmt"
	"strconv"
	"strings"
)

// A Reader reads a stream of values in one textual format.
//
// The Next method advances the Reader to the next value in the stream, returning
// false at the end of the current container or stream, or on error. Type and the
// various Value methods describe the current value. StepIn and StepOut move into
// and out of containers.
//
//	r := NewJSONReader([]byte(`{"width": 33.45, "height": 12.35}`))
//	for r.Next() {
//		if r.Type() == StructType {
//			r.StepIn()
//			for r.Next() {
//				v, _ := r.Float32Value()
//				fmt.Println(r.FieldName(), v)
//			}
//			r.StepOut()
//		}
//	}
//	if err := r.Err(); err != nil {
//		log.Fatal(err)
//	}
type Reader interface {
	// Next advances the Reader to the next value in the current container,
	// returning false at the end of the container or on error. A container
	// that was not stepped into is skipped.
	Next() bool

	// Err returns the error that stopped the Reader, if any.
	Err() error

	// Type returns the type of the current value, or NoType if there is none.
	Type() Type

	// IsNull returns true if the current value is JSON null or RON None.
	IsNull() bool

	// FieldName returns the current value's field name inside a struct, or its
	// key in text form inside a map.
	FieldName() string

	// Pos returns where the current value starts.
	Pos() Position

	// BoolValue returns the current value as a bool.
	BoolValue() (bool, error)

	// Int64Value returns the current value as an int64.
	Int64Value() (int64, error)

	// Uint64Value returns the current value as a uint64.
	Uint64Value() (uint64, error)

	// Float32Value returns the current value, an int or a float, as the nearest
	// float32.
	Float32Value() (float32, error)

	// FloatValue returns the current value, an int or a float, as a float64.
	FloatValue() (float64, error)

	// StringValue returns the current string or symbol value.
	StringValue() (string, error)

	// StepIn steps in to the current container value. Next then iterates over
	// its contents.
	StepIn() error

	// StepOut steps out of the current container, skipping whatever is left in it.
	// The Reader is then positioned after the container.
	StepOut() error
}

// Expect returns a TypeMismatchError unless the reader's current value has
// the given type.
func Expect(r Reader, t Type) error {
	if r.Type() != t {
		return &TypeMismatchError{Expected: t.String(), Actual: r.Type().String(), Position: r.Pos()}
	}
	return nil
}

// A reader holds common implementation stuff for readers.
type reader struct {
	err error
	eof bool

	fieldName string
	valueType Type
	value     string
	pos       Position
}

// Err returns the current error.
func (r *reader) Err() error {
	return r.err
}

// Type returns the current value's type.
func (r *reader) Type() Type {
	return r.valueType
}

// IsNull returns true if the current value is null.
func (r *reader) IsNull() bool {
	return r.valueType == NullType
}

// FieldName returns the current value's field name.
func (r *reader) FieldName() string {
	return r.fieldName
}

// Pos returns the position of the current value.
func (r *reader) Pos() Position {
	return r.pos
}

// BoolValue returns the current value as a bool.
func (r *reader) BoolValue() (bool, error) {
	if r.valueType != BoolType {
		return false, r.mismatch("bool")
	}
	return r.value == "true", nil
}

// Int64Value returns the current value as an int64.
func (r *reader) Int64Value() (int64, error) {
	if r.valueType != IntType {
		return 0, r.mismatch("int")
	}
	i, err := strconv.ParseInt(r.value, 10, 64)
	if err != nil {
		return 0, r.outOfRange("int64", err)
	}
	return i, nil
}

// Uint64Value returns the current value as a uint64.
func (r *reader) Uint64Value() (uint64, error) {
	if r.valueType != IntType {
		return 0, r.mismatch("int")
	}
	if strings.HasPrefix(r.value, "-") {
		return 0, &TypeMismatchError{Expected: "unsigned int", Actual: r.value, Position: r.pos}
	}
	u, err := strconv.ParseUint(strings.TrimPrefix(r.value, "+"), 10, 64)
	if err != nil {
		return 0, r.outOfRange("uint64", err)
	}
	return u, nil
}

// Float32Value returns the current value as a float32.
func (r *reader) Float32Value() (float32, error) {
	f, err := r.parseFloat(32)
	return float32(f), err
}

// FloatValue returns the current value as a float64.
func (r *reader) FloatValue() (float64, error) {
	return r.parseFloat(64)
}

func (r *reader) parseFloat(bitSize int) (float64, error) {
	if r.valueType != FloatType && r.valueType != IntType {
		return 0, r.mismatch("float")
	}
	f, err := strconv.ParseFloat(r.value, bitSize)
	if err != nil {
		return 0, r.outOfRange(fmt.Sprintf("float%v", bitSize), err)
	}
	return f, nil
}

// StringValue returns the current value as a string.
func (r *reader) StringValue() (string, error) {
	if r.valueType != StringType && r.valueType != SymbolType {
		return "", r.mismatch("string")
	}
	return r.value, nil
}

func (r *reader) mismatch(expected string) error {
	return &TypeMismatchError{Expected: expected, Actual: r.valueType.String(), Position: r.pos}
}

func (r *reader) outOfRange(expected string, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return &TypeMismatchError{Expected: expected, Actual: r.value + " (out of range)", Position: r.pos}
	}
	return &TypeMismatchError{Expected: expected, Actual: r.value, Position: r.pos}
}

func (r *reader) clear() {
	r.fieldName = ""
	r.valueType = NoType
	r.value = ""
}
