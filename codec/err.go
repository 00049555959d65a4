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

import "fmt"

// A Position is a 1-based line and column in the input text.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("line %v, column %v", p.Line, p.Column)
}

// A UsageError is returned when you use a Reader, Writer or struct tag in an
// inappropriate way.
type UsageError struct {
	API string
	Msg string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("codec: usage error in %v: %v", e.API, e.Msg)
}

// An IOError is returned when there is an error reading from or writing to an
// underlying io.Reader or io.Writer.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("codec: i/o error: %v", e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// A SyntaxError is returned when a Reader encounters text that is not well-formed
// in its grammar.
type SyntaxError struct {
	Msg string
	Position
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("codec: syntax error: %v (%v)", e.Msg, e.Position)
}

// A MissingFieldError is returned when a required struct field is absent from
// the input.
type MissingFieldError struct {
	Path  string
	Field string
}

func (e *MissingFieldError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("codec: missing field %v", e.Field)
	}
	return fmt.Sprintf("codec: missing field %v at %v", e.Field, e.Path)
}

// An UnknownFieldError is returned for input fields that have no matching
// struct field, when the Decoder was asked to disallow them.
type UnknownFieldError struct {
	Path  string
	Field string
}

func (e *UnknownFieldError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("codec: unknown field %v", e.Field)
	}
	return fmt.Sprintf("codec: unknown field %v at %v", e.Field, e.Path)
}

// A TypeMismatchError is returned when a value has the wrong shape for its
// destination, e.g. a string where a number was required.
type TypeMismatchError struct {
	Path     string
	Expected string
	Actual   string
	Position
}

func (e *TypeMismatchError) Error() string {
	path := e.Path
	if path == "" {
		path = "<root>"
	}
	return fmt.Sprintf("codec: type mismatch at %v: expected %v, found %v (%v)", path, e.Expected, e.Actual, e.Position)
}

// An InvalidLengthError is returned when a fixed-length sequence has the wrong
// number of elements. Len is the number of elements seen when the problem was
// detected and Expected names the type being decoded.
type InvalidLengthError struct {
	Path     string
	Len      int
	Expected string
}

func (e *InvalidLengthError) Error() string {
	msg := fmt.Sprintf("codec: invalid length %v, expected %v", e.Len, e.Expected)
	if e.Path != "" {
		msg += " at " + e.Path
	}
	return msg
}
