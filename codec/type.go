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

// A Type represents the shape of a value as seen by a Reader.
type Type uint8

const (
	// NoType is returned by a Reader that is not currently pointing at a value.
	NoType Type = iota

	// NullType is the type of a JSON null or a RON None.
	NullType

	// BoolType is the type of a boolean, true or false.
	BoolType

	// IntType is the type of a number written without a fraction or exponent.
	IntType

	// FloatType is the type of a number written with a fraction or exponent,
	// as well as the RON specials inf, -inf and NaN.
	FloatType

	// StringType is the type of a quoted string.
	StringType

	// SymbolType is the type of a bare RON identifier, such as a unit enum variant.
	SymbolType

	// ListType is the type of an ordered sequence: a JSON array, a RON list
	// or a RON tuple.
	ListType

	// StructType is the type of a record with named fields: a JSON object or
	// a parenthesized RON struct.
	StructType

	// MapType is the type of a brace-delimited RON map whose keys are values
	// rather than field names.
	MapType
)

// String implements fmt.Stringer for Type.
func (t Type) String() string {
	switch t {
	case NoType:
		return "<no type>"
	case NullType:
		return "null"
	case BoolType:
		return "bool"
	case IntType:
		return "int"
	case FloatType:
		return "float"
	case StringType:
		return "string"
	case SymbolType:
		return "symbol"
	case ListType:
		return "list"
	case StructType:
		return "struct"
	case MapType:
		return "map"
	default:
		return fmt.Sprintf("<unknown type %v>", uint8(t))
	}
}

// IsScalar determines if the type is a scalar type.
func IsScalar(t Type) bool {
	return NullType <= t && t <= SymbolType
}

// IsContainer determines if the type is a container type.
func IsContainer(t Type) bool {
	return ListType <= t && t <= MapType
}
