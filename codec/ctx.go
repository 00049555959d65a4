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

// ctx is the current reader or writer context.
type ctx uint8

const (
	ctxAtTopLevel ctx = iota
	ctxInStruct       // RON ( name: v ) or, for writers, any record
	ctxInObject       // JSON { "name": v }
	ctxInMap          // RON { k: v } or, for writers, any map
	ctxInList         // [ v ]
	ctxInTuple        // RON ( v, v )
	ctxInOption       // RON Some( v )
)

func (c ctx) String() string {
	switch c {
	case ctxAtTopLevel:
		return "<top>"
	case ctxInStruct:
		return "struct"
	case ctxInObject:
		return "object"
	case ctxInMap:
		return "map"
	case ctxInList:
		return "list"
	case ctxInTuple:
		return "tuple"
	case ctxInOption:
		return "option"
	default:
		return fmt.Sprintf("<unknown ctx %v>", uint8(c))
	}
}

// keyed returns true if values in this context are preceded by a name or key.
func (c ctx) keyed() bool {
	return c == ctxInStruct || c == ctxInObject || c == ctxInMap
}

// ctxstack is a context stack.
type ctxstack struct {
	arr []ctx
}

// peek returns the current context.
func (c *ctxstack) peek() ctx {
	if len(c.arr) == 0 {
		return ctxAtTopLevel
	}
	return c.arr[len(c.arr)-1]
}

// push pushes a new context onto the stack.
func (c *ctxstack) push(ctx ctx) {
	c.arr = append(c.arr, ctx)
}

// pop pops the top context off the stack.
func (c *ctxstack) pop() {
	if len(c.arr) == 0 {
		panic("pop called at top level")
	}
	c.arr = c.arr[:len(c.arr)-1]
}
