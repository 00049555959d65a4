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

import "strconv"

// A node is one value read by Transcode, kept in input order.
type node struct {
	typ      Type
	val      interface{} // scalars: nil, bool, int64, uint64, float64 or string
	names    []string    // struct and map keys, parallel to children
	children []*node
}

// Transcode copies every remaining top-level value from r to w, then
// finishes w.
//
// Objects whose keys are all identifiers become structs; other objects, such
// as maps with numeric keys, become maps with string keys. RON map keys that
// are integer literals stay integers. Unit variants are written as strings.
func Transcode(r Reader, w Writer) error {
	for r.Next() {
		n, err := readNode(r)
		if err != nil {
			return err
		}
		if err := writeNode(w, n); err != nil {
			return err
		}
	}
	if err := r.Err(); err != nil {
		return err
	}
	return w.Finish()
}

// readNode reads the reader's current value.
func readNode(r Reader) (*node, error) {
	n := &node{typ: r.Type()}

	var err error
	switch n.typ {
	case NullType:
	case BoolType:
		n.val, err = r.BoolValue()
	case IntType:
		if n.val, err = r.Int64Value(); err != nil {
			n.val, err = r.Uint64Value()
		}
	case FloatType:
		n.val, err = r.FloatValue()
	case StringType, SymbolType:
		n.val, err = r.StringValue()
	case ListType, StructType, MapType:
		err = readChildren(r, n)
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

func readChildren(r Reader, n *node) error {
	if err := r.StepIn(); err != nil {
		return err
	}
	for r.Next() {
		// Taken before readNode, which steps through containers and
		// clears it.
		name := r.FieldName()
		child, err := readNode(r)
		if err != nil {
			return err
		}
		n.names = append(n.names, name)
		n.children = append(n.children, child)
	}
	return r.StepOut()
}

func writeNode(w Writer, n *node) error {
	switch n.typ {
	case NullType:
		return w.WriteNull()
	case BoolType:
		return w.WriteBool(n.val.(bool))
	case IntType:
		if u, ok := n.val.(uint64); ok {
			return w.WriteUint(u)
		}
		return w.WriteInt(n.val.(int64))
	case FloatType:
		return w.WriteFloat(n.val.(float64))
	case StringType, SymbolType:
		return w.WriteString(n.val.(string))

	case ListType:
		if err := w.BeginList(len(n.children)); err != nil {
			return err
		}
		for _, c := range n.children {
			if err := writeNode(w, c); err != nil {
				return err
			}
		}
		return w.EndList()

	default:
		if n.typ == StructType && allIdentifiers(n.names) {
			return writeStruct(w, n)
		}
		return writeMap(w, n)
	}
}

func writeStruct(w Writer, n *node) error {
	if err := w.BeginStruct(); err != nil {
		return err
	}
	for i, c := range n.children {
		if err := w.FieldName(n.names[i]); err != nil {
			return err
		}
		if err := writeNode(w, c); err != nil {
			return err
		}
	}
	return w.EndStruct()
}

func writeMap(w Writer, n *node) error {
	if err := w.BeginMap(); err != nil {
		return err
	}
	for i, c := range n.children {
		if err := writeKey(w, n.names[i], n.typ == MapType); err != nil {
			return err
		}
		if err := writeNode(w, c); err != nil {
			return err
		}
	}
	return w.EndMap()
}

func writeKey(w Writer, key string, typed bool) error {
	if typed {
		if i, err := strconv.ParseInt(key, 10, 64); err == nil {
			return w.WriteInt(i)
		}
		if u, err := strconv.ParseUint(key, 10, 64); err == nil {
			return w.WriteUint(u)
		}
	}
	return w.WriteString(key)
}

func allIdentifiers(names []string) bool {
	for _, name := range names {
		if !isIdentifier(name) {
			return false
		}
	}
	return true
}
