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

package geom

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Michael-R-R/serde-serialization-example/codec"
)

// Vec2 wraps mgl32.Vec2 so that it can be encoded wherever it appears,
// including as a slice element or map value. It is written as the list [x, y].
type Vec2 struct {
	mgl32.Vec2
}

// NewVec2 returns the Vec2 (x, y).
func NewVec2(x, y float32) Vec2 {
	return Vec2{mgl32.Vec2{x, y}}
}

func (v Vec2) String() string {
	return fmt.Sprintf("Vec2 [x: %v, y:%v]", v.X(), v.Y())
}

// MarshalCodec writes the vector as [x, y].
func (v Vec2) MarshalCodec(w codec.Writer) error {
	if err := w.BeginList(2); err != nil {
		return err
	}
	if err := w.WriteFloat32(v.X()); err != nil {
		return err
	}
	if err := w.WriteFloat32(v.Y()); err != nil {
		return err
	}
	return w.EndList()
}

// UnmarshalCodec reads a list of exactly two numbers. A list of any other
// length fails with an InvalidLengthError giving the number of elements seen.
func (v *Vec2) UnmarshalCodec(r codec.Reader) error {
	if err := codec.Expect(r, codec.ListType); err != nil {
		return err
	}
	if err := r.StepIn(); err != nil {
		return err
	}

	var xy [2]float32
	n := 0
	for ; r.Next(); n++ {
		if n >= len(xy) {
			continue
		}
		f, err := r.Float32Value()
		if err != nil {
			if tme, ok := err.(*codec.TypeMismatchError); ok {
				tme.Path = fmt.Sprintf("[%d]", n)
			}
			return err
		}
		xy[n] = f
	}

	if err := r.StepOut(); err != nil {
		return err
	}
	if n != len(xy) {
		return &codec.InvalidLengthError{Len: n, Expected: "Vec2"}
	}

	v.Vec2 = mgl32.Vec2(xy)
	return nil
}
