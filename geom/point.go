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

// Package geom holds the records exchanged by the demo: a Point built from
// plain fields, mgl32 vectors and a matrix, encoded through codec.
package geom

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// A Square is a plain nested record.
type Square struct {
	Width  float32 `codec:"width"`
	Height float32 `codec:"height"`
}

func (s Square) String() string {
	return fmt.Sprintf("Square { width: %v, height: %v }", s.Width, s.Height)
}

// A Point aggregates every kind of field the codec supports. X and Y are
// transient: they are never written and read back as zero.
//
// The mgl32 types cannot carry codec tags or methods, so they are encoded in
// one of two ways. Fields of type Vec3 and Mat4 name a registered remote with
// with=. Vec2s inside the slice and map are wrapped in the Vec2 newtype,
// because with= applies only to a field whose type is exactly the foreign type.
type Point struct {
	X int32 `codec:"-"`
	Y int32 `codec:"-"`

	MySquare Square          `codec:"my_square"`
	MyVec    []Vec2          `codec:"my_vec"`
	MyMap    map[uint32]Vec2 `codec:"my_map"`
	V3       mgl32.Vec3      `codec:"v3,with=Vector3Remote"`
	M4       mgl32.Mat4      `codec:"m4,with=Matrix4Remote"`
}

func (p Point) String() string {
	return fmt.Sprintf("Point { x: %v, y: %v, my_square: %v, my_vec: %v, my_map: %v, v3: %v, m4: %v }",
		p.X, p.Y, p.MySquare, p.MyVec, p.MyMap, p.V3, p.M4)
}

// NewSamplePoint returns the Point the demo round-trips.
func NewSamplePoint() Point {
	return Point{
		X: 10,
		Y: 12,
		MySquare: Square{
			Width:  33.45,
			Height: 12.35,
		},
		MyVec: []Vec2{NewVec2(10.5, 22.3), NewVec2(100.5, 220.3)},
		MyMap: map[uint32]Vec2{1: NewVec2(1000.5, 202.3)},
		V3:    mgl32.Vec3{10.4, 5.6, 33.2},
		M4:    mgl32.Ident4(),
	}
}
