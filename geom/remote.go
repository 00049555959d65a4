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
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Michael-R-R/serde-serialization-example/codec"
)

// Names of the remotes registered by this package, for use in with= tags.
const (
	Vector3Remote = "Vector3Remote"
	Vector4Remote = "Vector4Remote"
	Matrix4Remote = "Matrix4Remote"
)

// vector3Remote mirrors mgl32.Vec3.
type vector3Remote struct {
	X float32 `codec:"x"`
	Y float32 `codec:"y"`
	Z float32 `codec:"z"`
}

// vector4Remote mirrors mgl32.Vec4.
type vector4Remote struct {
	X float32 `codec:"x"`
	Y float32 `codec:"y"`
	Z float32 `codec:"z"`
	W float32 `codec:"w"`
}

// matrix4Remote mirrors mgl32.Mat4 column by column.
type matrix4Remote struct {
	X mgl32.Vec4 `codec:"x,with=Vector4Remote"`
	Y mgl32.Vec4 `codec:"y,with=Vector4Remote"`
	Z mgl32.Vec4 `codec:"z,with=Vector4Remote"`
	W mgl32.Vec4 `codec:"w,with=Vector4Remote"`
}

func init() {
	codec.RegisterRemote(Vector3Remote,
		func(v mgl32.Vec3) vector3Remote { return vector3Remote{v.X(), v.Y(), v.Z()} },
		func(r vector3Remote) mgl32.Vec3 { return mgl32.Vec3{r.X, r.Y, r.Z} })

	codec.RegisterRemote(Vector4Remote,
		func(v mgl32.Vec4) vector4Remote { return vector4Remote{v.X(), v.Y(), v.Z(), v.W()} },
		func(r vector4Remote) mgl32.Vec4 { return mgl32.Vec4{r.X, r.Y, r.Z, r.W} })

	codec.RegisterRemote(Matrix4Remote,
		func(m mgl32.Mat4) matrix4Remote { return matrix4Remote{m.Col(0), m.Col(1), m.Col(2), m.Col(3)} },
		func(r matrix4Remote) mgl32.Mat4 { return mgl32.Mat4FromCols(r.X, r.Y, r.Z, r.W) })
}
