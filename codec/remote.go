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
	"fmt"
	"reflect"
	"sync"
)

// A remote lets a type this package cannot tag or extend be encoded through a
// locally defined twin that mirrors its data.
type remote struct {
	name    string
	foreign reflect.Type
	twin    reflect.Type
	to      func(reflect.Value) reflect.Value
	from    func(reflect.Value) reflect.Value
}

var remotes = struct {
	sync.RWMutex
	m map[string]*remote
}{m: map[string]*remote{}}

// RegisterRemote registers a surrogate for the foreign type F under the given
// name. A struct field of type F tagged `codec:"name,with=<name>"` is encoded
// by converting it to its twin T with to and encoding that, and decoded by
// decoding a T and converting it back with from.
//
// The twin is encoded like any other value, so it carries the field names and
// nesting that appear in the output:
//
//	type vector3Remote struct {
//		X float32 `codec:"x"`
//		Y float32 `codec:"y"`
//		Z float32 `codec:"z"`
//	}
//
//	codec.RegisterRemote("Vector3Remote",
//		func(v mgl32.Vec3) vector3Remote { return vector3Remote{v.X(), v.Y(), v.Z()} },
//		func(r vector3Remote) mgl32.Vec3 { return mgl32.Vec3{r.X, r.Y, r.Z} })
//
// RegisterRemote is meant to be called from init functions. It panics if the
// name is empty or already taken.
func RegisterRemote[F, T any](name string, to func(F) T, from func(T) F) {
	if name == "" {
		panic("codec: RegisterRemote with empty name")
	}
	if to == nil || from == nil {
		panic(fmt.Sprintf("codec: RegisterRemote %v with nil conversion", name))
	}

	r := &remote{
		name:    name,
		foreign: reflect.TypeOf((*F)(nil)).Elem(),
		twin:    reflect.TypeOf((*T)(nil)).Elem(),
		to: func(v reflect.Value) reflect.Value {
			return reflect.ValueOf(to(v.Interface().(F)))
		},
		from: func(v reflect.Value) reflect.Value {
			return reflect.ValueOf(from(v.Interface().(T)))
		},
	}

	remotes.Lock()
	defer remotes.Unlock()

	if _, ok := remotes.m[name]; ok {
		panic(fmt.Sprintf("codec: remote %v registered twice", name))
	}
	remotes.m[name] = r
}

// remoteFor returns the remote for a field tagged with=<name>, checking that it
// applies to the field's type.
func remoteFor(api string, f *field) (*remote, error) {
	remotes.RLock()
	r, ok := remotes.m[f.remote]
	remotes.RUnlock()

	if !ok {
		return nil, &UsageError{api, fmt.Sprintf("field %v: no remote registered as %v", f.name, f.remote)}
	}
	if f.typ != r.foreign {
		return nil, &UsageError{api, fmt.Sprintf(
			"field %v: remote %v applies to %v, not %v; wrap %v in a type with its own MarshalCodec and UnmarshalCodec",
			f.name, r.name, r.foreign, f.typ, r.foreign)}
	}
	return r, nil
}
