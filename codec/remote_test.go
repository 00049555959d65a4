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
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type imagePointRemote struct {
	X int `codec:"px"`
	Y int `codec:"py"`
}

func init() {
	RegisterRemote("ImagePointRemote",
		func(p image.Point) imagePointRemote { return imagePointRemote{p.X, p.Y} },
		func(r imagePointRemote) image.Point { return image.Pt(r.X, r.Y) })
}

type shape struct {
	Name string      `codec:"name"`
	At   image.Point `codec:"at,with=ImagePointRemote"`
}

func TestRemoteRoundTrip(t *testing.T) {
	v := shape{"dot", image.Pt(1, -2)}

	test := func(f Format, expected string) {
		t.Run(f.String(), func(t *testing.T) {
			bs, err := f.Marshal(v)
			require.NoError(t, err)
			assert.Equal(t, expected, string(bs))

			var back shape
			require.NoError(t, f.Unmarshal(bs, &back))
			assert.Equal(t, v, back)
		})
	}

	test(JSON, `{"name":"dot","at":{"px":1,"py":-2}}`)
	test(RON, `(name:"dot",at:(px:1,py:-2))`)
}

func TestRemoteTwinErrors(t *testing.T) {
	var v shape
	err := UnmarshalJSON([]byte(`{"name":"dot","at":{"px":1}}`), &v)

	var mfe *MissingFieldError
	require.ErrorAs(t, err, &mfe)
	assert.Equal(t, "py", mfe.Field)
	assert.Equal(t, "at", mfe.Path)
}

func TestRegisterRemotePanics(t *testing.T) {
	to := func(p image.Point) imagePointRemote { return imagePointRemote{} }
	from := func(r imagePointRemote) image.Point { return image.Point{} }

	assert.Panics(t, func() { RegisterRemote("ImagePointRemote", to, from) })
	assert.Panics(t, func() { RegisterRemote("", to, from) })
	assert.Panics(t, func() { RegisterRemote[image.Point, imagePointRemote]("NilRemote", nil, from) })
}

func TestRemoteUsageErrors(t *testing.T) {
	test := func(name string, v interface{}, msg string) {
		t.Run(name, func(t *testing.T) {
			_, err := MarshalRON(v)

			var ue *UsageError
			require.ErrorAs(t, err, &ue)
			assert.Contains(t, ue.Msg, msg)

			err = UnmarshalRON([]byte(`(p: (px: 1, py: 2))`), v)
			require.ErrorAs(t, err, &ue)
		})
	}

	test("unknown name", &struct {
		P image.Point `codec:"p,with=NoSuchRemote"`
	}{}, "no remote registered as NoSuchRemote")

	test("wrong field type", &struct {
		P []image.Point `codec:"p,with=ImagePointRemote"`
	}{}, "wrap image.Point in a type with its own MarshalCodec")
}
