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
	"math"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalRoot(t *testing.T) {
	test := func(f Format, text string) {
		t.Run(f.String(), func(t *testing.T) {
			var v root
			require.NoError(t, f.Unmarshal([]byte(text), &v))

			expected := newRoot()
			expected.L = []string{}
			assert.True(t, cmp.Equal(expected, v), cmp.Diff(expected, v))
		})
	}

	test(JSON, `{"a":{"b":6},"c":7,"o":null,"l":[],"m":{"2":"two","10":"ten"}}`)
	test(RON, `(a:(b:6),c:7,o:None,l:[],m:{2:"two",10:"ten"})`)
	test(RON, `Root(m: {10: "ten", 2: "two"}, l: [], c: 7, a: Inner(b: 6),)`)
}

func TestUnmarshalOption(t *testing.T) {
	var v root
	require.NoError(t, UnmarshalRON([]byte(`(a:(b:6),c:7,o:Some(5),l:["x"],m:{})`), &v))
	require.NotNil(t, v.O)
	assert.Equal(t, 5, *v.O)
	assert.Equal(t, []string{"x"}, v.L)

	// Absent pointers are optional.
	require.NoError(t, UnmarshalJSON([]byte(`{"a":{"b":6},"c":7,"l":[],"m":{}}`), &v))
	assert.Nil(t, v.O)
}

func TestUnmarshalErrors(t *testing.T) {
	test := func(name string, text string, check func(t *testing.T, err error)) {
		t.Run(name, func(t *testing.T) {
			var v root
			err := UnmarshalJSON([]byte(text), &v)
			require.Error(t, err)
			check(t, err)
		})
	}

	test("missing field", `{"a":{"b":6},"l":[],"m":{}}`, func(t *testing.T, err error) {
		var mfe *MissingFieldError
		require.ErrorAs(t, err, &mfe)
		assert.Equal(t, "c", mfe.Field)
		assert.Equal(t, "", mfe.Path)
	})

	test("missing nested field", `{"a":{},"c":7,"l":[],"m":{}}`, func(t *testing.T, err error) {
		var mfe *MissingFieldError
		require.ErrorAs(t, err, &mfe)
		assert.Equal(t, "b", mfe.Field)
		assert.Equal(t, "a", mfe.Path)
		assert.Equal(t, "codec: missing field b at a", mfe.Error())
	})

	test("wrong type", `{"a":{"b":"six"},"c":7,"l":[],"m":{}}`, func(t *testing.T, err error) {
		var tme *TypeMismatchError
		require.ErrorAs(t, err, &tme)
		assert.Equal(t, "a.b", tme.Path)
		assert.Equal(t, "int", tme.Expected)
		assert.Equal(t, "string", tme.Actual)
		assert.Equal(t, Position{1, 11}, tme.Position)
	})

	test("null into int", `{"a":{"b":6},"c":null,"l":[],"m":{}}`, func(t *testing.T, err error) {
		var tme *TypeMismatchError
		require.ErrorAs(t, err, &tme)
		assert.Equal(t, "c", tme.Path)
		assert.Equal(t, "null", tme.Actual)
	})

	test("bad map key", `{"a":{"b":6},"c":7,"l":[],"m":{"x":"y"}}`, func(t *testing.T, err error) {
		var tme *TypeMismatchError
		require.ErrorAs(t, err, &tme)
		assert.Equal(t, "m[x]", tme.Path)
		assert.Equal(t, "int key", tme.Expected)
	})

	test("bad list element", `{"a":{"b":6},"c":7,"l":["a",2],"m":{}}`, func(t *testing.T, err error) {
		var tme *TypeMismatchError
		require.ErrorAs(t, err, &tme)
		assert.Equal(t, "l[1]", tme.Path)
	})

	test("syntax", `{"a":{"b":6},"c":7,`, func(t *testing.T, err error) {
		var se *SyntaxError
		require.ErrorAs(t, err, &se)
	})

	test("trailing value", `{"a":{"b":6},"c":7,"l":[],"m":{}} 1`, func(t *testing.T, err error) {
		var se *SyntaxError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, Position{1, 35}, se.Position)
	})

	test("no input", "  ", func(t *testing.T, err error) {
		assert.ErrorIs(t, err, ErrNoInput)
	})
}

func TestUnmarshalUnknownFields(t *testing.T) {
	text := []byte(`{"b":6,"extra":[1,{"deep":true}]}`)

	var v inner
	require.NoError(t, UnmarshalJSON(text, &v))
	assert.Equal(t, inner{6}, v)

	d := NewDecoderOpts(NewJSONReader(text), DecodeDisallowUnknownFields)
	err := d.DecodeTo(&v)

	var ufe *UnknownFieldError
	require.ErrorAs(t, err, &ufe)
	assert.Equal(t, "extra", ufe.Field)
}

func TestUnmarshalDuplicateField(t *testing.T) {
	var v inner
	require.NoError(t, UnmarshalRON([]byte(`(b: 1, b: 2)`), &v))
	assert.Equal(t, 2, v.B)
}

func TestUnmarshalCaseSensitive(t *testing.T) {
	var v inner
	err := UnmarshalJSON([]byte(`{"B":6}`), &v)

	var mfe *MissingFieldError
	require.ErrorAs(t, err, &mfe)
	assert.Equal(t, "b", mfe.Field)
}

func TestUnmarshalArrays(t *testing.T) {
	var a [2]int
	require.NoError(t, UnmarshalRON([]byte(`(1, 2)`), &a))
	assert.Equal(t, [2]int{1, 2}, a)

	test := func(text string, n int) {
		t.Run(text, func(t *testing.T) {
			var a [2]int
			err := UnmarshalJSON([]byte(text), &a)

			var ile *InvalidLengthError
			require.ErrorAs(t, err, &ile)
			assert.Equal(t, n, ile.Len)
			assert.Equal(t, "[2]int", ile.Expected)
		})
	}

	test("[]", 0)
	test("[1]", 1)
	test("[1,2,3]", 3)
}

func TestUnmarshalNumbers(t *testing.T) {
	var v struct {
		F32 float32 `codec:"f32"`
		F64 float64 `codec:"f64"`
		U8  uint8   `codec:"u8"`
		I16 int16   `codec:"i16"`
	}
	require.NoError(t, UnmarshalJSON([]byte(`{"f32":1,"f64":-2.5e-3,"u8":255,"i16":-300}`), &v))
	assert.Equal(t, float32(1), v.F32)
	assert.Equal(t, -2.5e-3, v.F64)
	assert.Equal(t, uint8(255), v.U8)
	assert.Equal(t, int16(-300), v.I16)

	test := func(text string) {
		t.Run(text, func(t *testing.T) {
			err := UnmarshalJSON([]byte(text), &v)

			var tme *TypeMismatchError
			require.ErrorAs(t, err, &tme)
		})
	}

	test(`{"f32":1,"f64":1,"u8":256,"i16":0}`)
	test(`{"f32":1,"f64":1,"u8":-1,"i16":0}`)
	test(`{"f32":1,"f64":1,"u8":0,"i16":40000}`)
	test(`{"f32":1e39,"f64":1,"u8":0,"i16":0}`)
	test(`{"f32":1,"f64":1,"u8":1.5,"i16":0}`)
}

func TestUnmarshalRONSpecialFloats(t *testing.T) {
	var fs []float32
	require.NoError(t, UnmarshalRON([]byte(`[inf, -inf, 1, +2.5]`), &fs))
	require.Len(t, fs, 4)
	assert.True(t, math.IsInf(float64(fs[0]), 1))
	assert.True(t, math.IsInf(float64(fs[1]), -1))
	assert.Equal(t, []float32{1, 2.5}, fs[2:])
}

func TestUnmarshalReplacesCollections(t *testing.T) {
	v := struct {
		L []int          `codec:"l"`
		M map[string]int `codec:"m"`
	}{
		L: []int{9, 9, 9},
		M: map[string]int{"old": 1},
	}
	require.NoError(t, UnmarshalJSON([]byte(`{"l":[1],"m":{"new":2}}`), &v))
	assert.Equal(t, []int{1}, v.L)
	assert.Equal(t, map[string]int{"new": 2}, v.M)
}

type shout string

func (s *shout) UnmarshalCodec(r Reader) error {
	val, err := r.StringValue()
	if err != nil {
		return err
	}
	*s = shout(val + "!")
	return nil
}

func TestUnmarshalUnmarshaler(t *testing.T) {
	var v []shout
	require.NoError(t, UnmarshalRON([]byte(`["a", b]`), &v))
	assert.Equal(t, []shout{"a!", "b!"}, v)
}

// pair reads a list of two strings, reporting element errors relative to
// itself.
type pair [2]string

func (p *pair) UnmarshalCodec(r Reader) error {
	if err := Expect(r, ListType); err != nil {
		return err
	}
	if err := r.StepIn(); err != nil {
		return err
	}
	n := 0
	for ; r.Next(); n++ {
		if n >= len(p) {
			continue
		}
		s, err := r.StringValue()
		if err != nil {
			if tme, ok := err.(*TypeMismatchError); ok {
				tme.Path = "[" + strconv.Itoa(n) + "]"
			}
			return err
		}
		p[n] = s
	}
	if err := r.StepOut(); err != nil {
		return err
	}
	if n != len(p) {
		return &InvalidLengthError{Len: n, Expected: "pair"}
	}
	return nil
}

func TestUnmarshalerErrorPath(t *testing.T) {
	type wrapper struct {
		P map[string][]pair `codec:"p"`
	}

	t.Run("element", func(t *testing.T) {
		var v wrapper
		err := UnmarshalRON([]byte(`(p: {"k": [["a", "b"], ["c", 1]]})`), &v)

		var tme *TypeMismatchError
		require.ErrorAs(t, err, &tme)
		assert.Equal(t, "p[k][1][1]", tme.Path)
	})

	t.Run("length", func(t *testing.T) {
		var v wrapper
		err := UnmarshalRON([]byte(`(p: {"k": [["a"]]})`), &v)

		var ile *InvalidLengthError
		require.ErrorAs(t, err, &ile)
		assert.Equal(t, "p[k][0]", ile.Path)
	})

	t.Run("top level", func(t *testing.T) {
		var v pair
		err := UnmarshalJSON([]byte(`[true, "b"]`), &v)

		var tme *TypeMismatchError
		require.ErrorAs(t, err, &tme)
		assert.Equal(t, "[0]", tme.Path)
	})
}

func TestDecode(t *testing.T) {
	d := NewDecoder(NewRONReader([]byte(`(a: 1, b: [true, "s", 2.5, None]) {1: 18446744073709551615}`)))

	v, err := d.Decode()
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"a": int64(1),
		"b": []interface{}{true, "s", 2.5, nil},
	}, v)

	v, err = d.Decode()
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"1": uint64(18446744073709551615)}, v)

	_, err = d.Decode()
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestDecodeToInterface(t *testing.T) {
	var v interface{}
	require.NoError(t, UnmarshalJSON([]byte(`{"a":[1,null]}`), &v))
	assert.Equal(t, map[string]interface{}{"a": []interface{}{int64(1), nil}}, v)
}

func TestDecodeToUsage(t *testing.T) {
	test := func(name string, v interface{}) {
		t.Run(name, func(t *testing.T) {
			err := UnmarshalJSON([]byte(`1`), v)

			var ue *UsageError
			require.ErrorAs(t, err, &ue)
		})
	}

	var i int
	test("non-pointer", i)
	test("nil pointer", (*int)(nil))
}
