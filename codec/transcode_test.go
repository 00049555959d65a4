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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscode(t *testing.T) {
	test := func(name string, from Format, in string, to Format, expected string) {
		t.Run(name, func(t *testing.T) {
			buf := bytes.Buffer{}
			r := from.NewReader([]byte(in))
			w := to.NewWriter(&buf, 0)

			require.NoError(t, Transcode(r, w))
			assert.Equal(t, expected, buf.String())
		})
	}

	test("json to ron", JSON, `{"a":1.5,"b":[true,null],"m":{"1":"x","k":2}}`,
		RON, `(a:1.5,b:[true,None],m:{"1":"x","k":2})`)

	test("ron to json", RON, `Point(a: 1.5, b: [true, None], m: {1: "x"}, e: Variant, t: (1, 2))`,
		JSON, `{"a":1.5,"b":[true,null],"m":{"1":"x"},"e":"Variant","t":[1,2]}`)

	test("ron map keys stay typed", RON, `{1: {-2: 3}, "s": 18446744073709551615}`,
		RON, `{1:{-2:3},"s":18446744073709551615}`)

	test("nested named containers", JSON, `{"a":{"b":[1]},"c":[{"d":{}}],"e":2}`,
		RON, `(a:(b:[1]),c:[(d:())],e:2)`)

	test("nested named containers from ron", RON, `(a: (b: [1]), m: {1: (c: {})}, e: 2)`,
		JSON, `{"a":{"b":[1]},"m":{"1":{"c":{}}},"e":2}`)

	test("multiple values", JSON, "1 [] {}", RON, "1\n[]\n()")
}

func TestTranscodeKeepsNestedNames(t *testing.T) {
	buf := bytes.Buffer{}
	require.NoError(t, Transcode(NewJSONReader([]byte(`{"outer":{"inner":[{"x":1.5}]}}`)), NewRONWriter(&buf)))

	var v struct {
		Outer struct {
			Inner []struct {
				X float64 `codec:"x"`
			} `codec:"inner"`
		} `codec:"outer"`
	}
	require.NoError(t, UnmarshalRON(buf.Bytes(), &v))
	require.Len(t, v.Outer.Inner, 1)
	assert.Equal(t, 1.5, v.Outer.Inner[0].X)
}

func TestTranscodeErrors(t *testing.T) {
	buf := bytes.Buffer{}

	err := Transcode(NewJSONReader([]byte(`[1,`)), NewRONWriter(&buf))
	var se *SyntaxError
	require.ErrorAs(t, err, &se)

	err = Transcode(NewRONReader([]byte(`[NaN]`)), NewJSONWriter(&buf))
	var ue *UsageError
	require.ErrorAs(t, err, &ue)
}
