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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONReaderWalk(t *testing.T) {
	r := NewJSONReader([]byte(`{"a": 1, "b": [true, null, "s"], "c": {"d": -2.5e1}}`))

	require.True(t, r.Next())
	require.Equal(t, StructType, r.Type())
	require.NoError(t, r.StepIn())
	{
		require.True(t, r.Next())
		assert.Equal(t, "a", r.FieldName())
		assert.Equal(t, IntType, r.Type())
		i, err := r.Int64Value()
		require.NoError(t, err)
		assert.Equal(t, int64(1), i)

		require.True(t, r.Next())
		assert.Equal(t, "b", r.FieldName())
		require.Equal(t, ListType, r.Type())
		require.NoError(t, r.StepIn())
		{
			require.True(t, r.Next())
			b, err := r.BoolValue()
			require.NoError(t, err)
			assert.True(t, b)

			require.True(t, r.Next())
			assert.True(t, r.IsNull())

			require.True(t, r.Next())
			s, err := r.StringValue()
			require.NoError(t, err)
			assert.Equal(t, "s", s)

			assert.False(t, r.Next())
		}
		require.NoError(t, r.StepOut())

		require.True(t, r.Next())
		assert.Equal(t, "c", r.FieldName())
		require.NoError(t, r.StepIn())
		{
			require.True(t, r.Next())
			assert.Equal(t, "d", r.FieldName())
			f, err := r.Float32Value()
			require.NoError(t, err)
			assert.Equal(t, float32(-25), f)
		}
		require.NoError(t, r.StepOut())

		assert.False(t, r.Next())
	}
	require.NoError(t, r.StepOut())

	assert.False(t, r.Next())
	require.NoError(t, r.Err())
}

func TestRONReaderWalk(t *testing.T) {
	r := NewRONReader([]byte(`Point(x: 1.5, tags: ["a"], o: Some(2), n: None, t: (1, 2), e: Variant,)`))

	require.True(t, r.Next())
	require.Equal(t, StructType, r.Type())
	require.NoError(t, r.StepIn())
	{
		require.True(t, r.Next())
		assert.Equal(t, "x", r.FieldName())
		assert.Equal(t, FloatType, r.Type())
		f, err := r.FloatValue()
		require.NoError(t, err)
		assert.Equal(t, 1.5, f)

		require.True(t, r.Next())
		assert.Equal(t, "tags", r.FieldName())
		require.NoError(t, r.StepIn())
		{
			require.True(t, r.Next())
			s, err := r.StringValue()
			require.NoError(t, err)
			assert.Equal(t, "a", s)
			assert.False(t, r.Next())
		}
		require.NoError(t, r.StepOut())

		require.True(t, r.Next())
		assert.Equal(t, "o", r.FieldName())
		assert.Equal(t, IntType, r.Type())
		i, err := r.Int64Value()
		require.NoError(t, err)
		assert.Equal(t, int64(2), i)

		require.True(t, r.Next())
		assert.Equal(t, "n", r.FieldName())
		assert.True(t, r.IsNull())

		// Skipped without stepping in.
		require.True(t, r.Next())
		assert.Equal(t, "t", r.FieldName())
		assert.Equal(t, ListType, r.Type())

		require.True(t, r.Next())
		assert.Equal(t, "e", r.FieldName())
		assert.Equal(t, SymbolType, r.Type())
		s, err := r.StringValue()
		require.NoError(t, err)
		assert.Equal(t, "Variant", s)

		assert.False(t, r.Next())
	}
	require.NoError(t, r.StepOut())

	assert.False(t, r.Next())
	require.NoError(t, r.Err())
}

func TestRONReaderWrappedContainers(t *testing.T) {
	r := NewRONReader([]byte(`Some(Some([1])) Vec2(1.0, 2.0) () inf -inf NaN`))

	require.True(t, r.Next())
	require.Equal(t, ListType, r.Type())
	require.NoError(t, r.StepIn())
	require.True(t, r.Next())
	assert.False(t, r.Next())
	require.NoError(t, r.StepOut())

	require.True(t, r.Next())
	assert.Equal(t, ListType, r.Type())

	require.True(t, r.Next())
	assert.Equal(t, StructType, r.Type())

	for _, s := range []string{"inf", "-inf", "NaN"} {
		require.True(t, r.Next())
		assert.Equal(t, FloatType, r.Type(), s)
	}

	assert.False(t, r.Next())
	require.NoError(t, r.Err())
}

func TestRONMapKeys(t *testing.T) {
	r := NewRONReader([]byte(`{1: "one", "k": 2, sym: 3, 4.5: 4}`))

	require.True(t, r.Next())
	require.Equal(t, MapType, r.Type())
	require.NoError(t, r.StepIn())

	var keys []string
	for r.Next() {
		keys = append(keys, r.FieldName())
	}
	require.NoError(t, r.Err())
	assert.Equal(t, []string{"1", "k", "sym", "4.5"}, keys)
	require.NoError(t, r.StepOut())
}

func TestStepOutEarly(t *testing.T) {
	r := NewJSONReader([]byte(`[[1, [2, {"x": 3}]], 4]`))

	require.True(t, r.Next())
	require.NoError(t, r.StepIn())

	require.True(t, r.Next())
	require.NoError(t, r.StepIn())
	require.True(t, r.Next())
	require.NoError(t, r.StepOut())

	require.True(t, r.Next())
	i, err := r.Int64Value()
	require.NoError(t, err)
	assert.Equal(t, int64(4), i)

	assert.False(t, r.Next())
	require.NoError(t, r.StepOut())
	assert.False(t, r.Next())
	require.NoError(t, r.Err())
}

func TestMultipleTopLevelValues(t *testing.T) {
	r := NewJSONReader([]byte("1\n\"two\" [3]"))

	var types []Type
	for r.Next() {
		types = append(types, r.Type())
	}
	require.NoError(t, r.Err())
	assert.Equal(t, []Type{IntType, StringType, ListType}, types)
}

func TestReaderSyntaxErrors(t *testing.T) {
	test := func(name string, r Reader, pos Position) {
		t.Run(name, func(t *testing.T) {
			for r.Next() {
				if IsContainer(r.Type()) {
					require.NoError(t, r.StepIn())
				}
			}

			var se *SyntaxError
			require.ErrorAs(t, r.Err(), &se)
			assert.Equal(t, pos, se.Position)
		})
	}

	test("json trailing comma", NewJSONReader([]byte(`[1,]`)), Position{1, 4})
	test("missing comma", NewJSONReader([]byte(`[1 2]`)), Position{1, 4})
	test("unclosed", NewJSONReader([]byte(`{"a": [1, 2`)), Position{1, 12})
	test("missing colon", NewJSONReader([]byte(`{"a" 1}`)), Position{1, 6})
	test("symbol key in json", NewJSONReader([]byte(`{a: 1}`)), Position{1, 2})
	test("parens in json", NewJSONReader([]byte(`(1)`)), Position{1, 1})
	test("none in json", NewJSONReader([]byte(`[None]`)), Position{1, 2})
	test("unclosed some", NewRONReader([]byte(`Some(1`)), Position{1, 7})
	test("composite key", NewRONReader([]byte(`{[1]: 2}`)), Position{1, 2})
	test("missing struct comma", NewRONReader([]byte(`(a: 1 b: 2)`)), Position{1, 7})
	test("bad value position", NewJSONReader([]byte("{\n  \"a\": [1,\n    tru]}")), Position{3, 5})
}

func TestRONTrailingComma(t *testing.T) {
	r := NewRONReader([]byte(`[1, 2,]`))
	require.True(t, r.Next())
	require.NoError(t, r.StepIn())

	n := 0
	for r.Next() {
		n++
	}
	require.NoError(t, r.Err())
	assert.Equal(t, 2, n)
	require.NoError(t, r.StepOut())
}

func TestValuePositions(t *testing.T) {
	r := NewJSONReader([]byte("{\n  \"a\": [1,\n    true]}"))

	require.True(t, r.Next())
	assert.Equal(t, Position{1, 1}, r.Pos())
	require.NoError(t, r.StepIn())
	require.True(t, r.Next())
	assert.Equal(t, Position{2, 8}, r.Pos())
	require.NoError(t, r.StepIn())
	require.True(t, r.Next())
	require.True(t, r.Next())
	assert.Equal(t, Position{3, 5}, r.Pos())
}

func TestAccessorMismatches(t *testing.T) {
	test := func(name string, in string, get func(r Reader) error, expected string) {
		t.Run(name, func(t *testing.T) {
			r := NewRONReader([]byte(in))
			require.True(t, r.Next())

			var tme *TypeMismatchError
			require.ErrorAs(t, get(r), &tme)
			assert.Equal(t, expected, tme.Expected)
			assert.Equal(t, Position{1, 1}, tme.Position)
		})
	}

	test("int from string", `"1"`, func(r Reader) error { _, err := r.Int64Value(); return err }, "int")
	test("int from float", `1.5`, func(r Reader) error { _, err := r.Int64Value(); return err }, "int")
	test("int overflow", `99999999999999999999`, func(r Reader) error { _, err := r.Int64Value(); return err }, "int64")
	test("negative uint", `-1`, func(r Reader) error { _, err := r.Uint64Value(); return err }, "unsigned int")
	test("float32 overflow", `3.5e38`, func(r Reader) error { _, err := r.Float32Value(); return err }, "float32")
	test("float from bool", `true`, func(r Reader) error { _, err := r.FloatValue(); return err }, "float")
	test("bool from int", `1`, func(r Reader) error { _, err := r.BoolValue(); return err }, "bool")
	test("string from list", `[]`, func(r Reader) error { _, err := r.StringValue(); return err }, "string")
	test("expect", `None`, func(r Reader) error { return Expect(r, ListType) }, "list")
}

func TestNumericAccessors(t *testing.T) {
	r := NewRONReader([]byte(`+7 2 1e-7`))

	require.True(t, r.Next())
	u, err := r.Uint64Value()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), u)

	require.True(t, r.Next())
	f, err := r.Float32Value()
	require.NoError(t, err)
	assert.Equal(t, float32(2), f)

	require.True(t, r.Next())
	f, err = r.Float32Value()
	require.NoError(t, err)
	assert.Equal(t, float32(1e-7), f)
}

func TestReaderUsageErrors(t *testing.T) {
	r := NewJSONReader([]byte(`1`))

	var ue *UsageError
	require.ErrorAs(t, r.StepOut(), &ue)

	require.True(t, r.Next())
	require.ErrorAs(t, r.StepIn(), &ue)
}
