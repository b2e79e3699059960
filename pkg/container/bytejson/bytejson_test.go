// Copyright 2022 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bytejson

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAndRender(t *testing.T) {
	kases := []struct {
		text    string
		compact string
		pretty  string
	}{
		{"null", "null", "null"},
		{" true ", "true", "true"},
		{"false", "false", "false"},
		{"-12", "-12", "-12"},
		{"1.5", "1.5", "1.5"},
		{"1e2", "100", "100"},
		{`"a\"b\n"`, `"a\"b\n"`, `"a\"b\n"`},
		{`"a\\b\u0001"`, `"a\\b\u0001"`, `"a\\b\u0001"`},
		{"[]", "[]", "[]"},
		{"{}", "{}", "{}"},
		{`[1, "x", [true]]`, `[1,"x",[true]]`, `[1, "x", [true]]`},
		{`{"b":[1,2.5],"a":null}`, `{"a":null,"b":[1,2.5]}`, `{"a": null, "b": [1, 2.5]}`},
		{`{"a":1,"a":2}`, `{"a":2}`, `{"a": 2}`},
		{`{"b":{"d":1,"c":2},"a":[]}`, `{"a":[],"b":{"c":2,"d":1}}`, `{"a": [], "b": {"c": 2, "d": 1}}`},
	}
	for _, k := range kases {
		bj, err := ParseFromString(k.text)
		require.NoError(t, err, k.text)
		require.Equal(t, k.compact, string(bj.AppendJSON(nil, RenderOptions{})), k.text)
		require.Equal(t, k.pretty, string(bj.AppendJSON(nil, RenderOptions{SingleLinePretty: true})), k.text)
		require.Equal(t, k.pretty, bj.String())
		out, err := bj.MarshalJSON()
		require.NoError(t, err)
		require.Equal(t, k.compact, string(out))
	}
}

func TestParseNumberTyping(t *testing.T) {
	kases := []struct {
		text string
		tp   TpCode
	}{
		{"0", TpCodeInt64},
		{"-0", TpCodeInt64},
		{"9223372036854775807", TpCodeInt64},
		{"-9223372036854775808", TpCodeInt64},
		{"9223372036854775808", TpCodeUint64},
		{"18446744073709551615", TpCodeUint64},
		{"18446744073709551616", TpCodeFloat64},
		{"-9223372036854775809", TpCodeFloat64},
		{"1.0", TpCodeFloat64},
		{"2E3", TpCodeFloat64},
	}
	for _, k := range kases {
		bj, err := ParseFromString(k.text)
		require.NoError(t, err, k.text)
		require.Equal(t, k.tp, bj.Type, k.text)
	}
}

func TestParseError(t *testing.T) {
	kases := []string{"", "   ", "{", "[1,]", `{"a"}`, "1 2", "nul", `"abc`, "1e400", "{} x",
		"tru", "fals", "nulll", "00", "-01", "[01]", "1.", "-", ".5", "1e", "1e+", "[1e+]", "+1",
		"\"a\tb\"", "\"a\nb\"", "\"\xff\"", `"\x"`, `"\ud800"`, `{"a":1,}`, `{,}`, `[,1]`, `{"a" 1}`, `{1:2}`}
	for _, k := range kases {
		_, err := ParseFromString(k)
		require.Error(t, err, k)
		var se *SyntaxError
		require.True(t, errors.As(err, &se), k)
	}

	valid := []string{"0", "-0", "0.5", "-0.0e-0", "1E+2", `"a\tb"`, `"\ud83d\ude00"`, " [ ] ", "{ }"}
	for _, k := range valid {
		_, err := ParseFromString(k)
		require.NoError(t, err, k)
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := ParseFromString("[1,\n 2,\n 01]")
	var se *SyntaxError
	require.True(t, errors.As(err, &se))
	require.Equal(t, 3, se.Line)
	require.Equal(t, 2, se.Column)
	require.Equal(t, 9, se.Offset)
}

func TestParseDepth(t *testing.T) {
	deep := make([]byte, 0, 2*(MaxNestingDepth+2))
	for i := 0; i < MaxNestingDepth+2; i++ {
		deep = append(deep, '[')
	}
	for i := 0; i < MaxNestingDepth+2; i++ {
		deep = append(deep, ']')
	}
	_, err := ParseFromByteSlice(deep)
	require.Error(t, err)
}

func TestRenderSpecialValues(t *testing.T) {
	require.Equal(t, "null", CreateFloat64(math.NaN()).String())
	require.Equal(t, "null", CreateFloat64(math.Inf(-1)).String())
	require.Equal(t, "1e+21", CreateFloat64(1e21).String())
	require.Equal(t, "\"�\"", CreateString([]byte{0xff}).String())
	require.Equal(t, `"\u0001"`, CreateString([]byte{1}).String())
	require.Equal(t, "18446744073709551615", CreateUint64(math.MaxUint64).String())
	require.Panics(t, func() { _ = ByteJson{Type: 0x7f}.String() })
}

func TestBuilders(t *testing.T) {
	arr := CreateArray([]ByteJson{CreateInt64(1), NullJson, MinKeyJson, CreateString([]byte("x")), MaxKeyJson})
	require.Equal(t, 5, arr.Len())
	require.Equal(t, TpCodeMinKey, arr.ArrayElem(2).Type)
	require.Equal(t, TpCodeMaxKey, arr.ArrayElem(4).Type)
	require.True(t, arr.ArrayElem(1).IsNull())
	require.NoError(t, Validate(arr.Marshal()))

	obj := CreateObject(
		[][]byte{[]byte("z"), []byte("a"), []byte("z")},
		[]ByteJson{CreateInt64(1), arr, CreateBool(true)},
	)
	require.Equal(t, 2, obj.Len())
	key, val := obj.ObjectMember(0)
	require.Equal(t, "a", string(key))
	require.Equal(t, arr.String(), val.String())
	v, ok := obj.QueryKey([]byte("z"))
	require.True(t, ok)
	b, err := v.Bool()
	require.NoError(t, err)
	require.True(t, b)
	_, ok = obj.QueryKey([]byte("m"))
	require.False(t, ok)
	_, ok = arr.QueryKey([]byte("a"))
	require.False(t, ok)
	require.NoError(t, Validate(obj.Marshal()))
	require.Equal(t, 0, CreateInt64(1).Len())

	require.Panics(t, func() { CreateObject([][]byte{[]byte("a")}, nil) })
	require.Panics(t, func() { arr.ArrayElem(5) })
	require.Panics(t, func() { obj.ArrayElem(0) })
}

func TestCheckedGetters(t *testing.T) {
	i, err := CreateFloat64(5.9).Int64()
	require.NoError(t, err)
	require.Equal(t, int64(5), i)

	_, err = CreateUint64(math.MaxUint64).Int64()
	require.True(t, errors.Is(err, ErrNumberOutOfRange))

	_, err = CreateInt64(-1).Uint64()
	require.True(t, errors.Is(err, ErrNumberOutOfRange))

	u, err := CreateInt64(7).Uint64()
	require.NoError(t, err)
	require.Equal(t, uint64(7), u)

	f, err := CreateUint64(3).Float64()
	require.NoError(t, err)
	require.Equal(t, 3.0, f)

	_, err = CreateInt64(1).Bool()
	require.True(t, errors.Is(err, ErrTypeMismatch))
	var te *TypeError
	require.True(t, errors.As(err, &te))
	require.Equal(t, TpCodeInt64, te.Have)

	_, err = TrueJson.Float64()
	require.True(t, errors.Is(err, ErrTypeMismatch))

	s, err := CreateString([]byte("hi")).Str()
	require.NoError(t, err)
	require.Equal(t, "hi", string(s))
	_, err = NullJson.Str()
	require.True(t, errors.Is(err, ErrTypeMismatch))
}

func TestMarshalUnmarshal(t *testing.T) {
	bj, err := ParseFromString(`{"k":[1,"two",{"three":3.5}],"n":null}`)
	require.NoError(t, err)
	buf := bj.Marshal()
	require.Equal(t, bj.StorageSize(), len(buf))

	var other ByteJson
	require.NoError(t, other.Unmarshal(buf))
	require.Equal(t, bj.String(), other.String())

	require.NoError(t, other.Unmarshal(nil))
	require.True(t, other.IsNone())
	require.Equal(t, 0, NoneJson.StorageSize())
	require.Empty(t, NoneJson.Marshal())

	require.Equal(t, []byte{byte(TpCodeMinKey)}, MinKeyJson.Marshal())
	require.Equal(t, TpCodeMaxKey, View(MaxKeyJson.Marshal()).Type)
	require.Error(t, other.Unmarshal([]byte{0x7f}))
}

func TestValidate(t *testing.T) {
	bj, err := ParseFromString(`{"a":[1,2,"x"],"b":{"c":true}}`)
	require.NoError(t, err)
	buf := bj.Marshal()
	require.NoError(t, Validate(buf))
	require.NoError(t, Validate(nil))

	kases := [][]byte{
		{0x7f},
		{byte(TpCodeLiteral)},
		{byte(TpCodeLiteral), 9},
		{byte(TpCodeInt64), 1, 2},
		{byte(TpCodeString), 5, 'a'},
		{byte(TpCodeMinKey), 0},
		buf[:len(buf)-1],
		buf[:5],
	}
	for i, k := range kases {
		err := Validate(k)
		require.Error(t, err, i)
		require.True(t, errors.Is(err, ErrCorrupted), i)
	}

	// rename key "a" to "z" so that it sorts after "b"
	bad := append([]byte(nil), buf...)
	keyOff := 1 + int(endian.Uint32(bad[1+headerSize:]))
	bad[keyOff] = 'z'
	require.True(t, errors.Is(Validate(bad), ErrCorrupted))
}

func TestNormalizedHash(t *testing.T) {
	five := NormalizedHash(CreateInt64(5))
	require.Equal(t, five, NormalizedHash(CreateUint64(5)))
	require.Equal(t, five, NormalizedHash(CreateFloat64(5)))
	require.NotEqual(t, five, NormalizedHash(CreateFloat64(5.5)))
	require.NotEqual(t, five, NormalizedHash(CreateString([]byte("5"))))

	require.Equal(t, NormalizedHash(CreateInt64(1)), NormalizedHash(TrueJson))
	require.Equal(t, NormalizedHash(CreateInt64(0)), NormalizedHash(CreateFloat64(math.Copysign(0, -1))))
	require.Equal(t, NormalizedHash(CreateFloat64(math.NaN())), NormalizedHash(CreateFloat64(-math.NaN())))
	require.NotEqual(t, NormalizedHash(NullJson), NormalizedHash(NoneJson))
	require.NotEqual(t, NormalizedHash(MinKeyJson), NormalizedHash(MaxKeyJson))

	// beyond 2^53 an integer equals the float it rounds to
	require.Equal(t, NormalizedHash(CreateInt64(1<<53+1)), NormalizedHash(CreateFloat64(1<<53)))
	require.Equal(t, NormalizedHash(CreateInt64(-(1<<53)-1)), NormalizedHash(CreateFloat64(-(1 << 53))))
	require.Equal(t, NormalizedHash(CreateUint64(1<<63+1)), NormalizedHash(CreateFloat64(1<<63)))
	require.Equal(t, NormalizedHash(CreateInt64(math.MaxInt64)), NormalizedHash(CreateFloat64(1<<63)))
	require.Equal(t, NormalizedHash(CreateUint64(math.MaxUint64)), NormalizedHash(CreateFloat64(math.MaxUint64)))
	require.Equal(t, NormalizedHash(CreateUint64(1<<53)), NormalizedHash(CreateInt64(1<<53)))

	l, err := ParseFromString(`{"a":1,"b":[2.0,"x"]}`)
	require.NoError(t, err)
	r, err := ParseFromString(`{"b":[2,"x"],"a":1.0}`)
	require.NoError(t, err)
	require.Equal(t, NormalizedHash(l), NormalizedHash(r))

	arr1, _ := ParseFromString(`[[1],2]`)
	arr2, _ := ParseFromString(`[1,[2]]`)
	require.NotEqual(t, NormalizedHash(arr1), NormalizedHash(arr2))
}
