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

package jsonvalue

import (
	"math"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) Value {
	v, err := FromText([]byte(text))
	require.NoError(t, err, text)
	return v
}

func TestCompareNumeric(t *testing.T) {
	kases := []struct {
		name  string
		left  Value
		right Value
		want  int
	}{
		{"int vs double", FromInt(5), FromDouble(5.0), 0},
		{"uint vs int", FromUInt(5), FromInt(5), 0},
		{"bool vs int", FromBool(true), FromInt(1), 0},
		{"bool vs bool", FromBool(false), FromBool(true), -1},
		{"int vs int", FromInt(-7), FromInt(3), -1},
		{"int extremes", FromInt(math.MaxInt64), FromInt(math.MinInt64), 1},
		{"uint vs uint", FromUInt(math.MaxUint64), FromUInt(0), 1},
		{"big uint vs int", FromUInt(math.MaxUint64), FromInt(math.MaxInt64), 1},
		{"negative int vs uint", FromInt(-1), FromUInt(0), -1},
		{"min int vs uint", FromInt(math.MinInt64), FromUInt(1), -1},
		{"double vs double", FromDouble(1.5), FromDouble(-2.5), 1},
		{"double vs int", FromDouble(0.5), FromInt(1), -1},
		{"double vs bool", FromDouble(0.5), FromBool(false), 1},
		{"double vs big uint", FromDouble(1e30), FromUInt(math.MaxUint64), 1},
		{"nan vs int", FromDouble(math.NaN()), FromInt(1), 0},
		{"nan vs nan", FromDouble(math.NaN()), FromDouble(math.NaN()), 0},
		{"negative zero", FromDouble(math.Copysign(0, -1)), FromInt(0), 0},
	}
	for _, k := range kases {
		t.Run(k.name, func(t *testing.T) {
			require.Equal(t, k.want, k.left.Compare(k.right))
			require.Equal(t, -k.want, k.right.Compare(k.left))
		})
	}
}

func TestCompareScalars(t *testing.T) {
	kases := []struct {
		left  Value
		right Value
		want  int
	}{
		{FromString([]byte("a")), FromString([]byte("b")), -1},
		{FromString([]byte("a")), FromString([]byte("ab")), -1},
		{FromString([]byte("")), FromString([]byte("")), 0},
		{FromString([]byte{0xff}), FromString([]byte("z")), 1},
		{FromNull(), FromNull(), 0},
		{NoneValue(), NoneValue(), 0},
		{NoneValue(), FromNull(), -1},
		{FromNull(), FromBool(false), -1},
		{FromInt(math.MaxInt64), FromString([]byte("")), -1},
		{FromString([]byte("zzz")), mustParse(t, "[]"), -1},
		{mustParse(t, "[]"), mustParse(t, "{}"), -1},
		{MinBoundValue(), MinBoundValue(), 0},
		{MaxBoundValue(), MaxBoundValue(), 0},
		{MinBoundValue(), MaxBoundValue(), -1},
	}
	for i, k := range kases {
		require.Equal(t, k.want, k.left.Compare(k.right), i)
		require.Equal(t, -k.want, k.right.Compare(k.left), i)
	}
}

func TestCompareContainers(t *testing.T) {
	convey.Convey("object comparison walks the left operand only", t, func() {
		small := mustParse(t, `{"a":1}`)
		big := mustParse(t, `{"a":1,"b":2}`)
		convey.So(small.Compare(big), convey.ShouldEqual, 0)
		convey.So(big.Compare(small), convey.ShouldEqual, 1)

		convey.So(mustParse(t, `{"a":1}`).Compare(mustParse(t, `{"b":1}`)), convey.ShouldEqual, 1)
		convey.So(mustParse(t, `{"b":1}`).Compare(mustParse(t, `{"a":1}`)), convey.ShouldEqual, 1)
		convey.So(mustParse(t, `{"a":1,"b":3}`).Compare(mustParse(t, `{"b":2,"a":1}`)), convey.ShouldEqual, 1)
		convey.So(mustParse(t, `{"a":{"x":[1,2]}}`).Compare(mustParse(t, `{"a":{"x":[1,3]}}`)), convey.ShouldEqual, -1)
		convey.So(mustParse(t, `{}`).Compare(mustParse(t, `{"a":1}`)), convey.ShouldEqual, 0)
	})

	convey.Convey("array comparison skips trailing indexes", t, func() {
		convey.So(mustParse(t, `[1,2]`).Compare(mustParse(t, `[1,2,3]`)), convey.ShouldEqual, 0)
		convey.So(mustParse(t, `[1,2,3]`).Compare(mustParse(t, `[1,2]`)), convey.ShouldEqual, 0)
		convey.So(mustParse(t, `[1,2]`).Compare(mustParse(t, `[1,3]`)), convey.ShouldEqual, -1)
		convey.So(mustParse(t, `[2]`).Compare(mustParse(t, `[1,9]`)), convey.ShouldEqual, 1)
		convey.So(mustParse(t, `[]`).Compare(mustParse(t, `[1]`)), convey.ShouldEqual, 0)
		convey.So(mustParse(t, `[1.0,"a"]`).Compare(mustParse(t, `[1,"a"]`)), convey.ShouldEqual, 0)
	})

	convey.Convey("containers of different kinds order by group", t, func() {
		convey.So(mustParse(t, `[1]`).Compare(mustParse(t, `{"a":1}`)), convey.ShouldEqual, -1)
		convey.So(mustParse(t, `{"a":1}`).Compare(mustParse(t, `[1]`)), convey.ShouldEqual, 1)
	})
}

func constructible(t *testing.T) []Value {
	return []Value{
		NoneValue(),
		FromNull(),
		FromBool(false),
		FromBool(true),
		FromInt(-5),
		FromInt(0),
		FromUInt(7),
		FromUInt(math.MaxUint64),
		FromDouble(2.5),
		FromDouble(-1e300),
		// one integer per float64 rounding class keeps the order transitive
		FromInt(1<<53 + 1),
		FromDouble(1 << 53),
		FromInt(-(1 << 53) - 1),
		FromDouble(-(1 << 53)),
		FromUInt(1<<63 + 1),
		FromDouble(1 << 63),
		FromDouble(1 << 64),
		FromString([]byte("")),
		FromString([]byte("abc")),
		mustParse(t, `[1,"x"]`),
		mustParse(t, `{"a":[1]}`),
	}
}

func TestCompareTotalOrder(t *testing.T) {
	values := append(constructible(t), MinBoundValue(), MaxBoundValue())
	for i, a := range values {
		require.Equal(t, 0, a.Compare(a), i)
		for j, b := range values {
			ab := a.Compare(b)
			require.Contains(t, []int{-1, 0, 1}, ab)
			require.Equal(t, ab, -b.Compare(a), "%d %d", i, j)
			for k, c := range values {
				if ab <= 0 && b.Compare(c) <= 0 {
					require.LessOrEqual(t, a.Compare(c), 0, "%d %d %d", i, j, k)
				}
			}
		}
	}
}

func TestCompareSentinels(t *testing.T) {
	for i, v := range constructible(t) {
		require.Equal(t, -1, MinBoundValue().Compare(v), i)
		require.Equal(t, 1, v.Compare(MinBoundValue()), i)
		require.Equal(t, -1, v.Compare(MaxBoundValue()), i)
		require.Equal(t, 1, MaxBoundValue().Compare(v), i)
	}
}

func TestCompareBytes(t *testing.T) {
	require.Equal(t, 0, CompareBytes(nil, nil))
	require.Equal(t, -1, CompareBytes(nil, FromNull().Slice()))
	require.Equal(t, 1, CompareBytes(FromInt(1).Slice(), []byte{}))
	require.Equal(t, 0, CompareBytes(FromInt(5).Slice(), FromDouble(5).Slice()))
	require.Equal(t, -1, CompareBytes(MinBoundValue().Slice(), nil))
}

func TestRoundTrip(t *testing.T) {
	texts := []string{
		`null`, `true`, `-0`, `0.1`, `1e300`, `-1.25e-7`, `18446744073709551615`,
		`"é\t\"q\""`, `[]`, `{}`, `[1,[2,[3,{"k":"v"}]]]`,
		`{"z":1,"a":[true,false,null],"m":{"n":{"o":2.5}}}`,
	}
	for _, text := range texts {
		v := mustParse(t, text)
		out, err := v.ToText()
		require.NoError(t, err)
		w := mustParse(t, out)
		require.Equal(t, 0, v.Compare(w), text)
		require.Equal(t, 0, w.Compare(v), text)
		require.Equal(t, v.Hash(), w.Hash(), text)
	}
}

func TestHash(t *testing.T) {
	require.Equal(t, FromInt(5).Hash(), FromDouble(5.0).Hash())
	require.Equal(t, FromInt(5).Hash(), FromUInt(5).Hash())
	require.Equal(t, FromInt(1).Hash(), FromBool(true).Hash())
	require.NotEqual(t, FromInt(5).Hash(), FromDouble(5.5).Hash())
	require.Equal(t, FromInt(5).Hash(), HashBytes(FromInt(5).Slice()))
	require.Equal(t, NoneValue().Hash(), HashBytes(nil))

	require.Equal(t, mustParse(t, `{"a":1,"b":2}`).Hash(), mustParse(t, `{"b":2.0,"a":1}`).Hash())

	// mixed comparisons round integers beyond 2^53 to float64
	large := []struct {
		i Value
		d Value
	}{
		{FromInt(1<<53 + 1), FromDouble(1 << 53)},
		{FromInt(-(1 << 53) - 1), FromDouble(-(1 << 53))},
		{FromUInt(1<<63 + 1), FromDouble(1 << 63)},
		{FromInt(math.MaxInt64), FromDouble(1 << 63)},
		{FromUInt(math.MaxUint64), FromDouble(1 << 64)},
	}
	for i, k := range large {
		require.Equal(t, 0, k.i.Compare(k.d), i)
		require.Equal(t, k.i.Hash(), k.d.Hash(), i)
	}
	require.Equal(t, 1, FromInt(1<<53+1).Compare(FromInt(1<<53)))

	// directional container equality is not reflected by the hash
	small := mustParse(t, `{"a":1}`)
	big := mustParse(t, `{"a":1,"b":2}`)
	require.Equal(t, 0, small.Compare(big))
	require.NotEqual(t, small.Hash(), big.Hash())
}
