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

package jsoncol

import (
	"context"
	"strings"
	"testing"

	"github.com/lni/goutils/leaktest"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/mojson/pkg/common/moerr"
	"github.com/matrixorigin/mojson/pkg/container/jsonvalue"
)

func mustValue(t *testing.T, text string) jsonvalue.Value {
	v, err := jsonvalue.FromText([]byte(text))
	require.NoError(t, err, text)
	return v
}

func newTestColumn(t *testing.T, texts ...string) *Column {
	c := NewColumn()
	for _, text := range texts {
		c.Append(mustValue(t, text))
	}
	return c
}

func TestColumnAppendGet(t *testing.T) {
	c := newTestColumn(t, `{"b":1,"a":2}`, "", "3", `"x"`)
	require.Equal(t, 4, c.Len())
	require.Equal(t, `{"a": 2, "b": 1}`, c.Get(0).String())
	require.True(t, c.IsAbsent(1))
	require.True(t, c.Get(1).IsNone())
	require.Empty(t, c.Bytes(1))
	require.Equal(t, jsonvalue.JsonInt, c.Get(2).Type())
	require.Equal(t, 0, jsonvalue.CompareBytes(c.Bytes(3), jsonvalue.FromString([]byte("x")).Slice()))

	s := c.Shuffle([]int{3, 1, 0})
	require.Equal(t, 3, s.Len())
	require.Equal(t, `"x"`, s.Get(0).String())
	require.True(t, s.IsAbsent(1))
	require.False(t, s.IsAbsent(2))
}

func TestMarshalUnmarshal(t *testing.T) {
	long := `"` + strings.Repeat("abcd", 100) + `"`
	tests := []struct {
		name     string
		texts    []string
		compress bool
	}{
		{"empty", nil, true},
		{"plain", []string{"1", "", `[true,null]`}, false},
		{"compressed", []string{long, long, long, "", `{"k":` + long + `}`}, true},
		{"incompressible", []string{"1"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestColumn(t, tt.texts...)
			buf, err := c.Marshal(tt.compress)
			require.NoError(t, err)
			if tt.name == "compressed" {
				require.Less(t, len(buf), c.Size())
			}
			d, err := Unmarshal(buf)
			require.NoError(t, err)
			require.Equal(t, c.Len(), d.Len())
			for i := 0; i < c.Len(); i++ {
				require.Equal(t, c.Bytes(i), d.Bytes(i))
				require.Equal(t, c.IsAbsent(i), d.IsAbsent(i))
			}
		})
	}
}

func TestUnmarshalCorrupt(t *testing.T) {
	c := newTestColumn(t, `{"a":[1,2,3]}`, "", `"s"`)
	buf, err := c.Marshal(false)
	require.NoError(t, err)

	kases := map[string][]byte{
		"empty":     nil,
		"truncated": buf[:len(buf)-1],
		"trailing":  append(append([]byte(nil), buf...), 0),
		"magic":     append([]byte{0}, buf[1:]...),
	}
	version := append([]byte(nil), buf...)
	version[4] = 9
	kases["version"] = version
	rows := append([]byte(nil), buf...)
	endian.PutUint32(rows[6:], 1<<30)
	kases["rows"] = rows
	value := append([]byte(nil), buf...)
	value[len(value)-c.Size()] = 0x7f
	kases["value"] = value

	for name, k := range kases {
		_, err := Unmarshal(k)
		require.Error(t, err, name)
		require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidBlock), name)
	}
}

func TestSort(t *testing.T) {
	c := newTestColumn(t, `"b"`, "2", "", "null", "1.0", "true", `"a"`, "1")
	sels := Sort(c)
	// true == 1 == 1.0, kept in row order
	require.Equal(t, []int{2, 3, 4, 5, 7, 1, 6, 0}, sels)

	s := c.Shuffle(sels)
	for i := 1; i < s.Len(); i++ {
		require.LessOrEqual(t, jsonvalue.CompareBytes(s.Bytes(i-1), s.Bytes(i)), 0)
	}
}

func TestHashColumn(t *testing.T) {
	defer leaktest.AfterTest(t)()

	pool, err := NewHashPool(2)
	require.NoError(t, err)
	defer pool.Release()

	c := NewColumn()
	for i := 0; i < 3*hashChunkSize+5; i++ {
		if i%7 == 0 {
			c.Append(jsonvalue.NoneValue())
			continue
		}
		c.Append(jsonvalue.FromInt(int64(i)))
	}
	hashes, err := HashColumn(context.Background(), pool, c)
	require.NoError(t, err)
	require.Len(t, hashes, c.Len())
	for i, h := range hashes {
		if i%7 == 0 {
			require.Equal(t, int64(0), h)
			continue
		}
		require.Equal(t, jsonvalue.FromDouble(float64(i)).Hash(), h)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = HashColumn(ctx, pool, c)
	require.ErrorIs(t, err, context.Canceled)
}

func TestHashColumnClosedPool(t *testing.T) {
	defer leaktest.AfterTest(t)()

	pool, err := NewHashPool(1)
	require.NoError(t, err)
	pool.Release()

	_, err = HashColumn(context.Background(), pool, newTestColumn(t, "1"))
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInternal))

	hashes, err := HashColumn(context.Background(), pool, NewColumn())
	require.NoError(t, err)
	require.Empty(t, hashes)
}

func TestCollectStats(t *testing.T) {
	c := newTestColumn(t, "5", "5.0", "", `"z"`, "null", `[1]`, "7", "")
	stats := CollectStats(c)
	require.Equal(t, 8, stats.Rows)
	require.Equal(t, 2, stats.Absent)
	require.Equal(t, "null", stats.Min.String())
	require.Equal(t, "[1]", stats.Max.String())
	require.Equal(t, uint64(5), stats.NDV)

	stats = CollectStats(newTestColumn(t, "", ""))
	require.Equal(t, 2, stats.Absent)
	require.True(t, stats.Min.IsNone())
	require.Equal(t, uint64(0), stats.NDV)
}

func TestLoad(t *testing.T) {
	data := []byte(`{"id": 1, "tags": ["a"]}
2
"three"
[4.5]
`)
	c, err := Load(context.Background(), data, 0)
	require.NoError(t, err)
	require.Equal(t, 4, c.Len())
	require.Equal(t, `{"id": 1, "tags": ["a"]}`, c.Get(0).String())
	require.Equal(t, `[4.5]`, c.Get(3).String())

	_, err = Load(context.Background(), data, 8)
	require.True(t, jsonvalue.IsDataQualityError(err))
	require.Contains(t, err.Error(), "more than the limit 8")

	_, err = Load(context.Background(), []byte("1\n[2,"), 0)
	require.True(t, jsonvalue.IsDataQualityError(err))

	c, err = Load(context.Background(), nil, 0)
	require.NoError(t, err)
	require.Equal(t, 0, c.Len())
}
