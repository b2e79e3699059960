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

package jsonindex

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/mojson/pkg/container/jsonvalue"
	"github.com/matrixorigin/mojson/pkg/jsoncol"
)

func newTestIndex(t *testing.T) *Index {
	// rows:     0    1      2    3       4     5    6    7      8
	texts := []string{"3", `"b"`, "", "1.5", "null", "1", "3", "true", "[1]"}
	col := jsoncol.NewColumn()
	for _, text := range texts {
		v, err := jsonvalue.FromText([]byte(text))
		require.NoError(t, err)
		col.Append(v)
	}
	return New(col)
}

func scan(idx *Index, lower, upper Bound) []int {
	rows := []int{}
	idx.Scan(lower, upper, func(row int) bool {
		rows = append(rows, row)
		return true
	})
	return rows
}

func TestScan(t *testing.T) {
	idx := newTestIndex(t)
	require.Equal(t, 8, idx.Len())

	one := jsonvalue.FromInt(1)
	three := jsonvalue.FromDouble(3)
	tests := []struct {
		name  string
		lower Bound
		upper Bound
		rows  []int
	}{
		{"all", Unbounded(), Unbounded(), []int{4, 5, 7, 3, 0, 6, 1, 8}},
		{"closed", Inclusive(one), Inclusive(three), []int{5, 7, 3, 0, 6}},
		{"open", Exclusive(one), Exclusive(three), []int{3}},
		{"half open lower", Exclusive(one), Unbounded(), []int{3, 0, 6, 1, 8}},
		{"half open upper", Unbounded(), Exclusive(one), []int{4}},
		{"empty", Inclusive(three), Exclusive(three), []int{}},
		{"strings", Inclusive(jsonvalue.FromString([]byte("a"))), Inclusive(jsonvalue.FromString([]byte("z"))), []int{1}},
		{"sentinels", Inclusive(jsonvalue.MinBoundValue()), Inclusive(jsonvalue.MaxBoundValue()), []int{4, 5, 7, 3, 0, 6, 1, 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.rows, scan(idx, tt.lower, tt.upper))
		})
	}
}

func TestLookup(t *testing.T) {
	convey.Convey("lookup finds numerically equal rows", t, func() {
		idx := newTestIndex(t)
		convey.So(idx.Lookup(jsonvalue.FromUInt(3)), convey.ShouldResemble, []int{0, 6})
		convey.So(idx.Lookup(jsonvalue.FromBool(true)), convey.ShouldResemble, []int{5, 7})
		convey.So(idx.Lookup(jsonvalue.FromInt(2)), convey.ShouldBeEmpty)
		convey.So(idx.Lookup(jsonvalue.NoneValue()), convey.ShouldBeEmpty)
	})

	convey.Convey("scan stops when the callback says so", t, func() {
		idx := newTestIndex(t)
		var rows []int
		idx.Scan(Unbounded(), Unbounded(), func(row int) bool {
			rows = append(rows, row)
			return len(rows) < 2
		})
		convey.So(rows, convey.ShouldResemble, []int{4, 5})
	})

	convey.Convey("rows appended later are indexed by Insert", t, func() {
		col := jsoncol.NewColumn()
		idx := New(col)
		col.Append(jsonvalue.FromString([]byte("x")))
		idx.Insert(0)
		col.Append(jsonvalue.NoneValue())
		idx.Insert(1)
		convey.So(idx.Len(), convey.ShouldEqual, 1)
		convey.So(idx.Lookup(jsonvalue.FromString([]byte("x"))), convey.ShouldResemble, []int{0})
	})
}
