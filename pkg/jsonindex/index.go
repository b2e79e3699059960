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

// Package jsonindex is an ordered in-memory index over a json column.
package jsonindex

import (
	"github.com/tidwall/btree"

	"github.com/matrixorigin/mojson/pkg/container/jsonvalue"
	"github.com/matrixorigin/mojson/pkg/jsoncol"
)

type IndexEntry struct {
	Value []byte
	Row   int
}

func (e IndexEntry) Less(than IndexEntry) bool {
	if c := jsonvalue.CompareBytes(e.Value, than.Value); c != 0 {
		return c < 0
	}
	return e.Row < than.Row
}

// Bound limits one side of a range scan. An unbounded side is represented
// by the MinBound or MaxBound sentinel.
type Bound struct {
	Value     jsonvalue.Value
	Inclusive bool
	Unbounded bool
}

func Inclusive(v jsonvalue.Value) Bound {
	return Bound{Value: v, Inclusive: true}
}

func Exclusive(v jsonvalue.Value) Bound {
	return Bound{Value: v}
}

func Unbounded() Bound {
	return Bound{Unbounded: true}
}

// Index orders the present rows of a column by the json comparator, ties
// broken by row. Absent rows are not indexed.
type Index struct {
	col  *jsoncol.Column
	tree *btree.BTreeG[IndexEntry]
}

func New(col *jsoncol.Column) *Index {
	idx := &Index{
		col: col,
		tree: btree.NewBTreeG(func(a, b IndexEntry) bool {
			return a.Less(b)
		}),
	}
	for row := 0; row < col.Len(); row++ {
		idx.Insert(row)
	}
	return idx
}

// Insert indexes a row appended to the column after New.
func (idx *Index) Insert(row int) {
	if idx.col.IsAbsent(row) {
		return
	}
	idx.tree.Set(IndexEntry{
		Value: idx.col.Bytes(row),
		Row:   row,
	})
}

func (idx *Index) Len() int {
	return idx.tree.Len()
}

// Scan calls fn, in index order, for every row whose value lies between
// lower and upper. Scan stops early when fn returns false.
func (idx *Index) Scan(lower, upper Bound, fn func(row int) bool) {
	lo := lower.Value
	if lower.Unbounded {
		lo = jsonvalue.MinBoundValue()
	}
	hi := upper.Value
	if upper.Unbounded {
		hi = jsonvalue.MaxBoundValue()
	}

	iter := idx.tree.Iter()
	defer iter.Release()
	// row -1 sorts before every row holding lo
	for ok := iter.Seek(IndexEntry{Value: lo.Slice(), Row: -1}); ok; ok = iter.Next() {
		entry := iter.Item()
		if !lower.Unbounded && !lower.Inclusive &&
			jsonvalue.CompareBytes(entry.Value, lo.Slice()) == 0 {
			continue
		}
		c := jsonvalue.CompareBytes(entry.Value, hi.Slice())
		if c > 0 || (c == 0 && !upper.Unbounded && !upper.Inclusive) {
			return
		}
		if !fn(entry.Row) {
			return
		}
	}
}

// Lookup returns the rows whose value compares equal to v.
func (idx *Index) Lookup(v jsonvalue.Value) []int {
	var rows []int
	idx.Scan(Inclusive(v), Inclusive(v), func(row int) bool {
		rows = append(rows, row)
		return true
	})
	return rows
}
