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

// Package jsoncol keeps a block of json values in their storage form.
package jsoncol

import (
	"github.com/matrixorigin/mojson/pkg/common/moerr"
	"github.com/matrixorigin/mojson/pkg/container/jsonvalue"
	"github.com/matrixorigin/mojson/pkg/container/nulls"
)

// Column is an append-only block of json values. Row i occupies
// data[offsets[i]:offsets[i+1]]; absent rows have an empty span and are
// recorded in nsp.
type Column struct {
	offsets []uint32
	data    []byte
	nsp     *nulls.Nulls
}

func NewColumn() *Column {
	return &Column{
		offsets: []uint32{0},
		nsp:     &nulls.Nulls{},
	}
}

func (c *Column) Len() int {
	return len(c.offsets) - 1
}

// Size is the number of bytes of the data section.
func (c *Column) Size() int {
	return len(c.data)
}

func (c *Column) Nulls() *nulls.Nulls {
	return c.nsp
}

func (c *Column) Append(v jsonvalue.Value) {
	row := c.Len()
	n := v.SerializedSize()
	if n == 0 {
		nulls.Add(c.nsp, uint64(row))
	} else {
		end := len(c.data)
		c.data = append(c.data, make([]byte, n)...)
		v.SerializeTo(c.data[end:])
	}
	c.offsets = append(c.offsets, uint32(len(c.data)))
}

// Bytes returns the storage form of row i without copying. It is empty for
// an absent row.
func (c *Column) Bytes(i int) []byte {
	return c.data[c.offsets[i]:c.offsets[i+1]]
}

// IsAbsent reports whether row i holds the absent value.
func (c *Column) IsAbsent(i int) bool {
	return nulls.Contains(c.nsp, uint64(i))
}

// Get returns a copy of row i.
func (c *Column) Get(i int) jsonvalue.Value {
	v, err := jsonvalue.FromBytes(c.Bytes(i))
	if err != nil {
		// spans are checked by Append and Unmarshal
		panic(moerr.NewInternalErrorNoCtx("json column row %d: %v", i, err))
	}
	return v
}

// Shuffle returns a new column holding the rows picked by sels, in order.
func (c *Column) Shuffle(sels []int) *Column {
	ret := NewColumn()
	for _, sel := range sels {
		span := c.Bytes(sel)
		if len(span) == 0 {
			nulls.Add(ret.nsp, uint64(ret.Len()))
		}
		ret.data = append(ret.data, span...)
		ret.offsets = append(ret.offsets, uint32(len(ret.data)))
	}
	return ret
}
