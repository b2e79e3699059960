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
	"encoding/binary"

	hll "github.com/axiomhq/hyperloglog"

	"github.com/matrixorigin/mojson/pkg/container/jsonvalue"
	"github.com/matrixorigin/mojson/pkg/container/nulls"
)

// Stats summarizes a column. Min and Max are absent when every row is.
type Stats struct {
	Rows   int
	Absent int
	Min    jsonvalue.Value
	Max    jsonvalue.Value
	// NDV estimates the distinct present values. Values that hash alike,
	// like 5 and 5.0, count once.
	NDV uint64
}

func CollectStats(c *Column) Stats {
	stats := Stats{
		Rows:   c.Len(),
		Absent: nulls.Length(c.Nulls()),
	}
	sk := hll.New()
	var key [8]byte
	minRow, maxRow := -1, -1
	for i := 0; i < c.Len(); i++ {
		if c.IsAbsent(i) {
			continue
		}
		span := c.Bytes(i)
		binary.LittleEndian.PutUint64(key[:], uint64(jsonvalue.HashBytes(span)))
		sk.Insert(key[:])
		if minRow < 0 || jsonvalue.CompareBytes(span, c.Bytes(minRow)) < 0 {
			minRow = i
		}
		if maxRow < 0 || jsonvalue.CompareBytes(span, c.Bytes(maxRow)) > 0 {
			maxRow = i
		}
	}
	if minRow >= 0 {
		stats.Min = c.Get(minRow)
		stats.Max = c.Get(maxRow)
		stats.NDV = sk.Estimate()
	}
	return stats
}
