// Copyright 2021 Matrix Origin
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

// Package nulls wrap up functions for the manipulation of bitmap library roaring.
// A json column uses nulls to store the rows holding the absent value.
// You can think of Nulls as a bitmap.
package nulls

import (
	"fmt"

	"github.com/RoaringBitmap/roaring"

	"github.com/matrixorigin/mojson/pkg/common/moerr"
)

type Nulls struct {
	Np *roaring.Bitmap
}

func (nsp *Nulls) Clone() *Nulls {
	if nsp == nil {
		return nil
	}
	if nsp.Np == nil {
		return &Nulls{Np: nil}
	}
	return &Nulls{
		Np: nsp.Np.Clone(),
	}
}

// Or performs union operation on Nulls nsp,m and store the result in r
func Or(nsp, m, r *Nulls) {
	if !Any(nsp) && !Any(m) {
		r.Np = nil
		return
	}

	r.Np = roaring.New()
	if Any(nsp) {
		r.Np.Or(nsp.Np)
	}
	if Any(m) {
		r.Np.Or(m.Np)
	}
}

func Reset(nsp *Nulls) {
	if nsp.Np != nil {
		nsp.Np.Clear()
	}
}

func Build(rows ...uint64) *Nulls {
	nsp := &Nulls{}
	Add(nsp, rows...)
	return nsp
}

// Any returns true if any bit in the Nulls is set, otherwise it will return false.
func Any(nsp *Nulls) bool {
	if nsp == nil || nsp.Np == nil {
		return false
	}
	return !nsp.Np.IsEmpty()
}

// Size estimates the memory usage of the Nulls.
func Size(nsp *Nulls) int {
	if nsp == nil || nsp.Np == nil {
		return 0
	}
	return int(nsp.Np.GetSizeInBytes())
}

// Length returns the number of integers contained in the Nulls
func Length(nsp *Nulls) int {
	if nsp == nil || nsp.Np == nil {
		return 0
	}
	return int(nsp.Np.GetCardinality())
}

func String(nsp *Nulls) string {
	if nsp == nil || nsp.Np == nil {
		return "[]"
	}
	return fmt.Sprintf("%v", nsp.Np.ToArray())
}

// Contains returns true if the integer is contained in the Nulls
func Contains(nsp *Nulls, row uint64) bool {
	if nsp == nil || nsp.Np == nil {
		return false
	}
	return nsp.Np.Contains(uint32(row))
}

func Add(nsp *Nulls, rows ...uint64) {
	if len(rows) == 0 {
		return
	}
	if nsp.Np == nil {
		nsp.Np = roaring.New()
	}
	for _, row := range rows {
		nsp.Np.Add(uint32(row))
	}
}

// AddRange adds rows in [start, end)
func AddRange(nsp *Nulls, start, end uint64) {
	if start >= end {
		return
	}
	if nsp.Np == nil {
		nsp.Np = roaring.New()
	}
	nsp.Np.AddRange(start, end)
}

func Del(nsp *Nulls, rows ...uint64) {
	if nsp.Np == nil {
		return
	}
	for _, row := range rows {
		nsp.Np.Remove(uint32(row))
	}
}

// Filter returns the nulls of the rows picked by sels, renumbered by position.
func Filter(nsp *Nulls, sels []int64) *Nulls {
	m := &Nulls{}
	if !Any(nsp) {
		return m
	}
	for i, sel := range sels {
		if nsp.Np.Contains(uint32(sel)) {
			Add(m, uint64(i))
		}
	}
	return m
}

// ToArray returns the rows in ascending order.
func ToArray(nsp *Nulls) []uint64 {
	if nsp == nil || nsp.Np == nil {
		return nil
	}
	rows := nsp.Np.ToArray()
	ret := make([]uint64, len(rows))
	for i, row := range rows {
		ret[i] = uint64(row)
	}
	return ret
}

// Show serializes the bitmap in the roaring portable format.
// An empty Nulls serializes to nil.
func (nsp *Nulls) Show() ([]byte, error) {
	if !Any(nsp) {
		return nil, nil
	}
	return nsp.Np.ToBytes()
}

// Read deserializes the output of Show.
func (nsp *Nulls) Read(data []byte) error {
	if len(data) == 0 {
		nsp.Np = nil
		return nil
	}
	np := roaring.New()
	if err := np.UnmarshalBinary(data); err != nil {
		return moerr.NewInvalidBlockNoCtx("nulls bitmap: %v", err)
	}
	nsp.Np = np
	return nil
}

func (nsp *Nulls) IsSame(m *Nulls) bool {
	switch {
	case !Any(nsp) && !Any(m):
		return true
	case Any(nsp) && Any(m):
		return nsp.Np.Equals(m.Np)
	default:
		return false
	}
}
