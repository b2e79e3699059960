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
	"sort"

	"github.com/matrixorigin/mojson/pkg/container/jsonvalue"
)

// Sort returns the row order of c under the json comparator. Rows that
// compare equal keep their relative order.
func Sort(c *Column) []int {
	sels := make([]int, c.Len())
	for i := range sels {
		sels[i] = i
	}
	sort.SliceStable(sels, func(i, j int) bool {
		return jsonvalue.CompareBytes(c.Bytes(sels[i]), c.Bytes(sels[j])) < 0
	})
	return sels
}
