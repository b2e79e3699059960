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

package nulls

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/mojson/pkg/common/moerr"
)

func TestNulls(t *testing.T) {
	var empty *Nulls
	require.False(t, Any(empty))
	require.False(t, Contains(empty, 1))
	require.Equal(t, 0, Length(empty))
	require.Equal(t, "[]", String(empty))

	nsp := Build(1, 5, 9)
	require.True(t, Any(nsp))
	require.True(t, Contains(nsp, 5))
	require.False(t, Contains(nsp, 6))
	require.Equal(t, 3, Length(nsp))
	require.Equal(t, "[1 5 9]", String(nsp))
	require.Greater(t, Size(nsp), 0)

	Del(nsp, 5)
	require.Equal(t, []uint64{1, 9}, ToArray(nsp))

	AddRange(nsp, 20, 23)
	require.Equal(t, []uint64{1, 9, 20, 21, 22}, ToArray(nsp))

	cp := nsp.Clone()
	Reset(nsp)
	require.False(t, Any(nsp))
	require.Equal(t, 5, Length(cp))
}

func TestOrAndFilter(t *testing.T) {
	r := &Nulls{}
	Or(Build(1), Build(3), r)
	require.Equal(t, []uint64{1, 3}, ToArray(r))

	Or(nil, &Nulls{}, r)
	require.Nil(t, r.Np)

	f := Filter(Build(2, 4), []int64{4, 0, 2})
	require.Equal(t, []uint64{0, 2}, ToArray(f))
	require.False(t, Any(Filter(nil, []int64{1})))
}

func TestShowRead(t *testing.T) {
	tests := []struct {
		name string
		nsp  *Nulls
	}{
		{"empty", &Nulls{}},
		{"sparse", Build(0, 100, 70000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.nsp.Show()
			require.NoError(t, err)
			m := &Nulls{}
			require.NoError(t, m.Read(data))
			require.True(t, tt.nsp.IsSame(m))
		})
	}

	err := (&Nulls{}).Read([]byte{1, 2, 3})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidBlock))
	require.False(t, Build(1).IsSame(&Nulls{}))
}
