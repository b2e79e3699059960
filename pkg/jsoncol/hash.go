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
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/matrixorigin/mojson/pkg/common/moerr"
	"github.com/matrixorigin/mojson/pkg/container/jsonvalue"
	"github.com/matrixorigin/mojson/pkg/logutil"
)

const hashChunkSize = 1024

// NewHashPool returns the pool used by HashColumn. The caller releases it.
func NewHashPool(workers int) (*ants.Pool, error) {
	pool, err := ants.NewPool(workers, ants.WithPanicHandler(func(v interface{}) {
		logutil.Error("json hash task panic", zap.Any("panic", v))
		panic(v)
	}))
	if err != nil {
		return nil, moerr.NewInternalErrorNoCtx("new hash pool: %v", err)
	}
	return pool, nil
}

// HashColumn hashes every row of c on pool, hashChunkSize rows per task.
// Absent rows hash to 0.
func HashColumn(ctx context.Context, pool *ants.Pool, c *Column) ([]int64, error) {
	hashes := make([]int64, c.Len())
	var wg sync.WaitGroup
	for start := 0; start < c.Len(); start += hashChunkSize {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		begin, end := start, min(start+hashChunkSize, c.Len())
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			for i := begin; i < end; i++ {
				if c.IsAbsent(i) {
					continue
				}
				hashes[i] = jsonvalue.HashBytes(c.Bytes(i))
			}
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, moerr.NewInternalError(ctx, "submit json hash task: %v", err)
		}
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return hashes, nil
}
