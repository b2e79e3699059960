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

// Package jsonstore persists json column blocks in pebble.
package jsonstore

import (
	"context"
	"encoding/binary"
	"strings"

	"github.com/cockroachdb/pebble"
	"go.uber.org/zap"

	"github.com/matrixorigin/mojson/pkg/common/moerr"
	"github.com/matrixorigin/mojson/pkg/jsoncol"
	"github.com/matrixorigin/mojson/pkg/logutil"
)

const keySep = '/'

// Store keeps blocks under table/column/blockID, the id big endian so that
// the blocks of a column iterate in id order.
type Store struct {
	db       *pebble.DB
	compress bool
}

func Open(dir string, compress bool) (*Store, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, moerr.NewInternalErrorNoCtx("open json store %s: %v", dir, err)
	}
	logutil.Info("open json store", zap.String("dir", dir), zap.Bool("compress", compress))
	return &Store{db: db, compress: compress}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func columnPrefix(ctx context.Context, table, column string) ([]byte, error) {
	for _, name := range []string{table, column} {
		if name == "" || strings.IndexByte(name, keySep) >= 0 {
			return nil, moerr.NewInvalidInput(ctx, "invalid table or column name %q", name)
		}
	}
	k := make([]byte, 0, len(table)+len(column)+2)
	k = append(k, table...)
	k = append(k, keySep)
	k = append(k, column...)
	k = append(k, keySep)
	return k, nil
}

func blockKey(prefix []byte, id uint64) []byte {
	return binary.BigEndian.AppendUint64(append([]byte(nil), prefix...), id)
}

func (s *Store) PutBlock(ctx context.Context, table, column string, id uint64, col *jsoncol.Column) error {
	return s.PutBlocks(ctx, table, column, id, []*jsoncol.Column{col})
}

// PutBlocks writes cols as blocks firstID, firstID+1, ... in one batch.
func (s *Store) PutBlocks(ctx context.Context, table, column string, firstID uint64, cols []*jsoncol.Column) error {
	prefix, err := columnPrefix(ctx, table, column)
	if err != nil {
		return err
	}
	bat := s.db.NewBatch()
	for i, col := range cols {
		data, err := col.Marshal(s.compress)
		if err != nil {
			bat.Close()
			return err
		}
		if err = bat.Set(blockKey(prefix, firstID+uint64(i)), data, nil); err != nil {
			bat.Close()
			return moerr.ConvertGoError(ctx, err)
		}
	}
	if err = bat.Commit(nil); err != nil {
		return moerr.ConvertGoError(ctx, err)
	}
	logutil.Debug("put json blocks",
		zap.String("table", table),
		zap.String("column", column),
		zap.Uint64("first", firstID),
		zap.Int("count", len(cols)))
	return nil
}

func (s *Store) GetBlock(ctx context.Context, table, column string, id uint64) (*jsoncol.Column, error) {
	prefix, err := columnPrefix(ctx, table, column)
	if err != nil {
		return nil, err
	}
	v, c, err := s.db.Get(blockKey(prefix, id))
	if err == pebble.ErrNotFound {
		return nil, moerr.NewNotFound(ctx, "json block %s.%s#%d", table, column, id)
	}
	if err != nil {
		return nil, moerr.ConvertGoError(ctx, err)
	}
	defer c.Close()
	// Unmarshal copies out of v
	return jsoncol.Unmarshal(v)
}

func (s *Store) DeleteBlock(ctx context.Context, table, column string, id uint64) error {
	prefix, err := columnPrefix(ctx, table, column)
	if err != nil {
		return err
	}
	if err = s.db.Delete(blockKey(prefix, id), nil); err != nil {
		return moerr.ConvertGoError(ctx, err)
	}
	return nil
}

// ScanBlocks calls fn for every block of table.column in id order. A non
// nil error from fn stops the scan and is returned.
func (s *Store) ScanBlocks(ctx context.Context, table, column string, fn func(id uint64, col *jsoncol.Column) error) error {
	prefix, err := columnPrefix(ctx, table, column)
	if err != nil {
		return err
	}
	itr := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: upperBound(prefix),
	})
	defer itr.Close()
	for itr.First(); itr.Valid(); itr.Next() {
		if err = ctx.Err(); err != nil {
			return err
		}
		key := itr.Key()
		if len(key) != len(prefix)+8 {
			return moerr.NewInvalidBlock(ctx, "bad json block key %q", key)
		}
		col, err := jsoncol.Unmarshal(itr.Value())
		if err != nil {
			return err
		}
		if err = fn(binary.BigEndian.Uint64(key[len(prefix):]), col); err != nil {
			return err
		}
	}
	return nil
}

func upperBound(k []byte) []byte {
	u := make([]byte, len(k))
	copy(u, k)
	for i := len(u) - 1; i >= 0; i-- {
		u[i] = u[i] + 1
		if u[i] != 0 {
			return u[:i+1]
		}
	}
	return nil
}
