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
	"io"

	"go.uber.org/zap"

	"github.com/matrixorigin/mojson/pkg/common/moerr"
	"github.com/matrixorigin/mojson/pkg/container/bytejson"
	"github.com/matrixorigin/mojson/pkg/container/jsonvalue"
	"github.com/matrixorigin/mojson/pkg/logutil"
)

// Load reads a sequence of json documents, as in newline delimited json,
// into a column. A document longer than maxDocumentSize bytes is a data
// quality error; maxDocumentSize <= 0 means no limit. Load stops at the
// first bad document.
func Load(ctx context.Context, data []byte, maxDocumentSize int64) (*Column, error) {
	c := NewColumn()
	r := bytejson.NewReader(data)
	for {
		node, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, moerr.NewDataQuality(ctx, "read json document %d: %v", c.Len(), err)
		}
		if raw := node.Raw(); maxDocumentSize > 0 && int64(len(raw)) > maxDocumentSize {
			return nil, moerr.NewDataQuality(ctx, "json document %d has %d bytes, more than the limit %d",
				c.Len(), len(raw), maxDocumentSize)
		}
		v, err := jsonvalue.FromStreamNode(node)
		if err != nil {
			logutil.Debug("reject json document", zap.Int("row", c.Len()), zap.Error(err))
			return nil, err
		}
		c.Append(v)
	}
	logutil.Info("load json documents",
		zap.Int("rows", c.Len()),
		zap.Int("bytes", c.Size()))
	return c, nil
}
