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
	"encoding/binary"

	"github.com/pierrec/lz4/v4"
	"go.uber.org/zap"

	"github.com/matrixorigin/mojson/pkg/common/moerr"
	"github.com/matrixorigin/mojson/pkg/container/bytejson"
	"github.com/matrixorigin/mojson/pkg/container/nulls"
	"github.com/matrixorigin/mojson/pkg/logutil"
)

// Block layout, little endian:
//
//	magic    uint32
//	version  uint8
//	flags    uint8
//	rows     uint32
//	nullsLen uint32 | nulls (roaring portable format)
//	offsets  (rows+1) * uint32
//	rawLen   uint32
//	dataLen  uint32 | data (lz4 block when flagCompressed)
const (
	blockMagic   = uint32(0x434a4f4d)
	blockVersion = uint8(1)

	flagCompressed = uint8(1)

	blockHeaderSize = 4 + 1 + 1 + 4
)

var endian = binary.LittleEndian

// Marshal returns the serialized block. With compress set the data section
// is lz4 compressed, unless that does not make it smaller.
func (c *Column) Marshal(compress bool) ([]byte, error) {
	nsp, err := c.nsp.Show()
	if err != nil {
		return nil, moerr.ConvertGoError(context.Background(), err)
	}

	flags := uint8(0)
	data := c.data
	if compress && len(c.data) > 0 {
		buf := make([]byte, lz4.CompressBlockBound(len(c.data)))
		n, err := lz4.CompressBlock(c.data, buf, nil)
		if err != nil {
			return nil, moerr.NewInternalErrorNoCtx("lz4 compress json block: %v", err)
		}
		// 0 means incompressible
		if n > 0 && n < len(c.data) {
			flags |= flagCompressed
			data = buf[:n]
		}
	}

	size := blockHeaderSize + 4 + len(nsp) + 4*len(c.offsets) + 8 + len(data)
	buf := make([]byte, 0, size)
	buf = endian.AppendUint32(buf, blockMagic)
	buf = append(buf, blockVersion, flags)
	buf = endian.AppendUint32(buf, uint32(c.Len()))
	buf = endian.AppendUint32(buf, uint32(len(nsp)))
	buf = append(buf, nsp...)
	for _, off := range c.offsets {
		buf = endian.AppendUint32(buf, off)
	}
	buf = endian.AppendUint32(buf, uint32(len(c.data)))
	buf = endian.AppendUint32(buf, uint32(len(data)))
	buf = append(buf, data...)

	logutil.Debug("marshal json block",
		zap.Int("rows", c.Len()),
		zap.Int("raw", len(c.data)),
		zap.Int("stored", len(data)))
	return buf, nil
}

type blockReader struct {
	buf []byte
	pos int
}

func (r *blockReader) next(n int) ([]byte, error) {
	if n < 0 || len(r.buf)-r.pos < n {
		return nil, moerr.NewInvalidBlockNoCtx("need %d bytes at offset %d, block has %d", n, r.pos, len(r.buf))
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *blockReader) uint32() (uint32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return endian.Uint32(b), nil
}

// Unmarshal decodes a block written by Marshal. Every row is checked, so
// a column built by Unmarshal never holds a malformed value.
func Unmarshal(buf []byte) (*Column, error) {
	r := &blockReader{buf: buf}
	head, err := r.next(blockHeaderSize)
	if err != nil {
		return nil, err
	}
	if magic := endian.Uint32(head); magic != blockMagic {
		return nil, moerr.NewInvalidBlockNoCtx("bad magic %#x", magic)
	}
	if head[4] != blockVersion {
		return nil, moerr.NewInvalidBlockNoCtx("unsupported version %d", head[4])
	}
	flags := head[5]
	rows := int(endian.Uint32(head[6:]))

	nlen, err := r.uint32()
	if err != nil {
		return nil, err
	}
	nbuf, err := r.next(int(nlen))
	if err != nil {
		return nil, err
	}
	c := &Column{nsp: &nulls.Nulls{}}
	if err = c.nsp.Read(nbuf); err != nil {
		return nil, err
	}

	if rows > (len(buf)-r.pos)/4 {
		return nil, moerr.NewInvalidBlockNoCtx("%d rows do not fit in %d bytes", rows, len(buf))
	}
	c.offsets = make([]uint32, rows+1)
	for i := range c.offsets {
		if c.offsets[i], err = r.uint32(); err != nil {
			return nil, err
		}
	}

	rawLen, err := r.uint32()
	if err != nil {
		return nil, err
	}
	dataLen, err := r.uint32()
	if err != nil {
		return nil, err
	}
	data, err := r.next(int(dataLen))
	if err != nil {
		return nil, err
	}
	if r.pos != len(buf) {
		return nil, moerr.NewInvalidBlockNoCtx("%d trailing bytes", len(buf)-r.pos)
	}
	if flags&flagCompressed != 0 {
		// an lz4 block expands at most 255 times
		if uint64(rawLen) > 255*uint64(dataLen) {
			return nil, moerr.NewInvalidBlockNoCtx("raw length %d too large for %d compressed bytes", rawLen, dataLen)
		}
		c.data = make([]byte, rawLen)
		n, err := lz4.UncompressBlock(data, c.data)
		if err != nil {
			return nil, moerr.NewInvalidBlockNoCtx("lz4 uncompress: %v", err)
		}
		if n != int(rawLen) {
			return nil, moerr.NewInvalidBlockNoCtx("uncompressed %d bytes, want %d", n, rawLen)
		}
	} else {
		if rawLen != dataLen {
			return nil, moerr.NewInvalidBlockNoCtx("raw length %d differs from data length %d", rawLen, dataLen)
		}
		c.data = append([]byte(nil), data...)
	}

	if err = c.check(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Column) check() error {
	if c.offsets[0] != 0 || int(c.offsets[len(c.offsets)-1]) != len(c.data) {
		return moerr.NewInvalidBlockNoCtx("offsets do not cover %d data bytes", len(c.data))
	}
	for i := 0; i < c.Len(); i++ {
		if c.offsets[i] > c.offsets[i+1] {
			return moerr.NewInvalidBlockNoCtx("offsets of row %d go backwards", i)
		}
		span := c.Bytes(i)
		if (len(span) == 0) != c.IsAbsent(i) {
			return moerr.NewInvalidBlockNoCtx("row %d disagrees with the nulls bitmap", i)
		}
		if err := bytejson.Validate(span); err != nil {
			return moerr.NewInvalidBlockNoCtx("row %d: %v", i, err)
		}
	}
	if n := nulls.Length(c.nsp); n > 0 && nulls.ToArray(c.nsp)[n-1] >= uint64(c.Len()) {
		return moerr.NewInvalidBlockNoCtx("nulls bitmap exceeds %d rows", c.Len())
	}
	return nil
}
