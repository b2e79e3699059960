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

package bytejson

import (
	"bytes"
	"encoding/binary"
)

// Validate checks that buf holds the storage form of one well formed
// document. An empty buf is the absent document and is valid.
func Validate(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	tp := TpCode(buf[0])
	if !validTpCode(tp) {
		return corrupted("invalid type code 0x%02x", buf[0])
	}
	return validateBody(tp, buf[1:], 0)
}

func validateBody(tp TpCode, data []byte, depth int) error {
	if depth > MaxNestingDepth {
		return corrupted("nesting deeper than %d", MaxNestingDepth)
	}
	switch tp {
	case TpCodeLiteral:
		if len(data) != 1 || data[0] < LiteralNull || data[0] > LiteralFalse {
			return corrupted("invalid literal")
		}
	case TpCodeMinKey, TpCodeMaxKey:
		if len(data) != 0 {
			return corrupted("%s with a body of %d bytes", tp, len(data))
		}
	case TpCodeInt64, TpCodeUint64, TpCodeFloat64:
		if len(data) != numberSize {
			return corrupted("%s of %d bytes", tp, len(data))
		}
	case TpCodeString:
		n, l := binary.Uvarint(data)
		if l <= 0 || uint64(len(data)-l) != n {
			return corrupted("string length does not match its body")
		}
	case TpCodeArray, TpCodeObject:
		return validateContainer(tp, data, depth)
	default:
		return corrupted("invalid type code 0x%02x", byte(tp))
	}
	return nil
}

func validateContainer(tp TpCode, data []byte, depth int) error {
	if len(data) < headerSize {
		return corrupted("%s header truncated", tp)
	}
	cnt := int(endian.Uint32(data))
	size := int(endian.Uint32(data[docSizeOff:]))
	if size != len(data) {
		return corrupted("%s size %d, have %d bytes", tp, size, len(data))
	}
	keys := 0
	if tp == TpCodeObject {
		keys = cnt
	}
	entries := headerSize + keys*keyEntrySize + cnt*valEntrySize
	if cnt < 0 || cnt > len(data) || entries > len(data) {
		return corrupted("%s of %d entries in %d bytes", tp, cnt, len(data))
	}
	var prev []byte
	for i := 0; i < keys; i++ {
		off := int(endian.Uint32(data[headerSize+i*keyEntrySize:]))
		l := int(endian.Uint16(data[headerSize+i*keyEntrySize+keyOriginOff:]))
		if off < entries || off+l > len(data) {
			return corrupted("object key %d out of bounds", i)
		}
		key := data[off : off+l]
		if i > 0 && bytes.Compare(prev, key) >= 0 {
			return corrupted("object keys out of order at %d", i)
		}
		prev = key
	}
	bj := ByteJson{Type: tp, Data: data}
	for i := 0; i < cnt; i++ {
		entry := headerSize + keys*keyEntrySize + i*valEntrySize
		vtp := TpCode(data[entry])
		if !validTpCode(vtp) {
			return corrupted("invalid value type code 0x%02x", data[entry])
		}
		if inlined(vtp) {
			if vtp == TpCodeLiteral {
				if err := validateBody(vtp, data[entry+valTypeSize:entry+valTypeSize+1], depth+1); err != nil {
					return err
				}
			}
			continue
		}
		off := int(endian.Uint32(data[entry+valTypeSize:]))
		if off < entries || off >= len(data) {
			return corrupted("%s value %d out of bounds", tp, i)
		}
		end, err := valueEnd(vtp, data, off)
		if err != nil {
			return err
		}
		if err := validateBody(vtp, bj.Data[off:end], depth+1); err != nil {
			return err
		}
	}
	return nil
}

// valueEnd returns the end offset of the value of type tp stored at off.
func valueEnd(tp TpCode, data []byte, off int) (int, error) {
	var end int
	switch tp {
	case TpCodeInt64, TpCodeUint64, TpCodeFloat64:
		end = off + numberSize
	case TpCodeString:
		n, l := binary.Uvarint(data[off:])
		if l <= 0 || n > uint64(len(data)) {
			return 0, corrupted("bad string length prefix")
		}
		end = off + l + int(n)
	case TpCodeArray, TpCodeObject:
		if off+headerSize > len(data) {
			return 0, corrupted("%s header truncated", tp)
		}
		end = off + int(endian.Uint32(data[off+docSizeOff:]))
	}
	if end > len(data) || end < off {
		return 0, corrupted("%s value overruns its container", tp)
	}
	return end, nil
}
