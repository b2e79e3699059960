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
	"math"
	"sort"
	"unicode/utf8"
)

// extend slice to have n zero bytes
func extendByte(buf []byte, n int) []byte {
	buf = append(buf, make([]byte, n)...)
	return buf
}

func addString(buf []byte, in []byte) []byte {
	off := len(buf)
	//encoding length
	buf = extendByte(buf, binary.MaxVarintLen64)
	inLen := binary.PutUvarint(buf[off:], uint64(len(in)))
	//cut length
	buf = buf[:off+inLen]
	//add string
	buf = append(buf, in...)
	return buf
}

func calStrLen(buf []byte) (int, int) {
	strLen, lenLen := uint64(buf[0]), 1
	if strLen >= utf8.RuneSelf {
		strLen, lenLen = binary.Uvarint(buf)
		if lenLen <= 0 {
			panic(corrupted("bad string length prefix"))
		}
	}
	return int(strLen), lenLen
}

// inlined reports whether a value of type tp lives in its value entry
// instead of the data area of its container.
func inlined(tp TpCode) bool {
	return tp == TpCodeLiteral || tp == TpCodeMinKey || tp == TpCodeMaxKey
}

func addByteElem(buf []byte, entryStart int, elems []ByteJson) []byte {
	for i, elem := range elems {
		buf[entryStart+i*valEntrySize] = byte(elem.Type)
		if inlined(elem.Type) {
			if elem.Type == TpCodeLiteral {
				buf[entryStart+i*valEntrySize+valTypeSize] = elem.Data[0]
			}
		} else {
			endian.PutUint32(buf[entryStart+i*valEntrySize+valTypeSize:], uint32(len(buf)))
			buf = append(buf, elem.Data...)
		}
	}
	return buf
}

func elemsSize(elems []ByteJson) int {
	size := 0
	for _, el := range elems {
		if !inlined(el.Type) {
			size += len(el.Data)
		}
	}
	return size
}

func mergeToArray(origin []ByteJson) ByteJson {
	totalSize := headerSize + len(origin)*valEntrySize + elemsSize(origin)
	buf := make([]byte, headerSize+len(origin)*valEntrySize, totalSize)
	endian.PutUint32(buf, uint32(len(origin)))
	endian.PutUint32(buf[docSizeOff:], uint32(totalSize))
	buf = addByteElem(buf, headerSize, origin)
	return ByteJson{Type: TpCodeArray, Data: buf}
}

// mergeToObject encodes the members of an object. Keys are stored in byte
// order; when a key repeats the last member wins.
func mergeToObject(keys [][]byte, vals []ByteJson) ByteJson {
	idx := make([]int, len(keys))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return bytes.Compare(keys[idx[i]], keys[idx[j]]) < 0
	})
	// keep the last member of every run of equal keys
	uniq := idx[:0]
	for i, k := range idx {
		if i+1 < len(idx) && bytes.Equal(keys[k], keys[idx[i+1]]) {
			continue
		}
		uniq = append(uniq, k)
	}

	cnt := len(uniq)
	keySize := 0
	sortedVals := make([]ByteJson, 0, cnt)
	for _, k := range uniq {
		keySize += len(keys[k])
		sortedVals = append(sortedVals, vals[k])
	}
	entrySize := headerSize + cnt*keyEntrySize + cnt*valEntrySize
	totalSize := entrySize + keySize + elemsSize(sortedVals)
	buf := make([]byte, entrySize, totalSize)
	endian.PutUint32(buf, uint32(cnt))
	endian.PutUint32(buf[docSizeOff:], uint32(totalSize))
	for i, k := range uniq {
		key := keys[k]
		if len(key) > math.MaxUint16 {
			panic(corrupted("object key of %d bytes", len(key)))
		}
		endian.PutUint32(buf[headerSize+i*keyEntrySize:], uint32(len(buf)))
		endian.PutUint16(buf[headerSize+i*keyEntrySize+keyOriginOff:], uint16(len(key)))
		buf = append(buf, key...)
	}
	buf = addByteElem(buf, headerSize+cnt*keyEntrySize, sortedVals)
	return ByteJson{Type: TpCodeObject, Data: buf}
}

// CreateInt64 builds a signed integer document.
func CreateInt64(v int64) ByteJson {
	buf := make([]byte, numberSize)
	endian.PutUint64(buf, uint64(v))
	return ByteJson{Type: TpCodeInt64, Data: buf}
}

func CreateUint64(v uint64) ByteJson {
	buf := make([]byte, numberSize)
	endian.PutUint64(buf, v)
	return ByteJson{Type: TpCodeUint64, Data: buf}
}

func CreateFloat64(v float64) ByteJson {
	buf := make([]byte, numberSize)
	endian.PutUint64(buf, math.Float64bits(v))
	return ByteJson{Type: TpCodeFloat64, Data: buf}
}

// CreateString builds a string document holding a copy of s. The bytes are
// not required to be valid UTF-8.
func CreateString(s []byte) ByteJson {
	buf := make([]byte, 0, len(s)+binary.MaxVarintLen64)
	return ByteJson{Type: TpCodeString, Data: addString(buf, s)}
}

func CreateBool(b bool) ByteJson {
	if b {
		return TrueJson
	}
	return FalseJson
}

// CreateArray builds an array document from its elements.
func CreateArray(elems []ByteJson) ByteJson {
	return mergeToArray(elems)
}

// CreateObject builds an object document. keys and vals must have the same
// length.
func CreateObject(keys [][]byte, vals []ByteJson) ByteJson {
	if len(keys) != len(vals) {
		panic(corrupted("%d keys for %d values", len(keys), len(vals)))
	}
	return mergeToObject(keys, vals)
}
