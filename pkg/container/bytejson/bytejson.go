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
	"math"
	"sort"
)

// Marshal transform bytejson to []byte,for storage
func (bj ByteJson) Marshal() []byte {
	return bj.AppendMarshal(make([]byte, 0, bj.StorageSize()))
}

// AppendMarshal appends the storage form of bj to buf. The absent document
// has an empty storage form.
func (bj ByteJson) AppendMarshal(buf []byte) []byte {
	if bj.Type == TpCodeNone {
		return buf
	}
	buf = append(buf, byte(bj.Type))
	return append(buf, bj.Data...)
}

// StorageSize returns the length of the storage form of bj.
func (bj ByteJson) StorageSize() int {
	if bj.Type == TpCodeNone {
		return 0
	}
	return len(bj.Data) + 1
}

// Unmarshal transform storage []byte to bytejson. The result borrows buf.
// An empty buf is the absent document.
func (bj *ByteJson) Unmarshal(buf []byte) error {
	if err := Validate(buf); err != nil {
		return err
	}
	*bj = View(buf)
	return nil
}

// View returns the document stored in buf without checking it. buf must
// hold a well formed storage form, as produced by Marshal.
func View(buf []byte) ByteJson {
	if len(buf) == 0 {
		return NoneJson
	}
	return ByteJson{Type: TpCode(buf[0]), Data: buf[1:]}
}

func (bj ByteJson) IsNone() bool {
	return bj.Type == TpCodeNone
}

func (bj ByteJson) IsNull() bool {
	return bj.Type == TpCodeLiteral && bj.Data[0] == LiteralNull
}

func (bj ByteJson) IsBool() bool {
	return bj.Type == TpCodeLiteral && (bj.Data[0] == LiteralTrue || bj.Data[0] == LiteralFalse)
}

func (bj ByteJson) GetElemCnt() int {
	return int(endian.Uint32(bj.Data))
}

func (bj ByteJson) GetInt64() int64 {
	return int64(bj.GetUint64())
}

func (bj ByteJson) GetUint64() uint64 {
	return endian.Uint64(bj.Data)
}

func (bj ByteJson) GetFloat64() float64 {
	return math.Float64frombits(bj.GetUint64())
}

func (bj ByteJson) GetString() []byte {
	num, length := calStrLen(bj.Data)
	return bj.Data[length : length+num]
}

// Bool returns the value of a true or false literal.
func (bj ByteJson) Bool() (bool, error) {
	if !bj.IsBool() {
		return false, typeMismatch(bj.Type, "bool")
	}
	return bj.Data[0] == LiteralTrue, nil
}

// Int64 converts a number to int64. Floats are truncated toward zero.
func (bj ByteJson) Int64() (int64, error) {
	switch bj.Type {
	case TpCodeInt64:
		return bj.GetInt64(), nil
	case TpCodeUint64:
		u := bj.GetUint64()
		if u > math.MaxInt64 {
			return 0, outOfRange(bj.Type, "int64")
		}
		return int64(u), nil
	case TpCodeFloat64:
		f := bj.GetFloat64()
		if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, outOfRange(bj.Type, "int64")
		}
		return int64(f), nil
	}
	return 0, typeMismatch(bj.Type, "int64")
}

// Uint64 converts a non negative number to uint64. Floats are truncated
// toward zero.
func (bj ByteJson) Uint64() (uint64, error) {
	switch bj.Type {
	case TpCodeInt64:
		i := bj.GetInt64()
		if i < 0 {
			return 0, outOfRange(bj.Type, "uint64")
		}
		return uint64(i), nil
	case TpCodeUint64:
		return bj.GetUint64(), nil
	case TpCodeFloat64:
		f := bj.GetFloat64()
		if math.IsNaN(f) || f <= -1 || f >= math.MaxUint64 {
			return 0, outOfRange(bj.Type, "uint64")
		}
		return uint64(f), nil
	}
	return 0, typeMismatch(bj.Type, "uint64")
}

// Float64 converts any number to float64.
func (bj ByteJson) Float64() (float64, error) {
	switch bj.Type {
	case TpCodeInt64:
		return float64(bj.GetInt64()), nil
	case TpCodeUint64:
		return float64(bj.GetUint64()), nil
	case TpCodeFloat64:
		return bj.GetFloat64(), nil
	}
	return 0, typeMismatch(bj.Type, "float64")
}

// Str returns the bytes of a string document. The result borrows bj.
func (bj ByteJson) Str() ([]byte, error) {
	if bj.Type != TpCodeString {
		return nil, typeMismatch(bj.Type, "string")
	}
	return bj.GetString(), nil
}

// Len returns the number of members of an object or elements of an array,
// and 0 for any other document.
func (bj ByteJson) Len() int {
	if bj.Type != TpCodeObject && bj.Type != TpCodeArray {
		return 0
	}
	return bj.GetElemCnt()
}

// ArrayElem returns the i-th element of an array.
func (bj ByteJson) ArrayElem(i int) ByteJson {
	if bj.Type != TpCodeArray || i < 0 || i >= bj.GetElemCnt() {
		panic(corrupted("array element %d out of range", i))
	}
	return bj.getArrayElem(i)
}

// ObjectMember returns the i-th member of an object in key order.
func (bj ByteJson) ObjectMember(i int) ([]byte, ByteJson) {
	if bj.Type != TpCodeObject || i < 0 || i >= bj.GetElemCnt() {
		panic(corrupted("object member %d out of range", i))
	}
	return bj.getObjectKey(i), bj.getObjectVal(i)
}

// QueryKey looks up the member named key of an object.
func (bj ByteJson) QueryKey(key []byte) (ByteJson, bool) {
	if bj.Type != TpCodeObject {
		return ByteJson{}, false
	}
	cnt := bj.GetElemCnt()
	i := sort.Search(cnt, func(i int) bool {
		return bytes.Compare(bj.getObjectKey(i), key) >= 0
	})
	if i < cnt && bytes.Equal(bj.getObjectKey(i), key) {
		return bj.getObjectVal(i), true
	}
	return ByteJson{}, false
}

func (bj ByteJson) getObjectKey(i int) []byte {
	keyOff := int(endian.Uint32(bj.Data[headerSize+i*keyEntrySize:]))
	keyLen := int(endian.Uint16(bj.Data[headerSize+i*keyEntrySize+keyOriginOff:]))
	return bj.Data[keyOff : keyOff+keyLen]
}

func (bj ByteJson) getArrayElem(i int) ByteJson {
	return bj.getValEntry(headerSize + i*valEntrySize)
}

func (bj ByteJson) getObjectVal(i int) ByteJson {
	cnt := bj.GetElemCnt()
	return bj.getValEntry(headerSize + cnt*keyEntrySize + i*valEntrySize)
}

func (bj ByteJson) getValEntry(off int) ByteJson {
	tpCode := TpCode(bj.Data[off])
	valOff := endian.Uint32(bj.Data[off+valTypeSize:])
	switch tpCode {
	case TpCodeLiteral:
		return ByteJson{Type: TpCodeLiteral, Data: bj.Data[off+valTypeSize : off+valTypeSize+1]}
	case TpCodeMinKey, TpCodeMaxKey:
		return ByteJson{Type: tpCode}
	case TpCodeUint64, TpCodeInt64, TpCodeFloat64:
		return ByteJson{Type: tpCode, Data: bj.Data[valOff : valOff+numberSize]}
	case TpCodeString:
		num, length := calStrLen(bj.Data[valOff:])
		totalLen := uint32(num) + uint32(length)
		return ByteJson{Type: tpCode, Data: bj.Data[valOff : valOff+totalLen]}
	case TpCodeObject, TpCodeArray:
		dataBytes := endian.Uint32(bj.Data[valOff+docSizeOff:])
		return ByteJson{Type: tpCode, Data: bj.Data[valOff : valOff+dataBytes]}
	}
	panic(corrupted("invalid value entry type:%d", tpCode))
}
