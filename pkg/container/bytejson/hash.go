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
	"math"

	"github.com/cespare/xxhash/v2"
)

// tags of the canonical form fed to the hash
const (
	hashNone byte = iota + 'A'
	hashNull
	hashInt
	hashUint
	hashFloat
	hashString
	hashArray
	hashObject
	hashMinKey
	hashMaxKey
)

// NormalizedHash hashes the canonical form of bj. Numbers are normalized
// first: booleans hash as 0 and 1, integers hash as the float64 they
// compare as, integral floats hash like the integer of the same value and
// every NaN hashes alike. Documents that compare equal therefore hash equal.
func NormalizedHash(bj ByteJson) uint64 {
	h := xxhash.New()
	var scratch [9]byte
	writeHash(h, bj, scratch[:])
	return h.Sum64()
}

func writeHash(h *xxhash.Digest, bj ByteJson, scratch []byte) {
	switch bj.Type {
	case TpCodeNone:
		writeTag(h, hashNone, scratch)
	case TpCodeMinKey:
		writeTag(h, hashMinKey, scratch)
	case TpCodeMaxKey:
		writeTag(h, hashMaxKey, scratch)
	case TpCodeLiteral:
		switch bj.Data[0] {
		case LiteralTrue:
			writeWord(h, hashInt, 1, scratch)
		case LiteralFalse:
			writeWord(h, hashInt, 0, scratch)
		default:
			writeTag(h, hashNull, scratch)
		}
	case TpCodeInt64:
		// integers beyond 2^53 equal the float they round to
		writeFloat(h, float64(bj.GetInt64()), scratch)
	case TpCodeUint64:
		writeFloat(h, float64(bj.GetUint64()), scratch)
	case TpCodeFloat64:
		writeFloat(h, bj.GetFloat64(), scratch)
	case TpCodeString:
		s := bj.GetString()
		writeWord(h, hashString, uint64(len(s)), scratch)
		_, _ = h.Write(s)
	case TpCodeArray:
		cnt := bj.GetElemCnt()
		writeWord(h, hashArray, uint64(cnt), scratch)
		for i := 0; i < cnt; i++ {
			writeHash(h, bj.getArrayElem(i), scratch)
		}
	case TpCodeObject:
		cnt := bj.GetElemCnt()
		writeWord(h, hashObject, uint64(cnt), scratch)
		for i := 0; i < cnt; i++ {
			key := bj.getObjectKey(i)
			writeWord(h, hashString, uint64(len(key)), scratch)
			_, _ = h.Write(key)
			writeHash(h, bj.getObjectVal(i), scratch)
		}
	default:
		panic(corrupted("invalid type:%d", bj.Type))
	}
}

func writeFloat(h *xxhash.Digest, f float64, scratch []byte) {
	switch {
	case math.IsNaN(f):
		writeWord(h, hashFloat, math.Float64bits(math.NaN()), scratch)
	case f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64:
		// -0 lands here as well
		writeWord(h, hashInt, uint64(int64(f)), scratch)
	case f == math.Trunc(f) && f >= 0 && f < math.MaxUint64:
		writeWord(h, hashUint, uint64(f), scratch)
	default:
		writeWord(h, hashFloat, math.Float64bits(f), scratch)
	}
}

func writeTag(h *xxhash.Digest, tag byte, scratch []byte) {
	scratch[0] = tag
	_, _ = h.Write(scratch[:1])
}

func writeWord(h *xxhash.Digest, tag byte, v uint64, scratch []byte) {
	scratch[0] = tag
	endian.PutUint64(scratch[1:], v)
	_, _ = h.Write(scratch[:9])
}
