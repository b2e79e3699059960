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

package jsonvalue

import (
	"bytes"

	"github.com/matrixorigin/mojson/pkg/container/bytejson"
)

// Compare orders v against other and returns -1, 0 or 1.
//
// Objects compare by walking the members of v in key order and looking each
// key up in other: a key missing from other makes v greater, members only
// other has are never looked at. Arrays compare by index up to the length
// of v, skipping indexes other does not have. Both walks are directional,
// so {"a":1} compares equal to {"a":1,"b":2} but not the other way round.
//
// Numbers of any subtype compare by value. Values of different groups order
// as none < null < number < string < array < object, with the min and max
// bounds before and after everything.
func (v Value) Compare(other Value) int {
	return compareByteJson(v.view(), other.view())
}

// CompareBytes compares two storage forms without building Values. An empty
// span is the absent value. The spans must hold well formed documents; a
// malformed one is a programming error and panics.
func CompareBytes(lhs, rhs []byte) int {
	return compareByteJson(bytejson.View(lhs), bytejson.View(rhs))
}

func compareByteJson(left, right bytejson.ByteJson) int {
	lt, rt := typeOf(left), typeOf(right)
	switch {
	case lt == JsonObject && rt == JsonObject:
		return compareObject(left, right)
	case lt == JsonArray && rt == JsonArray:
		return compareArray(left, right)
	}

	lg, rg := lt.group(), rt.group()
	if lg == rg {
		if lt == rt {
			return compareSameType(lt, left, right)
		}
		if lg == groupNumeric {
			return compareNumeric(lt, left, rt, right)
		}
		return 0
	}

	switch {
	case lg == groupMinBound:
		return -1
	case rg == groupMinBound:
		return 1
	case lg == groupMaxBound:
		return 1
	case rg == groupMaxBound:
		return -1
	}
	return sign(int(lg) - int(rg))
}

func compareObject(left, right bytejson.ByteJson) int {
	for i, n := 0, left.Len(); i < n; i++ {
		key, lv := left.ObjectMember(i)
		rv, ok := right.QueryKey(key)
		if !ok {
			return 1
		}
		if x := compareByteJson(lv, rv); x != 0 {
			return x
		}
	}
	return 0
}

func compareArray(left, right bytejson.ByteJson) int {
	n := left.Len()
	if rn := right.Len(); rn < n {
		n = rn
	}
	for i := 0; i < n; i++ {
		if x := compareByteJson(left.ArrayElem(i), right.ArrayElem(i)); x != 0 {
			return x
		}
	}
	return 0
}

func compareSameType(tp JsonType, left, right bytejson.ByteJson) int {
	switch tp {
	case JsonBool:
		return sign(boolToInt(isTrue(left)) - boolToInt(isTrue(right)))
	case JsonInt:
		return compareInt64(left.GetInt64(), right.GetInt64())
	case JsonUInt:
		return compareUint64(left.GetUint64(), right.GetUint64())
	case JsonDouble:
		return compareFloat64(left.GetFloat64(), right.GetFloat64())
	case JsonString:
		return bytes.Compare(left.GetString(), right.GetString())
	case JsonNone, JsonNull, JsonMinBound, JsonMaxBound:
		return 0
	}
	panic("unreachable: containers are compared before scalars")
}

// compareNumeric compares numbers of different subtypes. Whole number
// subtypes compare exactly, anything involving a double compares as double.
func compareNumeric(lt JsonType, left bytejson.ByteJson, rt JsonType, right bytejson.ByteJson) int {
	if lt.integral() && rt.integral() {
		lneg, lmag := integral(lt, left)
		rneg, rmag := integral(rt, right)
		switch {
		case lneg && !rneg:
			return -1
		case !lneg && rneg:
			return 1
		case lneg:
			// both negative: the larger magnitude is the smaller number
			return compareUint64(rmag, lmag)
		}
		return compareUint64(lmag, rmag)
	}
	return compareFloat64(toFloat64(lt, left), toFloat64(rt, right))
}

// integral splits a whole number into its sign and magnitude.
func integral(tp JsonType, bj bytejson.ByteJson) (bool, uint64) {
	switch tp {
	case JsonBool:
		return false, uint64(boolToInt(isTrue(bj)))
	case JsonInt:
		i := bj.GetInt64()
		if i < 0 {
			return true, uint64(-(i + 1)) + 1
		}
		return false, uint64(i)
	}
	return false, bj.GetUint64()
}

func toFloat64(tp JsonType, bj bytejson.ByteJson) float64 {
	switch tp {
	case JsonBool:
		return float64(boolToInt(isTrue(bj)))
	case JsonInt:
		return float64(bj.GetInt64())
	case JsonUInt:
		return float64(bj.GetUint64())
	}
	return bj.GetFloat64()
}

func isTrue(bj bytejson.ByteJson) bool {
	return bj.Data[0] == bytejson.LiteralTrue
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func compareInt64(l, r int64) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

func compareUint64(l, r uint64) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

// compareFloat64 follows IEEE ordering; a NaN compares equal to anything.
func compareFloat64(l, r float64) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

// Hash returns the normalized hash of v. Values of different numeric
// subtypes that compare equal hash equal. Container equality under Compare
// is directional and is not reflected by Hash: {"a":1} and {"a":1,"b":2}
// compare equal but hash differently.
func (v Value) Hash() int64 {
	return int64(bytejson.NormalizedHash(v.view()))
}

// HashBytes is Hash over a storage form.
func HashBytes(data []byte) int64 {
	return int64(bytejson.NormalizedHash(bytejson.View(data)))
}

