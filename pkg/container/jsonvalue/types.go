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
	"fmt"

	"github.com/matrixorigin/mojson/pkg/container/bytejson"
)

// JsonType is the closed set of types a Value can hold.
type JsonType uint8

const (
	JsonNone JsonType = iota
	JsonNull
	JsonBool
	JsonInt
	JsonUInt
	JsonDouble
	JsonString
	JsonArray
	JsonObject
	// JsonMinBound and JsonMaxBound are range scan bounds. They never come
	// from user input.
	JsonMinBound
	JsonMaxBound
)

var jsonTypeNames = [...]string{
	JsonNone:     "none",
	JsonNull:     "null",
	JsonBool:     "bool",
	JsonInt:      "int",
	JsonUInt:     "uint",
	JsonDouble:   "double",
	JsonString:   "string",
	JsonArray:    "array",
	JsonObject:   "object",
	JsonMinBound: "minbound",
	JsonMaxBound: "maxbound",
}

func (t JsonType) String() string {
	if int(t) < len(jsonTypeNames) {
		return jsonTypeNames[t]
	}
	return fmt.Sprintf("JsonType(%d)", uint8(t))
}

// group is the coarse category deciding the first step of a comparison.
// Its value is the ordinal used between different groups.
type group uint8

const (
	groupNone group = iota
	groupNull
	groupNumeric
	groupString
	groupArray
	groupObject
	groupMinBound
	groupMaxBound
)

func (t JsonType) group() group {
	switch t {
	case JsonNone:
		return groupNone
	case JsonNull:
		return groupNull
	case JsonBool, JsonInt, JsonUInt, JsonDouble:
		return groupNumeric
	case JsonString:
		return groupString
	case JsonArray:
		return groupArray
	case JsonObject:
		return groupObject
	case JsonMinBound:
		return groupMinBound
	case JsonMaxBound:
		return groupMaxBound
	}
	panic(fmt.Sprintf("invalid json type %d", uint8(t)))
}

// integral reports whether a numeric type holds whole numbers only.
func (t JsonType) integral() bool {
	return t == JsonBool || t == JsonInt || t == JsonUInt
}

// typeOf never fails: a buffer with an unknown type code, only reachable
// through corruption since FromBytes validates, reads as JsonNone.
func typeOf(bj bytejson.ByteJson) JsonType {
	tp, _ := lookupType(bj)
	return tp
}

func lookupType(bj bytejson.ByteJson) (JsonType, bool) {
	switch bj.Type {
	case bytejson.TpCodeNone:
		return JsonNone, true
	case bytejson.TpCodeLiteral:
		if len(bj.Data) == 0 {
			return JsonNone, false
		}
		if bj.IsNull() {
			return JsonNull, true
		}
		return JsonBool, true
	case bytejson.TpCodeInt64:
		return JsonInt, true
	case bytejson.TpCodeUint64:
		return JsonUInt, true
	case bytejson.TpCodeFloat64:
		return JsonDouble, true
	case bytejson.TpCodeString:
		return JsonString, true
	case bytejson.TpCodeArray:
		return JsonArray, true
	case bytejson.TpCodeObject:
		return JsonObject, true
	case bytejson.TpCodeMinKey:
		return JsonMinBound, true
	case bytejson.TpCodeMaxKey:
		return JsonMaxBound, true
	}
	return JsonNone, false
}
