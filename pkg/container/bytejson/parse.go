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
	"strconv"

	"github.com/goccy/go-json"

	"github.com/matrixorigin/mojson/pkg/common/util"
)

// MaxNestingDepth bounds the nesting of arrays and objects accepted by the
// parser.
const MaxNestingDepth = 1024

func ParseFromString(s string) (ByteJson, error) {
	return ParseFromByteSlice(util.UnsafeStringToBytes(s))
}

// ParseFromByteSlice parses one complete json document. Surrounding
// whitespace is allowed, any other trailing input is an error. The result
// does not reference s.
func ParseFromByteSlice(s []byte) (bj ByteJson, err error) {
	if len(bytes.TrimSpace(s)) == 0 {
		return bj, &SyntaxError{Msg: "empty json text"}
	}
	if err = checkSyntax(s); err != nil {
		return bj, err
	}
	var decoder = json.NewDecoder(bytes.NewReader(s))
	decoder.UseNumber()
	var in interface{}
	if err = decoder.Decode(&in); err != nil {
		return bj, &SyntaxError{Msg: err.Error()}
	}
	return addElem(in, 0)
}

// checkSyntax runs the token decoder over s and returns the first error
// with its line and column. It is stricter than the document decoder about
// literals, numbers and string contents.
func checkSyntax(s []byte) error {
	d := NewDecoder(s)
	for {
		tok, err := d.Read()
		if err != nil {
			if se, ok := err.(*SyntaxError); ok {
				return se
			}
			return &SyntaxError{Offset: len(s), Msg: err.Error()}
		}
		if tok.Kind() == KdEOF {
			return nil
		}
	}
}

func addElem(in interface{}, depth int) (ByteJson, error) {
	if depth > MaxNestingDepth {
		return ByteJson{}, &SyntaxError{Msg: "exceeded max nesting depth " + strconv.Itoa(MaxNestingDepth)}
	}
	switch x := in.(type) {
	case nil:
		return NullJson, nil
	case bool:
		return CreateBool(x), nil
	case json.Number:
		return addNumber(string(x))
	case string:
		return CreateString(util.UnsafeStringToBytes(x)), nil
	case []interface{}:
		elems := make([]ByteJson, 0, len(x))
		for _, v := range x {
			elem, err := addElem(v, depth+1)
			if err != nil {
				return ByteJson{}, err
			}
			elems = append(elems, elem)
		}
		return mergeToArray(elems), nil
	case map[string]interface{}:
		keys := make([][]byte, 0, len(x))
		vals := make([]ByteJson, 0, len(x))
		for k, v := range x {
			if len(k) > math.MaxUint16 {
				return ByteJson{}, &SyntaxError{Msg: "object key longer than " + strconv.Itoa(math.MaxUint16) + " bytes"}
			}
			val, err := addElem(v, depth+1)
			if err != nil {
				return ByteJson{}, err
			}
			keys = append(keys, util.UnsafeStringToBytes(k))
			vals = append(vals, val)
		}
		return mergeToObject(keys, vals), nil
	}
	return ByteJson{}, &SyntaxError{Msg: "unsupported json value"}
}

// addNumber types a number literal: integers that fit int64 are signed,
// larger non negative integers that fit uint64 are unsigned, everything
// else is a float64.
func addNumber(s string) (ByteJson, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return CreateInt64(i), nil
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return CreateUint64(u), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return ByteJson{}, &SyntaxError{Msg: "number out of range " + s}
	}
	return CreateFloat64(f), nil
}
