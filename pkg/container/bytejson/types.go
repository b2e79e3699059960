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
	"encoding/binary"
)

type TpCode byte

// ByteJson is a view of one binary encoded json document. Data is the body
// without the type code; it is borrowed, never copied, by the accessors.
type ByteJson struct {
	Data []byte
	Type TpCode
}

const (
	// TpCodeNone marks the absent document. It is never serialized: the
	// absent document is stored as an empty byte span.
	TpCodeNone    TpCode = 0x00
	TpCodeObject  TpCode = 0x01
	TpCodeArray   TpCode = 0x03
	TpCodeLiteral TpCode = 0x04
	TpCodeInt64   TpCode = 0x09
	TpCodeUint64  TpCode = 0x0a
	TpCodeFloat64 TpCode = 0x0b
	TpCodeString  TpCode = 0x0c
	// TpCodeMinKey and TpCodeMaxKey are range scan bounds supplied by the
	// query engine. They order before and after every other document.
	TpCodeMinKey TpCode = 0x1e
	TpCodeMaxKey TpCode = 0x1f
)

const (
	headerSize   = 8 // element size + data size.
	docSizeOff   = 4 //
	keyEntrySize = 6 // keyOff +  keyLen
	keyOriginOff = 4 // offset -> uint32
	valTypeSize  = 1 // TpCode -> byte
	valEntrySize = 5 // TpCode + offset-or-inline-value
	numberSize   = 8 // float64|int64|uint64
)

const (
	LiteralNull byte = iota + 1
	LiteralTrue
	LiteralFalse
)

var (
	endian = binary.LittleEndian
)

var (
	// NoneJson is the view of an empty span.
	NoneJson   = ByteJson{Type: TpCodeNone}
	NullJson   = ByteJson{Type: TpCodeLiteral, Data: []byte{LiteralNull}}
	TrueJson   = ByteJson{Type: TpCodeLiteral, Data: []byte{LiteralTrue}}
	FalseJson  = ByteJson{Type: TpCodeLiteral, Data: []byte{LiteralFalse}}
	MinKeyJson = ByteJson{Type: TpCodeMinKey}
	MaxKeyJson = ByteJson{Type: TpCodeMaxKey}
)

// RenderOptions controls text rendering. It is passed on every call.
type RenderOptions struct {
	// SingleLinePretty puts a space after ':' and ',' while keeping the
	// whole document on one line.
	SingleLinePretty bool
}

func (tp TpCode) String() string {
	switch tp {
	case TpCodeNone:
		return "none"
	case TpCodeObject:
		return "object"
	case TpCodeArray:
		return "array"
	case TpCodeLiteral:
		return "literal"
	case TpCodeInt64:
		return "int64"
	case TpCodeUint64:
		return "uint64"
	case TpCodeFloat64:
		return "float64"
	case TpCodeString:
		return "string"
	case TpCodeMinKey:
		return "minkey"
	case TpCodeMaxKey:
		return "maxkey"
	}
	return "unknown"
}

func validTpCode(tp TpCode) bool {
	switch tp {
	case TpCodeObject, TpCodeArray, TpCodeLiteral, TpCodeInt64, TpCodeUint64,
		TpCodeFloat64, TpCodeString, TpCodeMinKey, TpCodeMaxKey:
		return true
	}
	return false
}
