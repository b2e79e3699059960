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
	"math/bits"
	"strconv"
	"unicode/utf8"
)

func (bj ByteJson) String() string {
	return string(bj.AppendJSON(nil, RenderOptions{SingleLinePretty: true}))
}

// MarshalJSON transform bytejson to []byte,for visible
func (bj ByteJson) MarshalJSON() ([]byte, error) {
	ret := make([]byte, 0, len(bj.Data)*3/2)
	return bj.AppendJSON(ret, RenderOptions{}), nil
}

// AppendJSON renders bj as json text and appends it to buf. Non finite
// floats render as null and invalid UTF-8 in strings is replaced by U+FFFD,
// so a well formed document always renders. A malformed one panics with an
// error wrapping ErrCorrupted.
func (bj ByteJson) AppendJSON(buf []byte, opts RenderOptions) []byte {
	switch bj.Type {
	case TpCodeArray:
		buf = bj.toArray(buf, opts)
	case TpCodeObject:
		buf = bj.toObject(buf, opts)
	case TpCodeInt64:
		buf = bj.toInt64(buf)
	case TpCodeUint64:
		buf = bj.toUint64(buf)
	case TpCodeLiteral:
		buf = bj.toLiteral(buf)
	case TpCodeFloat64:
		buf = bj.toFloat64(buf)
	case TpCodeString:
		buf = bj.toString(buf)
	case TpCodeNone:
		buf = append(buf, "none"...)
	case TpCodeMinKey:
		buf = append(buf, "minkey"...)
	case TpCodeMaxKey:
		buf = append(buf, "maxkey"...)
	default:
		panic(corrupted("invalid type:%d", bj.Type))
	}
	return buf
}

func separators(opts RenderOptions) (string, string) {
	if opts.SingleLinePretty {
		return ", ", ": "
	}
	return ",", ":"
}

func (bj ByteJson) toArray(buf []byte, opts RenderOptions) []byte {
	cnt := bj.GetElemCnt()
	elemSep, _ := separators(opts)
	buf = append(buf, '[')
	for i := 0; i < cnt; i++ {
		if i != 0 {
			buf = append(buf, elemSep...)
		}
		buf = bj.getArrayElem(i).AppendJSON(buf, opts)
	}
	return append(buf, ']')
}

func (bj ByteJson) toObject(buf []byte, opts RenderOptions) []byte {
	cnt := bj.GetElemCnt()
	elemSep, keySep := separators(opts)
	buf = append(buf, '{')
	for i := 0; i < cnt; i++ {
		if i != 0 {
			buf = append(buf, elemSep...)
		}
		buf = appendString(buf, bj.getObjectKey(i))
		buf = append(buf, keySep...)
		buf = bj.getObjectVal(i).AppendJSON(buf, opts)
	}
	return append(buf, '}')
}

func (bj ByteJson) toInt64(buf []byte) []byte {
	return strconv.AppendInt(buf, bj.GetInt64(), 10)
}

func (bj ByteJson) toUint64(buf []byte) []byte {
	return strconv.AppendUint(buf, bj.GetUint64(), 10)
}

func (bj ByteJson) toLiteral(buf []byte) []byte {
	litTp := bj.Data[0]
	switch litTp {
	case LiteralNull:
		buf = append(buf, "null"...)
	case LiteralTrue:
		buf = append(buf, "true"...)
	case LiteralFalse:
		buf = append(buf, "false"...)
	default:
		panic(corrupted("invalid literal type:%d", litTp))
	}
	return buf
}

func (bj ByteJson) toFloat64(buf []byte) []byte {
	f := bj.GetFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return append(buf, "null"...)
	}
	// https://github.com/golang/go/issues/14135
	var format byte
	abs := math.Abs(f)
	if abs == 0 || 1e-6 <= abs && abs < 1e21 {
		format = 'f'
	} else {
		format = 'e'
	}
	return strconv.AppendFloat(buf, f, format, -1, 64)
}

//transform byte string to visible string
func (bj ByteJson) toString(buf []byte) []byte {
	return appendString(buf, bj.GetString())
}

// indexNeedEscapeInString returns the index of the character that needs
// escaping. If no characters need escaping, this returns the input length.
func indexNeedEscapeInString(s string) int {
	for i, r := range s {
		if r < ' ' || r == '\\' || r == '"' || r == utf8.RuneError {
			return i
		}
	}
	return len(s)
}

func appendString(out []byte, data []byte) []byte {
	in := string(data)
	out = append(out, '"')
	i := indexNeedEscapeInString(in)
	in, out = in[i:], append(out, in[:i]...)
	for len(in) > 0 {
		switch r, n := utf8.DecodeRuneInString(in); {
		case r == utf8.RuneError && n == 1:
			out = append(out, "\ufffd"...)
			in = in[n:]
		case r < ' ' || r == '"' || r == '\\':
			out = append(out, '\\')
			switch r {
			case '"', '\\':
				out = append(out, byte(r))
			case '\b':
				out = append(out, 'b')
			case '\f':
				out = append(out, 'f')
			case '\n':
				out = append(out, 'n')
			case '\r':
				out = append(out, 'r')
			case '\t':
				out = append(out, 't')
			default:
				out = append(out, 'u')
				out = append(out, "0000"[1+(bits.Len32(uint32(r))-1)/4:]...)
				out = strconv.AppendUint(out, uint64(r), 16)
			}
			in = in[n:]
		default:
			i := indexNeedEscapeInString(in[n:])
			in, out = in[n+i:], append(out, in[:n+i]...)
		}
	}
	out = append(out, '"')
	return out
}
