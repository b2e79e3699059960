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
	"github.com/matrixorigin/mojson/pkg/common/moerr"
	"github.com/matrixorigin/mojson/pkg/common/util"
	"github.com/matrixorigin/mojson/pkg/container/bytejson"
)

// Value owns one encoded json document, or nothing at all when it is the
// absent value. A Value is never modified after construction and may be
// read from many goroutines.
type Value struct {
	data []byte
}

var renderOptions = bytejson.RenderOptions{SingleLinePretty: true}

func newValue(bj bytejson.ByteJson) Value {
	return Value{data: bj.Marshal()}
}

// FromText parses json text. The empty input is the absent value.
func FromText(text []byte) (Value, error) {
	var v Value
	err := ParseInto(text, &v)
	return v, err
}

// ParseInto parses json text into out. out is left untouched on error.
func ParseInto(text []byte, out *Value) error {
	if len(text) == 0 {
		*out = Value{}
		return nil
	}
	var bj bytejson.ByteJson
	err := callCodec(func() (err error) {
		bj, err = bytejson.ParseFromByteSlice(text)
		return err
	})
	if err != nil {
		if IsCorruption(err) {
			return err
		}
		return newParseError(text, err)
	}
	*out = newValue(bj)
	return nil
}

// FromBytes wraps the storage form of a document, as written by
// SerializeTo. The bytes are checked and copied.
func FromBytes(data []byte) (Value, error) {
	if err := bytejson.Validate(data); err != nil {
		return Value{}, moerr.NewJsonCorruptedNoCtx("%v", err)
	}
	return Value{data: util.CloneBytes(data)}, nil
}

func FromNull() Value {
	return newValue(bytejson.NullJson)
}

func FromBool(b bool) Value {
	return newValue(bytejson.CreateBool(b))
}

func FromInt(i int64) Value {
	return newValue(bytejson.CreateInt64(i))
}

func FromUInt(u uint64) Value {
	return newValue(bytejson.CreateUint64(u))
}

func FromDouble(f float64) Value {
	return newValue(bytejson.CreateFloat64(f))
}

// FromString builds a string value holding a copy of s.
func FromString(s []byte) Value {
	return newValue(bytejson.CreateString(s))
}

// NoneValue is the absent value.
func NoneValue() Value {
	return Value{}
}

// MinBoundValue orders before every other value.
func MinBoundValue() Value {
	return newValue(bytejson.MinKeyJson)
}

// MaxBoundValue orders after every other value.
func MaxBoundValue() Value {
	return newValue(bytejson.MaxKeyJson)
}

func (v Value) view() bytejson.ByteJson {
	return bytejson.View(v.data)
}

func (v Value) Type() JsonType {
	return typeOf(v.view())
}

func (v Value) IsNone() bool {
	return len(v.data) == 0
}

func (v Value) IsNull() bool {
	return v.Type() == JsonNull
}

func (v Value) AsBool() (b bool, err error) {
	bj := v.view()
	err = callCodec(func() (err error) {
		b, err = bj.Bool()
		return err
	})
	return b, translate(bj, "bool", err)
}

// AsInt reads any number as int64. Doubles are truncated toward zero.
func (v Value) AsInt() (i int64, err error) {
	bj := v.view()
	err = callCodec(func() (err error) {
		i, err = bj.Int64()
		return err
	})
	return i, translate(bj, "int", err)
}

// AsUInt reads a non negative number as uint64.
func (v Value) AsUInt() (u uint64, err error) {
	bj := v.view()
	err = callCodec(func() (err error) {
		u, err = bj.Uint64()
		return err
	})
	return u, translate(bj, "uint", err)
}

func (v Value) AsDouble() (f float64, err error) {
	bj := v.view()
	err = callCodec(func() (err error) {
		f, err = bj.Float64()
		return err
	})
	return f, translate(bj, "double", err)
}

// AsString returns the bytes of a string value. The result is borrowed
// from v and must not be modified.
func (v Value) AsString() (s []byte, err error) {
	bj := v.view()
	err = callCodec(func() (err error) {
		s, err = bj.Str()
		return err
	})
	return s, translate(bj, "string", err)
}

// ToText renders v as single line json, with a space after every ':' and
// ','. The absent value renders as the empty string. An error means the
// encoded buffer is corrupted.
func (v Value) ToText() (string, error) {
	return v.ToTextWith(renderOptions)
}

// ToTextWith is ToText with the rendering options given per call, for
// instance the compact form without spaces after separators.
func (v Value) ToTextWith(opts bytejson.RenderOptions) (string, error) {
	if v.IsNone() {
		return "", nil
	}
	var buf []byte
	err := callCodec(func() error {
		buf = v.view().AppendJSON(make([]byte, 0, len(v.data)*3/2), opts)
		return nil
	})
	if err != nil {
		return "", err
	}
	return util.UnsafeBytesToString(buf), nil
}

// ToTextLossy is ToText with failures rendered as the empty string. It is
// meant for logs and diagnostics.
func (v Value) ToTextLossy() string {
	s, err := v.ToText()
	if err != nil {
		return ""
	}
	return s
}

func (v Value) String() string {
	return v.ToTextLossy()
}

// SerializedSize is the length of the storage form of v.
func (v Value) SerializedSize() int {
	return len(v.data)
}

// SerializeTo writes the storage form of v to dst, which must hold at least
// SerializedSize bytes, and returns the number of bytes written.
func (v Value) SerializeTo(dst []byte) int {
	if len(dst) < len(v.data) {
		panic(moerr.NewInternalErrorNoCtx("serialize json value of %d bytes into %d bytes", len(v.data), len(dst)))
	}
	return copy(dst, v.data)
}

// Slice returns the storage form of v without copying.
func (v Value) Slice() []byte {
	return v.data
}
