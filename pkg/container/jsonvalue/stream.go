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

//go:generate mockgen -source=stream.go -destination=test/stream_mock.go -package=mock_jsonvalue

// StreamNode is the current value of a forward only json reader, such as
// *bytejson.Node. Failures of the reader surface through its accessors.
type StreamNode interface {
	Type() (bytejson.NodeType, error)
	NumberType() (bytejson.NumberType, error)
	Bool() (bool, error)
	Int64() (int64, error)
	Uint64() (uint64, error)
	Float64() (float64, error)
	String() (string, error)
	// RawJSON is the text of the node as it appears in the input.
	RawJSON() ([]byte, error)
	// Raw is the input covered by the node, available even when reading
	// the node failed.
	Raw() []byte
}

var _ StreamNode = (*bytejson.Node)(nil)

// FromStreamNode builds a Value from the node a streaming reader stands on.
// Scalars are built directly, arrays and objects are parsed again from
// their raw text. Every failure is a data quality error; the node is not
// retained.
func FromStreamNode(node StreamNode) (Value, error) {
	tp, err := node.Type()
	if err != nil {
		return Value{}, newDataQualityError(node.Raw(), err)
	}
	switch tp {
	case bytejson.NodeNull:
		return FromNull(), nil
	case bytejson.NodeBool:
		b, err := node.Bool()
		if err != nil {
			return Value{}, newDataQualityError(node.Raw(), err)
		}
		return FromBool(b), nil
	case bytejson.NodeNumber:
		return fromStreamNumber(node)
	case bytejson.NodeString:
		s, err := node.String()
		if err != nil {
			return Value{}, newDataQualityError(node.Raw(), err)
		}
		return FromString(util.UnsafeStringToBytes(s)), nil
	case bytejson.NodeArray, bytejson.NodeObject:
		return fromStreamRaw(node)
	}
	return Value{}, unsupported("json type", tp.String(), uint8(tp))
}

// FromStreamObject builds a Value from an object node by parsing its raw
// text.
func FromStreamObject(obj StreamNode) (Value, error) {
	return fromStreamRaw(obj)
}

func fromStreamNumber(node StreamNode) (Value, error) {
	nt, err := node.NumberType()
	if err != nil {
		return Value{}, newDataQualityError(node.Raw(), err)
	}
	switch nt {
	case bytejson.NumberSigned:
		i, err := node.Int64()
		if err != nil {
			return Value{}, newDataQualityError(node.Raw(), err)
		}
		return FromInt(i), nil
	case bytejson.NumberUnsigned:
		u, err := node.Uint64()
		if err != nil {
			return Value{}, newDataQualityError(node.Raw(), err)
		}
		return FromUInt(u), nil
	case bytejson.NumberFloating:
		f, err := node.Float64()
		if err != nil {
			return Value{}, newDataQualityError(node.Raw(), err)
		}
		return FromDouble(f), nil
	}
	return Value{}, unsupported("number type", "", uint8(nt))
}

func fromStreamRaw(node StreamNode) (Value, error) {
	raw, err := node.RawJSON()
	if err != nil {
		return Value{}, newDataQualityError(node.Raw(), err)
	}
	v, err := FromText(raw)
	if err != nil {
		return Value{}, newDataQualityError(raw, err)
	}
	return v, nil
}

func unsupported(what string, name string, tag uint8) error {
	if name == "" || name == "unknown" {
		return moerr.NewDataQualityNoCtx("unsupported %s: %d", what, tag)
	}
	return moerr.NewDataQualityNoCtx("unsupported %s: %s", what, name)
}
