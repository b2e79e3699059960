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
	"io"
	"strconv"
)

// NodeType is the kind of a node produced by Reader.
type NodeType uint8

const (
	NodeUnknown NodeType = iota
	NodeNull
	NodeBool
	NodeNumber
	NodeString
	NodeArray
	NodeObject
)

func (t NodeType) String() string {
	switch t {
	case NodeNull:
		return "null"
	case NodeBool:
		return "bool"
	case NodeNumber:
		return "number"
	case NodeString:
		return "string"
	case NodeArray:
		return "array"
	case NodeObject:
		return "object"
	}
	return "unknown"
}

// NumberType is the representation a number node fits.
type NumberType uint8

const (
	NumberUnknown NumberType = iota
	NumberSigned
	NumberUnsigned
	NumberFloating
)

// Reader yields the top level values of a sequence of json documents, as in
// newline delimited json. Containers are not materialized: their nodes keep
// the raw text of the whole container.
type Reader struct {
	dec  *Decoder
	data []byte
	err  error
}

func NewReader(data []byte) *Reader {
	return &Reader{dec: NewDecoder(data), data: data}
}

// Next returns the next top level node, or io.EOF after the last one. A
// value that can not be read is returned as a node whose accessors fail;
// the reader stops after it.
func (r *Reader) Next() (*Node, error) {
	if r.err != nil {
		return nil, r.err
	}
	start := r.dec.currPos()
	tok, err := r.dec.Read()
	if err != nil {
		return r.broken(start, err), nil
	}
	n := &Node{tok: tok}
	switch tok.Kind() {
	case KdEOF:
		r.err = io.EOF
		return nil, io.EOF
	case KdNull:
		n.typ = NodeNull
	case KdBool:
		n.typ = NodeBool
	case KdNumber:
		n.typ = NodeNumber
	case KdString:
		n.typ = NodeString
	case KdObjectOpen, KdArrayOpen:
		n.typ = NodeObject
		if tok.Kind() == KdArrayOpen {
			n.typ = NodeArray
		}
		end, err := r.skipContainer()
		if err != nil {
			return r.broken(tok.Pos(), err), nil
		}
		n.raw = r.data[tok.Pos():end]
	default:
		return r.broken(tok.Pos(), &SyntaxError{Offset: tok.Pos(), Msg: "unexpected token " + tok.RawString()}), nil
	}
	if n.raw == nil {
		n.raw = tok.raw
	}
	r.dec.NextDocument()
	return n, nil
}

// skipContainer consumes tokens up to the close of the container just
// opened and returns the end offset of its text.
func (r *Reader) skipContainer() (int, error) {
	depth := 1
	for {
		tok, err := r.dec.Read()
		if err != nil {
			return 0, err
		}
		switch tok.Kind() {
		case KdObjectOpen, KdArrayOpen:
			depth++
		case KdObjectClose, KdArrayClose:
			depth--
			if depth == 0 {
				return tok.Pos() + 1, nil
			}
		case KdEOF:
			return 0, ErrUnexpectedEOF
		}
	}
}

func (r *Reader) broken(start int, err error) *Node {
	r.err = err
	if _, ok := err.(*SyntaxError); !ok {
		err = &SyntaxError{Offset: len(r.data), Msg: err.Error()}
	}
	return &Node{raw: r.data[start:], err: err}
}

// Node is one value read by Reader. Its accessors return the read error
// of a broken value.
type Node struct {
	typ NodeType
	tok Token
	raw []byte
	err error
}

func (n *Node) Type() (NodeType, error) {
	if n.err != nil {
		return NodeUnknown, n.err
	}
	return n.typ, nil
}

// NumberType reports which representation a number fits: signed when it is
// an integer within int64, unsigned when it is a larger integer within
// uint64 and floating when it has a fraction or an exponent. Integers beyond
// uint64 are an error.
func (n *Node) NumberType() (NumberType, error) {
	if err := n.expect(NodeNumber); err != nil {
		return NumberUnknown, err
	}
	if bytes.ContainsAny(n.tok.raw, ".eE") {
		return NumberFloating, nil
	}
	if _, ok := n.tok.Int(64); ok {
		return NumberSigned, nil
	}
	if _, ok := n.tok.Uint(64); ok {
		return NumberUnsigned, nil
	}
	return NumberUnknown, &SyntaxError{Offset: n.tok.Pos(), Msg: "number out of range " + n.tok.RawString()}
}

func (n *Node) Bool() (bool, error) {
	if err := n.expect(NodeBool); err != nil {
		return false, err
	}
	return n.tok.Bool(), nil
}

func (n *Node) Int64() (int64, error) {
	if err := n.expect(NodeNumber); err != nil {
		return 0, err
	}
	v, ok := n.tok.Int(64)
	if !ok {
		return 0, &SyntaxError{Offset: n.tok.Pos(), Msg: "not an int64 " + n.tok.RawString()}
	}
	return v, nil
}

func (n *Node) Uint64() (uint64, error) {
	if err := n.expect(NodeNumber); err != nil {
		return 0, err
	}
	v, ok := n.tok.Uint(64)
	if !ok {
		return 0, &SyntaxError{Offset: n.tok.Pos(), Msg: "not an uint64 " + n.tok.RawString()}
	}
	return v, nil
}

func (n *Node) Float64() (float64, error) {
	if err := n.expect(NodeNumber); err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(n.tok.RawString(), 64)
	if err != nil {
		return 0, &SyntaxError{Offset: n.tok.Pos(), Msg: "not a float64 " + n.tok.RawString()}
	}
	return v, nil
}

// String returns the unescaped text of a string node.
func (n *Node) String() (string, error) {
	if err := n.expect(NodeString); err != nil {
		return "", err
	}
	return n.tok.ParsedString(), nil
}

// RawJSON returns the text of the node as it appears in the input.
func (n *Node) RawJSON() ([]byte, error) {
	if n.err != nil {
		return nil, n.err
	}
	return n.raw, nil
}

// Raw returns the input text covered by the node, also for a broken one.
func (n *Node) Raw() []byte {
	return n.raw
}

// Object returns the node itself when it is an object.
func (n *Node) Object() (*Node, error) {
	if err := n.expect(NodeObject); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Node) expect(t NodeType) error {
	if n.err != nil {
		return n.err
	}
	if n.typ != t {
		return &SyntaxError{Offset: n.tok.Pos(), Msg: "node of type " + n.typ.String() + " is not " + t.String()}
	}
	return nil
}
