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
	"fmt"
	"io"
	"strconv"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// ErrUnexpectedEOF means that the input ended inside a value.
var ErrUnexpectedEOF = io.ErrUnexpectedEOF

// Kind is the kind of a token read by Decoder.
type Kind uint8

const (
	KdInvalid Kind = iota
	KdEOF
	KdNull
	KdBool
	KdNumber
	KdString
	KdName
	KdObjectOpen
	KdObjectClose
	KdArrayOpen
	KdArrayClose
)

var kindNames = [...]string{"<invalid>", "eof", "null", "bool", "number", "string", "name", "{", "}", "[", "]"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KdInvalid]
}

// Token is one value, field name or delimiter of the input. raw aliases the
// input text of the token.
type Token struct {
	kind Kind
	pos  int
	raw  []byte
	boo  bool
	str  string
}

func (t Token) Kind() Kind {
	return t.kind
}

// Pos is the offset of the token in the input.
func (t Token) Pos() int {
	return t.pos
}

func (t Token) RawString() string {
	return string(t.raw)
}

// Bool panics unless the token is a bool.
func (t Token) Bool() bool {
	if t.kind != KdBool {
		panic(fmt.Sprintf("token %q is not a bool", t.raw))
	}
	return t.boo
}

// ParsedString returns the unescaped text of a string or name token.
func (t Token) ParsedString() string {
	if t.kind != KdString && t.kind != KdName {
		panic(fmt.Sprintf("token %q is not a string", t.raw))
	}
	return t.str
}

// Int reports the value of an integer number token that fits bitSize bits.
// Numbers written with a fraction or an exponent are not integers here.
func (t Token) Int(bitSize int) (int64, bool) {
	if t.kind != KdNumber {
		return 0, false
	}
	v, err := strconv.ParseInt(string(t.raw), 10, bitSize)
	return v, err == nil
}

func (t Token) Uint(bitSize int) (uint64, bool) {
	if t.kind != KdNumber {
		return 0, false
	}
	v, err := strconv.ParseUint(string(t.raw), 10, bitSize)
	return v, err == nil
}

// state is what the decoder accepts as the next token.
type state uint8

const (
	stValue      state = iota // any value
	stFirstElem               // a value or ']'
	stFirstName               // a field name or '}'
	stName                    // a field name after ','
	stAfterValue              // ',' or a close, or the end at top level
)

// Decoder splits json text into tokens and checks their order against the
// RFC 8259 grammar. Literals, numbers and strings are matched strictly:
// no leading zeros, no bare fraction dot, no control characters or invalid
// UTF-8 inside strings.
type Decoder struct {
	orig  []byte
	in    []byte
	stack []Kind
	st    state
}

func NewDecoder(b []byte) *Decoder {
	return &Decoder{orig: b, in: b}
}

// Read returns the next token. A KdEOF token is returned once the input is
// exhausted outside of any container.
func (d *Decoder) Read() (Token, error) {
	d.skipSpace()
	if len(d.in) == 0 {
		if len(d.stack) != 0 {
			return Token{}, ErrUnexpectedEOF
		}
		return Token{kind: KdEOF, pos: len(d.orig)}, nil
	}
	pos, c := d.currPos(), d.in[0]
	switch d.st {
	case stAfterValue:
		if len(d.stack) == 0 {
			return Token{}, d.errorAt(pos, "unexpected %s after top level value", d.snippet())
		}
		top := d.stack[len(d.stack)-1]
		switch {
		case c == ',':
			d.in = d.in[1:]
			d.st = stValue
			if top == KdObjectOpen {
				d.st = stName
			}
			return d.Read()
		case c == '}' && top == KdObjectOpen, c == ']' && top == KdArrayOpen:
			return d.closeContainer(pos), nil
		}
		return Token{}, d.errorAt(pos, "unexpected token %s", d.snippet())
	case stFirstElem:
		if c == ']' {
			return d.closeContainer(pos), nil
		}
	case stFirstName:
		if c == '}' {
			return d.closeContainer(pos), nil
		}
	}
	if d.st == stFirstName || d.st == stName {
		return d.readName(pos)
	}
	return d.readValue(pos)
}

// NextDocument lets the decoder accept another top level value once the
// current one is complete. It reports false while a container is open.
func (d *Decoder) NextDocument() bool {
	if len(d.stack) != 0 {
		return false
	}
	d.st = stValue
	return true
}

func (d *Decoder) readValue(pos int) (Token, error) {
	in := d.in
	tok := Token{pos: pos}
	var n int
	switch c := in[0]; {
	case c == '{':
		tok.kind, n = KdObjectOpen, 1
	case c == '[':
		tok.kind, n = KdArrayOpen, 1
	case c == '"':
		s, m, err := d.scanString()
		if err != nil {
			return Token{}, err
		}
		tok.kind, tok.str, n = KdString, s, m
	case c == '-' || ('0' <= c && c <= '9'):
		if n = scanNumber(in); n == 0 {
			return Token{}, d.errorAt(pos, "invalid number %s", d.snippet())
		}
		tok.kind = KdNumber
	default:
		if tok.kind, tok.boo, n = scanLiteral(in); n == 0 {
			return Token{}, d.errorAt(pos, "invalid value %s", d.snippet())
		}
	}
	tok.raw = in[:n]
	d.in = in[n:]
	switch tok.kind {
	case KdObjectOpen:
		d.stack = append(d.stack, tok.kind)
		d.st = stFirstName
	case KdArrayOpen:
		d.stack = append(d.stack, tok.kind)
		d.st = stFirstElem
	default:
		d.st = stAfterValue
	}
	return tok, nil
}

func (d *Decoder) readName(pos int) (Token, error) {
	if d.in[0] != '"' {
		return Token{}, d.errorAt(pos, "unexpected token %s, want a field name", d.snippet())
	}
	s, n, err := d.scanString()
	if err != nil {
		return Token{}, err
	}
	tok := Token{kind: KdName, pos: pos, raw: d.in[:n], str: s}
	d.in = d.in[n:]
	d.skipSpace()
	if len(d.in) == 0 {
		return Token{}, ErrUnexpectedEOF
	}
	if d.in[0] != ':' {
		return Token{}, d.errorAt(d.currPos(), `unexpected character %s, missing ":" after field name`, d.snippet())
	}
	d.in = d.in[1:]
	d.st = stValue
	return tok, nil
}

func (d *Decoder) closeContainer(pos int) Token {
	kind := KdArrayClose
	if d.stack[len(d.stack)-1] == KdObjectOpen {
		kind = KdObjectClose
	}
	d.stack = d.stack[:len(d.stack)-1]
	d.in = d.in[1:]
	d.st = stAfterValue
	return Token{kind: kind, pos: pos, raw: d.orig[pos : pos+1]}
}

func (d *Decoder) skipSpace() {
	for len(d.in) > 0 {
		switch d.in[0] {
		case ' ', '\n', '\r', '\t':
			d.in = d.in[1:]
		default:
			return
		}
	}
}

func (d *Decoder) currPos() int {
	return len(d.orig) - len(d.in)
}

func (d *Decoder) errorAt(pos int, format string, args ...interface{}) error {
	before := d.orig[:pos]
	line := bytes.Count(before, []byte{'\n'}) + 1
	if i := bytes.LastIndexByte(before, '\n'); i >= 0 {
		before = before[i+1:]
	}
	return &SyntaxError{
		Offset: pos,
		Line:   line,
		Column: utf8.RuneCount(before) + 1,
		Msg:    fmt.Sprintf(format, args...),
	}
}

// snippet is the word at the head of the input, quoted in error messages.
func (d *Decoder) snippet() string {
	n := 0
	for n < 32 && gluesTo(d.in, n) {
		n++
	}
	if n == 0 {
		_, n = utf8.DecodeRune(d.in)
	}
	return string(d.in[:n])
}

// gluesTo reports whether in[i] would continue the word before it, so a
// literal or number ending at i is not properly delimited.
func gluesTo(in []byte, i int) bool {
	if i >= len(in) {
		return false
	}
	c := in[i]
	return c == '-' || c == '+' || c == '.' || c == '_' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

var literals = [...]struct {
	text string
	kind Kind
	val  bool
}{
	{"null", KdNull, false},
	{"true", KdBool, true},
	{"false", KdBool, false},
}

func scanLiteral(in []byte) (Kind, bool, int) {
	for _, l := range literals {
		if bytes.HasPrefix(in, []byte(l.text)) && !gluesTo(in, len(l.text)) {
			return l.kind, l.val, len(l.text)
		}
	}
	return KdInvalid, false, 0
}

// scanNumber returns the length of the number at the head of in, 0 when it
// is not a well formed json number.
func scanNumber(in []byte) int {
	i := 0
	if in[0] == '-' {
		i++
	}
	switch {
	case i < len(in) && in[i] == '0':
		i++
	case i < len(in) && '1' <= in[i] && in[i] <= '9':
		i = skipDigits(in, i+1)
	default:
		return 0
	}
	if i < len(in) && in[i] == '.' {
		j := skipDigits(in, i+1)
		if j == i+1 {
			return 0
		}
		i = j
	}
	if i < len(in) && (in[i] == 'e' || in[i] == 'E') {
		i++
		if i < len(in) && (in[i] == '+' || in[i] == '-') {
			i++
		}
		j := skipDigits(in, i)
		if j == i {
			return 0
		}
		i = j
	}
	if gluesTo(in, i) {
		return 0
	}
	return i
}

func skipDigits(in []byte, i int) int {
	for i < len(in) && '0' <= in[i] && in[i] <= '9' {
		i++
	}
	return i
}

var simpleEscapes = map[byte]byte{
	'"': '"', '\\': '\\', '/': '/',
	'b': '\b', 'f': '\f', 'n': '\n', 'r': '\r', 't': '\t',
}

// scanString unescapes the string at the head of the input. It returns the
// text and the length of the quoted input it covers.
func (d *Decoder) scanString() (string, int, error) {
	in, base := d.in, d.currPos()
	var out []byte
	i := 1
	for {
		start := i
		for i < len(in) && in[i] >= ' ' && in[i] < utf8.RuneSelf && in[i] != '"' && in[i] != '\\' {
			i++
		}
		out = append(out, in[start:i]...)
		if i >= len(in) {
			return "", 0, ErrUnexpectedEOF
		}
		switch c := in[i]; {
		case c == '"':
			return string(out), i + 1, nil
		case c < ' ':
			return "", 0, d.errorAt(base+i, "invalid character %q in string", c)
		case c == '\\':
			r, n, err := d.unescape(in[i:], base+i)
			if err != nil {
				return "", 0, err
			}
			out = utf8.AppendRune(out, r)
			i += n
		default:
			r, n := utf8.DecodeRune(in[i:])
			if r == utf8.RuneError && n == 1 {
				return "", 0, d.errorAt(base+i, "invalid UTF-8 in string")
			}
			out = append(out, in[i:i+n]...)
			i += n
		}
	}
}

// unescape decodes the escape sequence at the head of in. A surrogate half
// must be followed by its pair.
func (d *Decoder) unescape(in []byte, pos int) (rune, int, error) {
	if len(in) < 2 {
		return 0, 0, ErrUnexpectedEOF
	}
	if c, ok := simpleEscapes[in[1]]; ok {
		return rune(c), 2, nil
	}
	if in[1] != 'u' {
		return 0, 0, d.errorAt(pos, "invalid escape code %q in string", in[:2])
	}
	r, err := d.hex4(in[2:], pos)
	if err != nil || !utf16.IsSurrogate(r) {
		return r, 6, err
	}
	if len(in) < 12 {
		return 0, 0, ErrUnexpectedEOF
	}
	r2, err := d.hex4(in[8:], pos+6)
	if err != nil {
		return 0, 0, err
	}
	if r = utf16.DecodeRune(r, r2); in[6] != '\\' || in[7] != 'u' || r == unicode.ReplacementChar {
		return 0, 0, d.errorAt(pos, "invalid surrogate pair %q in string", in[:12])
	}
	return r, 12, nil
}

func (d *Decoder) hex4(in []byte, pos int) (rune, error) {
	if len(in) < 4 {
		return 0, ErrUnexpectedEOF
	}
	v, err := strconv.ParseUint(string(in[:4]), 16, 16)
	if err != nil {
		return 0, d.errorAt(pos, "invalid escape code %q in string", in[:4])
	}
	return rune(v), nil
}
