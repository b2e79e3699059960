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
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch is returned by the checked getters when the document
	// holds another type.
	ErrTypeMismatch = errors.New("bytejson: type mismatch")
	// ErrNumberOutOfRange is returned when a number can not be represented
	// by the requested numeric type.
	ErrNumberOutOfRange = errors.New("bytejson: number out of range")
	// ErrCorrupted is returned by Validate and raised by the accessors when
	// a buffer is not a well formed document.
	ErrCorrupted = errors.New("bytejson: corrupted document")
)

// SyntaxError reports malformed json text together with the position of
// the offending input.
type SyntaxError struct {
	Offset int
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("syntax error (line %d:%d): %s", e.Line, e.Column, e.Msg)
}

// TypeError describes a failed checked getter. It matches ErrTypeMismatch
// or ErrNumberOutOfRange under errors.Is.
type TypeError struct {
	Have TpCode
	Want string
	err  error
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%v: have %s, want %s", e.err, e.Have, e.Want)
}

func (e *TypeError) Unwrap() error {
	return e.err
}

func typeMismatch(have TpCode, want string) error {
	return &TypeError{Have: have, Want: want, err: ErrTypeMismatch}
}

func outOfRange(have TpCode, want string) error {
	return &TypeError{Have: have, Want: want, err: ErrNumberOutOfRange}
}

func corrupted(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorrupted, fmt.Sprintf(format, args...))
}
