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
	"errors"

	"go.uber.org/zap"

	"github.com/matrixorigin/mojson/pkg/common/moerr"
	"github.com/matrixorigin/mojson/pkg/common/util"
	"github.com/matrixorigin/mojson/pkg/container/bytejson"
	"github.com/matrixorigin/mojson/pkg/logutil"
)

// maxQuoted bounds how much offending input an error message quotes.
const maxQuoted = 128

func IsParseError(err error) bool {
	return moerr.IsMoErrCode(err, moerr.ErrInvalidJson)
}

func IsTypeError(err error) bool {
	return moerr.IsMoErrCode(err, moerr.ErrJsonTypeMismatch)
}

func IsDataQualityError(err error) bool {
	return moerr.IsMoErrCode(err, moerr.ErrDataQuality)
}

// IsCorruption reports an error raised by a malformed encoded buffer.
func IsCorruption(err error) bool {
	return moerr.IsMoErrCode(err, moerr.ErrJsonCorrupted)
}

func quote(text []byte) string {
	return util.Abbreviate(string(text), maxQuoted)
}

func newParseError(text []byte, err error) error {
	return moerr.NewInvalidJsonNoCtx(quote(text), err.Error())
}

func newTypeError(have string, want string, err error) error {
	e := moerr.NewJsonTypeMismatchNoCtx(have, want)
	if errors.Is(err, bytejson.ErrNumberOutOfRange) {
		e.WithDetail("number out of range")
	}
	return e
}

func newDataQualityError(raw []byte, err error) error {
	dq := moerr.NewDataQualityNoCtx("failed to parse value, json=%s, error=%v", quote(raw), err)
	logutil.Debug("reject streamed json value", zap.Error(dq))
	return dq
}

// callCodec runs fn and turns a codec panic into a corruption error.
func callCodec(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = moerr.NewJsonCorruptedNoCtx("%v", r)
			logutil.Error("json codec failure", zap.Error(err))
		}
	}()
	return fn()
}

// translate converts the codec error of an accessor reading bj as want.
func translate(bj bytejson.ByteJson, want string, err error) error {
	if err == nil || IsCorruption(err) {
		return err
	}
	if errors.Is(err, bytejson.ErrTypeMismatch) || errors.Is(err, bytejson.ErrNumberOutOfRange) {
		return newTypeError(typeName(bj), want, err)
	}
	if errors.Is(err, bytejson.ErrCorrupted) {
		return moerr.NewJsonCorruptedNoCtx("%v", err)
	}
	return moerr.NewInternalErrorNoCtx("json accessor: %v", err)
}

// typeName names the type of bj, also when bj is malformed.
func typeName(bj bytejson.ByteJson) string {
	if tp, ok := lookupType(bj); ok {
		return tp.String()
	}
	return bj.Type.String()
}
