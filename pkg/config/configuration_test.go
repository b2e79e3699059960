// Copyright 2021 Matrix Origin
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

package config

import (
	"os"
	"path"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/mojson/pkg/common/moerr"
)

const sampleConfig = `
[log]
level = "debug"
format = "json"

[json]
maxDocumentSize = 1024
prettyOutput = true

[column]
compress = false

[worker]
hashWorkers = 2

[store]
dir = "/tmp/mo-json"
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(sampleConfig)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, 512, cfg.Log.MaxSize)
	require.Equal(t, int64(1024), cfg.Json.MaxDocumentSize)
	require.True(t, cfg.Json.PrettyOutput)
	require.False(t, cfg.CompressBlocks())
	require.Equal(t, 2, cfg.Worker.HashWorkers)
	require.Equal(t, "/tmp/mo-json", cfg.Store.Dir)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, int64(defaultMaxDocumentSize), cfg.Json.MaxDocumentSize)
	require.True(t, cfg.CompressBlocks())
	require.Equal(t, defaultHashWorkers, cfg.Worker.HashWorkers)
	require.Equal(t, defaultStoreDir, cfg.Store.Dir)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "negative document size", text: "[json]\nmaxDocumentSize = -1\n"},
		{name: "negative workers", text: "[worker]\nhashWorkers = -3\n"},
		{name: "bad log format", text: "[log]\nformat = \"xml\"\n"},
		{name: "not toml", text: "[log\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig(tt.text)
			require.True(t, moerr.IsMoErrCode(err, moerr.ErrBadConfig), "%v", err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	convey.Convey("load config from file", t, func() {
		file := path.Join(t.TempDir(), "mo-json.toml")
		convey.So(os.WriteFile(file, []byte(sampleConfig), 0o644), convey.ShouldBeNil)

		cfg, err := LoadConfig(file)
		convey.So(err, convey.ShouldBeNil)
		convey.So(cfg.Worker.HashWorkers, convey.ShouldEqual, 2)
	})

	convey.Convey("missing config file", t, func() {
		stubs := gostub.StubFunc(&PathExists, false, nil)
		defer stubs.Reset()

		_, err := LoadConfig("/not/there.toml")
		convey.So(moerr.IsMoErrCode(err, moerr.ErrBadConfig), convey.ShouldBeTrue)
	})
}
