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
	"context"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matrixorigin/mojson/pkg/common/moerr"
	"github.com/matrixorigin/mojson/pkg/logutil"
)

const (
	defaultMaxDocumentSize = 16 << 20
	defaultHashWorkers     = 4
	defaultStoreDir        = "./mo-data/json"
)

// Config of the json value layer and its tooling
type Config struct {
	Log    logutil.LogConfig `toml:"log"`
	Json   JsonParameters    `toml:"json"`
	Column ColumnParameters  `toml:"column"`
	Worker WorkerParameters  `toml:"worker"`
	Store  StoreParameters   `toml:"store"`
}

// JsonParameters of json parsing and rendering
type JsonParameters struct {
	//max bytes of a single streamed document. default: 16MB
	MaxDocumentSize int64 `toml:"maxDocumentSize"`

	//default is false. render documents with a space after ':' and ','
	PrettyOutput bool `toml:"prettyOutput"`
}

// ColumnParameters of json column blocks
type ColumnParameters struct {
	//default is true. lz4 compress the data section of serialized blocks
	Compress *bool `toml:"compress"`
}

// WorkerParameters of the hashing pool
type WorkerParameters struct {
	//default is 4. size of the ants pool hashing column blocks
	HashWorkers int `toml:"hashWorkers"`
}

// StoreParameters of the block store
type StoreParameters struct {
	//the directory of the pebble block store
	Dir string `toml:"dir"`
}

// PathExists reports whether path exists. It is a variable for tests.
var PathExists = func(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// LoadConfig decodes the toml file at path and fills defaults.
func LoadConfig(path string) (*Config, error) {
	exists, err := PathExists(path)
	if err != nil {
		return nil, moerr.ConvertGoError(context.Background(), err)
	}
	if !exists {
		return nil, moerr.NewBadConfigNoCtx("config file %s does not exist", path)
	}
	cfg := &Config{}
	if _, err = toml.DecodeFile(path, cfg); err != nil {
		return nil, moerr.NewBadConfigNoCtx("decode %s: %v", path, err)
	}
	cfg.Adjust()
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseConfig decodes toml text and fills defaults.
func ParseConfig(data string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, moerr.NewBadConfigNoCtx("decode config: %v", err)
	}
	cfg.Adjust()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a config with every field at its default.
func Default() *Config {
	cfg := &Config{}
	cfg.Adjust()
	return cfg
}

// Adjust fills empty fields with defaults.
func (c *Config) Adjust() {
	c.Log.Adjust()
	if c.Json.MaxDocumentSize == 0 {
		c.Json.MaxDocumentSize = defaultMaxDocumentSize
	}
	if c.Column.Compress == nil {
		compress := true
		c.Column.Compress = &compress
	}
	if c.Worker.HashWorkers == 0 {
		c.Worker.HashWorkers = defaultHashWorkers
	}
	if c.Store.Dir == "" {
		c.Store.Dir = defaultStoreDir
	}
}

// Validate rejects values Adjust can not repair.
func (c *Config) Validate() error {
	if c.Json.MaxDocumentSize < 0 {
		return moerr.NewBadConfigNoCtx("json.maxDocumentSize must be positive, got %d", c.Json.MaxDocumentSize)
	}
	if c.Worker.HashWorkers < 0 {
		return moerr.NewBadConfigNoCtx("worker.hashWorkers must be positive, got %d", c.Worker.HashWorkers)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return moerr.NewBadConfigNoCtx("unsupported log format: %s", c.Log.Format)
	}
	return nil
}

// CompressBlocks reports whether column blocks are lz4 compressed.
func (c *Config) CompressBlocks() bool {
	return c.Column.Compress == nil || *c.Column.Compress
}
