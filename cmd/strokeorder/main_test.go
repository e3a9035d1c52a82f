/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rulego/strokeorder/api/types"
	"github.com/rulego/strokeorder/lookup/memory"
	"github.com/rulego/strokeorder/test/assert"
)

const testIni = `
server = :9090
debug = true
default_engine = zh-CN
workers = 8

[db]
driver_name = sqlite
dsn = /tmp/strokes.db
cache_ttl = 5m

[engine.zh-CN]
rules_file = ./rules/zh-CN.rules
stroke_names_file = ./strokes.csv

[engine.ja]
rules_file = ./rules/ja.rules
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.Nil(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		c, err := LoadConfig("")
		assert.Nil(t, err)
		assert.Equal(t, "sqlite", c.Db.DriverName)
		assert.Equal(t, 1, len(c.Engines))
		assert.Equal(t, "default", c.Engines[0].Id)
		assert.Equal(t, "./rules.txt", c.Engines[0].RulesFile)
	})
	t.Run("ini", func(t *testing.T) {
		c, err := LoadConfig(writeFile(t, "strokeorder.ini", testIni))
		assert.Nil(t, err)
		assert.Equal(t, ":9090", c.Server)
		assert.True(t, c.Debug)
		assert.Equal(t, 8, c.Workers)
		assert.Equal(t, "/tmp/strokes.db", c.Db.Dsn)
		assert.Equal(t, "5m", c.Db.CacheTTL)
		assert.Equal(t, 4, c.Db.PoolSize)
		assert.Equal(t, 2, len(c.Engines))
		assert.Equal(t, "ja", c.Engines[0].Id)
		assert.Equal(t, "./rules/ja.rules", c.Engines[0].RulesFile)
		assert.Equal(t, "zh-CN", c.Engines[1].Id)
		assert.Equal(t, "./strokes.csv", c.Engines[1].StrokeNamesFile)
	})
	t.Run("env", func(t *testing.T) {
		t.Setenv("STROKEORDER_SERVER", ":8080")
		t.Setenv("STROKEORDER_DB_DSN", "postgres://localhost/strokes")
		t.Setenv("STROKEORDER_MAX_DEPTH", "16")
		c, err := LoadConfig(writeFile(t, "strokeorder.ini", testIni))
		assert.Nil(t, err)
		assert.Equal(t, ":8080", c.Server)
		assert.Equal(t, "postgres://localhost/strokes", c.Db.Dsn)
		assert.Equal(t, 16, c.MaxDepth)
	})
	t.Run("missing", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "none.ini"))
		assert.NotNil(t, err)
	})
}

func TestOneShot(t *testing.T) {
	rules := writeFile(t, "zh-CN.rules", "⿰ 1-2\n⿱ 1-2\n")
	names := writeFile(t, "strokes.csv", "H,㇐\nS,㇑\nP,㇒\nD,㇔\n")
	c := Config{
		DefaultEngine: "zh-CN",
		Engines:       []EngineConfig{{Id: "zh-CN", RulesFile: rules, StrokeNamesFile: names}},
	}
	lookup := memory.New().
		SetStrokeOrder("木", types.NoVariant, "H-S-P-D").
		AddDecomposition("林", "⿰木木")
	engines, err := initEngines(c, lookup, types.DiscardLogger())
	assert.Nil(t, err)
	ctx := context.Background()

	defer func() {
		character, ids, engineId = "", "", ""
	}()

	var out bytes.Buffer
	character = "林"
	assert.Equal(t, 0, oneShot(ctx, c, engines, &out))
	assert.Equal(t, "H-S-P-D-H-S-P-D\n㇐㇑㇒㇔㇐㇑㇒㇔\n8\n", out.String())

	out.Reset()
	character, ids = "", "⿰木？,⿱水木"
	assert.Equal(t, 1, oneShot(ctx, c, engines, &out))
	assert.True(t, strings.Contains(out.String(), "⿰木？: NoInformation"), out.String())
	assert.True(t, strings.HasSuffix(out.String(), "not deducible\n"))

	out.Reset()
	ids = "⿰木"
	assert.Equal(t, 1, oneShot(ctx, c, engines, &out))
	assert.True(t, strings.HasPrefix(out.String(), "InvalidIds"))

	out.Reset()
	engineId = "ja"
	assert.Equal(t, 2, oneShot(ctx, c, engines, &out))
}
