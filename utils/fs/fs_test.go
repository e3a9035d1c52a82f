/*
 * Copyright 2023 The RuleGo Authors.
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

package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rulego/strokeorder/test/assert"
)

func TestLoadFile(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "rules.txt")
	assert.Nil(t, os.WriteFile(path, []byte("⿰ 1-2"), 0644))

	assert.Equal(t, []byte("⿰ 1-2"), LoadFile(path))
	assert.Nil(t, LoadFile(filepath.Join(tempDir, "nonexistent.txt")))
	assert.True(t, IsExist(path))
	assert.False(t, IsExist(filepath.Join(tempDir, "nonexistent.txt")))
}

func TestGetFilePaths(t *testing.T) {
	tempDir := t.TempDir()
	assert.Nil(t, os.MkdirAll(filepath.Join(tempDir, "sub"), 0755))
	assert.Nil(t, os.MkdirAll(filepath.Join(tempDir, "skip"), 0755))
	for _, name := range []string{"b.rules", "a.rules", "notes.md", "sub/c.rules", "skip/d.rules"} {
		assert.Nil(t, os.WriteFile(filepath.Join(tempDir, name), []byte("x"), 0644))
	}

	paths, err := GetFilePaths(filepath.Join(tempDir, "*.rules"), "skip")
	assert.Nil(t, err)
	assert.Equal(t, []string{
		filepath.Join(tempDir, "a.rules"),
		filepath.Join(tempDir, "b.rules"),
		filepath.Join(tempDir, "sub", "c.rules"),
	}, paths)

	assert.True(t, IsPattern("rules/*.rules"))
	assert.False(t, IsPattern("rules/base.rules"))
}
