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

package provider

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rulego/strokeorder/test/assert"
	"github.com/rulego/strokeorder/utils/str"
)

func TestLines(t *testing.T) {
	l := Lines{"⿰ 1-2", "H,㇐"}
	lines, err := l.RuleLines()
	assert.Nil(t, err)
	assert.Equal(t, []string{"⿰ 1-2", "H,㇐"}, lines)
	lines[0] = "changed"
	lines, _ = l.StrokeNameLines()
	assert.Equal(t, "⿰ 1-2", lines[0])
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	assert.Nil(t, os.WriteFile(filepath.Join(dir, "10-base.rules"), []byte("⿰ 1-2\r\n⿱ 1-2\n"), 0644))
	assert.Nil(t, os.WriteFile(filepath.Join(dir, "20-extra.rules"), []byte("⿲ 1-2-3\n"), 0644))

	lines, err := File{Path: filepath.Join(dir, "10-base.rules")}.RuleLines()
	assert.Nil(t, err)
	assert.Equal(t, []string{"⿰ 1-2", "⿱ 1-2"}, lines)

	lines, err = File{Path: filepath.Join(dir, "*.rules")}.RuleLines()
	assert.Nil(t, err)
	assert.Equal(t, []string{"⿰ 1-2", "⿱ 1-2", "⿲ 1-2-3"}, lines)

	_, err = File{Path: filepath.Join(dir, "missing.txt")}.StrokeNameLines()
	assert.NotNil(t, err)

	_, err = File{Path: filepath.Join(dir, "*.names")}.StrokeNameLines()
	assert.NotNil(t, err)

	t.Run("lineTooLong", func(t *testing.T) {
		long := "⿰ 1-2\n" + strings.Repeat("H", str.MaxLineSize+1) + "\n⿱ 1-2\n"
		assert.Nil(t, os.WriteFile(filepath.Join(dir, "30-long.rules"), []byte(long), 0644))

		_, err := File{Path: filepath.Join(dir, "30-long.rules")}.RuleLines()
		assert.NotNil(t, err)
		_, err = File{Path: filepath.Join(dir, "*.rules")}.RuleLines()
		assert.NotNil(t, err)
	})
}
