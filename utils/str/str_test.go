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

package str

import (
	"strings"
	"testing"

	"github.com/rulego/strokeorder/test/assert"
)

func TestConvertDollarPlaceholder(t *testing.T) {
	sql := "SELECT stroke_order FROM stroke_orders WHERE glyph = ? AND variant = ?"
	assert.Equal(t, "SELECT stroke_order FROM stroke_orders WHERE glyph = $1 AND variant = $2", ConvertDollarPlaceholder(sql, "postgres"))
	assert.Equal(t, sql, ConvertDollarPlaceholder(sql, "mysql"))
	assert.Equal(t, sql, ConvertDollarPlaceholder(sql, "sqlite"))
}

func TestSplitLines(t *testing.T) {
	lines, err := SplitLines("\ufeff⿰ 1-2\r\n\n# comment\n⿱ 1-2")
	assert.Nil(t, err)
	assert.Equal(t, []string{"⿰ 1-2", "", "# comment", "⿱ 1-2"}, lines)

	lines, err = SplitLines("")
	assert.Nil(t, err)
	assert.Equal(t, 0, len(lines))

	t.Run("lineTooLong", func(t *testing.T) {
		text := "⿰ 1-2\n" + strings.Repeat("H", MaxLineSize+1) + "\n⿱ 1-2"
		lines, err := SplitLines(text)
		assert.NotNil(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), "line 2: "), err.Error())
		assert.Nil(t, lines)
	})
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(" \t"))
	assert.False(t, IsEmpty(" a "))
}
