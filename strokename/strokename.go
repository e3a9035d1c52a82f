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

// Package strokename renders symbolic stroke orders as Unicode CJK stroke glyphs.
package strokename

import (
	"strings"

	"github.com/rulego/strokeorder/api/types"
)

// ToGlyphs splits order into stroke names, replaces every name found in nameMap with its glyph
// and concatenates the result. Names missing from the map are kept as they are.
func ToGlyphs(order types.StrokeOrder, nameMap types.StrokeNameMap) string {
	var sb strings.Builder
	for _, name := range order.Strokes() {
		if glyph, ok := nameMap[name]; ok {
			sb.WriteString(glyph)
		} else {
			sb.WriteString(name)
		}
	}
	return sb.String()
}

// ParseLines builds a name map from `name,glyph` lines.
// Blank lines and lines starting with '#' are skipped. When a name occurs more than once the
// first occurrence wins.
func ParseLines(lines []string) (types.StrokeNameMap, error) {
	m := make(types.StrokeNameMap)
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, glyph, ok := strings.Cut(line, ",")
		name, glyph = strings.TrimSpace(name), strings.TrimSpace(glyph)
		if !ok || name == "" || glyph == "" {
			return nil, types.NewError(types.ConfigurationError, "stroke name line %d: invalid entry '%s'", i+1, line)
		}
		if _, exists := m[name]; !exists {
			m[name] = glyph
		}
	}
	return m, nil
}
