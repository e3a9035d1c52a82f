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

package sqlstore

import (
	"context"
	"strings"

	"github.com/rulego/strokeorder/api/types"
	"github.com/rulego/strokeorder/engine"
)

// ImportStrokeOrders loads `glyph[/variant],order` lines, e.g. "木,H-S-P-D" or "木/1,H-S-P-N".
// Blank lines and lines starting with '#' are skipped. It returns the number of records written.
func (s *Store) ImportStrokeOrders(ctx context.Context, lines []string) (int, error) {
	n := 0
	for i, raw := range lines {
		key, value, ok, err := splitRecord(raw, i+1)
		if err != nil {
			return n, err
		}
		if !ok {
			continue
		}
		token, err := engine.ParseComponent(key)
		if err != nil {
			return n, types.NewError(types.ConfigurationError, "stroke order line %d: %v", i+1, err)
		}
		if err := s.PutStrokeOrder(ctx, token.Glyph, token.Variant, types.StrokeOrder(value)); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// ImportDecompositions loads `glyph,ids` lines. Lines of the same glyph are kept in file order
// and replace the glyph's previous decompositions. Nothing is written unless every IDS is a
// complete operator tree.
func (s *Store) ImportDecompositions(ctx context.Context, lines []string) (int, error) {
	var glyphs []string
	byGlyph := make(map[string][]string)
	for i, raw := range lines {
		key, value, ok, err := splitRecord(raw, i+1)
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}
		token, err := engine.ParseComponent(key)
		if err != nil || token.Variant != types.NoVariant {
			return 0, types.NewError(types.ConfigurationError, "decomposition line %d: invalid glyph '%s'", i+1, key)
		}
		if err := validateIds(value); err != nil {
			return 0, types.NewError(types.ConfigurationError, "decomposition line %d: %v", i+1, err)
		}
		if _, exists := byGlyph[token.Glyph]; !exists {
			glyphs = append(glyphs, token.Glyph)
		}
		byGlyph[token.Glyph] = append(byGlyph[token.Glyph], value)
	}
	n := 0
	for _, glyph := range glyphs {
		if err := s.PutDecompositions(ctx, glyph, byGlyph[glyph]...); err != nil {
			return n, err
		}
		n += len(byGlyph[glyph])
	}
	return n, nil
}

// validateIds checks that ids parses into exactly one well-formed operator tree.
func validateIds(ids string) error {
	d, err := engine.Parse(ids)
	if err != nil {
		return err
	}
	return engine.Validate(d)
}

func splitRecord(raw string, lineNo int) (string, string, bool, error) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false, nil
	}
	key, value, ok := strings.Cut(line, ",")
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)
	if !ok || key == "" || value == "" {
		return "", "", false, types.NewError(types.ConfigurationError, "line %d: invalid record '%s'", lineNo, line)
	}
	return key, value, true, nil
}
