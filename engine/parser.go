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

package engine

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rulego/strokeorder/api/types"
	"golang.org/x/text/unicode/norm"
)

// Parse 把IDS字符串解析为token序列
//
// Parse scans an IDS string once and classifies every character as a binary operator, a
// ternary operator, the unknown marker, or a component optionally followed by a `/<digits>`
// variant suffix. The input is NFC normalized first so CJK compatibility ideographs resolve to
// their unified form. Whitespace-only input parses to an empty Decomposition.
//
// Arity is not checked here; see Validate and Evaluator.Evaluate.
func Parse(raw string) (types.Decomposition, error) {
	s := strings.TrimSpace(norm.NFC.String(raw))
	if s == "" {
		return types.Decomposition{}, nil
	}
	d := make(types.Decomposition, 0, utf8.RuneCountInString(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		start := i
		i += size
		switch {
		case r == utf8.RuneError && size <= 1:
			return nil, types.NewError(types.InvalidIds, "invalid utf-8 in '%s' at byte %d", raw, start)
		case unicode.IsSpace(r):
			return nil, types.NewError(types.InvalidIds, "unexpected whitespace in '%s' at byte %d", raw, start)
		case unicode.IsDigit(r):
			return nil, types.NewError(types.InvalidIds, "unexpected digit '%c' in '%s' at byte %d", r, raw, start)
		case r == '/':
			return nil, types.NewError(types.InvalidIds, "variant suffix without component in '%s' at byte %d", raw, start)
		}
		if arity := types.OperatorArity(r); arity > 0 {
			d = append(d, types.Token{Kind: types.OperatorToken, Glyph: string(r), Arity: arity, Variant: types.NoVariant, Text: string(r)})
			continue
		}
		if r == types.UnknownMarker {
			d = append(d, types.Token{Kind: types.UnknownToken, Glyph: string(r), Variant: types.NoVariant, Text: string(r)})
			continue
		}
		variant := types.NoVariant
		if i < len(s) && s[i] == '/' {
			j := i + 1
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			if j == i+1 {
				return nil, types.NewError(types.InvalidIds, "missing variant index after '%c' in '%s'", r, raw)
			}
			v, err := strconv.Atoi(s[i+1 : j])
			if err != nil {
				return nil, types.NewError(types.InvalidIds, "invalid variant index '%s' in '%s'", s[i+1:j], raw)
			}
			variant = v
			i = j
		}
		d = append(d, types.Token{Kind: types.ComponentToken, Glyph: string(r), Variant: variant, Text: s[start:i]})
	}
	return d, nil
}

// ParseComponent parses a single component token such as "木" or "木/1".
func ParseComponent(text string) (types.Token, error) {
	d, err := Parse(text)
	if err != nil {
		return types.Token{}, err
	}
	if len(d) != 1 || d[0].Kind != types.ComponentToken {
		return types.Token{}, types.NewError(types.InvalidIds, "'%s' is not a single component", text)
	}
	return d[0], nil
}

// Validate checks that the tokens form exactly one well-formed operator tree.
func Validate(d types.Decomposition) error {
	next, err := skipOperand(d, 0)
	if err != nil {
		return err
	}
	if next != len(d) {
		return trailingError(d, next)
	}
	return nil
}

func skipOperand(d types.Decomposition, cursor int) (int, error) {
	if cursor >= len(d) {
		return cursor, incompleteError(d, cursor)
	}
	next := cursor + 1
	if d[cursor].IsOperator() {
		for n := 0; n < d[cursor].Arity; n++ {
			var err error
			if next, err = skipOperand(d, next); err != nil {
				return next, err
			}
		}
	}
	return next, nil
}

func incompleteError(d types.Decomposition, cursor int) *types.Error {
	return types.NewError(types.InvalidIds, "incomplete decomposition '%s': operand missing at token %d", d, cursor)
}

func trailingError(d types.Decomposition, cursor int) *types.Error {
	return types.NewError(types.InvalidIds, "trailing tokens in '%s': '%s'", d, d.Span(cursor, len(d)))
}
