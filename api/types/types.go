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

// Package types defines the data model shared by the parser, evaluator and rule engine,
// together with the interfaces of the external collaborators (lookup service and
// configuration providers).
//
// Package types 定义解析器、求值器与规则引擎共享的数据模型，以及外部协作者接口。
package types

import (
	"regexp"
	"strconv"
	"strings"
)

// Configuration 组件配置类型
type Configuration map[string]interface{}

// TokenKind classifies a parsed IDS token.
type TokenKind int

const (
	// OperatorToken is a binary or ternary composition operator.
	OperatorToken TokenKind = iota
	// ComponentToken is a terminal glyph with an optional variant index.
	ComponentToken
	// UnknownToken marks a component that is known to exist but not known.
	UnknownToken
)

func (k TokenKind) String() string {
	switch k {
	case OperatorToken:
		return "operator"
	case ComponentToken:
		return "component"
	case UnknownToken:
		return "unknown"
	default:
		return "invalid"
	}
}

// NoVariant is the variant index of a component written without a `/<digits>` suffix.
const NoVariant = -1

// UnknownMarker is the glyph used in decompositions for an unknown component.
const UnknownMarker = '？'

// Token is one element of a Decomposition.
type Token struct {
	Kind TokenKind
	// Glyph is the operator or component character.
	Glyph string
	// Arity is 2 or 3 for operators, 0 otherwise.
	Arity int
	// Variant is the component variant index, NoVariant when absent.
	Variant int
	// Text is the token as it appeared in the source, including any variant suffix.
	Text string
}

func (t Token) String() string {
	return t.Text
}

// IsOperator reports whether the token is a composition operator.
func (t Token) IsOperator() bool {
	return t.Kind == OperatorToken
}

// Decomposition is the ordered token sequence of one IDS string. It is not modified after parsing.
type Decomposition []Token

// String rebuilds the source text of the tokens.
func (d Decomposition) String() string {
	var sb strings.Builder
	for _, t := range d {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// Span returns the source text of tokens [from, to).
func (d Decomposition) Span(from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(d) {
		to = len(d)
	}
	if from >= to {
		return ""
	}
	return d[from:to].String()
}

var strokeSeparator = regexp.MustCompile(`[\s\-]+`)

// StrokeOrder is a sequence of stroke names separated by spaces or dashes, e.g. "H-S-P".
type StrokeOrder string

// Strokes splits the order into stroke names. Separator style is not significant.
func (s StrokeOrder) Strokes() []string {
	trimmed := strings.Trim(string(s), " \t\r\n-")
	if trimmed == "" {
		return nil
	}
	return strokeSeparator.Split(trimmed, -1)
}

// IsEmpty reports whether the order contains no stroke names.
func (s StrokeOrder) IsEmpty() bool {
	return len(s.Strokes()) == 0
}

// Equal compares two orders as stroke-name sequences, ignoring separators.
func (s StrokeOrder) Equal(other StrokeOrder) bool {
	a, b := s.Strokes(), other.Strokes()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Count returns the number of strokes.
func (s StrokeOrder) Count() int {
	return len(s.Strokes())
}

func (s StrokeOrder) String() string {
	return string(s)
}

// Operand is one resolved argument of an operator.
type Operand struct {
	// Text is the literal text used at the operand slot: the glyph of a leaf component,
	// or the IDS source of a nested operator subtree.
	Text string
	// Order is the resolved stroke order of the operand.
	Order StrokeOrder
}

// Slot is one element of a rule template.
type Slot struct {
	// Ref is the 1-based operand back-reference, 0 for a literal stroke name.
	Ref int
	// Literal is the stroke name when Ref is 0.
	Literal string
}

func (s Slot) String() string {
	if s.Ref > 0 {
		return strconv.Itoa(s.Ref)
	}
	return s.Literal
}

// Template is a rendered-on-demand stroke order pattern. Separators[i] is the literal
// text placed between Slots[i] and Slots[i+1].
type Template struct {
	Slots      []Slot
	Separators []string
}

// Render substitutes back-references with the operands' stroke orders.
func (t Template) Render(operands []Operand) StrokeOrder {
	var sb strings.Builder
	for i, slot := range t.Slots {
		if i > 0 {
			sb.WriteString(t.Separators[i-1])
		}
		if slot.Ref > 0 {
			sb.WriteString(strings.Trim(string(operands[slot.Ref-1].Order), " -"))
		} else {
			sb.WriteString(slot.Literal)
		}
	}
	return StrokeOrder(sb.String())
}

// FilterMatcher decides whether one operand satisfies a rule filter.
type FilterMatcher interface {
	Match(operand Operand) bool
}

// Filter is a compiled rule filter.
type Filter struct {
	// Index is the 1-based operand the filter inspects.
	Index int
	// Kind is the registered filter type, e.g. "is" or "has".
	Kind  string
	Value string
	FilterMatcher
}

// CombinationRule describes how an operator's operand orders merge into the parent order.
type CombinationRule struct {
	Operator string
	Template Template
	Filters  []Filter
	// Line is the 1-based source line, for diagnostics.
	Line int
	// Source is the raw configuration line.
	Source string
}

// Matches reports whether every filter passes for the given operands.
func (r *CombinationRule) Matches(operands []Operand) bool {
	for _, f := range r.Filters {
		if f.Index < 1 || f.Index > len(operands) {
			return false
		}
		if !f.Match(operands[f.Index-1]) {
			return false
		}
	}
	return true
}

// RuleTable is the ordered list of combination rules. Order is match priority.
type RuleTable struct {
	Rules []*CombinationRule
}

// Len returns the number of rules.
func (t *RuleTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rules)
}

// StrokeNameMap maps a stroke name to a single stroke glyph.
type StrokeNameMap map[string]string
