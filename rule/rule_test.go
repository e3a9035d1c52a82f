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

package rule

import (
	"errors"
	"strings"
	"testing"

	"github.com/rulego/strokeorder/api/types"
	"github.com/rulego/strokeorder/test/assert"
)

func TestCompile(t *testing.T) {
	table, err := Compile([]string{
		"# comment",
		"",
		"⿰ 1-2",
		"⿺ 2 1 | 1 is 辶廴 | 2 has H-S",
		"⿲ 1-2-3",
		"⿱ 1-HZ-2 | 1 expr total<=3",
	})
	assert.Nil(t, err)
	if table == nil {
		t.Fatal("table is nil")
	}
	assert.Equal(t, 4, table.Len())

	r := table.Rules[1]
	assert.Equal(t, "⿺", r.Operator)
	assert.Equal(t, 4, r.Line)
	assert.Equal(t, []types.Slot{{Ref: 2}, {Ref: 1}}, r.Template.Slots)
	assert.Equal(t, []string{" "}, r.Template.Separators)
	assert.Equal(t, 2, len(r.Filters))
	assert.Equal(t, 1, r.Filters[0].Index)
	assert.Equal(t, "is", r.Filters[0].Kind)
	assert.Equal(t, "辶廴", r.Filters[0].Value)
	assert.Equal(t, "has", r.Filters[1].Kind)

	lit := table.Rules[3].Template.Slots[1]
	assert.Equal(t, "HZ", lit.Literal)
	assert.Equal(t, 0, lit.Ref)
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		line    string
		message string
	}{
		{line: "X 1-2", message: "unknown operator"},
		{line: "⿰", message: "invalid rule line"},
		{line: "⿰ 1-3", message: "back-reference 3 out of range"},
		{line: "⿰ 1-0", message: "back-reference 0 out of range"},
		{line: "⿰ 1-2 | 3 is 木", message: "filter index 3 out of range"},
		{line: "⿰ 1-2 | 4 is 木", message: "invalid filter index"},
		{line: "⿰ 1-2 | 1 like 木", message: "unknown filter kind"},
		{line: "⿰ 1-2 | 1 expr total+", message: "invalid expr filter"},
		{line: "⿰ 1-2 | 1 expr totl<=3", message: "invalid expr filter"},
		{line: "⿰ 1-2 | 1 expr total", message: "invalid expr filter"},
		{line: "⿰ 1-2 | 1 has -", message: "invalid has filter"},
		{line: "⿰ 1-2 | 1 is", message: "invalid rule line"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := Compile([]string{"⿱ 1-2", tt.line})
			assert.True(t, errors.Is(err, types.ErrConfiguration))
			assert.True(t, strings.Contains(err.Error(), "rule line 2"), err.Error())
			assert.True(t, strings.Contains(err.Error(), tt.message), err.Error())
		})
	}
}

func TestCombine(t *testing.T) {
	operands := []types.Operand{{Text: "木", Order: "H-S"}, {Text: "X", Order: "Y"}}

	t.Run("isFilter", func(t *testing.T) {
		table, err := Compile([]string{"⿰ 1-2 | 1 is 木水"})
		assert.Nil(t, err)
		order, err := Combine(table, "⿰", operands)
		assert.Nil(t, err)
		assert.Equal(t, "H-S-Y", string(order))
	})
	t.Run("firstMatchWins", func(t *testing.T) {
		table, err := Compile([]string{"⿰ 1-2", "⿰ 2-1 | 1 is 木水"})
		assert.Nil(t, err)
		order, err := Combine(table, "⿰", operands)
		assert.Nil(t, err)
		assert.Equal(t, "H-S-Y", string(order))

		r, err := Match(table, "⿰", operands)
		assert.Nil(t, err)
		assert.Equal(t, 1, r.Line)
	})
	t.Run("filteredBeforeGeneric", func(t *testing.T) {
		table, err := Compile([]string{"⿰ 2-1 | 1 is 木水", "⿰ 1-2"})
		assert.Nil(t, err)
		order, err := Combine(table, "⿰", operands)
		assert.Nil(t, err)
		assert.Equal(t, "Y-H-S", string(order))

		order, err = Combine(table, "⿰", []types.Operand{{Text: "火", Order: "D"}, {Text: "X", Order: "Y"}})
		assert.Nil(t, err)
		assert.Equal(t, "D-Y", string(order))
	})
	t.Run("otherOperatorsSkipped", func(t *testing.T) {
		table, err := Compile([]string{"⿱ 2-1", "⿰ 1 2"})
		assert.Nil(t, err)
		order, err := Combine(table, "⿰", operands)
		assert.Nil(t, err)
		assert.Equal(t, "H-S Y", string(order))
	})
	t.Run("literalStrokes", func(t *testing.T) {
		table, err := Compile([]string{"⿴ 1-HZ-2-H"})
		assert.Nil(t, err)
		order, err := Combine(table, "⿴", operands)
		assert.Nil(t, err)
		assert.Equal(t, "H-S-HZ-Y-H", string(order))
	})
	t.Run("ternary", func(t *testing.T) {
		table, err := Compile([]string{"⿲ 1-3-2 | 3 has P"})
		assert.Nil(t, err)
		order, err := Combine(table, "⿲", append(operands, types.Operand{Text: "丿", Order: "P"}))
		assert.Nil(t, err)
		assert.Equal(t, "H-S-P-Y", string(order))
	})
	t.Run("noRule", func(t *testing.T) {
		table, err := Compile([]string{"⿰ 1-2 | 1 is 水"})
		assert.Nil(t, err)
		_, err = Combine(table, "⿰", operands)
		assert.True(t, errors.Is(err, types.ErrNoInformation))
		assert.True(t, strings.Contains(err.Error(), "no rule found"))

		_, err = Combine(nil, "⿰", operands)
		assert.True(t, errors.Is(err, types.ErrNoInformation))
	})
}

func TestFilters(t *testing.T) {
	newFilter := func(kind, value string) FilterComponent {
		f, err := Registry.NewFilter(kind)
		assert.Nil(t, err)
		assert.Nil(t, f.Init(types.Configuration{"value": value}))
		return f
	}

	t.Run("is", func(t *testing.T) {
		f := newFilter("is", "辶廴")
		assert.True(t, f.Match(types.Operand{Text: "辶"}))
		assert.True(t, f.Match(types.Operand{Text: "廴"}))
		assert.False(t, f.Match(types.Operand{Text: "木"}))
		assert.False(t, f.Match(types.Operand{Text: ""}))
		assert.False(t, f.Match(types.Operand{Text: "⿰辶木"}))
	})
	t.Run("has", func(t *testing.T) {
		f := newFilter("has", "H-S")
		assert.True(t, f.Match(types.Operand{Order: "H S"}))
		assert.True(t, f.Match(types.Operand{Order: "H-S"}))
		assert.False(t, f.Match(types.Operand{Order: "H-S-P"}))
		assert.False(t, f.Match(types.Operand{Order: "HS"}))
	})
	t.Run("expr", func(t *testing.T) {
		f := newFilter("expr", `total<=3&&strokes[0]=="H"`)
		assert.True(t, f.Match(types.Operand{Text: "土", Order: "H-S-H"}))
		assert.False(t, f.Match(types.Operand{Text: "木", Order: "H-S-P-D"}))
		assert.False(t, f.Match(types.Operand{Text: "口", Order: "S-HZ-H"}))

		f = newFilter("expr", `char=="木"`)
		assert.True(t, f.Match(types.Operand{Text: "木"}))
		assert.False(t, f.Match(types.Operand{Text: "⿰木木"}))

		f = newFilter("expr", `order=="H-S"||text=="丨"`)
		assert.True(t, f.Match(types.Operand{Text: "十", Order: "H-S"}))
		assert.True(t, f.Match(types.Operand{Text: "丨", Order: "S"}))
		assert.False(t, f.Match(types.Operand{Text: "十", Order: "H S"}))

		// index out of range at run time
		f = newFilter("expr", `strokes[5]=="H"`)
		assert.False(t, f.Match(types.Operand{Order: "H"}))
		assert.False(t, f.Match(types.Operand{}))
	})
	t.Run("exprCompile", func(t *testing.T) {
		for _, value := range []string{"count<=3", "totl<=3", "total"} {
			f, err := Registry.NewFilter("expr")
			assert.Nil(t, err)
			assert.NotNil(t, f.Init(types.Configuration{"value": value}), value)
		}
	})
}

type evenFilter struct {
	FilterConfiguration
}

func (f *evenFilter) Type() string { return "even" }
func (f *evenFilter) New() FilterComponent { return &evenFilter{} }
func (f *evenFilter) Init(configuration types.Configuration) error {
	return nil
}
func (f *evenFilter) Match(operand types.Operand) bool {
	return operand.Order.Count()%2 == 0
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"expr", "has", "is"}, Registry.Types())

	registry := &FilterRegistry{}
	assert.Nil(t, registry.Register(&evenFilter{}))
	assert.NotNil(t, registry.Register(&evenFilter{}))

	table, err := CompileWith(registry, []string{"⿰ 2-1 | 1 even -", "⿰ 1-2"})
	assert.Nil(t, err)
	order, err := Combine(table, "⿰", []types.Operand{{Order: "H-S"}, {Order: "P"}})
	assert.Nil(t, err)
	assert.Equal(t, "P-H-S", string(order))

	_, err = CompileWith(registry, []string{"⿰ 1-2 | 1 is 木"})
	assert.True(t, errors.Is(err, types.ErrConfiguration))

	assert.Nil(t, registry.Unregister("even"))
	assert.NotNil(t, registry.Unregister("even"))
	_, err = registry.NewFilter("even")
	assert.NotNil(t, err)
}
