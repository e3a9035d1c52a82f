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

// Package rule compiles the combination rule table and combines operand stroke orders with it.
//
// A rule line has the form
//
//	<operator> <template> [| <index> <kind> <value>]...
//
// for example
//
//	⿰ 1-2
//	⿺ 2-1 | 1 is 辶廴
//	⿱ 1-2 | 2 has H-S
//
// Template tokens are separated by spaces or dashes; a token 1..3 refers to the stroke order of
// the corresponding operand, any other token is a literal stroke name. Filter kinds are
// registered components, see Registry.
package rule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rulego/strokeorder/api/types"
)

const filterValueKey = "value"

var (
	lineRegex     = regexp.MustCompile(`^(\S)\s+([^|]*[^|\s])((?:\s+\|\s+\S+\s+\S+\s+\S+)*)\s*$`)
	filterRegex   = regexp.MustCompile(`\|\s+(\S+)\s+(\S+)\s+(\S+)`)
	templateSplit = regexp.MustCompile(`[\s\-]+`)
	backRefRegex  = regexp.MustCompile(`^[0-9]+$`)
)

// Compile parses raw rule lines into a RuleTable. Blank lines and lines starting with '#'
// are skipped. Any malformed line fails the whole table with a Configuration error.
func Compile(lines []string) (*types.RuleTable, error) {
	return CompileWith(Registry, lines)
}

// CompileWith compiles using the filter kinds of the given registry.
func CompileWith(registry *FilterRegistry, lines []string) (*types.RuleTable, error) {
	table := &types.RuleTable{}
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		r, err := compileLine(registry, line, i+1)
		if err != nil {
			return nil, err
		}
		table.Rules = append(table.Rules, r)
	}
	return table, nil
}

func compileLine(registry *FilterRegistry, line string, lineNo int) (*types.CombinationRule, error) {
	m := lineRegex.FindStringSubmatch(line)
	if m == nil {
		return nil, configError(lineNo, "invalid rule line '%s'", line)
	}
	operator, _ := utf8.DecodeRuneInString(m[1])
	arity := types.OperatorArity(operator)
	if arity == 0 {
		return nil, configError(lineNo, "unknown operator '%s'", m[1])
	}
	tpl, err := compileTemplate(m[2], arity)
	if err != nil {
		return nil, configError(lineNo, "%s", err.Error())
	}
	r := &types.CombinationRule{
		Operator: m[1],
		Template: tpl,
		Line:     lineNo,
		Source:   line,
	}
	for _, fm := range filterRegex.FindAllStringSubmatch(m[3], -1) {
		f, err := compileFilter(registry, fm[1], fm[2], fm[3], arity)
		if err != nil {
			return nil, configError(lineNo, "%s", err.Error())
		}
		r.Filters = append(r.Filters, f)
	}
	return r, nil
}

func compileTemplate(text string, arity int) (types.Template, error) {
	var tpl types.Template
	tokens := templateSplit.Split(text, -1)
	seps := templateSplit.FindAllString(text, -1)
	for _, token := range tokens {
		if token == "" {
			return tpl, fmt.Errorf("empty template token in '%s'", text)
		}
		if backRefRegex.MatchString(token) {
			ref, _ := strconv.Atoi(token)
			if ref < 1 || ref > arity {
				return tpl, fmt.Errorf("back-reference %s out of range 1..%d", token, arity)
			}
			tpl.Slots = append(tpl.Slots, types.Slot{Ref: ref})
		} else {
			tpl.Slots = append(tpl.Slots, types.Slot{Literal: token})
		}
	}
	tpl.Separators = seps
	return tpl, nil
}

func compileFilter(registry *FilterRegistry, index, kind, value string, arity int) (types.Filter, error) {
	var f types.Filter
	if len(index) != 1 || index[0] < '1' || index[0] > '3' {
		return f, fmt.Errorf("invalid filter index '%s'", index)
	}
	idx := int(index[0] - '0')
	if idx > arity {
		return f, fmt.Errorf("filter index %d out of range 1..%d", idx, arity)
	}
	component, err := registry.NewFilter(kind)
	if err != nil {
		return f, fmt.Errorf("unknown filter kind '%s'", kind)
	}
	if err := component.Init(types.Configuration{filterValueKey: value}); err != nil {
		return f, fmt.Errorf("invalid %s filter '%s': %v", kind, value, err)
	}
	return types.Filter{Index: idx, Kind: kind, Value: value, FilterMatcher: component}, nil
}

func configError(lineNo int, format string, args ...interface{}) *types.Error {
	return types.NewError(types.ConfigurationError, "rule line %d: %s", lineNo, fmt.Sprintf(format, args...))
}
