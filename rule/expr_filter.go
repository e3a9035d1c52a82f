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
	"fmt"
	"unicode/utf8"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rulego/strokeorder/api/types"
	"github.com/rulego/strokeorder/utils/maps"
)

func init() {
	Registry.Add(&ExprFilter{})
}

// ExprFilter evaluates an expr boolean expression against the operand.
// Rule line example: `⿱ 1-2 | 1 expr total<=3&&strokes[0]=="H"`.
//
// Variables:
//   - char: first character of the operand text
//   - text: full operand text
//   - order: the operand stroke order as written
//   - strokes: the operand stroke names
//   - total: number of strokes
//
// Any other identifier fails at load time. The expression can not contain whitespace since
// rule values are whitespace delimited.
type ExprFilter struct {
	Config  FilterConfiguration
	program *vm.Program
}

// Type 组件类型
func (x *ExprFilter) Type() string {
	return "expr"
}

func (x *ExprFilter) New() FilterComponent {
	return &ExprFilter{}
}

// Init 初始化，编译表达式
func (x *ExprFilter) Init(configuration types.Configuration) error {
	if err := maps.Map2Struct(configuration, &x.Config); err != nil {
		return err
	}
	if x.Config.Value == "" {
		return errors.New("expr can not be empty")
	}
	program, err := expr.Compile(x.Config.Value, expr.Env(exprEnv(types.Operand{})), expr.AsBool())
	if err != nil {
		return fmt.Errorf("compile expr: %w", err)
	}
	x.program = program
	return nil
}

// Match runs the compiled program. A runtime error counts as a failed filter.
func (x *ExprFilter) Match(operand types.Operand) bool {
	out, err := vm.Run(x.program, exprEnv(operand))
	if err != nil {
		return false
	}
	result, ok := out.(bool)
	return ok && result
}

func exprEnv(operand types.Operand) map[string]interface{} {
	char := ""
	if r, size := utf8.DecodeRuneInString(operand.Text); size > 0 {
		char = string(r)
	}
	strokes := operand.Order.Strokes()
	if strokes == nil {
		strokes = []string{}
	}
	return map[string]interface{}{
		"char":    char,
		"text":    operand.Text,
		"order":   string(operand.Order),
		"strokes": strokes,
		"total":   len(strokes),
	}
}
