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
	"github.com/rulego/strokeorder/api/types"
)

// Match returns the first rule of the table for operator whose filters all pass.
// Rules are tried strictly in table order: an unfiltered rule listed first shadows every
// later rule of the same operator.
func Match(table *types.RuleTable, operator string, operands []types.Operand) (*types.CombinationRule, error) {
	if table != nil {
		for _, r := range table.Rules {
			if r.Operator != operator {
				continue
			}
			if r.Matches(operands) {
				return r, nil
			}
		}
	}
	return nil, types.NewError(types.NoInformation, "no rule found for '%s' with operands %s", operator, describe(operands))
}

// Combine renders the first matching rule's template with the operands' stroke orders.
func Combine(table *types.RuleTable, operator string, operands []types.Operand) (types.StrokeOrder, error) {
	r, err := Match(table, operator, operands)
	if err != nil {
		return "", err
	}
	return r.Template.Render(operands), nil
}

func describe(operands []types.Operand) string {
	s := "["
	for i, o := range operands {
		if i > 0 {
			s += ", "
		}
		s += o.Text + ":" + string(o.Order)
	}
	return s + "]"
}
