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

	"github.com/rulego/strokeorder/api/types"
	"github.com/rulego/strokeorder/utils/maps"
)

func init() {
	Registry.Add(&HasStrokeOrderFilter{})
}

// HasStrokeOrderFilter passes when the operand's stroke names equal a literal pattern token for token.
// Rule line example: `⿱ 1-2 | 2 has H-S`.
type HasStrokeOrderFilter struct {
	Config  FilterConfiguration
	pattern types.StrokeOrder
}

// Type 组件类型
func (x *HasStrokeOrderFilter) Type() string {
	return "has"
}

func (x *HasStrokeOrderFilter) New() FilterComponent {
	return &HasStrokeOrderFilter{}
}

// Init 初始化
func (x *HasStrokeOrderFilter) Init(configuration types.Configuration) error {
	if err := maps.Map2Struct(configuration, &x.Config); err != nil {
		return err
	}
	x.pattern = types.StrokeOrder(x.Config.Value)
	if x.pattern.IsEmpty() {
		return errors.New("stroke order pattern can not be empty")
	}
	return nil
}

func (x *HasStrokeOrderFilter) Match(operand types.Operand) bool {
	return operand.Order.Equal(x.pattern)
}
