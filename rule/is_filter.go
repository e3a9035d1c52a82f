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
	"unicode/utf8"

	"github.com/rulego/strokeorder/api/types"
	"github.com/rulego/strokeorder/utils/maps"
)

func init() {
	Registry.Add(&IsCharacterInFilter{})
}

// FilterConfiguration is the configuration shared by the built-in filters.
type FilterConfiguration struct {
	// Value is the text following the filter keyword in the rule line.
	Value string
}

// IsCharacterInFilter passes when the character used at the operand slot belongs to a set.
// Rule line example: `⿰ 1-2 | 1 is 木水`.
//
// Only the first character of the operand text is compared. For a nested operator subtree
// that is the operator glyph, so sets of component characters never match a subtree.
type IsCharacterInFilter struct {
	Config FilterConfiguration
	chars  map[rune]struct{}
}

// Type 组件类型
func (x *IsCharacterInFilter) Type() string {
	return "is"
}

func (x *IsCharacterInFilter) New() FilterComponent {
	return &IsCharacterInFilter{}
}

// Init 初始化
func (x *IsCharacterInFilter) Init(configuration types.Configuration) error {
	if err := maps.Map2Struct(configuration, &x.Config); err != nil {
		return err
	}
	if x.Config.Value == "" {
		return errors.New("character set can not be empty")
	}
	x.chars = make(map[rune]struct{}, utf8.RuneCountInString(x.Config.Value))
	for _, r := range x.Config.Value {
		x.chars[r] = struct{}{}
	}
	return nil
}

// Match 判断操作数字符是否在集合中
func (x *IsCharacterInFilter) Match(operand types.Operand) bool {
	r, size := utf8.DecodeRuneInString(operand.Text)
	if size == 0 {
		return false
	}
	_, ok := x.chars[r]
	return ok
}
