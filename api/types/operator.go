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

package types

// BinaryOperators are the two-operand IDS operators U+2FF0, U+2FF1 and U+2FF4..U+2FFB.
const BinaryOperators = "⿰⿱⿴⿵⿶⿷⿸⿹⿺⿻"

// TernaryOperators are the three-operand IDS operators U+2FF2 and U+2FF3.
const TernaryOperators = "⿲⿳"

var operatorArity = func() map[rune]int {
	m := make(map[rune]int, 12)
	for _, r := range BinaryOperators {
		m[r] = 2
	}
	for _, r := range TernaryOperators {
		m[r] = 3
	}
	return m
}()

// OperatorArity returns 2 or 3 for an IDS operator and 0 for any other rune.
func OperatorArity(r rune) int {
	return operatorArity[r]
}
