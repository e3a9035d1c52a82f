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

import "context"

// LookupService is the knowledge base queried by the component resolver.
type LookupService interface {
	// GetManualStrokeOrder returns the manually recorded stroke order of a glyph variant.
	// An empty order means no record exists.
	GetManualStrokeOrder(ctx context.Context, glyph string, variant int) (StrokeOrder, error)
	// GetDecompositions returns the known IDS strings of a glyph in priority order, empty if none.
	GetDecompositions(ctx context.Context, glyph string) ([]string, error)
}

// RuleProvider supplies the raw rule table lines.
type RuleProvider interface {
	RuleLines() ([]string, error)
}

// StrokeNameProvider supplies raw `name,glyph` lines.
type StrokeNameProvider interface {
	StrokeNameLines() ([]string, error)
}

// Pool 协程池
type Pool interface {
	//Submit 往协程池提交一个任务
	//如果协程池满返回错误
	Submit(task func()) error
	//Release 释放
	Release()
}
