/*
 * Copyright 2024 The RuleGo Authors.
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

package strokeorder

import "github.com/rulego/strokeorder/api/types"

// EngineOption is a function type that modifies the Engine.
type EngineOption func(*Engine) error

// WithConfig sets the engine configuration.
func WithConfig(config types.Config) EngineOption {
	return func(e *Engine) error {
		e.config = config
		return nil
	}
}

// WithRuleProvider sets the source of the rule table.
func WithRuleProvider(provider types.RuleProvider) EngineOption {
	return func(e *Engine) error {
		e.ruleProvider = provider
		return nil
	}
}

// WithStrokeNameProvider sets the source of the stroke name map.
func WithStrokeNameProvider(provider types.StrokeNameProvider) EngineOption {
	return func(e *Engine) error {
		e.nameProvider = provider
		return nil
	}
}

// WithId sets the engine id used by an Engines pool.
func WithId(id string) EngineOption {
	return func(e *Engine) error {
		e.Id = id
		return nil
	}
}
