/*
 * Copyright 2023 The RuleGo Authors.
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

// DefaultMaxDepth bounds the nesting of component resolution.
const DefaultMaxDepth = 32

// Config defines the configuration for the stroke order engine.
type Config struct {
	// OnDebug is called for every resolution step when set.
	// - requestId: id of the top-level request
	// - stage: parse, evaluate, resolve, combine or aggregate
	// - subject: the decomposition or component being processed
	// - err: error information, if any
	OnDebug func(requestId string, stage string, subject string, err error)
	// Pool evaluates independent candidate decompositions concurrently. If not configured,
	// candidates are evaluated sequentially.
	// The default implementation is `pool.WorkerPool`.
	Pool Pool
	// Logger is the logging interface, defaulting to `DefaultLogger()`.
	Logger Logger
	// MaxDepth bounds recursive component resolution. Defaults to DefaultMaxDepth.
	MaxDepth int
}

// NewConfig creates a new Config and applies the options.
func NewConfig(opts ...Option) Config {
	c := &Config{
		Logger:   DefaultLogger(),
		MaxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		_ = opt(c)
	}
	return *c
}
