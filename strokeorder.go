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

// Package strokeorder derives the stroke order of CJK ideographs from their Ideographic
// Description Sequences.
//
// # Usage
//
// A character is described by one or more decompositions such as "⿰木木". Each component is
// resolved through a LookupService, either from a manually recorded stroke order or from the
// component's own decompositions, and the operands of every composition operator are combined
// with the first matching line of the rule table:
//
//	⿰ 1-2
//	⿺ 2-1 | 1 is 辶廴
//	⿱ 1-2 | 2 has H-S
//
// Create an engine
//
//	lookup := memory.New().SetStrokeOrder("木", types.NoVariant, "H-S-P-D")
//	engine, err := strokeorder.New(lookup,
//		strokeorder.WithRuleProvider(provider.File{Path: "./rules.txt"}),
//		strokeorder.WithStrokeNameProvider(provider.File{Path: "./strokes.csv"}),
//	)
//
// Derive a stroke order
//
//	order, err := engine.GetStrokeOrder(ctx, []string{"⿰木木"})
//
// Diagnose a single decomposition
//
//	msg := engine.GetStrokeOrderError(ctx, "⿰木")
//
// Render stroke glyphs
//
//	glyphs := engine.GetUnicodeFormsForStrokeNames(order)
//
// Configuration is compiled once at construction and again on Reload; a malformed line is
// reported as a types.ConfigurationError and the previous configuration stays in effect.
package strokeorder

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rulego/strokeorder/api/types"
	"github.com/rulego/strokeorder/api/types/metrics"
	"github.com/rulego/strokeorder/engine"
	"github.com/rulego/strokeorder/rule"
	"github.com/rulego/strokeorder/strokename"
)

// snapshot is an immutable compiled configuration.
type snapshot struct {
	rules    *types.RuleTable
	names    types.StrokeNameMap
	loadedAt time.Time
}

// Engine 笔顺推导引擎
type Engine struct {
	// Id identifies the engine in an Engines pool.
	Id           string
	config       types.Config
	lookup       types.LookupService
	ruleProvider types.RuleProvider
	nameProvider types.StrokeNameProvider
	current      atomic.Pointer[snapshot]
	metrics      *metrics.EngineMetrics
}

// New creates an engine over lookup and loads its configuration.
func New(lookup types.LookupService, opts ...EngineOption) (*Engine, error) {
	e := &Engine{
		config:  types.NewConfig(),
		lookup:  lookup,
		metrics: metrics.NewEngineMetrics(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if e.config.Logger == nil {
		e.config.Logger = types.DefaultLogger()
	}
	if err := e.Reload(); err != nil {
		return nil, err
	}
	return e, nil
}

// Reload reads and compiles the rule table and stroke name map, then swaps them in.
// In-flight requests keep the configuration they started with.
func (e *Engine) Reload() error {
	next := &snapshot{rules: &types.RuleTable{}, names: types.StrokeNameMap{}, loadedAt: time.Now()}
	if e.ruleProvider != nil {
		lines, err := e.ruleProvider.RuleLines()
		if err != nil {
			return types.NewError(types.ConfigurationError, "load rules: %v", err)
		}
		if next.rules, err = rule.Compile(lines); err != nil {
			return err
		}
	}
	if e.nameProvider != nil {
		lines, err := e.nameProvider.StrokeNameLines()
		if err != nil {
			return types.NewError(types.ConfigurationError, "load stroke names: %v", err)
		}
		if next.names, err = strokename.ParseLines(lines); err != nil {
			return err
		}
	}
	e.current.Store(next)
	e.config.Logger.Printf("strokeorder engine %s loaded %d rules, %d stroke names", e.Id, next.rules.Len(), len(next.names))
	return nil
}

// LoadedAt returns the time the active configuration was loaded.
func (e *Engine) LoadedAt() time.Time {
	return e.current.Load().loadedAt
}

// Rules returns the active rule table. It must not be modified.
func (e *Engine) Rules() *types.RuleTable {
	return e.current.Load().rules
}

// Config returns the engine configuration.
func (e *Engine) Config() types.Config {
	return e.config
}

// Metrics returns a copy of the request counters.
func (e *Engine) Metrics() metrics.EngineMetrics {
	return e.metrics.Get()
}

func (e *Engine) evaluator() *engine.Evaluator {
	return engine.New(e.config, e.lookup, e.current.Load().rules)
}

// GetStrokeOrder derives one stroke order from all known decompositions of a character.
// An empty order with a nil error means the stroke order can not be deduced.
// Errors are Ambiguous or InvalidIds.
func (e *Engine) GetStrokeOrder(ctx context.Context, decompositions []string) (types.StrokeOrder, error) {
	e.metrics.Begin()
	order, err := e.evaluator().Aggregate(ctx, decompositions)
	e.metrics.End(outcomeOf(order, err))
	return order, err
}

// GetStrokeOrderError evaluates a single decomposition and returns the error message, or an
// empty string when the stroke order can be derived.
func (e *Engine) GetStrokeOrderError(ctx context.Context, decomposition string) string {
	if _, err := e.evaluator().EvaluateString(ctx, decomposition); err != nil {
		return err.Error()
	}
	return ""
}

// GetUnicodeFormsForStrokeNames renders a stroke order with the configured stroke glyphs.
func (e *Engine) GetUnicodeFormsForStrokeNames(order types.StrokeOrder) string {
	return strokename.ToGlyphs(order, e.current.Load().names)
}

// GetCharacterStrokeOrder resolves a character, e.g. "林" or "木/1", through the lookup
// service: manual data first, then its recorded decompositions.
func (e *Engine) GetCharacterStrokeOrder(ctx context.Context, character string) (types.StrokeOrder, error) {
	e.metrics.Begin()
	order, err := e.evaluator().ResolveText(ctx, character)
	e.metrics.End(outcomeOf(order, err))
	return order, err
}

// GetStrokeCount returns the number of strokes derived from the decompositions, 0 when not
// deducible.
func (e *Engine) GetStrokeCount(ctx context.Context, decompositions []string) (int, error) {
	order, err := e.GetStrokeOrder(ctx, decompositions)
	if err != nil {
		return 0, err
	}
	return order.Count(), nil
}

func outcomeOf(order types.StrokeOrder, err error) metrics.Outcome {
	switch {
	case err == nil && order.IsEmpty():
		return metrics.NotDeducible
	case err == nil:
		return metrics.Success
	}
	switch types.KindOf(err) {
	case types.InvalidIds:
		return metrics.Invalid
	case types.Ambiguous:
		return metrics.Ambiguous
	case types.NoInformation, types.Cycle:
		return metrics.NotDeducible
	default:
		return metrics.Failed
	}
}

func (e *Engine) String() string {
	return fmt.Sprintf("Engine{id=%s, rules=%d}", e.Id, e.Rules().Len())
}
