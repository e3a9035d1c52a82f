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

// Package engine derives stroke orders from Ideographic Description Sequences.
//
// The Evaluator walks a parsed Decomposition left to right. Components are resolved through
// the LookupService, either from manual data or recursively from their own decompositions,
// and operator nodes are combined with the first matching rule of the RuleTable.
//
//	ev := engine.New(types.NewConfig(), lookup, table)
//	order, err := ev.Aggregate(ctx, []string{"⿰木木"})
package engine

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/gofrs/uuid/v5"
	"github.com/rulego/strokeorder/api/types"
	"github.com/rulego/strokeorder/rule"
)

type requestIdKey struct{}

// WithRequestId attaches a request id to ctx. It is passed to Config.OnDebug.
func WithRequestId(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIdKey{}, id)
}

// RequestId returns the request id carried by ctx, if any.
func RequestId(ctx context.Context) string {
	if v, ok := ctx.Value(requestIdKey{}).(string); ok {
		return v
	}
	return ""
}

// Evaluator resolves stroke orders against one lookup service and one rule table snapshot.
// It holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	config types.Config
	lookup types.LookupService
	rules  *types.RuleTable
}

// New creates an Evaluator. The rule table is read only.
func New(config types.Config, lookup types.LookupService, rules *types.RuleTable) *Evaluator {
	if config.MaxDepth <= 0 {
		config.MaxDepth = types.DefaultMaxDepth
	}
	if config.Logger == nil {
		config.Logger = types.DefaultLogger()
	}
	return &Evaluator{config: config, lookup: lookup, rules: rules}
}

// Rules returns the rule table snapshot used by the evaluator.
func (e *Evaluator) Rules() *types.RuleTable {
	return e.rules
}

// request is the per top-level request state: its id and the memo of resolved components.
// Memo entries are keyed by the resolution path as well, since the cycle guard makes a
// component's result depend on the glyphs being resolved above it.
type request struct {
	id      string
	onDebug func(requestId string, stage string, subject string, err error)
	mu      sync.Mutex
	memo    map[string]types.StrokeOrder
}

func (e *Evaluator) newRequest(ctx context.Context) *request {
	id := RequestId(ctx)
	if id == "" {
		if u, err := uuid.NewV4(); err == nil {
			id = u.String()
		}
	}
	return &request{id: id, onDebug: e.config.OnDebug, memo: make(map[string]types.StrokeOrder)}
}

func (r *request) recall(key string) (types.StrokeOrder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.memo[key]
	return order, ok
}

func (r *request) remember(key string, order types.StrokeOrder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.memo[key] = order
}

func (r *request) debug(stage, subject string, err error) {
	if r.onDebug != nil {
		r.onDebug(r.id, stage, subject, err)
	}
}

// frame is the position of a call in the component resolution tree.
// path lists the glyphs being resolved by the enclosing frames.
type frame struct {
	req  *request
	path []string
}

func (f frame) push(glyph string) frame {
	path := make([]string, len(f.path), len(f.path)+1)
	copy(path, f.path)
	return frame{req: f.req, path: append(path, glyph)}
}

// key identifies token resolved from this frame.
func (f frame) key(token types.Token) string {
	return strings.Join(f.path, "/") + "|" + token.Glyph + "/" + strconv.Itoa(token.Variant)
}

func (f frame) contains(glyph string) bool {
	for _, g := range f.path {
		if g == glyph {
			return true
		}
	}
	return false
}

// Evaluate evaluates the operand starting at cursor and returns its stroke order together
// with the position just after it. It does not require the operand to end the sequence.
func (e *Evaluator) Evaluate(ctx context.Context, d types.Decomposition, cursor int) (types.StrokeOrder, int, error) {
	f := frame{req: e.newRequest(ctx)}
	op, next, err := e.evaluate(ctx, f, d, cursor)
	return op.Order, next, err
}

// EvaluateAll evaluates a whole decomposition, which must consist of exactly one operand.
func (e *Evaluator) EvaluateAll(ctx context.Context, d types.Decomposition) (types.StrokeOrder, error) {
	return e.evaluateAll(ctx, frame{req: e.newRequest(ctx)}, d)
}

// EvaluateString parses and evaluates one IDS string.
func (e *Evaluator) EvaluateString(ctx context.Context, raw string) (types.StrokeOrder, error) {
	return e.evaluateString(ctx, frame{req: e.newRequest(ctx)}, raw)
}

func (e *Evaluator) evaluateString(ctx context.Context, f frame, raw string) (types.StrokeOrder, error) {
	d, err := Parse(raw)
	if err != nil {
		f.req.debug("parse", raw, err)
		return "", err
	}
	return e.evaluateAll(ctx, f, d)
}

func (e *Evaluator) evaluateAll(ctx context.Context, f frame, d types.Decomposition) (types.StrokeOrder, error) {
	op, next, err := e.evaluate(ctx, f, d, 0)
	if err == nil && next != len(d) {
		err = trailingError(d, next)
	}
	f.req.debug("evaluate", d.String(), err)
	if err != nil {
		return "", err
	}
	return op.Order, nil
}

func (e *Evaluator) evaluate(ctx context.Context, f frame, d types.Decomposition, cursor int) (types.Operand, int, error) {
	if err := ctx.Err(); err != nil {
		return types.Operand{}, cursor, err
	}
	if cursor >= len(d) {
		return types.Operand{}, cursor, incompleteError(d, cursor)
	}
	token := d[cursor]
	switch token.Kind {
	case types.OperatorToken:
		next := cursor + 1
		operands := make([]types.Operand, 0, token.Arity)
		for n := 0; n < token.Arity; n++ {
			op, after, err := e.evaluate(ctx, f, d, next)
			if err != nil {
				return types.Operand{}, after, err
			}
			operands = append(operands, op)
			next = after
		}
		text := d.Span(cursor, next)
		order, err := rule.Combine(e.rules, token.Glyph, operands)
		f.req.debug("combine", text, err)
		if err != nil {
			return types.Operand{}, next, err
		}
		return types.Operand{Text: text, Order: order}, next, nil
	case types.UnknownToken:
		return types.Operand{}, cursor + 1, types.NewError(types.NoInformation, "unknown component in '%s'", d)
	default:
		order, err := e.resolve(ctx, f, token)
		if err != nil {
			return types.Operand{}, cursor + 1, err
		}
		return types.Operand{Text: token.Glyph, Order: order}, cursor + 1, nil
	}
}
