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

package engine

import (
	"context"
	"fmt"

	"github.com/rulego/strokeorder/api/types"
)

// Resolve returns the stroke order of a single component token.
//
// Manual data always wins and is returned verbatim. Otherwise the component's own
// decompositions are aggregated. A component whose decompositions disagree is reported as
// NoInformation to the caller: the component is undeterminable, not the parent.
func (e *Evaluator) Resolve(ctx context.Context, token types.Token) (types.StrokeOrder, error) {
	return e.resolve(ctx, frame{req: e.newRequest(ctx)}, token)
}

// ResolveText parses text as a single component, e.g. "木" or "木/1", and resolves it.
func (e *Evaluator) ResolveText(ctx context.Context, text string) (types.StrokeOrder, error) {
	token, err := ParseComponent(text)
	if err != nil {
		return "", err
	}
	return e.Resolve(ctx, token)
}

func (e *Evaluator) resolve(ctx context.Context, f frame, token types.Token) (types.StrokeOrder, error) {
	if token.Kind != types.ComponentToken {
		return "", types.NewError(types.InvalidIds, "'%s' is not a component", token.Text)
	}
	key := f.key(token)
	if order, ok := f.req.recall(key); ok {
		return order, nil
	}
	if f.contains(token.Glyph) {
		err := types.NewError(types.Cycle, "component '%s' refers to itself through %v", token.Glyph, f.path)
		f.req.debug("resolve", token.Text, err)
		return "", err
	}
	if len(f.path) >= e.config.MaxDepth {
		err := types.NewError(types.Cycle, "component '%s' exceeds resolution depth %d", token.Glyph, e.config.MaxDepth)
		f.req.debug("resolve", token.Text, err)
		return "", err
	}
	order, err := e.resolveComponent(ctx, f.push(token.Glyph), token)
	f.req.debug("resolve", token.Text, err)
	if err != nil {
		return "", err
	}
	f.req.remember(key, order)
	return order, nil
}

func (e *Evaluator) resolveComponent(ctx context.Context, f frame, token types.Token) (types.StrokeOrder, error) {
	if e.lookup == nil {
		return "", types.NewError(types.NoInformation, "no stroke order for component '%s'", token.Text)
	}
	manual, err := e.lookup.GetManualStrokeOrder(ctx, token.Glyph, token.Variant)
	if err != nil {
		return "", fmt.Errorf("lookup stroke order of '%s': %w", token.Text, err)
	}
	if !manual.IsEmpty() {
		return manual, nil
	}
	decompositions, err := e.lookup.GetDecompositions(ctx, token.Glyph)
	if err != nil {
		return "", fmt.Errorf("lookup decompositions of '%s': %w", token.Glyph, err)
	}
	if len(decompositions) > 0 {
		order, skipped, err := e.aggregate(ctx, f, decompositions)
		switch {
		case err == nil && !order.IsEmpty():
			return order, nil
		case err == nil:
			if cause := allCycles(skipped); cause != nil {
				return "", cause
			}
		case types.KindOf(err) == types.Ambiguous:
			return "", types.NewError(types.NoInformation, "component '%s' is undeterminable: %s", token.Text, err.Error())
		default:
			return "", err
		}
	}
	return "", types.NewError(types.NoInformation, "no stroke order for component '%s'", token.Text)
}

// allCycles returns the first error when every skipped candidate failed on a cycle.
func allCycles(skipped []error) error {
	if len(skipped) == 0 {
		return nil
	}
	for _, err := range skipped {
		if types.KindOf(err) != types.Cycle {
			return nil
		}
	}
	return skipped[0]
}
