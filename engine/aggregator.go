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
	"sync"

	"github.com/rulego/strokeorder/api/types"
)

type candidateResult struct {
	order types.StrokeOrder
	err   error
}

// Aggregate derives one stroke order from all candidate decompositions of a character.
//
// Candidates failing with NoInformation (or Cycle) are skipped. The first InvalidIds, or any
// error outside the engine taxonomy, aborts the call. Every successful candidate must agree
// with the first one, otherwise the result is Ambiguous. An empty order with a nil error means
// the stroke order is not deducible.
func (e *Evaluator) Aggregate(ctx context.Context, decompositions []string) (types.StrokeOrder, error) {
	order, _, err := e.aggregate(ctx, frame{req: e.newRequest(ctx)}, decompositions)
	return order, err
}

func (e *Evaluator) aggregate(ctx context.Context, f frame, decompositions []string) (types.StrokeOrder, []error, error) {
	var accepted types.StrokeOrder
	var found bool
	var skipped []error
	next := e.candidates(ctx, f, decompositions)
	for i := 0; i < len(decompositions); i++ {
		r := next(i)
		if r.err != nil {
			if types.KindOf(r.err).Skippable() {
				skipped = append(skipped, r.err)
				continue
			}
			f.req.debug("aggregate", decompositions[i], r.err)
			return "", skipped, r.err
		}
		if !found {
			accepted, found = r.order, true
			continue
		}
		if !accepted.Equal(r.order) {
			err := types.NewAmbiguousError(accepted, r.order)
			f.req.debug("aggregate", decompositions[i], err)
			return "", skipped, err
		}
	}
	return accepted, skipped, nil
}

// candidates returns an accessor for the i-th candidate result. Without a pool candidates are
// evaluated lazily so an abort stops the work; with a pool all candidates run concurrently
// and are read back in input order.
func (e *Evaluator) candidates(ctx context.Context, f frame, decompositions []string) func(i int) candidateResult {
	if e.config.Pool == nil || len(decompositions) < 2 {
		return func(i int) candidateResult {
			order, err := e.evaluateString(ctx, f, decompositions[i])
			return candidateResult{order: order, err: err}
		}
	}
	results := make([]candidateResult, len(decompositions))
	var wg sync.WaitGroup
	for i := range decompositions {
		i := i
		wg.Add(1)
		task := func() {
			defer wg.Done()
			order, err := e.evaluateString(ctx, f, decompositions[i])
			results[i] = candidateResult{order: order, err: err}
		}
		if err := e.config.Pool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()
	return func(i int) candidateResult {
		return results[i]
	}
}
