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

// Package memory provides an in-memory LookupService, used by tests and by callers that
// already hold their character data in memory.
package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/rulego/strokeorder/api/types"
)

// Lookup is a concurrency safe in-memory LookupService.
type Lookup struct {
	mu             sync.RWMutex
	orders         map[string]types.StrokeOrder
	decompositions map[string][]string
}

var _ types.LookupService = (*Lookup)(nil)

// New creates an empty Lookup.
func New() *Lookup {
	return &Lookup{
		orders:         make(map[string]types.StrokeOrder),
		decompositions: make(map[string][]string),
	}
}

func orderKey(glyph string, variant int) string {
	return glyph + "/" + strconv.Itoa(variant)
}

// SetStrokeOrder records a manual stroke order. Use types.NoVariant for the default glyph.
func (l *Lookup) SetStrokeOrder(glyph string, variant int, order types.StrokeOrder) *Lookup {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.orders[orderKey(glyph, variant)] = order
	return l
}

// AddDecomposition appends IDS strings to the decompositions of glyph.
func (l *Lookup) AddDecomposition(glyph string, decompositions ...string) *Lookup {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.decompositions[glyph] = append(l.decompositions[glyph], decompositions...)
	return l
}

func (l *Lookup) GetManualStrokeOrder(_ context.Context, glyph string, variant int) (types.StrokeOrder, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.orders[orderKey(glyph, variant)], nil
}

// GetDecompositions returns a copy of the recorded decompositions.
func (l *Lookup) GetDecompositions(_ context.Context, glyph string) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	d := l.decompositions[glyph]
	if len(d) == 0 {
		return nil, nil
	}
	out := make([]string, len(d))
	copy(out, d)
	return out, nil
}
