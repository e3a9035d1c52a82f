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

// Package metrics counts stroke order requests of an engine.
package metrics

import (
	"sync/atomic"
)

// EngineMetrics holds the request counters of one engine.
type EngineMetrics struct {
	Current int64 `json:"current"` // Number of requests in progress
	Total   int64 `json:"total"`   // Total number of requests
	Success int64 `json:"success"` // Requests that derived a stroke order
	// NotDeducible counts requests that ended without error and without a stroke order.
	NotDeducible int64 `json:"notDeducible"`
	Invalid      int64 `json:"invalid"`   // InvalidIds failures
	Ambiguous    int64 `json:"ambiguous"` // Ambiguous failures
	Failed       int64 `json:"failed"`    // Any other failure, e.g. lookup errors
}

// NewEngineMetrics creates a new instance of EngineMetrics.
func NewEngineMetrics() *EngineMetrics {
	return &EngineMetrics{}
}

// Begin marks the start of a request.
func (m *EngineMetrics) Begin() {
	atomic.AddInt64(&m.Current, 1)
	atomic.AddInt64(&m.Total, 1)
}

// End marks the end of a request with its outcome.
func (m *EngineMetrics) End(outcome Outcome) {
	atomic.AddInt64(&m.Current, -1)
	switch outcome {
	case Success:
		atomic.AddInt64(&m.Success, 1)
	case NotDeducible:
		atomic.AddInt64(&m.NotDeducible, 1)
	case Invalid:
		atomic.AddInt64(&m.Invalid, 1)
	case Ambiguous:
		atomic.AddInt64(&m.Ambiguous, 1)
	default:
		atomic.AddInt64(&m.Failed, 1)
	}
}

// Outcome of one request.
type Outcome int

const (
	Success Outcome = iota
	NotDeducible
	Invalid
	Ambiguous
	Failed
)

// Get returns a copy of the current metrics.
func (m *EngineMetrics) Get() EngineMetrics {
	return EngineMetrics{
		Current:      atomic.LoadInt64(&m.Current),
		Total:        atomic.LoadInt64(&m.Total),
		Success:      atomic.LoadInt64(&m.Success),
		NotDeducible: atomic.LoadInt64(&m.NotDeducible),
		Invalid:      atomic.LoadInt64(&m.Invalid),
		Ambiguous:    atomic.LoadInt64(&m.Ambiguous),
		Failed:       atomic.LoadInt64(&m.Failed),
	}
}

// Reset resets all metrics to zero.
func (m *EngineMetrics) Reset() {
	atomic.StoreInt64(&m.Current, 0)
	atomic.StoreInt64(&m.Total, 0)
	atomic.StoreInt64(&m.Success, 0)
	atomic.StoreInt64(&m.NotDeducible, 0)
	atomic.StoreInt64(&m.Invalid, 0)
	atomic.StoreInt64(&m.Ambiguous, 0)
	atomic.StoreInt64(&m.Failed, 0)
}
