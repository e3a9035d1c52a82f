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

package metrics

import (
	"sync"
	"testing"

	"github.com/rulego/strokeorder/test/assert"
)

func TestEngineMetrics(t *testing.T) {
	m := NewEngineMetrics()
	var wg sync.WaitGroup
	outcomes := []Outcome{Success, NotDeducible, Invalid, Ambiguous, Failed}
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.Begin()
			m.End(outcomes[i%len(outcomes)])
		}(i)
	}
	wg.Wait()

	got := m.Get()
	assert.Equal(t, int64(0), got.Current)
	assert.Equal(t, int64(100), got.Total)
	assert.Equal(t, int64(20), got.Success)
	assert.Equal(t, int64(20), got.NotDeducible)
	assert.Equal(t, int64(20), got.Invalid)
	assert.Equal(t, int64(20), got.Ambiguous)
	assert.Equal(t, int64(20), got.Failed)

	m.Begin()
	assert.Equal(t, int64(1), m.Get().Current)
	m.Reset()
	assert.Equal(t, EngineMetrics{}, m.Get())
}
