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

package rule

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rulego/strokeorder/api/types"
)

// FilterComponent is a filter kind usable in the `<index> <kind> <value>` clause of a rule line.
type FilterComponent interface {
	types.FilterMatcher
	// Type is the keyword used in rule lines, e.g. "is".
	Type() string
	// New returns a fresh, unconfigured instance.
	New() FilterComponent
	// Init configures the instance. The configuration carries the "value" key.
	Init(configuration types.Configuration) error
}

// Registry 默认过滤器注册器
var Registry = new(FilterRegistry)

// FilterRegistry 过滤器组件注册器
type FilterRegistry struct {
	components map[string]FilterComponent
	sync.RWMutex
}

// Add registers filters, panicking on duplicates. Intended for init().
func (r *FilterRegistry) Add(filters ...FilterComponent) {
	for _, f := range filters {
		if err := r.Register(f); err != nil {
			panic(err)
		}
	}
}

// Register 注册过滤器组件
func (r *FilterRegistry) Register(filter FilterComponent) error {
	r.Lock()
	defer r.Unlock()
	if r.components == nil {
		r.components = make(map[string]FilterComponent)
	}
	if _, ok := r.components[filter.Type()]; ok {
		return errors.New("the filter already exists. filterType=" + filter.Type())
	}
	r.components[filter.Type()] = filter
	return nil
}

// Unregister removes a filter kind.
func (r *FilterRegistry) Unregister(filterType string) error {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.components[filterType]; !ok {
		return fmt.Errorf("filter not found.filterType=%s", filterType)
	}
	delete(r.components, filterType)
	return nil
}

// NewFilter 获取过滤器组件新实例
func (r *FilterRegistry) NewFilter(filterType string) (FilterComponent, error) {
	r.RLock()
	defer r.RUnlock()
	if f, ok := r.components[filterType]; !ok {
		return nil, fmt.Errorf("filter not found.filterType=%s", filterType)
	} else {
		return f.New(), nil
	}
}

// Types returns the registered filter keywords in sorted order.
func (r *FilterRegistry) Types() []string {
	r.RLock()
	defer r.RUnlock()
	var keys []string
	for k := range r.components {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
