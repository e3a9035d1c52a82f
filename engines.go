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

package strokeorder

import (
	"errors"
	"sort"
	"sync"

	"github.com/rulego/strokeorder/api/types"
)

// DefaultEngines is the default engine pool.
var DefaultEngines = &Engines{}

// Engines 笔顺引擎实例池，例如按地区规范（大陆、台湾、日本）各一个规则表
type Engines struct {
	engines sync.Map
}

// New creates an engine and stores it under id. An existing engine with the same id is returned as is.
func (g *Engines) New(id string, lookup types.LookupService, opts ...EngineOption) (*Engine, error) {
	if id == "" {
		return nil, errors.New("engine id can not be empty")
	}
	if v, ok := g.engines.Load(id); ok {
		return v.(*Engine), nil
	}
	e, err := New(lookup, append(opts, WithId(id))...)
	if err != nil {
		return nil, err
	}
	actual, _ := g.engines.LoadOrStore(id, e)
	return actual.(*Engine), nil
}

// Get 获取指定ID引擎实例
func (g *Engines) Get(id string) (*Engine, bool) {
	if v, ok := g.engines.Load(id); ok {
		return v.(*Engine), true
	}
	return nil, false
}

// Del 删除指定ID引擎实例
func (g *Engines) Del(id string) {
	g.engines.Delete(id)
}

// Ids returns the ids of all engines in sorted order.
func (g *Engines) Ids() []string {
	var ids []string
	g.engines.Range(func(key, value any) bool {
		ids = append(ids, key.(string))
		return true
	})
	sort.Strings(ids)
	return ids
}

// Range calls f for every engine until f returns false.
func (g *Engines) Range(f func(id string, e *Engine) bool) {
	g.engines.Range(func(key, value any) bool {
		return f(key.(string), value.(*Engine))
	})
}

// Reload reloads every engine. A failing engine keeps its previous configuration; the errors
// are joined.
func (g *Engines) Reload() error {
	var errs []error
	for _, id := range g.Ids() {
		if e, ok := g.Get(id); ok {
			if err := e.Reload(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
