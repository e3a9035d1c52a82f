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

// Package cache provides the in-memory TTL cache placed in front of remote lookup services.
package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/rulego/strokeorder/api/types"
)

var _ types.Cache = (*MemoryCache)(nil)

// MemoryCache is an in-memory cache implementation.
// It stores key-value pairs with optional expiration.
type MemoryCache struct {
	items      map[string]item
	mu         sync.RWMutex
	stopGc     chan struct{}
	ticker     *time.Ticker
	gcInterval time.Duration
}

// item is a cached value. expiration is a Unix nano timestamp, 0 never expires.
type item struct {
	value      interface{}
	expiration int64
}

// NewMemoryCache creates a new MemoryCache instance.
// Garbage collection starts with the first expirable item.
func NewMemoryCache(gcInterval time.Duration) *MemoryCache {
	c := &MemoryCache{
		items:      make(map[string]item),
		stopGc:     make(chan struct{}),
		gcInterval: time.Minute * 5,
	}
	if gcInterval > 0 {
		c.gcInterval = gcInterval
	}
	return c
}

// Set stores a value with an optional ttl such as "10m". An empty ttl never expires.
func (c *MemoryCache) Set(key string, value interface{}, ttl string) error {
	var expiration int64
	if ttl != "" {
		dur, err := time.ParseDuration(ttl)
		if err != nil {
			return err
		}
		if dur > 0 {
			expiration = time.Now().Add(dur).UnixNano()
		}
	}

	c.mu.Lock()
	c.items[key] = item{value: value, expiration: expiration}
	shouldStartGC := expiration > 0 && c.ticker == nil
	c.mu.Unlock()

	if shouldStartGC {
		c.StartGC()
	}
	return nil
}

// Get returns the value of key, or nil when missing or expired.
func (c *MemoryCache) Get(key string) interface{} {
	v, _ := c.GetOk(key)
	return v
}

// GetOk returns the value of key and whether it is present. It distinguishes a cached nil
// value from a missing key.
func (c *MemoryCache) GetOk(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, found := c.items[key]
	if !found {
		return nil, false
	}
	if it.expiration > 0 && time.Now().UnixNano() > it.expiration {
		return nil, false
	}
	return it.value, true
}

// Has reports whether key exists and has not expired.
func (c *MemoryCache) Has(key string) bool {
	_, ok := c.GetOk(key)
	return ok
}

func (c *MemoryCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

// DeleteByPrefix removes all cache items with the given prefix.
func (c *MemoryCache) DeleteByPrefix(prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
		}
	}
	return nil
}

// Len returns the number of stored items, expired ones included until collected.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// StartGC starts the periodic removal of expired items if not already running and if there
// are expirable items.
func (c *MemoryCache) StartGC() {
	c.mu.Lock()
	if c.ticker != nil {
		c.mu.Unlock()
		return
	}
	hasExpirable := false
	for _, itm := range c.items {
		if itm.expiration > 0 {
			hasExpirable = true
			break
		}
	}
	if !hasExpirable {
		c.mu.Unlock()
		return
	}
	ticker := time.NewTicker(c.gcInterval)
	stop := make(chan struct{})
	c.ticker = ticker
	c.stopGc = stop
	c.mu.Unlock()

	go func() {
		for {
			select {
			case <-ticker.C:
				c.deleteExpired()
			case <-stop:
				ticker.Stop()
				c.mu.Lock()
				c.ticker = nil
				c.mu.Unlock()
				return
			}
		}
	}()
}

// StopGC stops the garbage collection goroutine. Safe to call multiple times.
func (c *MemoryCache) StopGC() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ticker != nil && c.stopGc != nil {
		select {
		case <-c.stopGc:
		default:
			close(c.stopGc)
		}
	}
}

// deleteExpired collects expired keys under the read lock, then deletes them under the write
// lock, re-checking each one.
func (c *MemoryCache) deleteExpired() {
	now := time.Now().UnixNano()

	c.mu.RLock()
	var expiredKeys []string
	for k, v := range c.items {
		if v.expiration > 0 && now > v.expiration {
			expiredKeys = append(expiredKeys, k)
		}
	}
	c.mu.RUnlock()

	if len(expiredKeys) == 0 {
		return
	}

	c.mu.Lock()
	for _, k := range expiredKeys {
		if it, found := c.items[k]; found && it.expiration > 0 && now > it.expiration {
			delete(c.items, k)
		}
	}
	hasExpirableRemaining := false
	for _, itm := range c.items {
		if itm.expiration > 0 {
			hasExpirableRemaining = true
			break
		}
	}
	c.mu.Unlock()

	if !hasExpirableRemaining {
		c.StopGC()
	}
}
