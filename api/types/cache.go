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

package types

// Cache is a key-value store with optional expiration, placed in front of slow lookup services.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Set stores a value. ttl is a duration string such as "10m"; empty never expires.
	Set(key string, value interface{}, ttl string) error
	// GetOk returns the value and whether it exists and has not expired.
	GetOk(key string) (interface{}, bool)
	Delete(key string) error
	// DeleteByPrefix removes every key starting with prefix.
	DeleteByPrefix(prefix string) error
}
