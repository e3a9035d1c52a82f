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

// Package json wraps encoding/json with the defaults used by the HTTP endpoint:
// no HTML escaping, so expressions such as `total<=3` and CJK text stay readable.
package json

import (
	"bytes"
	"encoding/json"
	"io"
)

// Marshal marshals v without escaping &, < and >.
func Marshal(v interface{}) ([]byte, error) {
	return Marshal2(v, false)
}

// Marshal2 marshals v, escaping &, < and > to \u0026, \u003c and \u003e when escapeHTML is true.
func Marshal2(v interface{}, escapeHTML bool) ([]byte, error) {
	var byteBuf bytes.Buffer
	encoder := json.NewEncoder(&byteBuf)
	encoder.SetEscapeHTML(escapeHTML)
	err := encoder.Encode(v)
	if err == nil && byteBuf.Len() > 0 {
		// drop the trailing newline written by Encode
		return byteBuf.Bytes()[:byteBuf.Len()-1], err
	}
	return byteBuf.Bytes(), err
}

// Format indents json data with two spaces.
func Format(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := json.Indent(&buf, b, "", "  ")
	return buf.Bytes(), err
}

// Unmarshal json data to struct
func Unmarshal(b []byte, m interface{}) error {
	return json.Unmarshal(b, m)
}

// Decode reads one json value from r into m, rejecting unknown fields.
func Decode(r io.Reader, m interface{}) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	return decoder.Decode(m)
}
