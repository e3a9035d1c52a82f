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

package json

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rulego/strokeorder/test/assert"
)

type strokeOrderResponse struct {
	Character   string `json:"character"`
	StrokeOrder string `json:"strokeOrder"`
	Rule        string `json:"rule,omitempty"`
}

func TestMarshal(t *testing.T) {
	v := strokeOrderResponse{Character: "林", StrokeOrder: "H-S-P-D"}
	v1, _ := json.Marshal(v)
	v2, err := Marshal(v)
	assert.Nil(t, err)
	assert.Equal(t, string(v1), string(v2))

	v = strokeOrderResponse{Rule: "⿱ 1-2 | 1 expr total<=3"}
	v2, _ = Marshal(v)
	assert.True(t, strings.Contains(string(v2), "total<=3"))
	v3, _ := Marshal2(v, true)
	assert.True(t, strings.Contains(string(v3), `count\u003c=3`))
}

func TestUnmarshal(t *testing.T) {
	v, _ := json.Marshal(strokeOrderResponse{Character: "木"})
	var out strokeOrderResponse
	assert.Nil(t, Unmarshal(v, &out))
	assert.Equal(t, "木", out.Character)
}

func TestFormat(t *testing.T) {
	v, _ := json.Marshal(strokeOrderResponse{Character: "木"})
	var buf bytes.Buffer
	_ = json.Indent(&buf, v, "", "  ")
	result, err := Format(v)
	assert.Nil(t, err)
	assert.Equal(t, buf.Bytes(), result)
}

func TestDecode(t *testing.T) {
	var out strokeOrderResponse
	assert.Nil(t, Decode(strings.NewReader(`{"character":"木"}`), &out))
	assert.Equal(t, "木", out.Character)
	assert.NotNil(t, Decode(strings.NewReader(`{"char":"木"}`), &out))
	assert.NotNil(t, Decode(strings.NewReader(`{`), &out))
}
