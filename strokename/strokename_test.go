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

package strokename

import (
	"errors"
	"testing"

	"github.com/rulego/strokeorder/api/types"
	"github.com/rulego/strokeorder/test/assert"
)

func TestToGlyphs(t *testing.T) {
	names := types.StrokeNameMap{"H": "㇐", "S": "㇑", "P": "㇒", "D": "㇔"}

	assert.Equal(t, "㇐㇑㇒㇔", ToGlyphs("H-S-P-D", names))
	assert.Equal(t, "㇐㇑㇒㇔", ToGlyphs("H S  P-D", names))
	assert.Equal(t, "㇐X㇔", ToGlyphs("H-X-D", names))
	assert.Equal(t, "", ToGlyphs("", names))
	assert.Equal(t, "", ToGlyphs(" - ", names))
	assert.Equal(t, "HS", ToGlyphs("H-S", nil))

	t.Run("identity", func(t *testing.T) {
		identity := types.StrokeNameMap{"H": "H", "S": "S", "㇐": "㇐"}
		for _, in := range []string{"H", "S", "㇐", "㇐㇑", "X"} {
			assert.Equal(t, in, ToGlyphs(types.StrokeOrder(in), identity))
		}
	})
	t.Run("idempotent", func(t *testing.T) {
		once := ToGlyphs("H-S-P-D", names)
		assert.Equal(t, once, ToGlyphs(types.StrokeOrder(once), names))
	})
}

func TestParseLines(t *testing.T) {
	m, err := ParseLines([]string{
		"# name,glyph",
		"",
		"H,㇐",
		" S , ㇑ ",
		"H,一",
	})
	assert.Nil(t, err)
	assert.Equal(t, types.StrokeNameMap{"H": "㇐", "S": "㇑"}, m)

	for _, line := range []string{"H", ",㇐", "H,"} {
		_, err = ParseLines([]string{"S,㇑", line})
		assert.True(t, errors.Is(err, types.ErrConfiguration), line)
	}
	_, err = ParseLines([]string{"S,㇑", "H"})
	assert.EqualError(t, err, "Configuration: stroke name line 2: invalid entry 'H'")
}
