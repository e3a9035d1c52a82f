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

package sqlstore

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rulego/strokeorder/api/types"
	"github.com/rulego/strokeorder/test/assert"
)

func TestImport(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, "1m")

	n, err := s.ImportStrokeOrders(ctx, []string{
		"# glyph,order",
		"木,H-S-P-D",
		"",
		"木/1, H S P N",
	})
	assert.Nil(t, err)
	assert.Equal(t, 2, n)
	order, err := s.GetManualStrokeOrder(ctx, "木", 1)
	assert.Nil(t, err)
	assert.Equal(t, types.StrokeOrder("H S P N"), order)

	n, err = s.ImportDecompositions(ctx, []string{
		"林,⿰木木",
		"森,⿱木林",
		"林,⿰木？",
	})
	assert.Nil(t, err)
	assert.Equal(t, 3, n)
	d, err := s.GetDecompositions(ctx, "林")
	assert.Nil(t, err)
	assert.Equal(t, []string{"⿰木木", "⿰木？"}, d)

	t.Run("errors", func(t *testing.T) {
		_, err := s.ImportStrokeOrders(ctx, []string{"木"})
		assert.True(t, errors.Is(err, types.ErrConfiguration))
		_, err = s.ImportStrokeOrders(ctx, []string{"木木,H"})
		assert.True(t, errors.Is(err, types.ErrConfiguration))
		_, err = s.ImportDecompositions(ctx, []string{"林/1,⿰木木"})
		assert.True(t, errors.Is(err, types.ErrConfiguration))
		_, err = s.ImportDecompositions(ctx, []string{"林,⿰木1"})
		assert.True(t, errors.Is(err, types.ErrConfiguration))

		for _, ids := range []string{"⿰木", "⿰木木木", "⿲木木"} {
			_, err = s.ImportDecompositions(ctx, []string{"林,⿰木木", "林," + ids})
			assert.True(t, errors.Is(err, types.ErrConfiguration), ids)
			assert.True(t, strings.Contains(err.Error(), "decomposition line 2"), err.Error())
		}

		// a failed import writes nothing
		d, err := s.GetDecompositions(ctx, "林")
		assert.Nil(t, err)
		assert.Equal(t, 2, len(d))
	})
}
