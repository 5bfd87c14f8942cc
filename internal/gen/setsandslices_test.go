//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetSubtraction(t *testing.T) {
	aa := []string{"a", "b", "c", "d", "g", "h"}
	bb := []string{"a", "b", "e", "f", "g"}
	assert.Equal(t, []string{"c", "d", "h"}, SetSubtraction(aa, bb))
	assert.Empty(t, SetSubtraction(bb, bb))
}

func TestUniqueInOrder(t *testing.T) {
	assert.Equal(t, []int{3, 1, 2}, UniqueInOrder([]int{3, 1, 3, 2, 1}))
	assert.Nil(t, UniqueInOrder([]int{}))
}

func TestSortedKeys(t *testing.T) {
	m := map[int]string{5: "e", 1: "a", 3: "c"}
	assert.Equal(t, []int{1, 3, 5}, SortedKeys(m))
}

func TestNumberFormatting(t *testing.T) {
	assert.Equal(t, "1,234,567", FmtInt(1234567))
	assert.Equal(t, "75.00%", FmtPct(0.75))
}
