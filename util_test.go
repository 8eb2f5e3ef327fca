package rowstore

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapFilter(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, Map([]int{1, 2}, strconv.Itoa))
	assert.Empty(t, Map([]int(nil), strconv.Itoa))

	even := func(v int) bool { return v%2 == 0 }
	assert.Equal(t, []int{2, 4}, Filter([]int{1, 2, 3, 4}, even))
	assert.Nil(t, Filter([]int{1, 3}, even))
}

func TestCompactFragments(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, compactFragments([]string{" a", "", "  ", "b c "}))
	assert.Nil(t, compactFragments(nil))
}
