package rowstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeSortClause(t *testing.T) {
	assert.Equal(t, "", MakeSortClause(nil))
	assert.Equal(t, "created DESC, name ASC, age ASC", MakeSortClause(nil, "-created", "+name", "age"))
	assert.Equal(t, "entry_name DESC", MakeSortClause(map[string]string{"name": "entry_name"}, "-name", " "))
}

func TestMakeFilter(t *testing.T) {
	assert.Equal(t, "", MakeFilter())
	assert.Equal(t, "a = 1", MakeFilter("", "a = 1", "  "))
	assert.Equal(t, "a = 1 AND b IS NULL", MakeFilter("a = 1", "b IS NULL"))
}
