package rowstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSelectComposition(t *testing.T) {
	tests := []struct {
		name                 string
		filter, order, limit string
		want                 string
	}{
		{"bare", "", "", "", "SELECT id, name FROM people"},
		{"filter", "age > {0}", "", "", "SELECT id, name FROM people WHERE age > {0}"},
		{"order", "", "name DESC", "", "SELECT id, name FROM people ORDER BY name DESC"},
		{"limit", "", "", "10", "SELECT id, name FROM people LIMIT 10"},
		{"all", "age > {0}", "name", "{1}", "SELECT id, name FROM people WHERE age > {0} ORDER BY name LIMIT {1}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStatements()
			require.NoError(t, s.AddSelect("people", "id, name", "people", tt.filter, tt.order, tt.limit))

			stmt, ok := s.Get(SelectStatement, "people")
			require.True(t, ok)
			assert.Equal(t, tt.want, stmt.Text)
			assert.Equal(t, "people", stmt.Key)
		})
	}
}

func TestWriteStatementComposition(t *testing.T) {
	assert := assert.New(t)
	s := NewStatements()

	require.NoError(t, s.AddInsert("add-person", "people", "name='{0}'"))
	require.NoError(t, s.AddUpdate("rename", "people", "name='{1}'", "id={0}"))
	require.NoError(t, s.AddDelete("purge", "people", "", "", ""))
	require.NoError(t, s.AddDelete("trim", "people", "age > {0}", "id", "5"))

	ins, _ := s.Get(InsertStatement, "add-person")
	assert.Equal("INSERT INTO people SET name='{0}'", ins.Text)

	up, _ := s.Get(UpdateStatement, "rename")
	assert.Equal("UPDATE people SET name='{1}' WHERE id={0}", up.Text)

	purge, _ := s.Get(DeleteStatement, "purge")
	assert.Equal("DELETE FROM people", purge.Text)

	trim, _ := s.Get(DeleteStatement, "trim")
	assert.Equal("DELETE FROM people WHERE age > {0} ORDER BY id LIMIT 5", trim.Text)
}

func TestEmptyKeyDefaultsToTable(t *testing.T) {
	s := NewStatements()
	require.NoError(t, s.AddInsert("", "people", "name='{0}'"))
	require.NoError(t, s.AddSelect("", "*", "people", "", "", ""))

	_, ok := s.Get(InsertStatement, "people")
	assert.True(t, ok)
	_, ok = s.Get(SelectStatement, "people")
	assert.True(t, ok)
}

func TestDuplicateStatementKey(t *testing.T) {
	s := NewStatements()
	require.NoError(t, s.AddInsert("k", "people", "a='{0}'"))

	err := s.AddInsert("k", "other", "b='{0}'")
	assert.True(t, errors.Is(err, ErrDuplicateStatementKey), "got %v", err)

	stmt, _ := s.Get(InsertStatement, "k")
	assert.Equal(t, "INSERT INTO people SET a='{0}'", stmt.Text)

	// same key under another kind is fine
	assert.NoError(t, s.AddDelete("k", "people", "", "", ""))
}

func TestGetMissingKey(t *testing.T) {
	s := NewStatements()
	_, ok := s.Get(SelectStatement, "nope")
	assert.False(t, ok)

	_, err := s.lookup(SelectStatement, "nope")
	assert.True(t, errors.Is(err, ErrStatementNotFound))
}
