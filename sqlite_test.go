package rowstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSqliteDB(t *testing.T) *DB {
	t.Helper()

	conn, err := ConnectSqlite(filepath.Join(t.TempDir(), "rowstore.db"))
	require.NoError(t, err)

	db := New(conn, WithName("sqlite"))
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	for _, stmt := range []string{
		`create table people(
			id integer primary key autoincrement,
			name text not null,
			age integer
		)`,
		`insert into people(name, age) values ('ann', 31), ('bob', 45), ('cat', null)`,
	} {
		_, err := db.Session().Exec(ctx, stmt)
		require.NoError(t, err)
	}

	return db
}

func TestSqliteSelect(t *testing.T) {
	db := newSqliteDB(t)
	ctx := context.Background()
	require.NoError(t, db.AddSelectStatement("older", "id, name, age", "people", "age > {0}", "age DESC", ""))
	require.NoError(t, db.AddSelectStatement("", "*", "people", "", "id", ""))

	rows, err := db.Select(ctx, "older", "name, age", "30")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "bob", rows[0].GetString("name"))
	assert.Equal(t, "ann", rows[1].GetString("name"))
	assert.Equal(t, int64(0), rows[0].GetID())

	all, err := db.Select(ctx, "people", "*")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"name", "age"}, all[0].Names())
	assert.True(t, all[2].IsNull("age"))

	m, err := CreateIdentityMap[int64](all, "id")
	require.NoError(t, err)
	assert.Equal(t, "cat", m[3].GetString("name"))
}

func TestSqliteSelectRowNoRows(t *testing.T) {
	db := newSqliteDB(t)
	require.NoError(t, db.AddSelectStatement("by-name", "*", "people", "name = '{0}'", "", ""))

	_, ok, err := db.SelectRow(context.Background(), "by-name", "*", "nobody")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSqliteUpdateDeleteCount(t *testing.T) {
	db := newSqliteDB(t)
	ctx := context.Background()
	require.NoError(t, db.AddUpdateStatement("birthday", "people", "age = age + 1", "name = '{0}'"))
	require.NoError(t, db.AddDeleteStatement("forget", "people", "age IS NULL", "", ""))
	require.NoError(t, db.AddSelectStatement("by-name", "*", "people", "name = '{0}'", "", ""))

	require.NoError(t, db.Update(ctx, "birthday", "ann"))
	ann, ok, err := db.SelectRow(ctx, "by-name", "age", "ann")
	require.NoError(t, err)
	require.True(t, ok)
	age, _ := ann.GetInt64("age")
	assert.Equal(t, int64(32), age)

	n, err := db.Count(ctx, "people", "")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, db.Delete(ctx, "forget"))
	n, err = db.Count(ctx, "people", "age IS NOT NULL")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = db.Count(ctx, "no_such_table", "")
	assert.Error(t, err)
	assert.Equal(t, -1, n)
}

func TestSqliteUpdateRecordByID(t *testing.T) {
	db := newSqliteDB(t)
	ctx := context.Background()
	require.NoError(t, db.AddSelectStatement("by-id", "*", "people", "id = {0}", "", ""))

	bob, ok, err := db.SelectRow(ctx, "by-id", "*", "2")
	require.NoError(t, err)
	require.True(t, ok)

	bob.AddField("age", int64(50))
	require.NoError(t, db.Write(ctx, "people", bob))
	assert.Equal(t, int64(2), bob.GetID())

	again, _, err := db.SelectRow(ctx, "by-id", "age", "2")
	require.NoError(t, err)
	age, _ := again.GetInt64("age")
	assert.Equal(t, int64(50), age)
}

func TestSqliteDuplicateKey(t *testing.T) {
	db := newSqliteDB(t)

	_, err := db.Session().Exec(context.Background(), `insert into people(id, name) values (1, 'again')`)
	assert.True(t, errors.Is(err, ErrKeyAlreadyExists), "got %v", err)
}
