// Package eventlog keeps named log entries in a database table.
package eventlog

import (
	"context"
	"fmt"
	"strconv"

	"github.com/likearthian/rowstore"
)

const (
	fieldName    = "entry_name"
	fieldType    = "log_type"
	fieldText    = "entry_text"
	fieldCreated = "created"
)

// Table is the log table.
var Table = rowstore.Table{Name: "log_entries", KeyField: "id"}

// DefaultLimit bounds GetLogEntries when no positive limit is given.
const DefaultLimit = 100

const (
	stmtInsert       = "log_entry"
	stmtLatest       = "log_latest"
	stmtLatestByName = "log_latest_by_name"
)

// Log writes to and reads from the log table through db.
type Log struct {
	db *rowstore.DB
}

// New registers the log statements on db.
func New(db *rowstore.DB) (*Log, error) {
	table := Table.FullTableName()
	order := rowstore.MakeSortClause(nil, "-"+fieldCreated, "-"+Table.Key())

	if err := db.AddInsertStatement(stmtInsert, table,
		fieldName+"='{0}', "+fieldType+"='{1}', "+fieldText+"='{2}'"); err != nil {
		return nil, err
	}

	if err := db.AddSelectStatement(stmtLatest, rowstore.AllFields, table, "", order, "{0}"); err != nil {
		return nil, err
	}

	if err := db.AddSelectStatement(stmtLatestByName, rowstore.AllFields, table, fieldName+"='{0}'", order, "{1}"); err != nil {
		return nil, err
	}

	return &Log{db: db}, nil
}

// LogInfo records an information entry and returns its id.
func (l *Log) LogInfo(ctx context.Context, name, text string) (int64, error) {
	return l.LogEntry(ctx, name, Information, text)
}

func (l *Log) LogEntry(ctx context.Context, name string, logType LogType, text string) (int64, error) {
	if logType == Unknown {
		return 0, fmt.Errorf("cannot log entry %q with unknown type", name)
	}

	return l.db.Insert(ctx, stmtInsert, name, logType.String(), text)
}

// Write stores an entry built by the caller, inserting or updating by id.
func (l *Log) Write(ctx context.Context, e *Entry) error {
	e.Set(fieldName, e.Name)
	e.Set(fieldType, e.Type.String())
	e.Set(fieldText, e.Text)
	return l.db.Write(ctx, Table.FullTableName(), e)
}

// GetLogEntries returns up to limit entries, newest first. An empty name
// returns entries of every name.
func (l *Log) GetLogEntries(ctx context.Context, name string, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	n := strconv.Itoa(limit)
	if name == "" {
		return rowstore.Select(ctx, l.db, NewEntry, stmtLatest, rowstore.AllFields, n)
	}

	return rowstore.Select(ctx, l.db, NewEntry, stmtLatestByName, rowstore.AllFields, name, n)
}

// Count returns the number of entries logged under name, or every entry
// when name is empty.
func (l *Log) Count(ctx context.Context, name string) (int, error) {
	var filter string
	if name != "" {
		filter = fieldName + "='" + rowstore.AddSlashes(name)[0] + "'"
	}

	return l.db.Count(ctx, Table.FullTableName(), rowstore.MakeFilter(filter))
}
