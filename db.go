package rowstore

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	"v.io/x/lib/vlog"
)

// DB executes registered statement templates and record writes against a
// single database handle.
type DB struct {
	name        string
	session     *Session
	statements  *Statements
	idFieldName string
}

func New(db *sqlx.DB, options ...Option) *DB {
	opt := &option{idFieldName: DefaultIDFieldName}
	for _, op := range options {
		op(opt)
	}

	if opt.statements == nil {
		opt.statements = NewStatements()
	}

	session := NewSession(db)
	session.name = opt.name

	return &DB{
		name:        opt.name,
		session:     session,
		statements:  opt.statements,
		idFieldName: opt.idFieldName,
	}
}

// Open connects to MySQL with config and returns a DB over the connection.
func Open(config MySQLConfig, options ...Option) (*DB, error) {
	db, err := ConnectMySQL(config)
	if err != nil {
		return nil, err
	}

	vlog.VI(1).Infof("opened database %s", config)
	return New(db, options...), nil
}

func (d *DB) Close() error {
	return d.session.db.Close()
}

func (d *DB) Statements() *Statements {
	return d.statements
}

func (d *DB) Session() *Session {
	return d.session
}

func (d *DB) AddInsertStatement(key, table, params string) error {
	return d.statements.AddInsert(key, table, params)
}

func (d *DB) AddUpdateStatement(key, table, params, filter string) error {
	return d.statements.AddUpdate(key, table, params, filter)
}

func (d *DB) AddDeleteStatement(key, table, filter, order, limit string) error {
	return d.statements.AddDelete(key, table, filter, order, limit)
}

func (d *DB) AddSelectStatement(key, fields, from, filter, order, limit string) error {
	return d.statements.AddSelect(key, fields, from, filter, order, limit)
}

func (d *DB) statement(kind StatementKind, key string, values ...string) (string, error) {
	tmpl, err := d.statements.lookup(kind, key)
	if err != nil {
		return "", err
	}

	return tmpl.Format(values...)
}

func (d *DB) execStatement(ctx context.Context, kind StatementKind, key string, values ...string) (int64, error) {
	stmt, err := d.statement(kind, key, values...)
	if err != nil {
		return 0, err
	}

	return d.exec(ctx, stmt)
}

func (d *DB) exec(ctx context.Context, stmt string) (int64, error) {
	res, err := d.session.Exec(ctx, stmt)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		// not every driver reports generated ids
		return 0, nil
	}

	return id, nil
}

// Insert runs the registered insert statement key and returns the generated
// identity.
func (d *DB) Insert(ctx context.Context, key string, values ...string) (int64, error) {
	return d.execStatement(ctx, InsertStatement, key, values...)
}

func (d *DB) Update(ctx context.Context, key string, values ...string) error {
	_, err := d.execStatement(ctx, UpdateStatement, key, values...)
	return err
}

func (d *DB) Delete(ctx context.Context, key string, values ...string) error {
	_, err := d.execStatement(ctx, DeleteStatement, key, values...)
	return err
}

// NewRow builds the records returned by Select and SelectRow.
func (d *DB) NewRow() *Row {
	return NewRow(WithIDField(d.idFieldName))
}

func (d *DB) Select(ctx context.Context, key, fieldList string, values ...string) ([]*Row, error) {
	return Select(ctx, d, d.NewRow, key, fieldList, values...)
}

func (d *DB) SelectRow(ctx context.Context, key, fieldList string, values ...string) (*Row, bool, error) {
	return SelectRow(ctx, d, d.NewRow, key, fieldList, values...)
}

// Count returns the number of rows in from matching filter. An empty filter
// counts every row. On failure the count is -1.
func (d *DB) Count(ctx context.Context, from, filter string) (int, error) {
	stmt := appendClauses("SELECT COUNT(*) FROM "+from, filter, "", "")
	raw, err := d.session.QueryScalar(ctx, stmt)
	if err != nil {
		return -1, err
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return -1, fmt.Errorf("%w: count returned %q", ErrExecutionFailed, raw)
	}

	return n, nil
}

// InsertRecord writes rec as a new row of table and returns its identity.
func (d *DB) InsertRecord(ctx context.Context, table string, rec Record) (int64, error) {
	params := rec.ParamString()
	if params == "" {
		return 0, fmt.Errorf("%w: insert into %s", ErrNoFields, table)
	}

	return d.exec(ctx, "INSERT INTO "+table+" SET "+params)
}

// UpdateRecord writes the fields of rec to the rows of table matching filter.
func (d *DB) UpdateRecord(ctx context.Context, table string, rec Record, filter string) error {
	params := rec.ParamString()
	if params == "" {
		return fmt.Errorf("%w: update %s", ErrNoFields, table)
	}

	_, err := d.exec(ctx, "UPDATE "+table+" SET "+params+" WHERE "+filter)
	return err
}

// UpdateRecordByID updates the row of table whose identity matches rec.
func (d *DB) UpdateRecordByID(ctx context.Context, table string, rec Record) error {
	filter := fmt.Sprintf("%s.%s = %d", table, rec.IDFieldName(), rec.GetID())
	return d.UpdateRecord(ctx, table, rec, filter)
}

// Write inserts rec when it has no identity yet, storing the generated
// identity on it, and updates it by identity otherwise.
func (d *DB) Write(ctx context.Context, table string, rec Record) error {
	if rec.GetID() != 0 {
		return d.UpdateRecordByID(ctx, table, rec)
	}

	id, err := d.InsertRecord(ctx, table, rec)
	if err != nil {
		return err
	}

	rec.SetID(id)
	return nil
}
