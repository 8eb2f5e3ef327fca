package rowstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jjeffery/kv"
	"github.com/jmoiron/sqlx"
	"v.io/x/lib/vlog"
)

// Session runs single statements against a database handle. Each call
// acquires a connection, runs, and releases the connection before
// returning, whether or not the statement failed. A Session is meant for
// one caller at a time.
type Session struct {
	db   *sqlx.DB
	name string
}

// NewSession limits db to one open and no idle connections, so releasing a
// connection disconnects it.
func NewSession(db *sqlx.DB) *Session {
	if db == nil {
		panic("db cannot be nil")
	}

	singleConnection(db)
	return &Session{db: db}
}

// DB returns the underlying handle.
func (s *Session) DB() *sqlx.DB {
	return s.db
}

func (s *Session) run(ctx context.Context, stmt string, fn func(conn *sqlx.Conn) error) (err error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		vlog.Errorf("cannot open connection %s", kv.List{"session", s.name, "error", err})
		return fmt.Errorf("%w: cannot open connection: %w", ErrExecutionFailed, err)
	}

	defer func() {
		if cerr := conn.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: cannot close connection: %w", ErrExecutionFailed, cerr)
		}
	}()

	vlog.VI(2).Infof("exec %s", kv.List{"session", s.name, "stmt", stmt})
	if err = fn(conn); err != nil {
		vlog.Errorf("statement failed %s", kv.List{"session", s.name, "stmt", stmt, "error", err})
	}

	return err
}

// Exec runs a statement that returns no rows.
func (s *Session) Exec(ctx context.Context, stmt string) (res sql.Result, err error) {
	err = s.run(ctx, stmt, func(conn *sqlx.Conn) error {
		var execErr error
		res, execErr = conn.ExecContext(ctx, stmt)
		return wrapExecError(execErr)
	})

	return res, err
}

// Query runs stmt and hands the cursor to fn. The cursor is drained and
// closed before the connection is released.
func (s *Session) Query(ctx context.Context, stmt string, fn func(rows *sqlx.Rows) error) error {
	return s.run(ctx, stmt, func(conn *sqlx.Conn) (err error) {
		rows, err := conn.QueryxContext(ctx, stmt)
		if err != nil {
			return wrapExecError(err)
		}

		defer func() {
			if cerr := rows.Close(); cerr != nil && err == nil {
				err = wrapExecError(cerr)
			}
		}()

		if err := fn(rows); err != nil {
			return err
		}

		for rows.Next() {
			// drain what fn left unread
		}

		return wrapExecError(rows.Err())
	})
}

// QueryScalar returns the first column of the first row as text.
func (s *Session) QueryScalar(ctx context.Context, stmt string) (val string, err error) {
	err = s.run(ctx, stmt, func(conn *sqlx.Conn) error {
		var raw sql.NullString
		if err := conn.QueryRowxContext(ctx, stmt).Scan(&raw); err != nil {
			return wrapExecError(err)
		}
		val = raw.String
		return nil
	})

	return val, err
}
