// Package fakedb is a scripted database/sql driver for tests. Every
// statement is recorded and answered by a Handler.
package fakedb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"sync"

	"github.com/jmoiron/sqlx"
)

// Result answers one statement.
type Result struct {
	Columns      []string
	Rows         [][]driver.Value
	LastInsertID int64
	RowsAffected int64
	Err          error
}

type Handler func(query string) Result

type Server struct {
	mu       sync.Mutex
	handler  Handler
	queries  []string
	connects int
	closes   int
}

func New(h Handler) *Server {
	if h == nil {
		h = func(string) Result { return Result{} }
	}

	return &Server{handler: h}
}

// Open returns a handle whose connections are served by s.
func (s *Server) Open() *sqlx.DB {
	return sqlx.NewDb(sql.OpenDB(&connector{s: s}), "mysql")
}

// Queries returns every statement received so far.
func (s *Server) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.queries...)
}

func (s *Server) Connects() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.connects
}

func (s *Server) Closes() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closes
}

func (s *Server) answer(query string) Result {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	h := s.handler
	s.mu.Unlock()

	return h(query)
}

type connector struct {
	s *Server
}

func (c *connector) Connect(context.Context) (driver.Conn, error) {
	c.s.mu.Lock()
	c.s.connects++
	c.s.mu.Unlock()

	return &conn{s: c.s}, nil
}

func (c *connector) Driver() driver.Driver { return fakeDriver{} }

type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("fakedb: use the connector")
}

type conn struct {
	s *Server
}

func (c *conn) Prepare(string) (driver.Stmt, error) { return nil, driver.ErrSkip }
func (c *conn) Begin() (driver.Tx, error)           { return nil, driver.ErrSkip }

func (c *conn) Close() error {
	c.s.mu.Lock()
	c.s.closes++
	c.s.mu.Unlock()

	return nil
}

func (c *conn) ExecContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Result, error) {
	r := c.s.answer(query)
	if r.Err != nil {
		return nil, r.Err
	}

	return result{id: r.LastInsertID, affected: r.RowsAffected}, nil
}

func (c *conn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	r := c.s.answer(query)
	if r.Err != nil {
		return nil, r.Err
	}

	return &rows{cols: r.Columns, data: r.Rows}, nil
}

type result struct {
	id       int64
	affected int64
}

func (r result) LastInsertId() (int64, error) { return r.id, nil }
func (r result) RowsAffected() (int64, error) { return r.affected, nil }

type rows struct {
	cols []string
	data [][]driver.Value
	i    int
}

func (r *rows) Columns() []string { return append([]string(nil), r.cols...) }
func (r *rows) Close() error      { return nil }

func (r *rows) Next(dest []driver.Value) error {
	if r.i >= len(r.data) {
		return io.EOF
	}

	row := r.data[r.i]
	for i := range dest {
		if i < len(row) {
			dest[i] = row[i]
		} else {
			dest[i] = nil
		}
	}
	r.i++

	return nil
}
