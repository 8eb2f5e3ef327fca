package rowstore

import (
	"fmt"
	"sync"
)

type StatementKind int

const (
	InsertStatement StatementKind = iota
	UpdateStatement
	DeleteStatement
	SelectStatement
)

func (k StatementKind) String() string {
	switch k {
	case InsertStatement:
		return "insert"
	case UpdateStatement:
		return "update"
	case DeleteStatement:
		return "delete"
	case SelectStatement:
		return "select"
	default:
		return fmt.Sprintf("StatementKind(%d)", int(k))
	}
}

// Statement is a named SQL template with positional {n} placeholders.
type Statement struct {
	Key  string
	Text string
}

// Format fills the statement placeholders with the escaped values.
func (s Statement) Format(values ...string) (string, error) {
	return FormatStatement(s.Text, values...)
}

// Statements stores templates per statement kind. Templates are registered
// once, usually at startup, and never replaced.
type Statements struct {
	mu        sync.RWMutex
	templates map[StatementKind]map[string]Statement
}

func NewStatements() *Statements {
	return &Statements{
		templates: map[StatementKind]map[string]Statement{
			InsertStatement: {},
			UpdateStatement: {},
			DeleteStatement: {},
			SelectStatement: {},
		},
	}
}

// AddInsert registers "INSERT INTO table SET params". An empty key defaults
// to the table name.
func (s *Statements) AddInsert(key, table, params string) error {
	return s.add(InsertStatement, defaultKey(key, table), "INSERT INTO "+table+" SET "+params)
}

// AddUpdate registers "UPDATE table SET params WHERE filter". An empty key
// defaults to the table name.
func (s *Statements) AddUpdate(key, table, params, filter string) error {
	return s.add(UpdateStatement, defaultKey(key, table), "UPDATE "+table+" SET "+params+" WHERE "+filter)
}

// AddDelete registers a DELETE statement. Empty filter, order and limit
// fragments leave out their clauses.
func (s *Statements) AddDelete(key, table, filter, order, limit string) error {
	qry := appendClauses("DELETE FROM "+table, filter, order, limit)
	return s.add(DeleteStatement, defaultKey(key, table), qry)
}

// AddSelect registers a SELECT statement. Empty filter, order and limit
// fragments leave out their clauses. An empty key defaults to from.
func (s *Statements) AddSelect(key, fields, from, filter, order, limit string) error {
	qry := appendClauses("SELECT "+fields+" FROM "+from, filter, order, limit)
	return s.add(SelectStatement, defaultKey(key, from), qry)
}

// Get returns the template registered under key for the kind. A missing key
// is reported through the boolean only.
func (s *Statements) Get(kind StatementKind, key string) (Statement, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stmt, ok := s.templates[kind][key]
	return stmt, ok
}

// Keys lists the keys registered for the kind.
func (s *Statements) Keys(kind StatementKind) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.templates[kind]))
	for k := range s.templates[kind] {
		keys = append(keys, k)
	}

	return keys
}

func (s *Statements) add(kind StatementKind, key, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byKey, ok := s.templates[kind]
	if !ok {
		return fmt.Errorf("unknown statement kind %s", kind)
	}

	if _, exists := byKey[key]; exists {
		return fmt.Errorf("%w: %s statement %q", ErrDuplicateStatementKey, kind, key)
	}

	byKey[key] = Statement{Key: key, Text: text}
	return nil
}

// lookup resolves a template or fails with ErrStatementNotFound.
func (s *Statements) lookup(kind StatementKind, key string) (Statement, error) {
	stmt, ok := s.Get(kind, key)
	if !ok || stmt.Text == "" {
		return Statement{}, fmt.Errorf("%w: %s does not produce a %s statement", ErrStatementNotFound, key, kind)
	}

	return stmt, nil
}

func defaultKey(key, table string) string {
	if key == "" {
		return table
	}

	return key
}

func appendClauses(qry, filter, order, limit string) string {
	if filter != "" {
		qry += " WHERE " + filter
	}

	if order != "" {
		qry += " ORDER BY " + order
	}

	if limit != "" {
		qry += " LIMIT " + limit
	}

	return qry
}
