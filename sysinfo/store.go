// Package sysinfo stores named key/value payloads in a database table.
package sysinfo

import (
	"context"

	"github.com/likearthian/rowstore"
)

// Table is the sys_info table.
var Table = rowstore.Table{Name: "sys_info", KeyField: "id"}

const stmtByName = "sysinfo"

type Store struct {
	db *rowstore.DB
}

// New registers the sys_info statements on db.
func New(db *rowstore.DB) (*Store, error) {
	table := Table.FullTableName()
	filter := fieldName + "='{0}'"

	if err := db.AddSelectStatement(stmtByName, rowstore.AllFields, table, filter, "", "1"); err != nil {
		return nil, err
	}

	if err := db.AddDeleteStatement(stmtByName, table, filter, "", ""); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// GetSysInfo loads the payload saved under name. The boolean is false when
// nothing is saved under it.
func (s *Store) GetSysInfo(ctx context.Context, name string) (*Info, bool, error) {
	return rowstore.SelectRow(ctx, s.db, NewInfo, stmtByName, rowstore.AllFields, name)
}

// SaveSysInfo replaces the payload saved under name, creating it if needed.
func (s *Store) SaveSysInfo(ctx context.Context, name string, data map[string]any) (*Info, error) {
	info, found, err := s.GetSysInfo(ctx, name)
	if err != nil {
		return nil, err
	}

	if !found {
		info = NewInfo()
	}

	payload, err := Encode(data)
	if err != nil {
		return nil, err
	}

	info.AddField(fieldName, name)
	info.AddField(fieldData, payload)

	if err := s.db.Write(ctx, Table.FullTableName(), info); err != nil {
		return nil, err
	}

	return info, nil
}

func (s *Store) DeleteSysInfo(ctx context.Context, name string) error {
	return s.db.Delete(ctx, stmtByName, name)
}
