package rowstore

import "fmt"

// Table names a table and its identity column for record writes.
type Table struct {
	Schema   string
	Name     string
	KeyField string
}

func (t Table) FullTableName() string {
	if t.Schema != "" {
		return fmt.Sprintf("%s.%s", t.Schema, t.Name)
	}

	return t.Name
}

// Key returns the identity column, defaulting to DefaultIDFieldName.
func (t Table) Key() string {
	if t.KeyField == "" {
		return DefaultIDFieldName
	}

	return t.KeyField
}

func (t Table) String() string {
	return t.FullTableName()
}
