package rowstore

import (
	"strings"
	"time"
)

// DefaultIDFieldName is the column a Row tracks as its identity.
const DefaultIDFieldName = "id"

// Record is a row absorbed field by field from a result set.
type Record interface {
	// AddField absorbs one column value. SQL NULL arrives as Null.
	AddField(name string, value any)
	// Field returns a stored field, or the tracked identity for the id field.
	Field(name string) (any, bool)
	GetID() int64
	SetID(id int64)
	IDFieldName() string
	// ParamString renders the stored fields as name='value' pairs.
	ParamString() string
}

// FieldHandler absorbs a raw column value into a typed attribute. It
// reports whether the raw value should also be stored on the row.
type FieldHandler func(value any) (keep bool)

// Row is the base Record: an ordered field map plus a tracked identity.
// Record kinds embed *Row and register FieldHandlers for the columns they
// derive typed attributes from.
type Row struct {
	id          int64
	idSet       bool
	idFieldName string
	names       []string
	values      map[string]any
	handlers    map[string]FieldHandler
}

type RowOption func(r *Row)

// WithIDField sets the column tracked as the row identity.
func WithIDField(name string) RowOption {
	return func(r *Row) {
		r.idFieldName = name
	}
}

// WithHandler registers h for the named column.
func WithHandler(name string, h FieldHandler) RowOption {
	return func(r *Row) {
		r.handlers[name] = h
	}
}

func NewRow(options ...RowOption) *Row {
	r := &Row{
		idFieldName: DefaultIDFieldName,
		values:      make(map[string]any),
		handlers:    make(map[string]FieldHandler),
	}

	for _, op := range options {
		op(r)
	}

	return r
}

// Handle registers h for the named column, replacing any earlier handler.
func (r *Row) Handle(name string, h FieldHandler) {
	r.handlers[name] = h
}

func (r *Row) AddField(name string, value any) {
	if value == nil {
		value = Null
	}

	if name == r.idFieldName {
		// unconvertible ids leave the identity untouched
		if id, err := ToInt64(value); err == nil {
			r.id = id
			r.idSet = true
		}
		return
	}

	if h, ok := r.handlers[name]; ok && !h(value) {
		return
	}

	r.Set(name, value)
}

// Set stores a field without running handlers. The first Set of a name
// fixes its position in ParamString.
func (r *Row) Set(name string, value any) {
	if _, exists := r.values[name]; !exists {
		r.names = append(r.names, name)
	}

	r.values[name] = value
}

// Remove drops a stored field.
func (r *Row) Remove(name string) {
	if _, exists := r.values[name]; !exists {
		return
	}

	delete(r.values, name)
	for i, n := range r.names {
		if n == name {
			r.names = append(r.names[:i], r.names[i+1:]...)
			break
		}
	}
}

func (r *Row) Field(name string) (any, bool) {
	if name == r.idFieldName {
		return r.id, r.idSet
	}

	v, ok := r.values[name]
	return v, ok
}

func (r *Row) Has(name string) bool {
	_, ok := r.Field(name)
	return ok
}

func (r *Row) GetID() int64 {
	return r.id
}

func (r *Row) SetID(id int64) {
	r.id = id
	r.idSet = true
}

func (r *Row) IDFieldName() string {
	return r.idFieldName
}

// Names returns the stored field names in insertion order.
func (r *Row) Names() []string {
	return append([]string(nil), r.names...)
}

func (r *Row) Len() int {
	return len(r.names)
}

func (r *Row) ParamString() string {
	params := make([]string, len(r.names))
	for i, name := range r.names {
		params[i] = name + "=" + sqlLiteral(r.values[name])
	}

	return strings.Join(params, ", ")
}

func (r *Row) IsNull(name string) bool {
	v, ok := r.values[name]
	return ok && IsNull(v)
}

func (r *Row) GetString(name string) string {
	v, ok := r.Field(name)
	if !ok {
		return ""
	}

	return ToString(v)
}

func (r *Row) GetInt64(name string) (int64, bool) {
	v, ok := r.Field(name)
	if !ok {
		return 0, false
	}

	n, err := ToInt64(v)
	return n, err == nil
}

func (r *Row) GetFloat64(name string) (float64, bool) {
	v, ok := r.Field(name)
	if !ok {
		return 0, false
	}

	f, err := ToFloat64(v)
	return f, err == nil
}

func (r *Row) GetTime(name string) (time.Time, bool) {
	v, ok := r.Field(name)
	if !ok {
		return time.Time{}, false
	}

	t, err := ToTime(v)
	return t, err == nil
}

// Map returns a copy of the stored fields.
func (r *Row) Map() map[string]any {
	m := make(map[string]any, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}

	return m
}
