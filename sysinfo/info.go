package sysinfo

import (
	"go.mongodb.org/mongo-driver/bson"
	"gopkg.in/guregu/null.v4"

	"github.com/likearthian/rowstore"
)

const (
	fieldName    = "data_name"
	fieldData    = "data_value"
	fieldUpdated = "updated"
)

// Info is a named, serialized key/value payload.
type Info struct {
	*rowstore.Row
	Name    string
	Data    map[string]any
	Updated null.Time
}

// NewInfo is the record factory for sys_info rows.
func NewInfo() *Info {
	i := &Info{Row: rowstore.NewRow()}
	i.Handle(fieldName, i.absorbName)
	i.Handle(fieldData, i.absorbData)
	i.Handle(fieldUpdated, i.absorbUpdated)
	return i
}

func (i *Info) absorbName(v any) bool {
	i.Name = rowstore.ToString(v)
	return true
}

// An undecodable payload leaves Data nil; the raw value is still kept.
func (i *Info) absorbData(v any) bool {
	i.Data = nil
	if rowstore.IsNull(v) {
		return true
	}

	if data, err := Decode(rowstore.ToString(v)); err == nil {
		i.Data = data
	}
	return true
}

func (i *Info) absorbUpdated(v any) bool {
	if t, err := rowstore.ToTime(v); err == nil {
		i.Updated = null.TimeFrom(t)
	}
	return false
}

// Decode parses a stored payload (JSON, or relaxed extended JSON).
func Decode(s string) (map[string]any, error) {
	var doc bson.M
	if err := bson.UnmarshalExtJSON([]byte(s), false, &doc); err != nil {
		return nil, err
	}

	return map[string]any(doc), nil
}

// Encode serializes data as relaxed extended JSON.
func Encode(data map[string]any) (string, error) {
	if data == nil {
		data = map[string]any{}
	}

	b, err := bson.MarshalExtJSON(bson.M(data), false, false)
	if err != nil {
		return "", err
	}

	return string(b), nil
}
