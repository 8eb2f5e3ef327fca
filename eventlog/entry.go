package eventlog

import (
	"strings"

	"github.com/iancoleman/strcase"
	"gopkg.in/guregu/null.v4"

	"github.com/likearthian/rowstore"
)

type LogType int

const (
	Unknown LogType = iota
	Information
	Warning
	Error
	SuccessAudit
	FailureAudit
)

var logTypeNames = map[LogType]string{
	Information:  "information",
	Warning:      "warning",
	Error:        "error",
	SuccessAudit: "success_audit",
	FailureAudit: "failure_audit",
}

var logTypeAliases = map[string]LogType{
	"info": Information,
	"warn": Warning,
}

func (t LogType) String() string {
	if name, ok := logTypeNames[t]; ok {
		return name
	}

	return "unknown"
}

// ParseLogType accepts the stored names in any casing ("SuccessAudit",
// "success_audit", "SUCCESS-AUDIT").
func ParseLogType(s string) (LogType, bool) {
	key := strcase.ToSnake(strings.TrimSpace(s))
	for t, name := range logTypeNames {
		if name == key {
			return t, true
		}
	}

	t, ok := logTypeAliases[key]
	return t, ok
}

// Entry is one row of the log table.
type Entry struct {
	*rowstore.Row
	Name    string
	Type    LogType
	Text    string
	Created null.Time
}

// NewEntry is the record factory for log rows.
func NewEntry() *Entry {
	e := &Entry{Row: rowstore.NewRow()}
	e.Handle(fieldName, e.absorbName)
	e.Handle(fieldType, e.absorbType)
	e.Handle(fieldText, e.absorbText)
	e.Handle(fieldCreated, e.absorbCreated)
	return e
}

func (e *Entry) absorbName(v any) bool {
	e.Name = rowstore.ToString(v)
	return true
}

func (e *Entry) absorbType(v any) bool {
	if t, ok := ParseLogType(rowstore.ToString(v)); ok {
		e.Type = t
	}
	return true
}

func (e *Entry) absorbText(v any) bool {
	e.Text = rowstore.ToString(v)
	return true
}

// created is maintained by the server and never written back.
func (e *Entry) absorbCreated(v any) bool {
	if rowstore.IsNull(v) {
		e.Created = null.Time{}
		return false
	}

	if t, err := rowstore.ToTime(v); err == nil {
		e.Created = null.TimeFrom(t)
	}
	return false
}
