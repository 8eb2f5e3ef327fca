package rowstore

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DBNull marks a SQL NULL column value handed to Record.AddField.
type DBNull struct{}

func (DBNull) String() string { return "NULL" }

// Null is the value records receive for NULL columns.
var Null = DBNull{}

// IsNull reports whether v is the Null marker (or a nil interface).
func IsNull(v any) bool {
	switch v.(type) {
	case nil, DBNull, *DBNull:
		return true
	}

	return false
}

// TimeLayout is the layout times are written with in parameter strings.
const TimeLayout = "2006-01-02 15:04:05"

var timeLayouts = []string{
	TimeLayout,
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ToInt64 coerces a column value to an integer.
func ToInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows int64", n)
		}
		return int64(n), nil
	case float32:
		return floatToInt64(float64(n))
	case float64:
		return floatToInt64(n)
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(n), 10, 64)
	case []byte:
		return strconv.ParseInt(strings.TrimSpace(string(n)), 10, 64)
	}

	return 0, fmt.Errorf("cannot convert %T to int64", v)
}

func floatToInt64(f float64) (int64, error) {
	if f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("value %v is not an integer", f)
	}

	return int64(f), nil
}

// ToFloat64 coerces a column value to a float.
func ToFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	case []byte:
		return strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
	}

	i, err := ToInt64(v)
	if err != nil {
		return 0, fmt.Errorf("cannot convert %T to float64", v)
	}

	return float64(i), nil
}

// ToTime coerces a column value to a time.
func ToTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case []byte:
		return parseTime(string(t))
	case string:
		return parseTime(t)
	}

	return time.Time{}, fmt.Errorf("cannot convert %T to time.Time", v)
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("cannot parse %q as time", s)
}

// ToString renders a column value as text. Null renders as an empty string.
func ToString(v any) string {
	switch s := v.(type) {
	case nil, DBNull:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	case time.Time:
		return s.Format(TimeLayout)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case bool:
		if s {
			return "1"
		}
		return "0"
	case fmt.Stringer:
		return s.String()
	}

	return fmt.Sprint(v)
}

// sqlLiteral renders v as a quoted, escaped SQL literal.
func sqlLiteral(v any) string {
	if IsNull(v) {
		return "NULL"
	}

	return "'" + slashReplacer.Replace(ToString(v)) + "'"
}

// normalizeValue turns a scanned driver value into what records absorb.
func normalizeValue(v any) any {
	switch b := v.(type) {
	case nil:
		return Null
	case []byte:
		return string(b)
	}

	return v
}
