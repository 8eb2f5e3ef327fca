package rowstore

import (
	"fmt"
	"strconv"
	"strings"
)

var slashReplacer = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	"\x00", `\0`,
)

// AddSlashes returns a copy of values with every quote, backslash and NUL
// character escaped so the value can sit inside a quoted SQL literal.
func AddSlashes(values ...string) []string {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = slashReplacer.Replace(v)
	}

	return escaped
}

// StripSlashes reverses AddSlashes.
func StripSlashes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}

		i++
		if s[i] == '0' {
			b.WriteByte(0)
		} else {
			b.WriteByte(s[i])
		}
	}

	return b.String()
}

// FormatStatement substitutes the positional placeholders {0}, {1}, ... in
// text with the escaped values. With no values the text is returned as is.
func FormatStatement(text string, values ...string) (string, error) {
	if len(values) == 0 {
		return text, nil
	}

	values = AddSlashes(values...)

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if text[i] != '{' {
			b.WriteByte(text[i])
			continue
		}

		end := i + 1
		for end < len(text) && text[end] >= '0' && text[end] <= '9' {
			end++
		}

		if end == i+1 || end == len(text) || text[end] != '}' {
			b.WriteByte(text[i])
			continue
		}

		idx, err := strconv.Atoi(text[i+1 : end])
		if err != nil || idx >= len(values) {
			return "", fmt.Errorf("%w {%s}: got %d values", ErrMissingValue, text[i+1:end], len(values))
		}

		b.WriteString(values[idx])
		i = end
	}

	return b.String(), nil
}
