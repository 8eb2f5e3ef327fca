package rowstore

import (
	"fmt"
	"strings"
)

// MakeSortClause builds an ORDER BY fragment from field names prefixed with
// "-" for descending or "+" (or nothing) for ascending order. sortFieldMap
// optionally renames fields to columns.
//
// example:
//
//	MakeSortClause(nil, "-created", "+name") == "created DESC, name ASC"
func MakeSortClause(sortFieldMap map[string]string, sorter ...string) string {
	if len(sorter) == 0 {
		return ""
	}

	var srt []string
	for _, s := range sorter {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}

		op := "ASC"
		field := s
		switch s[:1] {
		case "-":
			op = "DESC"
			field = s[1:]
		case "+":
			field = s[1:]
		}

		if mf, ok := sortFieldMap[field]; ok {
			field = mf
		}

		srt = append(srt, fmt.Sprintf("%s %s", field, op))
	}

	return strings.Join(srt, ", ")
}

// MakeFilter joins filter fragments with AND, skipping empty ones.
func MakeFilter(fragments ...string) string {
	return strings.Join(compactFragments(fragments), " AND ")
}
