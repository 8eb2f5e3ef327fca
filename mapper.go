package rowstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// AllFields selects every column the driver returns, in driver order.
const AllFields = "*"

// Select runs the registered select statement key and maps every row into a
// record built by newRecord. fieldList names the columns to absorb, comma
// separated; "" or "*" absorbs every column.
func Select[T Record](ctx context.Context, db *DB, newRecord func() T, key, fieldList string, values ...string) ([]T, error) {
	stmt, err := db.statement(SelectStatement, key, values...)
	if err != nil {
		return nil, err
	}

	fields := splitFieldList(fieldList)

	var result []T
	err = db.session.Query(ctx, stmt, func(rows *sqlx.Rows) error {
		cols, err := rows.Columns()
		if err != nil {
			return wrapExecError(err)
		}

		targets, err := fieldTargets(cols, fields)
		if err != nil {
			return err
		}

		for rows.Next() {
			vals, err := rows.SliceScan()
			if err != nil {
				return wrapExecError(err)
			}

			rec := newRecord()
			for _, t := range targets {
				rec.AddField(t.name, normalizeValue(vals[t.index]))
			}
			result = append(result, rec)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// SelectRow returns the first record of Select. The boolean is false when
// the query produced no rows.
func SelectRow[T Record](ctx context.Context, db *DB, newRecord func() T, key, fieldList string, values ...string) (T, bool, error) {
	var zero T
	result, err := Select(ctx, db, newRecord, key, fieldList, values...)
	if err != nil {
		return zero, false, err
	}

	if len(result) == 0 {
		return zero, false, nil
	}

	return result[0], true, nil
}

type fieldTarget struct {
	name  string
	index int
}

func splitFieldList(fieldList string) []string {
	fieldList = strings.TrimSpace(fieldList)
	if fieldList == "" || fieldList == AllFields {
		return nil
	}

	return compactFragments(strings.Split(fieldList, ","))
}

func fieldTargets(cols []string, fields []string) ([]fieldTarget, error) {
	if len(fields) == 0 {
		targets := make([]fieldTarget, len(cols))
		for i, c := range cols {
			targets[i] = fieldTarget{name: c, index: i}
		}
		return targets, nil
	}

	index := make(map[string]int, len(cols))
	for i, c := range cols {
		if _, dup := index[c]; !dup {
			index[c] = i
		}
	}

	targets := make([]fieldTarget, len(fields))
	for i, f := range fields {
		ci, ok := index[f]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoSuchColumn, f)
		}
		targets[i] = fieldTarget{name: f, index: ci}
	}

	return targets, nil
}
