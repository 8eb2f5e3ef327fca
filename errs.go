package rowstore

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrStatementNotFound     = errors.New("no such statement")
	ErrDuplicateStatementKey = errors.New("statement key already registered")
	ErrDuplicateIdentity     = errors.New("duplicate identity")
	ErrMissingIdentityField  = errors.New("missing identity field")
	ErrExecutionFailed       = errors.New("statement execution failed")
	ErrKeyAlreadyExists      = errors.New("key already exists")
	ErrNoSuchColumn          = errors.New("no such column")
	ErrMissingValue          = errors.New("missing value for placeholder")
	ErrNoFields              = errors.New("record has no fields to write")
)

// mysql ER_DUP_ENTRY
const mysqlDuplicateEntry = 1062

func isDuplicateKeyError(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgerrcode.UniqueViolation
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}

// wrapExecError marks err as an execution failure, classifying duplicate key
// violations from any of the supported drivers.
func wrapExecError(err error) error {
	if err == nil {
		return nil
	}

	if isDuplicateKeyError(err) {
		return fmt.Errorf("%w: %w. %s", ErrExecutionFailed, ErrKeyAlreadyExists, err.Error())
	}

	return fmt.Errorf("%w: %w", ErrExecutionFailed, err)
}
