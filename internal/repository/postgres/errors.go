package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the repositories translate into domain errors
const (
	sqlStateForeignKeyViolation = "23503"
	sqlStateUniqueViolation     = "23505"
)

// sqlState extracts the SQLSTATE of a server error, or "" for anything else
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsPgDuplicateError reports a unique constraint violation, such as a
// second supplier with the same name or a reused blob key
func IsPgDuplicateError(err error) bool {
	return sqlState(err) == sqlStateUniqueViolation
}

// IsPgForeignKeyError reports an insert that referenced a missing
// supplier, shipment or folder
func IsPgForeignKeyError(err error) bool {
	return sqlState(err) == sqlStateForeignKeyViolation
}

// IsPgNoRowsError reports a single-row lookup that matched nothing
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
