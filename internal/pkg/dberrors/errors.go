package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn" // Import pgconn for PgError
)

// PostgreSQL SQLSTATE codes the repositories care about
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
)

func pgCode(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsUniqueViolation checks if the error is a PostgreSQL unique violation
func IsUniqueViolation(err error) bool {
	pgErr, ok := pgCode(err)
	return ok && pgErr.Code == CodeUniqueViolation
}

// IsForeignKeyViolation checks if the error is a PostgreSQL foreign key violation
func IsForeignKeyViolation(err error) bool {
	pgErr, ok := pgCode(err)
	return ok && pgErr.Code == CodeForeignKeyViolation
}

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	pgErr, ok := pgCode(err)
	return ok && pgErr.Code == CodeUniqueViolation && pgErr.ConstraintName == constraintName
}
