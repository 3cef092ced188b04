package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the repositories map to domain errors.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeCheckViolation      = "23514"
)

// PgError unwraps err into a *pgconn.PgError when it carries one.
func PgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsUniqueViolation reports a unique constraint hit, optionally on a named constraint.
func IsUniqueViolation(err error, constraint ...string) bool {
	return hasCode(err, CodeUniqueViolation, constraint)
}

// IsForeignKeyViolation reports a foreign key violation, optionally on a named constraint.
func IsForeignKeyViolation(err error, constraint ...string) bool {
	return hasCode(err, CodeForeignKeyViolation, constraint)
}

// IsCheckViolation reports a CHECK constraint violation, optionally on a named constraint.
func IsCheckViolation(err error, constraint ...string) bool {
	return hasCode(err, CodeCheckViolation, constraint)
}

func hasCode(err error, code string, constraints []string) bool {
	pgErr, ok := PgError(err)
	if !ok || pgErr.Code != code {
		return false
	}
	if len(constraints) == 0 {
		return true
	}
	for _, c := range constraints {
		if pgErr.ConstraintName == c {
			return true
		}
	}
	return false
}
