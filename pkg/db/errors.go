package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Violation names the storage constraint an error tripped.
type Violation string

const (
	ViolationNone       Violation = ""
	ViolationUnique     Violation = "unique"
	ViolationForeignKey Violation = "foreign_key"
	ViolationNotNull    Violation = "not_null"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
)

// ViolationOf classifies err without altering it. Postgres errors are read by
// SQLSTATE; sqlite errors by their constraint message.
func ViolationOf(err error) Violation {
	if err == nil {
		return ViolationNone
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return violationForSQLState(pgxErr.Code)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return violationForSQLState(string(pqErr.Code))
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ViolationUnique
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ViolationForeignKey
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"), strings.Contains(msg, "duplicate key value"):
		return ViolationUnique
	case strings.Contains(msg, "FOREIGN KEY constraint failed"), strings.Contains(msg, "violates foreign key constraint"):
		return ViolationForeignKey
	case strings.Contains(msg, "NOT NULL constraint failed"), strings.Contains(msg, "violates not-null constraint"):
		return ViolationNotNull
	}
	return ViolationNone
}

func violationForSQLState(code string) Violation {
	switch code {
	case pgUniqueViolation:
		return ViolationUnique
	case pgForeignKeyViolation:
		return ViolationForeignKey
	case pgNotNullViolation:
		return ViolationNotNull
	}
	return ViolationNone
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return ViolationOf(err) == ViolationUnique
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return ViolationOf(err) == ViolationForeignKey
}

// IsNotNullViolation reports whether err is a not-null violation.
func IsNotNullViolation(err error) bool {
	return ViolationOf(err) == ViolationNotNull
}
