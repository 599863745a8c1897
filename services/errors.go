package services

import (
	"errors"
	"strings"

	mysqldrv "github.com/go-sql-driver/mysql"
)

// Domain error taxonomy. Services return these so controllers can map them to
// HTTP codes with errors.As instead of matching message strings.

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// isDuplicateKeyErr reports whether err is a unique-constraint violation.
// MySQL reports 1062; the string checks cover other dialects (tests run on
// SQLite).
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var merr *mysqldrv.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1062
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "duplicate") || strings.Contains(lower, "unique")
}
