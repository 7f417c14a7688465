package errors

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Error is a typed application error carrying the HTTP status it maps to.
// Handlers and services return these; the router's central error handler
// renders them into the response envelope.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Validation reports a malformed, missing or duplicate field (400).
func Validation(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// Auth reports a missing, invalid or expired credential (401).
func Auth(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

// Authz reports an authenticated caller with insufficient role or
// ownership (403).
func Authz(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Message: msg}
}

// NotFound reports an unknown id or slug (404).
func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

// Internal reports anything unclassified (500). The message is intentionally
// generic so storage or transport internals never leak to the caller.
func Internal() *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "server error"}
}

const mysqlDuplicateEntry = 1062

// Map translates an arbitrary error into a typed *Error. Known storage and
// validation failures are remapped; anything unrecognized becomes a 500.
func Map(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("resource not found")
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return Validation("duplicate field value entered")
	}

	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		return Validation(err.Error())
	}

	return Internal()
}
