package types

import "errors"

const (
	ErrInvalidInput   = "Invalid input"
	ErrDatabaseError  = "Database error"
	ErrUnauthorized   = "Unauthorized access"
	ErrForbidden      = "Insufficient privileges"
	ErrWorklogMissing = "Worklog not found"
	ErrInternalError  = "internal server error"
)

var (
	// ErrInvalidPagination is returned when skip is negative or limit is not positive.
	ErrInvalidPagination = errors.New("invalid pagination window")
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
)
