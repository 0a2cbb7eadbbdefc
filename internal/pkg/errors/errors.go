package errors

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors shared across layers.
var (
	ErrDatabaseOperation = errors.New("database operation failed")
	ErrScheduling        = errors.New("failed to schedule notification")
	ErrInternalServer    = errors.New("internal server error")
)

// NotFoundError reports a reminder that is absent or not owned by the caller.
// The message never distinguishes the two cases.
type NotFoundError struct {
	ReminderID uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("reminder with id %d not found", e.ReminderID)
}

// NewNotFound creates a NotFoundError for the given reminder id.
func NewNotFound(reminderID uint) *NotFoundError {
	return &NotFoundError{ReminderID: reminderID}
}

// ValidationError carries a field name to messages map for invalid input.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "invalid input data"
}

// NewValidation creates a ValidationError with a single offending field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}

// InvalidPageRequestError reports pagination parameters outside the accepted range
// or not parseable at all. The values are echoed back exactly as received.
type InvalidPageRequestError struct {
	Page string
	Size string
}

func (e *InvalidPageRequestError) Error() string {
	return fmt.Sprintf("invalid pagination parameters: page=%q, size=%q", e.Page, e.Size)
}

// InvalidDateRangeError reports a range whose start lies strictly after its end.
type InvalidDateRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidDateRangeError) Error() string {
	return "invalid date range: start is after end"
}
