package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a DomainError so transports can map it without string matching.
type ErrorCode string

const (
	CodeNotFound          ErrorCode = "NOT_FOUND"
	CodeForbidden         ErrorCode = "FORBIDDEN"
	CodeUnauthorized      ErrorCode = "UNAUTHORIZED"
	CodeIllegalTransition ErrorCode = "ILLEGAL_TRANSITION"
	CodeInvalidDate       ErrorCode = "INVALID_DATE"
	CodeNotReviewable     ErrorCode = "NOT_REVIEWABLE"
	CodeValidation        ErrorCode = "VALIDATION_ERROR"
	CodeConflict          ErrorCode = "CONFLICT"
)

// DomainError is an expected business-rule failure. Store or infrastructure
// failures are never DomainErrors.
type DomainError struct {
	Code    ErrorCode
	Message string
}

func (e *DomainError) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches on code, so errors.Is(err, domain.ErrNotFound) works for any
// NotFoundError regardless of its message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is.
var (
	ErrNotFound          = &DomainError{Code: CodeNotFound}
	ErrForbidden         = &DomainError{Code: CodeForbidden}
	ErrUnauthorized      = &DomainError{Code: CodeUnauthorized}
	ErrIllegalTransition = &DomainError{Code: CodeIllegalTransition}
	ErrInvalidDate       = &DomainError{Code: CodeInvalidDate}
	ErrNotReviewable     = &DomainError{Code: CodeNotReviewable}
	ErrValidation        = &DomainError{Code: CodeValidation}
	ErrConflict          = &DomainError{Code: CodeConflict}
)

// NewNotFoundError reports that the referenced entity does not exist.
func NewNotFoundError(entity, id string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// NewForbiddenError reports that the actor lacks authority for the action.
func NewForbiddenError(msg string) *DomainError {
	return &DomainError{Code: CodeForbidden, Message: msg}
}

// NewUnauthorizedError reports missing or invalid credentials.
func NewUnauthorizedError(msg string) *DomainError {
	return &DomainError{Code: CodeUnauthorized, Message: msg}
}

// NewIllegalTransitionError reports a status change outside the state machine.
func NewIllegalTransitionError(from, to string) *DomainError {
	return &DomainError{Code: CodeIllegalTransition, Message: fmt.Sprintf("cannot transition from %s to %s", from, to)}
}

// NewInvalidDateError reports a booking date before the current calendar day.
func NewInvalidDateError(msg string) *DomainError {
	return &DomainError{Code: CodeInvalidDate, Message: msg}
}

// NewNotReviewableError reports a review attempt outside the completed state or a duplicate.
func NewNotReviewableError(msg string) *DomainError {
	return &DomainError{Code: CodeNotReviewable, Message: msg}
}

// NewValidationError reports malformed input.
func NewValidationError(msg string) *DomainError {
	return &DomainError{Code: CodeValidation, Message: msg}
}

// NewConflictError reports a concurrent modification or uniqueness clash.
func NewConflictError(msg string) *DomainError {
	return &DomainError{Code: CodeConflict, Message: msg}
}

// CodeOf returns the code of the first DomainError in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code, true
	}
	return "", false
}
