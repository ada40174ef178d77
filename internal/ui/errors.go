package ui

import (
	"errors"
	"fmt"

	"apidir/internal/domain"
)

// UIError represents a display-friendly error with a code
type UIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *UIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Reason is the text shown after "Error: " in a view.
func (e *UIError) Reason() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

// Error codes for display handling
const (
	ErrCodeNetwork            = "NETWORK_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeOperationCancelled = "OPERATION_CANCELLED"
	ErrCodeTimeout            = "TIMEOUT"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// MapDomainError converts domain errors to UIError
func MapDomainError(err error) *UIError {
	if err == nil {
		return nil
	}

	var uiErr *UIError
	if errors.As(err, &uiErr) {
		return uiErr
	}

	details := causeText(err)
	code, _ := domain.CodeFrom(err)
	switch code {
	case domain.CodeUnavailable:
		return NewUIErrorWithDetails(ErrCodeNetwork, "Network error", details)
	case domain.CodeNotFound:
		return NewUIErrorWithDetails(ErrCodeNotFound, "No API details available", details)
	case domain.CodeInvalidArgument:
		return NewUIErrorWithDetails(ErrCodeInvalidRequest, "Invalid request", details)
	case domain.CodeCanceled:
		return NewUIError(ErrCodeOperationCancelled, "Request cancelled")
	case domain.CodeDeadlineExceeded:
		return NewUIError(ErrCodeTimeout, "Request timed out")
	default:
		return NewUIErrorWithDetails(ErrCodeInternal, "Internal error", err.Error())
	}
}

// causeText prefers the innermost message so the reason reads like
// "unexpected status: 404 Not Found" rather than the full op chain.
func causeText(err error) string {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) && domainErr.Message != "" {
		return domainErr.Message
	}
	return err.Error()
}

// NewUIError creates a new UIError with code and message
func NewUIError(code, message string) *UIError {
	return &UIError{
		Code:    code,
		Message: message,
	}
}

// NewUIErrorWithDetails creates a new UIError with code, message, and details
func NewUIErrorWithDetails(code, message, details string) *UIError {
	return &UIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}
