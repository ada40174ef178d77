package domain

import (
	"context"
	"errors"
	"fmt"
)

type ErrorCode string

const (
	CodeInvalidArgument  ErrorCode = "INVALID_ARGUMENT"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeUnavailable      ErrorCode = "UNAVAILABLE"
	CodeInternal         ErrorCode = "INTERNAL"
	CodeCanceled         ErrorCode = "CANCELED"
	CodeDeadlineExceeded ErrorCode = "DEADLINE_EXCEEDED"
)

var (
	// ErrNetwork matches transport failures, timeouts and non-success responses.
	ErrNetwork = errors.New("network error")
	// ErrNotFound matches an empty descriptor map or an unknown route.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument matches malformed provider ids, routes and URLs.
	ErrInvalidArgument = errors.New("invalid argument")
)

var codeSentinels = map[ErrorCode]error{
	CodeUnavailable:      ErrNetwork,
	CodeNotFound:         ErrNotFound,
	CodeInvalidArgument:  ErrInvalidArgument,
	CodeCanceled:         context.Canceled,
	CodeDeadlineExceeded: context.DeadlineExceeded,
}

type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
	Meta    map[string]string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.Op == "" {
		if msg == "" {
			return string(e.Code)
		}
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	if msg == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, msg)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is reports whether target is the sentinel registered for the error's code.
// Deadlines also match ErrNetwork.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	if target == ErrNetwork && e.Code == CodeDeadlineExceeded {
		return true
	}
	sentinel, ok := codeSentinels[e.Code]
	return ok && sentinel == target
}

func E(code ErrorCode, op, msg string, cause error) *Error {
	if msg == "" && cause != nil {
		msg = cause.Error()
	}
	return &Error{
		Code:    code,
		Op:      op,
		Message: msg,
		Cause:   cause,
	}
}

func Wrap(code ErrorCode, op string, err error) *Error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		if existing.Op != "" || op == "" {
			return existing
		}
		return &Error{
			Code:    existing.Code,
			Op:      op,
			Message: existing.Message,
			Cause:   existing.Cause,
			Meta:    existing.Meta,
		}
	}
	return E(code, op, "", err)
}

// NetworkError classifies a failed fetch. Context cancellation and deadlines
// keep their own codes so callers can tell a user abort from a dead service.
// A deadline still matches ErrNetwork.
func NetworkError(op string, err error) *Error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, context.Canceled):
		return E(CodeCanceled, op, "", err)
	case errors.Is(err, context.DeadlineExceeded):
		return E(CodeDeadlineExceeded, op, "", err)
	}
	return Wrap(CodeUnavailable, op, err)
}

func NotFoundError(op, msg string) *Error {
	return E(CodeNotFound, op, msg, nil)
}

func InvalidArgumentError(op, msg string) *Error {
	return E(CodeInvalidArgument, op, msg, nil)
}

func CodeFrom(err error) (ErrorCode, bool) {
	if err == nil {
		return "", false
	}
	var domainErr *Error
	if errors.As(err, &domainErr) && domainErr.Code != "" {
		return domainErr.Code, true
	}
	switch {
	case errors.Is(err, ErrNetwork):
		return CodeUnavailable, true
	case errors.Is(err, ErrNotFound):
		return CodeNotFound, true
	case errors.Is(err, ErrInvalidArgument):
		return CodeInvalidArgument, true
	case errors.Is(err, context.Canceled):
		return CodeCanceled, true
	case errors.Is(err, context.DeadlineExceeded):
		return CodeDeadlineExceeded, true
	default:
		return "", false
	}
}
