package main

import (
	"errors"

	"apidir/internal/domain"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitUnavailable = 3
	exitNotFound    = 4
)

type exitError struct {
	code    int
	message string
	silent  bool
}

func (e exitError) Error() string {
	return e.message
}

func exitSilent(code int) error {
	return exitError{code: code, silent: true}
}

// exitCodeFor maps an error to the process exit code.
func exitCodeFor(err error) int {
	if err == nil {
		return exitOK
	}
	code, ok := domain.CodeFrom(err)
	if !ok {
		return exitFailure
	}
	switch code {
	case domain.CodeInvalidArgument:
		return exitUsage
	case domain.CodeUnavailable, domain.CodeDeadlineExceeded:
		return exitUnavailable
	case domain.CodeNotFound:
		return exitNotFound
	default:
		return exitFailure
	}
}

// asExitError turns a command failure into an exitError carrying the mapped code.
func asExitError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr exitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return exitError{code: exitCodeFor(err), message: err.Error()}
}
