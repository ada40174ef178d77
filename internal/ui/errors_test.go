package ui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"apidir/internal/domain"
)

func TestErrorStringFormatsDetails(t *testing.T) {
	uiErr := &UIError{Code: "CODE", Message: "message", Details: "details"}
	if got := uiErr.Error(); got != "CODE: message (details)" {
		t.Fatalf("unexpected error string: %s", got)
	}
	if got := uiErr.Reason(); got != "message: details" {
		t.Fatalf("unexpected reason: %s", got)
	}

	uiErr = &UIError{Code: "CODE", Message: "message"}
	if got := uiErr.Error(); got != "CODE: message" {
		t.Fatalf("unexpected error string without details: %s", got)
	}
	if got := uiErr.Reason(); got != "message" {
		t.Fatalf("unexpected reason without details: %s", got)
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{name: "network", err: domain.NetworkError("fetch", errors.New("connection refused")), code: ErrCodeNetwork},
		{name: "network sentinel", err: fmt.Errorf("wrapped: %w", domain.ErrNetwork), code: ErrCodeNetwork},
		{name: "not found", err: domain.NotFoundError("resolve", "no descriptors"), code: ErrCodeNotFound},
		{name: "invalid", err: domain.InvalidArgumentError("provider id", "provider id is required"), code: ErrCodeInvalidRequest},
		{name: "canceled", err: domain.NetworkError("fetch", context.Canceled), code: ErrCodeOperationCancelled},
		{name: "deadline", err: domain.NetworkError("fetch", context.DeadlineExceeded), code: ErrCodeTimeout},
		{name: "default", err: errors.New("boom"), code: ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uiErr := MapDomainError(tt.err)
			require.NotNil(t, uiErr)
			if uiErr.Code != tt.code {
				t.Fatalf("expected code %s, got %s", tt.code, uiErr.Code)
			}
		})
	}
}

func TestMapDomainErrorReasonUsesInnermostMessage(t *testing.T) {
	err := domain.NetworkError("list providers", domain.E(domain.CodeUnavailable, "get", "unexpected status: 404 Not Found", nil))

	uiErr := MapDomainError(err)

	require.Equal(t, "Network error: unexpected status: 404 Not Found", uiErr.Reason())
}

func TestMapDomainErrorPassesThroughUIError(t *testing.T) {
	original := NewUIError(ErrCodeNotFound, "gone")

	require.Same(t, original, MapDomainError(fmt.Errorf("wrap: %w", original)))
	require.Nil(t, MapDomainError(nil))
}
