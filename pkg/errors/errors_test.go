package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
	}{
		{NewUnauthenticated("no identity"), http.StatusUnauthorized},
		{NewInvalidArgument("bad date"), http.StatusBadRequest},
		{NewNotFound("profile"), http.StatusNotFound},
		{NewRateLimit("slow down"), http.StatusTooManyRequests},
		{NewDeadlineExceeded("timed out"), http.StatusGatewayTimeout},
		{NewGenerationFailed("provider error"), http.StatusBadGateway},
		{NewStorageError("write failed"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.HTTPStatus, string(tc.err.Type))
	}
}

func TestIsTypeThroughWrapping(t *testing.T) {
	base := NewDeadlineExceeded("generation timed out").WithCause(errors.New("context deadline exceeded"))
	wrapped := fmt.Errorf("handling request: %w", base)

	assert.True(t, IsType(wrapped, ErrorTypeDeadlineExceeded))
	assert.False(t, IsType(wrapped, ErrorTypeGenerationFailed))
}

func TestWrapPreservesExistingAppError(t *testing.T) {
	storage := NewStorageError("put failed")

	got := Wrap(storage, "persisting insight")

	assert.Equal(t, ErrorTypeStorage, got.Type)
}

func TestWrapPlainError(t *testing.T) {
	got := Wrap(errors.New("boom"), "loading profile")

	assert.Equal(t, ErrorTypeInternal, got.Type)
	assert.EqualError(t, got.Cause, "boom")
}

func TestErrorMessageHidesNothingFromLogsButCarriesCause(t *testing.T) {
	err := NewGenerationFailed("generation failed").WithCause(errors.New("status 500 from provider"))

	assert.Contains(t, err.Error(), "GENERATION_FAILED")
	assert.Contains(t, err.Error(), "status 500 from provider")
	assert.EqualError(t, errors.Unwrap(err), "status 500 from provider")
}
