package extractor_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formpilot/internal/extractor"
)

func TestNewRateLimitError(t *testing.T) {
	base := errors.New("status 429")

	err := extractor.NewRateLimitError("gemini", base, 30)
	assert.Equal(t, 30*time.Second, err.RetryAfter)
	assert.Equal(t, "gemini", err.Provider)
	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "gemini rate limited")

	// Missing Retry-After header falls back to a minute.
	err = extractor.NewRateLimitError("claude", base, 0)
	assert.Equal(t, time.Minute, err.RetryAfter)
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 30, extractor.ParseRetryAfterHeader("30"))
	assert.Equal(t, 0, extractor.ParseRetryAfterHeader(""))
	// HTTP-date values are not worth parsing; the default backoff covers them.
	assert.Equal(t, 0, extractor.ParseRetryAfterHeader("Wed, 21 Oct 2026 07:28:00 GMT"))
}

func TestProcessingTimeoutError(t *testing.T) {
	err := &extractor.ProcessingTimeoutError{FileName: "files/abc123", Attempts: 30}

	require.Error(t, err)
	assert.Contains(t, err.Error(), "files/abc123")
	assert.Contains(t, err.Error(), "30 polls")
}
