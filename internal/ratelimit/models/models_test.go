package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEndpointClassIsValid(t *testing.T) {
	assert.True(t, ClassScan.IsValid())
	assert.True(t, ClassExtract.IsValid())
	assert.False(t, EndpointClass("auth").IsValid())
}

func TestNewIPRateLimitKey(t *testing.T) {
	assert.Equal(t, "rl:scan:ip:10.0.0.1", NewIPRateLimitKey(ClassScan, "10.0.0.1"))
	assert.Equal(t, "rl:extract:ip:__1", NewIPRateLimitKey(ClassExtract, "::1"))
	assert.Equal(t, "rl:scan:ip:unknown", NewIPRateLimitKey(ClassScan, ""))
}

func TestRetryAfterSeconds(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 30, RetryAfterSeconds(now, now.Add(30*time.Second)))
	assert.Equal(t, 2, RetryAfterSeconds(now, now.Add(1500*time.Millisecond)))
	assert.Equal(t, 1, RetryAfterSeconds(now, now.Add(-time.Second)))
}
