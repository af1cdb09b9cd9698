package models

// RateLimitExceededResponse is the API response when rate limit is exceeded.
type RateLimitExceededResponse struct {
	Error      string `json:"error"` // "rate_limited"
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"` // seconds
}
