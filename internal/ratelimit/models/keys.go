package models

import "strings"

// SanitizeKeySegment escapes delimiter characters in rate limit key segments
// to prevent key collision attacks where client-controlled identifiers
// containing ':' could manipulate adjacent rate limit buckets.
//
// Example: an IPv6 address "::1" becomes "__1".
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}

// NewIPRateLimitKey builds the bucket key of a client IP for an endpoint class.
func NewIPRateLimitKey(class EndpointClass, ip string) string {
	if ip == "" {
		ip = "unknown"
	}
	return "rl:" + string(class) + ":ip:" + SanitizeKeySegment(ip)
}
