package ratelimit

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	SetClientIP(ip string)
	GetLastResponseStatus() int
	GetLastResponseHeader(name string) string
}

// RegisterSteps registers rate-limiting step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &ratelimitSteps{tc: tc}

	ctx.Step(`^I am calling from IP "([^"]*)"$`, steps.callingFromIP)
	ctx.Step(`^I send (\d+) extraction requests$`, steps.sendExtractionRequests)
	ctx.Step(`^the (\d+)(?:st|nd|rd|th) request should return (\d+)$`, steps.nthRequestShouldReturn)
	ctx.Step(`^the response should carry a Retry-After header$`, steps.responseShouldCarryRetryAfter)
	ctx.Step(`^the response should carry rate limit headers$`, steps.responseShouldCarryRateLimitHeaders)
}

type ratelimitSteps struct {
	tc       TestContext
	statuses []int
}

func (s *ratelimitSteps) callingFromIP(ctx context.Context, ip string) error {
	s.tc.SetClientIP(ip)
	return nil
}

func (s *ratelimitSteps) sendExtractionRequests(ctx context.Context, n int) error {
	s.statuses = s.statuses[:0]
	for i := 0; i < n; i++ {
		if err := s.tc.POST("/extract/civ", map[string]interface{}{"text": "1. NOM TANGARA"}); err != nil {
			return err
		}
		s.statuses = append(s.statuses, s.tc.GetLastResponseStatus())
	}
	return nil
}

func (s *ratelimitSteps) nthRequestShouldReturn(ctx context.Context, n, want int) error {
	if n < 1 || n > len(s.statuses) {
		return fmt.Errorf("only %d requests were sent", len(s.statuses))
	}
	if got := s.statuses[n-1]; got != want {
		return fmt.Errorf("request %d: expected status %d, got %d", n, want, got)
	}
	return nil
}

func (s *ratelimitSteps) responseShouldCarryRetryAfter(ctx context.Context) error {
	raw := s.tc.GetLastResponseHeader("Retry-After")
	secs, err := strconv.Atoi(raw)
	if err != nil || secs < 1 {
		return fmt.Errorf("invalid Retry-After %q", raw)
	}
	return nil
}

func (s *ratelimitSteps) responseShouldCarryRateLimitHeaders(ctx context.Context) error {
	for _, h := range []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"} {
		if s.tc.GetLastResponseHeader(h) == "" {
			return fmt.Errorf("missing %s header", h)
		}
	}
	return nil
}
