package middleware

import (
	"context"
	"fmt"
	"log/slog"

	"dlscan/internal/ratelimit/metrics"
	"dlscan/internal/ratelimit/models"
	"dlscan/internal/ratelimit/ports"
	"dlscan/pkg/platform/circuit"
)

// Limiter implements RateLimiter over a bucket store. With a fallback it
// keeps limiting in memory while the primary store is failing.
type Limiter struct {
	primary  ports.BucketStore
	fallback ports.BucketStore
	breaker  *circuit.Breaker
	limits   map[models.EndpointClass]models.Limit
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// LimiterOption configures a Limiter.
type LimiterOption func(*Limiter)

// WithFallback answers from fallback while breaker is open.
func WithFallback(fallback ports.BucketStore, breaker *circuit.Breaker) LimiterOption {
	return func(l *Limiter) {
		l.fallback = fallback
		l.breaker = breaker
	}
}

// WithLimiterLogger sets the logger.
func WithLimiterLogger(logger *slog.Logger) LimiterOption {
	return func(l *Limiter) { l.logger = logger }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) LimiterOption {
	return func(l *Limiter) { l.metrics = m }
}

// NewLimiter creates a Limiter with a budget per endpoint class.
func NewLimiter(primary ports.BucketStore, limits map[models.EndpointClass]models.Limit, opts ...LimiterOption) *Limiter {
	l := &Limiter{
		primary: primary,
		limits:  limits,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CheckIPRateLimit consumes one request of ip's budget for class.
func (l *Limiter) CheckIPRateLimit(ctx context.Context, ip string, class models.EndpointClass) (*models.RateLimitResult, error) {
	limit, ok := l.limits[class]
	if !ok {
		return nil, fmt.Errorf("no rate limit configured for class %q", class)
	}
	key := models.NewIPRateLimitKey(class, ip)

	if l.fallback == nil || l.breaker == nil {
		res, err := l.primary.Allow(ctx, key, limit.RequestsPerWindow, limit.Window)
		return l.record(class, res, err)
	}

	if l.breaker.Allow() {
		res, err := l.primary.Allow(ctx, key, limit.RequestsPerWindow, limit.Window)
		if err == nil {
			if _, change := l.breaker.RecordSuccess(); change.Closed {
				l.logger.InfoContext(ctx, "rate limit store recovered", "breaker", l.breaker.Name())
			}
			return l.record(class, res, nil)
		}
		l.metrics.IncrementStoreErrors()
		if _, change := l.breaker.RecordFailure(); change.Opened {
			l.logger.WarnContext(ctx, "rate limit store failing, using in-memory fallback",
				"breaker", l.breaker.Name(),
				"error", err,
			)
		}
	}

	l.metrics.IncrementFallback()
	res, err := l.fallback.Allow(ctx, key, limit.RequestsPerWindow, limit.Window)
	if res != nil {
		res.Degraded = true
	}
	return l.record(class, res, err)
}

func (l *Limiter) record(class models.EndpointClass, res *models.RateLimitResult, err error) (*models.RateLimitResult, error) {
	if err == nil && res != nil {
		l.metrics.IncrementDecision(string(class), res.Allowed)
	}
	return res, err
}
