package httpapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"dlscan/internal/extraction"
	"dlscan/internal/platform/metrics"
	rlmw "dlscan/internal/ratelimit/middleware"
	rlmodels "dlscan/internal/ratelimit/models"
	"dlscan/internal/ratelimit/store/bucket"
	"dlscan/internal/scan/handler"
	"dlscan/internal/scan/handler/mocks"
	"dlscan/pkg/platform/middleware/requestid"
	"dlscan/pkg/testutil"
)

type routerFixture struct {
	service *mocks.MockService
	router  http.Handler
}

func newRouter(t *testing.T, extractPerWindow int, checks map[string]HealthCheck) routerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	service := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()

	limiter := rlmw.NewLimiter(bucket.New(), map[rlmodels.EndpointClass]rlmodels.Limit{
		rlmodels.ClassScan:    {RequestsPerWindow: 10, Window: time.Minute},
		rlmodels.ClassExtract: {RequestsPerWindow: extractPerWindow, Window: time.Minute},
	})

	router := NewRouter(Deps{
		Logger:      logger,
		Scan:        handler.New(service, logger, 1<<20),
		RateLimiter: rlmw.New(limiter, logger),
		HTTPMetrics: metrics.New(reg),
		Gatherer:    reg,
		Checks:      checks,
	})
	return routerFixture{service: service, router: router}
}

func TestRouter(t *testing.T) {
	testutil.Given(t, "a router with a budget of one extraction", func(t *testing.T) {
		f := newRouter(t, 1, nil)

		testutil.When(t, "the health endpoint is called", func(t *testing.T) {
			rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodGet, "/health", nil))

			testutil.Then(t, "it reports ok with a request id", func(t *testing.T) {
				assert.Equal(t, http.StatusOK, rr.Code)
				testutil.AssertJSONContains(t, rr, "status", "ok")
				assert.NotEmpty(t, rr.Header().Get(requestid.Header))
			})
		})

		testutil.When(t, "text is extracted twice", func(t *testing.T) {
			f.service.EXPECT().Extract(gomock.Any(), extraction.DocumentCIV, "1. NOM TANGARA").
				Return(extraction.Fields{extraction.KeyLastName: "TANGARA"}, nil)

			body := map[string]string{"text": "1. NOM TANGARA"}
			first := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/extract/civ", body))
			second := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/extract/civ", body))

			testutil.Then(t, "the second call is rate limited", func(t *testing.T) {
				assert.Equal(t, http.StatusOK, first.Code)
				assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))
				assert.Equal(t, http.StatusTooManyRequests, second.Code)
			})

			testutil.And(t, "the rejection says when to retry", func(t *testing.T) {
				assert.NotEmpty(t, second.Header().Get("Retry-After"))
				testutil.AssertJSONContains(t, second, "error", "rate_limited")
			})
		})

		testutil.When(t, "metrics are scraped", func(t *testing.T) {
			rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodGet, "/metrics", nil))

			testutil.Then(t, "requests are recorded by route pattern", func(t *testing.T) {
				require.Equal(t, http.StatusOK, rr.Code)
				assert.Contains(t, rr.Body.String(), `dlscan_http_requests_total{method="POST",route="/extract/{documentType}",status="200"} 1`)
			})
		})
	})
}

func TestRouter_UnknownRoute(t *testing.T) {
	f := newRouter(t, 5, nil)
	rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodGet, "/ocr/civ", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRouter_HealthCheckFailure(t *testing.T) {
	f := newRouter(t, 5, map[string]HealthCheck{
		"redis": func(context.Context) error { return errors.New("connection refused") },
	})

	rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	testutil.AssertJSONContains(t, rr, "failed", "redis")
}
