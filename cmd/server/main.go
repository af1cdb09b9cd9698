package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"dlscan/internal/extraction"
	httpapi "dlscan/internal/http"
	"dlscan/internal/ocr"
	"dlscan/internal/ocr/tesseract"
	"dlscan/internal/platform/config"
	"dlscan/internal/platform/httpserver"
	"dlscan/internal/platform/logger"
	"dlscan/internal/platform/metrics"
	platformredis "dlscan/internal/platform/redis"
	rlmetrics "dlscan/internal/ratelimit/metrics"
	rlmw "dlscan/internal/ratelimit/middleware"
	rlmodels "dlscan/internal/ratelimit/models"
	"dlscan/internal/ratelimit/ports"
	"dlscan/internal/ratelimit/store/bucket"
	"dlscan/internal/render"
	"dlscan/internal/scan"
	"dlscan/internal/scan/handler"
	scanmetrics "dlscan/internal/scan/metrics"
	"dlscan/internal/upload"
	"dlscan/pkg/platform/circuit"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	lexicon, err := extraction.LoadLexiconFile(cfg.Extraction.LexiconFile)
	if err != nil {
		return err
	}
	registry, err := extraction.NewRegistry(lexicon)
	if err != nil {
		return fmt.Errorf("build extractors: %w", err)
	}

	store, err := upload.NewFileStore(cfg.Upload.Dir)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	engine := ocr.NewGuarded(
		tesseract.New(),
		circuit.New("ocr",
			circuit.WithFailureThreshold(cfg.OCR.FailureThreshold),
			circuit.WithCooldown(cfg.OCR.Cooldown),
		),
		cfg.OCR.Timeout,
		log,
	)

	service := scan.New(registry, engine, store, render.NewPDF(),
		scan.WithAcceptor(upload.NewAcceptor(cfg.Upload.MaxBytes)),
		scan.WithOCROptions(ocr.Options{Lang: cfg.OCR.Lang, PSM: cfg.OCR.PSM}),
		scan.WithCategories(cfg.Extraction.Categories),
		scan.WithLogger(log),
		scan.WithMetrics(scanmetrics.New(reg)),
	)

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	checks := map[string]httpapi.HealthCheck{}
	var buckets ports.BucketStore = bucket.New()
	limiterOpts := []rlmw.LimiterOption{
		rlmw.WithLimiterLogger(log),
		rlmw.WithMetrics(rlmetrics.New(reg)),
	}
	if redisClient != nil {
		defer redisClient.Close()
		buckets = bucket.NewRedis(redisClient.Client)
		limiterOpts = append(limiterOpts, rlmw.WithFallback(bucket.New(), circuit.New("ratelimit-redis")))
		checks["redis"] = redisClient.Health
		log.Info("rate limiting backed by redis")
	}
	limiter := rlmw.NewLimiter(buckets, map[rlmodels.EndpointClass]rlmodels.Limit{
		rlmodels.ClassScan:    {RequestsPerWindow: cfg.RateLimit.ScanPerMin, Window: cfg.RateLimit.Window},
		rlmodels.ClassExtract: {RequestsPerWindow: cfg.RateLimit.ExtractPerMin, Window: cfg.RateLimit.Window},
	}, limiterOpts...)

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:      log,
		Scan:        handler.New(service, log, service.MaxUploadBytes()),
		RateLimiter: rlmw.New(limiter, log, rlmw.WithDisabled(cfg.RateLimit.Disabled)),
		HTTPMetrics: metrics.New(reg),
		Gatherer:    reg,
		Checks:      checks,
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting dlscan", "addr", cfg.Addr, "ocr_engine", engine.Name(), "document_types", registry.Types())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
