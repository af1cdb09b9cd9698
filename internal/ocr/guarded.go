package ocr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dlscan/pkg/platform/circuit"
	"dlscan/pkg/platform/sentinel"
)

// Guarded bounds every call to an Engine with a timeout and a circuit
// breaker. Unreadable images are the caller's problem and do not count
// against the engine.
type Guarded struct {
	engine  Engine
	breaker *circuit.Breaker
	timeout time.Duration
	logger  *slog.Logger
}

// NewGuarded wraps engine. A zero timeout disables the deadline.
func NewGuarded(engine Engine, breaker *circuit.Breaker, timeout time.Duration, logger *slog.Logger) *Guarded {
	if breaker == nil {
		breaker = circuit.New(engine.Name())
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Guarded{engine: engine, breaker: breaker, timeout: timeout, logger: logger}
}

func (g *Guarded) Name() string { return g.engine.Name() }

// Recognize runs the wrapped engine. While the circuit is open it fails fast
// with an error wrapping sentinel.ErrUnavailable.
func (g *Guarded) Recognize(ctx context.Context, image []byte, opts Options) (Result, error) {
	if !g.breaker.Allow() {
		return Result{}, NewEngineError(ErrorUnavailable, g.engine.Name(), "circuit open",
			fmt.Errorf("%w: %s", sentinel.ErrUnavailable, g.breaker.Name()))
	}

	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	res, err := g.engine.Recognize(callCtx, image, opts)
	if err != nil {
		if ctx.Err() != nil {
			// The caller went away; that says nothing about the engine.
			return Result{}, err
		}
		if errors.Is(err, context.DeadlineExceeded) && CategoryOf(err) != ErrorTimeout {
			err = NewEngineError(ErrorTimeout, g.engine.Name(), "recognition timed out", err)
		}
		if IsRetryable(err) || CategoryOf(err) == ErrorInternal {
			g.recordFailure(ctx)
		}
		return Result{}, err
	}

	if _, change := g.breaker.RecordSuccess(); change.Closed {
		g.logger.InfoContext(ctx, "ocr circuit closed", "engine", g.engine.Name())
	}
	return res, nil
}

func (g *Guarded) recordFailure(ctx context.Context) {
	if _, change := g.breaker.RecordFailure(); change.Opened {
		g.logger.WarnContext(ctx, "ocr circuit opened", "engine", g.engine.Name())
	}
}
