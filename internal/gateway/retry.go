package gateway

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/akyairhashvil/sprintboard/internal/config"
)

// Policy is an exponential backoff policy. Attempt n (0-based) waits
// min(InitialDelay * 2^n, MaxDelay) before the next try.
type Policy struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	// ShouldRetry overrides IsRetryable when set.
	ShouldRetry func(error) bool
	Logger      *slog.Logger
}

func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:   config.MaxRetries,
		InitialDelay: config.InitialDelay,
		MaxDelay:     config.MaxDelay,
	}
}

// PolicyFromConfig builds a policy from the loaded retry settings.
func PolicyFromConfig(cfg config.RetryConfig, logger *slog.Logger) Policy {
	return Policy{
		MaxRetries:   cfg.MaxRetries,
		InitialDelay: cfg.InitialDelay,
		MaxDelay:     cfg.MaxDelay,
		Logger:       logger,
	}
}

// backOff builds the exponential schedule for one Retry call. Jitter is off
// so the schedule is exactly InitialDelay * 2^n capped at MaxDelay.
func (p Policy) backOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialDelay
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.MaxInterval = max(p.MaxDelay, p.InitialDelay)
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// Delay returns the wait after the given failed attempt.
func (p Policy) Delay(attempt int) time.Duration {
	b := p.backOff()
	d := b.NextBackOff()
	for i := 0; i < attempt; i++ {
		d = b.NextBackOff()
	}
	return d
}

// Retry runs fn until it succeeds, returns a non-retryable error, or the
// policy runs out of retries. The last error is returned unchanged.
func Retry(ctx context.Context, p Policy, op string, fn func(context.Context) error) error {
	_, err := RetryValue(ctx, p, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// RetryValue is Retry for calls that return a value.
func RetryValue[T any](ctx context.Context, p Policy, op string, fn func(context.Context) (T, error)) (T, error) {
	shouldRetry := p.ShouldRetry
	if shouldRetry == nil {
		shouldRetry = IsRetryable
	}
	var (
		last    error
		attempt int
	)
	operation := func() (T, error) {
		v, err := fn(ctx)
		last = err
		if err != nil && !shouldRetry(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}
	notify := func(err error, delay time.Duration) {
		attempt++
		if p.Logger == nil {
			return
		}
		p.Logger.Warn("gateway call failed, retrying",
			slog.String("op", op),
			slog.Int("attempt", attempt),
			slog.Int("max_retries", p.MaxRetries),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()))
	}

	b := backoff.WithContext(backoff.WithMaxRetries(p.backOff(), uint64(max(p.MaxRetries, 0))), ctx)
	v, err := backoff.RetryNotifyWithData[T](operation, b, notify)
	if err != nil {
		var zero T
		if last != nil {
			// A cancelled wait reports the context error; callers classify the call's own error.
			return zero, last
		}
		return zero, err
	}
	return v, nil
}
