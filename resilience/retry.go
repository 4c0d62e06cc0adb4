package resilience

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kbukum/linguist/logger"
)

// RetryPolicy configures retry behavior.
type RetryPolicy struct {
	// MaxAttempts is the maximum number of attempts (including the first).
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts"`
	// InitialDelay is the wait before the second attempt.
	InitialDelay time.Duration `yaml:"initial_delay" mapstructure:"initial_delay"`
	// BackoffMultiplier scales the delay after every wait. Must be > 1.
	BackoffMultiplier float64 `yaml:"backoff_multiplier" mapstructure:"backoff_multiplier"`
	// RetryIf decides whether a failure is retried. Defaults to IsServerSideFailure.
	RetryIf func(error) bool `yaml:"-" mapstructure:"-"`
	// OnRetry is called before each wait with the failed attempt number.
	OnRetry func(attempt int, err error, delay time.Duration) `yaml:"-" mapstructure:"-"`
}

// DefaultRetryPolicy returns 3 attempts, 1s initial delay, 2x backoff.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:       3,
		InitialDelay:      time.Second,
		BackoffMultiplier: 2.0,
		RetryIf:           IsServerSideFailure,
	}
}

// ApplyDefaults fills zero-valued fields from DefaultRetryPolicy. Negative
// values are left for Validate to reject.
func (p *RetryPolicy) ApplyDefaults() {
	d := DefaultRetryPolicy()
	if p.MaxAttempts == 0 {
		p.MaxAttempts = d.MaxAttempts
	}
	if p.InitialDelay == 0 {
		p.InitialDelay = d.InitialDelay
	}
	if p.BackoffMultiplier == 0 {
		p.BackoffMultiplier = d.BackoffMultiplier
	}
	if p.RetryIf == nil {
		p.RetryIf = d.RetryIf
	}
}

// Validate checks the policy invariants.
func (p *RetryPolicy) Validate() error {
	if p.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be >= 1 (got: %d)", p.MaxAttempts)
	}
	if p.InitialDelay <= 0 {
		return fmt.Errorf("retry.initial_delay must be positive (got: %s)", p.InitialDelay)
	}
	if p.BackoffMultiplier <= 1 {
		return fmt.Errorf("retry.backoff_multiplier must be > 1 (got: %g)", p.BackoffMultiplier)
	}
	return nil
}

// IsServerSideFailure reports whether err looks like a server-side provider
// condition: "internal error" in any case, or a "500"/"503" token anywhere
// in the message.
func IsServerSideFailure(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(strings.ToLower(msg), "internal error") ||
		strings.Contains(msg, "500") ||
		strings.Contains(msg, "503")
}

// Retry executes fn until it succeeds, returns a non-retryable error, or
// MaxAttempts is reached. The last error is returned unchanged.
func Retry[T any](ctx context.Context, policy RetryPolicy, fn func() (T, error)) (T, error) {
	var zero T
	policy.ApplyDefaults()
	log := logger.WithComponent("retry").WithContext(ctx)

	delay := policy.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			if attempt > 1 {
				log.Debug("attempt succeeded", logger.Fields(logger.FieldAttempt, attempt))
			}
			return result, nil
		}
		lastErr = err

		if !policy.RetryIf(err) {
			log.Debug("non-retryable failure", logger.Fields(
				logger.FieldAttempt, attempt,
				logger.FieldError, err.Error(),
			))
			return zero, err
		}

		if attempt == policy.MaxAttempts {
			break
		}

		log.Warn("retryable failure, backing off", logger.Fields(
			logger.FieldAttempt, attempt,
			"max_attempts", policy.MaxAttempts,
			"delay_ms", delay.Milliseconds(),
			logger.FieldError, err.Error(),
		))
		if policy.OnRetry != nil {
			policy.OnRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}

		delay = time.Duration(float64(delay) * policy.BackoffMultiplier)
	}

	log.Warn("retries exhausted", logger.Fields(
		"max_attempts", policy.MaxAttempts,
		logger.FieldError, lastErr.Error(),
	))
	return zero, lastErr
}

// RetryFunc executes a function that returns only an error.
func RetryFunc(ctx context.Context, policy RetryPolicy, fn func() error) error {
	_, err := Retry(ctx, policy, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// IsContextError reports whether err came from context cancellation.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
