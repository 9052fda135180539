package gateway

import (
	"context"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// RetryPolicy retries transient failures with exponential backoff and jitter.
// The delay before attempt n (n >= 1) is Base * 3^(n-1) plus a random jitter
// up to Jitter.
type RetryPolicy struct {
	MaxAttempts int
	Base        time.Duration
	Jitter      time.Duration
}

func (p RetryPolicy) delay(attempt int) time.Duration {
	d := p.Base
	for i := 1; i < attempt; i++ {
		d *= 3
	}
	if p.Jitter > 0 {
		d += time.Duration(rand.Int63n(int64(p.Jitter)))
	}
	return d
}

// Do runs fn until it succeeds or MaxAttempts are exhausted. The final error
// is wrapped with the operation name.
func (p RetryPolicy) Do(ctx context.Context, logger *zap.Logger, op string, fn func(context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return errors.Wrapf(ctx.Err(), "%s: aborted while backing off", op)
			case <-time.After(p.delay(attempt - 1)):
			}
		}

		if err = fn(ctx); err == nil {
			return nil
		}

		logger.Warn("Gateway call failed",
			zap.String("operation", op),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Error(err))
	}

	return errors.Wrapf(err, "%s: retries exhausted", op)
}
