// internal/platform/resilience/retrying_factory.go
package resilience

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"netsql/internal/core/domain"
	"netsql/internal/core/ports"
	"netsql/internal/platform/logx"
)

// maxBackoff caps the exponential delay between attempts.
const maxBackoff = 60 * time.Second

// Policy controls how session opens are retried.
type Policy struct {
	MaxRetries        int
	BackoffBase       time.Duration
	BackoffMultiplier float64
}

func (p Policy) normalize() Policy {
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	if p.BackoffBase <= 0 {
		p.BackoffBase = time.Second
	}
	if p.BackoffMultiplier < 1.0 {
		p.BackoffMultiplier = 2.0
	}
	return p
}

// Backoff devuelve el delay antes del intento attempt+1 (base * mult^attempt).
func (p Policy) Backoff(attempt int) time.Duration {
	p = p.normalize()
	d := time.Duration(float64(p.BackoffBase) * math.Pow(p.BackoffMultiplier, float64(attempt)))
	if d > maxBackoff || d <= 0 {
		d = maxBackoff
	}
	return d
}

// Retryable reports whether a failed open is worth another attempt.
// Authentication failures never are.
func Retryable(err error) bool {
	if err == nil || errors.Is(err, domain.ErrSessionAuth) {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return errors.Is(err, domain.ErrSessionTimeout) || errors.Is(err, domain.ErrSessionProtocol)
}

// RetryingFactory envuelve un SessionFactory con reintentos y backoff
// exponencial. Solo reintenta Open; los comandos ya enviados no se repiten.
type RetryingFactory struct {
	next   ports.SessionFactory
	policy Policy
	sleep  func(ctx context.Context, d time.Duration) error
	logger logx.Logger
}

// NewRetryingFactory wraps next. With MaxRetries == 0 every open is tried once.
func NewRetryingFactory(next ports.SessionFactory, policy Policy, logger logx.Logger) *RetryingFactory {
	return &RetryingFactory{
		next:   next,
		policy: policy.normalize(),
		sleep:  sleepCtx,
		logger: logger.With("component", "retrying-session"),
	}
}

// Open intenta abrir la sesión hasta MaxRetries+1 veces.
func (r *RetryingFactory) Open(ctx context.Context, host domain.Host) (ports.Session, error) {
	var lastErr error

	for attempt := 0; attempt <= r.policy.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := r.policy.Backoff(attempt - 1)
			r.logger.Debug("backing off before retry", "host", host.Address, "delay_ms", delay.Milliseconds())
			if err := r.sleep(ctx, delay); err != nil {
				return nil, fmt.Errorf("%w: cancelled during backoff after %d attempt(s): %v",
					domain.ErrSessionTimeout, attempt, lastErr)
			}
			r.logger.Info("retrying session", "host", host.Address, "attempt", attempt, "max_retries", r.policy.MaxRetries)
		}

		sess, err := r.next.Open(ctx, host)
		if err == nil {
			if attempt > 0 {
				r.logger.Info("session opened after retry", "host", host.Address, "attempts", attempt+1)
			}
			return sess, nil
		}

		lastErr = err
		if !Retryable(err) || ctx.Err() != nil {
			return nil, err
		}
		r.logger.Warn("session open failed", "host", host.Address, "attempt", attempt+1, "error", err.Error())
	}

	if r.policy.MaxRetries == 0 {
		return nil, lastErr
	}
	return nil, fmt.Errorf("after %d attempts: %w", r.policy.MaxRetries+1, lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
