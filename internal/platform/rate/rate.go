// internal/platform/rate/rate.go

// Package rate limita cuántas sesiones nuevas se abren por segundo contra la
// red, sumando todos los workers.
package rate

import (
	"context"
	"sync"
	"time"

	"netsql/internal/core/domain"
	"netsql/internal/core/ports"
)

// Limiter is a token bucket: perSecond tokens refill continuously up to burst.
type Limiter struct {
	perSecond float64
	burst     float64

	mu     sync.Mutex
	tokens float64
	last   time.Time
	now    func() time.Time
}

// New crea un limiter lleno. perSecond <= 0 significa sin límite (nil).
func New(perSecond float64, burst int) *Limiter {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	l := &Limiter{perSecond: perSecond, burst: float64(burst), now: time.Now}
	l.tokens = l.burst
	l.last = l.now()
	return l
}

// Allow takes a token if one is available. A nil limiter always allows.
func (l *Limiter) Allow() bool {
	if l == nil {
		return true
	}
	_, ok := l.reserve()
	return ok
}

// Wait blocks until a token is taken or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return ctx.Err()
	}
	for {
		wait, ok := l.reserve()
		if ok {
			return nil
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}

// reserve takes a token, or reports how long until one is available.
func (l *Limiter) reserve() (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refill()
	if l.tokens >= 1 {
		l.tokens--
		return 0, true
	}
	missing := 1 - l.tokens
	return time.Duration(missing / l.perSecond * float64(time.Second)), false
}

// refill must be called with mu held.
func (l *Limiter) refill() {
	now := l.now()
	l.tokens += now.Sub(l.last).Seconds() * l.perSecond
	if l.tokens > l.burst {
		l.tokens = l.burst
	}
	l.last = now
}

// LimitedFactory espera un token antes de cada Open.
type LimitedFactory struct {
	next    ports.SessionFactory
	limiter *Limiter
}

// NewLimitedFactory wraps next. A nil limiter returns next unchanged.
func NewLimitedFactory(next ports.SessionFactory, limiter *Limiter) ports.SessionFactory {
	if limiter == nil {
		return next
	}
	return &LimitedFactory{next: next, limiter: limiter}
}

func (f *LimitedFactory) Open(ctx context.Context, host domain.Host) (ports.Session, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, domain.NewPipelineError(domain.ErrSessionTimeout, host.Address, "", err)
	}
	return f.next.Open(ctx, host)
}
