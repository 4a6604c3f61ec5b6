package yahoo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"QuotePull/internal/domain/repository"
	"QuotePull/pkg/logger"

	"golang.org/x/sync/singleflight"
)

// Credentials is the cookie/crumb pair and the host that accepted it.
type Credentials struct {
	Cookie  string
	Crumb   string
	BaseURL string
}

// SessionOption configures Session.
type SessionOption func(*Session)

// Session owns the provider credentials and refreshes them through an
// ordered strategy chain. It is safe for concurrent use.
type Session struct {
	mu              sync.Mutex
	creds           Credentials
	authenticatedAt time.Time

	defaultBaseURL string
	ttl            time.Duration
	authTimeout    time.Duration
	strategies     []Strategy
	now            func() time.Time
	log            *logger.Logger
	metrics        repository.Metrics

	// coalesces concurrent refreshes
	sf singleflight.Group
}

// NewSession creates an empty session that authenticates with strategies.
func NewSession(strategies []Strategy, opts ...SessionOption) *Session {
	s := &Session{
		defaultBaseURL: DefaultQuery1URL,
		ttl:            DefaultSessionTTL,
		authTimeout:    DefaultAuthTimeout,
		strategies:     strategies,
		now:            time.Now,
		log:            logger.Nop(),
		metrics:        repository.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.creds.BaseURL = s.defaultBaseURL
	return s
}

func WithSessionTTL(ttl time.Duration) SessionOption {
	return func(s *Session) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithAuthTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		if d > 0 {
			s.authTimeout = d
		}
	}
}

func WithDefaultBaseURL(u string) SessionOption {
	return func(s *Session) {
		if u != "" {
			s.defaultBaseURL = u
		}
	}
}

func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

func WithSessionLogger(l *logger.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

func WithSessionMetrics(m repository.Metrics) SessionOption {
	return func(s *Session) {
		if m != nil {
			s.metrics = m
		}
	}
}

// IsValid reports whether the session holds fresh credentials.
func (s *Session) IsValid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validLocked()
}

// Current returns the credentials as they are, valid or not.
func (s *Session) Current() Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds
}

func (s *Session) validLocked() bool {
	if s.creds.Cookie == "" || s.creds.Crumb == "" || s.authenticatedAt.IsZero() {
		return false
	}
	return s.now().Sub(s.authenticatedAt) < s.ttl
}

// Invalidate clears the session.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// InvalidateIf clears the session only while it still holds creds, so a
// request that failed with stale credentials cannot discard a newer session.
func (s *Session) InvalidateIf(creds Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds == creds {
		s.resetLocked()
	}
}

func (s *Session) resetLocked() {
	s.creds = Credentials{BaseURL: s.defaultBaseURL}
	s.authenticatedAt = time.Time{}
}

// EnsureAuthenticated returns valid credentials, running the strategy chain
// when the session is empty or expired.
func (s *Session) EnsureAuthenticated(ctx context.Context) (Credentials, error) {
	s.mu.Lock()
	if s.validLocked() {
		creds := s.creds
		s.mu.Unlock()
		return creds, nil
	}
	s.mu.Unlock()

	ch := s.sf.DoChan("authenticate", func() (any, error) {
		s.mu.Lock()
		if s.validLocked() {
			creds := s.creds
			s.mu.Unlock()
			return creds, nil
		}
		s.mu.Unlock()

		// shared by every waiter, so it must not die with the first caller
		actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.authTimeout)
		defer cancel()

		creds, err := s.authenticate(actx)
		if err != nil {
			return Credentials{}, err
		}

		s.mu.Lock()
		s.creds = creds
		s.authenticatedAt = s.now()
		s.mu.Unlock()
		return creds, nil
	})

	select {
	case <-ctx.Done():
		return Credentials{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Credentials{}, res.Err
		}
		return res.Val.(Credentials), nil
	}
}

func (s *Session) authenticate(ctx context.Context) (Credentials, error) {
	for _, st := range s.strategies {
		start := time.Now()
		creds, err := st.Acquire(ctx)
		if err != nil {
			s.metrics.RecordAuthAttempt(st.Name(), "failure")
			s.log.Debug("auth strategy failed",
				logger.String("strategy", st.Name()),
				logger.Duration("duration_ms", time.Since(start)),
				logger.Error(err),
			)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		s.metrics.RecordAuthAttempt(st.Name(), "success")
		s.log.Info("authenticated",
			logger.String("strategy", st.Name()),
			logger.String("base_url", creds.BaseURL),
			logger.Duration("duration_ms", time.Since(start)),
		)
		return creds, nil
	}
	return Credentials{}, fmt.Errorf("%w: all authentication strategies failed", ErrAuthentication)
}
