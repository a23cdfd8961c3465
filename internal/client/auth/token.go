package auth

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/learnkit/internal/logging"
	"golang.org/x/sync/singleflight"
)

// Provider returns a fresh bearer credential. It is supplied by the host.
type Provider func(ctx context.Context) (string, error)

type State string

const (
	StateEmpty      State = "EMPTY"
	StateCached     State = "CACHED"
	StateRefreshing State = "REFRESHING"
)

const refreshKey = "token"

// TokenSource caches one bearer credential and coalesces concurrent
// refreshes so that at most one Provider call is outstanding.
type TokenSource struct {
	provider Provider
	logger   logging.Logger
	group    singleflight.Group

	mu         sync.Mutex
	token      string
	refreshing bool
}

func NewTokenSource(provider Provider, logger logging.Logger) (*TokenSource, error) {
	if provider == nil {
		return nil, ErrNoProvider
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &TokenSource{provider: provider, logger: logger}, nil
}

// Token returns the cached credential or waits for a refresh. A caller whose
// ctx ends stops waiting; the refresh itself keeps running and still fills
// the cache.
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.token != "" {
		token := s.token
		s.mu.Unlock()
		return token, nil
	}
	s.mu.Unlock()

	ch := s.group.DoChan(refreshKey, func() (any, error) {
		return s.refresh(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *TokenSource) refresh(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.token != "" {
		token := s.token
		s.mu.Unlock()
		return token, nil
	}
	s.refreshing = true
	s.mu.Unlock()

	token, err := s.provider(ctx)
	if err == nil && token == "" {
		err = ErrEmptyToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshing = false

	if err != nil {
		s.token = ""
		s.logger.Debug(ctx, "token provider failed", "error", err)
		return "", err
	}

	s.token = token
	if c, ok := InspectClaims(token); ok {
		s.logger.Debug(ctx, "token refreshed", "subject", c.Subject, "expires_at", c.ExpiresAt)
	} else {
		s.logger.Debug(ctx, "token refreshed")
	}
	return token, nil
}

// Invalidate drops the cached credential. An in-flight refresh is not
// cancelled and will populate the cache when it completes.
func (s *TokenSource) Invalidate() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

// InvalidateIfCurrent drops the cached credential only while it is still
// rejected. A credential that another caller already replaced is kept. It
// reports whether the cache was cleared.
func (s *TokenSource) InvalidateIfCurrent(rejected string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rejected == "" || s.token != rejected {
		return false
	}
	s.token = ""
	return true
}

func (s *TokenSource) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.refreshing:
		return StateRefreshing
	case s.token != "":
		return StateCached
	default:
		return StateEmpty
	}
}
