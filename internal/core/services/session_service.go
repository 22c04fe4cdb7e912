package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vncsmyrnk/pollview/internal/core/domain"
	"github.com/vncsmyrnk/pollview/internal/core/ports"
)

const identityKey = "authed_user"

// ContinuityMarker is the process-local flag that distinguishes in-app
// navigation from a fresh load. It is never persisted: a restarted process
// starts unmarked, which is exactly what forces the stale-session logout.
type ContinuityMarker struct {
	set atomic.Bool
}

func (m *ContinuityMarker) Mark() {
	m.set.Store(true)
}

func (m *ContinuityMarker) Marked() bool {
	return m.set.Load()
}

// SessionService drives the acting identity through its lifecycle: login,
// logout, wall-clock expiry, and the fresh-load forced logout. Only the
// identity is persisted; expiry never survives a reload.
type SessionService struct {
	repo          ports.Repository
	kv            ports.KeyValueStore
	marker        *ContinuityMarker
	cache         ports.PollCacheInvalidator
	logger        *log.Logger
	checkInterval time.Duration

	mu            sync.Mutex
	session       domain.Session
	version       uint64
	loginInFlight bool
}

func NewSessionService(repo ports.Repository, kv ports.KeyValueStore, marker *ContinuityMarker, checkInterval time.Duration, logger *log.Logger) *SessionService {
	if marker == nil {
		marker = &ContinuityMarker{}
	}
	if checkInterval <= 0 {
		checkInterval = 30 * time.Second
	}
	if logger == nil {
		logger = log.Default()
	}
	return &SessionService{
		repo:          repo,
		kv:            kv,
		marker:        marker,
		logger:        logger,
		checkInterval: checkInterval,
		session:       domain.Session{Status: domain.SessionIdle},
	}
}

// SetInvalidator wires the poll view cache, flushed whenever the acting
// identity goes away.
func (s *SessionService) SetInvalidator(cache ports.PollCacheInvalidator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = cache
}

func (s *SessionService) Marker() *ContinuityMarker {
	return s.marker
}

// Restore rehydrates the persisted identity at startup. A persisted identity
// without the continuity marker means the client process was torn down, and
// only an unbroken process may keep a session alive past a reload, so the
// identity is dropped regardless of any remaining expiry.
func (s *SessionService) Restore(ctx context.Context) error {
	userID, err := s.kv.Get(ctx, identityKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	if !s.marker.Marked() {
		s.logger.Printf("fresh load with persisted identity %q, forcing logout", userID)
		return s.Logout(ctx)
	}

	s.mu.Lock()
	s.session = domain.Session{UserID: userID, Status: domain.SessionIdle}
	s.version++
	s.mu.Unlock()
	return nil
}

func (s *SessionService) Login(ctx context.Context, userID string, durationMinutes int) error {
	s.mu.Lock()
	if s.loginInFlight {
		s.mu.Unlock()
		return domain.ErrBusy
	}
	s.loginInFlight = true
	s.session.Status = domain.SessionAuthenticating
	version := s.version
	s.mu.Unlock()

	result, err := s.repo.Authenticate(ctx, userID, time.Duration(durationMinutes)*time.Minute)

	s.mu.Lock()
	s.loginInFlight = false
	if err != nil {
		s.session = domain.Session{Status: domain.SessionFailed}
		s.mu.Unlock()
		return fmt.Errorf("authenticate %q: %v: %w", userID, err, domain.ErrAuthFailed)
	}
	if version != s.version {
		// a logout won the race, the stale result must not apply
		s.session.Status = domain.SessionIdle
		s.mu.Unlock()
		return domain.ErrSuperseded
	}
	s.session = domain.Session{
		UserID:    result.UserID,
		ExpiresAt: result.ExpiresAt,
		Status:    domain.SessionIdle,
	}
	s.version++
	cache := s.cache
	s.mu.Unlock()

	// identity only, never the expiry
	if err := s.kv.Set(ctx, identityKey, result.UserID); err != nil {
		s.logger.Printf("persisting session identity: %v", err)
	}
	if cache != nil {
		cache.Flush()
	}
	return nil
}

func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.session = domain.Session{Status: domain.SessionIdle}
	s.version++
	cache := s.cache
	s.mu.Unlock()

	if err := s.kv.Delete(ctx, identityKey); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		return fmt.Errorf("clear persisted identity: %w", err)
	}
	if cache != nil {
		cache.Flush()
	}
	return nil
}

// Start runs the recurring expiry check until ctx is cancelled. The interval
// is tunable, not a correctness parameter.
func (s *SessionService) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.checkInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				s.expireIfDue(ctx, now)
			}
		}
	}()
}

func (s *SessionService) expireIfDue(ctx context.Context, now time.Time) {
	s.mu.Lock()
	if !s.session.Expired(now) {
		s.mu.Unlock()
		return
	}
	userID := s.session.UserID
	version := s.version
	s.mu.Unlock()

	s.logger.Printf("session for %q expired, logging out", userID)
	if err := s.logoutExpired(ctx, version); err != nil {
		s.logger.Printf("expiring session: %v", err)
	}
}

// logoutExpired clears the session only if no login or logout landed since
// the expiry check captured version. A fresh session must never be destroyed
// by the tick that noticed its predecessor expiring.
func (s *SessionService) logoutExpired(ctx context.Context, version uint64) error {
	s.mu.Lock()
	if s.version != version {
		s.mu.Unlock()
		return nil
	}
	s.session = domain.Session{Status: domain.SessionIdle}
	s.version++
	cache := s.cache
	s.mu.Unlock()

	if err := s.kv.Delete(ctx, identityKey); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		return fmt.Errorf("clear persisted identity: %w", err)
	}
	if cache != nil {
		cache.Flush()
	}
	return nil
}

func (s *SessionService) Session() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *SessionService) Remaining(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Authenticated() || s.session.ExpiresAt.IsZero() {
		return 0
	}
	remaining := s.session.ExpiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (s *SessionService) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}
