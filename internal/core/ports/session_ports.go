package ports

import (
	"context"
	"time"

	"github.com/vncsmyrnk/pollview/internal/core/domain"
)

type SessionService interface {
	Restore(ctx context.Context) error
	Login(ctx context.Context, userID string, durationMinutes int) error
	Logout(ctx context.Context) error
	Start(ctx context.Context)
	Remaining(now time.Time) time.Duration
	SessionReader
	SessionVersioner
}

type SessionReader interface {
	Session() domain.Session
}

// SessionVersioner exposes the monotonic session version used to discard
// in-flight results that a logout or login swap superseded.
type SessionVersioner interface {
	Version() uint64
}
