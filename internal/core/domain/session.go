package domain

import "time"

type SessionStatus string

const (
	SessionIdle           SessionStatus = "idle"
	SessionAuthenticating SessionStatus = "authenticating"
	SessionFailed         SessionStatus = "failed"
)

// Session holds the acting identity. A zero UserID means anonymous. Only the
// identity is ever persisted across reloads; ExpiresAt lives in memory only.
type Session struct {
	UserID    string        `json:"user_id,omitempty"`
	ExpiresAt time.Time     `json:"expires_at,omitzero"`
	Status    SessionStatus `json:"status"`
}

func (s Session) Authenticated() bool {
	return s.UserID != ""
}

func (s Session) Expired(now time.Time) bool {
	return s.Authenticated() && !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// SliceStatus mirrors the loading state of an entity slice.
type SliceStatus string

const (
	SliceIdle    SliceStatus = "idle"
	SliceLoading SliceStatus = "loading"
	SliceFailed  SliceStatus = "failed"
)
