package ports

import (
	"context"

	"github.com/vncsmyrnk/pollview/internal/core/domain"
)

type PollService interface {
	Polls(ctx context.Context) (*domain.PollView, error)
	SetExpanded(ctx context.Context, pollID string, expanded bool) error
	PollCacheInvalidator
}

// PollCacheInvalidator lets mutators mark derived polls stale. InvalidatePoll
// is tag-scoped to a single question; Flush drops everything, used when the
// acting identity changes.
type PollCacheInvalidator interface {
	InvalidatePoll(id string)
	Flush()
}

type PreferenceService interface {
	Expand(ctx context.Context, userID string) (map[string]bool, error)
	SetExpand(ctx context.Context, userID, questionID string, expand bool) error
}

type LeaderboardService interface {
	Leaderboard() []domain.LeaderboardEntry
}
