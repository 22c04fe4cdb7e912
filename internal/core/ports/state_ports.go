package ports

import (
	"context"

	"github.com/vncsmyrnk/pollview/internal/core/domain"
)

// StateService owns the questions and users entity slices and the
// transactional mutations that touch both at once.
type StateService interface {
	Load(ctx context.Context) error
	Vote(ctx context.Context, userID, questionID string, option domain.Option) error
	AddQuestion(ctx context.Context, authorID, optionOneText, optionTwoText string) (*domain.Question, error)
	StateReader
	Status() (questions, users domain.SliceStatus)
}

// StateReader exposes slice snapshots with their monotonic revisions. The
// revisions, not map identity, are the cache version signal.
type StateReader interface {
	Questions() (map[string]domain.Question, uint64)
	Users() (map[string]domain.User, uint64)
}
