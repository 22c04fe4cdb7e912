package ports

import (
	"context"
	"time"

	"github.com/vncsmyrnk/pollview/internal/core/domain"
)

type AuthResult struct {
	UserID    string
	ExpiresAt time.Time
}

// Repository is the durable store of questions and users. Every call is
// asynchronous from the caller's point of view and may fail.
type Repository interface {
	FetchAllQuestions(ctx context.Context) (map[string]domain.Question, error)
	FetchAllUsers(ctx context.Context) (map[string]domain.User, error)
	SubmitVote(ctx context.Context, userID, questionID string, option domain.Option) error
	SubmitQuestion(ctx context.Context, authorID, optionOneText, optionTwoText string) (*domain.Question, error)
	Authenticate(ctx context.Context, userID string, duration time.Duration) (*AuthResult, error)
}
