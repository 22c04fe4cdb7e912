// Package memory implements the repository port against process memory,
// seeded with the employee polls roster. It stands in for the real backend
// and mimics its latency and failure modes, which makes it the backing store
// for tests and for the reference server.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/pollview/internal/core/domain"
	"github.com/vncsmyrnk/pollview/internal/core/ports"
)

type Repository struct {
	mu        sync.RWMutex
	questions map[string]domain.Question
	users     map[string]domain.User
	latency   time.Duration
	nextErr   error
}

func New() *Repository {
	questions, users := seedData()
	return &Repository{
		questions: questions,
		users:     users,
	}
}

// SetLatency adds an artificial delay before every call resolves.
func (r *Repository) SetLatency(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.latency = d
}

// FailNextWith makes the next repository call fail with err.
func (r *Repository) FailNextWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextErr = err
}

func (r *Repository) FetchAllQuestions(ctx context.Context) (map[string]domain.Question, error) {
	if err := r.begin(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	questions := make(map[string]domain.Question, len(r.questions))
	for id, question := range r.questions {
		questions[id] = question.Clone()
	}
	return questions, nil
}

func (r *Repository) FetchAllUsers(ctx context.Context) (map[string]domain.User, error) {
	if err := r.begin(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make(map[string]domain.User, len(r.users))
	for id, user := range r.users {
		users[id] = user.Clone()
	}
	return users, nil
}

func (r *Repository) SubmitVote(ctx context.Context, userID, questionID string, option domain.Option) error {
	if err := r.begin(ctx); err != nil {
		return err
	}
	if !option.Valid() {
		return fmt.Errorf("option %q: %w", option, domain.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	question, ok := r.questions[questionID]
	if !ok {
		return domain.ErrQuestionNotFound
	}
	user, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if question.HasVoted(userID) {
		return domain.ErrDuplicateVote
	}

	question = question.Clone()
	if option == domain.OptionOne {
		question.OptionOne.Votes = append(question.OptionOne.Votes, userID)
	} else {
		question.OptionTwo.Votes = append(question.OptionTwo.Votes, userID)
	}
	user = user.Clone()
	if user.Answers == nil {
		user.Answers = map[string]domain.Option{}
	}
	user.Answers[questionID] = option
	r.questions[questionID] = question
	r.users[userID] = user
	return nil
}

func (r *Repository) SubmitQuestion(ctx context.Context, authorID, optionOneText, optionTwoText string) (*domain.Question, error) {
	if err := r.begin(ctx); err != nil {
		return nil, err
	}
	optionOneText = strings.TrimSpace(optionOneText)
	optionTwoText = strings.TrimSpace(optionTwoText)
	if optionOneText == "" || optionTwoText == "" {
		return nil, fmt.Errorf("both option texts are required: %w", domain.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	author, ok := r.users[authorID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	question := domain.Question{
		ID:        uuid.NewString(),
		Author:    authorID,
		CreatedAt: time.Now(),
		OptionOne: domain.QuestionOption{Text: optionOneText, Votes: []string{}},
		OptionTwo: domain.QuestionOption{Text: optionTwoText, Votes: []string{}},
	}
	r.questions[question.ID] = question

	author = author.Clone()
	author.Questions = append(author.Questions, question.ID)
	r.users[authorID] = author

	result := question.Clone()
	return &result, nil
}

func (r *Repository) Authenticate(ctx context.Context, userID string, duration time.Duration) (*ports.AuthResult, error) {
	if err := r.begin(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.users[userID]; !ok {
		return nil, fmt.Errorf("unknown user %q: %w", userID, domain.ErrAuthFailed)
	}
	return &ports.AuthResult{
		UserID:    userID,
		ExpiresAt: time.Now().Add(duration),
	}, nil
}

// begin applies the artificial latency and consumes any injected failure.
func (r *Repository) begin(ctx context.Context) error {
	r.mu.Lock()
	latency := r.latency
	err := r.nextErr
	r.nextErr = nil
	r.mu.Unlock()

	if latency > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(latency):
		}
	}
	if err != nil {
		return err
	}
	return ctx.Err()
}
