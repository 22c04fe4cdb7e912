package services

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"

	"github.com/vncsmyrnk/pollview/internal/core/domain"
	"github.com/vncsmyrnk/pollview/internal/core/ports"
)

// StateService holds the normalized questions and users slices behind a
// single lock so the dual-aggregate vote write commits as one step. Each
// slice carries a monotonic revision bumped on every applied mutation; the
// poll view cache keys off those revisions.
type StateService struct {
	repo    ports.Repository
	session ports.SessionVersioner
	cache   ports.PollCacheInvalidator

	mu              sync.Mutex
	questions       map[string]domain.Question
	users           map[string]domain.User
	questionsRev    uint64
	usersRev        uint64
	questionsStatus domain.SliceStatus
	usersStatus     domain.SliceStatus
	inflightVotes   map[string]struct{}
	loadInFlight    bool
}

func NewStateService(repo ports.Repository, session ports.SessionVersioner) *StateService {
	return &StateService{
		repo:            repo,
		session:         session,
		questions:       map[string]domain.Question{},
		users:           map[string]domain.User{},
		questionsStatus: domain.SliceIdle,
		usersStatus:     domain.SliceIdle,
		inflightVotes:   map[string]struct{}{},
	}
}

// SetInvalidator wires the poll view cache. Wired after construction because
// the cache itself reads from this service.
func (s *StateService) SetInvalidator(cache ports.PollCacheInvalidator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = cache
}

// Load replaces both slices wholesale from the repository.
func (s *StateService) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.loadInFlight {
		s.mu.Unlock()
		return domain.ErrBusy
	}
	s.loadInFlight = true
	s.questionsStatus = domain.SliceLoading
	s.usersStatus = domain.SliceLoading
	s.mu.Unlock()

	questions, err := s.repo.FetchAllQuestions(ctx)
	if err != nil {
		s.finishLoad(domain.SliceFailed)
		return fmt.Errorf("fetch questions: %w", err)
	}
	users, err := s.repo.FetchAllUsers(ctx)
	if err != nil {
		s.finishLoad(domain.SliceFailed)
		return fmt.Errorf("fetch users: %w", err)
	}

	s.mu.Lock()
	s.loadInFlight = false
	s.questions = questions
	s.users = users
	s.questionsRev++
	s.usersRev++
	s.questionsStatus = domain.SliceIdle
	s.usersStatus = domain.SliceIdle
	cache := s.cache
	s.mu.Unlock()

	if cache != nil {
		cache.Flush()
	}
	return nil
}

func (s *StateService) finishLoad(status domain.SliceStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadInFlight = false
	s.questionsStatus = status
	s.usersStatus = status
}

// Vote records the acting user's choice on a question. The question's vote
// set and the user's answers map are updated together, and only after the
// repository confirmed the write, so no reader observes a one-sided update.
func (s *StateService) Vote(ctx context.Context, userID, questionID string, option domain.Option) error {
	if !option.Valid() {
		return fmt.Errorf("option %q: %w", option, domain.ErrValidation)
	}

	s.mu.Lock()
	question, ok := s.questions[questionID]
	if !ok {
		s.mu.Unlock()
		return domain.ErrQuestionNotFound
	}
	if _, ok := s.users[userID]; !ok {
		s.mu.Unlock()
		return domain.ErrUserNotFound
	}
	if question.HasVoted(userID) {
		s.mu.Unlock()
		return domain.ErrDuplicateVote
	}
	key := questionID + "/" + userID
	if _, busy := s.inflightVotes[key]; busy {
		s.mu.Unlock()
		return domain.ErrBusy
	}
	s.inflightVotes[key] = struct{}{}
	s.questionsStatus = domain.SliceLoading
	s.usersStatus = domain.SliceLoading
	sessionVersion := s.sessionVersion()
	s.mu.Unlock()

	err := s.repo.SubmitVote(ctx, userID, questionID, option)

	s.mu.Lock()
	delete(s.inflightVotes, key)
	if err != nil {
		s.questionsStatus = domain.SliceFailed
		s.usersStatus = domain.SliceFailed
		s.mu.Unlock()
		return fmt.Errorf("submit vote: %w", err)
	}
	s.questionsStatus = domain.SliceIdle
	s.usersStatus = domain.SliceIdle
	if sessionVersion != s.sessionVersion() {
		s.mu.Unlock()
		return domain.ErrSuperseded
	}

	question, ok = s.questions[questionID]
	if !ok {
		s.mu.Unlock()
		return domain.ErrQuestionNotFound
	}
	question = question.Clone()
	switch option {
	case domain.OptionOne:
		question.OptionOne.Votes = append(question.OptionOne.Votes, userID)
	case domain.OptionTwo:
		question.OptionTwo.Votes = append(question.OptionTwo.Votes, userID)
	}
	user := s.users[userID].Clone()
	if user.Answers == nil {
		user.Answers = map[string]domain.Option{}
	}
	user.Answers[questionID] = option
	s.questions[questionID] = question
	s.users[userID] = user
	s.questionsRev++
	s.usersRev++
	cache := s.cache
	s.mu.Unlock()

	if cache != nil {
		cache.InvalidatePoll(questionID)
	}
	return nil
}

// AddQuestion creates a question with empty vote sets and appends its id to
// the author's authored list, both applied after repository confirmation.
func (s *StateService) AddQuestion(ctx context.Context, authorID, optionOneText, optionTwoText string) (*domain.Question, error) {
	if strings.TrimSpace(optionOneText) == "" || strings.TrimSpace(optionTwoText) == "" {
		return nil, fmt.Errorf("both option texts are required: %w", domain.ErrValidation)
	}

	s.mu.Lock()
	if _, ok := s.users[authorID]; !ok {
		s.mu.Unlock()
		return nil, domain.ErrUserNotFound
	}
	s.questionsStatus = domain.SliceLoading
	s.usersStatus = domain.SliceLoading
	sessionVersion := s.sessionVersion()
	s.mu.Unlock()

	question, err := s.repo.SubmitQuestion(ctx, authorID, optionOneText, optionTwoText)

	s.mu.Lock()
	if err != nil {
		s.questionsStatus = domain.SliceFailed
		s.usersStatus = domain.SliceFailed
		s.mu.Unlock()
		return nil, fmt.Errorf("submit question: %w", err)
	}
	s.questionsStatus = domain.SliceIdle
	s.usersStatus = domain.SliceIdle
	if sessionVersion != s.sessionVersion() {
		s.mu.Unlock()
		return nil, domain.ErrSuperseded
	}

	s.questions[question.ID] = question.Clone()
	if author, ok := s.users[authorID]; ok {
		author = author.Clone()
		author.Questions = append(author.Questions, question.ID)
		s.users[authorID] = author
	}
	s.questionsRev++
	s.usersRev++
	cache := s.cache
	s.mu.Unlock()

	// membership changed, every consumer needs the new poll
	if cache != nil {
		cache.Flush()
	}
	return question, nil
}

func (s *StateService) Questions() (map[string]domain.Question, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.questions), s.questionsRev
}

func (s *StateService) Users() (map[string]domain.User, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.users), s.usersRev
}

func (s *StateService) Status() (questions, users domain.SliceStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questionsStatus, s.usersStatus
}

func (s *StateService) sessionVersion() uint64 {
	if s.session == nil {
		return 0
	}
	return s.session.Version()
}
