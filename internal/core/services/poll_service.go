package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/vncsmyrnk/pollview/internal/core/domain"
	"github.com/vncsmyrnk/pollview/internal/core/ports"
)

// PollService memoizes the derived poll view per fingerprint of
// (questionsRev, usersRev, actingUser). Concurrent queries for the same
// fingerprint share one derivation through a singleflight group. Staleness
// is tag-scoped: SetExpanded and a confirmed vote mark a single poll, so a
// pure UI-state change never recomputes unrelated polls.
type PollService struct {
	state   ports.StateReader
	session ports.SessionReader
	prefs   ports.PreferenceService
	logger  *log.Logger

	group singleflight.Group

	mu    sync.Mutex
	key   string
	view  *domain.PollView
	stale map[string]struct{}
	gen   uint64
}

func NewPollService(state ports.StateReader, session ports.SessionReader, prefs ports.PreferenceService, logger *log.Logger) *PollService {
	if logger == nil {
		logger = log.Default()
	}
	return &PollService{
		state:   state,
		session: session,
		prefs:   prefs,
		logger:  logger,
		stale:   map[string]struct{}{},
	}
}

func (s *PollService) Polls(ctx context.Context) (*domain.PollView, error) {
	questions, questionsRev := s.state.Questions()
	users, usersRev := s.state.Users()
	acting := s.session.Session().UserID
	key := fmt.Sprintf("%d:%d:%s", questionsRev, usersRev, acting)

	if view, ok := s.cached(key); ok {
		return view, nil
	}

	result, err, _ := s.group.Do(key, func() (any, error) {
		if view, ok := s.cached(key); ok {
			return view, nil
		}

		s.mu.Lock()
		startGen := s.gen
		prior := map[string]domain.Poll{}
		snapshot := make(map[string]struct{}, len(s.stale))
		for id := range s.stale {
			snapshot[id] = struct{}{}
		}
		var staleOnly map[string]struct{}
		if s.view != nil {
			prior = s.view.Entities
			if s.key == key {
				// same fingerprint, only tagged polls need recomputing
				staleOnly = snapshot
			}
		}
		s.mu.Unlock()

		prefs, err := s.expandPrefs(ctx, acting)
		if err != nil {
			// never memoize a failed derivation
			return nil, err
		}

		var view *domain.PollView
		if staleOnly != nil {
			view = s.rebuildStale(questions, users, acting, prefs, staleOnly)
		} else {
			view = BuildPollView(questions, users, acting, prefs, prior, s.logger)
		}

		// Memoize only if no invalidation landed while deriving, and clear
		// only the tags this derivation incorporated. Tags added mid-flight
		// survive, so the next query recomputes them.
		s.mu.Lock()
		if s.gen == startGen {
			s.key = key
			s.view = view
			for id := range snapshot {
				delete(s.stale, id)
			}
		}
		s.mu.Unlock()
		return view, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.PollView), nil
}

// SetExpanded writes the expand flag through to the preference store and
// marks only that poll stale.
func (s *PollService) SetExpanded(ctx context.Context, pollID string, expanded bool) error {
	acting := s.session.Session().UserID
	if acting == "" {
		return nil
	}
	if err := s.prefs.SetExpand(ctx, acting, pollID, expanded); err != nil {
		return fmt.Errorf("persist expand flag: %w", err)
	}
	s.InvalidatePoll(pollID)
	return nil
}

func (s *PollService) InvalidatePoll(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stale[id] = struct{}{}
	s.gen++
}

func (s *PollService) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = ""
	s.view = nil
	s.stale = map[string]struct{}{}
	s.gen++
}

func (s *PollService) cached(key string) (*domain.PollView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view == nil || s.key != key || len(s.stale) > 0 {
		return nil, false
	}
	return s.view, true
}

// rebuildStale recomputes only the tagged polls, keeping every other derived
// poll from the previous view untouched.
func (s *PollService) rebuildStale(questions map[string]domain.Question, users map[string]domain.User,
	acting string, prefs map[string]bool, stale map[string]struct{}) *domain.PollView {
	s.mu.Lock()
	previous := s.view
	s.mu.Unlock()
	if previous == nil {
		// flushed while this derivation was in flight
		return BuildPollView(questions, users, acting, prefs, nil, s.logger)
	}

	entities := make(map[string]domain.Poll, len(previous.Entities))
	for id, poll := range previous.Entities {
		entities[id] = poll
	}
	totalUsers := len(users)
	for id := range stale {
		question, ok := questions[id]
		if !ok {
			// question vanished, drop it from the view entirely
			delete(entities, id)
			continue
		}
		entities[id] = buildPoll(question, users, totalUsers, acting, prefs, previous.Entities, s.logger)
	}

	order := make([]string, 0, len(previous.Order))
	for _, id := range previous.Order {
		if _, ok := entities[id]; ok {
			order = append(order, id)
		}
	}
	return &domain.PollView{Entities: entities, Order: order}
}

func (s *PollService) expandPrefs(ctx context.Context, acting string) (map[string]bool, error) {
	if acting == "" {
		return map[string]bool{}, nil
	}
	return s.prefs.Expand(ctx, acting)
}
