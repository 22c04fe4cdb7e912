package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/vncsmyrnk/pollview/internal/core/domain"
	"github.com/vncsmyrnk/pollview/internal/core/ports"
)

const prefKeyPrefix = "pollprefs:"

// PreferenceService persists the per-user expand flags under a user-scoped
// key. The flags are independent of the session: they survive logout and
// expiry, and never leak between identities.
type PreferenceService struct {
	kv     ports.KeyValueStore
	logger *log.Logger
}

func NewPreferenceService(kv ports.KeyValueStore, logger *log.Logger) *PreferenceService {
	if logger == nil {
		logger = log.Default()
	}
	return &PreferenceService{kv: kv, logger: logger}
}

func (s *PreferenceService) Expand(ctx context.Context, userID string) (map[string]bool, error) {
	if userID == "" {
		return map[string]bool{}, nil
	}
	raw, err := s.kv.Get(ctx, prefKeyPrefix+userID)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return map[string]bool{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read preferences: %w", err)
	}

	var prefs map[string]bool
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		s.logger.Printf("discarding corrupt preferences for %q: %v", userID, err)
		return map[string]bool{}, nil
	}
	if prefs == nil {
		prefs = map[string]bool{}
	}
	return prefs, nil
}

func (s *PreferenceService) SetExpand(ctx context.Context, userID, questionID string, expand bool) error {
	if userID == "" {
		return nil
	}
	prefs, err := s.Expand(ctx, userID)
	if err != nil {
		return err
	}
	prefs[questionID] = expand

	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := s.kv.Set(ctx, prefKeyPrefix+userID, string(raw)); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}
