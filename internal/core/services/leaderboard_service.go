package services

import (
	"sort"

	"github.com/vncsmyrnk/pollview/internal/core/domain"
	"github.com/vncsmyrnk/pollview/internal/core/ports"
)

// LeaderboardService ranks users by answered plus authored questions.
type LeaderboardService struct {
	state ports.StateReader
}

func NewLeaderboardService(state ports.StateReader) *LeaderboardService {
	return &LeaderboardService{state: state}
}

func (s *LeaderboardService) Leaderboard() []domain.LeaderboardEntry {
	users, _ := s.state.Users()

	entries := make([]domain.LeaderboardEntry, 0, len(users))
	for _, user := range users {
		entry := domain.LeaderboardEntry{
			User:     user,
			Answered: len(user.Answers),
			Created:  len(user.Questions),
		}
		entry.Score = entry.Answered + entry.Created
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].User.ID < entries[j].User.ID
	})
	return entries
}
