package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/pollview/internal/core/domain"
)

func TestLeaderboardOrdering(t *testing.T) {
	state := &fakeState{
		users: map[string]domain.User{
			"sarah": {
				ID:        "sarah",
				Answers:   map[string]domain.Option{"q1": domain.OptionOne, "q2": domain.OptionTwo},
				Questions: []string{"q1"},
			},
			"tyler": {
				ID:      "tyler",
				Answers: map[string]domain.Option{"q1": domain.OptionOne},
			},
			"zenobia": {
				ID:      "zenobia",
				Answers: map[string]domain.Option{"q2": domain.OptionOne},
			},
		},
	}
	service := NewLeaderboardService(state)

	entries := service.Leaderboard()
	require.Len(t, entries, 3)

	assert.Equal(t, "sarah", entries[0].User.ID)
	assert.Equal(t, 3, entries[0].Score)
	assert.Equal(t, 2, entries[0].Answered)
	assert.Equal(t, 1, entries[0].Created)

	// equal scores fall back to id order
	assert.Equal(t, "tyler", entries[1].User.ID)
	assert.Equal(t, "zenobia", entries[2].User.ID)
}
