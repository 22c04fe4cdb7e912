package integration

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	rediskv "github.com/vncsmyrnk/pollview/internal/adapters/persistence/redis"
	"github.com/vncsmyrnk/pollview/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/pollview/internal/core/services"
)

// App wires the full core against a shared repository and redis instance.
// Building a second App over the same backends simulates a page reload: a
// new client process with fresh in-memory state but the same durable keys.
type App struct {
	Repo        *memory.Repository
	KV          *rediskv.Store
	Marker      *services.ContinuityMarker
	Sessions    *services.SessionService
	State       *services.StateService
	Preferences *services.PreferenceService
	Polls       *services.PollService
	Leaderboard *services.LeaderboardService
}

func setupApp(t *testing.T, repo *memory.Repository, redisAddr string) *App {
	t.Helper()

	kv, err := rediskv.NewStore("redis://" + redisAddr)
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	marker := &services.ContinuityMarker{}
	sessions := services.NewSessionService(repo, kv, marker, 5*time.Millisecond, nil)
	state := services.NewStateService(repo, sessions)
	preferences := services.NewPreferenceService(kv, nil)
	polls := services.NewPollService(state, sessions, preferences, nil)
	state.SetInvalidator(polls)
	sessions.SetInvalidator(polls)

	require.NoError(t, state.Load(context.Background()))

	return &App{
		Repo:        repo,
		KV:          kv,
		Marker:      marker,
		Sessions:    sessions,
		State:       state,
		Preferences: preferences,
		Polls:       polls,
		Leaderboard: services.NewLeaderboardService(state),
	}
}

func setupBackends(t *testing.T) (*memory.Repository, string) {
	t.Helper()
	return memory.New(), miniredis.RunT(t).Addr()
}
