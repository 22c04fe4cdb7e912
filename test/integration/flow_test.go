package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/pollview/internal/core/domain"
)

func TestVoteAndDeriveFlow(t *testing.T) {
	repo, redisAddr := setupBackends(t)
	app := setupApp(t, repo, redisAddr)
	ctx := context.Background()

	require.NoError(t, app.Sessions.Login(ctx, "zoshikanlu", 5))

	before, err := app.Polls.Polls(ctx)
	require.NoError(t, err)
	target := "8xf0y6ziyjabvozdd253nd"
	require.False(t, before.Entities[target].Answered)

	require.NoError(t, app.State.Vote(ctx, "zoshikanlu", target, domain.OptionTwo))

	after, err := app.Polls.Polls(ctx)
	require.NoError(t, err)
	poll := after.Entities[target]
	assert.True(t, poll.Answered)
	assert.Equal(t, domain.OptionTwo, poll.SelectedAnswer)
	assert.Equal(t, before.Entities[target].OptionTwo.VoteCount+1, poll.OptionTwo.VoteCount)
	assert.Equal(t, before.Entities[target].OptionOne.VoteCount, poll.OptionOne.VoteCount)

	require.ErrorIs(t, app.State.Vote(ctx, "zoshikanlu", target, domain.OptionTwo), domain.ErrDuplicateVote)
}

func TestPreferencesSurviveLogout(t *testing.T) {
	repo, redisAddr := setupBackends(t)
	app := setupApp(t, repo, redisAddr)
	ctx := context.Background()

	require.NoError(t, app.Sessions.Login(ctx, "sarahedo", 5))
	require.NoError(t, app.Polls.SetExpanded(ctx, "8xf0y6ziyjabvozdd253nd", true))
	require.NoError(t, app.Sessions.Logout(ctx))

	require.NoError(t, app.Sessions.Login(ctx, "sarahedo", 5))
	view, err := app.Polls.Polls(ctx)
	require.NoError(t, err)
	assert.True(t, view.Entities["8xf0y6ziyjabvozdd253nd"].Expand, "expand flags are scoped by user id, not session")
}

func TestFreshLoadForcesLogoutAcrossReload(t *testing.T) {
	repo, redisAddr := setupBackends(t)
	ctx := context.Background()

	first := setupApp(t, repo, redisAddr)
	first.Marker.Mark() // in-app navigation happened in this process
	require.NoError(t, first.Sessions.Login(ctx, "sarahedo", 5))

	// a reload tears the process down; the marker does not survive it
	second := setupApp(t, repo, redisAddr)
	require.NoError(t, second.Sessions.Restore(ctx))

	assert.False(t, second.Sessions.Session().Authenticated(),
		"persisted identity without continuity marker is force-logged-out")
}

func TestContinuityMarkerKeepsSessionAlive(t *testing.T) {
	repo, redisAddr := setupBackends(t)
	ctx := context.Background()

	first := setupApp(t, repo, redisAddr)
	require.NoError(t, first.Sessions.Login(ctx, "sarahedo", 5))

	// same process: services rebuilt but the marker instance survived
	second := setupApp(t, repo, redisAddr)
	second.Marker.Mark()
	require.NoError(t, second.Sessions.Restore(ctx))

	assert.Equal(t, "sarahedo", second.Sessions.Session().UserID)
}

func TestSessionExpiresAcrossTick(t *testing.T) {
	repo, redisAddr := setupBackends(t)
	app := setupApp(t, repo, redisAddr)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// zero minutes puts the expiry at the login instant
	require.NoError(t, app.Sessions.Login(ctx, "sarahedo", 0))
	app.Sessions.Start(ctx)

	require.Eventually(t, func() bool {
		return !app.Sessions.Session().Authenticated()
	}, 2*time.Second, 5*time.Millisecond)
}

func TestNewQuestionAppearsInView(t *testing.T) {
	repo, redisAddr := setupBackends(t)
	app := setupApp(t, repo, redisAddr)
	ctx := context.Background()

	require.NoError(t, app.Sessions.Login(ctx, "tylermcginnis", 5))

	question, err := app.State.AddQuestion(ctx, "tylermcginnis", "Adopt pairing", "Keep solo work")
	require.NoError(t, err)

	view, err := app.Polls.Polls(ctx)
	require.NoError(t, err)
	require.Contains(t, view.Entities, question.ID)
	assert.Equal(t, question.ID, view.Order[0], "newest question leads the ordering")
	assert.False(t, view.Entities[question.ID].Answered)

	entries := app.Leaderboard.Leaderboard()
	for _, entry := range entries {
		if entry.User.ID == "tylermcginnis" {
			assert.Equal(t, 3, entry.Created)
		}
	}
}
