package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/pollview/internal/core/domain"
)

func scenarioData() (map[string]domain.Question, map[string]domain.User) {
	questions := map[string]domain.Question{
		"q1": {
			ID:        "q1",
			Author:    "sarah",
			CreatedAt: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
			OptionOne: domain.QuestionOption{Text: "A", Votes: []string{}},
			OptionTwo: domain.QuestionOption{Text: "B", Votes: []string{"sarah"}},
		},
	}
	users := map[string]domain.User{
		"sarah": {ID: "sarah", Name: "Sarah", Answers: map[string]domain.Option{"q1": domain.OptionTwo}},
		"tyler": {ID: "tyler", Name: "Tyler", Answers: map[string]domain.Option{}},
	}
	return questions, users
}

func TestBuildPollViewScenario(t *testing.T) {
	questions, users := scenarioData()

	view := BuildPollView(questions, users, "sarah", nil, nil, nil)

	poll, ok := view.Entities["q1"]
	require.True(t, ok)
	assert.True(t, poll.Answered)
	assert.Equal(t, domain.OptionTwo, poll.SelectedAnswer)
	assert.Equal(t, domain.PollOptionStats{VoteCount: 0, Percentage: "0%"}, poll.OptionOne)
	assert.Equal(t, domain.PollOptionStats{VoteCount: 1, Percentage: "50%"}, poll.OptionTwo)
}

func TestBuildPollViewAnonymous(t *testing.T) {
	questions, users := scenarioData()

	view := BuildPollView(questions, users, "", nil, nil, nil)

	poll := view.Entities["q1"]
	assert.False(t, poll.Answered)
	assert.Empty(t, poll.SelectedAnswer)
}

func TestBuildPollViewZeroUsers(t *testing.T) {
	questions, _ := scenarioData()

	view := BuildPollView(questions, map[string]domain.User{}, "", nil, nil, nil)

	poll := view.Entities["q1"]
	assert.Equal(t, "0%", poll.OptionOne.Percentage)
	assert.Equal(t, "0%", poll.OptionTwo.Percentage)
	assert.Zero(t, poll.OptionTwo.VoteCount, "vote by a now-unknown user must be skipped")
}

func TestBuildPollViewSkipsOrphanVotes(t *testing.T) {
	questions, users := scenarioData()
	q := questions["q1"]
	q.OptionOne.Votes = []string{"ghost"}
	questions["q1"] = q

	view := BuildPollView(questions, users, "sarah", nil, nil, nil)

	assert.Zero(t, view.Entities["q1"].OptionOne.VoteCount)
	assert.Equal(t, 1, view.Entities["q1"].OptionTwo.VoteCount)
}

func TestBuildPollViewDeterministic(t *testing.T) {
	questions, users := scenarioData()

	first := BuildPollView(questions, users, "sarah", nil, nil, nil)
	second := BuildPollView(questions, users, "sarah", nil, nil, nil)

	assert.Equal(t, first, second)
}

func TestBuildPollViewOrdering(t *testing.T) {
	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	questions := map[string]domain.Question{
		"older":  {ID: "older", CreatedAt: base},
		"newest": {ID: "newest", CreatedAt: base.Add(2 * time.Hour)},
		"tie-b":  {ID: "tie-b", CreatedAt: base.Add(time.Hour)},
		"tie-a":  {ID: "tie-a", CreatedAt: base.Add(time.Hour)},
	}

	view := BuildPollView(questions, map[string]domain.User{}, "", nil, nil, nil)

	assert.Equal(t, []string{"newest", "tie-a", "tie-b", "older"}, view.Order)
}

func TestBuildPollViewExpandFallsBackToPrior(t *testing.T) {
	questions, users := scenarioData()
	prior := map[string]domain.Poll{"q1": {Expand: true}}

	view := BuildPollView(questions, users, "sarah", nil, prior, nil)
	assert.True(t, view.Entities["q1"].Expand, "prior expand carries over a rebuild")

	view = BuildPollView(questions, users, "sarah", map[string]bool{"q1": false}, prior, nil)
	assert.False(t, view.Entities["q1"].Expand, "explicit preference wins over prior")

	view = BuildPollView(questions, users, "sarah", nil, nil, nil)
	assert.False(t, view.Entities["q1"].Expand, "defaults to collapsed")
}
