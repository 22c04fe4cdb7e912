package memory

import (
	"time"

	"github.com/vncsmyrnk/pollview/internal/core/domain"
)

// seedData returns the starter roster and questions. Vote sets and answer
// maps are kept in bidirectional agreement by construction.
func seedData() (map[string]domain.Question, map[string]domain.User) {
	base := time.Date(2024, time.November, 4, 9, 0, 0, 0, time.UTC)

	questions := map[string]domain.Question{
		"8xf0y6ziyjabvozdd253nd": {
			ID:        "8xf0y6ziyjabvozdd253nd",
			Author:    "sarahedo",
			CreatedAt: base,
			OptionOne: domain.QuestionOption{Text: "Build our new application with JavaScript", Votes: []string{"sarahedo"}},
			OptionTwo: domain.QuestionOption{Text: "Build our new application with TypeScript", Votes: []string{}},
		},
		"6ni6ok3ym7mf1p33lnez": {
			ID:        "6ni6ok3ym7mf1p33lnez",
			Author:    "johndoe",
			CreatedAt: base.Add(26 * time.Hour),
			OptionOne: domain.QuestionOption{Text: "Hire more frontend developers", Votes: []string{"johndoe", "sarahedo"}},
			OptionTwo: domain.QuestionOption{Text: "Hire more backend developers", Votes: []string{}},
		},
		"am8ehyc8byjqgar0jgpub9": {
			ID:        "am8ehyc8byjqgar0jgpub9",
			Author:    "sarahedo",
			CreatedAt: base.Add(50 * time.Hour),
			OptionOne: domain.QuestionOption{Text: "Conduct a release retrospective every sprint", Votes: []string{}},
			OptionTwo: domain.QuestionOption{Text: "Conduct a release retrospective once a month", Votes: []string{"sarahedo"}},
		},
		"loxhs1bqm25b708cmbf3g": {
			ID:        "loxhs1bqm25b708cmbf3g",
			Author:    "tylermcginnis",
			CreatedAt: base.Add(74 * time.Hour),
			OptionOne: domain.QuestionOption{Text: "Deploy on Fridays", Votes: []string{"sarahedo"}},
			OptionTwo: domain.QuestionOption{Text: "Freeze deploys on Fridays", Votes: []string{}},
		},
		"vthrdm985a262al8qx3do": {
			ID:        "vthrdm985a262al8qx3do",
			Author:    "tylermcginnis",
			CreatedAt: base.Add(98 * time.Hour),
			OptionOne: domain.QuestionOption{Text: "Keep the daily standup at 15 minutes", Votes: []string{"tylermcginnis"}},
			OptionTwo: domain.QuestionOption{Text: "Replace the daily standup with async updates", Votes: []string{"johndoe"}},
		},
		"xj352vofupe1dqz9emx13r": {
			ID:        "xj352vofupe1dqz9emx13r",
			Author:    "johndoe",
			CreatedAt: base.Add(122 * time.Hour),
			OptionOne: domain.QuestionOption{Text: "Adopt trunk-based development", Votes: []string{"johndoe", "zoshikanlu"}},
			OptionTwo: domain.QuestionOption{Text: "Keep long-lived feature branches", Votes: []string{"tylermcginnis"}},
		},
	}

	users := map[string]domain.User{
		"sarahedo": {
			ID:        "sarahedo",
			Name:      "Sarah Edo",
			AvatarURL: "/avatars/sarah.png",
			Answers: map[string]domain.Option{
				"8xf0y6ziyjabvozdd253nd": domain.OptionOne,
				"6ni6ok3ym7mf1p33lnez":   domain.OptionOne,
				"am8ehyc8byjqgar0jgpub9": domain.OptionTwo,
				"loxhs1bqm25b708cmbf3g":  domain.OptionOne,
			},
			Questions: []string{"8xf0y6ziyjabvozdd253nd", "am8ehyc8byjqgar0jgpub9"},
		},
		"tylermcginnis": {
			ID:        "tylermcginnis",
			Name:      "Tyler McGinnis",
			AvatarURL: "/avatars/tyler.png",
			Answers: map[string]domain.Option{
				"vthrdm985a262al8qx3do":  domain.OptionOne,
				"xj352vofupe1dqz9emx13r": domain.OptionTwo,
			},
			Questions: []string{"loxhs1bqm25b708cmbf3g", "vthrdm985a262al8qx3do"},
		},
		"johndoe": {
			ID:        "johndoe",
			Name:      "John Doe",
			AvatarURL: "/avatars/john.png",
			Answers: map[string]domain.Option{
				"6ni6ok3ym7mf1p33lnez":   domain.OptionOne,
				"vthrdm985a262al8qx3do":  domain.OptionTwo,
				"xj352vofupe1dqz9emx13r": domain.OptionOne,
			},
			Questions: []string{"6ni6ok3ym7mf1p33lnez", "xj352vofupe1dqz9emx13r"},
		},
		"zoshikanlu": {
			ID:        "zoshikanlu",
			Name:      "Zenobia Oshikanlu",
			AvatarURL: "/avatars/zenobia.png",
			Answers: map[string]domain.Option{
				"xj352vofupe1dqz9emx13r": domain.OptionOne,
			},
			Questions: []string{},
		},
	}

	return questions, users
}
