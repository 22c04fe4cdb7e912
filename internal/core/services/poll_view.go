package services

import (
	"log"
	"math"
	"sort"
	"strconv"

	"github.com/vncsmyrnk/pollview/internal/core/domain"
)

// BuildPollView joins questions, users and the acting identity into the
// derived poll view. Pure: identical inputs yield identical output, nothing
// is mutated. Vote ids that reference no known user are skipped and logged,
// never an error, since slice reads and repository writes can race.
func BuildPollView(questions map[string]domain.Question, users map[string]domain.User,
	actingUserID string, prefs map[string]bool, prior map[string]domain.Poll,
	logger *log.Logger) *domain.PollView {
	if logger == nil {
		logger = log.Default()
	}
	totalUsers := len(users)

	view := &domain.PollView{
		Entities: make(map[string]domain.Poll, len(questions)),
		Order:    make([]string, 0, len(questions)),
	}
	for id, question := range questions {
		view.Entities[id] = buildPoll(question, users, totalUsers, actingUserID, prefs, prior, logger)
		view.Order = append(view.Order, id)
	}

	sort.Slice(view.Order, func(i, j int) bool {
		a, b := view.Entities[view.Order[i]].Question, view.Entities[view.Order[j]].Question
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return view
}

func buildPoll(question domain.Question, users map[string]domain.User, totalUsers int,
	actingUserID string, prefs map[string]bool, prior map[string]domain.Poll,
	logger *log.Logger) domain.Poll {
	selected, answered := question.VotedOption(actingUserID)

	expand := false
	if explicit, ok := prefs[question.ID]; ok {
		expand = explicit
	} else if previous, ok := prior[question.ID]; ok {
		// carry the previous flag so a rebuild does not collapse open polls
		expand = previous.Expand
	}

	return domain.Poll{
		Question:       question,
		Expand:         expand,
		Answered:       answered,
		SelectedAnswer: selected,
		OptionOne:      optionStats(question, question.OptionOne, users, totalUsers, logger),
		OptionTwo:      optionStats(question, question.OptionTwo, users, totalUsers, logger),
	}
}

func optionStats(question domain.Question, option domain.QuestionOption,
	users map[string]domain.User, totalUsers int, logger *log.Logger) domain.PollOptionStats {
	count := 0
	for _, voter := range option.Votes {
		if _, ok := users[voter]; !ok {
			logger.Printf("skipping vote by unknown user %q on question %q", voter, question.ID)
			continue
		}
		count++
	}
	return domain.PollOptionStats{
		VoteCount:  count,
		Percentage: percentage(count, totalUsers),
	}
}

func percentage(votes, total int) string {
	if total <= 0 {
		return "0%"
	}
	return strconv.Itoa(int(math.Round(float64(votes)*100/float64(total)))) + "%"
}
