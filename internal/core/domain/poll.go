package domain

// Poll is the derived, non-authoritative view of a question joined with
// aggregate vote stats and the acting user's relationship to it. It is never
// stored; the poll view cache rebuilds it from questions, users and session.
type Poll struct {
	Question       Question        `json:"question"`
	Expand         bool            `json:"expand"`
	Answered       bool            `json:"answered"`
	SelectedAnswer Option          `json:"selected_answer,omitempty"`
	OptionOne      PollOptionStats `json:"optionOne"`
	OptionTwo      PollOptionStats `json:"optionTwo"`
}

type PollOptionStats struct {
	VoteCount  int    `json:"vote_count"`
	Percentage string `json:"percentage"`
}

// PollView maps question ids to polls. Order lists the ids by question
// creation time descending, ties broken by ascending id.
type PollView struct {
	Entities map[string]Poll `json:"entities"`
	Order    []string        `json:"order"`
}

type LeaderboardEntry struct {
	User     User `json:"user"`
	Answered int  `json:"answered"`
	Created  int  `json:"created"`
	Score    int  `json:"score"`
}
