package domain

import (
	"slices"
	"time"
)

// Option identifies one of the two sides of a binary question.
type Option string

const (
	OptionOne Option = "optionOne"
	OptionTwo Option = "optionTwo"
)

func (o Option) Valid() bool {
	return o == OptionOne || o == OptionTwo
}

type Question struct {
	ID        string         `json:"id"`
	Author    string         `json:"author"`
	CreatedAt time.Time      `json:"created_at"`
	OptionOne QuestionOption `json:"optionOne"`
	OptionTwo QuestionOption `json:"optionTwo"`
}

type QuestionOption struct {
	Text  string   `json:"text"`
	Votes []string `json:"votes"`
}

func (o QuestionOption) HasVote(userID string) bool {
	return slices.Contains(o.Votes, userID)
}

// VotedOption reports which option, if any, the user voted for. A user id
// never appears in both vote sets; OptionOne wins if that invariant is broken.
func (q Question) VotedOption(userID string) (Option, bool) {
	if userID == "" {
		return "", false
	}
	if q.OptionOne.HasVote(userID) {
		return OptionOne, true
	}
	if q.OptionTwo.HasVote(userID) {
		return OptionTwo, true
	}
	return "", false
}

func (q Question) HasVoted(userID string) bool {
	_, ok := q.VotedOption(userID)
	return ok
}

func (q Question) Clone() Question {
	q.OptionOne.Votes = slices.Clone(q.OptionOne.Votes)
	q.OptionTwo.Votes = slices.Clone(q.OptionTwo.Votes)
	return q
}
