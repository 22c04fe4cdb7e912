package domain

import "errors"

var (
	ErrValidation       = errors.New("invalid input")
	ErrDuplicateVote    = errors.New("user has already voted on this question")
	ErrBusy             = errors.New("operation already in flight")
	ErrAuthFailed       = errors.New("authentication failed")
	ErrSuperseded       = errors.New("result superseded by a session change")
	ErrQuestionNotFound = errors.New("question not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrKeyNotFound      = errors.New("key not found")
)
