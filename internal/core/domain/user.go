package domain

import (
	"maps"
	"slices"
)

type User struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	AvatarURL string            `json:"avatarURL,omitempty"`
	Answers   map[string]Option `json:"answers"`
	Questions []string          `json:"questions"`
}

func (u User) Clone() User {
	u.Answers = maps.Clone(u.Answers)
	u.Questions = slices.Clone(u.Questions)
	return u
}
