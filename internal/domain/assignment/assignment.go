package assignment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Policy selects which algorithm governs the next pick.
type Policy string

const (
	PolicyRandom     Policy = "random"
	PolicyRoundRobin Policy = "round_robin"
)

// Valid reports whether p is one of the supported policies.
func (p Policy) Valid() bool {
	return p == PolicyRandom || p == PolicyRoundRobin
}

// ParsePolicy maps external input (callback data, API params) to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "random":
		return PolicyRandom, nil
	case "round_robin", "round":
		return PolicyRoundRobin, nil
	default:
		return "", fmt.Errorf("unknown policy %q", s)
	}
}

// Assignment is one completed assignment round: who was chosen, for what,
// and where the result was posted.
type Assignment struct {
	ID          uuid.UUID `json:"id"`
	ChatID      int64     `json:"chat_id"`
	Assignees   []string  `json:"assignees"`
	Description string    `json:"description"`
	Destination string    `json:"destination"`
	Policy      Policy    `json:"policy"`
	CreatedAt   time.Time `json:"created_at"`
}

func New(chatID int64, assignees []string, description, destination string, policy Policy) Assignment {
	return Assignment{
		ID:          uuid.New(),
		ChatID:      chatID,
		Assignees:   assignees,
		Description: description,
		Destination: destination,
		Policy:      policy,
		CreatedAt:   time.Now().UTC(),
	}
}
