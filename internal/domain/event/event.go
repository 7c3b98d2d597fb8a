package event

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeAssignmentPosted Type = "assignment_posted"
	TypeAssignmentFailed Type = "assignment_failed"
	TypeRosterUpdated    Type = "roster_updated"
	TypePolicyChanged    Type = "policy_changed"
	TypeSelectorReset    Type = "selector_reset"
)

// Channel groups event types so the ops bridge subscribes once per domain.
type Channel string

const (
	ChannelAssignment Channel = "assignment"
	ChannelRoster     Channel = "roster"
)

var typeToChannel = map[Type]Channel{
	TypeAssignmentPosted: ChannelAssignment,
	TypeAssignmentFailed: ChannelAssignment,
	TypeRosterUpdated:    ChannelRoster,
	TypePolicyChanged:    ChannelRoster,
	TypeSelectorReset:    ChannelRoster,
}

// ChannelFor returns the domain channel for a given event type.
func ChannelFor(t Type) Channel { return typeToChannel[t] }

// Event carries identifiers only, not full state. Subscribers that need
// details fetch them from the owning scope.
type Event struct {
	Type      Type      `json:"type"`
	EntityID  uuid.UUID `json:"entity_id"`
	ChatID    int64     `json:"chat_id"`
	Timestamp time.Time `json:"timestamp"`
}

func New(eventType Type, entityID uuid.UUID, chatID int64) Event {
	return Event{
		Type:      eventType,
		EntityID:  entityID,
		ChatID:    chatID,
		Timestamp: time.Now().UTC(),
	}
}
