package selector

import (
	"github.com/MaximMukhametov/assign-bot/internal/domain/assignment"
	"github.com/MaximMukhametov/assign-bot/internal/selector"
)

// Engine is the selection engine contract the assigner depends on.
// [DIP] The orchestrator depends on this abstraction, not on the concrete
// engine, so unit tests can drive the degrade-and-retry path with a mock.
type Engine interface {
	SetCollection(items []string)
	Collection() []string
	SetPolicy(policy assignment.Policy) error
	Select(count int) ([]string, error)
	SelectFromAvailable(available []string, count int) ([]string, error)
	ResetState()
	Info() selector.Info
}
