// Package selector implements the participant-selection engine: it holds one
// roster and one active policy per scope and picks N participants from an
// available subset under that policy.
package selector

import (
	"errors"
	"fmt"

	"github.com/MaximMukhametov/assign-bot/internal/domain/assignment"
)

var (
	// ErrItemNotInRoster is returned by SelectFromAvailable when the
	// available subset references an identifier outside the current roster.
	// Recoverable: callers filter to the valid subset and retry.
	ErrItemNotInRoster = errors.New("item not in roster")

	// ErrUnsupportedPolicy is returned when a policy has no registered
	// strategy. A configuration defect, not retried.
	ErrUnsupportedPolicy = errors.New("unsupported selection policy")
)

// cursorUnset marks round-robin state as "no pick made yet".
const cursorUnset = -1

// Engine selects items from a roster under the active policy.
//
// Round-robin state is a single explicit cursor (index of the last selected
// roster entry), threaded through the strategy function on every call; no
// hidden state lives inside the strategies themselves. The cursor resets
// whenever the roster is replaced or the policy changes.
//
// An Engine is not safe for concurrent use; the owning scope serializes
// access (see adapter/memory.Store).
type Engine struct {
	collection []string
	policy     assignment.Policy
	cursor     int
}

// Info is a read-only diagnostic snapshot of an Engine.
type Info struct {
	RosterSize int               `json:"roster_size"`
	Policy     assignment.Policy `json:"policy"`
}

// New returns an Engine with an empty roster and the given initial policy.
// An invalid policy falls back to random; SetPolicy validates explicit changes.
func New(policy assignment.Policy) *Engine {
	if !policy.Valid() {
		policy = assignment.PolicyRandom
	}
	return &Engine{policy: policy, cursor: cursorUnset}
}

// SetCollection replaces the roster and unconditionally resets selection
// state: any round-robin position into the old roster is meaningless against
// the new one. An empty collection is accepted; later selections return
// empty results.
func (e *Engine) SetCollection(items []string) {
	e.collection = append([]string(nil), items...)
	e.cursor = cursorUnset
}

// Collection returns a copy of the current roster.
func (e *Engine) Collection() []string {
	return append([]string(nil), e.collection...)
}

// SetPolicy switches the active policy. Switching to a different policy
// resets selection state (the policies are not state-compatible); setting
// the already-active policy is a no-op and keeps an in-flight round-robin
// cycle intact.
func (e *Engine) SetPolicy(policy assignment.Policy) error {
	if _, ok := strategies[policy]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedPolicy, policy)
	}
	if policy == e.policy {
		return nil
	}
	e.policy = policy
	e.cursor = cursorUnset
	return nil
}

// Select picks count items from the entire roster.
func (e *Engine) Select(count int) ([]string, error) {
	return e.SelectFromAvailable(e.collection, count)
}

// SelectFromAvailable picks up to count items from the available subset
// under the active policy. Every item of available must be a member of the
// roster; a violation fails with ErrItemNotInRoster and leaves state
// untouched. An empty subset or non-positive count yields an empty result.
// The result length is min(count, len(available)), or fewer for round-robin
// when the bounded roster sweep is exhausted first.
func (e *Engine) SelectFromAvailable(available []string, count int) ([]string, error) {
	if len(available) == 0 || count <= 0 {
		return nil, nil
	}

	inRoster := make(map[string]struct{}, len(e.collection))
	for _, item := range e.collection {
		inRoster[item] = struct{}{}
	}

	// Validate membership and collapse duplicates in one pass; a duplicated
	// available entry must not yield a duplicated selection.
	seen := make(map[string]struct{}, len(available))
	subset := make([]string, 0, len(available))
	for _, item := range available {
		if _, ok := inRoster[item]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrItemNotInRoster, item)
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		subset = append(subset, item)
	}

	strat, ok := strategies[e.policy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPolicy, e.policy)
	}

	selected, next := strat(e.collection, subset, count, e.cursor)
	e.cursor = next
	return selected, nil
}

// ResetState clears selection state without touching the roster or policy,
// restarting the round-robin cycle from the top of the roster.
func (e *Engine) ResetState() {
	e.cursor = cursorUnset
}

// Info returns a diagnostic snapshot of the engine.
func (e *Engine) Info() Info {
	return Info{RosterSize: len(e.collection), Policy: e.policy}
}
