package selector

import (
	"math/rand"

	"github.com/MaximMukhametov/assign-bot/internal/domain/assignment"
)

// strategyFunc is a pure selection step: given the full roster, the available
// subset, the requested count, and the incoming cursor, it returns the
// selected items and the outgoing cursor. Strategies hold no state of their
// own; the engine owns the cursor.
type strategyFunc func(collection, available []string, count, cursor int) (selected []string, next int)

// strategies is the closed policy dispatch table. Adding a policy means
// adding a constant in domain/assignment and one entry here.
var strategies = map[assignment.Policy]strategyFunc{
	assignment.PolicyRandom:     selectRandom,
	assignment.PolicyRoundRobin: selectRoundRobin,
}

// selectRandom draws min(count, len(available)) distinct items uniformly
// without replacement via a partial Fisher–Yates shuffle over a copy of
// available. The cursor passes through unchanged: random carries no state.
func selectRandom(_, available []string, count, cursor int) ([]string, int) {
	k := min(count, len(available))

	pool := append([]string(nil), available...)
	for i := 0; i < k; i++ {
		j := i + rand.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k], cursor
}

// selectRoundRobin advances the cursor over the full roster order, skipping
// entries absent from available, and collects up to count matches, wrapping
// past the end. The sweep is bounded to 2*len(collection) candidate advances
// so a sparse available subset cannot loop forever; on exhaustion the partial
// result is returned as-is. When the requested count is reached the loop has
// just selected, so the cursor rests on the last selected roster index.
func selectRoundRobin(collection, available []string, count, cursor int) ([]string, int) {
	if len(collection) == 0 {
		return nil, cursor
	}

	want := min(count, len(available))
	availableSet := make(map[string]struct{}, len(available))
	for _, item := range available {
		availableSet[item] = struct{}{}
	}

	var selected []string
	maxAttempts := 2 * len(collection)
	for attempts := 0; len(selected) < want && attempts < maxAttempts; attempts++ {
		cursor = (cursor + 1) % len(collection)
		candidate := collection[cursor]
		if _, ok := availableSet[candidate]; ok {
			selected = append(selected, candidate)
		}
	}
	return selected, cursor
}
