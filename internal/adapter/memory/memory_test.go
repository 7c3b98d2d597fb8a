package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaximMukhametov/assign-bot/internal/adapter/memory"
	"github.com/MaximMukhametov/assign-bot/internal/domain/assignment"
	"github.com/MaximMukhametov/assign-bot/internal/domain/event"
	portselector "github.com/MaximMukhametov/assign-bot/internal/port/selector"
)

// ── Store ─────────────────────────────────────────────────────────────────────

func TestStore_ScopeCreatedOnFirstAccess(t *testing.T) {
	store := memory.NewStore(assignment.PolicyRandom)

	_, ok := store.Info(1)
	assert.False(t, ok, "no scope before first access")

	store.Scope(1).Do(func(eng portselector.Engine) {
		eng.SetCollection([]string{"@a", "@b"})
	})

	info, ok := store.Info(1)
	require.True(t, ok)
	assert.Equal(t, 2, info.RosterSize)
	assert.Equal(t, assignment.PolicyRandom, info.Policy)
}

func TestStore_ScopesAreIndependent(t *testing.T) {
	store := memory.NewStore(assignment.PolicyRoundRobin)

	store.Scope(1).Do(func(eng portselector.Engine) {
		eng.SetCollection([]string{"@a", "@b"})
		_, err := eng.Select(1)
		require.NoError(t, err)
	})
	store.Scope(2).Do(func(eng portselector.Engine) {
		eng.SetCollection([]string{"@a", "@b"})
	})

	// Chat 2's cursor is untouched by chat 1's pick.
	store.Scope(2).Do(func(eng portselector.Engine) {
		got, err := eng.Select(1)
		require.NoError(t, err)
		assert.Equal(t, []string{"@a"}, got)
	})
}

func TestStore_ConcurrentSameScopeSerializes(t *testing.T) {
	store := memory.NewStore(assignment.PolicyRoundRobin)
	store.Scope(1).Do(func(eng portselector.Engine) {
		eng.SetCollection([]string{"@a", "@b", "@c", "@d"})
	})

	const picks = 100
	results := make(chan string, picks)
	var wg sync.WaitGroup
	for n := 0; n < picks; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Scope(1).Do(func(eng portselector.Engine) {
				got, err := eng.Select(1)
				if err == nil && len(got) == 1 {
					results <- got[0]
				}
			})
		}()
	}
	wg.Wait()
	close(results)

	// 100 serialized picks over 4 members distribute exactly evenly.
	counts := make(map[string]int)
	for r := range results {
		counts[r]++
	}
	for _, member := range []string{"@a", "@b", "@c", "@d"} {
		assert.Equal(t, picks/4, counts[member], "member %s", member)
	}
}

// ── EventBus ──────────────────────────────────────────────────────────────────

func TestEventBus_PublishFansOutPerChannel(t *testing.T) {
	bus := memory.NewEventBus()
	ctx := context.Background()

	var assignments, rosters []event.Event
	_, err := bus.Subscribe(ctx, event.ChannelAssignment, func(_ context.Context, e event.Event) {
		assignments = append(assignments, e)
	})
	require.NoError(t, err)
	_, err = bus.Subscribe(ctx, event.ChannelRoster, func(_ context.Context, e event.Event) {
		rosters = append(rosters, e)
	})
	require.NoError(t, err)

	require.NoError(t, bus.Publish(ctx, event.New(event.TypeAssignmentPosted, uuid.New(), 1)))
	require.NoError(t, bus.Publish(ctx, event.New(event.TypeRosterUpdated, uuid.Nil, 1)))

	assert.Len(t, assignments, 1)
	assert.Len(t, rosters, 1)
	assert.Equal(t, event.TypeAssignmentPosted, assignments[0].Type)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := memory.NewEventBus()
	ctx := context.Background()

	var seen int
	sub, err := bus.Subscribe(ctx, event.ChannelAssignment, func(_ context.Context, _ event.Event) {
		seen++
	})
	require.NoError(t, err)

	require.NoError(t, bus.Publish(ctx, event.New(event.TypeAssignmentPosted, uuid.New(), 1)))
	sub.Unsubscribe()
	require.NoError(t, bus.Publish(ctx, event.New(event.TypeAssignmentPosted, uuid.New(), 1)))

	assert.Equal(t, 1, seen)
}
