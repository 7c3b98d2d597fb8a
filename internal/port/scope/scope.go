package scope

import (
	portselector "github.com/MaximMukhametov/assign-bot/internal/port/selector"
	"github.com/MaximMukhametov/assign-bot/internal/selector"
)

// Scope is one chat's selection state. Do runs fn with exclusive access to
// the scope's engine: round-robin cursor advancement is not safe under
// interleaved calls, so all engine use for one chat funnels through here.
// Distinct scopes are independent and run in parallel.
type Scope interface {
	Do(fn func(eng portselector.Engine))
}

// Store maps chat ids to their scopes, creating a scope on first access.
type Store interface {
	Scope(chatID int64) Scope

	// Info returns the engine snapshot for a chat, reporting false when the
	// chat has no scope yet. Read-only; used by the diagnostics endpoint.
	Info(chatID int64) (selector.Info, bool)
}
