package memory

import (
	"sync"

	"github.com/MaximMukhametov/assign-bot/internal/domain/assignment"
	portscope "github.com/MaximMukhametov/assign-bot/internal/port/scope"
	portselector "github.com/MaximMukhametov/assign-bot/internal/port/selector"
	"github.com/MaximMukhametov/assign-bot/internal/selector"
)

var _ portscope.Store = (*Store)(nil)

// Store holds per-chat selection scopes for the process lifetime. State is
// in-memory only; a restart starts every chat from a clean scope.
type Store struct {
	defaultPolicy assignment.Policy

	mu     sync.RWMutex
	scopes map[int64]*chatScope
}

func NewStore(defaultPolicy assignment.Policy) *Store {
	return &Store{
		defaultPolicy: defaultPolicy,
		scopes:        make(map[int64]*chatScope),
	}
}

// Scope returns the chat's scope, creating it on first access.
func (s *Store) Scope(chatID int64) portscope.Scope {
	s.mu.RLock()
	sc, ok := s.scopes[chatID]
	s.mu.RUnlock()
	if ok {
		return sc
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sc, ok = s.scopes[chatID]; !ok {
		sc = &chatScope{engine: selector.New(s.defaultPolicy)}
		s.scopes[chatID] = sc
	}
	return sc
}

// Info returns the engine snapshot for a chat without creating a scope.
func (s *Store) Info(chatID int64) (selector.Info, bool) {
	s.mu.RLock()
	sc, ok := s.scopes[chatID]
	s.mu.RUnlock()
	if !ok {
		return selector.Info{}, false
	}

	var info selector.Info
	sc.Do(func(eng portselector.Engine) { info = eng.Info() })
	return info, true
}

// chatScope serializes all engine access for one chat with its own mutex, so
// concurrent updates for the same chat queue up while other chats proceed.
type chatScope struct {
	mu     sync.Mutex
	engine *selector.Engine
}

func (c *chatScope) Do(fn func(eng portselector.Engine)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.engine)
}
