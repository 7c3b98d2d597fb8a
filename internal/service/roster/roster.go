// Package roster manages per-chat participant configuration.
package roster

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/MaximMukhametov/assign-bot/internal/domain/event"
	domainroster "github.com/MaximMukhametov/assign-bot/internal/domain/roster"
	"github.com/MaximMukhametov/assign-bot/internal/observe"
	porteventbus "github.com/MaximMukhametov/assign-bot/internal/port/eventbus"
	portscope "github.com/MaximMukhametov/assign-bot/internal/port/scope"
	portselector "github.com/MaximMukhametov/assign-bot/internal/port/selector"
)

// ErrNoUsernames is returned when participant input parses to nothing.
var ErrNoUsernames = errors.New("no usernames recognized")

// Service owns roster configuration per chat.
// [SRP] Configuration only; selection lives in the assigner service.
type Service struct {
	store    portscope.Store
	defaults []string
	bus      porteventbus.EventBus
	metrics  *observe.Metrics
}

func NewService(store portscope.Store, defaults []string, bus porteventbus.EventBus, metrics *observe.Metrics) *Service {
	return &Service{store: store, defaults: defaults, bus: bus, metrics: metrics}
}

// Configure parses raw participant input and replaces the chat's roster.
// Replacing the roster resets any in-flight round-robin cycle.
func (s *Service) Configure(ctx context.Context, chatID int64, raw string) ([]string, error) {
	usernames := domainroster.ParseUsernames(raw)
	if len(usernames) == 0 {
		return nil, ErrNoUsernames
	}

	s.store.Scope(chatID).Do(func(eng portselector.Engine) {
		eng.SetCollection(usernames)
	})
	s.metrics.RosterSize.WithLabelValues(strconv.FormatInt(chatID, 10)).Set(float64(len(usernames)))

	if err := s.bus.Publish(ctx, event.New(event.TypeRosterUpdated, uuid.Nil, chatID)); err != nil {
		slog.ErrorContext(ctx, "failed to publish RosterUpdated event", "chat_id", chatID, "error", err)
	}

	return usernames, nil
}

// Roster returns the chat's configured participants. An unconfigured chat is
// seeded with the default roster; seeded reports whether that happened so
// the conversational layer can announce it.
func (s *Service) Roster(ctx context.Context, chatID int64) (usernames []string, seeded bool) {
	s.store.Scope(chatID).Do(func(eng portselector.Engine) {
		usernames = eng.Collection()
		if len(usernames) == 0 && len(s.defaults) > 0 {
			eng.SetCollection(s.defaults)
			usernames = eng.Collection()
			seeded = true
		}
	})

	if seeded {
		s.metrics.RosterSize.WithLabelValues(strconv.FormatInt(chatID, 10)).Set(float64(len(usernames)))
		if err := s.bus.Publish(ctx, event.New(event.TypeRosterUpdated, uuid.Nil, chatID)); err != nil {
			slog.ErrorContext(ctx, "failed to publish RosterUpdated event", "chat_id", chatID, "error", err)
		}
	}
	return usernames, seeded
}

// ResetCycle clears the chat's selection state so the next round-robin pick
// starts a fresh sweep, e.g. at the start of a new rotation period.
func (s *Service) ResetCycle(ctx context.Context, chatID int64) {
	s.store.Scope(chatID).Do(func(eng portselector.Engine) {
		eng.ResetState()
	})
	if err := s.bus.Publish(ctx, event.New(event.TypeSelectorReset, uuid.Nil, chatID)); err != nil {
		slog.ErrorContext(ctx, "failed to publish SelectorReset event", "chat_id", chatID, "error", err)
	}
}
