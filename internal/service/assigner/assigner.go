// Package assigner orchestrates one assignment round: it validates the
// active subset against the roster, drives the selection engine, and posts
// the result with its completion poll.
package assigner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MaximMukhametov/assign-bot/internal/domain/assignment"
	"github.com/MaximMukhametov/assign-bot/internal/domain/event"
	domainroster "github.com/MaximMukhametov/assign-bot/internal/domain/roster"
	"github.com/MaximMukhametov/assign-bot/internal/observe"
	porteventbus "github.com/MaximMukhametov/assign-bot/internal/port/eventbus"
	portnotifier "github.com/MaximMukhametov/assign-bot/internal/port/notifier"
	portscope "github.com/MaximMukhametov/assign-bot/internal/port/scope"
	portselector "github.com/MaximMukhametov/assign-bot/internal/port/selector"
	"github.com/MaximMukhametov/assign-bot/internal/selector"
)

// ErrNoAssignees is returned by Assign when selection produced nobody to
// notify. An expected outcome (whole team excluded), surfaced as a sentinel
// so the conversational layer can phrase it, not a failure.
var ErrNoAssignees = errors.New("no assignees selected")

// PollQuestion and PollOptionDone shape the completion-tracking poll posted
// under every assignment message.
const (
	PollQuestion   = "Mark completion"
	PollOptionDone = "✔️ Done"
)

// Service is the assignment orchestrator.
// [SRP] Selection and delivery of one round; roster configuration lives in
// the roster service, conversational steps in the transport.
type Service struct {
	store   portscope.Store
	poster  portnotifier.Poster
	bus     porteventbus.EventBus
	metrics *observe.Metrics
}

func NewService(store portscope.Store, poster portnotifier.Poster, bus porteventbus.EventBus, metrics *observe.Metrics) *Service {
	return &Service{store: store, poster: poster, bus: bus, metrics: metrics}
}

// SelectAssignees picks up to count assignees from active under the given
// policy, against the engine's current roster.
//
// A stale active set (entries no longer in the roster) degrades instead of
// failing: the set is filtered to the roster given in rosterCfg, the engine's
// collection is re-synchronized, and the selection retried once with a
// re-clamped count. A multi-step assignment dialog must never abort because
// the roster changed underneath it.
//
// The caller owns the engine's scope lock for the duration of the call.
func (s *Service) SelectAssignees(ctx context.Context, eng portselector.Engine, policy assignment.Policy, active, rosterCfg []string, count int) ([]string, error) {
	if len(active) == 0 {
		s.metrics.Selections.WithLabelValues(string(policy), observe.OutcomeEmpty).Inc()
		return nil, nil
	}
	if count > len(active) {
		count = len(active)
	}

	if err := eng.SetPolicy(policy); err != nil {
		s.metrics.Selections.WithLabelValues(string(policy), observe.OutcomeError).Inc()
		return nil, fmt.Errorf("set policy: %w", err)
	}

	start := time.Now()
	selected, err := eng.SelectFromAvailable(active, count)
	s.metrics.SelectionDuration.WithLabelValues(string(policy)).Observe(time.Since(start).Seconds())

	if err == nil {
		s.metrics.Selections.WithLabelValues(string(policy), observe.OutcomeOK).Inc()
		return selected, nil
	}
	if !errors.Is(err, selector.ErrItemNotInRoster) {
		s.metrics.Selections.WithLabelValues(string(policy), observe.OutcomeError).Inc()
		return nil, fmt.Errorf("select from available: %w", err)
	}

	// Degrade path: drop the stale entries and retry against a roster the
	// engine has been re-synchronized to.
	valid := domainroster.Intersect(active, rosterCfg)
	slog.WarnContext(ctx, "active subset out of sync with roster, degrading",
		"policy", policy, "active", len(active), "valid", len(valid))
	if len(valid) == 0 {
		s.metrics.Selections.WithLabelValues(string(policy), observe.OutcomeEmpty).Inc()
		return nil, nil
	}

	eng.SetCollection(rosterCfg)
	if count > len(valid) {
		count = len(valid)
	}
	selected, err = eng.SelectFromAvailable(valid, count)
	if err != nil {
		s.metrics.Selections.WithLabelValues(string(policy), observe.OutcomeError).Inc()
		return nil, fmt.Errorf("select after roster resync: %w", err)
	}
	s.metrics.Selections.WithLabelValues(string(policy), observe.OutcomeDegraded).Inc()
	return selected, nil
}

// Request describes one assignment round initiated by the conversational flow.
type Request struct {
	ChatID      int64
	Policy      assignment.Policy
	Active      []string
	Count       int
	Description string
	Destination string
}

// Assign runs selection for the chat's scope and posts the result with a
// completion poll to the destination.
func (s *Service) Assign(ctx context.Context, req Request) (assignment.Assignment, error) {
	var (
		assignees     []string
		selErr        error
		policyChanged bool
	)
	s.store.Scope(req.ChatID).Do(func(eng portselector.Engine) {
		prev := eng.Info().Policy
		assignees, selErr = s.SelectAssignees(ctx, eng, req.Policy, req.Active, eng.Collection(), req.Count)
		policyChanged = selErr == nil && eng.Info().Policy != prev
	})
	if selErr != nil {
		return assignment.Assignment{}, selErr
	}
	if policyChanged {
		if err := s.bus.Publish(ctx, event.New(event.TypePolicyChanged, uuid.Nil, req.ChatID)); err != nil {
			slog.ErrorContext(ctx, "failed to publish PolicyChanged event", "chat_id", req.ChatID, "error", err)
		}
	}
	if len(assignees) == 0 {
		return assignment.Assignment{}, ErrNoAssignees
	}

	a := assignment.New(req.ChatID, assignees, req.Description, req.Destination, req.Policy)
	if err := s.post(ctx, a); err != nil {
		s.metrics.AssignmentsPosted.WithLabelValues("error").Inc()
		if pubErr := s.bus.Publish(ctx, event.New(event.TypeAssignmentFailed, a.ID, a.ChatID)); pubErr != nil {
			slog.ErrorContext(ctx, "failed to publish AssignmentFailed event", "assignment_id", a.ID, "error", pubErr)
		}
		return assignment.Assignment{}, err
	}

	s.metrics.AssignmentsPosted.WithLabelValues("ok").Inc()
	if err := s.bus.Publish(ctx, event.New(event.TypeAssignmentPosted, a.ID, a.ChatID)); err != nil {
		slog.ErrorContext(ctx, "failed to publish AssignmentPosted event", "assignment_id", a.ID, "error", err)
	}

	slog.InfoContext(ctx, "assignment posted",
		"assignment_id", a.ID, "chat_id", a.ChatID, "destination", a.Destination,
		"policy", a.Policy, "assignees", a.Assignees)
	return a, nil
}

// post sends the assignment text and its completion poll. The poll replies
// to the assignment message; a poll failure is logged but does not fail the
// round (the assignment itself was delivered, and sends are not retried).
func (s *Service) post(ctx context.Context, a assignment.Assignment) error {
	text := strings.TrimSpace(fmt.Sprintf("Assigned: %s\n%s", strings.Join(a.Assignees, ", "), a.Description))

	sent, err := s.poster.PostMessage(ctx, a.Destination, text)
	if err != nil {
		return fmt.Errorf("post assignment to %s: %w", a.Destination, err)
	}

	if err := s.poster.PostPoll(ctx, a.Destination, PollQuestion, []string{PollOptionDone}, sent.MessageID); err != nil {
		slog.ErrorContext(ctx, "failed to post completion poll",
			"assignment_id", a.ID, "destination", a.Destination, "error", err)
	}
	return nil
}
