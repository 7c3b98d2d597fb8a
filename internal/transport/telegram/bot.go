// Package telegram drives the conversational assignment flow: command
// dispatch, the multi-step dialog (active participants, policy, count,
// description, destination), and the inline keyboards behind it.
package telegram

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-telegram/bot/models"

	"github.com/MaximMukhametov/assign-bot/internal/domain/assignment"
	domainroster "github.com/MaximMukhametov/assign-bot/internal/domain/roster"
	assignersvc "github.com/MaximMukhametov/assign-bot/internal/service/assigner"
	rostersvc "github.com/MaximMukhametov/assign-bot/internal/service/roster"
)

// API is the slice of the Bot API client the flow needs.
// [ISP] Polling and assignment posting are wired elsewhere.
type API interface {
	SendMessage(ctx context.Context, destination, text string, replyMarkup models.ReplyMarkup) (*models.Message, error)
	EditMessageText(ctx context.Context, chatID int64, messageID int, text string, replyMarkup models.ReplyMarkup) error
	EditMessageReplyMarkup(ctx context.Context, chatID int64, messageID int, replyMarkup models.ReplyMarkup) error
	AnswerCallbackQuery(ctx context.Context, callbackID, text string, showAlert bool) error
}

// dialog steps for one in-progress /assign flow.
type step string

const (
	stepSelectActive step = "select_active"
	stepPolicy       step = "policy"
	stepCount        step = "count"
	stepAwaitText    step = "await_description"
	stepAwaitChannel step = "await_channel"
)

const (
	menuConfigureButton = "Configure Participants"
	menuAssignButton    = "Assign Participants"
)

// pendingAssign tracks the state of one chat's multi-step assignment dialog.
// All access happens under Bot.mu.
type pendingAssign struct {
	active      map[string]struct{}
	policy      assignment.Policy
	count       int
	description string
	keyboardMsg int
	step        step
}

// Bot routes incoming updates to the conversational flow. Dialog state is
// per chat and guarded by one mutex; the selection state itself lives in the
// scope store, not here.
type Bot struct {
	api       API
	roster    *rostersvc.Service
	assigner  *assignersvc.Service
	adminIDs  map[int64]struct{}
	mu        sync.Mutex
	expecting map[int64]bool
	pending   map[int64]*pendingAssign
	lastSeen  int64
}

func NewBot(api API, roster *rostersvc.Service, assigner *assignersvc.Service, adminIDs []int64) *Bot {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &Bot{
		api:       api,
		roster:    roster,
		assigner:  assigner,
		adminIDs:  admins,
		expecting: make(map[int64]bool),
		pending:   make(map[int64]*pendingAssign),
	}
}

// HandleUpdate consumes one update from the poller or the webhook. Webhook
// redelivery is absorbed by skipping update ids at or below the last one seen.
func (b *Bot) HandleUpdate(ctx context.Context, upd *models.Update) {
	b.mu.Lock()
	if upd.ID != 0 && upd.ID <= b.lastSeen {
		b.mu.Unlock()
		return
	}
	if upd.ID > b.lastSeen {
		b.lastSeen = upd.ID
	}
	b.mu.Unlock()

	switch {
	case upd.CallbackQuery != nil:
		b.handleCallback(ctx, upd.CallbackQuery)
	case upd.Message != nil:
		b.handleMessage(ctx, upd.Message)
	}
}

// authorized applies the static allow-list. An empty list means open access.
func (b *Bot) authorized(from *models.User) bool {
	if len(b.adminIDs) == 0 {
		return true
	}
	if from == nil {
		return false
	}
	_, ok := b.adminIDs[from.ID]
	return ok
}

func (b *Bot) handleMessage(ctx context.Context, msg *models.Message) {
	chatID := msg.Chat.ID

	if !b.authorized(msg.From) {
		b.reply(ctx, chatID, "You are not allowed to use this bot.")
		return
	}

	text := strings.TrimSpace(msg.Text)
	switch {
	case text == "/start":
		b.cmdStart(ctx, chatID)
	case text == "/configure" || text == menuConfigureButton:
		b.cmdConfigure(ctx, chatID)
	case text == "/assign" || text == menuAssignButton:
		b.cmdAssign(ctx, chatID)
	case text == "/reset":
		b.cmdReset(ctx, chatID)
	default:
		b.handleTextStep(ctx, chatID, text)
	}
}

func (b *Bot) cmdStart(ctx context.Context, chatID int64) {
	b.replyWithMenu(ctx, chatID,
		"Hi! I am Assign Bot.\n\n"+
			"Commands:\n"+
			"/configure — set the participant list (@usernames)\n"+
			"/assign — pick active participants and run an assignment\n"+
			"/reset — restart the round-robin cycle")
}

func (b *Bot) cmdConfigure(ctx context.Context, chatID int64) {
	b.replyWithMenu(ctx, chatID,
		"Send the participant list separated by spaces, commas, or newlines.\n"+
			"Example: @alice, @bob, @carol")

	b.mu.Lock()
	b.expecting[chatID] = true
	b.mu.Unlock()
}

func (b *Bot) cmdAssign(ctx context.Context, chatID int64) {
	usernames, seeded := b.roster.Roster(ctx, chatID)
	if seeded {
		b.reply(ctx, chatID, "No participant list configured. Using the default roster:\n"+
			domainroster.FormatList(usernames))
	}
	if len(usernames) == 0 {
		b.reply(ctx, chatID, "No participants configured. Set a list with /configure first.")
		return
	}

	pending := &pendingAssign{
		active: make(map[string]struct{}),
		count:  1,
		step:   stepSelectActive,
	}

	sent, err := b.api.SendMessage(ctx, destinationFor(chatID),
		"Select the active participants for this round:",
		toggleKeyboard(usernames, pending.active))
	if err != nil {
		slog.ErrorContext(ctx, "failed to start active-participant selection", "chat_id", chatID, "error", err)
		return
	}
	pending.keyboardMsg = sent.ID

	b.mu.Lock()
	b.pending[chatID] = pending
	b.mu.Unlock()
}

func (b *Bot) cmdReset(ctx context.Context, chatID int64) {
	b.roster.ResetCycle(ctx, chatID)
	b.replyWithMenu(ctx, chatID, "Round-robin cycle restarted.")
}

// assignInput is an immutable snapshot of a completed dialog, taken while
// the pending entry is consumed so the assignment runs on stable data.
type assignInput struct {
	policy      assignment.Policy
	active      []string
	count       int
	description string
}

// handleTextStep routes plain text to whichever dialog step is waiting on it:
// participant configuration after /configure, then the description and the
// target channel during an /assign flow. The step check, field mutation, and
// dialog consumption all happen inside one critical section; concurrent
// deliveries of the same text can therefore complete at most one dialog.
func (b *Bot) handleTextStep(ctx context.Context, chatID int64, text string) {
	b.mu.Lock()
	if b.expecting[chatID] {
		delete(b.expecting, chatID)
		b.mu.Unlock()
		b.handleConfigInput(ctx, chatID, text)
		return
	}

	pending := b.pending[chatID]
	if pending == nil {
		b.mu.Unlock()
		return
	}

	switch pending.step {
	case stepAwaitText:
		pending.description = text
		pending.step = stepAwaitChannel
		b.mu.Unlock()
		b.replyWithMenu(ctx, chatID, "Which channel should the assignment go to? (as @channel_username)")
	case stepAwaitChannel:
		dest := strings.TrimSpace(text)
		if !strings.HasPrefix(dest, "@") {
			b.mu.Unlock()
			// Keep the dialog open so the operator can retry the channel name.
			b.reply(ctx, chatID, "Expected a channel name like @channel_username. Try again.")
			return
		}

		input := assignInput{
			policy:      pending.policy,
			active:      make([]string, 0, len(pending.active)),
			count:       pending.count,
			description: pending.description,
		}
		for u := range pending.active {
			input.active = append(input.active, u)
		}
		delete(b.pending, chatID)
		b.mu.Unlock()

		b.runAssignment(ctx, chatID, input, dest)
	default:
		b.mu.Unlock()
	}
}

func (b *Bot) handleConfigInput(ctx context.Context, chatID int64, text string) {
	usernames, err := b.roster.Configure(ctx, chatID, text)
	if err != nil {
		if errors.Is(err, rostersvc.ErrNoUsernames) {
			b.reply(ctx, chatID, "Could not recognize any usernames. Try again with /configure.")
			return
		}
		slog.ErrorContext(ctx, "failed to configure roster", "chat_id", chatID, "error", err)
		return
	}
	b.replyWithMenu(ctx, chatID, "Participant list saved:\n"+domainroster.FormatList(usernames))
}

func (b *Bot) runAssignment(ctx context.Context, chatID int64, input assignInput, dest string) {
	_, err := b.assigner.Assign(ctx, assignersvc.Request{
		ChatID:      chatID,
		Policy:      input.policy,
		Active:      input.active,
		Count:       input.count,
		Description: input.description,
		Destination: dest,
	})
	switch {
	case errors.Is(err, assignersvc.ErrNoAssignees):
		b.reply(ctx, chatID, "Nobody to assign — the active list is empty.")
	case err != nil:
		slog.ErrorContext(ctx, "assignment failed", "chat_id", chatID, "destination", dest, "error", err)
		b.reply(ctx, chatID, "Could not post to the channel. Check the bot's permissions and the channel name.")
	default:
		b.replyWithMenu(ctx, chatID, "Assignment posted to "+dest+".")
	}
}

// reply sends a plain message to the chat, logging delivery failures.
func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if _, err := b.api.SendMessage(ctx, destinationFor(chatID), text, nil); err != nil {
		slog.ErrorContext(ctx, "failed to send reply", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) replyWithMenu(ctx context.Context, chatID int64, text string) {
	if _, err := b.api.SendMessage(ctx, destinationFor(chatID), text, mainMenuKeyboard()); err != nil {
		slog.ErrorContext(ctx, "failed to send reply", "chat_id", chatID, "error", err)
	}
}
