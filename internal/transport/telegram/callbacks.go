package telegram

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/MaximMukhametov/assign-bot/internal/domain/assignment"
)

// Callback data prefixes for the inline keyboards.
const (
	cbTogglePrefix = "toggle::"
	cbPolicyPrefix = "policy::"
	cbCountPrefix  = "count::"
	cbNext         = "next"
	cbCancel       = "cancel"
)

func (b *Bot) handleCallback(ctx context.Context, cb *models.CallbackQuery) {
	msg := cb.Message.Message
	if msg == nil {
		// Keyboard message no longer accessible; nothing to edit.
		b.answerCallback(ctx, cb.ID, "", false)
		return
	}
	chatID := msg.Chat.ID

	if !b.authorized(&cb.From) {
		b.answerCallback(ctx, cb.ID, "Not allowed", true)
		return
	}

	switch {
	case cb.Data == cbCancel:
		b.handleCancel(ctx, chatID, cb, msg)
	case cb.Data == cbNext:
		b.handleNext(ctx, chatID, cb, msg)
	case strings.HasPrefix(cb.Data, cbTogglePrefix):
		b.handleToggle(ctx, chatID, cb, msg)
	case strings.HasPrefix(cb.Data, cbPolicyPrefix):
		b.handlePolicy(ctx, chatID, cb, msg)
	case strings.HasPrefix(cb.Data, cbCountPrefix):
		b.handleCount(ctx, chatID, cb, msg)
	default:
		b.answerCallback(ctx, cb.ID, "", false)
	}
}

func (b *Bot) handleCancel(ctx context.Context, chatID int64, cb *models.CallbackQuery, msg *models.Message) {
	b.mu.Lock()
	delete(b.pending, chatID)
	b.mu.Unlock()

	if err := b.api.EditMessageText(ctx, chatID, msg.ID, "Operation cancelled.", nil); err != nil {
		slog.ErrorContext(ctx, "failed to edit message on cancel", "chat_id", chatID, "error", err)
	}
	b.answerCallback(ctx, cb.ID, "", false)
}

func (b *Bot) handleToggle(ctx context.Context, chatID int64, cb *models.CallbackQuery, msg *models.Message) {
	username := strings.TrimPrefix(cb.Data, cbTogglePrefix)
	usernames, _ := b.roster.Roster(ctx, chatID)

	b.mu.Lock()
	pending := b.pending[chatID]
	if pending == nil || pending.step != stepSelectActive {
		b.mu.Unlock()
		b.answerCallback(ctx, cb.ID, "", false)
		return
	}
	if _, selected := pending.active[username]; selected {
		delete(pending.active, username)
	} else {
		// Only roster members can be toggled on; stale keyboard entries
		// from an old roster are ignored.
		for _, u := range usernames {
			if u == username {
				pending.active[username] = struct{}{}
				break
			}
		}
	}
	markup := toggleKeyboard(usernames, pending.active)
	b.mu.Unlock()

	if err := b.api.EditMessageReplyMarkup(ctx, chatID, msg.ID, markup); err != nil {
		slog.ErrorContext(ctx, "failed to refresh toggle keyboard", "chat_id", chatID, "error", err)
	}
	b.answerCallback(ctx, cb.ID, "", false)
}

func (b *Bot) handleNext(ctx context.Context, chatID int64, cb *models.CallbackQuery, msg *models.Message) {
	b.mu.Lock()
	pending := b.pending[chatID]
	if pending == nil || pending.step != stepSelectActive {
		b.mu.Unlock()
		b.answerCallback(ctx, cb.ID, "", false)
		return
	}
	if len(pending.active) == 0 {
		b.mu.Unlock()
		b.answerCallback(ctx, cb.ID, "Select at least one participant", true)
		return
	}
	pending.step = stepPolicy
	b.mu.Unlock()

	if err := b.api.EditMessageText(ctx, chatID, msg.ID,
		"Choose the assignment policy:", policyKeyboard()); err != nil {
		slog.ErrorContext(ctx, "failed to show policy keyboard", "chat_id", chatID, "error", err)
	}
	b.answerCallback(ctx, cb.ID, "", false)
}

func (b *Bot) handlePolicy(ctx context.Context, chatID int64, cb *models.CallbackQuery, msg *models.Message) {
	policy, err := assignment.ParsePolicy(strings.TrimPrefix(cb.Data, cbPolicyPrefix))
	if err != nil {
		b.answerCallback(ctx, cb.ID, "Unknown policy", true)
		return
	}

	b.mu.Lock()
	pending := b.pending[chatID]
	if pending == nil || pending.step != stepPolicy {
		b.mu.Unlock()
		b.answerCallback(ctx, cb.ID, "", false)
		return
	}
	pending.policy = policy
	pending.step = stepCount
	b.mu.Unlock()

	if err := b.api.EditMessageText(ctx, chatID, msg.ID,
		"How many assignees?", countKeyboard()); err != nil {
		slog.ErrorContext(ctx, "failed to show count keyboard", "chat_id", chatID, "error", err)
	}
	b.answerCallback(ctx, cb.ID, "", false)
}

func (b *Bot) handleCount(ctx context.Context, chatID int64, cb *models.CallbackQuery, msg *models.Message) {
	count, err := strconv.Atoi(strings.TrimPrefix(cb.Data, cbCountPrefix))
	if err != nil || count < 1 || count > maxAssignees {
		b.answerCallback(ctx, cb.ID, "Unknown count", true)
		return
	}

	b.mu.Lock()
	pending := b.pending[chatID]
	if pending == nil || pending.step != stepCount {
		b.mu.Unlock()
		b.answerCallback(ctx, cb.ID, "", false)
		return
	}
	pending.count = count
	pending.step = stepAwaitText
	b.mu.Unlock()

	if err := b.api.EditMessageText(ctx, chatID, msg.ID,
		"Enter the task description (free text)", nil); err != nil {
		slog.ErrorContext(ctx, "failed to show description prompt", "chat_id", chatID, "error", err)
	}
	b.answerCallback(ctx, cb.ID, "", false)
}

func (b *Bot) answerCallback(ctx context.Context, callbackID, text string, showAlert bool) {
	if err := b.api.AnswerCallbackQuery(ctx, callbackID, text, showAlert); err != nil {
		slog.ErrorContext(ctx, "failed to answer callback query", "callback_id", callbackID, "error", err)
	}
}
