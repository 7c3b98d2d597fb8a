// Package telegram adapts the go-telegram/bot client to this application's
// ports: assignment delivery (notifier) and the update intake driving the
// conversational flow.
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	portnotifier "github.com/MaximMukhametov/assign-bot/internal/port/notifier"
)

var _ portnotifier.Poster = (*Client)(nil)

// Client wraps the Bot API client behind the application's ports.
type Client struct {
	bot *bot.Bot

	mu      sync.Mutex
	handler UpdateHandler
}

// Option configures the underlying Bot API client.
type Option = bot.Option

// WithBaseURL points the client at a different API host. Used by tests and
// Bot API proxies.
func WithBaseURL(u string) Option {
	return bot.WithServerURL(strings.TrimRight(u, "/"))
}

func NewClient(token string, opts ...Option) (*Client, error) {
	c := &Client{}

	options := append([]bot.Option{
		// Token validation is deferred to the first real call so the
		// composition root stays network-free.
		bot.WithSkipGetMe(),
		bot.WithDefaultHandler(func(ctx context.Context, _ *bot.Bot, upd *models.Update) {
			c.dispatch(ctx, upd)
		}),
	}, opts...)

	b, err := bot.New(token, options...)
	if err != nil {
		return nil, fmt.Errorf("telegram: init client: %w", err)
	}
	c.bot = b
	return c, nil
}

// chatRef maps a destination string to the chat_id parameter: "@channel"
// names pass through as strings, numeric ids as integers.
func chatRef(destination string) any {
	if strings.HasPrefix(destination, "@") {
		return destination
	}
	if id, err := strconv.ParseInt(destination, 10, 64); err == nil {
		return id
	}
	return destination
}

func (c *Client) SendMessage(ctx context.Context, destination, text string, replyMarkup models.ReplyMarkup) (*models.Message, error) {
	return c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatRef(destination),
		Text:        text,
		ReplyMarkup: replyMarkup,
	})
}

func (c *Client) EditMessageText(ctx context.Context, chatID int64, messageID int, text string, replyMarkup models.ReplyMarkup) error {
	_, err := c.bot.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ReplyMarkup: replyMarkup,
	})
	return err
}

func (c *Client) EditMessageReplyMarkup(ctx context.Context, chatID int64, messageID int, replyMarkup models.ReplyMarkup) error {
	_, err := c.bot.EditMessageReplyMarkup(ctx, &bot.EditMessageReplyMarkupParams{
		ChatID:      chatID,
		MessageID:   messageID,
		ReplyMarkup: replyMarkup,
	})
	return err
}

func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackID, text string, showAlert bool) error {
	_, err := c.bot.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       showAlert,
	})
	return err
}

// PostMessage implements the notifier port for the assigner service.
func (c *Client) PostMessage(ctx context.Context, destination, text string) (portnotifier.PostedMessage, error) {
	msg, err := c.SendMessage(ctx, destination, text, nil)
	if err != nil {
		return portnotifier.PostedMessage{}, fmt.Errorf("telegram: send message to %s: %w", destination, err)
	}
	return portnotifier.PostedMessage{Destination: destination, MessageID: int64(msg.ID)}, nil
}

// PostPoll implements the notifier port for the assigner service. The poll
// replies to a previously posted assignment message.
func (c *Client) PostPoll(ctx context.Context, destination, question string, options []string, replyTo int64) error {
	pollOptions := make([]models.InputPollOption, len(options))
	for i, o := range options {
		pollOptions[i] = models.InputPollOption{Text: o}
	}

	anonymous := false
	_, err := c.bot.SendPoll(ctx, &bot.SendPollParams{
		ChatID:                chatRef(destination),
		Question:              question,
		Options:               pollOptions,
		IsAnonymous:           &anonymous,
		AllowsMultipleAnswers: true,
		ReplyParameters:       &models.ReplyParameters{MessageID: int(replyTo)},
	})
	if err != nil {
		return fmt.Errorf("telegram: send poll to %s: %w", destination, err)
	}
	return nil
}
