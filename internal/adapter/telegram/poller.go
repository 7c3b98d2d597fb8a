package telegram

import (
	"context"

	"github.com/go-telegram/bot/models"
)

// UpdateHandler consumes one update from the polling loop or the webhook.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, upd *models.Update)
}

// Poll runs the library's getUpdates long-polling loop until ctx is
// cancelled. Transport errors and offset bookkeeping are the library's
// concern; every delivered update is forwarded to handler.
func (c *Client) Poll(ctx context.Context, handler UpdateHandler) error {
	c.mu.Lock()
	c.handler = handler
	c.mu.Unlock()

	c.bot.Start(ctx)
	return ctx.Err()
}

// dispatch is the library's default handler; it forwards to whatever
// UpdateHandler Poll registered. Updates arriving before Poll are dropped.
func (c *Client) dispatch(ctx context.Context, upd *models.Update) {
	c.mu.Lock()
	h := c.handler
	c.mu.Unlock()

	if h != nil {
		h.HandleUpdate(ctx, upd)
	}
}
