// Package config holds the runtime configuration assembled by the CLI layer.
package config

// Config is everything the composition root needs. Values come from CLI
// flags or environment variables (see cmd/bot).
type Config struct {
	// TelegramToken authenticates against the Bot API.
	TelegramToken string

	// Listen is the address of the ops/diagnostics HTTP server.
	Listen string

	// AdminIDs is the static allow-list of Telegram user ids permitted to
	// drive the bot. Empty means open access.
	AdminIDs []int64

	// DefaultRoster seeds chats that run /assign before configuring their
	// own participant list.
	DefaultRoster []string

	// WebhookOnly disables the long-polling loop; updates then arrive only
	// via the /telegram/webhook endpoint.
	WebhookOnly bool
}
