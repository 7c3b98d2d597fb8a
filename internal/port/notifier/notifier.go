package notifier

import "context"

// PostedMessage identifies a delivered chat message so a follow-up (the
// completion poll) can reply to it.
type PostedMessage struct {
	Destination string
	MessageID   int64
}

// Poster delivers assignment output to a chat destination. Destination is a
// chat identifier the transport understands (an "@channel" name or a numeric
// chat id rendered as a string).
// [ISP] The assigner needs exactly these two calls, not the full bot API.
type Poster interface {
	PostMessage(ctx context.Context, destination, text string) (PostedMessage, error)
	PostPoll(ctx context.Context, destination, question string, options []string, replyTo int64) error
}
