package testutil

import (
	"context"
	"sync"

	portnotifier "github.com/MaximMukhametov/assign-bot/internal/port/notifier"
)

// PostedText records one PostMessage call.
type PostedText struct {
	Destination string
	Text        string
}

// PostedPoll records one PostPoll call.
type PostedPoll struct {
	Destination string
	Question    string
	Options     []string
	ReplyTo     int64
}

// CapturePoster is a test double for the notifier port. It records every
// call with a mutex so it is safe for concurrent use.
type CapturePoster struct {
	mu       sync.Mutex
	Messages []PostedText
	Polls    []PostedPoll

	// MessageErr/PollErr, when set, are returned by the respective call.
	MessageErr error
	PollErr    error

	nextMessageID int64
}

var _ portnotifier.Poster = (*CapturePoster)(nil)

func (c *CapturePoster) PostMessage(_ context.Context, destination, text string) (portnotifier.PostedMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.MessageErr != nil {
		return portnotifier.PostedMessage{}, c.MessageErr
	}
	c.nextMessageID++
	c.Messages = append(c.Messages, PostedText{Destination: destination, Text: text})
	return portnotifier.PostedMessage{Destination: destination, MessageID: c.nextMessageID}, nil
}

func (c *CapturePoster) PostPoll(_ context.Context, destination, question string, options []string, replyTo int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.PollErr != nil {
		return c.PollErr
	}
	c.Polls = append(c.Polls, PostedPoll{Destination: destination, Question: question, Options: options, ReplyTo: replyTo})
	return nil
}

// Reset clears all recorded calls.
func (c *CapturePoster) Reset() {
	c.mu.Lock()
	c.Messages = nil
	c.Polls = nil
	c.mu.Unlock()
}
