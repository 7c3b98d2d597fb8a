package telegram_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaximMukhametov/assign-bot/internal/adapter/memory"
	"github.com/MaximMukhametov/assign-bot/internal/domain/assignment"
	"github.com/MaximMukhametov/assign-bot/internal/observe"
	assignersvc "github.com/MaximMukhametov/assign-bot/internal/service/assigner"
	rostersvc "github.com/MaximMukhametov/assign-bot/internal/service/roster"
	"github.com/MaximMukhametov/assign-bot/internal/testutil"
	"github.com/MaximMukhametov/assign-bot/internal/transport/telegram"
)

// fakeAPI records every Bot API call the conversational flow makes.
type fakeAPI struct {
	mu     sync.Mutex
	nextID int

	sent        []sentMessage
	edits       []editedText
	markupPokes int
	answers     []callbackAnswer
}

type sentMessage struct {
	destination string
	text        string
	markup      models.ReplyMarkup
}

type editedText struct {
	messageID int
	text      string
}

type callbackAnswer struct {
	text  string
	alert bool
}

func (f *fakeAPI) SendMessage(_ context.Context, destination, text string, replyMarkup models.ReplyMarkup) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.sent = append(f.sent, sentMessage{destination: destination, text: text, markup: replyMarkup})
	return &models.Message{ID: f.nextID}, nil
}

func (f *fakeAPI) EditMessageText(_ context.Context, _ int64, messageID int, text string, _ models.ReplyMarkup) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, editedText{messageID: messageID, text: text})
	return nil
}

func (f *fakeAPI) EditMessageReplyMarkup(_ context.Context, _ int64, _ int, _ models.ReplyMarkup) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markupPokes++
	return nil
}

func (f *fakeAPI) AnswerCallbackQuery(_ context.Context, _ string, text string, showAlert bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers = append(f.answers, callbackAnswer{text: text, alert: showAlert})
	return nil
}

func (f *fakeAPI) lastSent(t *testing.T) sentMessage {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.sent, "expected at least one sent message")
	return f.sent[len(f.sent)-1]
}

func (f *fakeAPI) lastSentID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nextID
}

func (f *fakeAPI) lastEdit(t *testing.T) editedText {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.edits, "expected at least one message edit")
	return f.edits[len(f.edits)-1]
}

func (f *fakeAPI) lastAnswer(t *testing.T) callbackAnswer {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.answers, "expected at least one callback answer")
	return f.answers[len(f.answers)-1]
}

// harness drives a Bot wired to real services, an in-memory scope store, and
// a capture poster standing in for the channel delivery side.
type harness struct {
	bot    *telegram.Bot
	api    *fakeAPI
	poster *testutil.CapturePoster

	chatID     int64
	userID     int64
	nextUpdate int64
}

func newHarness(t *testing.T, adminIDs []int64) *harness {
	t.Helper()

	metrics := observe.NewMetrics(prometheus.NewRegistry())
	store := memory.NewStore(assignment.PolicyRandom)
	bus := memory.NewEventBus()
	api := &fakeAPI{}
	poster := &testutil.CapturePoster{}

	roster := rostersvc.NewService(store, nil, bus, metrics)
	assigner := assignersvc.NewService(store, poster, bus, metrics)

	return &harness{
		bot:    telegram.NewBot(api, roster, assigner, adminIDs),
		api:    api,
		poster: poster,
		chatID: 1,
		userID: 7,
	}
}

func textUpdate(updateID, chatID, userID int64, text string) *models.Update {
	return &models.Update{
		ID: updateID,
		Message: &models.Message{
			ID:   int(1000 + updateID),
			From: &models.User{ID: userID},
			Chat: models.Chat{ID: chatID},
			Text: text,
		},
	}
}

func (h *harness) message(text string) {
	h.nextUpdate++
	h.bot.HandleUpdate(context.Background(), textUpdate(h.nextUpdate, h.chatID, h.userID, text))
}

func (h *harness) callback(data string, keyboardMsg int) {
	h.nextUpdate++
	h.bot.HandleUpdate(context.Background(), &models.Update{
		ID: h.nextUpdate,
		CallbackQuery: &models.CallbackQuery{
			ID:   fmt.Sprintf("cb-%d", h.nextUpdate),
			From: models.User{ID: h.userID},
			Message: models.MaybeInaccessibleMessage{
				Message: &models.Message{ID: keyboardMsg, Chat: models.Chat{ID: h.chatID}},
			},
			Data: data,
		},
	})
}

// configure walks the /configure exchange with the given raw participant list.
func (h *harness) configure(raw string) {
	h.message("/configure")
	h.message(raw)
}

// startDialog walks /assign up to the await-channel step for the given
// active members under the given policy/count callbacks.
func (h *harness) startDialog(policy string, count int, active ...string) {
	h.message("/assign")
	keyboardMsg := h.api.lastSentID()
	for _, u := range active {
		h.callback("toggle::"+u, keyboardMsg)
	}
	h.callback("next", keyboardMsg)
	h.callback("policy::"+policy, keyboardMsg)
	h.callback(fmt.Sprintf("count::%d", count), keyboardMsg)
	h.message("task description")
}

// ── full dialog ───────────────────────────────────────────────────────────────

func TestBot_FullAssignmentDialog(t *testing.T) {
	h := newHarness(t, nil)

	h.configure("@alice, @bob, @carol")
	assert.Contains(t, h.api.lastSent(t).text, "Participant list saved:")
	assert.Contains(t, h.api.lastSent(t).text, "• @alice")

	h.message("/assign")
	assert.Equal(t, "Select the active participants for this round:", h.api.lastSent(t).text)
	keyboardMsg := h.api.lastSentID()

	h.callback("toggle::@alice", keyboardMsg)
	h.callback("toggle::@bob", keyboardMsg)
	h.callback("next", keyboardMsg)
	assert.Equal(t, "Choose the assignment policy:", h.api.lastEdit(t).text)

	h.callback("policy::round", keyboardMsg)
	assert.Equal(t, "How many assignees?", h.api.lastEdit(t).text)

	h.callback("count::2", keyboardMsg)
	assert.Equal(t, "Enter the task description (free text)", h.api.lastEdit(t).text)

	h.message("Rotate the on-call runbook")
	assert.Contains(t, h.api.lastSent(t).text, "Which channel")

	h.message("@team-channel")
	assert.Equal(t, "Assignment posted to @team-channel.", h.api.lastSent(t).text)

	// Round-robin walks the roster order, so the first two active members win.
	require.Len(t, h.poster.Messages, 1)
	assert.Equal(t, "@team-channel", h.poster.Messages[0].Destination)
	assert.Equal(t, "Assigned: @alice, @bob\nRotate the on-call runbook", h.poster.Messages[0].Text)

	require.Len(t, h.poster.Polls, 1)
	assert.Equal(t, assignersvc.PollQuestion, h.poster.Polls[0].Question)
	assert.Equal(t, []string{assignersvc.PollOptionDone}, h.poster.Polls[0].Options)
	assert.Equal(t, int64(1), h.poster.Polls[0].ReplyTo)
}

func TestBot_AssignWithoutRoster(t *testing.T) {
	h := newHarness(t, nil)

	h.message("/assign")
	assert.Contains(t, h.api.lastSent(t).text, "No participants configured")
	assert.Empty(t, h.poster.Messages)
}

func TestBot_InvalidChannelKeepsDialogOpen(t *testing.T) {
	h := newHarness(t, nil)
	h.configure("@alice @bob")
	h.startDialog("random", 1, "@alice")

	h.message("not-a-channel")
	assert.Contains(t, h.api.lastSent(t).text, "Expected a channel name")
	assert.Empty(t, h.poster.Messages)

	// A corrected channel name still completes the same dialog.
	h.message("@dashboards")
	assert.Equal(t, "Assignment posted to @dashboards.", h.api.lastSent(t).text)
	require.Len(t, h.poster.Messages, 1)
	assert.Equal(t, "Assigned: @alice\ntask description", h.poster.Messages[0].Text)
}

func TestBot_ConcurrentChannelDeliveryPostsOnce(t *testing.T) {
	// Two deliveries of the channel-name text racing for the same dialog
	// must complete it exactly once; the dialog is consumed atomically.
	h := newHarness(t, nil)
	h.configure("@alice @bob")
	h.startDialog("round", 1, "@alice")

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.bot.HandleUpdate(context.Background(),
				textUpdate(h.nextUpdate+1+int64(i), h.chatID, h.userID, "@ops-channel"))
		}()
	}
	wg.Wait()

	require.Len(t, h.poster.Messages, 1, "dialog completed more than once")
	assert.Contains(t, h.poster.Messages[0].Text, "Assigned: @alice")
}

// ── dialog controls ───────────────────────────────────────────────────────────

func TestBot_CancelAbortsDialog(t *testing.T) {
	h := newHarness(t, nil)
	h.configure("@alice @bob")

	h.message("/assign")
	keyboardMsg := h.api.lastSentID()
	h.callback("toggle::@alice", keyboardMsg)
	h.callback("cancel", keyboardMsg)
	assert.Equal(t, "Operation cancelled.", h.api.lastEdit(t).text)

	// The dialog is gone; stray text no longer reaches the assigner.
	h.message("@some-channel")
	assert.Empty(t, h.poster.Messages)
}

func TestBot_NextWithoutSelectionAlerts(t *testing.T) {
	h := newHarness(t, nil)
	h.configure("@alice @bob")

	h.message("/assign")
	h.callback("next", h.api.lastSentID())

	last := h.api.lastAnswer(t)
	assert.Equal(t, "Select at least one participant", last.text)
	assert.True(t, last.alert)
}

func TestBot_ToggleIgnoresNonRosterEntry(t *testing.T) {
	h := newHarness(t, nil)
	h.configure("@alice @bob")

	h.message("/assign")
	keyboardMsg := h.api.lastSentID()
	h.callback("toggle::@stranger", keyboardMsg)
	h.callback("next", keyboardMsg)

	// Nothing was actually selected, so Next refuses to advance.
	assert.Equal(t, "Select at least one participant", h.api.lastAnswer(t).text)
}

// ── access control and redelivery ─────────────────────────────────────────────

func TestBot_UnauthorizedUser(t *testing.T) {
	h := newHarness(t, []int64{42})

	h.message("/assign")
	assert.Equal(t, "You are not allowed to use this bot.", h.api.lastSent(t).text)

	h.callback("next", 5)
	last := h.api.lastAnswer(t)
	assert.Equal(t, "Not allowed", last.text)
	assert.True(t, last.alert)
}

func TestBot_AdminListAllowsListedUser(t *testing.T) {
	h := newHarness(t, []int64{7})

	h.message("/start")
	assert.Contains(t, h.api.lastSent(t).text, "Assign Bot")
}

func TestBot_DuplicateUpdateIgnored(t *testing.T) {
	h := newHarness(t, nil)

	upd := textUpdate(10, 1, 7, "/start")
	h.bot.HandleUpdate(context.Background(), upd)
	h.bot.HandleUpdate(context.Background(), upd)

	h.api.mu.Lock()
	defer h.api.mu.Unlock()
	assert.Len(t, h.api.sent, 1, "redelivered update must not be handled twice")
}

func TestBot_BadRosterInputPromptsRetry(t *testing.T) {
	h := newHarness(t, nil)

	h.message("/configure")
	h.message("   ")
	assert.Contains(t, h.api.lastSent(t).text, "Could not recognize any usernames")
}
