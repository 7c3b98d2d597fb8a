package wire

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MaximMukhametov/assign-bot/internal/adapter/memory"
	telegramadapter "github.com/MaximMukhametov/assign-bot/internal/adapter/telegram"
	"github.com/MaximMukhametov/assign-bot/internal/config"
	"github.com/MaximMukhametov/assign-bot/internal/domain/assignment"
	"github.com/MaximMukhametov/assign-bot/internal/observe"
	assignersvc "github.com/MaximMukhametov/assign-bot/internal/service/assigner"
	rostersvc "github.com/MaximMukhametov/assign-bot/internal/service/roster"
	"github.com/MaximMukhametov/assign-bot/internal/transport"
	telegramtransport "github.com/MaximMukhametov/assign-bot/internal/transport/telegram"
)

// App holds the top-level resources needed to run and gracefully stop the bot.
type App struct {
	Server *http.Server
	Client *telegramadapter.Client
	Bot    *telegramtransport.Bot
}

// Build is the composition root: the only place concrete types are wired to
// their interface dependencies.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	registry := prometheus.NewRegistry()
	metrics := observe.NewMetrics(registry)

	// ── State & events ───────────────────────────────────────────────────────
	store := memory.NewStore(assignment.PolicyRandom)
	bus := memory.NewEventBus()

	// ── Adapters ─────────────────────────────────────────────────────────────
	client, err := telegramadapter.NewClient(cfg.TelegramToken)
	if err != nil {
		return nil, err
	}

	// ── Services ─────────────────────────────────────────────────────────────
	rosterSvc := rostersvc.NewService(store, cfg.DefaultRoster, bus, metrics)
	assignerSvc := assignersvc.NewService(store, client, bus, metrics)

	// ── Transport ────────────────────────────────────────────────────────────
	bot := telegramtransport.NewBot(client, rosterSvc, assignerSvc, cfg.AdminIDs)
	router := transport.NewRouter(ctx, store, bot, bus, registry)

	server := &http.Server{
		Addr:    cfg.Listen,
		Handler: router,
	}

	slog.Info("application wired", "listen", cfg.Listen,
		"admins", len(cfg.AdminIDs), "default_roster", len(cfg.DefaultRoster))

	return &App{Server: server, Client: client, Bot: bot}, nil
}
