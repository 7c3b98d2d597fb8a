package transport

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-telegram/bot/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	telegramadapter "github.com/MaximMukhametov/assign-bot/internal/adapter/telegram"
	"github.com/MaximMukhametov/assign-bot/internal/domain/event"
	porteventbus "github.com/MaximMukhametov/assign-bot/internal/port/eventbus"
	portscope "github.com/MaximMukhametov/assign-bot/internal/port/scope"
	wshandler "github.com/MaximMukhametov/assign-bot/internal/transport/ws"
)

// NewRouter wires the ops/diagnostics HTTP surface: health, scope
// diagnostics, the Telegram webhook, metrics, and the websocket event bridge.
func NewRouter(
	ctx context.Context,
	store portscope.Store,
	updates telegramadapter.UpdateHandler,
	eventBus porteventbus.EventBus,
	gatherer prometheus.Gatherer,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestLogger())
	r.Use(CORSMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Webhook delivery is an alternative to long polling; both feed the same
	// update handler, which absorbs redelivered updates itself.
	r.POST("/telegram/webhook", func(c *gin.Context) {
		var upd models.Update
		if err := c.ShouldBindJSON(&upd); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		updates.HandleUpdate(c.Request.Context(), &upd)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/scopes/:id/info", scopeInfo(store))

	hub := wshandler.NewHub()
	hub.Register(api.Group("/ws"))

	// Bridge: one subscription per domain channel; event.Type in the payload
	// lets clients filter.
	for _, ch := range []event.Channel{event.ChannelAssignment, event.ChannelRoster} {
		if _, err := eventBus.Subscribe(ctx, ch, func(_ context.Context, e event.Event) {
			hub.Broadcast(e)
		}); err != nil {
			slog.Error("failed to subscribe channel to WS hub", "channel", ch, "error", err)
		}
	}

	return r
}

func scopeInfo(store portscope.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
			return
		}

		info, ok := store.Info(chatID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no scope for chat"})
			return
		}
		c.JSON(http.StatusOK, info)
	}
}
