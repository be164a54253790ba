package http

import (
	"log/slog"
	"net/http"
	"strings"

	gorillaws "github.com/gorilla/websocket"

	"esgpulse/internal/config"
	apierrors "esgpulse/internal/errors"
	"esgpulse/internal/websocket"
)

// WebSocketHandler upgrades dashboard connections and hands them to the hub.
type WebSocketHandler struct {
	hub          *websocket.Hub
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	upgrader     gorillaws.Upgrader
}

// NewWebSocketHandler creates a websocket handler. Origins are checked
// against the configured allow list; an empty list allows same-host only.
func NewWebSocketHandler(hub *websocket.Hub, cfg config.WebSocketConfig, allowedOrigins []string, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *WebSocketHandler {
	return &WebSocketHandler{
		hub:          hub,
		logger:       logger.With(slog.String("component", "ws_handler")),
		errorHandler: errorHandler,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// ServeHTTP handles GET /ws.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote its own response; just log.
		h.logger.ErrorContext(r.Context(), "websocket upgrade failed",
			slog.String("error", err.Error()),
			slog.String("remote_addr", r.RemoteAddr))
		return
	}

	websocket.ServeWS(h.hub, conn, h.logger)
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, candidate := range allowed {
			if candidate == "*" || strings.EqualFold(candidate, origin) {
				return true
			}
		}
		return false
	}
}
