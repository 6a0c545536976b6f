/*
Package handler provides the HTTP surface of the CHATON server: the health
endpoint and the WebSocket bridge that lets browser front ends speak the same
line protocol as raw TCP clients.

This file defines the main Router, applying middleware like request IDs,
panic recovery, and IP-based rate limiting before delegating to the WebSocket
upgrade handler.
*/
package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"chaton/internal/app/chat"
	"chaton/internal/configs"
	"chaton/internal/pkg/limiter"
	"chaton/internal/pkg/logx"
)

const (
	// JoinRate and JoinBurst throttle WebSocket connection attempts per IP.
	JoinRate  = 0.2
	JoinBurst = 5
)

// Router sets up the HTTP routing table (chi.Router) for the WebSocket bridge.
func Router(server *chat.Server, cfg *configs.AppConfig) http.Handler {
	joinLimiter := limiter.NewIPRateLimiter(rate.Limit(JoinRate), JoinBurst)

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if cfg.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}

			parsed, err := url.Parse(origin)
			if err != nil || parsed.Host != r.Host {
				logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
				return false
			}
			return true
		},
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","service":"CHATON Server"}`))
	})

	r.Get("/ws", HandleWebSocket(server, wsUpgrader, joinLimiter))

	return r
}
