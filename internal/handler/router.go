/*
Package handler provides the HTTP handlers and routing setup for the FriendLink server.

This file defines the main Router, applying logging, CORS and IP rate limiting
before delegating to the REST and WebSocket handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"friendlink/internal/pkg/limiter"
	"friendlink/internal/pkg/logx"
)

const (
	// GuestTokenRate limits guest identity minting per IP.
	GuestTokenRate  = 0.1
	GuestTokenBurst = 3

	// ConnectRate limits WebSocket connection attempts per IP.
	ConnectRate  = 0.5
	ConnectBurst = 5
)

// Router builds the chi routing table: diagnostics endpoints, the guest
// identity endpoint, and the WebSocket entry point.
func Router(deps *AppDeps) http.Handler {
	guestLimiter := limiter.NewIPRateLimiter(rate.Limit(GuestTokenRate), GuestTokenBurst)
	connectLimiter := limiter.NewIPRateLimiter(rate.Limit(ConnectRate), ConnectBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", HandleHealth(deps))

	r.Route("/api", func(api chi.Router) {
		rateLimitedGuestHandler := guestLimiter.Middleware(HandleGuestToken(deps))
		api.Post("/auth/guest", rateLimitedGuestHandler.ServeHTTP)

		api.Get("/debug/requests", HandleDumpRequests(deps))
	})

	r.Get("/ws", HandleWebSocket(wsUpgrader, connectLimiter, deps))

	return r
}
