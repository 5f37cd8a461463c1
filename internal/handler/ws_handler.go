/*
Package handler provides the HTTP handlers and routing setup for the FriendLink server.

This file contains the WebSocket connection handler: rate limiting, identity
parameter validation, the protocol upgrade, and the client lifecycle.
*/
package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"friendlink/internal/app/friend"
	"friendlink/internal/pkg/errs"
	"friendlink/internal/pkg/limiter"
	"friendlink/internal/pkg/logx"
	"friendlink/internal/pkg/resp"
)

// HandleWebSocket processes WebSocket connection requests on /ws.
//
// A connection carries two required query parameters: uid (the caller's user
// id) and token (an opaque auth token). The token is not verified beyond
// presence; any non-empty value is accepted. Missing either parameter refuses
// the connection before any registration happens.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := limiter.ClientIP(r)

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		query := r.URL.Query()
		userID := query.Get("uid")
		authToken := query.Get("token")

		if userID == "" {
			logx.Warn("WebSocket request rejected: missing uid query parameter")
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if authToken == "" {
			logx.Warn("WebSocket request rejected: missing auth token", "user_id", userID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := friend.NewClient(deps.Broker, conn, userID)

		go client.WritePump()

		deps.Broker.Register(userID, client)

		logx.Info("WebSocket connection established and user registered", "user_id", userID)

		client.ReadPump()
	}
}
