/*
Package handler provides the HTTP handlers and routing setup for the FriendLink server.

This file contains the read-only diagnostics endpoints: the health summary and
the full request dump. Neither is part of the broker's client contract.
*/
package handler

import (
	"net/http"

	"friendlink/internal/pkg/resp"
)

// HandleHealth reports service liveness plus the connected-user and stored
// request counts.
func HandleHealth(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := deps.Broker.Stats()

		resp.RespondSuccess(w, r, map[string]any{
			"status":         "ok",
			"service":        "FriendLink Server",
			"connectedUsers": stats.ConnectedUsers,
			"storedRequests": stats.StoredRequests,
		})
	}
}

// HandleDumpRequests returns every stored friend request. Diagnostics only.
func HandleDumpRequests(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]any{
			"requests": deps.Broker.DumpRequests(),
		})
	}
}
