/*
Package handler provides the HTTP handlers and routing setup for the FriendLink server.

This file contains the guest identity endpoint. Clients without their own
identity source can obtain a server-minted guest user id and a signed token
to present on the WebSocket connection.
*/
package handler

import (
	"net/http"
	"time"

	"friendlink/internal/pkg/auth/jwt"
	"friendlink/internal/pkg/errs"
	"friendlink/internal/pkg/logx"
	"friendlink/internal/pkg/randx"
	"friendlink/internal/pkg/req"
	"friendlink/internal/pkg/resp"
)

type GuestTokenInput struct {
	// UserID optionally reuses an existing guest id; when absent a fresh one
	// is minted. Non-guest-shaped ids are refused.
	UserID string `json:"userId,omitempty"`
}

// HandleGuestToken mints a guest user id and a signed identity token.
// The WebSocket endpoint only checks token presence, so the signature exists
// for clients that want a verifiable identity, not as a gate.
func HandleGuestToken(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input GuestTokenInput
		if customErr := req.BindJSONIfPresent(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		userID := input.UserID
		if userID == "" {
			minted, err := randx.GuestID()
			if err != nil {
				logx.Error(err, "Failed to mint guest id")
				resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
				return
			}
			userID = minted
		} else if !randx.IsValidGuestID(userID) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		payload := &jwt.Payload{
			UserID:   userID,
			UserType: "guest",
		}

		tokenString, err := jwt.GenerateToken(payload, deps.Config.JWTSecret, jwt.GuestIdentityExpiration)
		if err != nil {
			logx.Error(err, "Failed to generate guest token", "user_id", userID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"userId":    userID,
			"token":     tokenString,
			"expiresAt": time.Now().Add(jwt.GuestIdentityExpiration).Format(time.RFC3339),
		})
	}
}
