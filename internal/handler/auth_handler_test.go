package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"friendlink/internal/pkg/auth/jwt"
	"friendlink/internal/pkg/errs"
	"friendlink/internal/pkg/randx"
	"friendlink/internal/pkg/resp"
)

func TestGuestTokenMintsIdentity(t *testing.T) {
	srv := newTestServer(t)

	res, err := http.Post(srv.URL+"/api/auth/guest", "application/json", nil)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	var body resp.JSONResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.Equal(t, 0, body.Code)

	data, ok := body.Data.(map[string]any)
	require.True(t, ok)

	userID, ok := data["userId"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(userID, randx.GuestIDPrefix))
	assert.True(t, randx.IsValidGuestID(userID))

	tokenString, ok := data["token"].(string)
	require.True(t, ok)

	payload, err := jwt.ParseToken(tokenString, "test_secret")
	require.NoError(t, err)
	assert.Equal(t, userID, payload.UserID)
	assert.Equal(t, "guest", payload.UserType)
}

func TestGuestTokenReusesValidGuestID(t *testing.T) {
	srv := newTestServer(t)

	existing, err := randx.GuestID()
	require.NoError(t, err)

	input, err := json.Marshal(GuestTokenInput{UserID: existing})
	require.NoError(t, err)

	res, err := http.Post(srv.URL+"/api/auth/guest", "application/json", bytes.NewReader(input))
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	var body resp.JSONResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))

	data, ok := body.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, existing, data["userId"])
}

func TestGuestTokenRejectsForeignUserID(t *testing.T) {
	srv := newTestServer(t)

	input := []byte(`{"userId":"admin"}`)

	res, err := http.Post(srv.URL+"/api/auth/guest", "application/json", bytes.NewReader(input))
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	var body resp.JSONResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, errs.ErrInvalidParams, body.Code)
}
