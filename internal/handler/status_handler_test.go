package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"friendlink/internal/app/friend"
	"friendlink/internal/pkg/resp"
)

func getJSON(t *testing.T, url string) resp.JSONResponse {
	t.Helper()

	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	var body resp.JSONResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return body
}

func TestHealthReportsBrokerStats(t *testing.T) {
	srv := newTestServer(t)

	alice := dial(t, srv, "alice")
	_ = dial(t, srv, "bob")

	sendEvent(t, alice, friend.TypeSend, "a1", friend.SendPayload{ToUserID: "bob"})
	require.True(t, readAck(t, alice, "a1").Success)

	body := getJSON(t, srv.URL+"/health")
	require.Equal(t, 0, body.Code)

	data, ok := body.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, float64(2), data["connectedUsers"])
	assert.Equal(t, float64(1), data["storedRequests"])
}

func TestDebugRequestsDumpsStore(t *testing.T) {
	srv := newTestServer(t)

	alice := dial(t, srv, "alice")
	_ = dial(t, srv, "bob")

	sendEvent(t, alice, friend.TypeSend, "a1", friend.SendPayload{ToUserID: "bob", Message: "hi"})
	ack := readAck(t, alice, "a1")
	require.True(t, ack.Success)

	body := getJSON(t, srv.URL+"/api/debug/requests")
	require.Equal(t, 0, body.Code)

	data, ok := body.Data.(map[string]any)
	require.True(t, ok)

	requests, ok := data["requests"].([]any)
	require.True(t, ok)
	require.Len(t, requests, 1)

	record, ok := requests[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, ack.Request.ID, record["id"])
	assert.Equal(t, "pending", record["status"])
}
