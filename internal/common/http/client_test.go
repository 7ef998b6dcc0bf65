package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat/message", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid token"})
			return
		}
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "echo: " + req["message"]})
	})
	mux.HandleFunc("GET /api/chat/history", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"history":[{"message":"hi","response":"hello","timestamp":"2024-01-17T12:00:00Z"}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_SendMessage(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL+"/", "good", 5*time.Second)

	reply, err := c.SendMessage(context.Background(), "payroll this week")
	require.NoError(t, err)
	assert.Equal(t, "echo: payroll this week", reply)
}

func TestClient_SendMessage_Unauthorized(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL, "bad", 5*time.Second)

	_, err := c.SendMessage(context.Background(), "hello")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid token", apiErr.Message)
}

func TestClient_History(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL, "good", 5*time.Second)

	turns, err := c.History(context.Background())
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "hi", turns[0].Message)
	assert.Equal(t, "hello", turns[0].Response)
	assert.Equal(t, time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC), turns[0].Timestamp.UTC())
}
