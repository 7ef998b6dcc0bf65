// internal/common/http/client.go
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"payroll-assistant/internal/models"
)

// Client talks to the chat API on behalf of one agent token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// APIError is a non-2xx reply from the chat API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("chat api: %d %s", e.Status, e.Message)
}

// SendMessage posts text and returns the assistant's reply.
func (c *Client) SendMessage(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(map[string]string{"message": text})
	if err != nil {
		return "", err
	}
	var out struct {
		Response string `json:"response"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/chat/message", body, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

// History returns the agent's stored turns, oldest first.
func (c *Client) History(ctx context.Context) ([]models.ChatTurn, error) {
	var out struct {
		History []models.ChatTurn `json:"history"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/chat/history", nil, &out); err != nil {
		return nil, err
	}
	return out.History, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
