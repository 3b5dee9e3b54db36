// Package chatclient holds the client half of the chat exchange: the
// HTTP API client and the conversation state machine the terminal UI
// drives.
package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"cuisine-chat/internal/domain/model"
)

// APIError is a structured error response from the server. Anything
// else (connection refused, DNS, timeouts) stays a plain error so the
// conversation can tell the two apart.
type APIError struct {
	StatusCode int
	Message    string
	ErrorType  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the chat server.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// SendMessage posts one user message and returns the bot reply.
func (c *Client) SendMessage(ctx context.Context, message string) (string, error) {
	b, _ := json.Marshal(model.ChatRequest{Message: message})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", decodeAPIError(resp)
	}

	var out model.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Reply, nil
}

func decodeAPIError(resp *http.Response) *APIError {
	body := struct {
		StatusCode int             `json:"statusCode"`
		Message    json.RawMessage `json:"message"`
		Error      string          `json:"error"`
	}{}
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    "An unexpected error occurred",
		ErrorType:  "Error",
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return apiErr
	}
	if body.StatusCode != 0 {
		apiErr.StatusCode = body.StatusCode
	}
	if body.Error != "" {
		apiErr.ErrorType = body.Error
	}
	// The server sends message as a string or, for validation
	// failures, an array of reasons.
	var single string
	var many []string
	switch {
	case json.Unmarshal(body.Message, &single) == nil:
		apiErr.Message = single
	case json.Unmarshal(body.Message, &many) == nil && len(many) > 0:
		apiErr.Message = strings.Join(many, "; ")
	}
	return apiErr
}
