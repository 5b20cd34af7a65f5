package kimai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxErrorBody = 4096

// Client talks to the Kimai 2 HTTP API. It implements ports.KimaiClient.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *slog.Logger
}

// NewClient builds a client for the Kimai instance at baseURL. The
// token is sent as a bearer token on every request.
func NewClient(baseURL, token string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Request performs an API call against /api/<path> and returns the raw
// JSON response body. Empty 2xx bodies (e.g. from DELETE) are reported
// as {"success":true} so callers always receive valid JSON.
func (c *Client) Request(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	u.Path = "/api/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, networkError(err, c.baseURL)
	}
	defer resp.Body.Close()

	c.log.Debug("kimai api call",
		slog.String("method", method),
		slog.String("path", u.Path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classifyStatus(resp.StatusCode, errorDetail(resp.Body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(err, c.baseURL)
	}
	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return json.RawMessage(`{"success":true}`), nil
	}
	if !json.Valid(data) {
		return nil, &APIError{
			Kind:   KindUpstream,
			Status: resp.StatusCode,
			Detail: "response body is not valid JSON",
			Hint:   "verify the base URL points at a Kimai instance, not a web page",
		}
	}
	return json.RawMessage(data), nil
}

// errorDetail extracts a human-readable message from an error response
// body. Kimai wraps most errors as {"code": N, "message": "..."}; other
// bodies are returned as trimmed text.
func errorDetail(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(trimmed, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return string(trimmed)
}
