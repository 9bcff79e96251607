// Package api implements the remote task-board API client. Every response
// is normalized through the {success, message, data} envelope; rejections
// become *Error and transport failures stay plain wrapped errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	// APITimeout is the timeout for API calls.
	APITimeout = 10 * time.Second
)

// Client talks to the remote task-board API.
type Client struct {
	baseURL string
	plain   *http.Client
	authed  *http.Client
	token   string
}

// New creates a client for the given base URL (e.g.
// "http://localhost:8080/api").
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		plain:   &http.Client{},
	}
}

// SetToken installs the session token. Requests to bearer endpoints go
// through an oauth2 transport that attaches it.
func (c *Client) SetToken(token string) {
	c.token = token
	if token == "" {
		c.authed = nil
		return
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})
	c.authed = oauth2.NewClient(context.Background(), src)
}

// ClearToken removes the session token.
func (c *Client) ClearToken() {
	c.token = ""
	c.authed = nil
}

// HasToken reports whether a session token is installed.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// envelope is the uniform server response shape.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do issues one request and decodes the envelope. out may be nil when the
// caller only cares about success. fallback is the per-operation generic
// message used when the server supplies none.
func (c *Client) do(ctx context.Context, method, path string, body, out any, bearer bool, fallback string) error {
	httpClient := c.plain
	if bearer {
		if c.token == "" {
			return ErrUnauthenticated
		}
		httpClient = c.authed
	}

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("request timed out: %w", err)
		}
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			// Non-JSON error page; still a rejection.
			return &Error{StatusCode: resp.StatusCode, Message: fallback}
		}
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = fallback
		}
		return &Error{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}
