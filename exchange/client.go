// Package exchange talks to the remote chat service: one JSON request per
// user message plus a best-effort conversation reset.
package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"foliochat/config"
)

const (
	DefaultBaseURL = "http://localhost:8000"

	// maxResponseSize bounds how much of a response body is read.
	maxResponseSize = 1 << 20

	chatPath  = "chat"
	resetPath = "reset"
)

// Config is injected at construction; the client never reads globals.
type Config struct {
	BaseURL string
}

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	Response *string `json:"response"`
}

// NewClient validates cfg.BaseURL and returns a client that uses the
// platform default HTTP client: no retries, no timeout override.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}

	parsedURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid chat service URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid chat service URL %q: scheme must be http or https", base)
	}
	if parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid chat service URL %q: missing host", base)
	}

	return &Client{
		baseURL:    parsedURL,
		httpClient: http.DefaultClient,
	}, nil
}

// BaseURL returns the configured service root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Send posts one user message and returns the assistant's reply text.
func (c *Client) Send(ctx context.Context, sessionID, text string) (string, error) {
	payload, err := json.Marshal(chatRequest{Message: text, SessionID: sessionID})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(chatPath).String(), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req)
	if err != nil {
		return "", err
	}

	var decoded chatResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if decoded.Response == nil {
		return "", fmt.Errorf("%w: missing \"response\" field", ErrMalformedResponse)
	}

	return *decoded.Response, nil
}

// ResetRemote asks the service to forget the conversation for sessionID.
// The response body is ignored; callers treat failures as log-only.
func (c *Client) ResetRemote(ctx context.Context, sessionID string) error {
	u := c.endpoint(resetPath)
	q := u.Query()
	q.Set("session_id", sessionID)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build reset request: %w", err)
	}

	_, err = c.do(req)
	return err
}

func (c *Client) endpoint(name string) *url.URL {
	return c.baseURL.JoinPath(name)
}

// do executes req and returns the body of a 2xx response. Transport and body
// read failures become *NetworkError, non-2xx statuses *ServerError.
func (c *Client) do(req *http.Request) ([]byte, error) {
	if config.DebugLog != nil {
		config.DebugLog.Debugw("exchange request", "method", req.Method, "url", req.URL.String())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Detail: describeTransportError(err), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &NetworkError{Detail: "interrupted while reading response", Err: err}
	}

	if config.DebugLog != nil {
		config.DebugLog.Debugw("exchange response", "url", req.URL.String(), "status", resp.StatusCode, "bytes", len(body))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServerError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return body, nil
}

// describeTransportError strips the "Post <url>:" prefix net/http adds so the
// detail reads well in a chat bubble.
func describeTransportError(err error) string {
	var ue *url.Error
	if errors.As(err, &ue) && ue.Err != nil {
		return ue.Err.Error()
	}
	return err.Error()
}
