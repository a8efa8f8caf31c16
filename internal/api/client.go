// Package api is the HTTP client for the MockMate backend. Every response is
// wrapped in the platform envelope {message, data}; errors surface the
// backend's message verbatim and are never retried automatically.
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

	"go.uber.org/zap"

	"github.com/mockmate/mockmate-cli/internal/errs"
)

// fallbackMessage is shown when the backend reports a failure without a
// usable message.
const fallbackMessage = "something went wrong, please try again"

// excerptLen bounds the body excerpt included in non-JSON response errors.
const excerptLen = 256

// StatusError is a backend-reported failure: a non-2xx status paired with
// the envelope's message.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fallbackMessage
}

// ContentTypeError reports a response that was not JSON, with a truncated
// body excerpt for diagnosis.
type ContentTypeError struct {
	Status      int
	ContentType string
	Excerpt     string
}

func (e *ContentTypeError) Error() string {
	return fmt.Sprintf("unexpected %s response (status %d): %s", e.ContentType, e.Status, e.Excerpt)
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to the backend. The bearer token is resolved per request so
// cookie expiry is always honored.
type Client struct {
	baseURL string
	http    *http.Client
	token   func() string
	log     *zap.Logger
}

// New builds a client. baseURL may be empty; every request then fails with
// errs.ErrNoBackendURL. token may be nil for anonymous use.
func New(baseURL string, timeout time.Duration, token func() string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		token:   token,
		log:     log,
	}
}

// do performs one request. body (when non-nil) is marshaled as JSON; out
// (when non-nil) receives the envelope's data field.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	contentType := ""
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.doRaw(ctx, method, path, rd, contentType, out)
}

// doRaw performs a request with a prebuilt body, shared by do and the
// multipart profile upload.
func (c *Client) doRaw(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	if c.baseURL == "" {
		return errs.ErrNoBackendURL
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	c.log.Debug("request", zap.String("method", method), zap.String("path", path))
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.Contains(ct, "application/json") {
		return &ContentTypeError{Status: resp.StatusCode, ContentType: ct, Excerpt: excerpt(raw)}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &ContentTypeError{Status: resp.StatusCode, ContentType: ct, Excerpt: excerpt(raw)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug("request failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", env.Message),
		)
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			if env.Message != "" {
				return fmt.Errorf("%s: %w", env.Message, errs.ErrUnauthorized)
			}
			return errs.ErrUnauthorized
		case http.StatusNotFound:
			if env.Message != "" {
				return fmt.Errorf("%s: %w", env.Message, errs.ErrNotFound)
			}
			return errs.ErrNotFound
		default:
			return &StatusError{Status: resp.StatusCode, Message: env.Message}
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s %s: decode data: %w", method, path, err)
		}
	}
	return nil
}

func excerpt(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > excerptLen {
		return s[:excerptLen] + "..."
	}
	return s
}
