// Package rest is the HTTP core every API gateway goes through: it attaches
// the bearer token, enforces the signed-in guard before any network I/O, and
// turns a rejected token into a cleared session.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	apperrors "physiq/internal/platform/errors"
	"physiq/internal/platform/id"
)

// TokenSource exposes the stored bearer token. Empty string means no session.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Invalidator discards the stored session after the server rejects its token.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	sessions   Invalidator
	ids        id.Generator
	log        *slog.Logger
}

func NewClient(baseURL string, tokens TokenSource, sessions Invalidator, ids id.Generator, log *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tokens:     tokens,
		sessions:   sessions,
		ids:        ids,
		log:        log,
	}
}

// Do performs an unauthenticated JSON call. Login and register use it, so a
// 401 here stays an ordinary request failure instead of a session expiry.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	payload, contentType, err := encodeBody(body)
	if err != nil {
		return err
	}
	return c.send(ctx, method, path, contentType, payload, "", false, out)
}

// DoAuthed performs a bearer-authenticated JSON call. Without a stored token
// it fails with ErrUnauthenticated before any network I/O; a 401 response
// clears the session and fails with ErrSessionExpired.
func (c *Client) DoAuthed(ctx context.Context, method, path string, body, out any) error {
	token, err := c.bearer(ctx)
	if err != nil {
		return err
	}
	payload, contentType, err := encodeBody(body)
	if err != nil {
		return err
	}
	return c.send(ctx, method, path, contentType, payload, token, true, out)
}

// UploadAuthed posts file as a multipart form under field, with the same
// guard and expiry handling as DoAuthed.
func (c *Client) UploadAuthed(ctx context.Context, path, field, filename, contentType string, file io.Reader, out any) error {
	token, err := c.bearer(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	header.Set("Content-Type", contentType)
	part, err := form.CreatePart(header)
	if err != nil {
		return fmt.Errorf("create form part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("read upload payload: %w", err)
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("close form: %w", err)
	}
	return c.send(ctx, http.MethodPost, path, form.FormDataContentType(), &buf, token, true, out)
}

func (c *Client) bearer(ctx context.Context) (string, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	if token == "" {
		return "", apperrors.ErrUnauthenticated
	}
	return token, nil
}

func (c *Client) send(ctx context.Context, method, path, contentType string, payload io.Reader, token string, authed bool, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := c.ids.New()
	req.Header.Set("X-Request-Id", requestID)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.log.DebugContext(ctx, "api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"elapsed_ms", time.Since(started).Milliseconds(),
	)

	switch {
	case authed && resp.StatusCode == http.StatusUnauthorized:
		detail := readDetail(resp.Body)
		if err := c.sessions.Invalidate(ctx); err != nil {
			c.log.WarnContext(ctx, "clear session after 401", "error", err)
		}
		if detail != "" {
			return fmt.Errorf("%s: %w", detail, apperrors.ErrSessionExpired)
		}
		return apperrors.ErrSessionExpired
	case resp.StatusCode == http.StatusNotFound:
		if detail := readDetail(resp.Body); detail != "" {
			return fmt.Errorf("%s: %w", detail, apperrors.ErrNotFound)
		}
		return apperrors.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &RequestError{StatusCode: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return nil
}

func encodeBody(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("encode request: %w", err)
	}
	return bytes.NewReader(payload), "application/json", nil
}

// readDetail extracts the server's error message. The API wraps failures as
// {"detail": "..."}; anything else passes through raw.
func readDetail(r io.Reader) string {
	body, err := io.ReadAll(r)
	if err != nil || len(body) == 0 {
		return ""
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(body))
}
