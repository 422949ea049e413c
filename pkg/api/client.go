package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"taskdeck/pkg/utils"
)

// DefaultBaseURL is the hosted API the original web client talks to.
// Override it via config, TASKDECK_API_URL, or --api-url.
const DefaultBaseURL = "https://m-s-t-b.onrender.com/api"

// DefaultTimeout bounds every request unless the config says otherwise.
const DefaultTimeout = 10 * time.Second

// TokenSource supplies the persisted bearer token and clears it when the
// server reports the session expired.
type TokenSource interface {
	Token() string
	Clear() error
}

// Config carries everything the client needs; there is no package-level
// state, so tests construct clients freely.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenSource
	// OnAuthExpired fires once per 401 response, after the token source
	// has been cleared. The UI uses it to fall back to the login screen.
	OnAuthExpired func()
}

// Client is the single point of contact with the remote service. It holds
// no business logic: one method per endpoint plus uniform auth handling.
type Client struct {
	baseURL       string
	http          *http.Client
	tokens        TokenSource
	onAuthExpired func()
}

// Error is a non-2xx response decoded into the server's envelope.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: request failed (status %d)", e.Status)
}

// IsAuthError reports whether err is a 401 from the server.
func IsAuthError(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Status == http.StatusUnauthorized
}

// New creates an API client from the given config, filling in defaults
// for anything left zero.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		http:          cfg.HTTPClient,
		tokens:        cfg.Tokens,
		onAuthExpired: cfg.OnAuthExpired,
	}
}

// envelope is the uniform response wrapper the server sends.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// requestOpts tweak individual calls.
type requestOpts struct {
	// skipAuthHandler leaves 401 responses to the caller. Login and
	// register use it so bad credentials stay ordinary errors instead
	// of triggering the global logout.
	skipAuthHandler bool
}

// do issues a request and decodes the envelope's data field into out.
// A nil out discards the payload.
func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body io.Reader, contentType string, out any, opts requestOpts) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + encodeQuery(query)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	// Attach the bearer token if one is persisted.
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	utils.Log("api: %s %s", method, path)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && !opts.skipAuthHandler {
		c.expireAuth()
		return &Error{Status: resp.StatusCode, Message: "session expired"}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	var env envelope
	if len(raw) > 0 {
		// Tolerate non-JSON error bodies; the status code still tells
		// the caller what happened.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}

	return nil
}

// expireAuth clears the persisted token and notifies the owner. This is
// the single global side effect in the client.
func (c *Client) expireAuth() {
	utils.Log("api: auth expired, clearing token")
	if c.tokens != nil {
		if err := c.tokens.Clear(); err != nil {
			utils.Log("api: clearing token failed: %v", err)
		}
	}
	if c.onAuthExpired != nil {
		c.onAuthExpired()
	}
}

// getJSON issues a GET and decodes the data payload into out.
func (c *Client) getJSON(ctx context.Context, path string, query map[string]string, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out, requestOpts{})
}

// sendJSON issues a request with a JSON body.
func (c *Client) sendJSON(ctx context.Context, method, path string, body any, out any, opts requestOpts) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}
	return c.do(ctx, method, path, nil, &buf, "application/json", out, opts)
}

// sendMultipart issues a POST with multipart/form-data: the given form
// values plus an optional file attached under fileField.
func (c *Client) sendMultipart(ctx context.Context, path string, fields map[string]string, fileField, filePath string, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("write form field: %w", err)
		}
	}

	if filePath != "" {
		f, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("open upload: %w", err)
		}
		defer f.Close()

		part, err := w.CreateFormFile(fileField, filepath.Base(filePath))
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			return fmt.Errorf("copy upload: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("finish multipart body: %w", err)
	}

	return c.do(ctx, http.MethodPost, path, nil, &buf, w.FormDataContentType(), out, requestOpts{})
}

// encodeQuery renders query parameters in a stable order. Empty values
// are omitted entirely: the server treats the presence of a parameter as
// a filter, not its emptiness.
func encodeQuery(query map[string]string) string {
	keys := make([]string, 0, len(query))
	for k, v := range query {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, k := range keys {
		values.Set(k, query[k])
	}
	return values.Encode()
}
