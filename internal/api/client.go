package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/realestatead/adctl/internal/log"
	"github.com/realestatead/adctl/internal/session"
)

// Client is the single outbound gateway to the backend API.
//
// Every request picks up the bearer token from the session store when one is
// present, and every failure comes back as a normalized *Error. A 401 clears
// the session store before the caller sees the error; that is the only path
// with a side effect beyond the returned error.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   *session.Store
	logger     *log.Logger

	// logoutMu serializes the forced-logout path so concurrent 401s clear
	// the session once and fire the hook once.
	logoutMu       sync.Mutex
	onForcedLogout func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the client's logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithForcedLogoutHook registers a callback invoked after a 401 has cleared
// the session store. The hook runs at most once per stored session.
func WithForcedLogoutHook(fn func()) Option {
	return func(c *Client) { c.onForcedLogout = fn }
}

// NewClient creates an API client rooted at baseURL.
func NewClient(baseURL string, sessions *session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		sessions: sessions,
		logger:   log.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET request and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPatch, path, body, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &Error{
				Kind:    KindUnexpected,
				Message: "Failed to prepare the request.",
				Err:     fmt.Errorf("marshal request body: %w", err),
			}
		}
		reqBody = bytes.NewReader(encoded)
	}
	return c.do(ctx, method, path, "application/json", reqBody, out)
}

// PostMultipart uploads a single file as multipart/form-data, used by the
// contacts CSV import.
func (c *Client) PostMultipart(ctx context.Context, path, fieldName, fileName string, file io.Reader, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		return &Error{
			Kind:    KindUnexpected,
			Message: "Failed to prepare the upload.",
			Err:     fmt.Errorf("create form file: %w", err),
		}
	}
	if _, err := io.Copy(part, file); err != nil {
		return &Error{
			Kind:    KindUnexpected,
			Message: "Failed to read the file to upload.",
			Err:     fmt.Errorf("copy upload body: %w", err),
		}
	}
	if err := writer.Close(); err != nil {
		return &Error{
			Kind:    KindUnexpected,
			Message: "Failed to prepare the upload.",
			Err:     fmt.Errorf("close multipart writer: %w", err),
		}
	}
	return c.do(ctx, http.MethodPost, path, writer.FormDataContentType(), &buf, out)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{
			Kind:    KindUnexpected,
			Message: "Failed to prepare the request.",
			Err:     fmt.Errorf("create request: %w", err),
		}
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if method != http.MethodGet {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	if sess, err := c.sessions.Read(); err == nil && sess != nil {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed in transport",
			"method", method, "path", path, "error", err)
		return &Error{
			Kind:    KindTransport,
			Message: msgTransport,
			Err:     err,
		}
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	c.logger.Debug("request completed",
		"method", method, "path", path,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.classify(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{
				Kind:       KindUnexpected,
				StatusCode: resp.StatusCode,
				Message:    "The server returned an unexpected response.",
				Err:        fmt.Errorf("decode response: %w", err),
			}
		}
	}
	return nil
}

// errorBody is the backend's error envelope. The structured errors payload
// arrives either as a field→messages map or as a flat list.
type errorBody struct {
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
}

func (c *Client) classify(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)

	var payload errorBody
	_ = json.Unmarshal(raw, &payload)
	serverMsg := payload.Error
	if serverMsg == "" {
		serverMsg = payload.Message
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		c.forceLogout()
		return &Error{
			Kind:       KindUnauthenticated,
			StatusCode: resp.StatusCode,
			Message:    msgSessionGone,
		}

	case http.StatusTooManyRequests:
		msg := msgRateLimited
		if after := resp.Header.Get("Retry-After"); after != "" {
			msg = fmt.Sprintf("Too many requests. Please wait %s seconds before trying again.", after)
		}
		return &Error{
			Kind:       KindRateLimited,
			StatusCode: resp.StatusCode,
			Message:    msg,
		}

	case http.StatusInternalServerError, http.StatusServiceUnavailable:
		return &Error{
			Kind:       KindServerFault,
			StatusCode: resp.StatusCode,
			Message:    msgServerFault,
		}

	case http.StatusNotFound:
		msg := serverMsg
		if msg == "" {
			msg = msgNotFound
		}
		return &Error{
			Kind:       KindNotFound,
			StatusCode: resp.StatusCode,
			Message:    msg,
		}
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		if fields := parseFieldErrors(payload.Errors); len(fields) > 0 {
			msg := serverMsg
			if msg == "" {
				msg = "Please correct the highlighted fields."
			}
			return &Error{
				Kind:       KindValidation,
				StatusCode: resp.StatusCode,
				Message:    msg,
				Fields:     fields,
			}
		}
	}

	msg := serverMsg
	if msg == "" {
		msg = fmt.Sprintf("The request failed with status %d.", resp.StatusCode)
	}
	return &Error{
		Kind:       KindUnexpected,
		StatusCode: resp.StatusCode,
		Message:    msg,
	}
}

// parseFieldErrors decodes the structured validation payload. Supported
// shapes: {"field": ["msg", ...]}, {"field": "msg"}, and ["msg", ...]
// (collected under the root pseudo-field "base").
func parseFieldErrors(raw json.RawMessage) map[string][]string {
	if len(raw) == 0 {
		return nil
	}

	var perFieldList map[string][]string
	if err := json.Unmarshal(raw, &perFieldList); err == nil && len(perFieldList) > 0 {
		return perFieldList
	}

	var perFieldOne map[string]string
	if err := json.Unmarshal(raw, &perFieldOne); err == nil && len(perFieldOne) > 0 {
		fields := make(map[string][]string, len(perFieldOne))
		for name, msg := range perFieldOne {
			fields[name] = []string{msg}
		}
		return fields
	}

	var flat []string
	if err := json.Unmarshal(raw, &flat); err == nil && len(flat) > 0 {
		return map[string][]string{"base": flat}
	}

	return nil
}

// forceLogout clears the stored session in response to a 401. The store's
// clear is idempotent; the hook fires only when a session was actually
// present, so overlapping 401s collapse to a single observable logout.
func (c *Client) forceLogout() {
	c.logoutMu.Lock()
	defer c.logoutMu.Unlock()

	sess, err := c.sessions.Read()
	if err != nil || sess == nil {
		return
	}
	if err := c.sessions.Clear(); err != nil {
		c.logger.Warn("failed to clear session after 401", "error", err)
		return
	}
	c.logger.Info("session cleared after authentication failure")
	if c.onForcedLogout != nil {
		c.onForcedLogout()
	}
}
