// Package api is the shared HTTP gateway every service goes through.
// It carries session credentials in a cookie jar and transparently
// recovers from session expiry: the first 401 on a credentialed
// endpoint triggers exactly one refresh call, requests failing while
// that refresh is in flight wait for its outcome, and every request is
// retried at most once.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const (
	pathLogin    = "/auth/login"
	pathRegister = "/auth/register"
	pathRefresh  = "/auth/refresh"
	pathMe       = "/auth/me"
)

const (
	msgNetwork        = "server is unreachable"
	msgBadResponse    = "server returned an unreadable response"
	msgServer         = "request failed"
	msgBadCredentials = "invalid credentials"
	msgSessionExpired = "session expired, please sign in again"
)

// defaultLogoutGrace covers requests issued just before the logout
// flag was set; the flag stays up this long after logout completes.
const defaultLogoutGrace = 500 * time.Millisecond

// Client is the gateway. One instance is shared by all services; the
// refresh coordination state lives here rather than in package globals
// so tests can run clients side by side.
type Client struct {
	baseURL  string
	http     *http.Client
	observer Observer

	onSessionExpired func()

	mu         sync.Mutex
	refreshing bool
	waiters    []chan error

	loggingOut  atomic.Bool
	logoutGrace time.Duration
}

// New creates a gateway client. The jar holds the session cookies; nil
// observer defaults to NoopObserver.
func New(baseURL string, jar http.CookieJar, timeout time.Duration, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
		observer:    observer,
		logoutGrace: defaultLogoutGrace,
	}
}

// OnSessionExpired registers a handler fired when a refresh fails and
// the session is unrecoverable. The CLI uses it to drop back to the
// login prompt.
func (c *Client) OnSessionExpired(fn func()) {
	c.onSessionExpired = fn
}

// Get issues a GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE. Some endpoints take query params, some a
// JSON body; both are passed through.
func (c *Client) Delete(ctx context.Context, path string, query url.Values, body any) error {
	return c.do(ctx, http.MethodDelete, path, query, body, nil)
}

// BeginLogout raises the logging-out flag. While it is up, 401s do not
// trigger a refresh and identity checks fail fast with ErrLoggingOut,
// so a post-logout 401 cannot resurrect the session.
func (c *Client) BeginLogout() {
	c.loggingOut.Store(true)
}

// FinishLogout clears the logging-out flag after a short grace delay.
func (c *Client) FinishLogout() {
	time.AfterFunc(c.logoutGrace, func() {
		c.loggingOut.Store(false)
	})
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
	}

	// Identity checks are pointless mid-logout; answer before the wire.
	if path == pathMe && c.loggingOut.Load() {
		return ErrLoggingOut
	}

	retried := false
	for {
		status, respBody, err := c.attempt(ctx, method, path, query, payload)
		if err != nil {
			return &Error{Kind: KindNetwork, Message: msgNetwork, err: err}
		}

		if status < http.StatusBadRequest {
			if out != nil && len(respBody) > 0 {
				if err := json.Unmarshal(respBody, out); err != nil {
					return &Error{Kind: KindServer, Status: status, Message: msgBadResponse, err: err}
				}
			}
			return nil
		}

		if status != http.StatusUnauthorized {
			return &Error{Kind: KindServer, Status: status, Message: serverMessage(respBody, msgServer)}
		}

		// A 401 on login/register means rejected credentials, and the
		// refresh endpoint cannot refresh itself.
		if path == pathLogin || path == pathRegister || path == pathRefresh {
			return &Error{Kind: KindAuth, Status: status, Message: serverMessage(respBody, msgBadCredentials)}
		}

		// One retry per request; a second 401 is terminal.
		if retried || c.loggingOut.Load() {
			return &Error{Kind: KindSession, Status: status, Message: msgSessionExpired, err: ErrSessionExpired}
		}

		if err := c.awaitRefresh(ctx); err != nil {
			return err
		}
		retried = true
	}
}

// awaitRefresh coordinates the single in-flight refresh. The first
// caller performs the refresh call; concurrent callers join a FIFO
// wait list and share its outcome.
func (c *Client) awaitRefresh(ctx context.Context) error {
	c.mu.Lock()
	if c.refreshing {
		ch := make(chan error, 1)
		c.waiters = append(c.waiters, ch)
		c.mu.Unlock()

		select {
		case err := <-ch:
			if err != nil {
				return &Error{Kind: KindSession, Message: msgSessionExpired, err: err}
			}
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c.refreshing = true
	c.mu.Unlock()

	refreshErr := c.refresh(ctx)
	c.settle(refreshErr)

	if refreshErr != nil {
		if c.onSessionExpired != nil {
			c.onSessionExpired()
		}
		return &Error{Kind: KindSession, Message: msgSessionExpired, err: refreshErr}
	}
	return nil
}

func (c *Client) refresh(ctx context.Context) error {
	status, body, err := c.attempt(ctx, http.MethodPost, pathRefresh, nil, nil)
	if err != nil {
		return fmt.Errorf("refreshing session: %w", err)
	}
	if status >= http.StatusBadRequest {
		return fmt.Errorf("refreshing session: %s: %w", serverMessage(body, msgSessionExpired), ErrSessionExpired)
	}
	return nil
}

// settle releases all queued waiters in arrival order and clears the
// refresh-in-flight mark.
func (c *Client) settle(err error) {
	c.mu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.refreshing = false
	c.mu.Unlock()

	for _, ch := range waiters {
		ch <- err
	}
}

// attempt performs one HTTP round trip and reports it to the observer.
func (c *Client) attempt(ctx context.Context, method, path string, query url.Values, payload []byte) (int, []byte, error) {
	start := time.Now()
	reqID := uuid.New().String()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(method, path, 0, start, reqID, "NETWORK")
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(method, path, resp.StatusCode, start, reqID, "READ")
		return 0, nil, fmt.Errorf("reading response: %w", err)
	}

	code := ""
	if resp.StatusCode >= http.StatusBadRequest {
		code = fmt.Sprintf("HTTP_%d", resp.StatusCode)
	}
	c.observe(method, path, resp.StatusCode, start, reqID, code)

	return resp.StatusCode, respBody, nil
}

func (c *Client) observe(method, path string, status int, start time.Time, reqID, code string) {
	c.observer.OnCallComplete(CallEvent{
		Method:    method,
		Path:      path,
		Status:    status,
		LatencyMs: time.Since(start).Milliseconds(),
		RequestID: reqID,
		ErrorCode: code,
	})
}
