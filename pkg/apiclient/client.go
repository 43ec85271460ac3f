// Package apiclient is a small Go client for the zine HTTP API session
// endpoints. It keeps the session cookies in a jar and can refresh the
// access token in the background before it expires.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	accessCookieName = "accessToken"

	// Used when the server does not announce the access cookie lifetime.
	defaultAccessTTL = 15 * time.Minute
)

// ErrUnauthenticated is returned when the server answers 401.
var ErrUnauthenticated = errors.New("apiclient: unauthenticated")

// User is the identity returned by the auth endpoints.
type User struct {
	ID          uuid.UUID `json:"id"`
	Email       *string   `json:"email,omitempty"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	HasPassword bool      `json:"hasPassword"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Session is the outcome of a login, register or refresh call.
type Session struct {
	User            User
	AccessExpiresAt time.Time
}

// APIError is a non-2xx response other than 401.
type APIError struct {
	Status int
	Code   string
	Msg    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("apiclient: %d %s: %s", e.Status, e.Code, e.Msg)
}

// Client talks to one zine API base URL.
type Client struct {
	baseURL   string
	http      *http.Client
	log       *slog.Logger
	now       func() time.Time
	lead      time.Duration
	refresher *Refresher
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Its Jar is replaced
// when nil.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used by background refreshes.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithAutoRefresh makes Login and Register start a Refresher that renews
// the session lead before each access token expires.
func WithAutoRefresh(lead time.Duration) Option {
	return func(c *Client) { c.lead = lead }
}

// New creates a Client for baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("apiclient: cookie jar: %w", err)
		}
		c.http.Jar = jar
	}

	return c, nil
}

// Register creates a contributor identity and opens a session.
func (c *Client) Register(ctx context.Context, name, email, password string) (Session, error) {
	body := map[string]any{"name": name}
	if email != "" {
		body["email"] = email
	}
	if password != "" {
		body["password"] = password
	}
	return c.openSession(ctx, "/auth/register", body)
}

// Login opens a session for email and password.
func (c *Client) Login(ctx context.Context, email, password string, rememberMe bool) (Session, error) {
	return c.openSession(ctx, "/auth/login", map[string]any{
		"email":      email,
		"password":   password,
		"rememberMe": rememberMe,
	})
}

func (c *Client) openSession(ctx context.Context, path string, body any) (Session, error) {
	s, err := c.session(ctx, path, body)
	if err != nil {
		return Session{}, err
	}
	if c.lead > 0 {
		c.stopRefresher()
		c.refresher = NewRefresher(c.refreshExpiry, c.lead, c.log)
		c.refresher.Start(s.AccessExpiresAt)
	}
	return s, nil
}

// Refresh exchanges the refresh cookie for a new cookie pair.
func (c *Client) Refresh(ctx context.Context) (Session, error) {
	return c.session(ctx, "/auth/refresh", nil)
}

func (c *Client) refreshExpiry(ctx context.Context) (time.Time, error) {
	s, err := c.Refresh(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return s.AccessExpiresAt, nil
}

// Me returns the identity of the current session.
func (c *Client) Me(ctx context.Context) (User, error) {
	var env struct {
		User User `json:"user"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/auth/me", nil, &env); err != nil {
		return User{}, err
	}
	return env.User, nil
}

// Logout stops any background refresh and ends the session on the server.
func (c *Client) Logout(ctx context.Context) error {
	c.stopRefresher()
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	return err
}

// Close stops background refreshes without contacting the server.
func (c *Client) Close() { c.stopRefresher() }

func (c *Client) stopRefresher() {
	if c.refresher != nil {
		c.refresher.Stop()
		c.refresher = nil
	}
}

func (c *Client) session(ctx context.Context, path string, body any) (Session, error) {
	var env struct {
		User User `json:"user"`
	}
	resp, err := c.do(ctx, http.MethodPost, path, body, &env)
	if err != nil {
		return Session{}, err
	}
	return Session{User: env.User, AccessExpiresAt: c.accessExpiry(resp)}, nil
}

// accessExpiry reads the access cookie lifetime from the response.
func (c *Client) accessExpiry(resp *http.Response) time.Time {
	now := c.now()
	for _, ck := range resp.Cookies() {
		if ck.Name != accessCookieName {
			continue
		}
		if ck.MaxAge > 0 {
			return now.Add(time.Duration(ck.MaxAge) * time.Second)
		}
		if !ck.Expires.IsZero() {
			return ck.Expires
		}
	}
	return now.Add(defaultAccessTTL)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("apiclient: encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("apiclient: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthenticated
	}
	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return nil, &APIError{Status: resp.StatusCode, Code: e.Code, Msg: e.Error}
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("apiclient: decode response: %w", err)
		}
	}
	return resp, nil
}
