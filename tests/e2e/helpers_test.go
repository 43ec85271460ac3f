//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/zine-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/zine-backend/internal/app"
	"github.com/heartmarshall/zine-backend/internal/auth"
	"github.com/heartmarshall/zine-backend/internal/config"
	"github.com/heartmarshall/zine-backend/internal/domain"
)

// testServer wraps the full application stack behind httptest.
type testServer struct {
	URL    string
	Pool   *pgxpool.Pool
	tokens *auth.TokenService
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test"},
		Auth: config.AuthConfig{
			JWTSecret:        "test-secret-at-least-32-chars-long!!",
			JWTIssuer:        "zine-test",
			AccessTokenTTL:   15 * time.Minute,
			RefreshTokenTTL:  7 * 24 * time.Hour,
			RememberMeTTL:    30 * 24 * time.Hour,
			PasswordHashCost: 4,
			RevokeOnRotate:   true,
		},
		RateLimit: config.RateLimitConfig{
			Store:         "memory",
			SweepInterval: time.Minute,
			Auth:          config.QuotaConfig{Limit: 5, Window: time.Minute},
			Register:      config.QuotaConfig{Limit: 3, Window: time.Hour},
			Upload:        config.QuotaConfig{Limit: 10, Window: time.Hour},
			Submission:    config.QuotaConfig{Limit: 20, Window: time.Hour},
		},
		Audit: config.AuditConfig{FailurePolicy: config.AuditPolicyStrict},
		CORS: config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type,X-Session-Id",
			AllowCredentials: true,
			MaxAge:           86400,
		},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

// setupTestServer bootstraps the application against the shared
// testcontainers PostgreSQL. Every call gets fresh rate-limit state.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	cfg := testConfig()
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	a, err := app.New(context.Background(), cfg, logger, pool)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	srv := httptest.NewServer(a.Handler())
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Pool:   pool,
		tokens: auth.NewTokenService(cfg.Auth),
	}
}

// newClient returns a client with its own cookie jar, i.e. one browser.
func (ts *testServer) newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar, Timeout: 10 * time.Second}
}

type call struct {
	method  string
	path    string
	body    any
	token   string
	headers map[string]string
}

// do sends c and returns the response with its body already read.
func (ts *testServer) do(t *testing.T, client *http.Client, c call) (*http.Response, []byte) {
	t.Helper()

	var rd io.Reader
	if c.body != nil {
		b, err := json.Marshal(c.body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(c.method, ts.URL+c.path, rd)
	require.NoError(t, err)
	if c.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

// staff seeds an identity with role and returns it with an access token.
func (ts *testServer) staff(t *testing.T, role domain.Role) (domain.Identity, string) {
	t.Helper()
	id := testhelper.SeedIdentity(t, ts.Pool, role)
	pair, err := ts.tokens.Issue(&id, false)
	require.NoError(t, err)
	return id, pair.AccessToken
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), "body: %s", raw)
	return v
}

func cookieNames(resp *http.Response) []string {
	var names []string
	for _, c := range resp.Cookies() {
		names = append(names, c.Name)
	}
	return names
}

type userBody struct {
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	} `json:"user"`
}

type submissionBody struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Anonymous   bool   `json:"anonymous"`
	ReviewedBy  string `json:"reviewedBy"`
	ReviewNotes string `json:"reviewNotes"`
}

type editionBody struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	IsPublic bool   `json:"isPublic"`
	Slug     string `json:"slug"`
	Items    []struct {
		ID           string `json:"id"`
		SubmissionID string `json:"submissionId"`
		DisplayOrder int    `json:"displayOrder"`
		LikeCount    int    `json:"likeCount"`
	} `json:"items"`
}

type auditPage struct {
	Items []struct {
		Action     string         `json:"action"`
		EntityType string         `json:"entityType"`
		EntityID   string         `json:"entityId"`
		ActorID    string         `json:"actorId"`
		Details    map[string]any `json:"details"`
	} `json:"items"`
	Total int `json:"total"`
}

type errorBody struct {
	Error      string `json:"error"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retryAfter"`
}
