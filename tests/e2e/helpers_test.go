//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/regatta-backend/internal/adapter/postgres"
	"github.com/heartmarshall/regatta-backend/internal/adapter/postgres/regatta"
	"github.com/heartmarshall/regatta-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/regatta-backend/internal/app"
	"github.com/heartmarshall/regatta-backend/internal/config"
	"github.com/heartmarshall/regatta-backend/internal/transport/middleware"
	"github.com/heartmarshall/regatta-backend/pkg/metrics"
)

const adminToken = "e2e-admin-token"

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper). The results table is emptied
// first, so tests in this package must not run in parallel.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	_, err := pool.Exec(context.Background(), "DELETE FROM regatta_results")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	hash, err := bcrypt.GenerateFromPassword([]byte(adminToken), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,OPTIONS",
			AllowedHeaders: "Content-Type,X-Admin-Token",
			MaxAge:         86400,
		},
		RateLimit: config.RateLimitConfig{ChatPerMinute: 100, UploadPerMinute: 100, CleanupInterval: time.Minute},
		LLM:       config.LLMConfig{Provider: config.ProviderNone},
		Search:    config.SearchConfig{FilterRowCap: 100, DefaultAggregateLim: 10, QualityReportLimit: 100},
		Upload:    config.UploadConfig{MaxBytes: 1 << 20, FormField: "csvFile"},
		Admin:     config.AdminConfig{TokenHash: string(hash)},
		Metrics:   config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}

	m := metrics.NewManager()
	svcs := app.NewServices(logger, regatta.New(pool), postgres.NewTxManager(pool), nil, cfg.Search, m)

	rl := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	t.Cleanup(rl.Stop)

	srv := httptest.NewServer(app.NewHandler(cfg, svcs, pool, rl, m, logger))
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// getJSON sends a GET request and returns status + decoded body.
func (ts *testServer) getJSON(t *testing.T, path string) (int, map[string]any) {
	t.Helper()

	resp, err := ts.Client.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	return resp.StatusCode, decodeBody(t, resp.Body)
}

// postJSON sends a JSON POST request and returns status + decoded body.
func (ts *testServer) postJSON(t *testing.T, path string, payload any, headers map[string]string) (int, map[string]any) {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	return resp.StatusCode, decodeBody(t, resp.Body)
}

// uploadCSV posts content as a multipart CSV upload.
func (ts *testServer) uploadCSV(t *testing.T, filename, content string) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("csvFile", filename)
	require.NoError(t, err)
	_, err = io.WriteString(fw, content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := ts.Client.Post(ts.URL+"/api/upload", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()

	return resp.StatusCode, decodeBody(t, resp.Body)
}

func decodeBody(t *testing.T, r io.Reader) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(r).Decode(&body))
	return body
}

// dataList extracts the "data" array of an envelope.
func dataList(t *testing.T, body map[string]any) []any {
	t.Helper()
	data, ok := body["data"].([]any)
	require.True(t, ok, "expected data array, got %T", body["data"])
	return data
}
