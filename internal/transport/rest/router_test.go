package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/regatta-backend/internal/adapter/memstore"
	"github.com/heartmarshall/regatta-backend/internal/config"
	"github.com/heartmarshall/regatta-backend/internal/domain"
	"github.com/heartmarshall/regatta-backend/internal/service/chat"
	"github.com/heartmarshall/regatta-backend/internal/service/ingest"
	"github.com/heartmarshall/regatta-backend/internal/service/intent"
	"github.com/heartmarshall/regatta-backend/internal/service/report"
	"github.com/heartmarshall/regatta-backend/internal/service/resolver"
	"github.com/heartmarshall/regatta-backend/internal/service/search"
	"github.com/heartmarshall/regatta-backend/internal/transport/middleware"
)

const adminToken = "harbor-master"

var searchCfg = config.SearchConfig{FilterRowCap: 100, DefaultAggregateLim: 10, QualityReportLimit: 100}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

type testEnv struct {
	store   *memstore.Store
	handler http.Handler
}

func newTestEnv(t *testing.T, upload config.UploadConfig) *testEnv {
	t.Helper()

	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	store := memstore.New(
		domain.ResultRecord{RegattaName: "Spring Series", RegattaDate: day(2026, 5, 1), BoatName: "Gull", Skipper: "Alice Moore", YachtClub: "SYS Sarasota", Position: "1"},
		domain.ResultRecord{RegattaName: "Harbor Cup", RegattaDate: day(2026, 6, 1), BoatName: "Gull", Skipper: "Alice Moore", YachtClub: "SYS Sarasota", Position: "3"},
		domain.ResultRecord{RegattaName: "Spring Series", RegattaDate: day(2026, 5, 1), BoatName: "Osprey", Skipper: "Ben Ortiz", YachtClub: "MBYC", Position: "2"},
	)

	reports := report.NewService(log, store, searchCfg)
	engine := search.NewEngine(log, store, searchCfg, nil)
	chatSvc := chat.NewService(log,
		intent.NewClassifier(log, nil, nil),
		engine,
		resolver.NewResolver(log, store, reports, nil),
		reports,
		searchCfg,
	)

	hash, err := bcrypt.GenerateFromPassword([]byte(adminToken), bcrypt.MinCost)
	require.NoError(t, err)

	mux := NewRouter(Handlers{
		Health: NewHealthHandler(&dbPingerMock{}, "test", "none"),
		Data:   NewDataHandler(store, engine, reports, log),
		Chat:   NewChatHandler(chatSvc, log),
		Upload: NewUploadHandler(ingest.NewService(log, store, store, nil), upload, log),
	}, Routes{Admin: middleware.AdminToken(string(hash))})

	return &testEnv{store: store, handler: mux}
}

func defaultUpload() config.UploadConfig {
	return config.UploadConfig{MaxBytes: 1 << 20, FormField: "csvFile"}
}

func (e *testEnv) do(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var body map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func multipartUpload(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestRouter_DataEndpoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCount  float64
	}{
		{"all records", "/api/data", http.StatusOK, 3},
		{"search by skipper", "/api/data/search?skipper=Alice%20Moore", http.StatusOK, 2},
		{"search by regatta", "/api/data/search?regatta_name=spring%20series", http.StatusOK, 2},
		{"search without criteria", "/api/data/search", http.StatusBadRequest, -1},
		{"search bad year", "/api/data/search?year=soon", http.StatusBadRequest, -1},
		{"top sailors", "/api/data/top-sailors?yacht_club=sys", http.StatusOK, 1},
		{"top sailors without club", "/api/data/top-sailors", http.StatusBadRequest, -1},
		{"club skippers", "/api/data/club-skippers?club=MBYC", http.StatusOK, 1},
		{"club summary", "/api/data/club-summary?club=SYS%20Sarasota", http.StatusOK, -1},
		{"club summary unknown club", "/api/data/club-summary?club=Nowhere", http.StatusNotFound, -1},
		{"regatta results", "/api/data/regatta-results?regatta_name=Harbor%20Cup", http.StatusOK, 1},
		{"regatta count", "/api/data/regatta-count?year=2026", http.StatusOK, 2},
		{"regatta count without year", "/api/data/regatta-count", http.StatusBadRequest, -1},
		{"stats", "/api/data/stats", http.StatusOK, -1},
		{"data quality", "/api/data/data-quality-report?limit=2", http.StatusOK, -1},
		{"top clubs", "/api/data/top-clubs?limit=1", http.StatusOK, 1},
		{"most active sailor", "/api/data/most-active-sailor", http.StatusOK, -1},
		{"regatta stats", "/api/data/regatta-stats?metric=largest", http.StatusOK, -1},
		{"regattas", "/api/data/regattas?year=2026", http.StatusOK, 2},
		{"regattas bad range", "/api/data/regattas?dateRange=someday", http.StatusBadRequest, -1},
	}

	env := newTestEnv(t, defaultUpload())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec, body := env.do(t, httptest.NewRequest(http.MethodGet, tt.target, nil))
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus != http.StatusOK {
				assert.NotEmpty(t, body["error"])
				return
			}
			assert.Equal(t, true, body["success"])
			if tt.wantCount >= 0 {
				assert.Equal(t, tt.wantCount, body["count"])
			}
		})
	}
}

func TestRouter_ValidationFields(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultUpload())
	rec, body := env.do(t, httptest.NewRequest(http.MethodGet, "/api/data/search?year=soon", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	fields, ok := body["fields"].([]any)
	require.True(t, ok)
	require.Len(t, fields, 1)
	assert.Equal(t, "year", fields[0].(map[string]any)["field"])
}

func TestRouter_Chat(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultUpload())

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"query":"Alice Moore"}`))
	rec, body := env.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "sailor_search", body["queryType"])

	data := body["data"].(map[string]any)
	assert.Len(t, data["results"], 2)

	for _, payload := range []string{`{}`, `{"query":"   "}`, `not json`} {
		rec, _ := env.do(t, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(payload)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, payload)
	}

	rec, _ = env.do(t, httptest.NewRequest(http.MethodGet, "/api/chat", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_Upload(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultUpload())
	csv := "Regatta Name,Date,Place,Sailor,Yacht Club\n" +
		"Fall Classic,2025-10-04,1,Dan Lee,CYC\n" +
		"Fall Classic,2025-10-04,2,Eve Park,\n" +
		"Fall Classic,2025-10-04,3,,CYC\n"

	rec, body := env.do(t, multipartUpload(t, "csvFile", "results.CSV", csv))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 2.0, body["recordsStored"])
	assert.Len(t, body["skipped"], 1)
	assert.NotEmpty(t, body["importId"])
	assert.Equal(t, 5, env.store.Len())
}

func TestRouter_UploadRejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		req        func(t *testing.T) *http.Request
		wantStatus int
	}{
		{
			name:       "not a csv",
			req:        func(t *testing.T) *http.Request { return multipartUpload(t, "csvFile", "results.xlsx", "x") },
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "wrong field",
			req:        func(t *testing.T) *http.Request { return multipartUpload(t, "file", "results.csv", "x") },
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "no valid records",
			req: func(t *testing.T) *http.Request {
				return multipartUpload(t, "csvFile", "results.csv", "Regatta Name,Sailor\nFall Classic,\n")
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "not multipart",
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader("a,b"))
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "too large",
			req: func(t *testing.T) *http.Request {
				return multipartUpload(t, "csvFile", "results.csv", "Regatta Name,Sailor\n"+strings.Repeat("Fall Classic,Dan Lee\n", 100))
			},
			wantStatus: http.StatusRequestEntityTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, config.UploadConfig{MaxBytes: 1024, FormField: "csvFile"})
			rec, _ := env.do(t, tt.req(t))
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, 3, env.store.Len())
		})
	}
}

func TestRouter_Clear(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultUpload())

	rec, _ := env.do(t, httptest.NewRequest(http.MethodPost, "/api/upload/clear", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 3, env.store.Len())

	req := httptest.NewRequest(http.MethodPost, "/api/upload/clear", nil)
	req.Header.Set(middleware.AdminTokenHeader, adminToken)
	rec, body := env.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3.0, body["recordsDeleted"])
	assert.Zero(t, env.store.Len())
}

func TestUploadHandler_ClearRequiresAdminContext(t *testing.T) {
	t.Parallel()

	store := memstore.New()
	h := NewUploadHandler(ingest.NewService(slog.Default(), store, store, nil), defaultUpload(), slog.Default())

	rec := httptest.NewRecorder()
	h.Clear(rec, httptest.NewRequest(http.MethodPost, "/api/upload/clear", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

type unavailableLister struct{}

func (unavailableLister) Recent(context.Context, int) ([]domain.ResultRecord, error) {
	return nil, domain.ErrStoreUnavailable
}

func TestDataHandler_StoreUnavailable(t *testing.T) {
	t.Parallel()

	h := NewDataHandler(unavailableLister{}, nil, nil, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/data", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"store unavailable"}`, rec.Body.String())
}
