package rest

import (
	"net/http"

	"github.com/heartmarshall/regatta-backend/internal/transport/middleware"
)

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Health *HealthHandler
	Data   *DataHandler
	Chat   *ChatHandler
	Upload *UploadHandler
}

// Routes holds per-route middleware and the optional metrics endpoint.
// Nil middleware is skipped.
type Routes struct {
	ChatLimit   middleware.Middleware
	UploadLimit middleware.Middleware
	Admin       middleware.Middleware
	MetricsPath string
	Metrics     http.Handler
}

// NewRouter mounts every endpoint on a new ServeMux.
func NewRouter(h Handlers, rt Routes) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("GET /api/data", h.Data.List)
	mux.HandleFunc("GET /api/data/search", h.Data.Search)
	mux.HandleFunc("GET /api/data/top-sailors", h.Data.TopSailors)
	mux.HandleFunc("GET /api/data/club-skippers", h.Data.ClubSkippers)
	mux.HandleFunc("GET /api/data/club-summary", h.Data.ClubSummary)
	mux.HandleFunc("GET /api/data/regatta-results", h.Data.RegattaResults)
	mux.HandleFunc("GET /api/data/stats", h.Data.Stats)
	mux.HandleFunc("GET /api/data/regatta-count", h.Data.RegattaCount)
	mux.HandleFunc("GET /api/data/data-quality-report", h.Data.DataQuality)
	mux.HandleFunc("GET /api/data/top-clubs", h.Data.TopClubs)
	mux.HandleFunc("GET /api/data/most-active-sailor", h.Data.MostActiveSailor)
	mux.HandleFunc("GET /api/data/regatta-stats", h.Data.RegattaStats)
	mux.HandleFunc("GET /api/data/regattas", h.Data.Regattas)

	mux.Handle("POST /api/chat", middleware.Chain(rt.ChatLimit)(http.HandlerFunc(h.Chat.Ask)))
	mux.Handle("POST /api/upload", middleware.Chain(rt.UploadLimit)(http.HandlerFunc(h.Upload.Upload)))
	mux.Handle("POST /api/upload/clear", middleware.Chain(rt.UploadLimit, rt.Admin)(http.HandlerFunc(h.Upload.Clear)))

	if rt.Metrics != nil && rt.MetricsPath != "" {
		mux.Handle("GET "+rt.MetricsPath, rt.Metrics)
	}
	return mux
}
