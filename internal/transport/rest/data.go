package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/regatta-backend/internal/domain"
	"github.com/heartmarshall/regatta-backend/internal/service/report"
)

type recordLister interface {
	Recent(ctx context.Context, limit int) ([]domain.ResultRecord, error)
}

type recordSearcher interface {
	Search(ctx context.Context, c domain.SearchCriteria) ([]domain.ResultRecord, error)
}

type aggregator interface {
	Aggregate(ctx context.Context, kind domain.AggregateKind, p report.Params) (any, error)
}

// DataHandler serves record listing, search and aggregate endpoints.
type DataHandler struct {
	records recordLister
	search  recordSearcher
	reports aggregator
	log     *slog.Logger
}

// NewDataHandler creates a DataHandler.
func NewDataHandler(records recordLister, search recordSearcher, reports aggregator, logger *slog.Logger) *DataHandler {
	return &DataHandler{
		records: records,
		search:  search,
		reports: reports,
		log:     logger.With("handler", "data"),
	}
}

// List returns every record, newest first.
// GET /api/data
func (h *DataHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.records.Recent(r.Context(), 0)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeData(w, records, nil)
}

// Search runs the ranked search engine.
// GET /api/data/search?skipper=&boat_name=&yacht_club=&regatta_name=&year=&location=
func (h *DataHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year, err := queryInt(q, "year")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	c := domain.SearchCriteria{
		Skipper:     queryString(q, "skipper"),
		BoatName:    queryString(q, "boat_name", "boatName"),
		YachtClub:   queryString(q, "yacht_club", "yachtClub"),
		RegattaName: queryString(q, "regatta_name", "regattaName"),
		Year:        year,
		Location:    queryString(q, "location"),
	}
	if c.IsEmpty() {
		writeError(w, http.StatusBadRequest, "no search criteria provided")
		return
	}

	results, err := h.search.Search(r.Context(), c)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeData(w, results, criteriaQuery(c))
}

// TopSailors handles GET /api/data/top-sailors?yacht_club=&limit=
func (h *DataHandler) TopSailors(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := queryInt(q, "limit")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	club := queryString(q, "yacht_club", "club")
	h.aggregate(w, r, domain.AggregateTopSailors, report.Params{Club: club, Limit: limit},
		map[string]any{"yacht_club": club})
}

// ClubSkippers handles GET /api/data/club-skippers?club=
func (h *DataHandler) ClubSkippers(w http.ResponseWriter, r *http.Request) {
	club := queryString(r.URL.Query(), "club", "yacht_club")
	h.aggregate(w, r, domain.AggregateClubSkippers, report.Params{Club: club},
		map[string]any{"club": club})
}

// ClubSummary handles GET /api/data/club-summary?club=
func (h *DataHandler) ClubSummary(w http.ResponseWriter, r *http.Request) {
	club := queryString(r.URL.Query(), "club", "yacht_club")
	h.aggregate(w, r, domain.AggregateClubSummary, report.Params{Club: club},
		map[string]any{"club": club})
}

// RegattaResults handles GET /api/data/regatta-results?regatta_name=
func (h *DataHandler) RegattaResults(w http.ResponseWriter, r *http.Request) {
	name := queryString(r.URL.Query(), "regatta_name", "regatta")
	h.aggregate(w, r, domain.AggregateRegattaResults, report.Params{Regatta: name},
		map[string]any{"regatta_name": name})
}

// Stats handles GET /api/data/stats
func (h *DataHandler) Stats(w http.ResponseWriter, r *http.Request) {
	h.aggregate(w, r, domain.AggregateDatabaseStatus, report.Params{}, nil)
}

// RegattaCount handles GET /api/data/regatta-count?year=
func (h *DataHandler) RegattaCount(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r.URL.Query(), "year")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	h.aggregate(w, r, domain.AggregateRegattaCount, report.Params{Year: year},
		map[string]any{"year": year})
}

// DataQuality handles GET /api/data/data-quality-report?limit=
func (h *DataHandler) DataQuality(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r.URL.Query(), "limit")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	h.aggregate(w, r, domain.AggregateDataQuality, report.Params{Limit: limit}, nil)
}

// TopClubs handles GET /api/data/top-clubs?limit=
func (h *DataHandler) TopClubs(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r.URL.Query(), "limit")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	h.aggregate(w, r, domain.AggregateTopClubs, report.Params{Limit: limit}, nil)
}

// MostActiveSailor handles GET /api/data/most-active-sailor
func (h *DataHandler) MostActiveSailor(w http.ResponseWriter, r *http.Request) {
	h.aggregate(w, r, domain.AggregateMostActiveSailor, report.Params{}, nil)
}

// RegattaStats handles GET /api/data/regatta-stats?metric=
func (h *DataHandler) RegattaStats(w http.ResponseWriter, r *http.Request) {
	metric := queryString(r.URL.Query(), "metric")
	h.aggregate(w, r, domain.AggregateRegattaStats, report.Params{Metric: metric}, nil)
}

// Regattas handles GET /api/data/regattas?year=&dateRange=&limit=
func (h *DataHandler) Regattas(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year, err := queryInt(q, "year")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	limit, err := queryInt(q, "limit")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	h.aggregate(w, r, domain.AggregateRegattaSearch, report.Params{
		Year:      year,
		DateRange: domain.DateRange(queryString(q, "dateRange", "date_range")),
		Limit:     limit,
	}, nil)
}

func (h *DataHandler) aggregate(w http.ResponseWriter, r *http.Request, kind domain.AggregateKind, p report.Params, query map[string]any) {
	data, err := h.reports.Aggregate(r.Context(), kind, p)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeData(w, data, query)
}

func criteriaQuery(c domain.SearchCriteria) map[string]any {
	q := make(map[string]any)
	set := func(k, v string) {
		if v != "" {
			q[k] = v
		}
	}
	set("skipper", c.Skipper)
	set("boat_name", c.BoatName)
	set("yacht_club", c.YachtClub)
	set("regatta_name", c.RegattaName)
	set("location", c.Location)
	if c.Year > 0 {
		q["year"] = c.Year
	}
	return q
}
