package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/heartmarshall/regatta-backend/internal/domain"
)

// envelope wraps every successful data response.
type envelope struct {
	Success bool           `json:"success"`
	Count   *int           `json:"count,omitempty"`
	Query   map[string]any `json:"query,omitempty"`
	Data    any            `json:"data"`
}

type errorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

func writeData(w http.ResponseWriter, data any, query map[string]any) {
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Count:   countOf(data),
		Query:   query,
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// handleError maps domain errors onto HTTP statuses and logs unexpected ones.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: vErr.Errors})
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrStoreUnavailable):
		log.ErrorContext(r.Context(), "store unavailable", slog.String("error", err.Error()))
		writeError(w, http.StatusServiceUnavailable, "store unavailable")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// queryInt parses an optional integer query parameter. Absent means 0.
func queryInt(q url.Values, key string) (int, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, domain.NewValidationError(key, "must be an integer")
	}
	return n, nil
}

// queryString returns the first non-blank value among keys.
func queryString(q url.Values, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(q.Get(k)); v != "" {
			return v
		}
	}
	return ""
}

func countOf(data any) *int {
	n := -1
	switch v := data.(type) {
	case []domain.ResultRecord:
		n = len(v)
	case []domain.SailorStats:
		n = len(v)
	case []domain.RegattaStats:
		n = len(v)
	case []domain.ClubStats:
		n = len(v)
	}
	if n < 0 {
		return nil
	}
	return &n
}
