package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/regatta-backend/internal/config"
	"github.com/heartmarshall/regatta-backend/internal/service/ingest"
	"github.com/heartmarshall/regatta-backend/pkg/ctxutil"
)

// multipartMemory is how much of an upload is buffered in memory before
// spilling to temporary files.
const multipartMemory = 8 << 20

type ingestService interface {
	Upload(ctx context.Context, r io.Reader) (ingest.UploadResult, error)
	Clear(ctx context.Context) (int64, error)
}

// UploadHandler serves CSV upload and clear endpoints.
type UploadHandler struct {
	svc       ingestService
	maxBytes  int64
	formField string
	log       *slog.Logger
}

// NewUploadHandler creates an UploadHandler.
func NewUploadHandler(svc ingestService, cfg config.UploadConfig, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		svc:       svc,
		maxBytes:  cfg.MaxBytes,
		formField: cfg.FormField,
		log:       logger.With("handler", "upload"),
	}
}

type uploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ingest.UploadResult
}

type clearResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	RecordsDeleted int64  `json:"recordsDeleted"`
}

// Upload handles POST /api/upload with a multipart CSV file.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxBytes {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d bytes", h.maxBytes))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d bytes", h.maxBytes))
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	file, header, err := r.FormFile(h.formField)
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		writeError(w, http.StatusBadRequest, "only CSV files are allowed")
		return
	}

	res, err := h.svc.Upload(r.Context(), file)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Success:      true,
		Message:      fmt.Sprintf("Successfully uploaded and processed %d records", res.Stored),
		UploadResult: res,
	})
}

// Clear handles POST /api/upload/clear. Requires the admin token.
func (h *UploadHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if !ctxutil.IsAdminCtx(r.Context()) {
		writeError(w, http.StatusForbidden, "admin access required")
		return
	}

	n, err := h.svc.Clear(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, clearResponse{
		Success:        true,
		Message:        "Database cleared successfully",
		RecordsDeleted: n,
	})
}
