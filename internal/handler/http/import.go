package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/worktravel/worktravel-api/internal/domain/csvimport"
	"github.com/worktravel/worktravel-api/internal/handler/http/response"
)

type ImportHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
}

type importHandlerImpl struct {
	importService  csvimport.ImportService
	maxUploadBytes int64
}

func NewImportHandler(importService csvimport.ImportService, maxUploadBytes int64) ImportHandler {
	return &importHandlerImpl{
		importService:  importService,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload handles POST /workdays/import with the CSV in the multipart field "file".
func (h *importHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	// Leave room for the multipart envelope; the service enforces the file limit.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			response.HandleError(w, csvimport.ErrFileTooLarge)
			return
		}
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "File is required", map[string]string{"file": "file is required"})
		return
	}
	defer file.Close()

	result, err := h.importService.Import(r.Context(), p.UserID, fileHeader.Filename, file)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, fmt.Sprintf("Imported %d of %d rows", result.RowsSaved, result.RowsRead), result)
}

// History handles GET /imports
func (h *importHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	results, err := h.importService.History(r.Context(), p.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Download handles GET /imports/{id}/file and streams the archived upload.
func (h *importHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	rc, log, err := h.importService.OpenArchive(r.Context(), p.UserID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", log.FileName))
	if _, err := io.Copy(w, rc); err != nil {
		slog.Warn("Failed to stream CSV archive", "import_id", log.ID, "error", err)
	}
}
