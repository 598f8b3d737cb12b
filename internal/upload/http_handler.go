package upload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rpattn/csvcheck/internal/report"
	"github.com/rpattn/csvcheck/internal/validation"

	"github.com/rs/zerolog"
)

const (
	// FormField is the multipart field holding the uploaded file.
	FormField = "file"

	// multipartOverhead leaves room for boundaries and part headers on top of
	// the file size limit.
	multipartOverhead = 64 << 10
	maxFormMemory     = 32 << 20
)

// Handler exposes validation as an HTTP endpoint.
type Handler struct {
	service        *Service
	maxUploadBytes int64
	log            zerolog.Logger
}

// NewHTTPHandler wraps the service with a POST endpoint.
func NewHTTPHandler(service *Service, maxUploadBytes int64, log zerolog.Logger) *Handler {
	return &Handler{service: service, maxUploadBytes: maxUploadBytes, log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(min(h.maxUploadBytes, maxFormMemory)); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Uploaded file is too large.")
			return
		}
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid form data: %v", err))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile(FormField)
	if err != nil {
		writeError(w, http.StatusBadRequest, "A CSV file upload is required.")
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "Uploaded file is too large.")
		return
	}

	result, err := h.service.Validate(r.Context(), Request{
		FileName: header.Filename,
		Data:     file,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	if strings.EqualFold(r.URL.Query().Get("format"), "xlsx") {
		h.writeWorkbook(w, header.Filename, result)
		return
	}

	writeJSON(w, http.StatusOK, result.Report)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var parseErr *validation.ParseError
	switch {
	case errors.Is(err, ErrNotCSV):
		writeError(w, http.StatusBadRequest, "Uploaded file must be a CSV.")
	case errors.Is(err, ErrEmptyFile):
		writeError(w, http.StatusBadRequest, "Uploaded file is empty.")
	case errors.As(err, &parseErr):
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unable to read CSV: %s", parseErr.Message))
	default:
		h.log.Error().Err(err).Msg("validation failed")
		writeError(w, http.StatusInternalServerError, "Internal server error.")
	}
}

func (h *Handler) writeWorkbook(w http.ResponseWriter, fileName string, result Result) {
	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, result.Report); err != nil {
		h.log.Error().Err(err).Msg("failed to render workbook")
		writeError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	base := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	w.Header().Set("Content-Type", report.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": base + "-report.xlsx",
	}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
