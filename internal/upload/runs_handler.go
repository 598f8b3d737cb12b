package upload

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
)

// RunsHandler lists recorded validation runs.
type RunsHandler struct {
	service *Service
	log     zerolog.Logger
}

// NewRunsHandler exposes GET /runs?limit=&offset=.
func NewRunsHandler(service *Service, log zerolog.Logger) *RunsHandler {
	return &RunsHandler{service: service, log: log}
}

func (h *RunsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}

	limit, err := intQuery(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit must be a non-negative integer.")
		return
	}
	offset, err := intQuery(r, "offset")
	if err != nil {
		writeError(w, http.StatusBadRequest, "offset must be a non-negative integer.")
		return
	}

	runs, err := h.service.ListRuns(r.Context(), limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list validation runs")
		writeError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	writeJSON(w, http.StatusOK, runs)
}

// HealthHandler reports liveness.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// NewRouter mounts the upload, run log and health endpoints.
func NewRouter(service *Service, maxUploadBytes int64, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/validate", NewHTTPHandler(service, maxUploadBytes, log))
	mux.Handle("/runs", NewRunsHandler(service, log))
	mux.HandleFunc("/healthz", HealthHandler)
	return mux
}

func intQuery(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, strconv.ErrRange
	}
	return value, nil
}
