// Package api implements the HTTP endpoints: single-asset conversion,
// bulk export, centroid lookup and map rendering.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"stormgis/internal/core/config"
	"stormgis/internal/core/model"
	"stormgis/internal/encode"
	"stormgis/internal/resolver"
)

// RenderFunc renders a printable map document for a resolved feature.
// Injected so tests do not fetch basemap tiles.
type RenderFunc func(f model.Feature, title string) ([]byte, error)

type Handler struct {
	logger       *slog.Logger
	res          *resolver.Resolver
	render       RenderFunc
	bulkWorkers  int
	bulkMaxItems int
}

func New(logger *slog.Logger, res *resolver.Resolver, cfg config.Config, render RenderFunc) *Handler {
	workers := cfg.BulkWorkers
	if workers < 1 {
		workers = 1
	}
	maxItems := cfg.BulkMaxItems
	if maxItems < 1 {
		maxItems = 500
	}
	return &Handler{
		logger:       logger,
		res:          res,
		render:       render,
		bulkWorkers:  workers,
		bulkMaxItems: maxItems,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/convert", h.Convert)
	r.Post("/bulk", h.Bulk)
	r.Post("/locate", h.Locate)
	r.Post("/map", h.Map)
	r.Get("/hello", h.Hello)
}

// Hello is the liveness payload kept for clients of the original service.
func (h *Handler) Hello(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Service is running.",
		"service": "stormgis",
	})
}

const maxBodyBytes = 1 << 20

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type errorBody struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string, details any) {
	writeJSON(w, status, errorBody{Error: msg, Details: details})
}

// statusFor maps the error taxonomy to HTTP statuses: bad input 400,
// clean miss 404, upstream exhaustion or encoding failure 500.
func statusFor(err error) int {
	var dnf *model.DatasetNotFoundError
	switch {
	case errors.Is(err, model.ErrAssetIDRequired),
		errors.Is(err, model.ErrDatasetRequired),
		errors.Is(err, encode.ErrUnsupportedFormat),
		errors.As(err, &dnf):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNoFeature):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "err", err)
	}
	writeError(w, status, err.Error(), nil)
}
