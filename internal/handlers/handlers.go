// Package handlers exposes the catalog integration over HTTP.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"program-catalog/internal/catalog"
	cerrors "program-catalog/internal/common/errors"
	"program-catalog/internal/common/logging"
)

type Handlers struct {
	catalog *catalog.Service
	logger  logging.Logger
}

func New(service *catalog.Service, logger logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	return &Handlers{
		catalog: service,
		logger:  logger,
	}
}

// GetPrograms returns all programs with resolved type objects. Repeated
// "type" query parameters filter by program type name.
func (h *Handlers) GetPrograms(w http.ResponseWriter, r *http.Request) {
	includeTypes := r.URL.Query()["type"]

	programs, err := h.catalog.GetProgramsWithType(r.Context(), includeTypes)
	if err != nil {
		h.writeCatalogError(w, "failed to list programs", err)
		return
	}

	h.writeJSON(w, http.StatusOK, programs)
}

// GetProgram returns the fully enriched program for a marketing slug,
// or 404 when no program matches.
func (h *Handlers) GetProgram(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	program, err := h.catalog.GetProgramWithTypeAndInstructors(r.Context(), slug)
	if err != nil {
		h.writeCatalogError(w, "failed to load program", err)
		return
	}
	if program == nil {
		h.writeError(w, http.StatusNotFound, "program not found")
		return
	}

	h.writeJSON(w, http.StatusOK, program)
}

// GetProgramTypes returns all program types.
func (h *Handlers) GetProgramTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.catalog.GetProgramTypes(r.Context())
	if err != nil {
		h.writeCatalogError(w, "failed to list program types", err)
		return
	}

	h.writeJSON(w, http.StatusOK, types)
}

// HealthCheck reports service liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

// writeCatalogError maps catalog failures onto HTTP statuses. Upstream
// connection failures surface as 502; data inconsistencies such as an
// unknown program type name surface as 500.
func (h *Handlers) writeCatalogError(w http.ResponseWriter, message string, err error) {
	h.logger.Error(message, err)

	status := http.StatusInternalServerError
	if cerrors.IsType(err, cerrors.ErrTypeConnection) {
		status = http.StatusBadGateway
	}

	h.writeError(w, status, message)
}
