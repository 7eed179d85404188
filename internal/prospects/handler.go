package prospects

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bcnlabs/prospect-ai-platform/internal/auth"
	"github.com/bcnlabs/prospect-ai-platform/internal/directory"
	"github.com/bcnlabs/prospect-ai-platform/pkg/logging"
)

// Handler handles HTTP requests for prospects
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new prospects handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// SearchRequest is the optional body for POST /prospects/search.
type SearchRequest struct {
	Country string `json:"country"`
}

// Search handles POST /prospects/search requests
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	// Body is optional; an empty or absent body means "use profile location".
	var req SearchRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	result, err := h.service.Search(r.Context(), principal, req.Country)
	if err != nil {
		h.writeSearchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Success:        true,
		Prospects:      result.Prospects,
		Count:          result.Count,
		SearchLocation: result.SearchLocation,
		SearchTitles:   result.SearchTitles,
	})
}

type searchResponse struct {
	Success        bool       `json:"success"`
	Prospects      []Prospect `json:"prospects"`
	Count          int        `json:"count"`
	SearchLocation string     `json:"searchLocation"`
	SearchTitles   []string   `json:"searchTitles"`
}

func (h *Handler) writeSearchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, directory.ErrMissingAPIKey):
		h.logger.Error("search rejected: directory key not configured")
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "directory API key not configured",
		})
	case directory.IsDirectoryError(err):
		h.logger.Error("search failed upstream", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": "prospect search failed, please retry",
		})
	default:
		h.logger.Error("search failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal server error",
		})
	}
}

// List handles GET /prospects requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	list, err := h.service.List(r.Context(), principal.ID)
	if err != nil {
		h.logger.Error("failed to list prospects", "error", err, "owner_id", principal.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list prospects"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"prospects": list,
		"count":     len(list),
	})
}

// Delete handles DELETE /prospects/{id} requests
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing prospect id"})
		return
	}

	if err := h.service.Delete(r.Context(), principal.ID, id); err != nil {
		if errors.Is(err, ErrProspectNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "prospect not found"})
			return
		}
		h.logger.Error("failed to delete prospect", "error", err, "id", id)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete prospect"})
		return
	}

	h.logger.Info("prospect deleted", "id", id, "owner_id", principal.ID)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
