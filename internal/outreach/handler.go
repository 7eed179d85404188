package outreach

import (
	"encoding/json"
	"net/http"

	"github.com/bcnlabs/prospect-ai-platform/internal/auth"
	"github.com/bcnlabs/prospect-ai-platform/internal/geo"
	"github.com/bcnlabs/prospect-ai-platform/pkg/logging"
)

// Handler handles HTTP requests for message generation
type Handler struct {
	generator *Generator
	logger    *logging.Logger
}

// NewHandler creates a new outreach handler
func NewHandler(generator *Generator, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		generator: generator,
		logger:    logger,
	}
}

// Generate handles POST /messages/generate requests. Generation never hard
// fails; the response always carries a usable message.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode message request", "error", err)
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	// Viewer's profile location decides the language when the prospect
	// record carries no country.
	if req.Country == "" {
		req.Country = geo.ResolveCountry(principal.Metadata)
	}

	message := h.generator.Generate(r.Context(), req)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
