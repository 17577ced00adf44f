package customers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/citizenai/commshub/pkg/logging"
)

// Handler provides HTTP endpoints for customer configuration management.
type Handler struct {
	store  *Store
	logger *logging.Logger
}

func NewHandler(store *Store, logger *logging.Logger) *Handler {
	if store == nil {
		panic("customers: store is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// GetConfig returns the customer configuration.
// GET /customers/{customerID}/config
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerID")
	if customerID == "" {
		http.Error(w, `{"error": "customer_id required"}`, http.StatusBadRequest)
		return
	}

	cfg, err := h.store.Get(r.Context(), customerID)
	if err != nil {
		h.logger.Error("failed to get customer config", "customer_id", customerID, "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(cfg); err != nil {
		h.logger.Error("failed to encode customer config", "customer_id", customerID, "error", err)
	}
}

// UpdateConfigRequest is the request body for updating customer config.
// Fields are applied as a partial update.
type UpdateConfigRequest struct {
	Name        *string `json:"name,omitempty"`
	VoiceAPIKey *string `json:"voice_api_key,omitempty"`
}

// UpdateConfig creates or updates the customer configuration.
// PUT /customers/{customerID}/config
func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerID")
	if customerID == "" {
		http.Error(w, `{"error": "customer_id required"}`, http.StatusBadRequest)
		return
	}

	var req UpdateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid JSON body"}`, http.StatusBadRequest)
		return
	}

	cfg, err := h.store.Get(r.Context(), customerID)
	if err != nil {
		h.logger.Error("failed to get customer config", "customer_id", customerID, "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	if req.Name != nil {
		cfg.Name = *req.Name
	}
	if req.VoiceAPIKey != nil {
		cfg.VoiceAPIKey = *req.VoiceAPIKey
	}

	if err := h.store.Set(r.Context(), cfg); err != nil {
		h.logger.Error("failed to save customer config", "customer_id", customerID, "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(cfg); err != nil {
		h.logger.Error("failed to encode customer config", "customer_id", customerID, "error", err)
	}
}
