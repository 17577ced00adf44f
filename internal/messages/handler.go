package messages

import (
	"encoding/json"
	"net/http"

	"github.com/citizenai/commshub/pkg/logging"
)

// Handler serves the persisted message feed.
type Handler struct {
	store    Store
	pageSize int
	logger   *logging.Logger
}

func NewHandler(store Store, pageSize int, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Handler{store: store, pageSize: pageSize, logger: logger}
}

// List handles GET /messages, most-recent-first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.store.ListRecent(r.Context(), h.pageSize)
	if err != nil {
		h.logger.Error("failed to load messages", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "failed to load messages"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(msgs); err != nil {
		h.logger.Error("failed to encode messages", "error", err)
	}
}
