package media

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/citizenai/commshub/internal/observability/metrics"
	"github.com/citizenai/commshub/internal/whatsapp"
)

// Resolver is the slice of the Graph client the proxy needs.
type Resolver interface {
	MediaMetadata(ctx context.Context, mediaID string) (*whatsapp.MediaMetadata, error)
	Download(ctx context.Context, url string) (io.ReadCloser, string, error)
}

// Handler proxies media through the two-hop authenticated fetch: resolve the
// media id to a short-lived URL, then stream the binary with our token. The
// URL never reaches the client because it is useless without credentials.
type Handler struct {
	resolver Resolver
	logger   *slog.Logger
	metrics  *metrics.WebhookMetrics
}

func NewHandler(resolver Resolver, logger *slog.Logger, m *metrics.WebhookMetrics) *Handler {
	if resolver == nil {
		panic("media: resolver is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{resolver: resolver, logger: logger, metrics: m}
}

func (h *Handler) Proxy(w http.ResponseWriter, r *http.Request) {
	mediaID := chi.URLParam(r, "mediaID")

	meta, err := h.resolver.MediaMetadata(r.Context(), mediaID)
	if err != nil {
		// An expired or invalid id is a client error, not an outage.
		if whatsapp.IsNotFound(err) {
			h.logger.Warn("media id does not resolve", "media_id", mediaID, "error", err)
			h.metrics.ObserveMediaProxy("no_url")
			writeError(w, http.StatusBadRequest, "media url not found")
			return
		}
		h.logger.Error("media metadata lookup failed", "media_id", mediaID, "error", err)
		h.metrics.ObserveMediaProxy("metadata_error")
		writeError(w, http.StatusInternalServerError, "failed to fetch media")
		return
	}
	if meta.URL == "" {
		h.logger.Warn("media metadata missing url", "media_id", mediaID)
		h.metrics.ObserveMediaProxy("no_url")
		writeError(w, http.StatusBadRequest, "media url not found")
		return
	}

	body, contentType, err := h.resolver.Download(r.Context(), meta.URL)
	if err != nil {
		h.logger.Error("media download failed", "media_id", mediaID, "error", err)
		h.metrics.ObserveMediaProxy("download_error")
		writeError(w, http.StatusInternalServerError, "failed to fetch media")
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	if _, err := io.Copy(w, body); err != nil {
		// Headers are already out; all we can do is log the broken stream.
		h.logger.Error("media stream interrupted", "media_id", mediaID, "error", err)
		h.metrics.ObserveMediaProxy("stream_error")
		return
	}
	h.metrics.ObserveMediaProxy("ok")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
