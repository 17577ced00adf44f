package webhook

import (
	"encoding/json"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/citizenai/commshub/internal/messages"
	"github.com/citizenai/commshub/internal/observability/metrics"
	"github.com/citizenai/commshub/pkg/logging"
)

var webhookTracer = otel.Tracer("commshub.internal.webhook")

// Handler owns the provider-facing webhook endpoint: the verification
// handshake on GET and message ingestion on POST.
type Handler struct {
	verifyToken string
	normalizer  *Normalizer
	store       messages.Store
	logger      *logging.Logger
	metrics     *metrics.WebhookMetrics
}

func NewHandler(verifyToken string, normalizer *Normalizer, store messages.Store, logger *logging.Logger, m *metrics.WebhookMetrics) *Handler {
	if normalizer == nil {
		panic("webhook: normalizer cannot be nil")
	}
	if store == nil {
		panic("webhook: store cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		verifyToken: verifyToken,
		normalizer:  normalizer,
		store:       store,
		logger:      logger,
		metrics:     m,
	}
}

// Verify handles GET /webhook. The provider re-runs this handshake on every
// subscription renewal; the challenge must be echoed back verbatim.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	_, span := webhookTracer.Start(r.Context(), "webhook.verify")
	defer span.End()

	query := r.URL.Query()
	mode := query.Get("hub.mode")
	token := query.Get("hub.verify_token")
	challenge := query.Get("hub.challenge")
	span.SetAttributes(attribute.String("commshub.webhook.mode", mode))

	if mode != "subscribe" || token != h.verifyToken {
		h.logger.Warn("webhook verification rejected", "mode", mode)
		h.metrics.ObserveVerify("rejected")
		w.WriteHeader(http.StatusForbidden)
		return
	}

	h.logger.Info("webhook verified")
	h.metrics.ObserveVerify("ok")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(challenge))
}

// Ingest handles POST /webhook. The provider treats any non-2xx as a
// delivery failure and retries aggressively, so this endpoint acknowledges
// unconditionally; malformed payloads and downstream failures are logged
// and counted, never surfaced in the response code.
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	ctx, span := webhookTracer.Start(r.Context(), "webhook.ingest")
	defer span.End()
	start := time.Now()
	defer func() {
		h.metrics.ObserveLatency("ingest", time.Since(start).Seconds())
	}()

	var env Envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		h.logger.Warn("undecodable webhook body", "error", err)
		h.metrics.ObserveIngest("malformed")
		span.RecordError(err)
		w.WriteHeader(http.StatusOK)
		return
	}

	msg, contact := env.First()
	rec := h.normalizer.Normalize(ctx, msg, contact)
	if rec == nil {
		h.logger.Warn("webhook delivered without message or contact")
		h.metrics.ObserveIngest("skipped")
		w.WriteHeader(http.StatusOK)
		return
	}
	span.SetAttributes(
		attribute.String("commshub.webhook.external_id", rec.ExternalID),
		attribute.Bool("commshub.webhook.has_media", rec.Media != nil),
	)

	if err := h.store.Insert(ctx, *rec); err != nil {
		// Deliberate: a store failure must not trigger provider redelivery.
		h.logger.Error("failed to store inbound message", "error", err, "external_id", rec.ExternalID)
		h.metrics.ObserveIngest("store_error")
		span.RecordError(err)
		w.WriteHeader(http.StatusOK)
		return
	}

	h.logger.Info("inbound message stored",
		"external_id", rec.ExternalID,
		"sender", rec.SenderName,
		"has_media", rec.Media != nil,
	)
	h.metrics.ObserveIngest("stored")
	w.WriteHeader(http.StatusOK)
}
