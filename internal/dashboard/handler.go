// Package dashboard aggregates messages and voice calls for a customer view.
package dashboard

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/citizenai/commshub/internal/calls"
	"github.com/citizenai/commshub/internal/customers"
	"github.com/citizenai/commshub/internal/messages"
	"github.com/citizenai/commshub/pkg/logging"
)

type configStore interface {
	Get(ctx context.Context, customerID string) (*customers.Config, error)
}

type callLister interface {
	ListCalls(ctx context.Context, apiKey string, limit int) ([]calls.CallRecord, error)
}

// CallView is a call record with its associated messages attached.
type CallView struct {
	calls.CallRecord
	Messages []messages.InboundMessage `json:"messages"`
}

// Totals summarizes activity across calls and messages.
type Totals struct {
	CallCount        int     `json:"call_count"`
	TotalDurationSec int     `json:"total_duration_secs"`
	AvgDurationSec   float64 `json:"avg_duration_secs"`
	MessageCount     int     `json:"message_count"`
}

// View is the dashboard response body.
type View struct {
	CustomerID          string     `json:"customer_id"`
	Totals              Totals     `json:"totals"`
	Calls               []CallView `json:"calls"`
	UnassociatedSenders []string   `json:"unassociated_senders"`
}

// Handler builds the combined call/message dashboard. Calls are fetched live
// from the voice provider on every request; only messages come from our
// store.
type Handler struct {
	configs     configStore
	callsClient callLister
	store       messages.Store
	callLimit   int
	pageSize    int
	logger      *logging.Logger
}

func NewHandler(configs configStore, callsClient callLister, store messages.Store, callLimit, pageSize int, logger *logging.Logger) *Handler {
	if configs == nil || callsClient == nil || store == nil {
		panic("dashboard: configs, calls client, and message store are required")
	}
	if callLimit <= 0 {
		callLimit = 50
	}
	if pageSize <= 0 {
		pageSize = 100
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		configs:     configs,
		callsClient: callsClient,
		store:       store,
		callLimit:   callLimit,
		pageSize:    pageSize,
		logger:      logger,
	}
}

// Serve handles GET /customers/{customerID}/dashboard.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerID")
	if customerID == "" {
		http.Error(w, `{"error": "customer_id required"}`, http.StatusBadRequest)
		return
	}
	ctx := r.Context()

	cfg, err := h.configs.Get(ctx, customerID)
	if err != nil {
		h.logger.Error("failed to load customer config", "customer_id", customerID, "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	var callRecords []calls.CallRecord
	if cfg.VoiceAPIKey == "" {
		h.logger.Warn("customer has no voice api key, skipping calls", "customer_id", customerID)
	} else {
		callRecords, err = h.callsClient.ListCalls(ctx, cfg.VoiceAPIKey, h.callLimit)
		if err != nil {
			h.logger.Error("failed to list calls", "customer_id", customerID, "error", err)
			http.Error(w, `{"error": "failed to load calls"}`, http.StatusInternalServerError)
			return
		}
	}

	msgs, err := h.store.ListRecent(ctx, h.pageSize)
	if err != nil {
		h.logger.Error("failed to load messages", "customer_id", customerID, "error", err)
		http.Error(w, `{"error": "failed to load messages"}`, http.StatusInternalServerError)
		return
	}

	view := View{
		CustomerID:          customerID,
		Calls:               make([]CallView, 0, len(callRecords)),
		UnassociatedSenders: calls.Unassociated(msgs, callRecords),
	}
	totalDuration := 0
	for _, rec := range callRecords {
		totalDuration += rec.DurationSecs
		view.Calls = append(view.Calls, CallView{
			CallRecord: rec,
			Messages:   calls.MessagesFor(rec, msgs),
		})
	}
	view.Totals = Totals{
		CallCount:        len(callRecords),
		TotalDurationSec: totalDuration,
		MessageCount:     len(msgs),
	}
	if len(callRecords) > 0 {
		view.Totals.AvgDurationSec = float64(totalDuration) / float64(len(callRecords))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		h.logger.Error("failed to encode dashboard", "customer_id", customerID, "error", err)
	}
}
