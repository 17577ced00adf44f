package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/citizenai/commshub/internal/messages"
	"github.com/citizenai/commshub/internal/webhook"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store := messages.NewMemoryStore()
	normalizer := webhook.NewNormalizer(nil, nil)
	return New(&Config{
		WebhookHandler:  webhook.NewHandler("verify-secret", normalizer, store, nil, nil),
		MessagesHandler: messages.NewHandler(store, 100, nil),
	})
}

func TestHealthRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("unexpected health body %q", rec.Body.String())
	}
}

func TestWebhookRoutesWired(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=verify-secret&hub.challenge=abc123", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "abc123" {
		t.Fatalf("verify route not wired: %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{}")))
	if rec.Code != http.StatusOK {
		t.Fatalf("ingest route not wired: %d", rec.Code)
	}
}

func TestMessagesRouteWired(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/messages", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("expected empty array, got %q", rec.Body.String())
	}
}

func TestUnknownRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
