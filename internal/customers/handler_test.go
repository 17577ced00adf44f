package customers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTestHandler(t *testing.T) (*Handler, *Store) {
	t.Helper()
	store := newTestStore(t)
	return NewHandler(store, nil), store
}

func router(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/customers/{customerID}/config", h.GetConfig)
	r.Put("/customers/{customerID}/config", h.UpdateConfig)
	return r
}

func TestGetConfigDefaults(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := httptest.NewRecorder()
	router(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers/cust-1/config", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var cfg Config
	if err := json.NewDecoder(rec.Body).Decode(&cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.CustomerID != "cust-1" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestUpdateConfigPartial(t *testing.T) {
	h, store := newTestHandler(t)
	if err := store.Set(context.Background(), &Config{CustomerID: "cust-1", Name: "Acme"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	body := strings.NewReader(`{"voice_api_key": "xi-new"}`)
	rec := httptest.NewRecorder()
	router(h).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/customers/cust-1/config", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	cfg, err := store.Get(context.Background(), "cust-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cfg.Name != "Acme" || cfg.VoiceAPIKey != "xi-new" {
		t.Errorf("partial update lost fields: %+v", cfg)
	}
}

func TestUpdateConfigBadJSON(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := httptest.NewRecorder()
	router(h).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/customers/cust-1/config", strings.NewReader("{")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
