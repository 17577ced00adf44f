package messages

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/citizenai/commshub/pkg/logging"
)

type failingStore struct{}

func (failingStore) Insert(ctx context.Context, msg InboundMessage) error { return nil }
func (failingStore) ListRecent(ctx context.Context, limit int) ([]InboundMessage, error) {
	return nil, errors.New("boom")
}

func TestListReturnsMessages(t *testing.T) {
	store := NewMemoryStore()
	_ = store.Insert(context.Background(), InboundMessage{SenderName: "Alice", ExternalID: "1555", Text: "Hello", Timestamp: 1700000000})
	handler := NewHandler(store, 100, logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/messages", nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got []InboundMessage
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].ExternalID != "1555" {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestListEmptyStoreReturnsEmptyArray(t *testing.T) {
	handler := NewHandler(NewMemoryStore(), 100, logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/messages", nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	if body := w.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty JSON array, got %q", body)
	}
}

func TestListStoreFailure(t *testing.T) {
	handler := NewHandler(failingStore{}, 100, logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/messages", nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["error"] == "" {
		t.Fatalf("expected error body, got %v", body)
	}
}
