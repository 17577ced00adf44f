package webhook

import (
	"encoding/json"
	"testing"
)

func TestEpochStringAcceptsBothRevisions(t *testing.T) {
	var msg Message
	if err := json.Unmarshal([]byte(`{"timestamp":"1700000000"}`), &msg); err != nil {
		t.Fatalf("string timestamp: %v", err)
	}
	if msg.Timestamp != "1700000000" {
		t.Errorf("expected string timestamp preserved, got %q", msg.Timestamp)
	}

	if err := json.Unmarshal([]byte(`{"timestamp":1700000001}`), &msg); err != nil {
		t.Fatalf("numeric timestamp: %v", err)
	}
	if msg.Timestamp != "1700000001" {
		t.Errorf("expected numeric timestamp normalized, got %q", msg.Timestamp)
	}
}

func TestEnvelopeFirstDropsBatchTail(t *testing.T) {
	body := []byte(`{
		"entry": [{"changes": [{"value": {
			"messages": [{"from": "1555", "type": "text", "text": {"body": "first"}},
			             {"from": "1666", "type": "text", "text": {"body": "second"}}],
			"contacts": [{"wa_id": "1555", "profile": {"name": "Alice"}}]
		}}]}]
	}`)
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	msg, contact := env.First()
	if msg == nil || contact == nil {
		t.Fatal("expected first pair")
	}
	if msg.Text.Body != "first" {
		t.Errorf("expected first message only, got %q", msg.Text.Body)
	}
	if contact.Profile.Name != "Alice" {
		t.Errorf("unexpected contact %+v", contact)
	}
}

func TestEnvelopeFirstEmpty(t *testing.T) {
	var env Envelope
	if msg, contact := env.First(); msg != nil || contact != nil {
		t.Error("expected nil pair for empty envelope")
	}
}
