package messages

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestPgStoreInsertText(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	store := NewPgStore(mock)
	mock.ExpectExec("INSERT INTO inbound_messages").
		WithArgs("Alice", "1555", "Hello", int64(1700000000), (*string)(nil), (*string)(nil), (*string)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := store.Insert(context.Background(), InboundMessage{
		SenderName: "Alice",
		ExternalID: "1555",
		Text:       "Hello",
		Timestamp:  1700000000,
	}); err != nil {
		t.Fatalf("insert message: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPgStoreInsertMedia(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	store := NewPgStore(mock)
	mock.ExpectExec("INSERT INTO inbound_messages").
		WithArgs("Bob", "1666", "", int64(1700000100), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := store.Insert(context.Background(), InboundMessage{
		SenderName: "Bob",
		ExternalID: "1666",
		Timestamp:  1700000100,
		Media:      &Media{Kind: MediaImage, MediaID: "media-1", MimeType: "image/jpeg"},
	}); err != nil {
		t.Fatalf("insert media message: %v", err)
	}
}

func TestPgStoreListRecent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	store := NewPgStore(mock)
	rows := pgxmock.NewRows([]string{"sender_display_name", "external_id", "body", "received_at", "media_kind", "media_id", "media_mime_type"}).
		AddRow("Alice", "1555", "newer", int64(1700000100), nil, nil, nil).
		AddRow("Bob", "1666", "", int64(1700000000), "audio", "media-9", "audio/ogg")
	mock.ExpectQuery("SELECT sender_display_name, external_id").
		WithArgs(50).
		WillReturnRows(rows)

	msgs, err := store.ListRecent(context.Background(), 50)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Text != "newer" || msgs[0].Media != nil {
		t.Errorf("unexpected first message: %+v", msgs[0])
	}
	if msgs[1].Media == nil || msgs[1].Media.Kind != MediaAudio || msgs[1].Media.MediaID != "media-9" {
		t.Errorf("expected audio media on second message, got %+v", msgs[1].Media)
	}
}
