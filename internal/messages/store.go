package messages

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Store is the persistence boundary for inbound messages. Records are
// append-only; there is no dedup key, so redelivered webhooks produce
// duplicate rows.
type Store interface {
	Insert(ctx context.Context, msg InboundMessage) error
	ListRecent(ctx context.Context, limit int) ([]InboundMessage, error)
}

type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgStore persists inbound messages in Postgres.
type PgStore struct {
	pool Querier
}

func NewPgStore(pool Querier) *PgStore {
	if pool == nil {
		return nil
	}
	return &PgStore{pool: pool}
}

func (s *PgStore) Insert(ctx context.Context, msg InboundMessage) error {
	query := `
		INSERT INTO inbound_messages (
			sender_display_name, external_id, body, received_at,
			media_kind, media_id, media_mime_type
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	var kind, mediaID, mime *string
	if msg.Media != nil {
		k := string(msg.Media.Kind)
		kind = &k
		mediaID = &msg.Media.MediaID
		mime = &msg.Media.MimeType
	}
	_, err := s.pool.Exec(ctx, query, msg.SenderName, msg.ExternalID, msg.Text, msg.Timestamp, kind, mediaID, mime)
	if err != nil {
		return fmt.Errorf("messages: insert message: %w", err)
	}
	return nil
}

func (s *PgStore) ListRecent(ctx context.Context, limit int) ([]InboundMessage, error) {
	query := `
		SELECT sender_display_name, external_id, body, received_at,
			media_kind, media_id, media_mime_type
		FROM inbound_messages
		ORDER BY received_at DESC, id DESC
		LIMIT $1
	`
	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("messages: list recent: %w", err)
	}
	defer rows.Close()
	out := []InboundMessage{}
	for rows.Next() {
		var msg InboundMessage
		var kind, mediaID, mime sql.NullString
		if err := rows.Scan(&msg.SenderName, &msg.ExternalID, &msg.Text, &msg.Timestamp, &kind, &mediaID, &mime); err != nil {
			return nil, fmt.Errorf("messages: scan message: %w", err)
		}
		if kind.Valid {
			msg.Media = &Media{
				Kind:     MediaKind(kind.String),
				MediaID:  mediaID.String,
				MimeType: mime.String,
			}
		}
		out = append(out, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("messages: iterate messages: %w", err)
	}
	return out, nil
}
