package webhook

import (
	"context"
	"strconv"

	"github.com/citizenai/commshub/internal/messages"
	"github.com/citizenai/commshub/internal/whatsapp"
	"github.com/citizenai/commshub/pkg/logging"
)

// MediaResolver confirms a media id resolves at the provider and supplies
// the MIME type when the payload omits it.
type MediaResolver interface {
	MediaMetadata(ctx context.Context, mediaID string) (*whatsapp.MediaMetadata, error)
}

// Normalizer converts provider payload shapes into canonical records.
type Normalizer struct {
	resolver MediaResolver
	logger   *logging.Logger
}

func NewNormalizer(resolver MediaResolver, logger *logging.Logger) *Normalizer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Normalizer{resolver: resolver, logger: logger}
}

// Normalize extracts a canonical message from one raw message/contact pair,
// or returns nil when the payload carries nothing actionable. The media
// metadata lookup is a network call; its failure degrades the record to
// text-only instead of failing normalization.
func (n *Normalizer) Normalize(ctx context.Context, msg *Message, contact *Contact) *messages.InboundMessage {
	if msg == nil || contact == nil {
		return nil
	}

	rec := &messages.InboundMessage{
		SenderName: contact.Profile.Name,
		ExternalID: msg.From,
		Timestamp:  n.parseTimestamp(string(msg.Timestamp)),
	}
	if rec.SenderName == "" {
		rec.SenderName = "Unknown"
	}

	if msg.Type == "text" && msg.Text != nil {
		rec.Text = msg.Text.Body
	}

	if kind, ok := messages.ParseMediaKind(msg.Type); ok {
		rec.Media = n.extractMedia(ctx, kind, msg.MediaPart())
	}
	return rec
}

func (n *Normalizer) extractMedia(ctx context.Context, kind messages.MediaKind, part *MediaObject) *messages.Media {
	if part == nil {
		return nil
	}
	if part.ID == "" {
		n.logger.Warn("media payload missing id", "kind", string(kind))
		return nil
	}
	media := &messages.Media{Kind: kind, MediaID: part.ID, MimeType: part.MimeType}
	if n.resolver != nil {
		meta, err := n.resolver.MediaMetadata(ctx, part.ID)
		if err != nil {
			n.logger.Warn("media metadata lookup failed, storing message without media",
				"media_id", part.ID, "error", err)
			return nil
		}
		if media.MimeType == "" {
			media.MimeType = meta.MimeType
		}
	}
	return media
}

func (n *Normalizer) parseTimestamp(raw string) int64 {
	if raw == "" {
		n.logger.Warn("webhook message missing timestamp")
		return 0
	}
	ts, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		n.logger.Warn("unparseable webhook timestamp, storing zero", "timestamp", raw)
		return 0
	}
	return ts
}
