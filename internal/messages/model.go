package messages

// MediaKind enumerates the WhatsApp payload types that carry media.
type MediaKind string

const (
	MediaImage    MediaKind = "image"
	MediaAudio    MediaKind = "audio"
	MediaVideo    MediaKind = "video"
	MediaDocument MediaKind = "document"
)

// ParseMediaKind reports whether a payload type names a media kind.
func ParseMediaKind(value string) (MediaKind, bool) {
	switch MediaKind(value) {
	case MediaImage, MediaAudio, MediaVideo, MediaDocument:
		return MediaKind(value), true
	}
	return "", false
}

// Media references provider-hosted content attached to a message.
type Media struct {
	Kind     MediaKind `json:"kind"`
	MediaID  string    `json:"media_id"`
	MimeType string    `json:"mime_type"`
}

// InboundMessage is the canonical record extracted from one webhook delivery.
// Timestamp is epoch seconds; older provider payload revisions delivered it
// as a string, so it is normalized to a numeric type at ingestion.
type InboundMessage struct {
	SenderName string `json:"sender_display_name"`
	ExternalID string `json:"external_id"`
	Text       string `json:"text"`
	Timestamp  int64  `json:"timestamp"`
	Media      *Media `json:"media"`
}
