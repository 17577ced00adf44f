// Package calls consumes the voice provider's call log and correlates it
// with stored messages by phone number.
package calls

// Direction of a voice call relative to the customer.
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

// CallRecord is a read-only view of one voice conversation. The service
// does not own these records; they are re-fetched on every query.
type CallRecord struct {
	ID             string    `json:"id"`
	ExternalNumber string    `json:"external_number"`
	Direction      Direction `json:"direction"`
	StartTime      int64     `json:"start_time"`
	DurationSecs   int       `json:"duration_secs"`
	Summary        string    `json:"transcript_summary"`
	Transcript     string    `json:"transcript_text"`
	RecordingID    string    `json:"recording_reference,omitempty"`
}
