package webhook

import (
	"encoding/json"
	"strings"
)

// Envelope is the nested WhatsApp Cloud API webhook body:
// entry[0].changes[0].value.{messages[0], contacts[0]}. Decoding it into
// typed structs keeps absent fields from leaking into storage as zero
// values nobody asked for.
type Envelope struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

type Change struct {
	Field string `json:"field"`
	Value Value  `json:"value"`
}

type Value struct {
	MessagingProduct string    `json:"messaging_product"`
	Messages         []Message `json:"messages"`
	Contacts         []Contact `json:"contacts"`
}

// Message is one inbound message. Media is keyed by the declared type, so
// only the matching sub-object is populated.
type Message struct {
	From      string       `json:"from"`
	ID        string       `json:"id"`
	Timestamp EpochString  `json:"timestamp"`
	Type      string       `json:"type"`
	Text      *TextBody    `json:"text"`
	Image     *MediaObject `json:"image"`
	Audio     *MediaObject `json:"audio"`
	Video     *MediaObject `json:"video"`
	Document  *MediaObject `json:"document"`
}

type TextBody struct {
	Body string `json:"body"`
}

type MediaObject struct {
	ID       string `json:"id"`
	MimeType string `json:"mime_type"`
	SHA256   string `json:"sha256"`
	Caption  string `json:"caption"`
}

type Contact struct {
	WaID    string `json:"wa_id"`
	Profile struct {
		Name string `json:"name"`
	} `json:"profile"`
}

// EpochString tolerates both payload revisions: current ones send the
// timestamp as a decimal string, older ones as a bare number.
type EpochString string

func (e *EpochString) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return err
		}
		*e = EpochString(unquoted)
		return nil
	}
	if s == "null" {
		*e = ""
		return nil
	}
	*e = EpochString(s)
	return nil
}

// First returns the message/contact pair from the first entry and change.
// Batched deliveries beyond the first quadruple are dropped.
func (env *Envelope) First() (*Message, *Contact) {
	if len(env.Entry) == 0 || len(env.Entry[0].Changes) == 0 {
		return nil, nil
	}
	value := env.Entry[0].Changes[0].Value
	var msg *Message
	var contact *Contact
	if len(value.Messages) > 0 {
		msg = &value.Messages[0]
	}
	if len(value.Contacts) > 0 {
		contact = &value.Contacts[0]
	}
	return msg, contact
}

// MediaPart returns the sub-object matching the declared type, if any.
func (m *Message) MediaPart() *MediaObject {
	switch m.Type {
	case "image":
		return m.Image
	case "audio":
		return m.Audio
	case "video":
		return m.Video
	case "document":
		return m.Document
	}
	return nil
}
