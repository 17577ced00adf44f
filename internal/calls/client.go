package calls

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL   = "https://api.elevenlabs.io/v1"
	defaultUserAgent = "commshub/0.1"
)

// Config controls how the voice call-log client behaves.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
	UserAgent  string
}

// Client reads conversation records from the voice provider. The API key is
// per-customer, so it travels with each call rather than living on the
// client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	userAgent  string
}

func New(cfg Config) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
		userAgent:  userAgent,
	}
}

// ListCalls fetches the conversation list and then each conversation's
// detail. A failed detail fetch skips that record; the dashboard tolerates
// holes rather than failing the whole query.
func (c *Client) ListCalls(ctx context.Context, apiKey string, limit int) ([]CallRecord, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("calls: api key required")
	}
	if limit <= 0 {
		limit = 50
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	var list conversationList
	if err := c.get(ctx, apiKey, "/convai/conversations?"+q.Encode(), &list); err != nil {
		return nil, fmt.Errorf("calls: list conversations: %w", err)
	}

	out := make([]CallRecord, 0, len(list.Conversations))
	for _, conv := range list.Conversations {
		var detail conversationDetail
		if err := c.get(ctx, apiKey, "/convai/conversations/"+url.PathEscape(conv.ConversationID), &detail); err != nil {
			c.logger.Warn("skipping call with unreadable detail",
				"conversation_id", conv.ConversationID, "error", err)
			continue
		}
		out = append(out, detail.toRecord())
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, apiKey, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("xi-api-key", apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("http status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type conversationList struct {
	Conversations []struct {
		ConversationID string `json:"conversation_id"`
	} `json:"conversations"`
}

type conversationDetail struct {
	ConversationID string `json:"conversation_id"`
	HasAudio       bool   `json:"has_audio"`
	Metadata       struct {
		StartTimeUnixSecs int64 `json:"start_time_unix_secs"`
		CallDurationSecs  int   `json:"call_duration_secs"`
		PhoneCall         struct {
			ExternalNumber string `json:"external_number"`
			Direction      string `json:"direction"`
		} `json:"phone_call"`
	} `json:"metadata"`
	Analysis struct {
		TranscriptSummary string `json:"transcript_summary"`
	} `json:"analysis"`
	Transcript []struct {
		Role    string `json:"role"`
		Message string `json:"message"`
	} `json:"transcript"`
}

func (d conversationDetail) toRecord() CallRecord {
	rec := CallRecord{
		ID:             d.ConversationID,
		ExternalNumber: d.Metadata.PhoneCall.ExternalNumber,
		Direction:      DirectionIncoming,
		StartTime:      d.Metadata.StartTimeUnixSecs,
		DurationSecs:   d.Metadata.CallDurationSecs,
		Summary:        d.Analysis.TranscriptSummary,
	}
	if strings.EqualFold(d.Metadata.PhoneCall.Direction, "outbound") {
		rec.Direction = DirectionOutgoing
	}
	if d.HasAudio {
		rec.RecordingID = d.ConversationID
	}
	lines := make([]string, 0, len(d.Transcript))
	for _, turn := range d.Transcript {
		if strings.TrimSpace(turn.Message) == "" {
			continue
		}
		lines = append(lines, turn.Role+": "+turn.Message)
	}
	rec.Transcript = strings.Join(lines, "\n")
	return rec
}
