package messages

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps messages in process memory. Appends are serialized by a
// mutex because webhook deliveries land concurrently. Intended for
// development; durability is the PgStore's job.
type MemoryStore struct {
	mu   sync.RWMutex
	msgs []InboundMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Insert(ctx context.Context, msg InboundMessage) error {
	s.mu.Lock()
	s.msgs = append(s.msgs, msg)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) ListRecent(ctx context.Context, limit int) ([]InboundMessage, error) {
	s.mu.RLock()
	out := make([]InboundMessage, 0, len(s.msgs))
	for i := len(s.msgs) - 1; i >= 0; i-- {
		out = append(out, s.msgs[i])
	}
	s.mu.RUnlock()

	// Reverse insertion order first so later arrivals win timestamp ties,
	// matching the Postgres store's received_at DESC, id DESC ordering.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
