// Package customers holds per-customer settings for the ingestion service.
package customers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Config holds customer-specific configuration.
type Config struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name,omitempty"`
	// VoiceAPIKey authenticates against the voice provider's conversation
	// API. Empty means the dashboard skips the call section.
	VoiceAPIKey string `json:"voice_api_key,omitempty"`
}

// DefaultConfig returns the configuration used when a customer has none
// stored yet.
func DefaultConfig(customerID string) *Config {
	return &Config{CustomerID: customerID}
}

// Store persists customer configuration in Redis as JSON blobs.
type Store struct {
	redis *redis.Client
}

func NewStore(redisClient *redis.Client) *Store {
	return &Store{redis: redisClient}
}

func (s *Store) key(customerID string) string {
	return fmt.Sprintf("customer:config:%s", customerID)
}

// Get returns the customer config, or defaults when none is stored.
func (s *Store) Get(ctx context.Context, customerID string) (*Config, error) {
	data, err := s.redis.Get(ctx, s.key(customerID)).Bytes()
	if err == redis.Nil {
		return DefaultConfig(customerID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("customers: get config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("customers: decode config: %w", err)
	}
	if cfg.CustomerID == "" {
		cfg.CustomerID = customerID
	}
	return &cfg, nil
}

// Set stores the customer config. No TTL; config lives until replaced.
func (s *Store) Set(ctx context.Context, cfg *Config) error {
	if cfg == nil || cfg.CustomerID == "" {
		return fmt.Errorf("customers: config requires customer_id")
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("customers: encode config: %w", err)
	}
	if err := s.redis.Set(ctx, s.key(cfg.CustomerID), data, 0).Err(); err != nil {
		return fmt.Errorf("customers: set config: %w", err)
	}
	return nil
}
