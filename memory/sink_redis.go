package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hupe1980/synapseflow/core"
)

// DefaultRedisKey is the key the record mapping is stored under when no
// other key is configured.
const DefaultRedisKey = "synapseflow:memory"

// RedisSink persists the record mapping as a single JSON value in Redis.
type RedisSink struct {
	rdb *redis.Client
	key string
}

// NewRedisSink creates a sink on top of an existing Redis client. An empty
// key falls back to DefaultRedisKey.
func NewRedisSink(rdb *redis.Client, key string) *RedisSink {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisSink{rdb: rdb, key: key}
}

// Load implements core.Sink. A missing key yields an empty mapping.
func (s *RedisSink) Load() (map[string][]core.Record, error) {
	raw, err := s.rdb.Get(context.Background(), s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return map[string][]core.Record{}, nil
		}
		return nil, fmt.Errorf("read redis sink: %w", err)
	}

	records := map[string][]core.Record{}
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode redis sink: %w", err)
	}
	return records, nil
}

// Save implements core.Sink.
func (s *RedisSink) Save(records map[string][]core.Record) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode redis sink: %w", err)
	}

	if err := s.rdb.Set(context.Background(), s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("write redis sink: %w", err)
	}
	return nil
}
