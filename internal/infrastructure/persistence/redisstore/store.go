// Package redisstore implements the repository ports on Redis. Every record
// is stored as one JSON document under a prefixed key; listings scan the
// prefix and filter in memory, which fits the size of a single society's
// book. Business identifiers are minted from Redis counters.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/config"
)

const scanBatch = 200

// Store wraps the Redis client shared by all repositories.
type Store struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, cfg config.RedisConfig) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Store{client: client}, nil
}

// NewWithClient wraps an existing client. Tests use it with miniredis.
func NewWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Ping reports whether the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) setJSON(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// getJSON loads a document into out. A missing key returns redis.Nil for
// the caller to translate into its domain not-found error.
func (s *Store) getJSON(ctx context.Context, key string, out any) error {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}

// forEachJSON scans every document under prefix and hands the raw bytes to
// fn.
func (s *Store) forEachJSON(ctx context.Context, prefix string, fn func(raw []byte) error) error {
	iter := s.client.Scan(ctx, 0, prefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		raw, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue // deleted between scan and get
			}
			return fmt.Errorf("get %s: %w", iter.Val(), err)
		}
		if err := fn(raw); err != nil {
			return err
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan %s: %w", prefix, err)
	}
	return nil
}

// Sequences implements port.Sequences on Redis counters.
type Sequences struct {
	store *Store
}

// NewSequences creates the counter-backed sequence source.
func NewSequences(store *Store) *Sequences {
	return &Sequences{store: store}
}

// Next increments and returns the named counter.
func (s *Sequences) Next(ctx context.Context, name string) (int64, error) {
	n, err := s.store.client.Incr(ctx, "sequences:"+name).Result()
	if err != nil {
		return 0, fmt.Errorf("incr sequence %s: %w", name, err)
	}
	return n, nil
}
