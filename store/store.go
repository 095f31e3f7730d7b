package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Store-level failures.
var (
	// ErrRedisUnavailable wraps transport-level Redis errors.
	ErrRedisUnavailable = errors.New("redis unavailable")
	// ErrEmailReserved reports an email reservation already held by a
	// different aggregate.
	ErrEmailReserved = errors.New("email reserved by another record")
	// ErrCorruptDocument reports a stored document that no longer passes
	// domain validation.
	ErrCorruptDocument = errors.New("corrupt stored document")
)

// Store shares the Redis client and key prefix across the repositories.
type Store struct {
	rdb    redis.UniversalClient
	prefix string
}

// New builds a Store over an already configured client.
func New(rdb redis.UniversalClient, prefix string) (*Store, error) {
	if rdb == nil {
		return nil, errors.New("store requires a redis client")
	}
	if prefix == "" {
		prefix = "shopflow"
	}
	return &Store{rdb: rdb, prefix: prefix}, nil
}

func (s *Store) key(parts ...string) string {
	key := s.prefix
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

// getJSON loads a document; ok is false on a clean miss.
func (s *Store) getJSON(ctx context.Context, key string) (raw []byte, ok bool, err error) {
	val, err := s.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return val, true, nil
}

// reserve writes an index key with SETNX semantics. Re-reserving for the
// same owner is a no-op; a different owner loses.
func (s *Store) reserve(ctx context.Context, key, owner string) error {
	set, err := s.rdb.SetNX(ctx, key, owner, 0).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if set {
		return nil
	}
	current, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if current != owner {
		return ErrEmailReserved
	}
	return nil
}

// resolve follows an index key to its owner id; ok is false on a miss.
func (s *Store) resolve(ctx context.Context, key string) (owner string, ok bool, err error) {
	owner, err = s.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return owner, true, nil
}

func (s *Store) setJSON(ctx context.Context, key string, raw []byte) error {
	if err := s.rdb.Set(ctx, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}
