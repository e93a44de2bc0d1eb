package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/infrastructure/api/middlewares"
	"github.com/redis/go-redis/v9"
	"time"
)

const idempotencyPrefix = "idempotency:"

var pending, _ = json.Marshal(middlewares.StoredResponse{})

// IdempotencyStore keeps idempotent responses in Redis under a per-key TTL.
type IdempotencyStore struct {
	client redis.UniversalClient
}

func NewIdempotencyStore(client redis.UniversalClient) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

func (s *IdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, idempotencyPrefix+key, pending, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("reserve idempotency key: %w", err)
	}
	return ok, nil
}

// Get returns nil, nil when the key has expired between Reserve and Get.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (*middlewares.StoredResponse, error) {
	raw, err := s.client.Get(ctx, idempotencyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get idempotency key: %w", err)
	}

	var resp middlewares.StoredResponse
	if err = json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode idempotent response: %w", err)
	}
	return &resp, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, key string, resp middlewares.StoredResponse, ttl time.Duration) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode idempotent response: %w", err)
	}
	if err = s.client.Set(ctx, idempotencyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("save idempotency key: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, idempotencyPrefix+key).Err(); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}

var _ middlewares.IdempotencyStore = (*IdempotencyStore)(nil)
