package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// SeenStore persists, per provider, the booking ids the provider has
// already seen and the number of bookings that arrived since.
type SeenStore interface {
	// LastSeen returns the stored ids. ok is false when no baseline exists yet.
	LastSeen(ctx context.Context, providerID string) (ids []string, ok bool, err error)
	SaveSeen(ctx context.Context, providerID string, ids []string) error
	NewCount(ctx context.Context, providerID string) (int, error)
	SetNewCount(ctx context.Context, providerID string, n int) error
}

// RedisSeenStore keeps poller state in Redis without expiry.
type RedisSeenStore struct {
	client *redis.Client
}

func NewRedisSeenStore(client *redis.Client) *RedisSeenStore {
	return &RedisSeenStore{client: client}
}

func seenKey(providerID string) string  { return "bookings:seen:" + providerID }
func countKey(providerID string) string { return "bookings:new:" + providerID }

func (s *RedisSeenStore) LastSeen(ctx context.Context, providerID string) ([]string, bool, error) {
	raw, err := s.client.Get(ctx, seenKey(providerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read seen bookings for %s: %w", providerID, err)
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, false, fmt.Errorf("corrupt seen bookings for %s: %w", providerID, err)
	}
	return ids, true, nil
}

func (s *RedisSeenStore) SaveSeen(ctx context.Context, providerID string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, seenKey(providerID), string(raw), 0).Err(); err != nil {
		return fmt.Errorf("failed to store seen bookings for %s: %w", providerID, err)
	}
	return nil
}

func (s *RedisSeenStore) NewCount(ctx context.Context, providerID string) (int, error) {
	n, err := s.client.Get(ctx, countKey(providerID)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read new booking count for %s: %w", providerID, err)
	}
	return n, nil
}

func (s *RedisSeenStore) SetNewCount(ctx context.Context, providerID string, n int) error {
	if err := s.client.Set(ctx, countKey(providerID), n, 0).Err(); err != nil {
		return fmt.Errorf("failed to store new booking count for %s: %w", providerID, err)
	}
	return nil
}
