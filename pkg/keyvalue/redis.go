package keyvalue

import (
	"context"
	"fmt"

	"github.com/ecocraftid/ecocraft-backend/pkg/logger"
	"github.com/ecocraftid/ecocraft-backend/pkg/redis"
)

// RedisStore persists client records in Redis under namespaced keys.
type RedisStore struct {
	client *redis.Client
	logg   *logger.Logger
}

// NewRedisStore wires the redis-backed store.
func NewRedisStore(client *redis.Client, logg *logger.Logger) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &RedisStore{client: client, logg: logg}, nil
}

func (s *RedisStore) Get(ctx context.Context, clientID, key string, dest any) (bool, error) {
	raw, err := s.client.Get(ctx, storageKey(clientID, key))
	if err != nil {
		if redis.IsNil(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", key, err)
	}

	if err := decodeRecord([]byte(raw), dest); err != nil {
		// Unreadable records are discarded, never surfaced (see Store docs).
		if s.logg != nil {
			ctx := s.logg.WithFields(ctx, map[string]any{
				"key":    key,
				"reason": err.Error(),
			})
			s.logg.Warn(ctx, "storage.record_discarded")
		}
		if delErr := s.client.Del(ctx, storageKey(clientID, key)); delErr != nil && s.logg != nil {
			s.logg.Error(ctx, "storage.discard_failed", delErr)
		}
		return false, nil
	}
	return true, nil
}

func (s *RedisStore) Set(ctx context.Context, clientID, key string, value any) error {
	encoded, err := encodeRecord(value)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, storageKey(clientID, key), encoded, 0); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, clientID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	namespaced := make([]string, 0, len(keys))
	for _, key := range keys {
		namespaced = append(namespaced, storageKey(clientID, key))
	}
	if err := s.client.Del(ctx, namespaced...); err != nil {
		return fmt.Errorf("deleting records: %w", err)
	}
	return nil
}

func storageKey(clientID, key string) string {
	return redis.Key("client", clientID, key)
}
