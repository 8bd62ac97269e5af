package store

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisFingerprints implements FingerprintStore on a redis set per owner key.
// Useful when several instances should share one dedup history.
type RedisFingerprints struct {
	client *redis.Client
}

// NewRedisFingerprints connects to redis at addr and verifies the connection.
func NewRedisFingerprints(ctx context.Context, addr string) (*RedisFingerprints, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisFingerprints{client: client}, nil
}

func (r *RedisFingerprints) Close() error {
	return r.client.Close()
}

func fingerprintKey(ownerKey string) string {
	return "fingerprints:" + ownerKey
}

func (r *RedisFingerprints) Add(ctx context.Context, ownerKey, fingerprint string) error {
	return r.client.SAdd(ctx, fingerprintKey(ownerKey), fingerprint).Err()
}

func (r *RedisFingerprints) Has(ctx context.Context, ownerKey, fingerprint string) (bool, error) {
	return r.client.SIsMember(ctx, fingerprintKey(ownerKey), fingerprint).Result()
}

func (r *RedisFingerprints) List(ctx context.Context, ownerKey string) ([]string, error) {
	return r.client.SMembers(ctx, fingerprintKey(ownerKey)).Result()
}

func (r *RedisFingerprints) Clear(ctx context.Context, ownerKey string) error {
	return r.client.Del(ctx, fingerprintKey(ownerKey)).Err()
}
