package secrets

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/graphgate/graphgate/pkg/logger"
)

// RedisStore keeps secrets in Redis under "<namespace>:secrets:<principal>:<scope>".
type RedisStore struct {
	rdb       *redis.Client
	namespace string
	logger    logger.Logger
}

// NewRedisStore builds a Redis-backed store on an existing client.
func NewRedisStore(rdb *redis.Client, namespace string, log logger.Logger) *RedisStore {
	return &RedisStore{
		rdb:       rdb,
		namespace: namespace,
		logger:    log.WithComponent("RedisSecretStore"),
	}
}

func (s *RedisStore) redisKey(key, principal string) string {
	return fmt.Sprintf("%s:secrets:%s", s.namespace, storageKey(principal, key))
}

// Get reads a value; a missing key returns (nil, nil).
func (s *RedisStore) Get(ctx context.Context, key, principal string) ([]byte, error) {
	if principal == "" {
		return nil, ErrPrincipalRequired
	}
	val, err := s.rdb.Get(ctx, s.redisKey(key, principal)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		s.logger.Error(ctx, "redis read failed", err, logger.Fields{"key": key})
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return val, nil
}

// Set writes a value with no expiry; external token lifetime is enforced by
// validation, not by the store.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, principal string) error {
	if principal == "" {
		return ErrPrincipalRequired
	}
	if err := s.rdb.Set(ctx, s.redisKey(key, principal), value, 0).Err(); err != nil {
		s.logger.Error(ctx, "redis write failed", err, logger.Fields{"key": key})
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Delete removes a value; deleting a missing key is not an error.
func (s *RedisStore) Delete(ctx context.Context, key, principal string) error {
	if principal == "" {
		return ErrPrincipalRequired
	}
	if err := s.rdb.Del(ctx, s.redisKey(key, principal)).Err(); err != nil {
		s.logger.Error(ctx, "redis delete failed", err, logger.Fields{"key": key})
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}
