package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/graphgate/graphgate/pkg/logger"
)

// RedisStore keeps sessions in Redis with a sliding TTL: each save resets the
// expiry.
type RedisStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewRedisStore builds a Redis session store on an existing client.
func NewRedisStore(rdb *redis.Client, ttl time.Duration, log logger.Logger) *RedisStore {
	return &RedisStore{
		rdb:    rdb,
		ttl:    ttl,
		logger: log.WithComponent("RedisSessionStore"),
	}
}

func sessionKey(id string) string {
	return fmt.Sprintf("graphgate:session:%s", id)
}

// Get loads a session; a missing or expired id returns (nil, nil).
func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		s.logger.Error(ctx, "session read failed", err, logger.Fields{"session_id": id})
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", id, err)
	}
	return &sess, nil
}

// Save persists the session and resets its TTL.
func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, sessionKey(sess.ID), raw, s.ttl).Err(); err != nil {
		s.logger.Error(ctx, "session write failed", err, logger.Fields{"session_id": sess.ID})
		return err
	}
	return nil
}

// Delete removes a session.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKey(id)).Err()
}
