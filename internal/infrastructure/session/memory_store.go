package session

import (
	"context"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// MemoryStore is a process-local session store for development and tests.
type MemoryStore struct {
	c   *cache.Cache
	ttl time.Duration
}

// NewMemoryStore builds an in-memory session store with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		c:   cache.New(ttl, 10*time.Minute),
		ttl: ttl,
	}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	if v, found := s.c.Get(id); found {
		return v.(*Session), nil
	}
	return nil, nil
}

func (s *MemoryStore) Save(ctx context.Context, sess *Session) error {
	s.c.Set(sess.ID, sess, s.ttl)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.c.Delete(id)
	return nil
}
