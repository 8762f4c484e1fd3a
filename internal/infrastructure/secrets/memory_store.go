package secrets

import (
	"context"

	cache "github.com/patrickmn/go-cache"
)

// MemoryStore is a process-local store for development and tests. Values
// never expire; lifecycle is driven by explicit deletes and lazy eviction on
// the read path, same as the durable backends.
type MemoryStore struct {
	c *cache.Cache
}

// NewMemoryStore builds an in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{c: cache.New(cache.NoExpiration, cache.NoExpiration)}
}

func (s *MemoryStore) Get(ctx context.Context, key, principal string) ([]byte, error) {
	if principal == "" {
		return nil, ErrPrincipalRequired
	}
	if v, found := s.c.Get(storageKey(principal, key)); found {
		return v.([]byte), nil
	}
	return nil, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte, principal string) error {
	if principal == "" {
		return ErrPrincipalRequired
	}
	buf := make([]byte, len(value))
	copy(buf, value)
	s.c.Set(storageKey(principal, key), buf, cache.NoExpiration)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key, principal string) error {
	if principal == "" {
		return ErrPrincipalRequired
	}
	s.c.Delete(storageKey(principal, key))
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}
