// Package secrets implements the namespaced encrypted key/value store that
// holds per-principal external token state. Three backends are provided:
// HashiCorp Vault (KV v2), Redis, and an in-memory store for development and
// tests. All backends share the key layout "<principal>:<scope>".
package secrets

import (
	"context"
	"errors"

	"github.com/graphgate/graphgate/pkg/constants"
)

// ErrPrincipalRequired is returned when a store operation is attempted
// without a principal. Writes without a principal are an invariant violation,
// never a user-facing condition.
var ErrPrincipalRequired = errors.New("secrets: principal required")

// ErrStorageUnavailable wraps any backend failure. Callers map it to a 503.
var ErrStorageUnavailable = errors.New("secrets: storage unavailable")

// Store is the contract for the secret store. Get on a missing key returns
// (nil, nil), not an error. Set is durable before return.
type Store interface {
	Get(ctx context.Context, key, principal string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, principal string) error
	Delete(ctx context.Context, key, principal string) error

	// Ping verifies the backend is reachable; used by the readiness probe.
	Ping(ctx context.Context) error
}

// storageKey builds the at-rest key for a (principal, scope) pair.
func storageKey(principal, scope string) string {
	return principal + constants.StorageKeySeparator + scope
}
