package token

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/graphgate/graphgate/internal/infrastructure/secrets"
	"github.com/graphgate/graphgate/pkg/constants"
	"github.com/graphgate/graphgate/pkg/logger"
)

// Store manages the three per-principal secret store entries that make up
// external token state: the raw bearer, its metadata, and the token source
// selector.
type Store struct {
	secrets secrets.Store
	logger  logger.Logger
}

// NewStore builds a token store on the given secret store.
func NewStore(sec secrets.Store, log logger.Logger) *Store {
	return &Store{
		secrets: sec,
		logger:  log.WithComponent("TokenStore"),
	}
}

// Save persists token, metadata, and flips the source to external. The token
// is written last so a reader that sees the token also sees its metadata.
func (s *Store) Save(ctx context.Context, principal, raw string, md *Metadata) error {
	encoded, err := json.Marshal(md)
	if err != nil {
		return fmt.Errorf("encode token metadata: %w", err)
	}
	if err := s.secrets.Set(ctx, constants.ScopeTokenMetadata, encoded, principal); err != nil {
		return err
	}
	if err := s.secrets.Set(ctx, constants.ScopeExternalToken, []byte(raw), principal); err != nil {
		return err
	}
	return s.secrets.Set(ctx, constants.ScopeTokenSource, []byte(constants.TokenSourceExternal), principal)
}

// Token returns the stored raw bearer, or "" when none is stored.
func (s *Store) Token(ctx context.Context, principal string) (string, error) {
	raw, err := s.secrets.Get(ctx, constants.ScopeExternalToken, principal)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Metadata returns the stored metadata, or nil when none is stored.
func (s *Store) Metadata(ctx context.Context, principal string) (*Metadata, error) {
	raw, err := s.secrets.Get(ctx, constants.ScopeTokenMetadata, principal)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var md Metadata
	if err := json.Unmarshal(raw, &md); err != nil {
		return nil, fmt.Errorf("decode token metadata: %w", err)
	}
	return &md, nil
}

// Source returns the principal's token source, defaulting to oauth when
// nothing is stored.
func (s *Store) Source(ctx context.Context, principal string) (constants.TokenSource, error) {
	raw, err := s.secrets.Get(ctx, constants.ScopeTokenSource, principal)
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return constants.TokenSourceOAuth, nil
	}
	switch src := constants.TokenSource(raw); src {
	case constants.TokenSourceOAuth, constants.TokenSourceExternal:
		return src, nil
	default:
		// Unknown stored value; treat as the default rather than failing
		// the request.
		return constants.TokenSourceOAuth, nil
	}
}

// SetSource persists the token source selector.
func (s *Store) SetSource(ctx context.Context, principal string, src constants.TokenSource) error {
	return s.secrets.Set(ctx, constants.ScopeTokenSource, []byte(src), principal)
}

// Evict removes the token and its metadata but leaves the source untouched.
// Used by the lazy garbage collection on read paths that detect an invalid
// stored token.
func (s *Store) Evict(ctx context.Context, principal string) error {
	if err := s.secrets.Delete(ctx, constants.ScopeExternalToken, principal); err != nil {
		return err
	}
	return s.secrets.Delete(ctx, constants.ScopeTokenMetadata, principal)
}

// Clear removes the token and metadata and resets the source to oauth. Used
// by the explicit clear endpoint.
func (s *Store) Clear(ctx context.Context, principal string) error {
	if err := s.Evict(ctx, principal); err != nil {
		return err
	}
	return s.secrets.Set(ctx, constants.ScopeTokenSource, []byte(constants.TokenSourceOAuth), principal)
}
