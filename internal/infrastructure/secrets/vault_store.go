package secrets

import (
	"context"
	"encoding/base64"
	"fmt"

	vault "github.com/hashicorp/vault/api"

	"github.com/graphgate/graphgate/internal/config"
	"github.com/graphgate/graphgate/pkg/logger"
)

// VaultStore keeps secrets in a Vault KV v2 mount. Values are base64-encoded
// inside the secret payload so arbitrary bytes round-trip through Vault's
// JSON representation.
type VaultStore struct {
	client    *vault.Client
	mountPath string
	namespace string
	logger    logger.Logger
}

// NewVaultStore builds a Vault-backed store.
func NewVaultStore(cfg config.VaultConfig, namespace string, log logger.Logger) (*VaultStore, error) {
	vaultCfg := vault.DefaultConfig()
	vaultCfg.Address = cfg.Address
	client, err := vault.NewClient(vaultCfg)
	if err != nil {
		return nil, fmt.Errorf("create vault client: %w", err)
	}
	if cfg.Token != "" {
		client.SetToken(cfg.Token)
	}
	return &VaultStore{
		client:    client,
		mountPath: cfg.MountPath,
		namespace: namespace,
		logger:    log.WithComponent("VaultStore"),
	}, nil
}

func (s *VaultStore) path(key, principal string) string {
	return fmt.Sprintf("%s/data/%s/%s", s.mountPath, s.namespace, storageKey(principal, key))
}

// Get reads a value; a missing secret returns (nil, nil).
func (s *VaultStore) Get(ctx context.Context, key, principal string) ([]byte, error) {
	if principal == "" {
		return nil, ErrPrincipalRequired
	}
	secret, err := s.client.Logical().ReadWithContext(ctx, s.path(key, principal))
	if err != nil {
		s.logger.Error(ctx, "vault read failed", err, logger.Fields{"key": key})
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if secret == nil || secret.Data["data"] == nil {
		return nil, nil
	}
	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: unexpected secret format", ErrStorageUnavailable)
	}
	encoded, ok := data["value"].(string)
	if !ok {
		return nil, nil
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: corrupt secret payload", ErrStorageUnavailable)
	}
	return raw, nil
}

// Set writes a value; durable once Vault acknowledges the write.
func (s *VaultStore) Set(ctx context.Context, key string, value []byte, principal string) error {
	if principal == "" {
		return ErrPrincipalRequired
	}
	payload := map[string]interface{}{
		"data": map[string]interface{}{
			"value": base64.StdEncoding.EncodeToString(value),
		},
	}
	if _, err := s.client.Logical().WriteWithContext(ctx, s.path(key, principal), payload); err != nil {
		s.logger.Error(ctx, "vault write failed", err, logger.Fields{"key": key})
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Delete removes a value; deleting a missing key is not an error.
func (s *VaultStore) Delete(ctx context.Context, key, principal string) error {
	if principal == "" {
		return ErrPrincipalRequired
	}
	metaPath := fmt.Sprintf("%s/metadata/%s/%s", s.mountPath, s.namespace, storageKey(principal, key))
	if _, err := s.client.Logical().DeleteWithContext(ctx, metaPath); err != nil {
		s.logger.Error(ctx, "vault delete failed", err, logger.Fields{"key": key})
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Ping checks Vault health.
func (s *VaultStore) Ping(ctx context.Context) error {
	if _, err := s.client.Sys().HealthWithContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}
