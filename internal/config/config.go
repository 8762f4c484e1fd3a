package config

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Config holds the gateway's configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Graph    GraphConfig    `mapstructure:"graph"`
	Secrets  SecretsConfig  `mapstructure:"secrets"`
	Vault    VaultConfig    `mapstructure:"vault"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Session  SessionConfig  `mapstructure:"session"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Audit    AuditConfig    `mapstructure:"audit"`
	Log      LogConfig      `mapstructure:"log"`
	Tracing  TracingConfig  `mapstructure:"tracing"`

	// Development gates verbose per-request debug logging. It is stored
	// behind an atomic so a config-file change can flip it live.
	Development bool `mapstructure:"development"`

	development atomic.Bool
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	PprofEnabled bool          `mapstructure:"pprof_enabled"`
}

func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type GraphConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	CallTimeout time.Duration `mapstructure:"call_timeout"`
	// ProbeOnValidate enables the remote identity probe during full
	// external-token validation.
	ProbeOnValidate bool `mapstructure:"probe_on_validate"`
	// RequiredScopes must all appear in an injected token's scope claim.
	RequiredScopes []string `mapstructure:"required_scopes"`
	// Audiences lists the accepted audience values for injected tokens.
	Audiences []string `mapstructure:"audiences"`
}

// SecretsConfig selects the secret store backend.
type SecretsConfig struct {
	// Backend is one of "vault", "redis", "memory".
	Backend string `mapstructure:"backend"`
	// Namespace prefixes every stored key, isolating gateway instances
	// sharing one backend.
	Namespace string `mapstructure:"namespace"`
}

type VaultConfig struct {
	Address   string `mapstructure:"address"`
	Token     string `mapstructure:"token"`
	MountPath string `mapstructure:"mount_path"`
}

type RedisConfig struct {
	Address      string `mapstructure:"address"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
}

type SessionConfig struct {
	// Backend is "redis" or "memory".
	Backend string        `mapstructure:"backend"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type AuthConfig struct {
	// DeviceJWTSecret verifies gateway-issued device identity tokens.
	// When empty, the device auth middleware is disabled.
	DeviceJWTSecret string `mapstructure:"device_jwt_secret"`
}

type AuditConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TracingConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
	ServiceName    string `mapstructure:"service_name"`
}

// IsDevelopment reports the current value of the development flag.
func (c *Config) IsDevelopment() bool {
	return c.development.Load()
}

// SetDevelopment flips the development flag; called at load time and on
// config-file change.
func (c *Config) SetDevelopment(v bool) {
	c.development.Store(v)
}

// Validate checks essential configuration values.
func (c *Config) Validate() error {
	switch c.Secrets.Backend {
	case "vault", "redis", "memory":
	default:
		return fmt.Errorf("secrets.backend must be vault, redis, or memory, got %q", c.Secrets.Backend)
	}
	switch c.Session.Backend {
	case "redis", "memory":
	default:
		return fmt.Errorf("session.backend must be redis or memory, got %q", c.Session.Backend)
	}
	if c.Secrets.Backend == "vault" && c.Vault.Address == "" {
		return fmt.Errorf("vault.address is required when secrets.backend is vault")
	}
	if (c.Secrets.Backend == "redis" || c.Session.Backend == "redis") && c.Redis.Address == "" {
		return fmt.Errorf("redis.address is required when a redis backend is selected")
	}
	if c.Audit.Enabled && len(c.Audit.Brokers) == 0 {
		return fmt.Errorf("audit.brokers is required when audit is enabled")
	}
	return nil
}
