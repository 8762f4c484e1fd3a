package config

import (
	"context"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/graphgate/graphgate/pkg/constants"
	"github.com/graphgate/graphgate/pkg/logger"
)

// Load reads configuration from file and environment. Environment variables
// use the GRAPHGATE_ prefix with dots replaced by underscores, e.g.
// GRAPHGATE_SERVER_PORT. A config-file change at runtime re-reads only the
// development flag; everything else is fixed at startup.
func Load(log logger.Logger) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("graph.base_url", constants.GraphBaseURL)
	v.SetDefault("graph.call_timeout", constants.GraphCallTimeout.String())
	v.SetDefault("graph.probe_on_validate", false)
	v.SetDefault("graph.audiences", []string{"https://graph.microsoft.com", "00000003-0000-0000-c000-000000000000"})
	v.SetDefault("secrets.backend", "memory")
	v.SetDefault("secrets.namespace", "graphgate")
	v.SetDefault("vault.mount_path", "secret")
	v.SetDefault("session.backend", "memory")
	v.SetDefault("session.ttl", constants.DefaultSessionTTL.String())
	v.SetDefault("audit.topic", "graphgate.credential-events")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("tracing.service_name", "graphgate")
	v.SetDefault("development", false)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/graphgate/")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	v.SetEnvPrefix("GRAPHGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.SetDevelopment(cfg.Development)

	v.OnConfigChange(func(e fsnotify.Event) {
		dev := v.GetBool("development")
		cfg.SetDevelopment(dev)
		log.Info(context.Background(), "configuration reloaded",
			logger.Fields{"file": e.Name, "development": dev})
	})
	v.WatchConfig()

	return &cfg, nil
}
