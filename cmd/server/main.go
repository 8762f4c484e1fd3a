// Command server runs the Graph gateway: an HTTP broker that fronts
// Microsoft Graph with per-user credential resolution, external token
// injection, and uniform telemetry.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/graphgate/graphgate/internal/config"
	"github.com/graphgate/graphgate/internal/graph"
	"github.com/graphgate/graphgate/internal/infrastructure/audit"
	"github.com/graphgate/graphgate/internal/infrastructure/monitoring"
	"github.com/graphgate/graphgate/internal/infrastructure/secrets"
	"github.com/graphgate/graphgate/internal/infrastructure/session"
	"github.com/graphgate/graphgate/internal/interfaces/http/handlers"
	"github.com/graphgate/graphgate/internal/interfaces/http/router"
	"github.com/graphgate/graphgate/internal/token"
	"github.com/graphgate/graphgate/pkg/constants"
	"github.com/graphgate/graphgate/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "graphgate: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	bootLog := logger.NewNoopLogger()
	cfg, err := config.Load(bootLog)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := monitoring.NewZapLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracer, shutdownTracer, err := monitoring.InitTracer(&cfg.Tracing, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			log.Warn(shutdownCtx, "tracer shutdown failed", logger.Fields{"error": err.Error()})
		}
	}()

	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)

	var rdb *redis.Client
	if cfg.Secrets.Backend == "redis" || cfg.Session.Backend == "redis" {
		rdb = redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Address,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		})
		defer rdb.Close()
	}

	secretStore, err := buildSecretStore(cfg, rdb, log)
	if err != nil {
		return fmt.Errorf("init secret store: %w", err)
	}

	sessionTTL := cfg.Session.TTL
	if sessionTTL <= 0 {
		sessionTTL = constants.DefaultSessionTTL
	}
	var sessionStore session.Store
	if cfg.Session.Backend == "redis" {
		sessionStore = session.NewRedisStore(rdb, sessionTTL, log)
	} else {
		sessionStore = session.NewMemoryStore(sessionTTL)
	}

	var auditor audit.Publisher = audit.NewNoopPublisher()
	if cfg.Audit.Enabled {
		auditor = audit.NewKafkaPublisher(cfg.Audit, log)
	}
	defer auditor.Close()

	tokenStore := token.NewStore(secretStore, log)
	factory := graph.NewFactory(cfg.Graph.BaseURL, cfg.Graph.CallTimeout, tokenStore, metrics, log)
	validator := token.NewValidator(cfg.Graph, factory, log)
	resolver := token.NewResolver(tokenStore, validator, log)

	h := handlers.New(cfg, log, metrics, resolver, tokenStore, validator, factory, sessionStore, secretStore, auditor)
	engine := router.New(cfg, h, sessionStore, tracer, log)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info(groupCtx, "gateway listening", logger.Fields{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info(context.Background(), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

func buildSecretStore(cfg *config.Config, rdb *redis.Client, log logger.Logger) (secrets.Store, error) {
	switch cfg.Secrets.Backend {
	case "vault":
		return secrets.NewVaultStore(cfg.Vault, cfg.Secrets.Namespace, log)
	case "redis":
		return secrets.NewRedisStore(rdb, cfg.Secrets.Namespace, log), nil
	default:
		return secrets.NewMemoryStore(), nil
	}
}
