// cmd/analyst-manager/app.go
package main

import (
	"context"
	"fmt"
	"time"

	"startup-analyst/internal/agents"
	"startup-analyst/internal/common/aws"
	"startup-analyst/internal/common/config"
	"startup-analyst/internal/common/database"
	"startup-analyst/internal/common/docparse"
	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/common/observability"
	"startup-analyst/internal/common/storage"
	"startup-analyst/internal/marketintel"
	"startup-analyst/internal/orchestrator"
	"startup-analyst/internal/store"
	"startup-analyst/pkg/registry"

	"go.uber.org/zap"
)

// app holds everything built from config for one process.
type app struct {
	cfg       *config.Config
	zapLog    *zap.Logger
	log       logger.Logger
	obs       *observability.Observability
	catalogue *registry.AgentRegistry
	agents    *agents.Set
	orch      *orchestrator.Orchestrator
	storage   storage.Storage
	checks    map[string]func(ctx context.Context) error

	closers []func() error
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

// retryWithBackoff retries operation with exponential backoff.
func retryWithBackoff(ctx context.Context, operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		if err = operation(); err == nil {
			return nil
		}
		if i < maxRetries-1 {
			log.Warn(operationName+" failed, retrying", map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			delay *= 2
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.NewZapAdapter(zapLog)

	catalogue, err := registry.LoadWithOverrides(registryPath)
	if err != nil {
		return nil, fmt.Errorf("agent catalogue: %w", err)
	}

	a := &app{
		cfg:       cfg,
		zapLog:    zapLog,
		log:       log,
		obs:       observability.New(cfg.App.Name, log),
		catalogue: catalogue,
		checks:    make(map[string]func(ctx context.Context) error),
	}
	if err := a.wire(ctx); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func (a *app) wire(ctx context.Context) error {
	cfg, log := a.cfg, a.log

	var st store.Store
	err := retryWithBackoff(ctx, func() error {
		var closeStore func() error
		var err error
		st, closeStore, err = store.New(ctx, cfg, log)
		if err == nil {
			a.closers = append(a.closers, closeStore)
		}
		return err
	}, 5, 2*time.Second, log, "analysis store connection")
	if err != nil {
		return err
	}

	var fetcher docparse.Fetcher
	if cfg.Storage.Enabled {
		s, err := storage.NewMinioStorage(ctx, cfg.Storage)
		if err != nil {
			return fmt.Errorf("object storage: %w", err)
		}
		a.storage = s
		fetcher = s
		log.Info("object storage configured", map[string]interface{}{
			"endpoint": cfg.Storage.Endpoint,
			"bucket":   cfg.Storage.BucketName,
		})
	}

	deps := agents.Dependencies{
		Parser: docparse.NewParser(fetcher, cfg.Storage.MaxFileSize, log),
	}

	if cfg.MarketIntel.Enabled {
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch, nil)
		if err != nil {
			return fmt.Errorf("elasticsearch: %w", err)
		}
		a.checks["elasticsearch"] = es.Ping

		var cache marketintel.Cache
		if cfg.Database.Redis.Address != "" {
			rdb, err := database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return fmt.Errorf("redis cache: %w", err)
			}
			a.closers = append(a.closers, rdb.Close)
			a.checks["redis"] = rdb.Ping
			cache = rdb
		}
		deps.MarketIntel = marketintel.NewClient(marketintel.LoadConfig(cfg.MarketIntel), es, cache, log)
	}

	var notifiers orchestrator.Notifiers
	if cfg.Notifications.SNS.Enabled {
		client, err := aws.NewSNSClient(ctx, cfg.Notifications.SNS.Region)
		if err != nil {
			return fmt.Errorf("sns client: %w", err)
		}
		notifiers = append(notifiers, aws.NewSNSNotifier(client, cfg.Notifications.SNS.TopicARN, log))
	}
	if email := cfg.Notifications.Email; email.Enabled {
		client, err := aws.NewSESClient(ctx, email.Region)
		if err != nil {
			return fmt.Errorf("ses client: %w", err)
		}
		notifiers = append(notifiers, aws.NewSESNotifier(client, email.From, email.To, log))
	}
	var notifier orchestrator.Notifier
	if len(notifiers) > 0 {
		notifier = notifiers
	}

	a.orch = orchestrator.New(orchestrator.LoadConfig(cfg, a.catalogue), st, notifier, a.obs, log)
	a.agents = agents.New(cfg, deps, log)

	skipped, err := a.agents.Register(a.orch, cfg, log)
	if err != nil {
		return fmt.Errorf("agent registration: %w", err)
	}
	log.Info("agents registered", map[string]interface{}{
		"registered": a.orch.RegisteredAgents(),
		"skipped":    skipped,
	})
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("close failed", map[string]interface{}{"error": err.Error()})
		}
	}
	a.obs.Shutdown()
	_ = a.zapLog.Sync()
}
