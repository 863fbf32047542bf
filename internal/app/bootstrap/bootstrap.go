package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	roleservice "meridian/contexts/identity-access/role-service"
	rolepostgres "meridian/contexts/identity-access/role-service/adapters/postgres"
	sessiongateway "meridian/contexts/identity-access/session-gateway"
	tenanttransfer "meridian/contexts/internal-ops/tenant-transfer-service"
	transferpostgres "meridian/contexts/internal-ops/tenant-transfer-service/adapters/postgres"
	"meridian/contexts/internal-ops/tenant-transfer-service/application/workers"
	"meridian/internal/platform/config"
	"meridian/internal/platform/db"
	"meridian/internal/platform/httpserver"
	"meridian/internal/platform/messaging"
	"meridian/internal/shared/authz"

	"github.com/redis/go-redis/v9"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	redis    *redis.Client
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	auditRelay   workers.AuditRelay
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	if strings.TrimSpace(cfg.SessionSigningSecret) == "" {
		return nil, errors.New("SESSION_SIGNING_SECRET is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	sessions := sessiongateway.NewRedisModule(
		redisClient,
		[]byte(cfg.SessionSigningSecret),
		cfg.SessionTTL,
		logger,
	)

	roleRepo := rolepostgres.NewRepository(pg.DB, logger)
	roles := roleservice.NewModule(roleservice.Dependencies{
		Profiles:      roleRepo,
		Memberships:   roleRepo,
		TrustedDomain: cfg.SuperAdminDomain,
		Logger:        logger,
	})

	bus, err := messaging.NewKafka(nil, logger)
	if err != nil {
		return nil, err
	}

	transferRepo := transferpostgres.NewRepository(pg.DB, logger)
	transfers := tenanttransfer.NewModule(tenanttransfer.Dependencies{
		Roles:         authz.RoleResolver{Query: roles.ResolveRole},
		Organizations: transferRepo,
		Projects:      transferRepo,
		Outbox:        transferRepo,
		Publisher:     bus,
		Clock:         transferpostgres.SystemClock{},
		IDGenerator:   transferpostgres.UUIDGenerator{},
		Logger:        logger,
	})

	server := httpserver.New(sessions, roles, transfers, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		redis:    redisClient,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	if !cfg.EnableAuditRelay {
		return nil, errors.New("ENABLE_AUDIT_RELAY is disabled; worker has nothing to run")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus, err := messaging.NewKafka(nil, logger)
	if err != nil {
		return nil, err
	}

	transferRepo := transferpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		auditRelay: workers.AuditRelay{
			Outbox:    transferRepo,
			Publisher: bus,
			Clock:     transferpostgres.SystemClock{},
			Topic:     "project.organization_reassigned",
			BatchSize: 100,
			Logger:    logger,
		},
		pollInterval: 2 * time.Second,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	var errs []error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.postgres != nil {
		if err := a.postgres.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.auditRelay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
