package sessiongateway

import (
	"log/slog"
	"time"

	httpadapter "meridian/contexts/identity-access/session-gateway/adapters/http"
	"meridian/contexts/identity-access/session-gateway/adapters/memory"
	redisadapter "meridian/contexts/identity-access/session-gateway/adapters/redis"
	"meridian/contexts/identity-access/session-gateway/application"
	"meridian/contexts/identity-access/session-gateway/ports"

	"github.com/redis/go-redis/v9"
)

// Module is the session-gateway composition root exposed to runtime wiring.
type Module struct {
	Middleware  httpadapter.Middleware
	Credentials ports.CredentialStore
	Store       *memory.CredentialStore
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Credentials ports.CredentialStore
	Logger      *slog.Logger
}

// NewModule wires the guard use case and transport middleware using explicit
// ports.
func NewModule(deps Dependencies) Module {
	guard := application.GuardUseCase{
		Credentials: deps.Credentials,
		Logger:      deps.Logger,
	}
	return Module{
		Middleware: httpadapter.Middleware{
			Guard:  guard,
			Logger: deps.Logger,
		},
		Credentials: deps.Credentials,
	}
}

// NewRedisModule wires the production credential store on Redis.
func NewRedisModule(client *redis.Client, signingSecret []byte, sessionTTL time.Duration, logger *slog.Logger) Module {
	store := redisadapter.NewCredentialStore(client, signingSecret, sessionTTL, logger)
	return NewModule(Dependencies{
		Credentials: store,
		Logger:      logger,
	})
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewCredentialStore()
	module := NewModule(Dependencies{
		Credentials: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
