package tenanttransfer

import (
	"log/slog"

	httpadapter "meridian/contexts/internal-ops/tenant-transfer-service/adapters/http"
	"meridian/contexts/internal-ops/tenant-transfer-service/adapters/memory"
	"meridian/contexts/internal-ops/tenant-transfer-service/application/commands"
	"meridian/contexts/internal-ops/tenant-transfer-service/application/workers"
	"meridian/contexts/internal-ops/tenant-transfer-service/ports"
)

// Module is the tenant-transfer composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Relay   workers.AuditRelay
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Roles         ports.RoleResolver
	Organizations ports.OrganizationStore
	Projects      ports.ProjectStore
	Outbox        ports.OutboxRepository
	Publisher     ports.EventPublisher
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Logger        *slog.Logger
}

// NewModule wires the transfer command, relay worker, and transport handler
// using explicit ports.
func NewModule(deps Dependencies) Module {
	reassign := commands.ReassignOrganizationUseCase{
		Roles:         deps.Roles,
		Organizations: deps.Organizations,
		Projects:      deps.Projects,
		Clock:         deps.Clock,
		IDGenerator:   deps.IDGenerator,
		Logger:        deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			Reassign: reassign,
			Logger:   deps.Logger,
		},
		Relay: workers.AuditRelay{
			Outbox:    deps.Outbox,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			BatchSize: 100,
			Logger:    deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters.
func NewInMemoryModule(roles ports.RoleResolver, publisher ports.EventPublisher, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Roles:         roles,
		Organizations: store,
		Projects:      store,
		Outbox:        store,
		Publisher:     publisher,
		Clock:         store,
		IDGenerator:   store,
		Logger:        logger,
	})
	module.Store = store
	return module
}
