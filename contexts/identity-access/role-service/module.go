package roleservice

import (
	"log/slog"

	httpadapter "meridian/contexts/identity-access/role-service/adapters/http"
	"meridian/contexts/identity-access/role-service/adapters/memory"
	"meridian/contexts/identity-access/role-service/application/queries"
	"meridian/contexts/identity-access/role-service/ports"
)

// Module is the role-service composition root exposed to runtime wiring.
type Module struct {
	Handler     httpadapter.Handler
	ResolveRole queries.ResolveRoleUseCase
	Store       *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Profiles      ports.ProfileStore
	Memberships   ports.MembershipStore
	TrustedDomain string
	Logger        *slog.Logger
}

// NewModule wires the role queries and transport handler using explicit
// ports.
func NewModule(deps Dependencies) Module {
	resolveRole := queries.ResolveRoleUseCase{
		Profiles:      deps.Profiles,
		TrustedDomain: deps.TrustedDomain,
		Logger:        deps.Logger,
	}
	defaultWorkspace := queries.DefaultWorkspaceUseCase{
		Memberships: deps.Memberships,
		Logger:      deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			ResolveRole:      resolveRole,
			DefaultWorkspace: defaultWorkspace,
			Logger:           deps.Logger,
		},
		ResolveRole: resolveRole,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters.
func NewInMemoryModule(trustedDomain string, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Profiles:      store,
		Memberships:   store,
		TrustedDomain: trustedDomain,
		Logger:        logger,
	})
	module.Store = store
	return module
}
