package queries

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "meridian/contexts/identity-access/role-service/application"
	"meridian/contexts/identity-access/role-service/domain/entities"
	domainerrors "meridian/contexts/identity-access/role-service/domain/errors"
	"meridian/contexts/identity-access/role-service/domain/services"
	"meridian/contexts/identity-access/role-service/ports"
)

// ResolveRoleQuery is the request model for role resolution.
type ResolveRoleQuery struct {
	UserID string
	Email  string
}

// ResolveRoleUseCase answers "is this identity a super admin, and what is
// its nominal global role". It is re-evaluated per authorization decision;
// nothing here is cached across requests, since stale escalation is a
// security defect.
type ResolveRoleUseCase struct {
	Profiles      ports.ProfileStore
	TrustedDomain string
	Logger        *slog.Logger
}

// Execute resolves the caller's role. The trusted-domain check short-circuits
// before any store lookup, so it keeps operating when the profile store is
// unreachable or the identity has no profile row yet. A missing profile
// resolves to the plain user role, never an error.
func (u ResolveRoleUseCase) Execute(ctx context.Context, query ResolveRoleQuery) (entities.Role, error) {
	if strings.TrimSpace(query.UserID) == "" {
		return entities.Role{}, domainerrors.ErrInvalidUserID
	}

	logger := application.ResolveLogger(u.Logger)

	if query.Email != "" && services.MatchesTrustedDomain(query.Email, u.TrustedDomain) {
		logger.Info("trusted domain escalation applied",
			"event", "role_trusted_domain_escalation",
			"module", "identity-access/role-service",
			"layer", "application",
			"user_id", query.UserID,
		)
		return entities.Role{GlobalRole: entities.RoleSuperAdmin, IsSuperAdmin: true}, nil
	}

	profile, err := u.Profiles.GetProfile(ctx, query.UserID)
	if errors.Is(err, domainerrors.ErrProfileNotFound) {
		return entities.Role{GlobalRole: entities.RoleUser, IsSuperAdmin: false}, nil
	}
	if err != nil {
		return entities.Role{}, err
	}

	return entities.Role{
		GlobalRole:   profile.GlobalRole,
		IsSuperAdmin: profile.GlobalRole == entities.RoleSuperAdmin,
	}, nil
}
