package queries

import (
	"context"
	"log/slog"
	"strings"

	application "meridian/contexts/identity-access/role-service/application"
	"meridian/contexts/identity-access/role-service/domain/entities"
	domainerrors "meridian/contexts/identity-access/role-service/domain/errors"
	"meridian/contexts/identity-access/role-service/ports"
)

// DefaultWorkspaceUseCase resolves the caller's default organization
// context. A missing membership surfaces as ErrMembershipNotFound so the
// transport can report it distinctly from an empty organization.
type DefaultWorkspaceUseCase struct {
	Memberships ports.MembershipStore
	Logger      *slog.Logger
}

func (u DefaultWorkspaceUseCase) Execute(ctx context.Context, userID string) (entities.Membership, error) {
	if strings.TrimSpace(userID) == "" {
		return entities.Membership{}, domainerrors.ErrInvalidUserID
	}

	membership, err := u.Memberships.GetMembership(ctx, userID)
	if err != nil {
		application.ResolveLogger(u.Logger).Debug("default workspace lookup failed",
			"event", "workspace_lookup_failed",
			"module", "identity-access/role-service",
			"layer", "application",
			"user_id", userID,
			"error", err.Error(),
		)
		return entities.Membership{}, err
	}
	return membership, nil
}
