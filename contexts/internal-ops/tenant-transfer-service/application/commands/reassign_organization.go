package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "meridian/contexts/internal-ops/tenant-transfer-service/application"
	"meridian/contexts/internal-ops/tenant-transfer-service/domain/entities"
	domainerrors "meridian/contexts/internal-ops/tenant-transfer-service/domain/errors"
	"meridian/contexts/internal-ops/tenant-transfer-service/ports"
)

// ReassignOrganizationCommand is the request model for a cross-tenant
// project transfer.
type ReassignOrganizationCommand struct {
	Caller               entities.Caller
	ProjectID            string
	TargetOrganizationID string
}

// ReassignOrganizationUseCase gates and executes a cross-tenant project
// reassignment. The gates run strictly in order and later steps never start
// before earlier ones pass: an unauthenticated or unauthorized caller must
// not trigger the existence check, both for correctness and because a 403
// must not leak whether a given organization id exists.
type ReassignOrganizationUseCase struct {
	Roles         ports.RoleResolver
	Organizations ports.OrganizationStore
	Projects      ports.ProjectStore
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Logger        *slog.Logger
}

// Execute runs the gate sequence: authenticate, authorize (super admin
// only), validate input, validate target existence with elevated access,
// then commit. The existence check and the commit are not wrapped in a
// transaction; the target disappearing in between surfaces from the store
// as ErrOrganizationNotFound where the schema enforces the reference.
func (u ReassignOrganizationUseCase) Execute(ctx context.Context, cmd ReassignOrganizationCommand) error {
	logger := application.ResolveLogger(u.Logger)

	if !cmd.Caller.IsAuthenticated() {
		return domainerrors.ErrUnauthenticated
	}

	role, err := u.Roles.Resolve(ctx, cmd.Caller.UserID, cmd.Caller.Email)
	if err != nil {
		logger.Error("role resolution failed, deny by default",
			"event", "transfer_role_resolution_failed",
			"module", "internal-ops/tenant-transfer-service",
			"layer", "application",
			"user_id", cmd.Caller.UserID,
			"error", err.Error(),
		)
		return domainerrors.ErrForbidden
	}
	if !role.IsSuperAdmin {
		logger.Warn("cross-tenant transfer denied",
			"event", "transfer_denied",
			"module", "internal-ops/tenant-transfer-service",
			"layer", "application",
			"user_id", cmd.Caller.UserID,
			"project_id", cmd.ProjectID,
		)
		return domainerrors.ErrForbidden
	}

	targetOrgID := strings.TrimSpace(cmd.TargetOrganizationID)
	if targetOrgID == "" {
		return domainerrors.ErrInvalidRequest
	}

	exists, err := u.Organizations.Exists(ctx, targetOrgID)
	if err != nil {
		return fmt.Errorf("%w: check organization: %v", domainerrors.ErrStoreFailure, err)
	}
	if !exists {
		return domainerrors.ErrOrganizationNotFound
	}

	project, err := u.Projects.GetProject(ctx, cmd.ProjectID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrProjectNotFound) {
			return err
		}
		return fmt.Errorf("%w: load project: %v", domainerrors.ErrStoreFailure, err)
	}

	eventID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return fmt.Errorf("%w: generate event id: %v", domainerrors.ErrStoreFailure, err)
	}

	event := ports.ReassignedEvent{
		EventID:            eventID,
		ProjectID:          project.ProjectID,
		FromOrganizationID: project.OrganizationID,
		ToOrganizationID:   targetOrgID,
		ActorUserID:        cmd.Caller.UserID,
		OccurredAt:         u.now(),
	}
	if err := u.Projects.ReassignOrganization(ctx, project.ProjectID, targetOrgID, event); err != nil {
		if errors.Is(err, domainerrors.ErrOrganizationNotFound) || errors.Is(err, domainerrors.ErrProjectNotFound) {
			return err
		}
		logger.Error("cross-tenant transfer commit failed",
			"event", "transfer_commit_failed",
			"module", "internal-ops/tenant-transfer-service",
			"layer", "application",
			"project_id", project.ProjectID,
			"to_organization_id", targetOrgID,
			"error", err.Error(),
		)
		return fmt.Errorf("%w: reassign project: %v", domainerrors.ErrStoreFailure, err)
	}

	logger.Info("project reassigned across tenants",
		"event", "transfer_committed",
		"module", "internal-ops/tenant-transfer-service",
		"layer", "application",
		"project_id", project.ProjectID,
		"from_organization_id", project.OrganizationID,
		"to_organization_id", targetOrgID,
		"actor_user_id", cmd.Caller.UserID,
	)
	return nil
}

func (u ReassignOrganizationUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
