package httpadapter

import (
	"context"
	"log/slog"

	application "meridian/contexts/identity-access/role-service/application"
	"meridian/contexts/identity-access/role-service/application/queries"
	httptransport "meridian/contexts/identity-access/role-service/transport/http"
)

// Handler maps HTTP DTOs to application queries.
type Handler struct {
	ResolveRole      queries.ResolveRoleUseCase
	DefaultWorkspace queries.DefaultWorkspaceUseCase
	Logger           *slog.Logger
}

// MeHandler resolves the caller's role for the current request.
func (h Handler) MeHandler(ctx context.Context, userID string, email string) (httptransport.MeResponse, error) {
	role, err := h.ResolveRole.Execute(ctx, queries.ResolveRoleQuery{
		UserID: userID,
		Email:  email,
	})
	if err != nil {
		application.ResolveLogger(h.Logger).Error("http me failed",
			"event", "role_http_me_failed",
			"module", "identity-access/role-service",
			"layer", "transport",
			"user_id", userID,
			"error", err.Error(),
		)
		return httptransport.MeResponse{}, err
	}
	return httptransport.MeResponse{
		UserID:       userID,
		Email:        email,
		GlobalRole:   string(role.GlobalRole),
		IsSuperAdmin: role.IsSuperAdmin,
	}, nil
}

// WorkspaceHandler resolves the caller's default organization context.
func (h Handler) WorkspaceHandler(ctx context.Context, userID string) (httptransport.WorkspaceResponse, error) {
	membership, err := h.DefaultWorkspace.Execute(ctx, userID)
	if err != nil {
		return httptransport.WorkspaceResponse{}, err
	}
	return httptransport.WorkspaceResponse{
		OrganizationID:   membership.OrganizationID,
		OrganizationName: membership.OrganizationName,
	}, nil
}
