package httpadapter

import (
	"context"
	"log/slog"

	application "meridian/contexts/internal-ops/tenant-transfer-service/application"
	"meridian/contexts/internal-ops/tenant-transfer-service/application/commands"
	"meridian/contexts/internal-ops/tenant-transfer-service/domain/entities"
	httptransport "meridian/contexts/internal-ops/tenant-transfer-service/transport/http"
)

// Handler maps HTTP DTOs to application commands.
type Handler struct {
	Reassign commands.ReassignOrganizationUseCase
	Logger   *slog.Logger
}

// ReassignOrganizationHandler executes the gated cross-tenant transfer for
// one project.
func (h Handler) ReassignOrganizationHandler(
	ctx context.Context,
	caller entities.Caller,
	projectID string,
	request httptransport.ReassignOrganizationRequest,
) (httptransport.ReassignOrganizationResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Debug("http reassign organization received",
		"event", "transfer_http_reassign_received",
		"module", "internal-ops/tenant-transfer-service",
		"layer", "transport",
		"project_id", projectID,
	)

	err := h.Reassign.Execute(ctx, commands.ReassignOrganizationCommand{
		Caller:               caller,
		ProjectID:            projectID,
		TargetOrganizationID: request.OrganizationID,
	})
	if err != nil {
		return httptransport.ReassignOrganizationResponse{}, err
	}
	return httptransport.ReassignOrganizationResponse{Success: true}, nil
}
