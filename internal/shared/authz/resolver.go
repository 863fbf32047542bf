package authz

import (
	"context"

	rolequeries "meridian/contexts/identity-access/role-service/application/queries"
	transferports "meridian/contexts/internal-ops/tenant-transfer-service/ports"
)

// RoleResolver bridges the identity context's role query to the transfer
// service's authorization port. It lives outside contexts/ because bounded
// contexts must not import each other directly.
type RoleResolver struct {
	Query rolequeries.ResolveRoleUseCase
}

func (r RoleResolver) Resolve(ctx context.Context, userID string, email string) (transferports.RoleDecision, error) {
	role, err := r.Query.Execute(ctx, rolequeries.ResolveRoleQuery{
		UserID: userID,
		Email:  email,
	})
	if err != nil {
		return transferports.RoleDecision{}, err
	}
	return transferports.RoleDecision{
		GlobalRole:   string(role.GlobalRole),
		IsSuperAdmin: role.IsSuperAdmin,
	}, nil
}
