package unit

import (
	"context"
	"errors"
	"testing"

	roleservice "meridian/contexts/identity-access/role-service"
	"meridian/contexts/identity-access/role-service/domain/entities"
	domainerrors "meridian/contexts/identity-access/role-service/domain/errors"
)

func TestRoleServiceTrustedDomainWinsWithoutProfile(t *testing.T) {
	module := roleservice.NewInMemoryModule("meridian.dev", nil)
	ctx := context.Background()

	resp, err := module.Handler.MeHandler(ctx, "user-1", "ops@meridian.dev")
	if err != nil {
		t.Fatalf("me failed: %v", err)
	}
	if !resp.IsSuperAdmin {
		t.Fatalf("expected trusted-domain escalation, got %+v", resp)
	}
	if module.Store.ProfileLookups != 0 {
		t.Fatalf("trusted-domain path must not hit the profile store, saw %d lookups", module.Store.ProfileLookups)
	}
}

func TestRoleServicePersistedRoleEscalates(t *testing.T) {
	module := roleservice.NewInMemoryModule("meridian.dev", nil)
	module.Store.PutProfile(entities.Profile{
		UserID:     "user-2",
		GlobalRole: entities.RoleSuperAdmin,
	})

	resp, err := module.Handler.MeHandler(context.Background(), "user-2", "user-2@example.com")
	if err != nil {
		t.Fatalf("me failed: %v", err)
	}
	if !resp.IsSuperAdmin {
		t.Fatalf("expected persisted super admin, got %+v", resp)
	}
}

func TestRoleServiceMissingProfileDefaultsToUser(t *testing.T) {
	module := roleservice.NewInMemoryModule("meridian.dev", nil)

	resp, err := module.Handler.MeHandler(context.Background(), "user-3", "user-3@example.com")
	if err != nil {
		t.Fatalf("me failed: %v", err)
	}
	if resp.IsSuperAdmin || resp.GlobalRole != string(entities.RoleUser) {
		t.Fatalf("expected plain user for missing profile, got %+v", resp)
	}
}

func TestRoleServiceWorkspaceMembershipLifecycle(t *testing.T) {
	module := roleservice.NewInMemoryModule("meridian.dev", nil)
	ctx := context.Background()

	_, err := module.Handler.WorkspaceHandler(ctx, "user-4")
	if !errors.Is(err, domainerrors.ErrMembershipNotFound) {
		t.Fatalf("expected ErrMembershipNotFound, got %v", err)
	}

	module.Store.PutMembership(entities.Membership{
		UserID:           "user-4",
		OrganizationID:   "org-1",
		OrganizationName: "Acme",
	})
	resp, err := module.Handler.WorkspaceHandler(ctx, "user-4")
	if err != nil {
		t.Fatalf("workspace failed: %v", err)
	}
	if resp.OrganizationID != "org-1" || resp.OrganizationName != "Acme" {
		t.Fatalf("unexpected workspace: %+v", resp)
	}
}
