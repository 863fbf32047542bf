package ports

import (
	"context"

	"meridian/contexts/identity-access/role-service/domain/entities"
)

// ProfileStore is the read boundary for persisted identity profiles.
// GetProfile returns domainerrors.ErrProfileNotFound when no row exists.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (entities.Profile, error)
}

// MembershipStore resolves an identity's default organization context.
// GetMembership returns domainerrors.ErrMembershipNotFound when the identity
// belongs to no organization.
type MembershipStore interface {
	GetMembership(ctx context.Context, userID string) (entities.Membership, error)
}
