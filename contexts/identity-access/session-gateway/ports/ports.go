package ports

import (
	"context"
	"time"

	"meridian/contexts/identity-access/session-gateway/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// RefreshedCredential is the cookie material handed back to the client after
// a successful refresh. It must be propagated on every allowed response, not
// only on redirects, so sessions silently extend during active use.
type RefreshedCredential struct {
	Token  string
	MaxAge time.Duration
}

// CredentialStore wraps the persisted session/cookie material.
//
// Refresh must be safe to call on every request. It returns
// domainerrors.ErrNoSession when the token does not resolve to a live
// session and wraps domainerrors.ErrCredentialBackend when the store itself
// is unreachable; callers are expected to treat both as anonymous.
type CredentialStore interface {
	Refresh(ctx context.Context, token string) (entities.Session, RefreshedCredential, error)
	Issue(ctx context.Context, userID string, email string) (RefreshedCredential, error)
	Revoke(ctx context.Context, token string) error
}
