package redisadapter

import (
	"context"
	"errors"
	"testing"
	"time"

	domainerrors "meridian/contexts/identity-access/session-gateway/domain/errors"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*CredentialStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCredentialStore(client, []byte("test-signing-secret"), time.Hour, nil), mr
}

func TestIssueThenRefreshReturnsSession(t *testing.T) {
	store, _ := newTestStore(t)

	credential, err := store.Issue(context.Background(), "user_1", "user@example.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if credential.Token == "" {
		t.Fatal("expected signed token")
	}

	session, refreshed, err := store.Refresh(context.Background(), credential.Token)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if session.UserID != "user_1" || session.Email != "user@example.com" {
		t.Fatalf("unexpected session: %+v", session)
	}
	if refreshed.Token == "" {
		t.Fatal("expected refreshed cookie material")
	}
}

func TestRefreshSlidesRecordTTL(t *testing.T) {
	store, mr := newTestStore(t)

	credential, err := store.Issue(context.Background(), "user_1", "")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	// Burn half the TTL, then refresh; the record must survive past its
	// original deadline.
	mr.FastForward(40 * time.Minute)
	if _, _, err := store.Refresh(context.Background(), credential.Token); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	mr.FastForward(40 * time.Minute)
	if _, _, err := store.Refresh(context.Background(), credential.Token); err != nil {
		t.Fatalf("expected session to survive after sliding refresh, got %v", err)
	}
}

func TestRefreshExpiredRecordIsNoSession(t *testing.T) {
	store, mr := newTestStore(t)

	credential, err := store.Issue(context.Background(), "user_1", "")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	mr.FastForward(2 * time.Hour)
	_, _, err = store.Refresh(context.Background(), credential.Token)
	if !errors.Is(err, domainerrors.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestRefreshRejectsTamperedToken(t *testing.T) {
	store, _ := newTestStore(t)

	_, _, err := store.Refresh(context.Background(), "not-a-token")
	if !errors.Is(err, domainerrors.ErrNoSession) {
		t.Fatalf("expected ErrNoSession for garbage token, got %v", err)
	}

	other := NewCredentialStore(redis.NewClient(&redis.Options{Addr: "localhost:0"}), []byte("other-secret"), time.Hour, nil)
	credential, err := store.Issue(context.Background(), "user_1", "")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	_, _, err = other.Refresh(context.Background(), credential.Token)
	if !errors.Is(err, domainerrors.ErrNoSession) {
		t.Fatalf("expected ErrNoSession for wrong signature, got %v", err)
	}
}

func TestRevokedTokenNoLongerRefreshes(t *testing.T) {
	store, _ := newTestStore(t)

	credential, err := store.Issue(context.Background(), "user_1", "")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if err := store.Revoke(context.Background(), credential.Token); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	_, _, err = store.Refresh(context.Background(), credential.Token)
	if !errors.Is(err, domainerrors.ErrNoSession) {
		t.Fatalf("expected ErrNoSession after revoke, got %v", err)
	}
}

func TestRefreshBackendDownIsAdapterError(t *testing.T) {
	store, mr := newTestStore(t)

	credential, err := store.Issue(context.Background(), "user_1", "")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	mr.Close()
	_, _, err = store.Refresh(context.Background(), credential.Token)
	if !errors.Is(err, domainerrors.ErrCredentialBackend) {
		t.Fatalf("expected ErrCredentialBackend when redis is down, got %v", err)
	}
}
