package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"meridian/contexts/identity-access/session-gateway/domain/entities"
	domainerrors "meridian/contexts/identity-access/session-gateway/domain/errors"
	"meridian/contexts/identity-access/session-gateway/ports"
)

// CredentialStore is the in-memory adapter used by guard and transport
// tests. SetUnavailable simulates a credential-backend outage.
type CredentialStore struct {
	mu          sync.RWMutex
	sessions    map[string]entities.Session
	unavailable bool
	sequence    int

	RefreshCalls int
}

func NewCredentialStore() *CredentialStore {
	return &CredentialStore{
		sessions: make(map[string]entities.Session),
	}
}

func (s *CredentialStore) Refresh(_ context.Context, token string) (entities.Session, ports.RefreshedCredential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.RefreshCalls++
	if s.unavailable {
		return entities.Session{}, ports.RefreshedCredential{}, fmt.Errorf("%w: store offline", domainerrors.ErrCredentialBackend)
	}
	session, ok := s.sessions[token]
	if !ok {
		return entities.Session{}, ports.RefreshedCredential{}, domainerrors.ErrNoSession
	}
	return session, ports.RefreshedCredential{Token: token, MaxAge: time.Hour}, nil
}

func (s *CredentialStore) Issue(_ context.Context, userID string, email string) (ports.RefreshedCredential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.unavailable {
		return ports.RefreshedCredential{}, fmt.Errorf("%w: store offline", domainerrors.ErrCredentialBackend)
	}
	s.sequence++
	token := fmt.Sprintf("token_%d", s.sequence)
	s.sessions[token] = entities.Session{UserID: userID, Email: email}
	return ports.RefreshedCredential{Token: token, MaxAge: time.Hour}, nil
}

func (s *CredentialStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

func (s *CredentialStore) SetUnavailable(unavailable bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unavailable = unavailable
}
