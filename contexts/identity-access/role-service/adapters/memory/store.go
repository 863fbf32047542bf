package memory

import (
	"context"
	"sync"

	"meridian/contexts/identity-access/role-service/domain/entities"
	domainerrors "meridian/contexts/identity-access/role-service/domain/errors"
)

// Store is the in-memory profile/membership adapter used by tests and
// development wiring. ProfileLookups counts store hits so tests can assert
// the trusted-domain fast path skips the lookup entirely.
type Store struct {
	mu          sync.RWMutex
	profiles    map[string]entities.Profile
	memberships map[string]entities.Membership

	ProfileLookups int
}

func NewStore() *Store {
	return &Store{
		profiles:    make(map[string]entities.Profile),
		memberships: make(map[string]entities.Membership),
	}
}

func (s *Store) GetProfile(_ context.Context, userID string) (entities.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ProfileLookups++
	profile, ok := s.profiles[userID]
	if !ok {
		return entities.Profile{}, domainerrors.ErrProfileNotFound
	}
	return profile, nil
}

func (s *Store) GetMembership(_ context.Context, userID string) (entities.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	membership, ok := s.memberships[userID]
	if !ok {
		return entities.Membership{}, domainerrors.ErrMembershipNotFound
	}
	return membership, nil
}

func (s *Store) PutProfile(profile entities.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = profile
}

func (s *Store) PutMembership(membership entities.Membership) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memberships[membership.UserID] = membership
}
