package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"meridian/contexts/internal-ops/tenant-transfer-service/domain/entities"
	domainerrors "meridian/contexts/internal-ops/tenant-transfer-service/domain/errors"
	"meridian/contexts/internal-ops/tenant-transfer-service/ports"
	"meridian/internal/shared/events"
	"meridian/internal/shared/outbox"
)

type outboxRecord struct {
	message ports.OutboxMessage
	status  string
}

// Store is the in-memory adapter for transfer tests. The call counters let
// tests assert that failed gates never reach the elevated store: a 401/403
// must not trigger an existence check, and a 404 must not trigger a commit.
type Store struct {
	mu            sync.RWMutex
	organizations map[string]entities.Organization
	projects      map[string]entities.Project
	outbox        []outboxRecord
	sequence      int

	ExistsCalls   int
	ReassignCalls int
	failReassign  bool
}

func NewStore() *Store {
	return &Store{
		organizations: make(map[string]entities.Organization),
		projects:      make(map[string]entities.Project),
	}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequence++
	return fmt.Sprintf("event_%d", s.sequence), nil
}

func (s *Store) Exists(_ context.Context, organizationID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ExistsCalls++
	_, ok := s.organizations[organizationID]
	return ok, nil
}

func (s *Store) GetName(_ context.Context, organizationID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	organization, ok := s.organizations[organizationID]
	if !ok {
		return "", domainerrors.ErrOrganizationNotFound
	}
	return organization.Name, nil
}

func (s *Store) GetProject(_ context.Context, projectID string) (entities.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, ok := s.projects[projectID]
	if !ok {
		return entities.Project{}, domainerrors.ErrProjectNotFound
	}
	return project, nil
}

func (s *Store) ReassignOrganization(_ context.Context, projectID string, organizationID string, event ports.ReassignedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ReassignCalls++
	if s.failReassign {
		return fmt.Errorf("simulated store failure")
	}

	project, ok := s.projects[projectID]
	if !ok {
		return domainerrors.ErrProjectNotFound
	}
	if _, ok := s.organizations[organizationID]; !ok {
		return domainerrors.ErrOrganizationNotFound
	}

	project.OrganizationID = organizationID
	project.UpdatedAt = event.OccurredAt.UTC()
	s.projects[projectID] = project

	payload, err := json.Marshal(buildReassignedEnvelope(event))
	if err != nil {
		return err
	}
	s.outbox = append(s.outbox, outboxRecord{
		message: ports.OutboxMessage{
			OutboxID:  event.EventID,
			EventType: "project.organization_reassigned",
			Payload:   payload,
			CreatedAt: event.OccurredAt.UTC(),
		},
		status: outbox.StatusPending,
	})
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0, limit)
	for _, record := range s.outbox {
		if record.status != outbox.StatusPending {
			continue
		}
		items = append(items, record.message)
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxSent(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.outbox {
		if s.outbox[i].message.OutboxID == outboxID {
			s.outbox[i].status = outbox.StatusSent
			return nil
		}
	}
	return fmt.Errorf("outbox row %s not found", outboxID)
}

func (s *Store) PutOrganization(organization entities.Organization) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.organizations[organization.OrganizationID] = organization
}

func (s *Store) PutProject(project entities.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[project.ProjectID] = project
}

func (s *Store) SetFailReassign(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failReassign = fail
}

func buildReassignedEnvelope(event ports.ReassignedEvent) ports.EventEnvelope {
	envelope, _ := events.New(
		event.EventID,
		"project.organization_reassigned",
		"tenant-transfer-service",
		event.OccurredAt,
		"project_id",
		event.ProjectID,
		map[string]string{
			"project_id":           event.ProjectID,
			"from_organization_id": event.FromOrganizationID,
			"to_organization_id":   event.ToOrganizationID,
			"actor_user_id":        event.ActorUserID,
		},
	)
	return envelope
}
