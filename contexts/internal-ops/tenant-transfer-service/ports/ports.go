package ports

import (
	"context"
	"time"

	"meridian/contexts/internal-ops/tenant-transfer-service/domain/entities"
	contractsv1 "meridian/contracts/gen/events/v1"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for outbox rows.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// RoleDecision is the authorization answer this service needs from the
// identity context.
type RoleDecision struct {
	GlobalRole   string
	IsSuperAdmin bool
}

// RoleResolver re-derives the caller's authorization level per request. The
// identity context owns the implementation; this port keeps the transfer
// service from importing across the context boundary.
type RoleResolver interface {
	Resolve(ctx context.Context, userID string, email string) (RoleDecision, error)
}

// OrganizationStore reads tenants with elevated access: the caller of a
// cross-tenant transfer is not necessarily a member of the target tenant, so
// ordinary tenant-scoped reads are insufficient by construction.
type OrganizationStore interface {
	Exists(ctx context.Context, organizationID string) (bool, error)
	GetName(ctx context.Context, organizationID string) (string, error)
}

// ReassignedEvent is the outbound audit payload persisted to outbox in the
// same transaction as the project update.
type ReassignedEvent struct {
	EventID            string
	ProjectID          string
	FromOrganizationID string
	ToOrganizationID   string
	ActorUserID        string
	OccurredAt         time.Time
}

// ProjectStore mutates projects with elevated access. ReassignOrganization
// updates the owning organization and the last-modified timestamp, and
// persists the audit outbox row atomically with the update.
type ProjectStore interface {
	GetProject(ctx context.Context, projectID string) (entities.Project, error)
	ReassignOrganization(ctx context.Context, projectID string, organizationID string, event ReassignedEvent) error
}

// OutboxMessage represents a pending relay message.
type OutboxMessage struct {
	OutboxID  string
	EventType string
	Payload   []byte
	CreatedAt time.Time
}

// OutboxRepository supports worker relay polling and acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error
}

// EventEnvelope reuses the canonical cross-runtime envelope contract.
type EventEnvelope = contractsv1.Envelope

// EventPublisher publishes canonical envelopes to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
