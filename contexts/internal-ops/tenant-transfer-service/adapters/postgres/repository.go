package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"meridian/contexts/internal-ops/tenant-transfer-service/domain/entities"
	domainerrors "meridian/contexts/internal-ops/tenant-transfer-service/domain/errors"
	"meridian/contexts/internal-ops/tenant-transfer-service/ports"
	"meridian/internal/shared/events"
	"meridian/internal/shared/outbox"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository is the elevated-access adapter for cross-tenant transfers. It
// connects with a role that bypasses per-tenant row isolation; the explicit
// authorization gate in the application layer is what makes that safe.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) Exists(ctx context.Context, organizationID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&organizationModel{}).
		Where("organization_id = ?", organizationID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) GetName(ctx context.Context, organizationID string) (string, error) {
	var row organizationModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domainerrors.ErrOrganizationNotFound
		}
		return "", err
	}
	return row.Name, nil
}

func (r *Repository) GetProject(ctx context.Context, projectID string) (entities.Project, error) {
	var row projectModel
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Project{}, domainerrors.ErrProjectNotFound
		}
		return entities.Project{}, err
	}
	return row.toEntity(), nil
}

// ReassignOrganization moves the project and writes the audit outbox row in
// one transaction. The projects.organization_id foreign key is the backstop
// for the check-then-commit window: a target deleted between the existence
// check and this write surfaces as ErrOrganizationNotFound, not a silent
// dangling reference.
func (r *Repository) ReassignOrganization(ctx context.Context, projectID string, organizationID string, event ports.ReassignedEvent) error {
	payload, err := json.Marshal(buildReassignedEnvelope(event))
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&projectModel{}).
			Where("project_id = ?", projectID).
			Updates(map[string]any{
				"organization_id": organizationID,
				"updated_at":      event.OccurredAt.UTC(),
			})
		if result.Error != nil {
			if isForeignKeyViolation(result.Error) {
				return domainerrors.ErrOrganizationNotFound
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrProjectNotFound
		}

		outboxRow := outboxModel{
			OutboxID:     event.EventID,
			EventType:    "project.organization_reassigned",
			PartitionKey: event.ProjectID,
			Payload:      payload,
			Status:       outbox.StatusPending,
			CreatedAt:    event.OccurredAt.UTC(),
		}
		return tx.Create(&outboxRow).Error
	})
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outbox.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:  row.OutboxID,
			EventType: row.EventType,
			Payload:   row.Payload,
			CreatedAt: row.CreatedAt,
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":  outbox.StatusSent,
			"sent_at": sentAt.UTC(),
		}).
		Error
}

type organizationModel struct {
	OrganizationID string    `gorm:"column:organization_id;primaryKey"`
	Name           string    `gorm:"column:name"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (organizationModel) TableName() string {
	return "organizations"
}

type projectModel struct {
	ProjectID      string    `gorm:"column:project_id;primaryKey"`
	OrganizationID string    `gorm:"column:organization_id"`
	Name           string    `gorm:"column:name"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (projectModel) TableName() string {
	return "projects"
}

func (m projectModel) toEntity() entities.Project {
	return entities.Project{
		ProjectID:      m.ProjectID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		UpdatedAt:      m.UpdatedAt,
	}
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	SentAt       *time.Time `gorm:"column:sent_at"`
}

func (outboxModel) TableName() string {
	return "transfer_outbox"
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

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
