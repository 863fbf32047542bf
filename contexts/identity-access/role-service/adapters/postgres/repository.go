package postgresadapter

import (
	"context"
	"errors"
	"log/slog"

	"meridian/contexts/identity-access/role-service/domain/entities"
	domainerrors "meridian/contexts/identity-access/role-service/domain/errors"

	"gorm.io/gorm"
)

// Repository reads profiles and memberships. Both lookups run with ordinary
// tenant-scoped access; nothing in this service mutates state.
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

func (r *Repository) GetProfile(ctx context.Context, userID string) (entities.Profile, error) {
	var row profileModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Profile{}, domainerrors.ErrProfileNotFound
		}
		return entities.Profile{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetMembership(ctx context.Context, userID string) (entities.Membership, error) {
	var row membershipRow
	err := r.db.WithContext(ctx).
		Table("organization_members").
		Select("organization_members.user_id, organization_members.organization_id, organizations.name AS organization_name").
		Joins("JOIN organizations ON organizations.organization_id = organization_members.organization_id").
		Where("organization_members.user_id = ?", userID).
		Limit(1).
		Take(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Membership{}, domainerrors.ErrMembershipNotFound
		}
		return entities.Membership{}, err
	}
	return entities.Membership{
		UserID:           row.UserID,
		OrganizationID:   row.OrganizationID,
		OrganizationName: row.OrganizationName,
	}, nil
}

type profileModel struct {
	UserID     string `gorm:"column:user_id;primaryKey"`
	GlobalRole string `gorm:"column:global_role"`
}

func (profileModel) TableName() string {
	return "profiles"
}

func (m profileModel) toEntity() entities.Profile {
	role := entities.GlobalRole(m.GlobalRole)
	if role == "" {
		role = entities.RoleUser
	}
	return entities.Profile{
		UserID:     m.UserID,
		GlobalRole: role,
	}
}

type membershipRow struct {
	UserID           string `gorm:"column:user_id"`
	OrganizationID   string `gorm:"column:organization_id"`
	OrganizationName string `gorm:"column:organization_name"`
}
