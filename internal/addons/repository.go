package addons

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/db"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/db/models"
	pkgerrors "github.com/rafaelmbarbosa/cardapiozap-backend/pkg/errors"
)

// AddonRepository defines the persistence surface for addons.
type AddonRepository interface {
	Create(ctx context.Context, addon *models.Addon) (*models.Addon, error)
	Update(ctx context.Context, addon *models.Addon) (*models.Addon, error)
	Delete(ctx context.Context, establishmentID, addonID uuid.UUID) error
	GetByID(ctx context.Context, establishmentID, addonID uuid.UUID) (*models.Addon, error)
	GetActiveByName(ctx context.Context, establishmentID uuid.UUID, name string) (*models.Addon, error)
	ListByEstablishment(ctx context.Context, establishmentID uuid.UUID, includeBlocked bool) ([]models.Addon, error)
	SetBlocked(ctx context.Context, establishmentID, addonID uuid.UUID, blocked bool) error
}

type addonRepository struct {
	db *gorm.DB
}

// NewAddonRepository builds a repository tied to the provided GORM DB.
func NewAddonRepository(conn *gorm.DB) AddonRepository {
	return &addonRepository{db: conn}
}

func (r *addonRepository) Create(ctx context.Context, addon *models.Addon) (*models.Addon, error) {
	if err := r.db.WithContext(ctx).Create(addon).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "an addon with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating addon")
	}
	return addon, nil
}

func (r *addonRepository) Update(ctx context.Context, addon *models.Addon) (*models.Addon, error) {
	if err := r.db.WithContext(ctx).Save(addon).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "an addon with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating addon")
	}
	return addon, nil
}

func (r *addonRepository) Delete(ctx context.Context, establishmentID, addonID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("establishment_id = ? AND id = ?", establishmentID, addonID).
		Delete(&models.Addon{})
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "deleting addon")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "addon not found")
	}
	return nil
}

func (r *addonRepository) GetByID(ctx context.Context, establishmentID, addonID uuid.UUID) (*models.Addon, error) {
	var addon models.Addon
	err := r.db.WithContext(ctx).
		First(&addon, "establishment_id = ? AND id = ?", establishmentID, addonID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "addon not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading addon")
	}
	return &addon, nil
}

func (r *addonRepository) GetActiveByName(ctx context.Context, establishmentID uuid.UUID, name string) (*models.Addon, error) {
	var addon models.Addon
	err := r.db.WithContext(ctx).
		First(&addon, "establishment_id = ? AND name = ? AND blocked = ?", establishmentID, name, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "addon not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading addon")
	}
	return &addon, nil
}

func (r *addonRepository) ListByEstablishment(ctx context.Context, establishmentID uuid.UUID, includeBlocked bool) ([]models.Addon, error) {
	query := r.db.WithContext(ctx).Where("establishment_id = ?", establishmentID)
	if !includeBlocked {
		query = query.Where("blocked = ?", false)
	}

	var addons []models.Addon
	if err := query.Order("name ASC").Find(&addons).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing addons")
	}
	return addons, nil
}

func (r *addonRepository) SetBlocked(ctx context.Context, establishmentID, addonID uuid.UUID, blocked bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Addon{}).
		Where("establishment_id = ? AND id = ?", establishmentID, addonID).
		Update("blocked", blocked)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "updating addon visibility")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "addon not found")
	}
	return nil
}
