package establishments

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/db"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/db/models"
	pkgerrors "github.com/rafaelmbarbosa/cardapiozap-backend/pkg/errors"
)

// EstablishmentRepository defines persistence for establishment records.
type EstablishmentRepository interface {
	Create(ctx context.Context, establishment *models.Establishment) (*models.Establishment, error)
	Update(ctx context.Context, establishment *models.Establishment) (*models.Establishment, error)
	GetBySlug(ctx context.Context, slug string) (*models.Establishment, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Establishment, error)
}

type establishmentRepository struct {
	db *gorm.DB
}

// NewEstablishmentRepository builds a repository tied to the provided GORM DB.
func NewEstablishmentRepository(conn *gorm.DB) EstablishmentRepository {
	return &establishmentRepository{db: conn}
}

func (r *establishmentRepository) Create(ctx context.Context, establishment *models.Establishment) (*models.Establishment, error) {
	if err := r.db.WithContext(ctx).Create(establishment).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "slug already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating establishment")
	}
	return establishment, nil
}

func (r *establishmentRepository) Update(ctx context.Context, establishment *models.Establishment) (*models.Establishment, error) {
	if err := r.db.WithContext(ctx).Save(establishment).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "slug already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating establishment")
	}
	return establishment, nil
}

func (r *establishmentRepository) GetBySlug(ctx context.Context, slug string) (*models.Establishment, error) {
	var establishment models.Establishment
	err := r.db.WithContext(ctx).First(&establishment, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "establishment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading establishment")
	}
	return &establishment, nil
}

func (r *establishmentRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Establishment, error) {
	var establishment models.Establishment
	err := r.db.WithContext(ctx).First(&establishment, "owner_id = ?", ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "establishment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading establishment")
	}
	return &establishment, nil
}
