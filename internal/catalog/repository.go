package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/db"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/db/models"
	pkgerrors "github.com/rafaelmbarbosa/cardapiozap-backend/pkg/errors"
)

// ProductRepository defines the persistence surface for menu items.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, establishmentID, productID uuid.UUID) error
	GetByID(ctx context.Context, establishmentID, productID uuid.UUID) (*models.Product, error)
	GetActiveByName(ctx context.Context, establishmentID uuid.UUID, name string) (*models.Product, error)
	ListByEstablishment(ctx context.Context, establishmentID uuid.UUID, includeBlocked bool) ([]models.Product, error)
	SetBlocked(ctx context.Context, establishmentID, productID uuid.UUID, blocked bool) error
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository builds a repository tied to the provided GORM DB.
func NewProductRepository(conn *gorm.DB) ProductRepository {
	return &productRepository{db: conn}
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "a product with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating product")
	}
	return product, nil
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "a product with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating product")
	}
	return product, nil
}

func (r *productRepository) Delete(ctx context.Context, establishmentID, productID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("establishment_id = ? AND id = ?", establishmentID, productID).
		Delete(&models.Product{})
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "deleting product")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, establishmentID, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		First(&product, "establishment_id = ? AND id = ?", establishmentID, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}
	return &product, nil
}

func (r *productRepository) GetActiveByName(ctx context.Context, establishmentID uuid.UUID, name string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		First(&product, "establishment_id = ? AND name = ? AND blocked = ?", establishmentID, name, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}
	return &product, nil
}

func (r *productRepository) ListByEstablishment(ctx context.Context, establishmentID uuid.UUID, includeBlocked bool) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Where("establishment_id = ?", establishmentID)
	if !includeBlocked {
		query = query.Where("blocked = ?", false)
	}

	var products []models.Product
	if err := query.Order("name ASC").Find(&products).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing products")
	}
	return products, nil
}

func (r *productRepository) SetBlocked(ctx context.Context, establishmentID, productID uuid.UUID, blocked bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("establishment_id = ? AND id = ?", establishmentID, productID).
		Update("blocked", blocked)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "updating product visibility")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}
