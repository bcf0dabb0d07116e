package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/db/models"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/enums"
	pkgerrors "github.com/rafaelmbarbosa/cardapiozap-backend/pkg/errors"
)

// Service exposes menu reads and owner-scoped catalog management.
type Service interface {
	Menu(ctx context.Context, establishmentID uuid.UUID) ([]MenuSection, error)
	ListProducts(ctx context.Context, establishmentID uuid.UUID) ([]ProductDTO, error)
	CreateProduct(ctx context.Context, establishmentID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, establishmentID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, establishmentID, productID uuid.UUID) error
	SetProductBlocked(ctx context.Context, establishmentID, productID uuid.UUID, blocked bool) error
	GetActiveByName(ctx context.Context, establishmentID uuid.UUID, name string) (*models.Product, error)
}

type service struct {
	repo ProductRepository
}

// NewService builds the catalog service.
func NewService(repo ProductRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

// Menu returns the visible items grouped by category in display order.
// Blocked items never leave the repository.
func (s *service) Menu(ctx context.Context, establishmentID uuid.UUID) ([]MenuSection, error) {
	products, err := s.repo.ListByEstablishment(ctx, establishmentID, false)
	if err != nil {
		return nil, err
	}

	byCategory := map[enums.ProductCategory][]ProductDTO{}
	for i := range products {
		dto := toProductDTO(&products[i])
		byCategory[products[i].Category] = append(byCategory[products[i].Category], dto)
	}

	sections := []MenuSection{}
	for _, category := range enums.ProductCategories() {
		items := byCategory[category]
		if len(items) == 0 {
			continue
		}
		sections = append(sections, MenuSection{
			Category: category.String(),
			Subtypes: SubtypesFor(category),
			Items:    items,
		})
	}
	return sections, nil
}

func (s *service) ListProducts(ctx context.Context, establishmentID uuid.UUID) ([]ProductDTO, error) {
	products, err := s.repo.ListByEstablishment(ctx, establishmentID, true)
	if err != nil {
		return nil, err
	}

	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, toProductDTO(&products[i]))
	}
	return dtos, nil
}

func (s *service) CreateProduct(ctx context.Context, establishmentID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	category, err := parseCategory(input.Category)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	if err := validateSubcategory(category, input.Subcategory); err != nil {
		return nil, err
	}

	incrementable := DefaultIncrementable(category)
	if input.Incrementable != nil {
		incrementable = *input.Incrementable
	}

	product := &models.Product{
		EstablishmentID: establishmentID,
		Name:            strings.TrimSpace(input.Name),
		Description:     strings.TrimSpace(input.Description),
		PriceCents:      input.PriceCents,
		Category:        category,
		Subcategory:     input.Subcategory,
		Options:         pq.StringArray(input.Options),
		Incrementable:   incrementable,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	dto := toProductDTO(created)
	return &dto, nil
}

func (s *service) UpdateProduct(ctx context.Context, establishmentID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.repo.GetByID(ctx, establishmentID, productID)
	if err != nil {
		return nil, err
	}

	if input.Category != nil {
		category, err := parseCategory(*input.Category)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		product.Category = category
		// category change re-derives the default unless the payload pins it
		if input.Incrementable == nil {
			product.Incrementable = DefaultIncrementable(category)
		}
		if input.Subcategory == nil {
			product.Subcategory = nil
		}
	}
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.PriceCents != nil {
		product.PriceCents = *input.PriceCents
	}
	if input.Subcategory != nil {
		product.Subcategory = input.Subcategory
	}
	if input.Options != nil {
		product.Options = pq.StringArray(*input.Options)
	}
	if input.Incrementable != nil {
		product.Incrementable = *input.Incrementable
	}

	if err := validateSubcategory(product.Category, product.Subcategory); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, err
	}

	dto := toProductDTO(updated)
	return &dto, nil
}

func (s *service) DeleteProduct(ctx context.Context, establishmentID, productID uuid.UUID) error {
	return s.repo.Delete(ctx, establishmentID, productID)
}

func (s *service) SetProductBlocked(ctx context.Context, establishmentID, productID uuid.UUID, blocked bool) error {
	return s.repo.SetBlocked(ctx, establishmentID, productID, blocked)
}

func (s *service) GetActiveByName(ctx context.Context, establishmentID uuid.UUID, name string) (*models.Product, error) {
	return s.repo.GetActiveByName(ctx, establishmentID, name)
}

func validateSubcategory(category enums.ProductCategory, subcategory *string) error {
	if subcategory == nil || *subcategory == "" {
		return nil
	}
	if !ValidSubtype(category, *subcategory) {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("subcategory %q is not valid for category %q", *subcategory, category))
	}
	return nil
}
