package addons

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/db/models"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/money"
)

// CreateAddonInput holds the validated payload to create an addon.
type CreateAddonInput struct {
	Name       string `json:"name" validate:"required,min=2,max=120"`
	PriceCents int64  `json:"price_cents" validate:"gte=0"`
}

// UpdateAddonInput holds optional mutation values for an addon.
type UpdateAddonInput struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	PriceCents *int64  `json:"price_cents,omitempty" validate:"omitempty,gte=0"`
}

// AddonDTO is the API shape of an addon.
type AddonDTO struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
	Price      string    `json:"price"`
	Blocked    bool      `json:"blocked"`
}

func toAddonDTO(a *models.Addon) AddonDTO {
	return AddonDTO{
		ID:         a.ID,
		Name:       a.Name,
		PriceCents: a.PriceCents,
		Price:      money.FormatBRL(a.PriceCents),
		Blocked:    a.Blocked,
	}
}

// Service exposes the addon catalog, for the menu and for owner management.
type Service interface {
	ListActive(ctx context.Context, establishmentID uuid.UUID) ([]AddonDTO, error)
	List(ctx context.Context, establishmentID uuid.UUID) ([]AddonDTO, error)
	Create(ctx context.Context, establishmentID uuid.UUID, input CreateAddonInput) (*AddonDTO, error)
	Update(ctx context.Context, establishmentID, addonID uuid.UUID, input UpdateAddonInput) (*AddonDTO, error)
	Delete(ctx context.Context, establishmentID, addonID uuid.UUID) error
	SetBlocked(ctx context.Context, establishmentID, addonID uuid.UUID, blocked bool) error
	GetActiveByName(ctx context.Context, establishmentID uuid.UUID, name string) (*models.Addon, error)
	ActivePriceIndex(ctx context.Context, establishmentID uuid.UUID) (map[string]int64, error)
}

type service struct {
	repo AddonRepository
}

// NewService builds the addon service.
func NewService(repo AddonRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("addon repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListActive(ctx context.Context, establishmentID uuid.UUID) ([]AddonDTO, error) {
	return s.list(ctx, establishmentID, false)
}

func (s *service) List(ctx context.Context, establishmentID uuid.UUID) ([]AddonDTO, error) {
	return s.list(ctx, establishmentID, true)
}

func (s *service) list(ctx context.Context, establishmentID uuid.UUID, includeBlocked bool) ([]AddonDTO, error) {
	addons, err := s.repo.ListByEstablishment(ctx, establishmentID, includeBlocked)
	if err != nil {
		return nil, err
	}

	dtos := make([]AddonDTO, 0, len(addons))
	for i := range addons {
		dtos = append(dtos, toAddonDTO(&addons[i]))
	}
	return dtos, nil
}

func (s *service) Create(ctx context.Context, establishmentID uuid.UUID, input CreateAddonInput) (*AddonDTO, error) {
	addon := &models.Addon{
		EstablishmentID: establishmentID,
		Name:            strings.TrimSpace(input.Name),
		PriceCents:      input.PriceCents,
	}

	created, err := s.repo.Create(ctx, addon)
	if err != nil {
		return nil, err
	}

	dto := toAddonDTO(created)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, establishmentID, addonID uuid.UUID, input UpdateAddonInput) (*AddonDTO, error) {
	addon, err := s.repo.GetByID(ctx, establishmentID, addonID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		addon.Name = strings.TrimSpace(*input.Name)
	}
	if input.PriceCents != nil {
		addon.PriceCents = *input.PriceCents
	}

	updated, err := s.repo.Update(ctx, addon)
	if err != nil {
		return nil, err
	}

	dto := toAddonDTO(updated)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, establishmentID, addonID uuid.UUID) error {
	return s.repo.Delete(ctx, establishmentID, addonID)
}

func (s *service) SetBlocked(ctx context.Context, establishmentID, addonID uuid.UUID, blocked bool) error {
	return s.repo.SetBlocked(ctx, establishmentID, addonID, blocked)
}

func (s *service) GetActiveByName(ctx context.Context, establishmentID uuid.UUID, name string) (*models.Addon, error) {
	return s.repo.GetActiveByName(ctx, establishmentID, name)
}

// ActivePriceIndex indexes active addon prices by name for pricing passes.
// Blocked addons fall out of the index, so stale cart attachments referencing
// them price as zero.
func (s *service) ActivePriceIndex(ctx context.Context, establishmentID uuid.UUID) (map[string]int64, error) {
	addons, err := s.repo.ListByEstablishment(ctx, establishmentID, false)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int64, len(addons))
	for i := range addons {
		index[addons[i].Name] = addons[i].PriceCents
	}
	return index, nil
}
