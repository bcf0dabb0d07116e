package establishments

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/db/models"
	pkgerrors "github.com/rafaelmbarbosa/cardapiozap-backend/pkg/errors"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10,15}$`)

// CreateInput holds the payload to register an establishment for an owner.
type CreateInput struct {
	Name          string `json:"name" validate:"required,min=2,max=120"`
	Slug          string `json:"slug" validate:"required,min=2,max=60"`
	WhatsAppPhone string `json:"whatsapp_phone" validate:"required"`
}

// UpdateInput holds optional mutation values for an establishment.
type UpdateInput struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Slug          *string `json:"slug,omitempty" validate:"omitempty,min=2,max=60"`
	WhatsAppPhone *string `json:"whatsapp_phone,omitempty"`
	ImageURL      *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// DTO is the API shape of an establishment.
type DTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	WhatsAppPhone string    `json:"whatsapp_phone"`
	ImageURL      *string   `json:"image_url,omitempty"`
}

func toDTO(e *models.Establishment) DTO {
	return DTO{
		ID:            e.ID,
		Name:          e.Name,
		Slug:          e.Slug,
		WhatsAppPhone: e.WhatsAppPhone,
		ImageURL:      e.ImageURL,
	}
}

// Service exposes establishment lookup and owner-scoped management.
type Service interface {
	GetBySlug(ctx context.Context, slug string) (*models.Establishment, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Establishment, error)
	Create(ctx context.Context, ownerID uuid.UUID, input CreateInput) (*DTO, error)
	Update(ctx context.Context, ownerID uuid.UUID, input UpdateInput) (*DTO, error)
}

type service struct {
	repo EstablishmentRepository
}

// NewService builds the establishment service.
func NewService(repo EstablishmentRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("establishment repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*models.Establishment, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *service) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Establishment, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, input CreateInput) (*DTO, error) {
	phone := normalizePhone(input.WhatsAppPhone)
	if !phonePattern.MatchString(phone) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "whatsapp phone must be 10 to 15 digits")
	}

	establishment := &models.Establishment{
		OwnerID:       ownerID,
		Name:          strings.TrimSpace(input.Name),
		Slug:          normalizeSlug(input.Slug),
		WhatsAppPhone: phone,
	}

	created, err := s.repo.Create(ctx, establishment)
	if err != nil {
		return nil, err
	}

	dto := toDTO(created)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, ownerID uuid.UUID, input UpdateInput) (*DTO, error) {
	establishment, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		establishment.Name = strings.TrimSpace(*input.Name)
	}
	if input.Slug != nil {
		establishment.Slug = normalizeSlug(*input.Slug)
	}
	if input.WhatsAppPhone != nil {
		phone := normalizePhone(*input.WhatsAppPhone)
		if !phonePattern.MatchString(phone) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "whatsapp phone must be 10 to 15 digits")
		}
		establishment.WhatsAppPhone = phone
	}
	if input.ImageURL != nil {
		establishment.ImageURL = input.ImageURL
	}

	updated, err := s.repo.Update(ctx, establishment)
	if err != nil {
		return nil, err
	}

	dto := toDTO(updated)
	return &dto, nil
}

func normalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func normalizeSlug(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
