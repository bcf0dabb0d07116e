package catalog

import (
	"github.com/google/uuid"

	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/db/models"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/enums"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/money"
)

// CreateProductInput holds the validated payload to create a menu item.
// Incrementable left nil takes the category default.
type CreateProductInput struct {
	Name          string   `json:"name" validate:"required,min=2,max=120"`
	Description   string   `json:"description" validate:"max=500"`
	PriceCents    int64    `json:"price_cents" validate:"gte=0"`
	Category      string   `json:"category" validate:"required"`
	Subcategory   *string  `json:"subcategory,omitempty"`
	Options       []string `json:"options,omitempty" validate:"dive,min=1,max=60"`
	Incrementable *bool    `json:"incrementable,omitempty"`
}

// UpdateProductInput holds optional mutation values for a menu item.
type UpdateProductInput struct {
	Name          *string   `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Description   *string   `json:"description,omitempty" validate:"omitempty,max=500"`
	PriceCents    *int64    `json:"price_cents,omitempty" validate:"omitempty,gte=0"`
	Category      *string   `json:"category,omitempty"`
	Subcategory   *string   `json:"subcategory,omitempty"`
	Options       *[]string `json:"options,omitempty" validate:"omitempty,dive,min=1,max=60"`
	Incrementable *bool     `json:"incrementable,omitempty"`
}

// ProductDTO is the API shape of a menu item.
type ProductDTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	PriceCents    int64     `json:"price_cents"`
	Price         string    `json:"price"`
	Category      string    `json:"category"`
	Subcategory   *string   `json:"subcategory,omitempty"`
	Options       []string  `json:"options,omitempty"`
	Incrementable bool      `json:"incrementable"`
	Blocked       bool      `json:"blocked"`
}

// MenuSection groups the visible items of one category, in menu display order.
type MenuSection struct {
	Category string       `json:"category"`
	Subtypes []string     `json:"subtypes,omitempty"`
	Items    []ProductDTO `json:"items"`
}

func toProductDTO(p *models.Product) ProductDTO {
	return ProductDTO{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		PriceCents:    p.PriceCents,
		Price:         money.FormatBRL(p.PriceCents),
		Category:      p.Category.String(),
		Subcategory:   p.Subcategory,
		Options:       append([]string(nil), p.Options...),
		Incrementable: p.Incrementable,
		Blocked:       p.Blocked,
	}
}

func parseCategory(value string) (enums.ProductCategory, error) {
	return enums.ParseProductCategory(value)
}
