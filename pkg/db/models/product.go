package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/enums"
)

// Product represents a purchasable menu item owned by an establishment.
// Name is the de facto identity used by the cart, so it is unique per establishment.
type Product struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EstablishmentID uuid.UUID             `gorm:"column:establishment_id;type:uuid;not null;uniqueIndex:idx_products_establishment_name,priority:1"`
	Name            string                `gorm:"column:name;not null;uniqueIndex:idx_products_establishment_name,priority:2"`
	Description     string                `gorm:"column:description;not null;default:''"`
	PriceCents      int64                 `gorm:"column:price_cents;not null"`
	Category        enums.ProductCategory `gorm:"column:category;not null"`
	Subcategory     *string               `gorm:"column:subcategory"`
	Options         pq.StringArray        `gorm:"column:options;type:text[];not null;default:ARRAY[]::text[]"`
	Incrementable   bool                  `gorm:"column:incrementable;not null;default:false"`
	Blocked         bool                  `gorm:"column:blocked;not null;default:false"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
