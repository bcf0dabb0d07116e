package models

import (
	"time"

	"github.com/google/uuid"
)

// Addon is a priced extra attachable to incrementable menu items.
type Addon struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EstablishmentID uuid.UUID `gorm:"column:establishment_id;type:uuid;not null;uniqueIndex:idx_addons_establishment_name,priority:1"`
	Name            string    `gorm:"column:name;not null;uniqueIndex:idx_addons_establishment_name,priority:2"`
	PriceCents      int64     `gorm:"column:price_cents;not null"`
	Blocked         bool      `gorm:"column:blocked;not null;default:false"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
