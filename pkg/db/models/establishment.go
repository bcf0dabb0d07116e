package models

import (
	"time"

	"github.com/google/uuid"
)

// Establishment is a restaurant profile reachable through its public slug.
type Establishment struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID       uuid.UUID `gorm:"column:owner_id;type:uuid;not null;uniqueIndex"`
	Name          string    `gorm:"column:name;not null"`
	Slug          string    `gorm:"column:slug;not null;uniqueIndex"`
	WhatsAppPhone string    `gorm:"column:whatsapp_phone;not null"`
	ImageURL      *string   `gorm:"column:image_url"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
