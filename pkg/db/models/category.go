package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products for browsing. Slug is URL-safe and unique,
// derived from the name when left empty on save.
type Category struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Slug      string    `gorm:"column:slug;not null;uniqueIndex:categories_slug_key" json:"slug"`
	ImageURL  *string   `gorm:"column:image_url" json:"image,omitempty"`
	Products  []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"products,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}
