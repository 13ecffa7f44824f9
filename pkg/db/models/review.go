package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a user's rating plus free text for one product. At most one
// review per (product, user); listings are newest-first.
type Review struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:reviews_product_user_key" json:"product_id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:reviews_product_user_key" json:"user_id"`
	Rating    int       `gorm:"column:rating;not null" json:"rating"`
	Body      string    `gorm:"column:body;not null" json:"review"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated"`
}
