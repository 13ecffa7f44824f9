package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a storefront listing. Price is a non-negative decimal with
// two fraction digits; checkout converts it to minor currency units.
type Product struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CategoryID  *uuid.UUID      `gorm:"column:category_id;type:uuid" json:"category_id,omitempty"`
	Name        string          `gorm:"column:name;not null" json:"name"`
	Description string          `gorm:"column:description;not null" json:"description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Slug        string          `gorm:"column:slug;not null;uniqueIndex:products_slug_key" json:"slug"`
	Featured    bool            `gorm:"column:featured;not null;default:true" json:"featured"`
	ImageURL    *string         `gorm:"column:image_url" json:"image,omitempty"`
	Rating      *ProductRating  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"rating,omitempty"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}
