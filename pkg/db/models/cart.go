package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart holds the in-progress shopping session for one client-issued cart
// code. Carts are ephemeral: fulfillment deletes the row (and its items)
// once the payment provider confirms checkout.
type Cart struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CartCode  string     `gorm:"column:cart_code;not null;uniqueIndex:carts_cart_code_key" json:"cart_code"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
