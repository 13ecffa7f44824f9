package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/nextshop-labs/storefront-backend/pkg/enums"
)

// Order is the permanent record of a completed checkout session. Only the
// fulfillment handler creates orders, from a verified provider event.
type Order struct {
	ID               uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StripeSessionID  string            `gorm:"column:stripe_session_id;not null;uniqueIndex:orders_stripe_session_key" json:"stripe_session_id"`
	AmountTotalCents int64             `gorm:"column:amount_total_cents;not null" json:"amount_total_cents"`
	Currency         string            `gorm:"column:currency;not null;default:'usd'" json:"currency"`
	CustomerEmail    string            `gorm:"column:customer_email;not null" json:"customer_email"`
	Status           enums.OrderStatus `gorm:"column:status;not null;default:'pending'" json:"status"`
	Items            []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
