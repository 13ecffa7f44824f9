package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nextshop-labs/storefront-backend/pkg/db/models"
)

// CartRepository defines persistence operations for carts and their items.
type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	FindOrCreateByCode(ctx context.Context, cartCode string) (*models.Cart, error)
	FindByCode(ctx context.Context, cartCode string) (*models.Cart, error)
	FindOrCreateItem(ctx context.Context, cartID, productID uuid.UUID) (*models.CartItem, error)
	SaveItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error)
	FindItem(ctx context.Context, itemID uuid.UUID) (*models.CartItem, error)
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	DeleteByCode(ctx context.Context, cartCode string) error
}
