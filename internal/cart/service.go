package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nextshop-labs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/nextshop-labs/storefront-backend/pkg/errors"
)

type productLoader interface {
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes the cart operations keyed by client-issued cart codes.
type Service interface {
	AddItem(ctx context.Context, cartCode string, productID uuid.UUID) (*CartDTO, error)
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (*ItemDTO, error)
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
	CartByCode(ctx context.Context, cartCode string) (*CartDTO, error)
}

type service struct {
	repo     CartRepository
	products productLoader
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo CartRepository, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, products: products}, nil
}

// AddItem puts a product in the cart identified by cartCode, creating the
// cart on first use. The line quantity is always set to 1, so repeating the
// call neither duplicates the row nor accumulates quantity.
func (s *service) AddItem(ctx context.Context, cartCode string, productID uuid.UUID) (*CartDTO, error) {
	code := strings.TrimSpace(cartCode)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart_code is required")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}

	if _, err := s.products.FindProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	record, err := s.repo.FindOrCreateByCode(ctx, code)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find or create cart")
	}

	item, err := s.repo.FindOrCreateItem(ctx, record.ID, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find or create cart item")
	}

	item.Quantity = 1
	if _, err := s.repo.SaveItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save cart item")
	}

	return s.CartByCode(ctx, code)
}

// UpdateItemQuantity overwrites the quantity on one cart line and returns the
// repriced line.
func (s *service) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (*ItemDTO, error) {
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}

	if err := s.repo.UpdateItemQuantity(ctx, itemID, quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart item")
	}

	item, err := s.repo.FindItem(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload cart item")
	}
	return buildItemDTO(item), nil
}

// RemoveItem deletes one cart line.
func (s *service) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	if itemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart item")
	}
	return nil
}

// CartByCode loads the full priced cart for the given code.
func (s *service) CartByCode(ctx context.Context, cartCode string) (*CartDTO, error) {
	code := strings.TrimSpace(cartCode)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart_code is required")
	}

	record, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	return buildCartDTO(record), nil
}
