package wishlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nextshop-labs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/nextshop-labs/storefront-backend/pkg/errors"
)

type wishlistRepository interface {
	FindItem(ctx context.Context, userID, productID uuid.UUID) (*models.WishlistItem, error)
	CreateItem(ctx context.Context, userID, productID uuid.UUID) (*models.WishlistItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

type userLoader interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type productLoader interface {
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// ToggleResult reports the outcome of a wishlist toggle: either the created
// entry, or removal of the one that was there.
type ToggleResult struct {
	Added bool
	Item  *models.WishlistItem
}

// Service exposes the wishlist toggle.
type Service interface {
	Toggle(ctx context.Context, email string, productID uuid.UUID) (*ToggleResult, error)
}

type service struct {
	repo     wishlistRepository
	users    userLoader
	products productLoader
}

// NewService builds a wishlist service backed by the provided stack.
func NewService(repo wishlistRepository, users userLoader, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("wishlist repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("user loader required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, users: users, products: products}, nil
}

// Toggle flips wishlist membership for (user, product): an existing entry is
// removed, a missing one is created. Running it twice restores the original
// state.
func (s *service) Toggle(ctx context.Context, email string, productID uuid.UUID) (*ToggleResult, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	if _, err := s.products.FindProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	existing, err := s.repo.FindItem(ctx, user.ID, productID)
	if err == nil {
		if err := s.repo.DeleteItem(ctx, existing.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove wishlist item")
		}
		return &ToggleResult{Added: false}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load wishlist item")
	}

	created, err := s.repo.CreateItem(ctx, user.ID, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create wishlist item")
	}
	return &ToggleResult{Added: true, Item: created}, nil
}
