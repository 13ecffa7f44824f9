package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextshop-labs/storefront-backend/internal/catalog"
	pkgerrors "github.com/nextshop-labs/storefront-backend/pkg/errors"
)

func newCartService(t *testing.T) (Service, *Repository, *catalog.Repository) {
	t.Helper()

	db := setupCartTestDB(t)
	repo := NewRepository(db)
	products := catalog.NewRepository(db)
	svc, err := NewService(repo, products)
	require.NoError(t, err)
	return svc, repo, products
}

func TestAddItemPinsQuantityToOne(t *testing.T) {
	svc, repo, _ := newCartService(t)
	db := repo.db
	ctx := context.Background()

	product := seedProduct(t, db, "Wireless Mouse", "19.99")

	first, err := svc.AddItem(ctx, "cart-qty", product.ID)
	require.NoError(t, err)
	require.Len(t, first.Items, 1)
	assert.Equal(t, 1, first.Items[0].Quantity)

	// Bump the quantity, then re-add the same product. The add resets the
	// line back to a single unit instead of accumulating.
	_, err = svc.UpdateItemQuantity(ctx, first.Items[0].ID, 4)
	require.NoError(t, err)

	again, err := svc.AddItem(ctx, "cart-qty", product.ID)
	require.NoError(t, err)
	require.Len(t, again.Items, 1)
	assert.Equal(t, first.Items[0].ID, again.Items[0].ID)
	assert.Equal(t, 1, again.Items[0].Quantity)
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, _, _ := newCartService(t)

	_, err := svc.AddItem(context.Background(), "cart-x", uuid.New())
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestCartTotalsWorkedExample(t *testing.T) {
	svc, repo, _ := newCartService(t)
	db := repo.db
	ctx := context.Background()

	product := seedProduct(t, db, "Wireless Mouse", "19.99")

	added, err := svc.AddItem(ctx, "cart-total", product.ID)
	require.NoError(t, err)

	item, err := svc.UpdateItemQuantity(ctx, added.Items[0].ID, 2)
	require.NoError(t, err)
	assert.True(t, item.Subtotal.Equal(decimal.RequireFromString("39.98")))

	cartDTO, err := svc.CartByCode(ctx, "cart-total")
	require.NoError(t, err)
	assert.True(t, cartDTO.Total.Equal(decimal.RequireFromString("39.98")))
}

func TestCartTotalEmptyCart(t *testing.T) {
	svc, repo, _ := newCartService(t)
	ctx := context.Background()

	_, err := repo.FindOrCreateByCode(ctx, "cart-empty")
	require.NoError(t, err)

	cartDTO, err := svc.CartByCode(ctx, "cart-empty")
	require.NoError(t, err)
	assert.Empty(t, cartDTO.Items)
	assert.True(t, cartDTO.Total.IsZero())
}

func TestRemoveItemNotFound(t *testing.T) {
	svc, _, _ := newCartService(t)

	err := svc.RemoveItem(context.Background(), uuid.New())
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestUpdateItemQuantityNotFound(t *testing.T) {
	svc, _, _ := newCartService(t)

	_, err := svc.UpdateItemQuantity(context.Background(), uuid.New(), 2)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestAddItemValidatesInput(t *testing.T) {
	svc, _, _ := newCartService(t)

	_, err := svc.AddItem(context.Background(), "  ", uuid.New())
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())

	_, err = svc.AddItem(context.Background(), "cart-x", uuid.Nil)
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}
