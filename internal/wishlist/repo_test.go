package wishlist

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nextshop-labs/storefront-backend/internal/catalog"
	"github.com/nextshop-labs/storefront-backend/internal/users"
	"github.com/nextshop-labs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/nextshop-labs/storefront-backend/pkg/errors"
)

func setupWishlistTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	usersTable := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  profile_picture_url TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  category_id TEXT,
  name TEXT NOT NULL,
  description TEXT NOT NULL,
  price NUMERIC NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  featured INTEGER NOT NULL DEFAULT 1,
  image_url TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	items := `
CREATE TABLE IF NOT EXISTS wishlist_items (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  created_at DATETIME,
  UNIQUE (user_id, product_id)
);`
	require.NoError(t, db.Exec(usersTable).Error)
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(items).Error)
	return db
}

func seedWishlistFixtures(t *testing.T, db *gorm.DB) (*models.User, *models.Product) {
	t.Helper()

	user := &models.User{ID: uuid.New(), Username: "erin", Email: "erin@example.com"}
	require.NoError(t, db.Create(user).Error)

	product := &models.Product{
		ID:          uuid.New(),
		Name:        "Laptop Sleeve",
		Description: "padded",
		Price:       decimal.RequireFromString("22.00"),
		Slug:        "laptop-sleeve-" + uuid.NewString()[:8],
		Featured:    true,
	}
	require.NoError(t, db.Create(product).Error)
	return user, product
}

func newWishlistService(t *testing.T, db *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(db), users.NewRepository(db), catalog.NewRepository(db))
	require.NoError(t, err)
	return svc
}

func TestToggleAddsThenRemoves(t *testing.T) {
	db := setupWishlistTestDB(t)
	svc := newWishlistService(t, db)
	ctx := context.Background()

	user, product := seedWishlistFixtures(t, db)

	added, err := svc.Toggle(ctx, user.Email, product.ID)
	require.NoError(t, err)
	assert.True(t, added.Added)
	require.NotNil(t, added.Item)
	assert.Equal(t, user.ID, added.Item.UserID)

	removed, err := svc.Toggle(ctx, user.Email, product.ID)
	require.NoError(t, err)
	assert.False(t, removed.Added)
	assert.Nil(t, removed.Item)

	var count int64
	require.NoError(t, db.Model(&models.WishlistItem{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestToggleIsSelfInverse(t *testing.T) {
	db := setupWishlistTestDB(t)
	svc := newWishlistService(t, db)
	ctx := context.Background()

	user, product := seedWishlistFixtures(t, db)

	for i := 0; i < 2; i++ {
		_, err := svc.Toggle(ctx, user.Email, product.ID)
		require.NoError(t, err)
		_, err = svc.Toggle(ctx, user.Email, product.ID)
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&models.WishlistItem{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestToggleUnknownUser(t *testing.T) {
	db := setupWishlistTestDB(t)
	svc := newWishlistService(t, db)

	_, product := seedWishlistFixtures(t, db)

	_, err := svc.Toggle(context.Background(), "nobody@example.com", product.ID)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestToggleUnknownProduct(t *testing.T) {
	db := setupWishlistTestDB(t)
	svc := newWishlistService(t, db)

	user, _ := seedWishlistFixtures(t, db)

	_, err := svc.Toggle(context.Background(), user.Email, uuid.New())
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
