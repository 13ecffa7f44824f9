package reviews

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nextshop-labs/storefront-backend/pkg/db/models"
)

func setupReviewsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	users := `
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
	reviews := `
CREATE TABLE IF NOT EXISTS reviews (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  rating INTEGER NOT NULL,
  body TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (product_id, user_id)
);`
	ratings := `
CREATE TABLE IF NOT EXISTS product_ratings (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL UNIQUE,
  average_rating REAL NOT NULL DEFAULT 0,
  total_reviews INTEGER NOT NULL DEFAULT 0
);`
	require.NoError(t, db.Exec(users).Error)
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(reviews).Error)
	require.NoError(t, db.Exec(ratings).Error)
	return db
}

func seedReviewUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{ID: uuid.New(), Username: strings.Split(email, "@")[0], Email: email}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedReviewProduct(t *testing.T, db *gorm.DB, name string) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:          uuid.New(),
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString("10.00"),
		Slug:        strings.ToLower(strings.ReplaceAll(name, " ", "-")) + "-" + uuid.NewString()[:8],
		Featured:    true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestListByProductNewestFirst(t *testing.T) {
	db := setupReviewsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := seedReviewProduct(t, db, "Keyboard")
	older := seedReviewUser(t, db, "older@example.com")
	newer := seedReviewUser(t, db, "newer@example.com")

	base := time.Now().Add(-2 * time.Hour)
	require.NoError(t, db.Create(&models.Review{
		ID: uuid.New(), ProductID: product.ID, UserID: older.ID,
		Rating: 3, Body: "fine", CreatedAt: base,
	}).Error)
	require.NoError(t, db.Create(&models.Review{
		ID: uuid.New(), ProductID: product.ID, UserID: newer.ID,
		Rating: 5, Body: "great", CreatedAt: base.Add(time.Hour),
	}).Error)

	rows, err := repo.ListByProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "great", rows[0].Body)
	assert.Equal(t, "fine", rows[1].Body)
}

func TestAggregateForProductEmpty(t *testing.T) {
	db := setupReviewsTestDB(t)
	repo := NewRepository(db)

	average, total, err := repo.AggregateForProduct(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Zero(t, average)
	assert.Zero(t, total)
}

func TestUpsertRatingCreatesThenUpdates(t *testing.T) {
	db := setupReviewsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	productID := uuid.New()

	require.NoError(t, repo.UpsertRating(ctx, productID, 4.0, 1))
	require.NoError(t, repo.UpsertRating(ctx, productID, 4.5, 2))

	var rating models.ProductRating
	require.NoError(t, db.Where("product_id = ?", productID).First(&rating).Error)
	assert.InDelta(t, 4.5, rating.AverageRating, 0.0001)
	assert.Equal(t, 2, rating.TotalReviews)

	var count int64
	require.NoError(t, db.Model(&models.ProductRating{}).Where("product_id = ?", productID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteMissingReview(t *testing.T) {
	db := setupReviewsTestDB(t)
	repo := NewRepository(db)

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
