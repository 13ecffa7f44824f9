package reviews

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nextshop-labs/storefront-backend/pkg/db/models"
)

// Repository encapsulates review persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a review repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) ReviewRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a new review. The unique (product, user) index rejects a
// second review by the same user.
func (r *Repository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// Save persists the provided review.
func (r *Repository) Save(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := r.db.WithContext(ctx).Save(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// FindByID loads one review by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Delete removes one review by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Review{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByProduct returns a product's reviews, newest first.
func (r *Repository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	var rows []models.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AggregateForProduct computes the current average rating and review count.
func (r *Repository) AggregateForProduct(ctx context.Context, productID uuid.UUID) (float64, int, error) {
	var row struct {
		Average *float64
		Total   int
	}
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("AVG(rating) AS average, COUNT(*) AS total").
		Where("product_id = ?", productID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	average := 0.0
	if row.Average != nil {
		average = *row.Average
	}
	return average, row.Total, nil
}

// UpsertRating writes the aggregate row for a product, creating it on first
// review.
func (r *Repository) UpsertRating(ctx context.Context, productID uuid.UUID, average float64, total int) error {
	var rating models.ProductRating
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&rating).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		rating = models.ProductRating{
			ID:            uuid.New(),
			ProductID:     productID,
			AverageRating: average,
			TotalReviews:  total,
		}
		return r.db.WithContext(ctx).Create(&rating).Error
	}

	return r.db.WithContext(ctx).
		Model(&models.ProductRating{}).
		Where("product_id = ?", productID).
		Updates(map[string]any{
			"average_rating": average,
			"total_reviews":  total,
		}).Error
}
