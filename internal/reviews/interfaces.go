package reviews

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nextshop-labs/storefront-backend/pkg/db/models"
)

// ReviewRepository defines persistence operations for reviews and the
// denormalized per-product rating aggregate.
type ReviewRepository interface {
	WithTx(tx *gorm.DB) ReviewRepository
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	Save(ctx context.Context, review *models.Review) (*models.Review, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error)
	AggregateForProduct(ctx context.Context, productID uuid.UUID) (float64, int, error)
	UpsertRating(ctx context.Context, productID uuid.UUID, average float64, total int) error
}
