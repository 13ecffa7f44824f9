package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nextshop-labs/storefront-backend/pkg/db"
	"github.com/nextshop-labs/storefront-backend/pkg/db/models"
	"github.com/nextshop-labs/storefront-backend/pkg/enums"
	pkgerrors "github.com/nextshop-labs/storefront-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type userLoader interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type productLoader interface {
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// CreateInput is the payload for posting a review.
type CreateInput struct {
	ProductID uuid.UUID
	Email     string
	Rating    int
	Body      string
}

// UpdateInput overwrites the mutable review fields.
type UpdateInput struct {
	Rating int
	Body   string
}

// Service exposes review CRUD. Every mutation recomputes the product's
// rating aggregate inside the same transaction as the write.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Review, error)
	Update(ctx context.Context, reviewID uuid.UUID, input UpdateInput) (*models.Review, error)
	Delete(ctx context.Context, reviewID uuid.UUID) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error)
}

type service struct {
	repo     ReviewRepository
	tx       txRunner
	users    userLoader
	products productLoader
}

// NewService builds a review service backed by the provided stack.
func NewService(repo ReviewRepository, tx txRunner, users userLoader, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("review repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if users == nil {
		return nil, fmt.Errorf("user loader required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, tx: tx, users: users, products: products}, nil
}

// Create posts a review for a product on behalf of the user identified by
// email. A second review for the same (product, user) pair is rejected.
func (s *service) Create(ctx context.Context, input CreateInput) (*models.Review, error) {
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}
	if !enums.ValidRating(input.Rating) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if strings.TrimSpace(input.Body) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review text is required")
	}

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	if _, err := s.products.FindProductByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	review := &models.Review{
		ProductID: input.ProductID,
		UserID:    user.ID,
		Rating:    input.Rating,
		Body:      input.Body,
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.Create(ctx, review); err != nil {
			return err
		}
		return recomputeRating(ctx, txRepo, input.ProductID)
	}); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "you have already reviewed this product")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create review")
	}

	return review, nil
}

// Update overwrites the rating and body of an existing review.
func (s *service) Update(ctx context.Context, reviewID uuid.UUID, input UpdateInput) (*models.Review, error) {
	if reviewID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review id is required")
	}
	if !enums.ValidRating(input.Rating) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if strings.TrimSpace(input.Body) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review text is required")
	}

	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load review")
	}

	review.Rating = input.Rating
	review.Body = input.Body

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.Save(ctx, review); err != nil {
			return err
		}
		return recomputeRating(ctx, txRepo, review.ProductID)
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update review")
	}

	return review, nil
}

// Delete removes a review.
func (s *service) Delete(ctx context.Context, reviewID uuid.UUID) error {
	if reviewID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "review id is required")
	}

	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load review")
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.Delete(ctx, review.ID); err != nil {
			return err
		}
		return recomputeRating(ctx, txRepo, review.ProductID)
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete review")
	}

	return nil
}

// ListByProduct returns a product's reviews, newest first.
func (s *service) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	rows, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list reviews")
	}
	return rows, nil
}

func recomputeRating(ctx context.Context, repo ReviewRepository, productID uuid.UUID) error {
	average, total, err := repo.AggregateForProduct(ctx, productID)
	if err != nil {
		return err
	}
	return repo.UpsertRating(ctx, productID, average, total)
}
