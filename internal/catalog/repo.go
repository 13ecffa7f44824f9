package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nextshop-labs/storefront-backend/pkg/db/models"
	"github.com/nextshop-labs/storefront-backend/pkg/slug"
)

// Repository encapsulates catalog persistence for products and categories.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFeatured returns featured products, newest first, with their rating
// aggregates preloaded.
func (r *Repository) ListFeatured(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Preload("Rating").
		Where("featured = ?", true).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindProductBySlug loads one product by its unique slug.
func (r *Repository) FindProductBySlug(ctx context.Context, productSlug string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Rating").
		Where("slug = ?", productSlug).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindProductByID loads one product by primary key.
func (r *Repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListCategories returns every category ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindCategoryBySlug loads one category with its products ordered by name.
func (r *Repository) FindCategoryBySlug(ctx context.Context, categorySlug string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("products.name ASC")
		}).
		Where("slug = ?", categorySlug).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Search returns products whose name, description, or category name contains
// the query, case-insensitively. LOWER + LIKE keeps the predicate portable
// between postgres and the sqlite used in tests.
func (r *Repository) Search(ctx context.Context, query string) ([]models.Product, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var rows []models.Product
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where(
			"LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ? OR LOWER(categories.name) LIKE ?",
			pattern, pattern, pattern,
		).
		Preload("Rating").
		Order("products.name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SaveProduct inserts or updates a product, assigning a unique slug from the
// name when none is set.
func (r *Repository) SaveProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.Slug == "" {
		assigned, err := r.nextFreeSlug(ctx, &models.Product{}, product.Name)
		if err != nil {
			return nil, err
		}
		product.Slug = assigned
	}
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// SaveCategory inserts or updates a category, assigning a unique slug from
// the name when none is set.
func (r *Repository) SaveCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	if category.Slug == "" {
		assigned, err := r.nextFreeSlug(ctx, &models.Category{}, category.Name)
		if err != nil {
			return nil, err
		}
		category.Slug = assigned
	}
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// nextFreeSlug probes base, base-1, base-2... until a slug is unused for the
// given model's table.
func (r *Repository) nextFreeSlug(ctx context.Context, model any, name string) (string, error) {
	base := slug.Make(name)
	candidate := base
	for counter := 1; ; counter++ {
		var count int64
		err := r.db.WithContext(ctx).
			Model(model).
			Where("slug = ?", candidate).
			Count(&count).Error
		if err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}
