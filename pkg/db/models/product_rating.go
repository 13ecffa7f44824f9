package models

import "github.com/google/uuid"

// ProductRating is the denormalized review aggregate for one product,
// recomputed inside the same transaction as every review mutation.
type ProductRating struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	ProductID     uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:product_ratings_product_key" json:"product_id"`
	AverageRating float64   `gorm:"column:average_rating;not null;default:0" json:"average_rating"`
	TotalReviews  int       `gorm:"column:total_reviews;not null;default:0" json:"total_reviews"`
}
