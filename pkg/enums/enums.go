package enums

// OrderStatus tracks an order through the payment lifecycle.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusFailed  OrderStatus = "failed"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusFailed:
		return true
	}
	return false
}

// Review ratings are a 1-5 scale with fixed display labels.
const (
	RatingMin = 1
	RatingMax = 5
)

var ratingLabels = map[int]string{
	1: "Poor",
	2: "Fair",
	3: "Good",
	4: "Very Good",
	5: "Excellent",
}

// RatingLabel returns the display label for a rating, or "" when the
// rating falls outside the 1-5 scale.
func RatingLabel(rating int) string {
	return ratingLabels[rating]
}

// ValidRating reports whether the rating sits inside the 1-5 scale.
func ValidRating(rating int) bool {
	return rating >= RatingMin && rating <= RatingMax
}
