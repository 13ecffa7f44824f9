package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nextshop-labs/storefront-backend/pkg/db/models"
)

// ItemDTO is one cart line with its priced subtotal.
type ItemDTO struct {
	ID       uuid.UUID       `json:"id"`
	Product  models.Product  `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartDTO is the full cart payload returned by the cart endpoints.
type CartDTO struct {
	ID       uuid.UUID       `json:"id"`
	CartCode string          `json:"cart_code"`
	Items    []ItemDTO       `json:"items"`
	Total    decimal.Decimal `json:"total"`
}

// buildCartDTO prices every line (unit price times quantity) and sums the
// cart total. An empty cart totals zero.
func buildCartDTO(cart *models.Cart) *CartDTO {
	dto := &CartDTO{
		ID:       cart.ID,
		CartCode: cart.CartCode,
		Items:    make([]ItemDTO, 0, len(cart.Items)),
		Total:    decimal.Zero,
	}
	for _, item := range cart.Items {
		subtotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		dto.Items = append(dto.Items, ItemDTO{
			ID:       item.ID,
			Product:  item.Product,
			Quantity: item.Quantity,
			Subtotal: subtotal,
		})
		dto.Total = dto.Total.Add(subtotal)
	}
	return dto
}

// buildItemDTO prices a single cart line.
func buildItemDTO(item *models.CartItem) *ItemDTO {
	return &ItemDTO{
		ID:       item.ID,
		Product:  item.Product,
		Quantity: item.Quantity,
		Subtotal: item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
	}
}
