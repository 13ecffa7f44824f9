package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v84"

	"github.com/nextshop-labs/storefront-backend/internal/cart"
	"github.com/nextshop-labs/storefront-backend/pkg/config"
	pkgerrors "github.com/nextshop-labs/storefront-backend/pkg/errors"
)

// MetadataCartCodeKey is the session metadata key that carries the cart code
// from session creation to the fulfillment webhook.
const MetadataCartCodeKey = "cart_code"

var minorUnitsPerMajor = decimal.NewFromInt(100)

type sessionCreator interface {
	CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionCreateParams) (*stripe.CheckoutSession, error)
}

type cartLoader interface {
	CartByCode(ctx context.Context, cartCode string) (*cart.CartDTO, error)
}

// SessionInput is the payload for starting a hosted checkout.
type SessionInput struct {
	CartCode string
	Email    string
}

// SessionDTO is the handle the client uses to redirect into Stripe checkout.
type SessionDTO struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// Service turns a cart into a Stripe checkout session.
type Service interface {
	CreateSession(ctx context.Context, input SessionInput) (*SessionDTO, error)
}

type service struct {
	sessions   sessionCreator
	carts      cartLoader
	checkout   config.CheckoutConfig
	successURL string
	cancelURL  string
}

// NewService builds a checkout service backed by the provided stack.
func NewService(sessions sessionCreator, carts cartLoader, checkoutCfg config.CheckoutConfig, stripeCfg config.StripeConfig) (Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("stripe session creator required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart loader required")
	}
	return &service{
		sessions:   sessions,
		carts:      carts,
		checkout:   checkoutCfg,
		successURL: stripeCfg.SuccessURL,
		cancelURL:  stripeCfg.CancelURL,
	}, nil
}

// CreateSession builds one line item per cart line plus the flat service fee
// and submits the session to Stripe. The cart code travels in the session
// metadata so the webhook can find the cart again.
func (s *service) CreateSession(ctx context.Context, input SessionInput) (*SessionDTO, error) {
	code := strings.TrimSpace(input.CartCode)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart_code is required")
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	cartDTO, err := s.carts.CartByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.CreateCheckoutSession(ctx, s.buildParams(cartDTO, email))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create checkout session")
	}

	return &SessionDTO{SessionID: session.ID, URL: session.URL}, nil
}

func (s *service) buildParams(cartDTO *cart.CartDTO, email string) *stripe.CheckoutSessionCreateParams {
	lineItems := make([]*stripe.CheckoutSessionCreateLineItemParams, 0, len(cartDTO.Items)+1)
	for _, item := range cartDTO.Items {
		lineItems = append(lineItems, &stripe.CheckoutSessionCreateLineItemParams{
			PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
				Currency: stripe.String(s.checkout.Currency),
				ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Product.Name),
				},
				UnitAmount: stripe.Int64(toMinorUnits(item.Product.Price)),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	lineItems = append(lineItems, &stripe.CheckoutSessionCreateLineItemParams{
		PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
			Currency: stripe.String(s.checkout.Currency),
			ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
				Name: stripe.String(s.checkout.ServiceFeeLabel),
			},
			UnitAmount: stripe.Int64(s.checkout.ServiceFeeCents),
		},
		Quantity: stripe.Int64(1),
	})

	return &stripe.CheckoutSessionCreateParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		CustomerEmail:      stripe.String(email),
		SuccessURL:         stripe.String(s.successURL),
		CancelURL:          stripe.String(s.cancelURL),
		LineItems:          lineItems,
		Metadata:           map[string]string{MetadataCartCodeKey: cartDTO.CartCode},
	}
}

// toMinorUnits converts a major-unit decimal price to integer minor units,
// truncating any sub-cent remainder.
func toMinorUnits(price decimal.Decimal) int64 {
	return price.Mul(minorUnitsPerMajor).IntPart()
}
