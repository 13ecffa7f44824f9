package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v84"

	"github.com/nextshop-labs/storefront-backend/internal/cart"
	"github.com/nextshop-labs/storefront-backend/pkg/config"
	"github.com/nextshop-labs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/nextshop-labs/storefront-backend/pkg/errors"
)

// The composition root wires the cart service in as the loader.
var _ cartLoader = cart.Service(nil)

type stubSessionCreator struct {
	params  *stripe.CheckoutSessionCreateParams
	session *stripe.CheckoutSession
	err     error
}

func (s *stubSessionCreator) CreateCheckoutSession(_ context.Context, params *stripe.CheckoutSessionCreateParams) (*stripe.CheckoutSession, error) {
	s.params = params
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

type stubCartLoader struct {
	cartDTO *cart.CartDTO
	err     error
}

func (s *stubCartLoader) CartByCode(context.Context, string) (*cart.CartDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cartDTO, nil
}

func testCheckoutConfig() config.CheckoutConfig {
	return config.CheckoutConfig{Currency: "usd", ServiceFeeCents: 500, ServiceFeeLabel: "VAT Fee"}
}

func testStripeConfig() config.StripeConfig {
	return config.StripeConfig{
		SuccessURL: "https://shop.example.com/success",
		CancelURL:  "https://shop.example.com/cancel",
	}
}

func testCart() *cart.CartDTO {
	mouse := models.Product{ID: uuid.New(), Name: "Wireless Mouse", Price: decimal.RequireFromString("19.99")}
	return &cart.CartDTO{
		ID:       uuid.New(),
		CartCode: "cart-77",
		Items: []cart.ItemDTO{
			{ID: uuid.New(), Product: mouse, Quantity: 2, Subtotal: decimal.RequireFromString("39.98")},
		},
		Total: decimal.RequireFromString("39.98"),
	}
}

func TestCreateSessionBuildsLineItems(t *testing.T) {
	creator := &stubSessionCreator{session: &stripe.CheckoutSession{ID: "cs_test_123", URL: "https://checkout.stripe.com/pay/cs_test_123"}}
	svc, err := NewService(creator, &stubCartLoader{cartDTO: testCart()}, testCheckoutConfig(), testStripeConfig())
	require.NoError(t, err)

	dto, err := svc.CreateSession(context.Background(), SessionInput{CartCode: "cart-77", Email: "buyer@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", dto.SessionID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_123", dto.URL)

	params := creator.params
	require.NotNil(t, params)
	require.Len(t, params.LineItems, 2)

	product := params.LineItems[0]
	assert.Equal(t, "Wireless Mouse", *product.PriceData.ProductData.Name)
	assert.EqualValues(t, 1999, *product.PriceData.UnitAmount)
	assert.EqualValues(t, 2, *product.Quantity)

	fee := params.LineItems[1]
	assert.Equal(t, "VAT Fee", *fee.PriceData.ProductData.Name)
	assert.EqualValues(t, 500, *fee.PriceData.UnitAmount)
	assert.EqualValues(t, 1, *fee.Quantity)

	assert.Equal(t, "cart-77", params.Metadata[MetadataCartCodeKey])
	assert.Equal(t, string(stripe.CheckoutSessionModePayment), *params.Mode)
	assert.Equal(t, "buyer@example.com", *params.CustomerEmail)
	assert.Equal(t, "https://shop.example.com/success", *params.SuccessURL)
	assert.Equal(t, "https://shop.example.com/cancel", *params.CancelURL)
}

func TestCreateSessionProviderFailure(t *testing.T) {
	creator := &stubSessionCreator{err: errors.New("stripe is down")}
	svc, err := NewService(creator, &stubCartLoader{cartDTO: testCart()}, testCheckoutConfig(), testStripeConfig())
	require.NoError(t, err)

	_, err = svc.CreateSession(context.Background(), SessionInput{CartCode: "cart-77", Email: "buyer@example.com"})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeDependency, appErr.Code())
}

func TestCreateSessionMissingCartPropagates(t *testing.T) {
	loader := &stubCartLoader{err: pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")}
	svc, err := NewService(&stubSessionCreator{}, loader, testCheckoutConfig(), testStripeConfig())
	require.NoError(t, err)

	_, err = svc.CreateSession(context.Background(), SessionInput{CartCode: "cart-gone", Email: "buyer@example.com"})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestCreateSessionValidatesInput(t *testing.T) {
	svc, err := NewService(&stubSessionCreator{}, &stubCartLoader{cartDTO: testCart()}, testCheckoutConfig(), testStripeConfig())
	require.NoError(t, err)

	_, err = svc.CreateSession(context.Background(), SessionInput{CartCode: " ", Email: "a@b.co"})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())

	_, err = svc.CreateSession(context.Background(), SessionInput{CartCode: "cart-77", Email: ""})
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestToMinorUnitsTruncates(t *testing.T) {
	assert.EqualValues(t, 1999, toMinorUnits(decimal.RequireFromString("19.99")))
	assert.EqualValues(t, 1099, toMinorUnits(decimal.RequireFromString("10.999")))
	assert.EqualValues(t, 0, toMinorUnits(decimal.Zero))
}
