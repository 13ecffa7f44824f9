package fulfillment

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/stripe/stripe-go/v84"
	"gorm.io/gorm"

	"github.com/nextshop-labs/storefront-backend/internal/cart"
	"github.com/nextshop-labs/storefront-backend/internal/checkout"
	"github.com/nextshop-labs/storefront-backend/internal/orders"
	"github.com/nextshop-labs/storefront-backend/pkg/db/models"
	"github.com/nextshop-labs/storefront-backend/pkg/enums"
	pkgerrors "github.com/nextshop-labs/storefront-backend/pkg/errors"
)

const defaultCurrency = "usd"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams collects the fulfillment service dependencies.
type ServiceParams struct {
	CartRepo          cart.CartRepository
	OrderRepo         orders.Repository
	TransactionRunner txRunner
}

// Service converts completed checkout sessions into orders.
type Service struct {
	cartRepo  cart.CartRepository
	orderRepo orders.Repository
	txRunner  txRunner
}

// NewService builds a fulfillment service from the provided stack.
func NewService(params ServiceParams) (*Service, error) {
	if params.CartRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart repo required")
	}
	if params.OrderRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "order repo required")
	}
	if params.TransactionRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	return &Service{
		cartRepo:  params.CartRepo,
		orderRepo: params.OrderRepo,
		txRunner:  params.TransactionRunner,
	}, nil
}

// HandleEvent fulfills the session carried by a payment-success event. Other
// event types are acknowledged without side effects.
func (s *Service) HandleEvent(ctx context.Context, event *stripe.Event) error {
	if event == nil || event.Data == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "stripe event data required")
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted,
		stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode checkout session event")
		}
		return s.fulfillSession(ctx, &session)
	default:
		return nil
	}
}

// fulfillSession creates the order, copies the cart lines, and deletes the
// cart in one transaction, so a crash never leaves a half-fulfilled state.
func (s *Service) fulfillSession(ctx context.Context, session *stripe.CheckoutSession) error {
	if session == nil || session.ID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "checkout session is required")
	}

	cartCode := session.Metadata[checkout.MetadataCartCodeKey]
	if cartCode == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart_code missing from session metadata")
	}

	return s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		record, err := cartRepo.FindByCode(ctx, cartCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// A redelivered event after the cart was consumed: if the
				// order is already there, there is nothing left to do.
				if _, findErr := orderRepo.FindBySessionID(ctx, session.ID); findErr == nil {
					return nil
				}
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart not found for session")
			}
			return err
		}

		order := &models.Order{
			StripeSessionID:  session.ID,
			AmountTotalCents: session.AmountTotal,
			Currency:         currencyOf(session),
			CustomerEmail:    emailOf(session),
			Status:           enums.OrderStatusPaid,
		}
		if _, err := orderRepo.CreateOrder(ctx, order); err != nil {
			return err
		}

		items := make([]models.OrderItem, 0, len(record.Items))
		for _, line := range record.Items {
			items = append(items, models.OrderItem{
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
			})
		}
		if err := orderRepo.CreateOrderItems(ctx, items); err != nil {
			return err
		}

		return cartRepo.DeleteByCode(ctx, cartCode)
	})
}

func currencyOf(session *stripe.CheckoutSession) string {
	if session.Currency == "" {
		return defaultCurrency
	}
	return string(session.Currency)
}

func emailOf(session *stripe.CheckoutSession) string {
	if session.CustomerEmail != "" {
		return session.CustomerEmail
	}
	if session.CustomerDetails != nil {
		return session.CustomerDetails.Email
	}
	return ""
}
