package controllers

import (
	"net/http"

	"github.com/nextshop-labs/storefront-backend/api/responses"
	"github.com/nextshop-labs/storefront-backend/api/validators"
	"github.com/nextshop-labs/storefront-backend/internal/checkout"
	pkgerrors "github.com/nextshop-labs/storefront-backend/pkg/errors"
	"github.com/nextshop-labs/storefront-backend/pkg/logger"
)

type checkoutSessionPayload struct {
	CartCode string `json:"cart_code" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// CheckoutSession starts a hosted checkout for the cart and returns the
// session handle the client redirects to.
func CheckoutSession(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutSessionPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			ctx = logg.WithCartCode(ctx, payload.CartCode)
		}

		session, err := svc.CreateSession(ctx, checkout.SessionInput{
			CartCode: payload.CartCode,
			Email:    payload.Email,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			ctx = logg.WithStripeSession(ctx, session.SessionID)
			logg.Info(ctx, "checkout.session.created")
		}
		responses.WriteSuccess(w, session)
	}
}
