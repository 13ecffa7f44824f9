package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/nextshop-labs/storefront-backend/api/responses"
	"github.com/nextshop-labs/storefront-backend/api/validators"
	"github.com/nextshop-labs/storefront-backend/internal/wishlist"
	pkgerrors "github.com/nextshop-labs/storefront-backend/pkg/errors"
	"github.com/nextshop-labs/storefront-backend/pkg/logger"
)

type toggleWishlistPayload struct {
	Email     string `json:"email" validate:"required,email"`
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// WishlistToggle flips wishlist membership for (user, product). Removal
// answers 200 with a message, addition answers 201 with the new entry.
func WishlistToggle(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		var payload toggleWishlistPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		productID, err := uuid.Parse(payload.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		result, err := svc.Toggle(ctx, payload.Email, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if !result.Added {
			responses.WriteMessage(w, http.StatusOK, "wishlist item removed")
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result.Item)
	}
}
