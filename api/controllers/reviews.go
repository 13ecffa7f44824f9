package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/nextshop-labs/storefront-backend/api/responses"
	"github.com/nextshop-labs/storefront-backend/api/validators"
	"github.com/nextshop-labs/storefront-backend/internal/reviews"
	pkgerrors "github.com/nextshop-labs/storefront-backend/pkg/errors"
	"github.com/nextshop-labs/storefront-backend/pkg/logger"
)

type createReviewPayload struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Email     string `json:"email" validate:"required,email"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Review    string `json:"review" validate:"required"`
}

type updateReviewPayload struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Review string `json:"review" validate:"required"`
}

// ReviewCreate posts a review on behalf of the user named by email.
func ReviewCreate(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "review service unavailable"))
			return
		}

		var payload createReviewPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		productID, err := uuid.Parse(payload.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		review, err := svc.Create(ctx, reviews.CreateInput{
			ProductID: productID,
			Email:     payload.Email,
			Rating:    payload.Rating,
			Body:      payload.Review,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, review)
	}
}

// ReviewUpdate overwrites the rating and text of an existing review.
func ReviewUpdate(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "review service unavailable"))
			return
		}

		reviewID, err := validators.ParseUUIDParam(r, "reviewID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateReviewPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		review, err := svc.Update(ctx, reviewID, reviews.UpdateInput{
			Rating: payload.Rating,
			Body:   payload.Review,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, review)
	}
}

// ReviewDelete removes a review.
func ReviewDelete(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "review service unavailable"))
			return
		}

		reviewID, err := validators.ParseUUIDParam(r, "reviewID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, reviewID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "review deleted")
	}
}
