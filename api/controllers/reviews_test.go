package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextshop-labs/storefront-backend/internal/reviews"
	"github.com/nextshop-labs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/nextshop-labs/storefront-backend/pkg/errors"
)

type stubReviewService struct {
	review *models.Review
	list   []models.Review
	err    error
}

func (s *stubReviewService) Create(context.Context, reviews.CreateInput) (*models.Review, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.review, nil
}

func (s *stubReviewService) Update(context.Context, uuid.UUID, reviews.UpdateInput) (*models.Review, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.review, nil
}

func (s *stubReviewService) Delete(context.Context, uuid.UUID) error {
	return s.err
}

func (s *stubReviewService) ListByProduct(context.Context, uuid.UUID) ([]models.Review, error) {
	return s.list, s.err
}

func TestReviewCreateSuccess(t *testing.T) {
	svc := &stubReviewService{review: &models.Review{ID: uuid.New(), Rating: 5, Body: "great"}}

	req := jsonRequest(t, http.MethodPost, "/api/v1/reviews", map[string]any{
		"product_id": uuid.NewString(),
		"email":      "alice@example.com",
		"rating":     5,
		"review":     "great",
	})
	rec := httptest.NewRecorder()
	ReviewCreate(svc, testLogger()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestReviewCreateDuplicateIsBadRequest(t *testing.T) {
	svc := &stubReviewService{err: pkgerrors.New(pkgerrors.CodeConflict, "you have already reviewed this product")}

	req := jsonRequest(t, http.MethodPost, "/api/v1/reviews", map[string]any{
		"product_id": uuid.NewString(),
		"email":      "alice@example.com",
		"rating":     4,
		"review":     "again",
	})
	rec := httptest.NewRecorder()
	ReviewCreate(svc, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	payload := decodeEnvelope(t, rec)
	errBody, ok := payload["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "you have already reviewed this product", errBody["message"])
}

func TestReviewCreateRejectsOutOfRangeRating(t *testing.T) {
	req := jsonRequest(t, http.MethodPost, "/api/v1/reviews", map[string]any{
		"product_id": uuid.NewString(),
		"email":      "alice@example.com",
		"rating":     6,
		"review":     "too good",
	})
	rec := httptest.NewRecorder()
	ReviewCreate(&stubReviewService{}, testLogger()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewUpdateSuccess(t *testing.T) {
	svc := &stubReviewService{review: &models.Review{ID: uuid.New(), Rating: 3, Body: "revised"}}

	reviewID := uuid.NewString()
	req := jsonRequest(t, http.MethodPut, "/api/v1/reviews/"+reviewID, map[string]any{
		"rating": 3,
		"review": "revised",
	})
	req = withURLParam(req, "reviewID", reviewID)
	rec := httptest.NewRecorder()
	ReviewUpdate(svc, testLogger()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReviewDeleteSuccess(t *testing.T) {
	reviewID := uuid.NewString()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/reviews/"+reviewID, nil)
	req = withURLParam(req, "reviewID", reviewID)
	rec := httptest.NewRecorder()
	ReviewDelete(&stubReviewService{}, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeEnvelope(t, rec)
	assert.Equal(t, "review deleted", payload["message"])
}
