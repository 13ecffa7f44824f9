package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextshop-labs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/nextshop-labs/storefront-backend/pkg/errors"
)

type stubCatalogService struct {
	products   []models.Product
	product    *models.Product
	categories []models.Category
	category   *models.Category
	err        error
}

func (s *stubCatalogService) FeaturedProducts(context.Context) ([]models.Product, error) {
	return s.products, s.err
}

func (s *stubCatalogService) ProductBySlug(context.Context, string) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubCatalogService) Categories(context.Context) ([]models.Category, error) {
	return s.categories, s.err
}

func (s *stubCatalogService) CategoryBySlug(context.Context, string) (*models.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.category, nil
}

func (s *stubCatalogService) Search(context.Context, string) ([]models.Product, error) {
	return s.products, s.err
}

func TestProductsListSuccess(t *testing.T) {
	svc := &stubCatalogService{products: []models.Product{{
		ID:    uuid.New(),
		Name:  "Desk Lamp",
		Slug:  "desk-lamp",
		Price: decimal.RequireFromString("35.00"),
	}}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	ProductsList(svc, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeEnvelope(t, rec)
	data, ok := payload["data"].([]any)
	require.True(t, ok)
	assert.Len(t, data, 1)
}

func TestProductsSearchRequiresQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/search", nil)
	rec := httptest.NewRecorder()
	ProductsSearch(&stubCatalogService{}, testLogger()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductsSearchSuccess(t *testing.T) {
	svc := &stubCatalogService{products: []models.Product{}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/search?query=lamp", nil)
	rec := httptest.NewRecorder()
	ProductsSearch(svc, testLogger()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProductDetailNotFound(t *testing.T) {
	svc := &stubCatalogService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/products/missing", nil), "slug", "missing")
	rec := httptest.NewRecorder()
	ProductDetail(svc, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	payload := decodeEnvelope(t, rec)
	errBody, ok := payload["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, string(pkgerrors.CodeNotFound), errBody["code"])
}

func TestCategoryDetailSuccess(t *testing.T) {
	svc := &stubCatalogService{category: &models.Category{
		ID:   uuid.New(),
		Name: "Accessories",
		Slug: "accessories",
	}}

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/categories/accessories", nil), "slug", "accessories")
	rec := httptest.NewRecorder()
	CategoryDetail(svc, testLogger()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
