package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/giftlist-backend/internal/products"
	pkgerrors "github.com/angelmondragon/giftlist-backend/pkg/errors"
	"github.com/angelmondragon/giftlist-backend/pkg/pagination"
)

func TestProductListDefaultsPaging(t *testing.T) {
	svc := &stubProductService{page: pagination.NewPage(sampleViews(), pagination.Params{Page: 0, Size: pagination.DefaultLimit}, 2)}
	rec := httptest.NewRecorder()

	ProductList(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pagination.Params{Page: 0, Size: pagination.DefaultLimit}, svc.params)
}

func TestProductDetail(t *testing.T) {
	view := sampleViews()[0]
	svc := &stubProductService{product: &view}
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/products/1", nil), "productId", "1")
	rec := httptest.NewRecorder()

	ProductDetail(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got products.ProductView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &got))
	assert.Equal(t, "Kettle", got.Name)
	assert.True(t, decimal.RequireFromString("39.90").Equal(got.Price))
}

func TestProductDetailNotFound(t *testing.T) {
	svc := &stubProductService{err: pkgerrors.NotFound("product not found")}
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/products/99", nil), "productId", "99")
	rec := httptest.NewRecorder()

	ProductDetail(svc, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductCreate(t *testing.T) {
	view := products.ProductView{ID: 5, Name: "Mug", Price: decimal.RequireFromString("8.50")}
	svc := &stubProductService{product: &view}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"name":"Mug","price":"8.50"}`))
	rec := httptest.NewRecorder()

	ProductCreate(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, svc.created, 1)
	assert.Equal(t, "Mug", svc.created[0].Name)
	assert.True(t, decimal.RequireFromString("8.5").Equal(svc.created[0].Price))
}

func TestProductCreateValidation(t *testing.T) {
	svc := &stubProductService{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"price":"1.00","image_url":"not a url"}`))
	rec := httptest.NewRecorder()

	ProductCreate(svc, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.created)
}
