package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/kidstore/app/models"
	"github.com/shashiranjanraj/kidstore/app/services"
	"github.com/shashiranjanraj/kidstore/pkg/event"
)

type stubStore struct {
	products []models.Product
}

func (s *stubStore) AddProduct(_ context.Context, p models.Product) (string, error) {
	p.ID = "65f000000000000000000099"
	s.products = append(s.products, p)
	return p.ID, nil
}

func (s *stubStore) GetProducts(context.Context) ([]models.Product, error) {
	return s.products, nil
}

func (s *stubStore) GetProductByID(_ context.Context, id string) (*models.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (s *stubStore) UpdateProduct(context.Context, string, map[string]any) error { return nil }
func (s *stubStore) DeleteProduct(context.Context, string) error                 { return nil }

func newTestController(products ...models.Product) *ProductController {
	store := &stubStore{products: products}
	return NewProductController(services.NewProductService(store))
}

// withURLParam injects a chi route parameter into the request context.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestList_FiltersAndMeta(t *testing.T) {
	c := newTestController(
		models.Product{ID: "1", Name: "Giày thể thao", Category: "shoes", Unit: "đôi"},
		models.Product{ID: "2", Name: "Áo thun", Category: "clothing", Unit: "cái"},
	)

	req := httptest.NewRequest(http.MethodGet, "/api/products?category=shoes", nil)
	rec := httptest.NewRecorder()
	c.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data := body["data"].(map[string]any)
	meta := data["meta"].(map[string]any)
	assert.Equal(t, float64(2), meta["total"])
	assert.Equal(t, float64(1), meta["visible"])
}

func TestShow_MissingIsPlain404(t *testing.T) {
	c := newTestController()

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/products/65f0000000000000000000aa", nil),
		"id", "65f0000000000000000000aa")
	rec := httptest.NewRecorder()
	c.Show(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreate_InvalidFormIs422(t *testing.T) {
	event.Flush()
	t.Cleanup(event.Flush)
	c := newTestController()

	payload := `{"name":"Giày trẻ em","category":"shoes","unit":"đôi",
		"importPrice":"100","wholesalePrice":"80","retailPrice":"120"}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	c.Create(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["message"], "Wholesale price should not be less than import price")
}

func TestCreate_ValidFormIs201(t *testing.T) {
	event.Flush()
	t.Cleanup(event.Flush)
	c := newTestController()

	payload := `{"name":"Giày trẻ em","category":"shoes","unit":"đôi",
		"importPrice":100000,"wholesalePrice":120000,"retailPrice":150000}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	c.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["id"])
	assert.NotEmpty(t, data["barcode"], "blank barcode is generated server side")
}

func TestSuggestedPrices(t *testing.T) {
	c := newTestController()

	req := httptest.NewRequest(http.MethodGet, "/api/products/suggested-prices?importPrice=100000", nil)
	rec := httptest.NewRecorder()
	c.SuggestedPrices(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(120000), data["wholesalePrice"])
	assert.Equal(t, float64(140000), data["retailPrice"])

	rec = httptest.NewRecorder()
	c.SuggestedPrices(rec, httptest.NewRequest(http.MethodGet, "/api/products/suggested-prices", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExport_WritesCSV(t *testing.T) {
	c := newTestController(
		models.Product{ID: "1", Name: "Giày thể thao", Category: "shoes", Unit: "đôi", RetailPrice: 250000},
	)

	req := httptest.NewRequest(http.MethodGet, "/api/products/export", nil)
	rec := httptest.NewRecorder()
	c.Export(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Body.String(), "Giày thể thao")
}
