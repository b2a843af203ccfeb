package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

type stubCategoryService struct {
	createFn func(ctx context.Context, name string) (*domain.Category, error)
	listFn   func(ctx context.Context) ([]*domain.Category, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubCategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	return s.createFn(ctx, name)
}

func (s *stubCategoryService) Update(context.Context, string, string) (*domain.Category, error) {
	return nil, errors.New("not used")
}

func (s *stubCategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.listFn(ctx)
}

func (s *stubCategoryService) GetBySlug(context.Context, string) (*domain.Category, error) {
	return nil, domain.ErrCategoryNotFound
}

func (s *stubCategoryService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func TestCategoryHandler_Create(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"created", nil, http.StatusCreated},
		{"already exists", domain.ErrCategoryExists, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			stub := &stubCategoryService{
				createFn: func(_ context.Context, name string) (*domain.Category, error) {
					return &domain.Category{ID: "c1", Name: name, Slug: "books"}, tc.err
				},
			}
			h := NewCategoryHandler(stub, zerolog.Nop())

			c, rec := jsonContext(e, http.MethodPost, "/api/v1/category/create-category", `{"name":"Books"}`)
			if err := h.Create(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}

			var resp categoryEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if !resp.Success || resp.Category.Slug != "books" {
				t.Fatalf("unexpected body: %+v", resp)
			}
		})
	}
}

func TestCategoryHandler_NameRequired(t *testing.T) {
	e := newTestEcho()
	h := NewCategoryHandler(&stubCategoryService{
		createFn: func(context.Context, string) (*domain.Category, error) {
			return nil, domain.ErrInvalidCategory
		},
	}, zerolog.Nop())

	tests := []struct {
		name   string
		method string
		body   string
		call   func(c echo.Context) error
	}{
		{"create without name", http.MethodPost, `{}`, h.Create},
		{"create with blank name", http.MethodPost, `{"name":"   "}`, h.Create},
		{"update without name", http.MethodPut, `{}`, h.Update},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := jsonContext(e, tt.method, "/api/v1/category", tt.body)
			if err := tt.call(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Success || resp.Message != "Name is required" {
				t.Fatalf("unexpected body: %+v", resp)
			}
		})
	}
}

func TestCategoryHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubCategoryService{
		listFn: func(context.Context) ([]*domain.Category, error) {
			return []*domain.Category{{ID: "c1", Name: "Books", Slug: "books"}}, nil
		},
	}
	h := NewCategoryHandler(stub, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/category/get-category", nil), rec)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp categoryListEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Category) != 1 || resp.Category[0].ID != "c1" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestCategoryHandler_Delete_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubCategoryService{
		deleteFn: func(context.Context, string) error { return domain.ErrCategoryNotFound },
	}
	h := NewCategoryHandler(stub, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("c9")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

type stubProductService struct {
	ports.ProductService
	filterFn func(ctx context.Context, categoryIDs []string, priceRange []float64) ([]*domain.Product, error)
	searchFn func(ctx context.Context, keyword string) ([]*domain.Product, error)
	pageFn   func(ctx context.Context, page int) ([]*domain.Product, error)
}

func (s *stubProductService) Filter(ctx context.Context, categoryIDs []string, priceRange []float64) ([]*domain.Product, error) {
	return s.filterFn(ctx, categoryIDs, priceRange)
}

func (s *stubProductService) Search(ctx context.Context, keyword string) ([]*domain.Product, error) {
	return s.searchFn(ctx, keyword)
}

func (s *stubProductService) Page(ctx context.Context, page int) ([]*domain.Product, error) {
	return s.pageFn(ctx, page)
}

func TestProductHandler_Filter(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		filterFn: func(_ context.Context, ids []string, price []float64) ([]*domain.Product, error) {
			if len(ids) != 1 || ids[0] != "c1" || len(price) != 2 || price[1] != 99 {
				t.Fatalf("unexpected filter: %v %v", ids, price)
			}
			return []*domain.Product{{ID: "p1", CategoryID: "c1"}}, nil
		},
	}
	h := NewProductHandler(stub, zerolog.Nop())

	c, rec := jsonContext(e, http.MethodPost, "/api/v1/product/product-filters", `{"checked":["c1"],"radio":[0,99]}`)
	if err := h.Filter(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	products := resp["products"].([]any)
	if len(products) != 1 || products[0].(map[string]any)["category"] != "c1" {
		t.Fatalf("unexpected body: %v", resp)
	}
}

func TestProductHandler_SearchIsBareArray(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		searchFn: func(_ context.Context, keyword string) ([]*domain.Product, error) {
			if keyword != "mug" {
				t.Fatalf("unexpected keyword %q", keyword)
			}
			return []*domain.Product{{ID: "p1", Category: &domain.Category{ID: "c1", Name: "Kitchen", Slug: "kitchen"}}}, nil
		},
	}
	h := NewProductHandler(stub, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("keyword")
	c.SetParamValues("mug")
	if err := h.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected array: %v", err)
	}
	if resp[0]["category"].(map[string]any)["slug"] != "kitchen" {
		t.Fatalf("category not resolved: %v", resp)
	}
}

func TestProductHandler_PageDefaultsToFirst(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		pageFn: func(_ context.Context, page int) ([]*domain.Product, error) {
			if page != 1 {
				t.Fatalf("expected page 1, got %d", page)
			}
			return nil, nil
		},
	}
	h := NewProductHandler(stub, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("page")
	c.SetParamValues("abc")
	if err := h.Page(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
