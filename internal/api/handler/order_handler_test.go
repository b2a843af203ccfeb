package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/api/middleware"
	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

type stubOrderService struct {
	listBuyerFn func(ctx context.Context, p domain.Principal) ([]*domain.OrderDetail, error)
	listAllFn   func(ctx context.Context) ([]*domain.OrderDetail, error)
	updateFn    func(ctx context.Context, in ports.UpdateOrderStatusInput) (*domain.Order, error)
}

func (s *stubOrderService) ListBuyerOrders(ctx context.Context, p domain.Principal) ([]*domain.OrderDetail, error) {
	return s.listBuyerFn(ctx, p)
}

func (s *stubOrderService) ListAllOrders(ctx context.Context) ([]*domain.OrderDetail, error) {
	return s.listAllFn(ctx)
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, in ports.UpdateOrderStatusInput) (*domain.Order, error) {
	return s.updateFn(ctx, in)
}

func (s *stubOrderService) PlaceOrder(context.Context, ports.PlaceOrderInput) (*domain.Order, error) {
	return nil, errors.New("not used")
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestOrderHandler_ListOwn(t *testing.T) {
	e := newTestEcho()
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	stub := &stubOrderService{
		listBuyerFn: func(_ context.Context, p domain.Principal) ([]*domain.OrderDetail, error) {
			if p.ID != "u1" {
				t.Fatalf("unexpected principal: %+v", p)
			}
			return []*domain.OrderDetail{{
				ID:        "o1",
				Products:  []domain.Product{{ID: "p1", Name: "Mug", CategoryID: "c1"}},
				Payment:   map[string]any{"success": true},
				Buyer:     &domain.OrderBuyer{ID: "u1", Name: "Ann"},
				Status:    domain.OrderProcessing,
				Version:   2,
				CreatedAt: created,
				UpdatedAt: created,
			}}, nil
		},
	}
	h := NewOrderHandler(stub, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/orders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.PrincipalKey, domain.Principal{ID: "u1"})

	if err := h.ListOwn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected a raw array: %v (%s)", err, rec.Body.String())
	}
	if len(resp) != 1 {
		t.Fatalf("expected one order, got %d", len(resp))
	}
	o := resp[0]
	if o["_id"] != "o1" || o["status"] != "Processing" || o["__v"] != float64(2) {
		t.Fatalf("unexpected order: %v", o)
	}
	buyer := o["buyer"].(map[string]any)
	if buyer["name"] != "Ann" || len(buyer) != 2 {
		t.Fatalf("buyer must only carry _id and name: %v", buyer)
	}
	products := o["products"].([]any)
	if products[0].(map[string]any)["name"] != "Mug" {
		t.Fatalf("products not resolved: %v", products)
	}
}

func TestOrderHandler_ListOwn_EmptyIsArray(t *testing.T) {
	e := newTestEcho()
	stub := &stubOrderService{
		listBuyerFn: func(context.Context, domain.Principal) ([]*domain.OrderDetail, error) {
			return []*domain.OrderDetail{}, nil
		},
	}
	h := NewOrderHandler(stub, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/orders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.PrincipalKey, domain.Principal{ID: "u1"})

	if err := h.ListOwn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected 200 [], got %d %s", rec.Code, rec.Body.String())
	}
}

func TestOrderHandler_ListOwn_NoPrincipal(t *testing.T) {
	e := newTestEcho()
	h := NewOrderHandler(&stubOrderService{}, zerolog.Nop())

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	err := h.ListOwn(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestOrderHandler_ListAll_StorageFailure(t *testing.T) {
	e := newTestEcho()
	stub := &stubOrderService{
		listAllFn: func(context.Context) ([]*domain.OrderDetail, error) {
			return nil, errors.New("connection refused")
		},
	}
	h := NewOrderHandler(stub, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/auth/all-orders", nil), rec)

	if err := h.ListAll(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Success || resp.Message != "Error While Getting Orders" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestOrderHandler_ListAll_KeepsServiceOrder(t *testing.T) {
	e := newTestEcho()
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(24 * time.Hour)
	stub := &stubOrderService{
		listAllFn: func(context.Context) ([]*domain.OrderDetail, error) {
			return []*domain.OrderDetail{
				{ID: "b", CreatedAt: newer},
				{ID: "a", CreatedAt: older},
			}, nil
		},
	}
	h := NewOrderHandler(stub, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/auth/all-orders", nil), rec)
	if err := h.ListAll(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []orderDetailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0].ID != "b" || resp[1].ID != "a" {
		t.Fatalf("unexpected order: %+v", resp)
	}
	if resp[0].Products == nil {
		t.Fatalf("products must encode as an array")
	}
}

func updateStatusContext(e *echo.Echo, orderID, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/auth/order-status/"+orderID, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/auth/order-status/:orderId")
	c.SetParamNames("orderId")
	c.SetParamValues(orderID)
	return c, rec
}

func TestOrderHandler_UpdateStatus_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubOrderService{
		updateFn: func(_ context.Context, in ports.UpdateOrderStatusInput) (*domain.Order, error) {
			if in.OrderID != "o1" || in.Status != "Shipped" || in.ExpectedVersion != nil {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Order{ID: "o1", Products: []string{"p1"}, BuyerID: "u1", Status: domain.OrderShipped, Version: 1}, nil
		},
	}
	h := NewOrderHandler(stub, zerolog.Nop())

	c, rec := updateStatusContext(e, "o1", `{"status":"Shipped"}`)
	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp orderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != "o1" || resp.Status != "Shipped" || resp.Buyer != "u1" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestOrderHandler_UpdateStatus_PassesVersion(t *testing.T) {
	e := newTestEcho()
	stub := &stubOrderService{
		updateFn: func(_ context.Context, in ports.UpdateOrderStatusInput) (*domain.Order, error) {
			if in.ExpectedVersion == nil || *in.ExpectedVersion != 4 {
				t.Fatalf("expected version 4, got %v", in.ExpectedVersion)
			}
			return nil, domain.ErrOrderConflict
		},
	}
	h := NewOrderHandler(stub, zerolog.Nop())

	c, rec := updateStatusContext(e, "o1", `{"status":"cancel","version":4}`)
	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestOrderHandler_UpdateStatus_Failures(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		err     error
		code    int
		message string
	}{
		{"missing status", `{}`, nil, http.StatusBadRequest, "Invalid order status"},
		{"unknown status", `{"status":"Lost"}`, domain.ErrInvalidOrderStatus, http.StatusBadRequest, "Invalid order status"},
		{"unknown order", `{"status":"Shipped"}`, domain.ErrOrderNotFound, http.StatusNotFound, "Order Not Found"},
		{"storage failure", `{"status":"Shipped"}`, errors.New("timeout"), http.StatusInternalServerError, "Error While Updating Order"},
		{"malformed body", `{"status":`, nil, http.StatusBadRequest, "invalid payload"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			stub := &stubOrderService{
				updateFn: func(context.Context, ports.UpdateOrderStatusInput) (*domain.Order, error) {
					if tc.err == nil {
						t.Fatalf("service should not be called")
					}
					return nil, tc.err
				},
			}
			h := NewOrderHandler(stub, zerolog.Nop())

			c, rec := updateStatusContext(e, "missing", tc.body)
			if err := h.UpdateStatus(c); err != nil {
				t.Fatalf("handler must not return an error: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}

			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Success || resp.Message != tc.message {
				t.Fatalf("unexpected body: %+v", resp)
			}
		})
	}
}
