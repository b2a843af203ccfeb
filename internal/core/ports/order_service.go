package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

// UpdateOrderStatusInput is the DTO for an administrator status change.
type UpdateOrderStatusInput struct {
	OrderID string
	Status  string
	// ExpectedVersion enables the optimistic-concurrency check when set.
	ExpectedVersion *int64
}

// PlaceOrderInput is what the checkout flow hands over once payment succeeded.
type PlaceOrderInput struct {
	BuyerID    string
	ProductIDs []string
	Payment    map[string]any
}

// OrderService defines the order lifecycle use cases.
type OrderService interface {
	ListBuyerOrders(ctx context.Context, principal domain.Principal) ([]*domain.OrderDetail, error)
	ListAllOrders(ctx context.Context) ([]*domain.OrderDetail, error)
	UpdateStatus(ctx context.Context, in UpdateOrderStatusInput) (*domain.Order, error)
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, error)
}
