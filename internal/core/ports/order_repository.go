package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

// OrderFilter narrows an order query.
type OrderFilter struct {
	BuyerID     string // empty = every buyer
	NewestFirst bool   // sort by createdAt descending; otherwise storage order
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	// Find returns orders matching the filter with products and buyer resolved.
	Find(ctx context.Context, filter OrderFilter) ([]*domain.OrderDetail, error)
	// UpdateStatus overwrites the status and returns the updated order. When
	// expectedVersion is non-nil the write only applies if the stored version
	// still matches, otherwise domain.ErrOrderConflict is returned.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, expectedVersion *int64) (*domain.Order, error)
}
