package domain

import (
	"fmt"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderNotProcessed OrderStatus = "Not Process"
	OrderProcessing   OrderStatus = "Processing"
	OrderShipped      OrderStatus = "Shipped"
	OrderDelivered    OrderStatus = "delivered"
	OrderCancelled    OrderStatus = "cancel"
)

// legacyDelivered is how older documents spell the delivered state.
const legacyDelivered = "deliverd"

// OrderStatuses lists every valid status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderNotProcessed,
	OrderProcessing,
	OrderShipped,
	OrderDelivered,
	OrderCancelled,
}

// ParseOrderStatus maps a raw value onto the closed status set.
// Any status may follow any other; only membership is enforced.
func ParseOrderStatus(s string) (OrderStatus, error) {
	if s == legacyDelivered {
		return OrderDelivered, nil
	}
	for _, st := range OrderStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidOrderStatus, s)
}

// Order is the stored order aggregate. Products and BuyerID hold references.
type Order struct {
	ID        string
	Products  []string
	Payment   map[string]any
	BuyerID   string
	Status    OrderStatus
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderBuyer is the buyer as exposed in populated order views: name only.
type OrderBuyer struct {
	ID   string
	Name string
}

// OrderDetail is an order with its product and buyer references resolved.
type OrderDetail struct {
	ID        string
	Products  []Product
	Payment   map[string]any
	Buyer     *OrderBuyer
	Status    OrderStatus
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
