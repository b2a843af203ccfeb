package handler

import "time"

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
	// Version enables the optimistic-concurrency check when present.
	Version *int64 `json:"version,omitempty" validate:"omitempty,gte=0"`
}

type buyerResponse struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type categoryResponse struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type productResponse struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    any       `json:"category"` // id, or categoryResponse when resolved
	Quantity    int       `json:"quantity"`
	Shipping    bool      `json:"shipping"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// orderDetailResponse is an order with products and buyer resolved.
type orderDetailResponse struct {
	ID        string            `json:"_id"`
	Products  []productResponse `json:"products"`
	Payment   map[string]any    `json:"payment"`
	Buyer     *buyerResponse    `json:"buyer"`
	Status    string            `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Version   int64             `json:"__v"`
}

// orderResponse is an order as stored: products and buyer are ids.
type orderResponse struct {
	ID        string         `json:"_id"`
	Products  []string       `json:"products"`
	Payment   map[string]any `json:"payment"`
	Buyer     string         `json:"buyer"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Version   int64          `json:"__v"`
}
