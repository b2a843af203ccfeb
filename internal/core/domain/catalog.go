package domain

import "time"

// Category groups products in the storefront.
type Category struct {
	ID   string
	Name string
	Slug string
}

// Product is a catalog item. Category is populated only on read paths that
// resolve the reference; CategoryID is always set.
type Product struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Price       float64
	CategoryID  string
	Category    *Category
	Quantity    int
	Shipping    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
