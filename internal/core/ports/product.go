package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

// ProductFilter carries every query parameter the storefront uses.
type ProductFilter struct {
	CategoryIDs      []string // optional: category in any of these
	MinPrice         *float64 // optional: price >= MinPrice
	MaxPrice         *float64 // optional: price <= MaxPrice
	Keyword          string   // optional: case-insensitive match on name or description
	ExcludeID        string   // optional: drop this product from the result
	Skip             int
	Limit            int // 0 = no limit
	NewestFirst      bool
	PopulateCategory bool
}

type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Find(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	Count(ctx context.Context, filter ProductFilter) (int64, error)
}

// ProductInput is the writable part of a product.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	CategoryID  string
	Quantity    int
	Shipping    bool
}

type ProductService interface {
	Create(ctx context.Context, in ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	Latest(ctx context.Context) ([]*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Filter(ctx context.Context, categoryIDs []string, priceRange []float64) ([]*domain.Product, error)
	Count(ctx context.Context) (int64, error)
	Page(ctx context.Context, page int) ([]*domain.Product, error)
	Search(ctx context.Context, keyword string) ([]*domain.Product, error)
	Related(ctx context.Context, productID, categoryID string) ([]*domain.Product, error)
	ByCategory(ctx context.Context, slug string) (*domain.Category, []*domain.Product, error)
}
