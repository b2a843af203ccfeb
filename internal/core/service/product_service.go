package service

import (
	"context"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

const (
	latestProductsLimit  = 12
	productsPerPage      = 6
	relatedProductsLimit = 3

	// maxProductPage keeps the skip offset well inside int64.
	maxProductPage = 1 << 20
)

type ProductService struct {
	repo       ports.ProductRepository
	categories ports.CategoryRepository
	log        zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, categories ports.CategoryRepository, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, categories: categories, log: log}
}

func (s *ProductService) Create(ctx context.Context, in ports.ProductInput) (*domain.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Slug:        slug.Make(in.Name),
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		Quantity:    in.Quantity,
		Shipping:    in.Shipping,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("product_id", created.ID).Str("slug", created.Slug).Msg("product created")
	return created, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in ports.ProductInput) (*domain.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}

	p := &domain.Product{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Slug:        slug.Make(in.Name),
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		Quantity:    in.Quantity,
		Shipping:    in.Shipping,
		UpdatedAt:   time.Now().UTC(),
	}
	return s.repo.Update(ctx, p)
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

func (s *ProductService) Latest(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.Find(ctx, ports.ProductFilter{
		Limit:            latestProductsLimit,
		NewestFirst:      true,
		PopulateCategory: true,
	})
}

func (s *ProductService) GetBySlug(ctx context.Context, productSlug string) (*domain.Product, error) {
	return s.repo.FindBySlug(ctx, productSlug)
}

// Filter matches products in any of categoryIDs and, when priceRange holds a
// [min, max] pair, inside that inclusive range.
func (s *ProductService) Filter(ctx context.Context, categoryIDs []string, priceRange []float64) ([]*domain.Product, error) {
	f := ports.ProductFilter{CategoryIDs: categoryIDs}
	if len(priceRange) == 2 {
		lo, hi := priceRange[0], priceRange[1]
		f.MinPrice, f.MaxPrice = &lo, &hi
	}
	return s.repo.Find(ctx, f)
}

func (s *ProductService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, ports.ProductFilter{})
}

// Page returns one page of the newest-first listing. Pages start at 1;
// pages past maxProductPage are empty.
func (s *ProductService) Page(ctx context.Context, page int) ([]*domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if page > maxProductPage {
		return []*domain.Product{}, nil
	}
	return s.repo.Find(ctx, ports.ProductFilter{
		Skip:        (page - 1) * productsPerPage,
		Limit:       productsPerPage,
		NewestFirst: true,
	})
}

func (s *ProductService) Search(ctx context.Context, keyword string) ([]*domain.Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []*domain.Product{}, nil
	}
	return s.repo.Find(ctx, ports.ProductFilter{Keyword: keyword})
}

func (s *ProductService) Related(ctx context.Context, productID, categoryID string) ([]*domain.Product, error) {
	return s.repo.Find(ctx, ports.ProductFilter{
		CategoryIDs:      []string{categoryID},
		ExcludeID:        productID,
		Limit:            relatedProductsLimit,
		PopulateCategory: true,
	})
}

func (s *ProductService) ByCategory(ctx context.Context, categorySlug string) (*domain.Category, []*domain.Product, error) {
	category, err := s.categories.FindBySlug(ctx, categorySlug)
	if err != nil {
		return nil, nil, err
	}
	products, err := s.repo.Find(ctx, ports.ProductFilter{
		CategoryIDs:      []string{category.ID},
		PopulateCategory: true,
	})
	if err != nil {
		return nil, nil, err
	}
	return category, products, nil
}

func validateProductInput(in ports.ProductInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "",
		strings.TrimSpace(in.Description) == "",
		in.CategoryID == "",
		in.Price < 0,
		in.Quantity < 0:
		return domain.ErrInvalidProduct
	}
	return nil
}
