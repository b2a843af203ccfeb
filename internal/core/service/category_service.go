package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/storefront/shop-api/internal/api/metrics"
	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

const categoryListKey = "categories:all"

type CategoryService struct {
	repo  ports.CategoryRepository
	cache ports.Cache
	ttl   time.Duration
	log   zerolog.Logger
	group singleflight.Group
}

// NewCategoryService wires the category use cases. cache may be nil, in which
// case every list goes to the repository.
func NewCategoryService(repo ports.CategoryRepository, cache ports.Cache, ttl time.Duration, log zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, cache: cache, ttl: ttl, log: log}
}

func (s *CategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidCategory
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err == nil {
		return existing, domain.ErrCategoryExists
	}
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Category{Name: name, Slug: slug.Make(name)})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.log.Info().Str("category_id", created.ID).Str("slug", created.Slug).Msg("category created")
	return created, nil
}

func (s *CategoryService) Update(ctx context.Context, id, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidCategory
	}

	updated, err := s.repo.Update(ctx, &domain.Category{ID: id, Name: name, Slug: slug.Make(name)})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

// List is cache-aside: a cache failure degrades to a repository read.
func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	if s.cache != nil {
		var cached []*domain.Category
		hit, err := s.cache.GetJSON(ctx, categoryListKey, &cached)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Msg("category cache read failed")
		case hit:
			metrics.CategoryCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		}
		metrics.CategoryCacheTotal.WithLabelValues("miss").Inc()
	}

	// concurrent misses share one repository read
	v, err, _ := s.group.Do(categoryListKey, func() (any, error) {
		categories, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		if categories == nil {
			categories = []*domain.Category{}
		}

		if s.cache != nil {
			if err := s.cache.SetJSON(ctx, categoryListKey, categories, s.ttl); err != nil {
				s.log.Warn().Err(err).Msg("category cache write failed")
			}
		}
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Category), nil
}

func (s *CategoryService) GetBySlug(ctx context.Context, categorySlug string) (*domain.Category, error) {
	return s.repo.FindBySlug(ctx, categorySlug)
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.log.Info().Str("category_id", id).Msg("category deleted")
	return nil
}

func (s *CategoryService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, categoryListKey); err != nil {
		s.log.Warn().Err(err).Msg("category cache invalidation failed")
	}
}
