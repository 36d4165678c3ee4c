package service

import (
	"context"
	"time"

	"reciclothes/internal/cache"
	"reciclothes/internal/model"
	"reciclothes/internal/repository"
)

const productListCacheKey = "products:all"

// ProductService exposes the read-only catalog.
type ProductService interface {
	List(ctx context.Context) ([]model.ProductView, error)
}

type productService struct {
	repo     repository.ProductRepository
	cache    *cache.Client
	cacheTTL time.Duration
}

// NewProductService builds a ProductService. A nil cache or zero TTL reads straight from the database.
func NewProductService(repo repository.ProductRepository, cache *cache.Client, cacheTTL time.Duration) ProductService {
	return &productService{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

// List returns every product with its image encoded as base64.
func (s *productService) List(ctx context.Context) ([]model.ProductView, error) {
	useCache := s.cache.Enabled() && s.cacheTTL > 0

	if useCache {
		var cached []model.ProductView
		if s.cache.GetJSON(ctx, productListCacheKey, &cached) {
			return cached, nil
		}
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]model.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, model.NewProductView(p))
	}

	if useCache {
		s.cache.SetJSON(ctx, productListCacheKey, views, s.cacheTTL)
	}
	return views, nil
}

// InvalidateProductCache drops the cached listing, e.g. after seeding the catalog.
func InvalidateProductCache(ctx context.Context, c *cache.Client) {
	c.Delete(ctx, productListCacheKey)
}
