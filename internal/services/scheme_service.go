package services

import (
	"context"
	"log"
	"time"

	"bizdel/internal/caching"
	"bizdel/internal/models"
	"bizdel/internal/repositories"
)

const schemeCacheTTL = 5 * time.Minute

// schemeCacheAllKey is the cache slot for the unfiltered catalog; per-type
// results are cached under the type string itself.
const schemeCacheAllKey = "all"

type SchemeService interface {
	ListActive(ctx context.Context) ([]*models.Scheme, error)
	ListActiveByType(ctx context.Context, schemeType string) ([]*models.Scheme, error)
}

type schemeService struct {
	schemeRepo repositories.SchemeRepository
	cacheSvc   caching.CacheService // nil disables caching
}

func NewSchemeService(schemeRepo repositories.SchemeRepository, cacheSvc caching.CacheService) SchemeService {
	return &schemeService{
		schemeRepo: schemeRepo,
		cacheSvc:   cacheSvc,
	}
}

func (s *schemeService) ListActive(ctx context.Context) ([]*models.Scheme, error) {
	return s.cached(ctx, schemeCacheAllKey, func() ([]*models.Scheme, error) {
		return s.schemeRepo.ListActive(ctx)
	})
}

func (s *schemeService) ListActiveByType(ctx context.Context, schemeType string) ([]*models.Scheme, error) {
	return s.cached(ctx, "type:"+schemeType, func() ([]*models.Scheme, error) {
		return s.schemeRepo.ListActiveByType(ctx, schemeType)
	})
}

// cached serves from the cache when possible and falls back to the
// repository. Cache failures degrade to repository reads, never to errors.
func (s *schemeService) cached(ctx context.Context, key string, load func() ([]*models.Scheme, error)) ([]*models.Scheme, error) {
	if s.cacheSvc != nil {
		schemes, err := s.cacheSvc.GetSchemes(ctx, key)
		if err != nil {
			log.Printf("WARN: scheme cache read failed for %q: %v", key, err)
		} else if schemes != nil {
			return schemes, nil
		}
	}

	schemes, err := load()
	if err != nil {
		return nil, err
	}

	if s.cacheSvc != nil {
		if err := s.cacheSvc.SetSchemes(ctx, key, schemes, schemeCacheTTL); err != nil {
			log.Printf("WARN: scheme cache write failed for %q: %v", key, err)
		}
	}
	return schemes, nil
}
