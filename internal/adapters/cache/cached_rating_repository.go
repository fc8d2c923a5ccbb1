package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/providers"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/repositories"
	"github.com/johanfuertv/WhereToGo-App/internal/infrastructure/observability"
)

// ratingsByPlaceTTL is the lifetime of a cached per-place rating list in seconds
const ratingsByPlaceTTL = 300

// CachedRatingRepository wraps a RatingRepository and caches the rating list
// of each place. Every write drops the entry of the place it touched and
// bumps its generation, so a list read before the write is never cached
// after it.
type CachedRatingRepository struct {
	repositories.RatingRepository
	cache   providers.CacheProvider
	metrics *observability.Metrics

	mu          sync.Mutex
	generations map[string]uint64
}

// NewCachedRatingRepository creates a caching decorator; metrics may be nil.
func NewCachedRatingRepository(repo repositories.RatingRepository, cache providers.CacheProvider, metrics *observability.Metrics) repositories.RatingRepository {
	return &CachedRatingRepository{
		RatingRepository: repo,
		cache:            cache,
		metrics:          metrics,
		generations:      make(map[string]uint64),
	}
}

func ratingsByPlaceKey(place entities.PlaceKey) string {
	return fmt.Sprintf("ratings:place:%s:%s", place.PlaceType, place.PlaceID)
}

// ListByPlace serves from cache when possible
func (r *CachedRatingRepository) ListByPlace(ctx context.Context, place entities.PlaceKey) ([]*entities.Rating, error) {
	key := ratingsByPlaceKey(place)

	if cached, err := r.cache.Get(ctx, key); err == nil {
		var ratings []*entities.Rating
		if err := json.Unmarshal(cached, &ratings); err == nil {
			observability.RecordCacheHit(ctx, r.metrics, "ratings:place")
			return ratings, nil
		}
		log.Warn().Err(err).Str("key", key).Msg("Failed to unmarshal cached ratings")
	}
	observability.RecordCacheMiss(ctx, r.metrics, "ratings:place")

	gen := r.generation(key)
	ratings, err := r.RatingRepository.ListByPlace(ctx, place)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, gen, ratings)
	return ratings, nil
}

// store caches ratings unless a write invalidated key since gen was read.
// A write racing the Set is caught by the second generation check.
func (r *CachedRatingRepository) store(ctx context.Context, key string, gen uint64, ratings []*entities.Rating) {
	if r.generation(key) != gen {
		return
	}
	data, err := json.Marshal(ratings)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, key, data, ratingsByPlaceTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to cache ratings")
		return
	}
	if r.generation(key) != gen {
		if err := r.cache.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to drop stale cached ratings")
		}
	}
}

func (r *CachedRatingRepository) generation(key string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generations[key]
}

// Upsert writes through and invalidates the place entry
func (r *CachedRatingRepository) Upsert(ctx context.Context, rating *entities.Rating) (bool, error) {
	created, err := r.RatingRepository.Upsert(ctx, rating)
	if err != nil {
		return false, err
	}
	r.invalidate(ctx, rating.Place())
	return created, nil
}

// Delete removes the rating and invalidates its place entry
func (r *CachedRatingRepository) Delete(ctx context.Context, id string) error {
	existing, err := r.RatingRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.RatingRepository.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, existing.Place())
	return nil
}

func (r *CachedRatingRepository) invalidate(ctx context.Context, place entities.PlaceKey) {
	key := ratingsByPlaceKey(place)
	r.mu.Lock()
	r.generations[key]++
	r.mu.Unlock()
	if err := r.cache.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to invalidate cached ratings")
	}
}
