package services

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"checkin/models"
	"checkin/services/logger"
)

const (
	listCacheKey      = "checkins:all"
	listGenerationKey = "checkins:gen"
)

// CachedStore serves List from a cache. Listings are stored under the current
// generation and every write bumps it, so a listing read before a write can
// never be served after it. If a bump fails the process stops using the cache
// until a later bump succeeds.
type CachedStore struct {
	next   RecordStore
	cache  Cache
	ttl    time.Duration
	logger logger.Logger

	stale atomic.Bool
}

func NewCachedStore(next RecordStore, cache Cache, ttl time.Duration, log logger.Logger) *CachedStore {
	return &CachedStore{next: next, cache: cache, ttl: ttl, logger: log}
}

func listKey(gen int64) string {
	return listCacheKey + ":" + strconv.FormatInt(gen, 10)
}

func (s *CachedStore) Create(ctx context.Context, record models.CheckinRecord) (*models.CheckinRecord, error) {
	created, err := s.next.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *CachedStore) List(ctx context.Context) ([]models.CheckinRecord, error) {
	if s.stale.Load() {
		return s.next.List(ctx)
	}

	var gen int64
	if _, err := s.cache.Get(ctx, listGenerationKey, &gen); err != nil {
		logger.FromContext(ctx, s.logger).Warn("cache read %s: %v", listGenerationKey, err)
		return s.next.List(ctx)
	}
	key := listKey(gen)

	var cached []models.CheckinRecord
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.FromContext(ctx, s.logger).Warn("cache read %s: %v", key, err)
	}
	if found && err == nil {
		for i := range cached {
			cached[i].Normalize()
		}
		return cached, nil
	}

	records, err := s.next.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.stale.Load() {
		return records, nil
	}
	if err := s.cache.Set(ctx, key, records, s.ttl); err != nil {
		logger.FromContext(ctx, s.logger).Warn("cache write %s: %v", key, err)
	}
	return records, nil
}

func (s *CachedStore) Delete(ctx context.Context, id string) error {
	if err := s.next.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CachedStore) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

func (s *CachedStore) invalidate(ctx context.Context) {
	if _, err := s.cache.Incr(ctx, listGenerationKey); err != nil {
		if !s.stale.Swap(true) {
			logger.FromContext(ctx, s.logger).Error("cache invalidate %s failed, listing cache bypassed: %v", listGenerationKey, err)
		}
		return
	}
	if s.stale.Swap(false) {
		logger.FromContext(ctx, s.logger).Info("listing cache invalidated again, cache re-enabled")
	}
}
