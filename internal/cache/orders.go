// Package cache decorates the storage layer with a Redis read-through
// cache for order history lookups. The cache is an optimization only:
// every cache failure degrades to the underlying store.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"poezdka/internal/dialog"
	"poezdka/internal/models"
)

// Store wraps a dialog.Store and caches per-user order history.
// Writes invalidate the owning user's history key.
type Store struct {
	inner  dialog.Store
	redis  *redis.Client
	ttl    time.Duration
	logger *zerolog.Logger
}

// NewStore creates the caching decorator.
func NewStore(inner dialog.Store, client *redis.Client, ttl time.Duration, logger *zerolog.Logger) *Store {
	return &Store{inner: inner, redis: client, ttl: ttl, logger: logger}
}

func historyKey(userID int64) string {
	return fmt.Sprintf("orders:%d", userID)
}

// SaveUser passes through.
func (s *Store) SaveUser(ctx context.Context, u *models.User) error {
	return s.inner.SaveUser(ctx, u)
}

// SaveOrder persists the order and drops the user's cached history.
func (s *Store) SaveOrder(ctx context.Context, o *models.Order) (int64, error) {
	id, err := s.inner.SaveOrder(ctx, o)
	if err != nil {
		return id, err
	}
	if delErr := s.redis.Del(ctx, historyKey(o.UserID)).Err(); delErr != nil {
		s.logger.Warn().Err(delErr).Int64("user_id", o.UserID).Msg("order cache invalidation failed")
	}
	return id, nil
}

// OrdersForUser serves the history from Redis when present, otherwise
// from the store with a write-back.
func (s *Store) OrdersForUser(ctx context.Context, userID int64, limit int) ([]models.Order, error) {
	key := historyKey(userID)

	if val, err := s.redis.Get(ctx, key).Result(); err == nil {
		var orders []models.Order
		if jsonErr := json.Unmarshal([]byte(val), &orders); jsonErr == nil {
			if limit > 0 && len(orders) > limit {
				orders = orders[:limit]
			}
			return orders, nil
		}
		// Corrupt entry, fall through to the store.
		_ = s.redis.Del(ctx, key).Err()
	}

	orders, err := s.inner.OrdersForUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	if data, jsonErr := json.Marshal(orders); jsonErr == nil {
		if setErr := s.redis.Set(ctx, key, data, s.ttl).Err(); setErr != nil {
			s.logger.Warn().Err(setErr).Int64("user_id", userID).Msg("order cache write failed")
		}
	}
	return orders, nil
}

// SaveScenarioUsage passes through.
func (s *Store) SaveScenarioUsage(ctx context.Context, userID int64, scenarioID, bookingNumber string) error {
	return s.inner.SaveScenarioUsage(ctx, userID, scenarioID, bookingNumber)
}

// SavePromoUsage passes through.
func (s *Store) SavePromoUsage(ctx context.Context, userID int64, promoID int, bookingNumber string) error {
	return s.inner.SavePromoUsage(ctx, userID, promoID, bookingNumber)
}
