package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"poezdka/internal/models"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) SaveUser(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockStore) SaveOrder(ctx context.Context, o *models.Order) (int64, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) OrdersForUser(ctx context.Context, userID int64, limit int) ([]models.Order, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *mockStore) SaveScenarioUsage(ctx context.Context, userID int64, scenarioID, bookingNumber string) error {
	return m.Called(ctx, userID, scenarioID, bookingNumber).Error(0)
}

func (m *mockStore) SavePromoUsage(ctx context.Context, userID int64, promoID int, bookingNumber string) error {
	return m.Called(ctx, userID, promoID, bookingNumber).Error(0)
}

func newTestStore(t *testing.T, inner *mockStore) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	logger := zerolog.Nop()
	return NewStore(inner, client, time.Minute, &logger)
}

func TestOrdersForUserCachesResult(t *testing.T) {
	inner := &mockStore{}
	s := newTestStore(t, inner)
	ctx := context.Background()

	orders := []models.Order{{ID: 1, UserID: 42, BookingNumber: "AAA-000001"}}
	inner.On("OrdersForUser", ctx, int64(42), 5).Return(orders, nil).Once()

	got, err := s.OrdersForUser(ctx, 42, 5)
	assert.NoError(t, err)
	assert.Equal(t, orders, got)

	// Second call is served from Redis, the inner store is not hit again.
	got, err = s.OrdersForUser(ctx, 42, 5)
	assert.NoError(t, err)
	assert.Equal(t, orders, got)

	inner.AssertExpectations(t)
}

func TestOrdersForUserCacheTrimsToLimit(t *testing.T) {
	inner := &mockStore{}
	s := newTestStore(t, inner)
	ctx := context.Background()

	orders := []models.Order{
		{ID: 3, UserID: 42, BookingNumber: "AAA-000003"},
		{ID: 2, UserID: 42, BookingNumber: "AAA-000002"},
		{ID: 1, UserID: 42, BookingNumber: "AAA-000001"},
	}
	inner.On("OrdersForUser", ctx, int64(42), 10).Return(orders, nil).Once()

	_, err := s.OrdersForUser(ctx, 42, 10)
	assert.NoError(t, err)

	got, err := s.OrdersForUser(ctx, 42, 2)
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "AAA-000003", got[0].BookingNumber)

	inner.AssertExpectations(t)
}

func TestSaveOrderInvalidatesCache(t *testing.T) {
	inner := &mockStore{}
	s := newTestStore(t, inner)
	ctx := context.Background()

	first := []models.Order{{ID: 1, UserID: 42, BookingNumber: "AAA-000001"}}
	inner.On("OrdersForUser", ctx, int64(42), 5).Return(first, nil).Once()

	_, err := s.OrdersForUser(ctx, 42, 5)
	assert.NoError(t, err)

	newOrder := &models.Order{ID: 2, UserID: 42, BookingNumber: "AAA-000002"}
	inner.On("SaveOrder", ctx, newOrder).Return(int64(2), nil).Once()
	_, err = s.SaveOrder(ctx, newOrder)
	assert.NoError(t, err)

	// Invalidation forces a fresh read.
	both := []models.Order{
		{ID: 2, UserID: 42, BookingNumber: "AAA-000002"},
		{ID: 1, UserID: 42, BookingNumber: "AAA-000001"},
	}
	inner.On("OrdersForUser", ctx, int64(42), 5).Return(both, nil).Once()

	got, err := s.OrdersForUser(ctx, 42, 5)
	assert.NoError(t, err)
	assert.Len(t, got, 2)

	inner.AssertExpectations(t)
}

func TestPassThroughCalls(t *testing.T) {
	inner := &mockStore{}
	s := newTestStore(t, inner)
	ctx := context.Background()

	u := &models.User{TelegramID: 42}
	inner.On("SaveUser", ctx, u).Return(nil).Once()
	inner.On("SaveScenarioUsage", ctx, int64(42), "2", "AAA-000001").Return(nil).Once()
	inner.On("SavePromoUsage", ctx, int64(42), 3, "AAA-000001").Return(nil).Once()

	assert.NoError(t, s.SaveUser(ctx, u))
	assert.NoError(t, s.SaveScenarioUsage(ctx, 42, "2", "AAA-000001"))
	assert.NoError(t, s.SavePromoUsage(ctx, 42, 3, "AAA-000001"))

	inner.AssertExpectations(t)
}
