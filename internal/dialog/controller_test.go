package dialog

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"poezdka/internal/cart"
	"poezdka/internal/catalog"
	"poezdka/internal/intent"
	"poezdka/internal/models"
	"poezdka/internal/session"
	"poezdka/internal/ticket"
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

func newTestController(store Store) *Controller {
	logger := zerolog.Nop()
	return New(
		catalog.Default(),
		store,
		intent.NewClassifier(),
		ticket.NewSeededGenerator(1),
		session.NewRegistry(0),
		&logger,
	)
}

func TestEmptyMessage(t *testing.T) {
	c := newTestController(&mockStore{})

	resp := c.HandleMessage(context.Background(), 1, "   ")
	assert.Contains(t, resp.Text, "напишите что-нибудь")
	assert.Equal(t, UIMain, resp.UI)
}

func TestGreetingResetsSelections(t *testing.T) {
	c := newTestController(&mockStore{})

	s := c.Session(1)
	s.Destination = "Москва"
	s.DateText = "завтра"

	resp := c.HandleMessage(context.Background(), 1, "привет")

	assert.Contains(t, resp.Text, "Здравствуйте")
	assert.Empty(t, s.Destination)
	assert.Empty(t, s.DateText)
	assert.Equal(t, session.AwaitNone, s.Awaiting())
}

func TestDestinationThenDateLeadsToScenarios(t *testing.T) {
	c := newTestController(&mockStore{})
	ctx := context.Background()

	resp := c.HandleMessage(ctx, 1, "хочу в москву")
	assert.Contains(t, resp.Text, "Москва")
	assert.Equal(t, session.AwaitDateSelection, c.Session(1).Awaiting())

	resp = c.HandleMessage(ctx, 1, "25 декабря")
	assert.Equal(t, UIScenarios, resp.UI)
	assert.Equal(t, session.AwaitScenarioSelection, c.Session(1).Awaiting())
	assert.Contains(t, resp.Text, "Бюджетный")
	assert.Contains(t, resp.Text, "Бизнес")
}

func TestDateBeforeDestination(t *testing.T) {
	c := newTestController(&mockStore{})
	ctx := context.Background()

	resp := c.HandleMessage(ctx, 1, "завтра")
	assert.Contains(t, resp.Text, "Куда")
	assert.Equal(t, session.AwaitDestinationSelection, c.Session(1).Awaiting())

	resp = c.HandleMessage(ctx, 1, "питер")
	assert.Equal(t, UIScenarios, resp.UI)
	assert.Equal(t, "Санкт-Петербург", c.Session(1).Destination)
}

func TestScenariosRequireTripContext(t *testing.T) {
	c := newTestController(&mockStore{})

	resp := c.HandleMessage(context.Background(), 1, "сценарии")
	assert.Contains(t, resp.Text, "куда едем")
	assert.Equal(t, session.AwaitNone, c.Session(1).Awaiting())
}

func TestScenarioSelectionByNumber(t *testing.T) {
	c := newTestController(&mockStore{})
	ctx := context.Background()

	c.HandleMessage(ctx, 1, "москва")
	c.HandleMessage(ctx, 1, "завтра")
	resp := c.HandleMessage(ctx, 1, "2")

	assert.Equal(t, UIConfirm, resp.UI)
	assert.Contains(t, resp.Text, "Стандартный")
	assert.Contains(t, resp.Text, "ЭЛЕКТРОННЫЙ БИЛЕТ")

	s := c.Session(1)
	assert.Equal(t, session.AwaitScenarioConfirmation, s.Awaiting())
	assert.Equal(t, "2", s.Cart.ScenarioID())
	assert.Len(t, s.Cart.ItemsOf(cart.KindTicket), 1)
	assert.Len(t, s.Cart.ItemsOf(cart.KindProduct), 3)
}

func TestScenarioSelectionByName(t *testing.T) {
	c := newTestController(&mockStore{})
	ctx := context.Background()

	c.HandleMessage(ctx, 1, "сочи")
	c.HandleMessage(ctx, 1, "на выходные")
	resp := c.HandleMessage(ctx, 1, "хочу премиум")

	assert.Equal(t, UIConfirm, resp.UI)
	assert.Equal(t, "3", c.Session(1).Cart.ScenarioID())
}

func TestScenarioSelectionInvalid(t *testing.T) {
	c := newTestController(&mockStore{})
	ctx := context.Background()

	c.HandleMessage(ctx, 1, "москва")
	c.HandleMessage(ctx, 1, "завтра")
	resp := c.HandleMessage(ctx, 1, "99")

	assert.Contains(t, resp.Text, "Не нашел")
	assert.Equal(t, session.AwaitScenarioSelection, c.Session(1).Awaiting())
}

func TestScenarioReplacementKeepsOneTicket(t *testing.T) {
	c := newTestController(&mockStore{})
	ctx := context.Background()

	c.HandleMessage(ctx, 1, "москва")
	c.HandleMessage(ctx, 1, "завтра")
	c.HandleMessage(ctx, 1, "1")
	c.HandleMessage(ctx, 1, "да")

	s := c.Session(1)
	bn := s.BookingNumber(func() string { t.Fatal("must not regenerate"); return "" })

	c.HandleMessage(ctx, 1, "сценарии")
	c.HandleMessage(ctx, 1, "5")

	assert.Equal(t, "5", s.Cart.ScenarioID())
	assert.Len(t, s.Cart.ItemsOf(cart.KindTicket), 1)
	assert.Len(t, s.Cart.ItemsOf(cart.KindProduct), 4)
	// The booking number survives a scenario swap.
	assert.Equal(t, bn, s.BookingNumber(func() string { return "" }))
}

func TestScenarioDeclinedRollsBackKeepingPromotions(t *testing.T) {
	c := newTestController(&mockStore{})
	ctx := context.Background()

	c.HandleMessage(ctx, 1, "акции")
	c.HandleMessage(ctx, 1, "2")

	c.HandleMessage(ctx, 1, "москва")
	c.HandleMessage(ctx, 1, "завтра")
	c.HandleMessage(ctx, 1, "3")
	resp := c.HandleMessage(ctx, 1, "нет")

	s := c.Session(1)
	assert.Contains(t, resp.Text, "другой вариант")
	assert.Equal(t, session.AwaitNone, s.Awaiting())
	assert.Empty(t, s.Cart.ScenarioID())
	assert.Empty(t, s.Cart.ItemsOf(cart.KindTicket))
	assert.Len(t, s.Cart.ItemsOf(cart.KindPromotion), 1)
}

func TestPromoSelection(t *testing.T) {
	c := newTestController(&mockStore{})
	ctx := context.Background()

	resp := c.HandleMessage(ctx, 1, "акции")
	assert.Equal(t, UIPromos, resp.UI)
	assert.Equal(t, session.AwaitPromoSelection, c.Session(1).Awaiting())

	resp = c.HandleMessage(ctx, 1, "3")
	assert.Contains(t, resp.Text, "Акция применена")
	assert.Contains(t, resp.Text, "20%")
	assert.Equal(t, session.AwaitNone, c.Session(1).Awaiting())
}

func TestPromoSelectionDuplicate(t *testing.T) {
	c := newTestController(&mockStore{})
	ctx := context.Background()

	c.HandleMessage(ctx, 1, "акции")
	c.HandleMessage(ctx, 1, "3")
	c.HandleMessage(ctx, 1, "акции")
	resp := c.HandleMessage(ctx, 1, "3")

	assert.Contains(t, resp.Text, "уже применена")
	assert.Len(t, c.Session(1).Cart.ItemsOf(cart.KindPromotion), 1)
}

func TestPromoSelectionInvalid(t *testing.T) {
	c := newTestController(&mockStore{})
	ctx := context.Background()

	c.HandleMessage(ctx, 1, "акции")
	resp := c.HandleMessage(ctx, 1, "99")

	assert.Contains(t, resp.Text, "от 1 до 6")
	assert.Equal(t, session.AwaitPromoSelection, c.Session(1).Awaiting())
}

func TestCheckoutWithoutTicketRejected(t *testing.T) {
	c := newTestController(&mockStore{})
	ctx := context.Background()

	c.HandleMessage(ctx, 1, "акции")
	c.HandleMessage(ctx, 1, "1")
	resp := c.HandleMessage(ctx, 1, "оформить заказ")

	assert.Contains(t, resp.Text, "нужен билет")
	assert.Equal(t, session.AwaitNone, c.Session(1).Awaiting())
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	c := newTestController(&mockStore{})

	resp := c.HandleMessage(context.Background(), 1, "оформить заказ")
	assert.Contains(t, resp.Text, "Корзина пуста")
}

func TestFullBookingFlow(t *testing.T) {
	store := &mockStore{}
	store.On("SaveOrder", mock.Anything, mock.Anything).Return(int64(1), nil).Once()
	store.On("SaveScenarioUsage", mock.Anything, int64(1), "2", mock.Anything).Return(nil).Once()
	store.On("SavePromoUsage", mock.Anything, int64(1), 2, mock.Anything).Return(nil).Once()
	c := newTestController(store)
	ctx := context.Background()

	c.HandleMessage(ctx, 1, "привет")
	c.HandleMessage(ctx, 1, "хочу в москву")
	c.HandleMessage(ctx, 1, "завтра")
	c.HandleMessage(ctx, 1, "2")
	c.HandleMessage(ctx, 1, "да")
	c.HandleMessage(ctx, 1, "акции")
	c.HandleMessage(ctx, 1, "2")

	resp := c.HandleMessage(ctx, 1, "оформить заказ")
	assert.Equal(t, UIConfirm, resp.UI)
	assert.Contains(t, resp.Text, "Подтвердить заказ?")
	assert.Equal(t, session.AwaitOrderConfirmation, c.Session(1).Awaiting())

	resp = c.HandleMessage(ctx, 1, "да")
	assert.Contains(t, resp.Text, "Заказ оформлен")
	assert.Contains(t, resp.Text, "ЧЕК")
	assert.NotNil(t, resp.Order)
	assert.Equal(t, "Москва", resp.Order.Destination)
	assert.Equal(t, "Стандартный", resp.Order.ScenarioName)
	assert.Equal(t, models.OrderStatusConfirmed, resp.Order.Status)
	assert.Greater(t, resp.Order.TotalPrice, 0.0)
	// ticket + 3 products + 1 promotion line
	assert.Len(t, resp.Order.Items, 5)

	// Session is fully reset after commit.
	s := c.Session(1)
	assert.Equal(t, 0, s.Cart.Len())
	assert.Empty(t, s.Destination)
	assert.False(t, s.HasBookingNumber())
	assert.Equal(t, session.AwaitNone, s.Awaiting())

	store.AssertExpectations(t)
}

func TestOrderDeclinedKeepsCart(t *testing.T) {
	c := newTestController(&mockStore{})
	ctx := context.Background()

	c.HandleMessage(ctx, 1, "москва")
	c.HandleMessage(ctx, 1, "завтра")
	c.HandleMessage(ctx, 1, "1")
	c.HandleMessage(ctx, 1, "да")
	c.HandleMessage(ctx, 1, "оформить заказ")
	resp := c.HandleMessage(ctx, 1, "нет")

	s := c.Session(1)
	assert.Contains(t, resp.Text, "Заказ отменен")
	assert.Equal(t, session.AwaitNone, s.Awaiting())
	assert.NotZero(t, s.Cart.Len())
}

func TestOrderCommitFailureKeepsState(t *testing.T) {
	store := &mockStore{}
	store.On("SaveOrder", mock.Anything, mock.Anything).Return(int64(0), errors.New("disk full")).Once()
	c := newTestController(store)
	ctx := context.Background()

	c.HandleMessage(ctx, 1, "москва")
	c.HandleMessage(ctx, 1, "завтра")
	c.HandleMessage(ctx, 1, "1")
	c.HandleMessage(ctx, 1, "да")
	c.HandleMessage(ctx, 1, "оформить заказ")
	resp := c.HandleMessage(ctx, 1, "да")

	s := c.Session(1)
	assert.Contains(t, resp.Text, "ошибка")
	assert.Nil(t, resp.Order)
	// Cart and wait-state survive so the user can retry.
	assert.Equal(t, session.AwaitOrderConfirmation, s.Awaiting())
	assert.NotZero(t, s.Cart.Len())

	store.AssertExpectations(t)
}

func TestOrderConfirmationReprompt(t *testing.T) {
	c := newTestController(&mockStore{})
	ctx := context.Background()

	c.HandleMessage(ctx, 1, "москва")
	c.HandleMessage(ctx, 1, "завтра")
	c.HandleMessage(ctx, 1, "1")
	c.HandleMessage(ctx, 1, "да")
	c.HandleMessage(ctx, 1, "оформить заказ")
	resp := c.HandleMessage(ctx, 1, "может быть")

	assert.Contains(t, resp.Text, "(да/нет)")
	assert.Equal(t, session.AwaitOrderConfirmation, c.Session(1).Awaiting())
}

func TestShowCartEmpty(t *testing.T) {
	c := newTestController(&mockStore{})

	resp := c.HandleMessage(context.Background(), 1, "корзина")
	assert.Contains(t, resp.Text, "корзина пуста")
}

func TestShowTicketWithoutTicket(t *testing.T) {
	c := newTestController(&mockStore{})

	resp := c.HandleMessage(context.Background(), 1, "мой билет")
	assert.Contains(t, resp.Text, "нет билета")
	assert.Equal(t, UIScenarios, resp.UI)
}

func TestShowTicket(t *testing.T) {
	c := newTestController(&mockStore{})
	ctx := context.Background()

	c.HandleMessage(ctx, 1, "москва")
	c.HandleMessage(ctx, 1, "завтра")
	c.HandleMessage(ctx, 1, "1")
	c.HandleMessage(ctx, 1, "да")
	resp := c.HandleMessage(ctx, 1, "мой билет")

	assert.Equal(t, UITicket, resp.UI)
	assert.Contains(t, resp.Text, "ЭЛЕКТРОННЫЙ БИЛЕТ")
	assert.Contains(t, resp.Text, "Москва")
}

func TestOrderHistory(t *testing.T) {
	store := &mockStore{}
	store.On("OrdersForUser", mock.Anything, int64(1), orderHistoryLimit).Return([]models.Order{
		{BookingNumber: "AAA-000001", Destination: "Сочи", TravelDate: "завтра", TotalPrice: 3000},
	}, nil).Once()
	c := newTestController(store)

	resp := c.HandleMessage(context.Background(), 1, "мои заказы")
	assert.Contains(t, resp.Text, "AAA-000001")
	assert.Contains(t, resp.Text, "Сочи")

	store.AssertExpectations(t)
}

func TestOrderHistoryEmpty(t *testing.T) {
	store := &mockStore{}
	store.On("OrdersForUser", mock.Anything, int64(1), orderHistoryLimit).Return([]models.Order{}, nil).Once()
	c := newTestController(store)

	resp := c.HandleMessage(context.Background(), 1, "мои заказы")
	assert.Contains(t, resp.Text, "нет заказов")
}

func TestOrderHistoryStoreError(t *testing.T) {
	store := &mockStore{}
	store.On("OrdersForUser", mock.Anything, int64(1), orderHistoryLimit).Return(nil, errors.New("boom")).Once()
	c := newTestController(store)

	resp := c.HandleMessage(context.Background(), 1, "мои заказы")
	assert.Contains(t, resp.Text, "Не удалось загрузить")
}

func TestGlobalReset(t *testing.T) {
	c := newTestController(&mockStore{})
	ctx := context.Background()

	c.HandleMessage(ctx, 1, "москва")
	c.HandleMessage(ctx, 1, "завтра")
	c.HandleMessage(ctx, 1, "1")
	resp := c.HandleMessage(ctx, 1, "сброс")

	s := c.Session(1)
	assert.Contains(t, resp.Text, "сброшено")
	assert.Equal(t, 0, s.Cart.Len())
	assert.Empty(t, s.Destination)
	assert.Equal(t, session.AwaitNone, s.Awaiting())
}

func TestClearCartKeepsSelections(t *testing.T) {
	c := newTestController(&mockStore{})
	ctx := context.Background()

	c.HandleMessage(ctx, 1, "москва")
	c.HandleMessage(ctx, 1, "завтра")
	c.HandleMessage(ctx, 1, "1")
	c.HandleMessage(ctx, 1, "да")
	resp := c.HandleMessage(ctx, 1, "очистить корзину")

	s := c.Session(1)
	assert.Contains(t, resp.Text, "Корзина очищена")
	assert.Equal(t, 0, s.Cart.Len())
	assert.Equal(t, "Москва", s.Destination)
}

func TestUnknownTextFallback(t *testing.T) {
	c := newTestController(&mockStore{})

	resp := c.HandleMessage(context.Background(), 1, "qwertyuiop")
	assert.Contains(t, resp.Text, "не понял")
}

func TestHelp(t *testing.T) {
	c := newTestController(&mockStore{})

	resp := c.HandleMessage(context.Background(), 1, "помощь")
	assert.Equal(t, UIHelp, resp.UI)
	assert.Contains(t, resp.Text, "сценарии")
}
