// Package dialog implements the conversation controller: it routes
// incoming text plus the classified intent through the session's current
// wait-state, mutating the cart and selections, and emits the next
// prompt together with a UI hint.
package dialog

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"poezdka/internal/catalog"
	"poezdka/internal/intent"
	"poezdka/internal/metrics"
	"poezdka/internal/models"
	"poezdka/internal/pricing"
	"poezdka/internal/session"
	"poezdka/internal/ticket"
)

// Store is the persistence collaborator. Writes are atomic per call;
// duplicate order commits are rejected by the storage layer's unique
// booking-number constraint.
type Store interface {
	SaveUser(ctx context.Context, u *models.User) error
	SaveOrder(ctx context.Context, o *models.Order) (int64, error)
	OrdersForUser(ctx context.Context, userID int64, limit int) ([]models.Order, error)
	SaveScenarioUsage(ctx context.Context, userID int64, scenarioID, bookingNumber string) error
	SavePromoUsage(ctx context.Context, userID int64, promoID int, bookingNumber string) error
}

// Classifier is the external intent classifier contract.
type Classifier interface {
	Classify(text string) (intent.Intent, bool)
}

// Controller ties catalog, pricing, ticket generation, sessions and
// storage together.
type Controller struct {
	catalog    *catalog.Catalog
	pricing    *pricing.Engine
	tickets    *ticket.Generator
	classifier Classifier
	store      Store
	sessions   *session.Registry
	logger     *zerolog.Logger
	now        func() time.Time
}

// New creates a controller.
func New(
	cat *catalog.Catalog,
	store Store,
	classifier Classifier,
	tickets *ticket.Generator,
	sessions *session.Registry,
	logger *zerolog.Logger,
) *Controller {
	return &Controller{
		catalog:    cat,
		pricing:    pricing.New(cat),
		tickets:    tickets,
		classifier: classifier,
		store:      store,
		sessions:   sessions,
		logger:     logger,
		now:        time.Now,
	}
}

// Session returns the caller's session, creating it on first contact.
func (c *Controller) Session(userID int64) *session.Session {
	return c.sessions.GetOrCreate(userID)
}

// Sessions exposes the registry for lifecycle management (cleanup).
func (c *Controller) Sessions() *session.Registry {
	return c.sessions
}

// HandleMessage routes one user message and returns the reply.
func (c *Controller) HandleMessage(ctx context.Context, userID int64, text string) Response {
	text = strings.TrimSpace(text)
	if text == "" {
		return reply("Пожалуйста, напишите что-нибудь! ✍️", UIMain)
	}

	s := c.sessions.GetOrCreate(userID)

	if resp, ok := c.handleGlobalCommand(ctx, s, text); ok {
		metrics.IncMessageHandled("command")
		return resp
	}

	switch s.Awaiting() {
	case session.AwaitOrderConfirmation:
		metrics.IncMessageHandled("order_confirmation")
		return c.handleOrderConfirmation(ctx, s, text)
	case session.AwaitScenarioConfirmation:
		metrics.IncMessageHandled("scenario_confirmation")
		return c.handleScenarioConfirmation(s, text)
	case session.AwaitScenarioSelection:
		metrics.IncMessageHandled("scenario_selection")
		return c.handleScenarioSelection(s, text)
	case session.AwaitPromoSelection:
		metrics.IncMessageHandled("promo_selection")
		return c.handlePromoSelection(s, text)
	case session.AwaitDateSelection:
		metrics.IncMessageHandled("date_selection")
		return c.handleDateSelection(s, text)
	case session.AwaitDestinationSelection:
		metrics.IncMessageHandled("destination_selection")
		return c.handleDestinationSelection(s, text)
	}

	in, ok := c.classifier.Classify(text)
	if !ok {
		metrics.IncMessageHandled("fallback")
		return c.fallback(s)
	}
	metrics.IncMessageHandled("intent")
	return c.handleIntent(ctx, s, in)
}

// handleGlobalCommand serves the commands that short-circuit normal
// routing regardless of the active wait-state.
func (c *Controller) handleGlobalCommand(ctx context.Context, s *session.Session, text string) (Response, bool) {
	switch strings.ToLower(text) {
	case "сброс", "/reset":
		s.Reset(true)
		return reply("Состояние диалога сброшено. Начнем заново! 🔄", UIMain), true

	case "корзина", "моя корзина", "посмотреть корзину", "/cart":
		return c.ShowCart(s), true

	case "очистить корзину", "очистить":
		s.Cart.Clear(false)
		s.SetAwaiting(session.AwaitNone)
		return reply("🛒 Корзина очищена! Теперь вы можете добавить новые товары.", UIMain), true

	case "оформить заказ", "оформить":
		return c.ProcessOrder(s), true

	case "сценарии", "типы поездок":
		return c.startScenarioSelection(s), true

	case "акции":
		s.SetAwaiting(session.AwaitPromoSelection)
		return reply(c.formatPromotions(), UIPromos), true

	case "мой билет", "/ticket":
		return c.ShowTicket(s), true

	case "мои заказы", "история заказов":
		return c.ShowOrders(ctx, s), true

	case "продолжить бронирование", "продолжить":
		s.SetAwaiting(session.AwaitNone)
		if s.Cart.Len() == 0 {
			return reply("Корзина пуста. Начните новое бронирование! 🚂", UIMain), true
		}
		return c.ShowCart(s), true

	case "помощь", "справка", "/help":
		return reply(helpText, UIHelp), true
	}
	return Response{}, false
}

func (c *Controller) handleIntent(ctx context.Context, s *session.Session, in intent.Intent) Response {
	switch in {
	case intent.Greeting:
		s.Reset(false)
		return reply("Здравствуйте! Я помогу вам организовать путешествие! 🚂\nКуда хотите отправиться? (Москва, Санкт-Петербург, Сочи или другой город)", UIMain)

	case intent.Destination:
		s.SetAwaiting(session.AwaitDestinationSelection)
		return reply("Куда хотите отправиться? (Москва, Санкт-Петербург, Сочи или другой город)", UIMain)

	case intent.DestinationMoscow:
		return c.setDestination(s, "Москва")
	case intent.DestinationSpb:
		return c.setDestination(s, "Санкт-Петербург")
	case intent.DestinationSochi:
		return c.setDestination(s, "Сочи")

	case intent.Date:
		s.SetAwaiting(session.AwaitDateSelection)
		return reply("Когда планируете поездку? (например: 'завтра', 'на выходные', '25 декабря')", UIMain)

	case intent.DateTomorrow:
		tomorrow := c.now().AddDate(0, 0, 1).Format("02.01.2006")
		return c.setDateText(s, "завтра ("+tomorrow+")")

	case intent.DateWeekend:
		return c.setDateText(s, "на выходные ("+c.nextFriday().Format("02.01.2006")+")")

	case intent.ScenarioInterest:
		return c.startScenarioSelection(s)

	case intent.PromoInterest:
		s.SetAwaiting(session.AwaitPromoSelection)
		return reply(c.formatPromotions(), UIPromos)

	case intent.ViewCart:
		return c.ShowCart(s)

	case intent.ViewTicket:
		return c.ShowTicket(s)

	case intent.OrderHistory:
		return c.ShowOrders(ctx, s)

	case intent.ConfirmBooking:
		return c.ProcessOrder(s)

	case intent.Help:
		return reply(helpText, UIHelp)
	}
	return c.fallback(s)
}

// fallback answers unrecognized free text outside any wait-state.
func (c *Controller) fallback(s *session.Session) Response {
	if s.Cart.Len() > 0 {
		sum := s.Cart.Summarize(c.pricing.Total(&s.Cart))
		return reply(formatCartHint(sum), UICart)
	}
	return reply("Я вас не понял. 🤔 Напишите, куда и когда хотите поехать, или 'помощь' для списка команд.", UIMain)
}

// nextFriday finds the nearest Friday strictly in the future.
func (c *Controller) nextFriday() time.Time {
	today := c.now()
	days := (int(time.Friday) - int(today.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return today.AddDate(0, 0, days)
}
