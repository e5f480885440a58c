package dialog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"poezdka/internal/cart"
	"poezdka/internal/catalog"
	"poezdka/internal/database"
	"poezdka/internal/metrics"
	"poezdka/internal/models"
	"poezdka/internal/session"
	"poezdka/internal/ticket"
)

var (
	yesWords = map[string]bool{
		"да": true, "yes": true, "ок": true, "подтверждаю": true,
		"согласен": true, "согласна": true, "добавить": true,
	}
	noWords = map[string]bool{
		"нет": true, "no": true, "не": true, "отмена": true,
	}
)

func isYes(text string) bool { return yesWords[strings.ToLower(strings.TrimSpace(text))] }
func isNo(text string) bool  { return noWords[strings.ToLower(strings.TrimSpace(text))] }

func (c *Controller) setDestination(s *session.Session, input string) Response {
	s.Destination = c.catalog.ResolveDestination(input)
	if s.DateText == "" {
		s.SetAwaiting(session.AwaitDateSelection)
		return reply("Отлично, едем в "+s.Destination+"! 🚂\nКогда планируете поездку? (например: 'завтра', 'на выходные', '25 декабря')", UIMain)
	}
	return c.startScenarioSelection(s)
}

func (c *Controller) setDateText(s *session.Session, dateText string) Response {
	s.DateText = dateText
	if s.Destination == "" {
		s.SetAwaiting(session.AwaitDestinationSelection)
		return reply("Записал дату: "+dateText+" 📅\nКуда хотите отправиться?", UIMain)
	}
	return c.startScenarioSelection(s)
}

func (c *Controller) handleDestinationSelection(s *session.Session, text string) Response {
	return c.setDestination(s, text)
}

func (c *Controller) handleDateSelection(s *session.Session, text string) Response {
	return c.setDateText(s, strings.TrimSpace(text))
}

// startScenarioSelection lists the scenario packages, or explains what
// is still missing when the trip context is incomplete.
func (c *Controller) startScenarioSelection(s *session.Session) Response {
	if s.Destination == "" || s.DateText == "" {
		var missing []string
		if s.Destination == "" {
			missing = append(missing, "куда едем")
		}
		if s.DateText == "" {
			missing = append(missing, "когда едем")
		}
		return reply("Чтобы подобрать сценарий, сначала расскажите: "+strings.Join(missing, " и ")+". 🗺️", UIMain)
	}
	s.SetAwaiting(session.AwaitScenarioSelection)
	return reply(c.formatScenarios(s), UIScenarios)
}

func (c *Controller) handleScenarioSelection(s *session.Session, text string) Response {
	text = strings.TrimSpace(text)

	var (
		sc *catalog.Scenario
		ok bool
	)
	if n, err := strconv.Atoi(text); err == nil {
		sc, ok = c.catalog.ScenarioByIndex(n)
	} else {
		sc, ok = c.catalog.ScenarioByName(text)
	}
	if !ok {
		return reply("Не нашел такой сценарий. Введите номер (1-"+strconv.Itoa(len(c.catalog.Scenarios))+") или название.", UIScenarios)
	}
	return c.applyScenario(s, sc)
}

// applyScenario replaces any previous scenario content with the chosen
// package: a generated ticket plus the package's services. Promotions
// already in the cart survive the swap.
func (c *Controller) applyScenario(s *session.Session, sc *catalog.Scenario) Response {
	s.Cart.Clear(true)
	s.Cart.SetScenario(sc.ID)

	bn := s.BookingNumber(c.tickets.BookingNumber)
	t, err := c.tickets.Generate(s.Destination, s.DateText, bn, s.PassengerName)
	if err != nil {
		c.logger.Error().Err(err).Str("scenario", sc.ID).Msg("ticket generation failed")
		return reply("❌ Не удалось оформить билет. Попробуйте еще раз.", UIMain)
	}
	s.Cart.Add(cart.KindTicket, "ticket_"+bn, t.Price, t)

	for _, pid := range sc.ProductIDs {
		price := 0.0
		name := "Услуга #" + strconv.Itoa(pid)
		if p, ok := c.catalog.Product(pid); ok {
			price = p.BasePrice
			name = p.Name
		}
		s.Cart.Add(cart.KindProduct, strconv.Itoa(pid), price, name)
	}

	metrics.IncScenarioApplied(sc.ID)
	s.SetAwaiting(session.AwaitScenarioConfirmation)

	total := c.pricing.Total(&s.Cart)
	return reply(formatScenarioApplied(sc, t, total), UIConfirm)
}

func (c *Controller) handleScenarioConfirmation(s *session.Session, text string) Response {
	switch {
	case isYes(text):
		s.SetAwaiting(session.AwaitNone)
		sum := s.Cart.Summarize(c.pricing.Total(&s.Cart))
		return reply("Отлично, сценарий сохранен! ✅\n\n"+formatCartHint(sum), UICart)
	case isNo(text):
		s.Cart.Clear(true)
		s.Cart.SetScenario("")
		s.SetAwaiting(session.AwaitNone)
		return reply("Хорошо, подберем другой вариант. Напишите 'сценарии', чтобы посмотреть список еще раз.", UIMain)
	default:
		return reply("Оставляем этот сценарий? (да/нет)", UIConfirm)
	}
}

func (c *Controller) handlePromoSelection(s *session.Session, text string) Response {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return reply("Введите номер акции от 1 до "+strconv.Itoa(len(c.catalog.Promotions))+".", UIPromos)
	}
	promo, ok := c.catalog.PromotionByIndex(n)
	if !ok {
		return reply("Введите номер акции от 1 до "+strconv.Itoa(len(c.catalog.Promotions))+".", UIPromos)
	}

	s.SetAwaiting(session.AwaitNone)
	if !s.Cart.Add(cart.KindPromotion, strconv.Itoa(promo.ID), 0, promo) {
		return reply("Эта акция уже применена к вашему заказу. 😉", UICart)
	}
	metrics.IncPromoApplied()

	text = fmt.Sprintf("🎉 Акция применена: %s (скидка %.0f%%)", promo.Short, promo.DiscountValue)
	if s.Cart.Len() > 0 {
		text += "\nТекущая сумма заказа: " + formatPrice(c.pricing.Total(&s.Cart)) + " руб."
	}
	return reply(text, UICart)
}

// ProcessOrder starts checkout: it refuses without a ticket, refuses an
// empty cart, and otherwise shows the order and asks for confirmation.
func (c *Controller) ProcessOrder(s *session.Session) Response {
	if s.Cart.Len() == 0 {
		return reply("Корзина пуста! Сначала добавьте товары. 🛒", UIMain)
	}
	if len(s.Cart.ItemsOf(cart.KindTicket)) == 0 {
		return reply("Для оформления заказа нужен билет! Выберите сценарий путешествия. 🎫", UIScenarios)
	}
	s.SetAwaiting(session.AwaitOrderConfirmation)
	sum := s.Cart.Summarize(c.pricing.Total(&s.Cart))
	return reply(formatOrderPreview(s, sum)+"\n\nПодтвердить заказ? (да/нет)", UIConfirm)
}

func (c *Controller) handleOrderConfirmation(ctx context.Context, s *session.Session, text string) Response {
	switch {
	case isYes(text):
		return c.commitOrder(ctx, s)
	case isNo(text):
		s.SetAwaiting(session.AwaitNone)
		return reply("Заказ отменен. Корзина сохранена, вы можете изменить ее и оформить заказ позже. 🛒", UICart)
	default:
		return reply("Подтвердить заказ? (да/нет)", UIConfirm)
	}
}

// commitOrder persists the order and only then clears the dialog state.
// On a storage failure the cart and the confirmation wait-state are
// left intact so the user can simply answer again.
func (c *Controller) commitOrder(ctx context.Context, s *session.Session) Response {
	order := c.buildOrder(s)

	if _, err := c.store.SaveOrder(ctx, order); err != nil {
		metrics.IncOrderCommitFailed()
		if errors.Is(err, database.ErrDuplicateBookingNumber) {
			c.logger.Warn().Str("booking_number", order.BookingNumber).Msg("duplicate booking number on commit")
		} else {
			c.logger.Error().Err(err).Int64("user_id", s.UserID).Msg("order commit failed")
		}
		return reply("❌ Произошла ошибка при оформлении заказа. Попробуйте подтвердить еще раз.", UIConfirm)
	}

	if order.ScenarioName != "" {
		if err := c.store.SaveScenarioUsage(ctx, s.UserID, s.Cart.ScenarioID(), order.BookingNumber); err != nil {
			c.logger.Warn().Err(err).Msg("scenario usage save failed")
		}
	}
	for _, it := range s.Cart.ItemsOf(cart.KindPromotion) {
		if id, err := strconv.Atoi(it.ID); err == nil {
			if err := c.store.SavePromoUsage(ctx, s.UserID, id, order.BookingNumber); err != nil {
				c.logger.Warn().Err(err).Msg("promo usage save failed")
			}
		}
	}

	metrics.IncOrderConfirmed()
	c.logger.Info().
		Int64("user_id", s.UserID).
		Str("booking_number", order.BookingNumber).
		Float64("total", order.TotalPrice).
		Msg("order confirmed")

	var t *ticket.Ticket
	if items := s.Cart.ItemsOf(cart.KindTicket); len(items) > 0 {
		t, _ = items[0].Payload.(*ticket.Ticket)
	}
	text := formatOrderConfirmed(order, t)

	s.Reset(true)
	return Response{Text: text, UI: UIMain, Order: order}
}

// buildOrder snapshots the session into a persistable order.
func (c *Controller) buildOrder(s *session.Session) *models.Order {
	scenarioName := ""
	if sc, ok := c.catalog.Scenario(s.Cart.ScenarioID()); ok {
		scenarioName = sc.Name
	}

	order := &models.Order{
		UserID:        s.UserID,
		BookingNumber: s.BookingNumber(c.tickets.BookingNumber),
		Destination:   s.Destination,
		TravelDate:    s.DateText,
		ScenarioName:  scenarioName,
		TotalPrice:    c.pricing.Total(&s.Cart),
		Status:        models.OrderStatusConfirmed,
		CreatedAt:     c.now(),
	}
	for _, it := range s.Cart.Items() {
		order.Items = append(order.Items, models.OrderItem{
			Kind:   string(it.Kind),
			ItemID: it.ID,
			Name:   itemDisplayName(it),
			Price:  it.Price,
		})
	}
	return order
}
