package dialog

import (
	"context"

	"poezdka/internal/cart"
	"poezdka/internal/session"
	"poezdka/internal/ticket"
)

// orderHistoryLimit bounds the "мои заказы" listing.
const orderHistoryLimit = 5

// ShowCart renders the cart contents with the current total.
func (c *Controller) ShowCart(s *session.Session) Response {
	if s.Cart.Len() == 0 {
		return reply("🛒 Ваша корзина пуста.\nВыберите сценарий путешествия, чтобы добавить билет и услуги!", UIMain)
	}
	sum := s.Cart.Summarize(c.pricing.Total(&s.Cart))
	return reply(c.formatCart(s, sum), UICart)
}

// ShowTicket renders the e-ticket held in the cart.
func (c *Controller) ShowTicket(s *session.Session) Response {
	items := s.Cart.ItemsOf(cart.KindTicket)
	if len(items) == 0 {
		return reply("У вас пока нет билета. Выберите сценарий путешествия! 🎫", UIScenarios)
	}
	t, ok := items[0].Payload.(*ticket.Ticket)
	if !ok {
		return reply("У вас пока нет билета. Выберите сценарий путешествия! 🎫", UIScenarios)
	}
	return reply(ticket.Format(t), UITicket)
}

// ShowOrders renders the user's confirmed order history, newest first.
func (c *Controller) ShowOrders(ctx context.Context, s *session.Session) Response {
	orders, err := c.store.OrdersForUser(ctx, s.UserID, orderHistoryLimit)
	if err != nil {
		c.logger.Error().Err(err).Int64("user_id", s.UserID).Msg("order history lookup failed")
		return reply("❌ Не удалось загрузить историю заказов. Попробуйте позже.", UIMain)
	}
	if len(orders) == 0 {
		return reply("У вас пока нет заказов. Самое время спланировать поездку! 🚂", UIMain)
	}
	return reply(formatOrderHistory(orders), UIMain)
}
