package dialog

import (
	"fmt"
	"math"
	"strings"

	"poezdka/internal/cart"
	"poezdka/internal/catalog"
	"poezdka/internal/models"
	"poezdka/internal/session"
	"poezdka/internal/ticket"
)

const helpText = `Я помогу спланировать поездку на поезде! 🚂

Что я умею:
• подобрать направление и дату поездки
• предложить сценарии путешествия (напишите 'сценарии')
• применить акции и скидки (напишите 'акции')
• показать корзину ('корзина') и билет ('мой билет')
• оформить заказ ('оформить заказ')
• показать историю ('мои заказы')

Сбросить диалог: 'сброс'. Очистить корзину: 'очистить корзину'.`

// estimateTicketPrice is the midpoint of the ticket price range, used
// for scenario estimates before a real ticket exists.
const estimateTicketPrice = (ticket.PriceMin + ticket.PriceMax) / 2

// formatPrice prints whole rubles without decimals and fractional ones
// with two.
func formatPrice(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func itemDisplayName(it cart.Item) string {
	switch p := it.Payload.(type) {
	case *ticket.Ticket:
		return "Билет: " + p.Destination + " (" + p.DateText + ")"
	case *catalog.Promotion:
		return p.Short
	case string:
		return p
	}
	return it.ID
}

// formatCartHint is the one-line cart status appended to other replies.
func formatCartHint(sum cart.Summary) string {
	return fmt.Sprintf("В корзине %d поз. на сумму %s руб. Напишите 'оформить заказ', когда будете готовы! 🛒",
		sum.ItemCount, formatPrice(sum.TotalPrice))
}

func (c *Controller) formatCart(s *session.Session, sum cart.Summary) string {
	var b strings.Builder
	b.WriteString("🛒 Ваша корзина:\n")

	for _, it := range sum.Tickets {
		fmt.Fprintf(&b, "🎫 %s - %s руб.\n", itemDisplayName(it), formatPrice(it.Price))
	}
	for _, it := range sum.Products {
		fmt.Fprintf(&b, "📦 %s - %s руб.\n", itemDisplayName(it), formatPrice(it.Price))
	}
	if sc, ok := c.catalog.Scenario(s.Cart.ScenarioID()); ok {
		fmt.Fprintf(&b, "🎯 Сценарий '%s': скидка %.0f%%\n", sc.Name, sc.DiscountPercent)
	}
	for _, it := range sum.Promotions {
		fmt.Fprintf(&b, "🏷️ %s\n", itemDisplayName(it))
	}

	fmt.Fprintf(&b, "\n💰 Итого: %s руб. (%d поз.)", formatPrice(sum.TotalPrice), sum.ItemCount)
	b.WriteString("\n\nНапишите 'оформить заказ' для оформления или 'очистить корзину'.")
	return b.String()
}

func (c *Controller) formatScenarios(s *session.Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎯 Сценарии путешествия в %s (%s):\n\n", s.Destination, s.DateText)

	for i, sc := range c.catalog.Scenarios {
		est := c.pricing.ScenarioEstimate(&c.catalog.Scenarios[i], estimateTicketPrice)
		fmt.Fprintf(&b, "%d. %s (скидка %.0f%%)\n   %s\n   Примерная стоимость: ~%s руб.\n",
			i+1, sc.Name, sc.DiscountPercent, sc.Description, formatPrice(est))
		if len(sc.RecommendedServices) > 0 {
			fmt.Fprintf(&b, "   Рекомендуем: %s\n", strings.Join(sc.RecommendedServices, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("Введите номер сценария или его название.")
	return b.String()
}

func (c *Controller) formatPromotions() string {
	var b strings.Builder
	b.WriteString("🎉 Действующие акции:\n\n")
	for i, p := range c.catalog.Promotions {
		fmt.Fprintf(&b, "%d. %s - скидка %.0f%%\n   %s\n\n", i+1, p.Short, p.DiscountValue, p.Full)
	}
	b.WriteString("Введите номер акции, чтобы применить ее к заказу.")
	return b.String()
}

func formatScenarioApplied(sc *catalog.Scenario, t *ticket.Ticket, total float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎯 Сценарий '%s' применен!\n\n", sc.Name)
	b.WriteString(ticket.Format(t))
	fmt.Fprintf(&b, "\n\n💰 Итого со скидкой %.0f%%: %s руб.", sc.DiscountPercent, formatPrice(total))
	b.WriteString("\n\nОставляем этот сценарий? (да/нет)")
	return b.String()
}

func formatOrderPreview(s *session.Session, sum cart.Summary) string {
	var b strings.Builder
	b.WriteString("📋 Ваш заказ:\n")
	fmt.Fprintf(&b, "📍 Направление: %s\n", s.Destination)
	fmt.Fprintf(&b, "📅 Дата: %s\n", s.DateText)
	fmt.Fprintf(&b, "👤 Пассажир: %s\n\n", s.PassengerName)

	for _, it := range sum.Tickets {
		fmt.Fprintf(&b, "🎫 %s - %s руб.\n", itemDisplayName(it), formatPrice(it.Price))
	}
	for _, it := range sum.Products {
		fmt.Fprintf(&b, "📦 %s - %s руб.\n", itemDisplayName(it), formatPrice(it.Price))
	}
	for _, it := range sum.Promotions {
		fmt.Fprintf(&b, "🏷️ %s\n", itemDisplayName(it))
	}

	fmt.Fprintf(&b, "\n💰 К оплате: %s руб.", formatPrice(sum.TotalPrice))
	return b.String()
}

func formatOrderConfirmed(o *models.Order, t *ticket.Ticket) string {
	var b strings.Builder
	b.WriteString("✅ Заказ оформлен! Спасибо за покупку!\n\n")
	b.WriteString(formatReceipt(o))
	if t != nil {
		b.WriteString("\n\n")
		b.WriteString(ticket.Format(t))
	}
	b.WriteString("\n\nХорошей поездки! 🚂")
	return b.String()
}

// formatReceipt renders the purchase receipt.
func formatReceipt(o *models.Order) string {
	var b strings.Builder
	b.WriteString("🧾 ЧЕК\n")
	b.WriteString("━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(&b, "Бронь: %s\n", o.BookingNumber)
	fmt.Fprintf(&b, "Дата оформления: %s\n", o.CreatedAt.Format("02.01.2006 15:04"))
	b.WriteString("━━━━━━━━━━━━━━━━━━━━━━\n")
	for _, it := range o.Items {
		if it.Kind == string(cart.KindPromotion) {
			fmt.Fprintf(&b, "%s\n", it.Name)
			continue
		}
		fmt.Fprintf(&b, "%s - %s руб.\n", it.Name, formatPrice(it.Price))
	}
	if o.ScenarioName != "" {
		fmt.Fprintf(&b, "Сценарий: %s\n", o.ScenarioName)
	}
	b.WriteString("━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(&b, "ИТОГО: %s руб.", formatPrice(o.TotalPrice))
	return b.String()
}

func formatOrderHistory(orders []models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📚 Ваши заказы (последние %d):\n\n", len(orders))
	for _, o := range orders {
		fmt.Fprintf(&b, "🎫 %s - %s (%s)\n   %s руб., %s\n\n",
			o.BookingNumber, o.Destination, o.TravelDate,
			formatPrice(o.TotalPrice), o.CreatedAt.Format("02.01.2006"))
	}
	b.WriteString("Чтобы спланировать новую поездку, напишите, куда хотите поехать!")
	return b.String()
}
