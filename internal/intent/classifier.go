// Package intent is a best-effort keyword intent classifier. It scores
// input against a fixed keyword table and returns no intent when nothing
// scores above zero; the dialog layer treats it as an external
// collaborator behind a small interface.
package intent

import "strings"

// Intent is a recognized user intention tag.
type Intent string

const (
	Greeting          Intent = "greeting"
	Destination       Intent = "destination"
	DestinationMoscow Intent = "destination_moscow"
	DestinationSpb    Intent = "destination_spb"
	DestinationSochi  Intent = "destination_sochi"
	Date              Intent = "date"
	DateTomorrow      Intent = "date_tomorrow"
	DateWeekend       Intent = "date_weekend"
	ScenarioInterest  Intent = "scenario_interest"
	PromoInterest     Intent = "promo_interest"
	ViewCart          Intent = "view_cart"
	ViewTicket        Intent = "view_ticket"
	OrderHistory      Intent = "order_history"
	ConfirmBooking    Intent = "confirm_booking"
	Help              Intent = "help"
)

// examples are matched as whole substrings first; their individual words
// feed the fallback keyword scoring.
var examples = map[Intent][]string{
	Greeting:          {"привет", "здравствуйте", "добрый день", "добрый вечер", "хай"},
	DestinationMoscow: {"москва", "в москву", "мск"},
	DestinationSpb:    {"питер", "спб", "петербург", "санкт-петербург"},
	DestinationSochi:  {"сочи", "в сочи"},
	Destination:       {"поехать", "путешествие", "поездка", "направление", "куда"},
	DateTomorrow:      {"завтра"},
	DateWeekend:       {"на выходные", "выходные", "в субботу", "в воскресенье"},
	Date:              {"дата", "когда", "какого числа"},
	ScenarioInterest:  {"сценарии", "типы поездок", "варианты поездки"},
	PromoInterest:     {"акции", "скидки", "промо", "промокод"},
	ViewCart:          {"корзина", "моя корзина", "посмотреть корзину"},
	ViewTicket:        {"мой билет", "билет покажи"},
	OrderHistory:      {"мои заказы", "история заказов", "мои бронирования"},
	ConfirmBooking:    {"оформить", "заказ", "купить", "забронировать", "бронь"},
	Help:              {"помощь", "справка", "что ты умеешь"},
}

// ordered fixes iteration order: more specific intents win exact-substring
// ties over generic ones.
var ordered = []Intent{
	DateTomorrow, DateWeekend,
	DestinationMoscow, DestinationSpb, DestinationSochi,
	ScenarioInterest, PromoInterest, ViewCart, ViewTicket, OrderHistory,
	ConfirmBooking, Help, Greeting, Destination, Date,
}

// Classifier matches text against the keyword table.
type Classifier struct {
	keywords map[Intent][]string
}

// NewClassifier builds a classifier from the built-in table.
func NewClassifier() *Classifier {
	kws := make(map[Intent][]string, len(examples))
	for in, exs := range examples {
		seen := make(map[string]struct{})
		for _, ex := range exs {
			for _, w := range strings.Fields(strings.ToLower(ex)) {
				if _, ok := seen[w]; ok {
					continue
				}
				seen[w] = struct{}{}
				kws[in] = append(kws[in], w)
			}
		}
	}
	return &Classifier{keywords: kws}
}

// Classify returns the best-matching intent, or false when no keyword
// scores above zero.
func (c *Classifier) Classify(text string) (Intent, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return "", false
	}

	for _, in := range ordered {
		for _, ex := range examples[in] {
			if strings.Contains(lower, ex) {
				return in, true
			}
		}
	}

	var best Intent
	bestScore := 0
	for _, in := range ordered {
		score := 0
		for _, kw := range c.keywords[in] {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = in
		}
	}
	if bestScore == 0 {
		return "", false
	}
	return best, true
}
