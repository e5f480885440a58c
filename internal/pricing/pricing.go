// Package pricing computes cart totals.
//
// The total is the base sum of every ticket and product line (promotions
// contribute zero to the base), reduced first by the active scenario's
// package discount and then by each held percentage promotion. Promotions
// compound multiplicatively in cart order rather than summing: the
// scenario discount reflects package pricing, promotions are end-of-cart
// coupons layered on top.
package pricing

import (
	"math"
	"strconv"

	"poezdka/internal/cart"
	"poezdka/internal/catalog"
)

// Engine computes totals against a fixed catalog.
type Engine struct {
	Catalog *catalog.Catalog
}

// New returns an engine bound to the given catalog.
func New(c *catalog.Catalog) *Engine {
	return &Engine{Catalog: c}
}

// Total computes the cart total. Dangling catalog ids (a promotion held
// in the cart that no longer exists in the catalog) are treated as a
// zero discount rather than an error: catalog lookups can legitimately
// miss during a partial scenario rollout.
func (e *Engine) Total(c *cart.Cart) float64 {
	total := 0.0
	for _, it := range c.ItemsOf(cart.KindTicket) {
		total += it.Price
	}
	for _, it := range c.ItemsOf(cart.KindProduct) {
		total += it.Price
	}

	if sid := c.ScenarioID(); sid != "" {
		if sc, ok := e.Catalog.Scenario(sid); ok {
			total *= 1 - sc.DiscountPercent/100
		}
	}

	for _, it := range c.ItemsOf(cart.KindPromotion) {
		id, err := strconv.Atoi(it.ID)
		if err != nil {
			continue
		}
		promo, ok := e.Catalog.Promotion(id)
		if !ok || promo.DiscountType != catalog.DiscountPercent {
			continue
		}
		total *= 1 - promo.DiscountValue/100
	}

	return Round(total)
}

// ScenarioEstimate prices a scenario bundle before a ticket exists: the
// sum of its product prices plus ticketPrice, with the scenario discount
// applied. Used for the scenario listing.
func (e *Engine) ScenarioEstimate(sc *catalog.Scenario, ticketPrice float64) float64 {
	total := ticketPrice
	for _, pid := range sc.ProductIDs {
		if p, ok := e.Catalog.Product(pid); ok {
			total += p.BasePrice
		}
	}
	return Round(total * (1 - sc.DiscountPercent/100))
}

// Round rounds to 2 decimal places, half away from zero. This is the
// single rounding policy for every displayed or persisted price.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}
