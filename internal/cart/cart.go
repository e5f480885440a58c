// Package cart implements the shopping cart: an ordered collection of
// typed line items (ticket, product, promotion) with dedup rules.
package cart

// Kind tags a cart line item.
type Kind string

const (
	KindTicket    Kind = "ticket"
	KindProduct   Kind = "product"
	KindPromotion Kind = "promotion"
)

// Item is a single cart line.
type Item struct {
	Kind    Kind
	ID      string
	Price   float64
	Payload any
}

// Cart holds line items in insertion order plus the id of the scenario
// whose discount currently applies. The zero value is an empty cart.
type Cart struct {
	items      []Item
	scenarioID string
}

// Add appends an item. Returns false without mutation when an item of the
// same (kind,id) already exists. Promotions are deduplicated by id just
// like products to avoid applying the same discount twice. A second
// ticket is rejected regardless of id: a cart holds at most one.
func (c *Cart) Add(kind Kind, id string, price float64, payload any) bool {
	if kind == KindTicket && len(c.ItemsOf(KindTicket)) > 0 {
		return false
	}
	for _, it := range c.items {
		if it.Kind == kind && it.ID == id {
			return false
		}
	}
	c.items = append(c.items, Item{Kind: kind, ID: id, Price: price, Payload: payload})
	return true
}

// Remove deletes the item with the given (kind,id). Returns false if not
// found.
func (c *Cart) Remove(kind Kind, id string) bool {
	for i, it := range c.items {
		if it.Kind == kind && it.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAll deletes every item of the given kind and reports how many
// were removed.
func (c *Cart) RemoveAll(kind Kind) int {
	kept := c.items[:0]
	removed := 0
	for _, it := range c.items {
		if it.Kind == kind {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	c.items = kept
	return removed
}

// Clear removes tickets and products. Promotions are removed only when
// preservePromotions is false; the active scenario resets together with
// the promotions (a full reset).
func (c *Cart) Clear(preservePromotions bool) {
	c.RemoveAll(KindTicket)
	c.RemoveAll(KindProduct)
	if !preservePromotions {
		c.RemoveAll(KindPromotion)
		c.scenarioID = ""
	}
}

// SetScenario records which scenario's discount applies to the cart.
func (c *Cart) SetScenario(id string) { c.scenarioID = id }

// ScenarioID returns the active scenario id, empty when none.
func (c *Cart) ScenarioID() string { return c.scenarioID }

// Items returns the line items in insertion order.
func (c *Cart) Items() []Item { return c.items }

// ItemsOf returns the line items of one kind, in insertion order.
func (c *Cart) ItemsOf(kind Kind) []Item {
	var out []Item
	for _, it := range c.items {
		if it.Kind == kind {
			out = append(out, it)
		}
	}
	return out
}

// Len returns the number of line items of every kind.
func (c *Cart) Len() int { return len(c.items) }

// Summary is a grouped view of the cart.
type Summary struct {
	Tickets    []Item
	Products   []Item
	Promotions []Item
	TotalPrice float64
	// ItemCount counts tickets and products only: promotions are price
	// modifiers, not purchasable units.
	ItemCount int
}

// Summarize groups the items and records the supplied total. The total
// is computed by the pricing engine, which needs catalog access this
// package deliberately does not have.
func (c *Cart) Summarize(total float64) Summary {
	s := Summary{
		Tickets:    c.ItemsOf(KindTicket),
		Products:   c.ItemsOf(KindProduct),
		Promotions: c.ItemsOf(KindPromotion),
		TotalPrice: total,
	}
	s.ItemCount = len(s.Tickets) + len(s.Products)
	return s
}
