// Package catalog holds the static reference data the bot sells from:
// destinations, products, promotions and scenario bundles. The catalog is
// read-only during a session.
package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Product is an add-on service that can be bundled into a scenario.
type Product struct {
	ID          int     `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	BasePrice   float64 `yaml:"base_price"`
	Category    string  `yaml:"category"`
}

// Promotion discount types.
const (
	DiscountPercent = "percent"
)

// Promotion is a coupon-style discount that can be held in a cart.
type Promotion struct {
	ID            int     `yaml:"id"`
	Short         string  `yaml:"short"`
	Full          string  `yaml:"full"`
	DiscountType  string  `yaml:"discount_type"`
	DiscountValue float64 `yaml:"discount_value"`
}

// Scenario is a named travel bundle: a set of products sold together with
// a package discount.
type Scenario struct {
	ID                  string   `yaml:"id"`
	Name                string   `yaml:"name"`
	Description         string   `yaml:"description"`
	DiscountPercent     float64  `yaml:"discount_percent"`
	ProductIDs          []int    `yaml:"products"`
	RecommendedServices []string `yaml:"recommended_services"`
}

// Destination is a known travel destination with its input synonyms.
type Destination struct {
	Name     string   `yaml:"name"`
	Synonyms []string `yaml:"synonyms"`
}

// Catalog is the full reference data set.
type Catalog struct {
	Destinations []Destination `yaml:"destinations"`
	Products     []Product     `yaml:"products"`
	Promotions   []Promotion   `yaml:"promotions"`
	Scenarios    []Scenario    `yaml:"scenarios"`
}

// Load reads a catalog from a YAML file. ${ENV_VAR} placeholders are
// expanded the same way the config loader does it.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	data = []byte(os.ExpandEnv(string(data)))

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Scenarios) == 0 {
		return fmt.Errorf("catalog has no scenarios")
	}
	seen := make(map[string]struct{}, len(c.Scenarios))
	for _, s := range c.Scenarios {
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("duplicate scenario id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}

// Product returns the product with the given id.
func (c *Catalog) Product(id int) (*Product, bool) {
	for i := range c.Products {
		if c.Products[i].ID == id {
			return &c.Products[i], true
		}
	}
	return nil, false
}

// Promotion returns the promotion with the given id.
func (c *Catalog) Promotion(id int) (*Promotion, bool) {
	for i := range c.Promotions {
		if c.Promotions[i].ID == id {
			return &c.Promotions[i], true
		}
	}
	return nil, false
}

// PromotionByIndex returns the n-th promotion, 1-based, in listing order.
func (c *Catalog) PromotionByIndex(n int) (*Promotion, bool) {
	if n < 1 || n > len(c.Promotions) {
		return nil, false
	}
	return &c.Promotions[n-1], true
}

// Scenario returns the scenario with the given id.
func (c *Catalog) Scenario(id string) (*Scenario, bool) {
	for i := range c.Scenarios {
		if c.Scenarios[i].ID == id {
			return &c.Scenarios[i], true
		}
	}
	return nil, false
}

// ScenarioByIndex returns the n-th scenario, 1-based, in listing order.
func (c *Catalog) ScenarioByIndex(n int) (*Scenario, bool) {
	if n < 1 || n > len(c.Scenarios) {
		return nil, false
	}
	return &c.Scenarios[n-1], true
}

// ScenarioByName matches user input against scenario names. The scenario
// name has to appear in the input as a substring, case-insensitively.
func (c *Catalog) ScenarioByName(input string) (*Scenario, bool) {
	lower := strings.ToLower(strings.TrimSpace(input))
	if lower == "" {
		return nil, false
	}
	for i := range c.Scenarios {
		if strings.Contains(lower, strings.ToLower(c.Scenarios[i].Name)) {
			return &c.Scenarios[i], true
		}
	}
	return nil, false
}

// ResolveDestination matches free text against the synonym table. Longer
// synonyms are tried first so "санкт-петербург" wins over "спб". Unmatched
// text is accepted verbatim as a custom destination.
func (c *Catalog) ResolveDestination(input string) string {
	trimmed := strings.TrimSpace(input)
	lower := strings.ToLower(trimmed)

	type candidate struct {
		synonym string
		name    string
	}
	var cands []candidate
	for _, d := range c.Destinations {
		cands = append(cands, candidate{strings.ToLower(d.Name), d.Name})
		for _, s := range d.Synonyms {
			cands = append(cands, candidate{strings.ToLower(s), d.Name})
		}
	}
	sort.Slice(cands, func(i, j int) bool {
		return len(cands[i].synonym) > len(cands[j].synonym)
	})
	for _, cand := range cands {
		if strings.Contains(lower, cand.synonym) {
			return cand.name
		}
	}
	return trimmed
}
