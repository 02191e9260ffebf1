package catalog

import (
	"fmt"
	"strings"

	"github.com/aretw0/concierge/pkg/domain"
)

// DefaultCurrency is used when a catalog does not declare one.
const DefaultCurrency = "$"

// Catalog is the immutable reference data of the engine.
type Catalog struct {
	currency       string
	accommodations []domain.Accommodation
	intents        []domain.IntentRule
	services       []string
	byName         map[string]int
}

// New builds a catalog from already-decoded values, normalizing and validating them.
func New(currency string, accommodations []domain.Accommodation, intents []domain.IntentRule, services []string) (*Catalog, error) {
	c := &Catalog{
		currency: strings.TrimSpace(currency),
		byName:   make(map[string]int, len(accommodations)),
	}
	if c.currency == "" {
		c.currency = DefaultCurrency
	}

	for i, a := range accommodations {
		a.Name = strings.TrimSpace(a.Name)
		a.Country = strings.TrimSpace(a.Country)
		a.City = strings.TrimSpace(a.City)
		a.Services = trimAll(a.Services)

		switch {
		case a.Name == "":
			return nil, fmt.Errorf("%w: accommodation #%d has no name", domain.ErrInvalidCatalog, i+1)
		case a.Country == "" || a.City == "":
			return nil, fmt.Errorf("%w: accommodation %q needs a country and a city", domain.ErrInvalidCatalog, a.Name)
		case a.Price <= 0:
			return nil, fmt.Errorf("%w: accommodation %q has a non-positive price %v", domain.ErrInvalidCatalog, a.Name, a.Price)
		}

		key := Normalize(a.Name)
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("%w: duplicate accommodation name %q", domain.ErrInvalidCatalog, a.Name)
		}
		c.byName[key] = len(c.accommodations)
		c.accommodations = append(c.accommodations, a)
	}

	for i, r := range intents {
		r.Name = strings.TrimSpace(r.Name)
		if r.Name == "" {
			return nil, fmt.Errorf("%w: intent rule #%d has no name", domain.ErrInvalidCatalog, i+1)
		}
		if r.Kind != "" && !r.Kind.Valid() {
			return nil, fmt.Errorf("%w: intent %q has unknown kind %q", domain.ErrInvalidCatalog, r.Name, r.Kind)
		}
		keywords := make([]string, 0, len(r.Keywords))
		for _, k := range r.Keywords {
			if k = Normalize(k); k != "" {
				keywords = append(keywords, k)
			}
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("%w: intent %q has no keywords", domain.ErrInvalidCatalog, r.Name)
		}
		r.Keywords = keywords
		c.intents = append(c.intents, r)
	}

	seen := make(map[string]bool, len(services))
	for _, s := range services {
		s = Normalize(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		c.services = append(c.services, s)
	}

	return c, nil
}

// Normalize lowercases and trims s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Currency returns the symbol used when quoting prices.
func (c *Catalog) Currency() string {
	return c.currency
}

// Accommodations returns the accommodations in catalog order.
func (c *Catalog) Accommodations() []domain.Accommodation {
	return append([]domain.Accommodation(nil), c.accommodations...)
}

// Intents returns the intent rules in evaluation order.
func (c *Catalog) Intents() []domain.IntentRule {
	return c.intents
}

// Services returns the normalized service vocabulary.
func (c *Catalog) Services() []string {
	return c.services
}

// Accommodation finds an accommodation by its exact name, ignoring case and
// surrounding whitespace.
func (c *Catalog) Accommodation(name string) (*domain.Accommodation, bool) {
	i, ok := c.byName[Normalize(name)]
	if !ok {
		return nil, false
	}
	a := c.accommodations[i]
	return &a, true
}

// Countries returns the case-folded country of every accommodation, in catalog order.
func (c *Catalog) Countries() []string {
	out := make([]string, len(c.accommodations))
	for i, a := range c.accommodations {
		out[i] = Normalize(a.Country)
	}
	return out
}

// Cities returns the case-folded city of every accommodation, in catalog order.
func (c *Catalog) Cities() []string {
	out := make([]string, len(c.accommodations))
	for i, a := range c.accommodations {
		out[i] = Normalize(a.City)
	}
	return out
}

// CitiesIn returns the distinct cities of a country in order of first appearance.
func (c *Catalog) CitiesIn(country string) []string {
	country = Normalize(country)
	seen := make(map[string]bool)
	var out []string
	for _, a := range c.accommodations {
		if Normalize(a.Country) != country || seen[a.City] {
			continue
		}
		seen[a.City] = true
		out = append(out, a.City)
	}
	return out
}

// InCity returns the accommodations of a city. A non-empty country narrows the match.
func (c *Catalog) InCity(city, country string) []domain.Accommodation {
	city, country = Normalize(city), Normalize(country)
	var out []domain.Accommodation
	for _, a := range c.accommodations {
		if Normalize(a.City) != city {
			continue
		}
		if country != "" && Normalize(a.Country) != country {
			continue
		}
		out = append(out, a)
	}
	return out
}

// InCountry returns the accommodations of a country in catalog order.
func (c *Catalog) InCountry(country string) []domain.Accommodation {
	country = Normalize(country)
	var out []domain.Accommodation
	for _, a := range c.accommodations {
		if Normalize(a.Country) == country {
			out = append(out, a)
		}
	}
	return out
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
