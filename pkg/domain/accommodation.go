package domain

import "strings"

// Accommodation is an offerable stay from the catalog. Immutable once loaded.
type Accommodation struct {
	Name     string   `json:"name" yaml:"name" mapstructure:"name"`
	Country  string   `json:"country" yaml:"country" mapstructure:"country"`
	City     string   `json:"city" yaml:"city" mapstructure:"city"`
	Price    float64  `json:"price" yaml:"price" mapstructure:"price"`
	Services []string `json:"services" yaml:"services" mapstructure:"services"`
}

// Offers reports whether the accommodation offers the given service (case-insensitive).
func (a Accommodation) Offers(service string) bool {
	service = strings.ToLower(strings.TrimSpace(service))
	for _, s := range a.Services {
		if strings.ToLower(s) == service {
			return true
		}
	}
	return false
}

// NormalizedServices returns the offered services lowercased, in catalog order.
func (a Accommodation) NormalizedServices() []string {
	out := make([]string, len(a.Services))
	for i, s := range a.Services {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}
