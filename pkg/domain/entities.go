package domain

// Entities are the structured values extracted from a single message.
// Absent fields are filled from the prior session state (carry-forward),
// except Services and Confirm which only reflect the current message.
type Entities struct {
	Accommodation *Accommodation `json:"accommodation,omitempty"`
	Country       string         `json:"country,omitempty"`
	City          string         `json:"city,omitempty"`
	Services      []string       `json:"services,omitempty"`
	People        *int           `json:"people,omitempty"`
	Confirm       bool           `json:"confirm"`
}
