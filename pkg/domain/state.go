package domain

// SessionState is the per-user workflow position plus the booking data accumulated so far.
// Workflow steps treat it as a value: every transition returns a new SessionState.
type SessionState struct {
	Step           Step           `json:"step"`
	Accommodation  *Accommodation `json:"accommodation,omitempty"`
	Country        string         `json:"country,omitempty"`
	City           string         `json:"city,omitempty"`
	Services       []string       `json:"services,omitempty"`
	People         *int           `json:"people,omitempty"`
	TotalPrice     *float64       `json:"totalPrice,omitempty"`
	BookingSuccess bool           `json:"bookingSuccess,omitempty"`
	Booking        *BookingRecord `json:"booking,omitempty"`
}

// NewSessionState creates a clean state at StepInitial.
func NewSessionState() SessionState {
	return SessionState{Step: StepInitial}
}

// Known returns the entity values currently held by the state.
// They are the fallback for fields a message does not supply.
func (s SessionState) Known() Entities {
	return Entities{
		Accommodation: s.Accommodation,
		Country:       s.Country,
		City:          s.City,
		People:        s.People,
	}
}

// Clone returns a copy that shares no mutable slices with s.
func (s SessionState) Clone() SessionState {
	out := s
	if s.Services != nil {
		out.Services = append([]string(nil), s.Services...)
	}
	return out
}

// Reset returns a state back at StepInitial with every booking field cleared.
func (s SessionState) Reset() SessionState {
	return NewSessionState()
}

// WithStep returns a copy of s positioned at step.
func (s SessionState) WithStep(step Step) SessionState {
	out := s.Clone()
	out.Step = step
	return out
}
