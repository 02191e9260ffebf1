// Package dialogue implements the booking and recommendation state machine.
//
// Dispatch is a pure function of (intent, entities, prior state): it never mutates
// its inputs and always returns a fresh SessionState.
package dialogue

import (
	"github.com/aretw0/concierge/pkg/catalog"
	"github.com/aretw0/concierge/pkg/domain"
)

// Outcome is the result of one dispatch.
type Outcome struct {
	Response string
	Next     domain.SessionState

	// Booking is set only on the turn that confirms a booking.
	Booking *domain.BookingRecord
}

// Machine evaluates turns against a catalog.
type Machine struct {
	catalog *catalog.Catalog
}

// New creates a state machine bound to a catalog.
func New(c *catalog.Catalog) *Machine {
	return &Machine{catalog: c}
}

// Dispatch computes the response and next state for a turn.
func (m *Machine) Dispatch(intent domain.Intent, ent domain.Entities, prior domain.SessionState) Outcome {
	switch intent.Kind {
	case domain.IntentBook:
		if prior.Step == domain.StepInitial {
			return Outcome{Response: intent.Response, Next: prior.WithStep(domain.StepSelectHotel)}
		}
		if prior.Step.IsBooking() {
			return m.book(ent, prior)
		}
		return apology(prior)

	case domain.IntentRecommend:
		return Outcome{Response: intent.Response, Next: prior.WithStep(domain.StepRecommendAccommodation)}

	case domain.IntentCancel:
		return Outcome{Response: intent.Response, Next: prior.Reset()}

	case domain.IntentOther, domain.IntentUnknown:
		return m.fallback(ent, prior)
	}
	return apology(prior)
}

// fallback handles turns without a workflow intent: the current step decides.
func (m *Machine) fallback(ent domain.Entities, prior domain.SessionState) Outcome {
	switch prior.Step {
	case domain.StepRecommendAccommodation:
		return m.recommend(ent, prior)
	case domain.StepSelectHotel, domain.StepSelectServices, domain.StepSelectPeople, domain.StepConfirmBooking:
		return m.book(ent, prior)
	case domain.StepInitial:
		return Outcome{Response: domain.TextGreeting, Next: prior.Clone()}
	case domain.StepBookingCompleted:
		return Outcome{Response: domain.TextGreeting, Next: prior.Reset()}
	case domain.StepCancelBooking:
		return apology(prior)
	}
	return apology(prior)
}

// Finalize returns the state to store after a turn. A completed booking is visible in
// the outcome for exactly one response and never persists.
func Finalize(o Outcome) domain.SessionState {
	if o.Next.Step == domain.StepBookingCompleted {
		return o.Next.Reset()
	}
	return o.Next
}

func apology(prior domain.SessionState) Outcome {
	return Outcome{Response: domain.TextApology, Next: prior.Clone()}
}
