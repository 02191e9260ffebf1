package domain

// Step is the position of a user in the dialogue workflow.
type Step string

const (
	StepInitial                Step = "initial"
	StepSelectHotel            Step = "select_hotel"
	StepSelectServices         Step = "select_services"
	StepSelectPeople           Step = "select_people"
	StepConfirmBooking         Step = "confirm_booking"
	StepBookingCompleted       Step = "booking_completed"
	StepRecommendAccommodation Step = "recommend_accommodation"

	// StepCancelBooking is part of the step vocabulary but no transition assigns it.
	// Cancellation is an immediate reset to StepInitial.
	StepCancelBooking Step = "cancel_booking"
)

// Steps lists every declared step in workflow order.
var Steps = []Step{
	StepInitial,
	StepSelectHotel,
	StepSelectServices,
	StepSelectPeople,
	StepConfirmBooking,
	StepBookingCompleted,
	StepRecommendAccommodation,
	StepCancelBooking,
}

// Valid reports whether s is a declared step.
func (s Step) Valid() bool {
	switch s {
	case StepInitial, StepSelectHotel, StepSelectServices, StepSelectPeople,
		StepConfirmBooking, StepBookingCompleted, StepRecommendAccommodation, StepCancelBooking:
		return true
	}
	return false
}

// IsBooking reports whether s is one of the active booking steps
// (hotel, services, people or confirmation selection).
func (s Step) IsBooking() bool {
	switch s {
	case StepSelectHotel, StepSelectServices, StepSelectPeople, StepConfirmBooking:
		return true
	}
	return false
}

func (s Step) String() string {
	return string(s)
}
