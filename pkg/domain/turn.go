package domain

// Turn is the result of processing one inbound message.
//
// Session is the state as produced by the turn. On the turn that confirms a booking it
// still shows StepBookingCompleted, while the stored session has already been reset.
type Turn struct {
	UserID   string         `json:"userId"`
	Response string         `json:"response"`
	Intent   Intent         `json:"intent"`
	Entities Entities       `json:"entities"`
	Session  SessionState   `json:"session"`
	Booking  *BookingRecord `json:"booking"`
}

// Confirmed reports whether the turn produced a booking confirmation.
func (t *Turn) Confirmed() bool {
	return t.Booking != nil && t.Session.Step == StepBookingCompleted && t.Session.BookingSuccess
}
