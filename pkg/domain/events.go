package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTurn             EventType = "turn"
	EventBookingConfirmed EventType = "booking_confirmed"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	UserID    string    `json:"user_id"`
}

// TurnEvent describes one processed message.
type TurnEvent struct {
	EventBase
	Intent IntentKind `json:"intent"`
	From   Step       `json:"from"`
	To     Step       `json:"to"`
	Stored Step       `json:"stored"`
}

// BookingEvent is emitted when a booking is confirmed.
type BookingEvent struct {
	EventBase
	Booking BookingRecord `json:"booking"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnTurn             func(context.Context, *TurnEvent)
	OnBookingConfirmed func(context.Context, *BookingEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnTurn:             chainTurn(h.OnTurn, other.OnTurn),
		OnBookingConfirmed: chainBooking(h.OnBookingConfirmed, other.OnBookingConfirmed),
	}
}

func chainTurn(a, b func(context.Context, *TurnEvent)) func(context.Context, *TurnEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *TurnEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainBooking(a, b func(context.Context, *BookingEvent)) func(context.Context, *BookingEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *BookingEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
