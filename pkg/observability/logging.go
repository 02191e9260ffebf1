package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/concierge/pkg/domain"
)

// LoggingHooks returns lifecycle hooks that emit one structured line per event.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurn: func(ctx context.Context, e *domain.TurnEvent) {
			logger.DebugContext(ctx, "turn",
				"user_id", e.UserID,
				"intent", e.Intent,
				"from", e.From,
				"to", e.To,
				"stored", e.Stored,
			)
		},
		OnBookingConfirmed: func(ctx context.Context, e *domain.BookingEvent) {
			logger.InfoContext(ctx, "booking_confirmed",
				"user_id", e.UserID,
				"reference", e.Booking.Reference,
				"hotel", e.Booking.HotelName,
				"people", e.Booking.People,
				"total_price", e.Booking.TotalPrice,
			)
		},
	}
}
