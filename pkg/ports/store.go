package ports

import (
	"context"

	"github.com/aretw0/concierge/pkg/domain"
)

// SessionStore defines the interface for persisting per-user sessions.
type SessionStore interface {
	// Save persists the session of a user.
	Save(ctx context.Context, userID string, session *domain.Session) error

	// Load retrieves the session of a user.
	// Returns domain.ErrSessionNotFound if the user has no session.
	Load(ctx context.Context, userID string) (*domain.Session, error)

	// Delete removes the session of a user. Deleting a missing session is not an error.
	Delete(ctx context.Context, userID string) error

	// List returns the ids of all users with a stored session.
	List(ctx context.Context) ([]string, error)
}
