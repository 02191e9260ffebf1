package ports

import (
	"context"

	"github.com/aretw0/concierge/pkg/catalog"
	"github.com/aretw0/concierge/pkg/domain"
)

// Conversation is the engine surface used by transport adapters.
type Conversation interface {
	// ProcessTurn handles one inbound message of a user. Non-string messages yield a
	// fixed fallback reply instead of an error.
	ProcessTurn(ctx context.Context, userID string, message any) (*domain.Turn, error)

	// Session returns the stored session of a user.
	Session(ctx context.Context, userID string) (*domain.Session, error)

	// Reset discards the stored session of a user.
	Reset(ctx context.Context, userID string) error

	// Sessions lists the users with a stored session.
	Sessions(ctx context.Context) ([]string, error)

	// Catalog returns the reference data the engine answers from.
	Catalog() *catalog.Catalog
}
