package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/concierge/pkg/domain"
	"github.com/aretw0/concierge/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.SessionStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs store calls at debug level and failures at warn level.
// A missing session is not a failure.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.SessionStore) ports.SessionStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) log(ctx context.Context, op, userID string, start time.Time, err error) {
	attrs := []any{"op", op, "duration", time.Since(start)}
	if userID != "" {
		attrs = append(attrs, "user_id", userID)
	}
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		m.logger.WarnContext(ctx, "session store failed", append(attrs, "err", err)...)
		return
	}
	m.logger.DebugContext(ctx, "session store", attrs...)
}

func (m *loggingMiddleware) Save(ctx context.Context, userID string, sess *domain.Session) error {
	start := time.Now()
	err := m.next.Save(ctx, userID, sess)
	m.log(ctx, "save", userID, start, err)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, userID string) (*domain.Session, error) {
	start := time.Now()
	sess, err := m.next.Load(ctx, userID)
	m.log(ctx, "load", userID, start, err)
	return sess, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, userID string) error {
	start := time.Now()
	err := m.next.Delete(ctx, userID)
	m.log(ctx, "delete", userID, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	users, err := m.next.List(ctx)
	m.log(ctx, "list", "", start, err)
	return users, err
}
