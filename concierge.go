package concierge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/concierge/internal/dialogue"
	"github.com/aretw0/concierge/internal/logging"
	"github.com/aretw0/concierge/internal/nlu"
	"github.com/aretw0/concierge/pkg/adapters/memory"
	"github.com/aretw0/concierge/pkg/catalog"
	"github.com/aretw0/concierge/pkg/domain"
	"github.com/aretw0/concierge/pkg/ports"
	"github.com/aretw0/concierge/pkg/runner"
	"github.com/aretw0/concierge/pkg/session"
	"github.com/google/uuid"
)

// Engine is the high-level entry point for the Concierge library.
// It owns the per-user turn pipeline: sanitize, lock, extract, dispatch, persist.
type Engine struct {
	catalog   *catalog.Catalog
	extractor *nlu.Extractor
	machine   *dialogue.Machine
	sessions  *session.Manager

	store   ports.SessionStore
	locker  ports.DistributedLocker
	lockTTL time.Duration
	matcher nlu.ServiceMatcher
	hooks   domain.LifecycleHooks
	logger  *slog.Logger

	newReference func() string
	now          func() time.Time
}

var _ ports.Conversation = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore sets the session store. Defaults to an in-memory store.
func WithStore(store ports.SessionStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker enables distributed locking so replicas sharing a store serialize turns per user.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithLockTTL bounds how long a distributed lock is held if its owner dies mid-turn.
func WithLockTTL(ttl time.Duration) Option {
	return func(e *Engine) {
		e.lockTTL = ttl
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls are merged.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithMatcher selects how service phrases are matched against messages.
func WithMatcher(m nlu.ServiceMatcher) Option {
	return func(e *Engine) {
		e.matcher = m
	}
}

// WithReferenceGenerator replaces the generator of booking references.
func WithReferenceGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.newReference = fn
	}
}

// WithClock replaces the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New initializes a new Concierge Engine answering from the given catalog.
// A nil catalog selects the built-in default catalog.
func New(c *catalog.Catalog, opts ...Option) (*Engine, error) {
	eng := &Engine{catalog: c}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.catalog == nil {
		eng.catalog = catalog.Default()
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.matcher == nil {
		eng.matcher = nlu.TokenSubset
	}
	if eng.newReference == nil {
		eng.newReference = uuid.NewString
	}
	if eng.now == nil {
		eng.now = time.Now
	}

	managerOpts := []session.Option{session.WithLogger(eng.logger)}
	if eng.locker != nil {
		managerOpts = append(managerOpts, session.WithLocker(eng.locker))
	}
	if eng.lockTTL > 0 {
		managerOpts = append(managerOpts, session.WithLockTTL(eng.lockTTL))
	}

	eng.sessions = session.NewManager(eng.store, managerOpts...)
	eng.extractor = nlu.NewExtractor(eng.catalog, eng.matcher)
	eng.machine = dialogue.New(eng.catalog)
	return eng, nil
}

// ProcessTurn handles one message of a user and returns the reply.
//
// Messages that are not strings, or that the input sanitizer rejects, produce the
// fixed invalid-message reply and leave the session untouched. Errors are returned
// only when the session could not be loaded, locked or stored.
func (e *Engine) ProcessTurn(ctx context.Context, userID string, message any) (*domain.Turn, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty")
	}

	text, ok := message.(string)
	if !ok {
		e.logger.DebugContext(ctx, "invalid message", "user_id", userID, "type", fmt.Sprintf("%T", message))
		return e.invalid(ctx, userID), nil
	}
	clean, err := runner.SanitizeInput(text)
	if err != nil {
		e.logger.DebugContext(ctx, "rejected message", "user_id", userID, "err", err)
		return e.invalid(ctx, userID), nil
	}

	e.logger.DebugContext(ctx, "received message", "user_id", userID, "message", clean)

	var (
		turn    *domain.Turn
		turnEvt *domain.TurnEvent
	)
	err = e.sessions.WithLock(ctx, userID, func(ctx context.Context) error {
		sess, _, err := e.sessions.LoadOrInit(ctx, userID)
		if err != nil {
			return err
		}
		prior := sess.State

		intent, ent := e.extractor.Extract(clean, prior.Known())
		out := e.machine.Dispatch(intent, ent, prior)
		if !out.Next.Step.Valid() {
			out = dialogue.Outcome{Response: intent.Response, Next: prior.Clone()}
		}

		now := e.now()
		if out.Booking != nil {
			out.Booking.Reference = e.newReference()
			out.Booking.ConfirmedAt = now
			snapshot := *out.Booking
			out.Next.Booking = &snapshot
		}

		stored := dialogue.Finalize(out)
		sess.Intent = &intent
		sess.Entities = ent
		sess.State = stored
		sess.UpdatedAt = now

		if err := e.store.Save(ctx, userID, sess); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}

		turn = &domain.Turn{
			UserID:   userID,
			Response: out.Response,
			Intent:   intent,
			Entities: ent,
			Session:  out.Next,
			Booking:  out.Booking,
		}
		turnEvt = &domain.TurnEvent{
			EventBase: domain.EventBase{Timestamp: now, Type: domain.EventTurn, UserID: userID},
			Intent:    intent.Kind,
			From:      prior.Step,
			To:        out.Next.Step,
			Stored:    stored.Step,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.DebugContext(ctx, "generated response",
		"user_id", userID,
		"intent", turn.Intent.Name,
		"from", turnEvt.From,
		"to", turnEvt.To,
		"response", turn.Response,
	)

	if e.hooks.OnTurn != nil {
		e.hooks.OnTurn(ctx, turnEvt)
	}
	if turn.Booking != nil && e.hooks.OnBookingConfirmed != nil {
		e.hooks.OnBookingConfirmed(ctx, &domain.BookingEvent{
			EventBase: domain.EventBase{Timestamp: turnEvt.Timestamp, Type: domain.EventBookingConfirmed, UserID: userID},
			Booking:   *turn.Booking,
		})
	}

	return turn, nil
}

// invalid answers a malformed message with a snapshot of the untouched session.
func (e *Engine) invalid(ctx context.Context, userID string) *domain.Turn {
	state := domain.NewSessionState()
	if sess, err := e.store.Load(ctx, userID); err == nil {
		state = sess.State
	}
	return &domain.Turn{
		UserID:   userID,
		Response: domain.TextInvalidMessage,
		Intent:   domain.UnknownIntent(),
		Session:  state,
	}
}

// Session returns the stored session of a user, or domain.ErrSessionNotFound.
func (e *Engine) Session(ctx context.Context, userID string) (*domain.Session, error) {
	return e.sessions.Load(ctx, userID)
}

// Reset discards the stored session of a user.
func (e *Engine) Reset(ctx context.Context, userID string) error {
	return e.sessions.Delete(ctx, userID)
}

// Sessions lists the users with a stored session.
func (e *Engine) Sessions(ctx context.Context) ([]string, error) {
	return e.sessions.List(ctx)
}

// Catalog returns the catalog the engine answers from.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}
