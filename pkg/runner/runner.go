package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/concierge/internal/logging"
	"github.com/aretw0/concierge/pkg/ports"
)

// Commands understood by the runner itself. Anything else is a chat message.
const (
	CommandQuit  = "/quit"
	CommandReset = "/reset"
)

// Runner handles the chat loop of the engine using provided IO.
type Runner struct {
	Handler  IOHandler
	Logger   *slog.Logger
	UserID   string
	Greeting string

	engine ports.Conversation
}

// NewRunner creates a new Runner over stdin/stdout with text IO.
func NewRunner(engine ports.Conversation, opts ...Option) *Runner {
	r := &Runner{
		engine: engine,
		UserID: DefaultUserID,
		Logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	return r
}

// Run reads messages until the input ends, the quit command is entered or ctx is done.
// A clean end of input and cancellation are not errors.
func (r *Runner) Run(ctx context.Context) error {
	if r.Greeting != "" {
		if err := r.Handler.SystemOutput(ctx, r.Greeting); err != nil {
			return err
		}
	}

	for {
		msg, err := r.Handler.Input(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if text, ok := msg.(string); ok {
			switch strings.TrimSpace(text) {
			case CommandQuit:
				return nil
			case CommandReset:
				if err := r.engine.Reset(ctx, r.UserID); err != nil {
					return fmt.Errorf("failed to reset session: %w", err)
				}
				if err := r.Handler.SystemOutput(ctx, "Sitzung zurückgesetzt."); err != nil {
					return err
				}
				continue
			}
		}

		turn, err := r.engine.ProcessTurn(ctx, r.UserID, msg)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("failed to process message: %w", err)
		}

		r.Logger.Debug("turn", "user_id", r.UserID, "intent", turn.Intent.Name, "step", turn.Session.Step)

		if err := r.Handler.Reply(ctx, turn); err != nil {
			return fmt.Errorf("failed to write reply: %w", err)
		}
	}
}
