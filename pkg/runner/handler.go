package runner

import (
	"context"

	"github.com/aretw0/concierge/pkg/domain"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	// Input reads the next message. It returns io.EOF when the input is exhausted.
	// The message is usually a string; structured handlers may pass other values
	// through so the engine can reject them.
	Input(ctx context.Context) (any, error)

	// Reply presents the outcome of a turn, including any booking confirmation.
	Reply(ctx context.Context, turn *domain.Turn) error

	// SystemOutput presents a meta-message to the user (e.g. status updates).
	// This is distinct from assistant replies.
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer is a function that transforms reply text before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)
