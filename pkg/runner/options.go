package runner

import (
	"log/slog"
)

// DefaultUserID identifies the local terminal user when none is configured.
const DefaultUserID = "local"

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithUserID sets the user whose session the chat continues.
func WithUserID(id string) Option {
	return func(r *Runner) {
		if id != "" {
			r.UserID = id
		}
	}
}

// WithGreeting prints a system message before the first read.
func WithGreeting(msg string) Option {
	return func(r *Runner) {
		r.Greeting = msg
	}
}
