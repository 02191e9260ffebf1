package cli

import (
	"context"
	"io"
	"os"

	"github.com/aretw0/concierge"
	"github.com/aretw0/concierge/internal/presentation/tui"
	"github.com/aretw0/concierge/pkg/runner"
)

// ChatOptions configures an interactive chat.
type ChatOptions struct {
	UserID string
	JSON   bool
	Input  io.Reader
	Output *os.File
}

// RunChat runs the terminal chat loop until input ends or a signal arrives.
// Rendering and colors are only used when the output is a terminal.
func RunChat(ctx context.Context, rt *Runtime, opts ChatOptions) error {
	in := opts.Input
	if in == nil {
		in = os.Stdin
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var handler runner.IOHandler
	greeting := ""
	if opts.JSON {
		handler = runner.NewJSONHandler(in, out)
	} else {
		var textOpts []runner.TextHandlerOption
		if tui.IsTerminal(out) {
			tui.PrintBanner(out, concierge.Version)
			textOpts = append(textOpts,
				runner.WithTextHandlerRenderer(tui.NewRenderer()),
				runner.WithPrompt(tui.Prompt()),
			)
		}
		handler = runner.NewTextHandler(in, out, textOpts...)
		greeting = "Schreiben Sie Ihre Nachricht. /reset setzt die Sitzung zurück, /quit beendet."
	}

	r := runner.NewRunner(rt.Engine,
		runner.WithUserID(opts.UserID),
		runner.WithLogger(rt.Logger),
		runner.WithInputHandler(handler),
		runner.WithGreeting(greeting),
	)
	return r.Run(ctx)
}
