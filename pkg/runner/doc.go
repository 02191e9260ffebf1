/*
Package runner implements the terminal chat loop for the Concierge engine.

It acts as the bridge between the conversation engine and a line-oriented terminal
or pipe. Each line read becomes one turn; replies and booking confirmations are
written back through a pluggable IOHandler.

# Key Components

  - Runner: reads input, calls ProcessTurn and hands the turn to the handler.
  - TextHandler: interactive use, with optional markdown rendering of replies.
  - JSONHandler: one JSON object per line in both directions, for scripting.
  - SanitizeInput: size limit, UTF-8 validation, whitespace folding and control character stripping.

# Usage

	r := runner.NewRunner(engine,
		runner.WithUserID("alice"),
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)

	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
