package main

import (
	"os"

	"github.com/aretw0/concierge/internal/cli"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant in the terminal",
	Long: `Starts an interactive chat on stdin/stdout.
Use --json to exchange JSON lines instead, e.g. when driving the assistant from another process.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		rt, err := cli.NewRuntime(cfg, logger)
		if err != nil {
			return err
		}
		defer rt.Close()

		user, _ := cmd.Flags().GetString("user")
		jsonMode, _ := cmd.Flags().GetBool("json")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		err = cli.RunChat(ctx, rt, cli.ChatOptions{
			UserID: user,
			JSON:   jsonMode,
			Input:  cmd.InOrStdin(),
			Output: os.Stdout,
		})
		if sig := ctx.Signal(); sig != nil {
			logger.Debug("chat interrupted", "signal", sig)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringP("user", "u", "local", "User id of the chat session")
	chatCmd.Flags().Bool("json", false, "Exchange JSON lines instead of text")
}
