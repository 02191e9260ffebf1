package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/concierge/internal/cli"
	"github.com/aretw0/concierge/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "concierge",
	Short: "Concierge is a German-language hotel booking assistant",
	Long: `Concierge answers chat messages with a small dialogue workflow:
it books accommodations from a catalog and recommends hotels by country and city.
Run it in the terminal, as an HTTP/WebSocket server or as an MCP server.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default ./concierge.yaml or ~/.concierge/concierge.yaml)")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.String("log-format", "text", "Log format (text or json)")
	pf.StringSlice("catalog", nil, "Catalog files (YAML or JSON), merged in order. Defaults to the built-in catalog")
	pf.String("matcher", "subset", "Service matching strategy (subset or phrase)")
	pf.String("store", config.BackendMemory, "Session store backend (memory, file or redis)")
	pf.String("store-dir", ".concierge/sessions", "Directory of the file session store")
	pf.String("redis-addr", "localhost:6379", "Redis address for the redis session store")

	bind := map[string]string{
		"log_level":     "log-level",
		"log_format":    "log-format",
		"catalog":       "catalog",
		"matcher":       "matcher",
		"store.backend": "store",
		"store.dir":     "store-dir",
		"redis.addr":    "redis-addr",
	}
	for key, flag := range bind {
		if err := v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

// loadConfig resolves the configuration and installs the configured logger as default.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, nil, err
	}
	logger, err := cli.NewLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger)
	return cfg, logger, nil
}
