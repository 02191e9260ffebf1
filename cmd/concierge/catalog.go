package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/concierge/internal/cli"
	"github.com/aretw0/concierge/pkg/catalog"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect accommodation catalogs",
}

var catalogLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the accommodations of the configured catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		c, err := cli.LoadCatalog(cfg)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCOUNTRY\tCITY\tPRICE\tSERVICES")
		for _, a := range c.Accommodations() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s%g\t%s\n", a.Name, a.Country, a.City, c.Currency(), a.Price, strings.Join(a.Services, ", "))
		}
		return w.Flush()
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate one or more catalog files",
	Long:  `Loads the files as one merged catalog and reports the first problem found.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.Load(args...)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Catalog is valid! ✅ (%d accommodations, %d intents, %d services)\n",
			len(c.Accommodations()), len(c.Intents()), len(c.Services()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogLsCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
}
