// strcli underwrites a short-term-rental listing from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"str-underwriter/internal/config"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app carries state shared by subcommands once the root has loaded config.
type app struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "strcli",
		Short: "Short-term-rental underwriting and scenario search",
		Long: `strcli estimates short-term-rental returns for a listing and searches
a grid of price, ADR, occupancy and expense-ratio assumptions for the
scenario with the best monthly cash flow.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			a.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().String("config", "", "YAML config file (default: built-in defaults)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newUnderwriteCmd(a))
	root.AddCommand(newLookupCmd(a))
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "strcli %s (commit %s)\n", version, commit)
		},
	}
}
