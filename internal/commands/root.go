package commands

import (
	"github.com/spf13/cobra"

	"github.com/tripsplit-dev/tripsplit/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "tripsplit",
		Short:   "Split shared trip expenses and settle up",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.dir, "dir", ".", "trip directory holding tripsplit.yaml")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newInitCommand(a),
		newMemberCommand(a),
		newExpenseCommand(a),
		newBalancesCommand(a),
		newSettleCommand(a),
		newBudgetCommand(a),
		newExportCommand(a),
		newImportCommand(a),
		newConvertCommand(a),
	)

	return rootCmd
}
