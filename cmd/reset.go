package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alexgomez/lavafix/internal/tui"
)

var resetFlagYes bool

// resetCmd starts a new billing cycle.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start a new billing month",
	Long: `Clear the payment ledger, mark every client Pending, and reset
reminder flags. Run this at the start of each month, after exporting a
backup of the old month's payments.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetFlagYes, "yes", "y", false, "Skip confirmation")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	ok, err := confirmAction(resetFlagYes, tui.Confirm{
		Title: "Reset Month",
		Message: "Mark ALL clients as Pending and clear the entire payment history? " +
			"Export a backup first if you need last month's records.",
		Action: "Reset Everything",
		Tier:   tui.TierDanger,
	})
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := ctx.Book.ResetCycle(); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"status":  "reset",
			"clients": len(ctx.Book.Clients),
		})
	}

	cli := ctx.CLIFormatter()
	cli.Success("New cycle started")
	cli.Printf("  %d clients set to Pending, ledger cleared\n", len(ctx.Book.Clients))
	return nil
}
