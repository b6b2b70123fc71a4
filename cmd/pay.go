package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alexgomez/lavafix/internal/output"
	"github.com/alexgomez/lavafix/internal/tui"
	"github.com/alexgomez/lavafix/internal/validate"
)

// Pay command flags.
var (
	payFlagNote string
	undoFlagYes bool
)

// payCmd records a payment for a client.
var payCmd = &cobra.Command{
	Use:   "pay CLIENT",
	Short: "Record this month's payment for a client",
	Long: `Record a payment of the client's monthly amount. The ledger gains a
record and the client flips to Paid.

Examples:
  lavafix pay ana
  lavafix pay "Luis Pérez" --note "paid cash, two weeks late"`,
	Args: cobra.ExactArgs(1),
	RunE: runPay,
}

// undoCmd reverts a client's most recent payment.
var undoCmd = &cobra.Command{
	Use:   "undo CLIENT",
	Short: "Revert a client's most recent payment",
	Long: `Set the client back to Pending and remove their most recent ledger
record. Meant for correcting a payment recorded by mistake.`,
	Args: cobra.ExactArgs(1),
	RunE: runUndo,
}

func init() {
	payCmd.Flags().StringVarP(&payFlagNote, "note", "n", "", "Optional note for the ledger record")
	undoCmd.Flags().BoolVarP(&undoFlagYes, "yes", "y", false, "Skip confirmation")

	rootCmd.AddCommand(payCmd)
	rootCmd.AddCommand(undoCmd)
}

func runPay(cmd *cobra.Command, args []string) error {
	c, err := ctx.Book.FindClient(args[0])
	if err != nil {
		return err
	}
	if err := validate.Note(payFlagNote); err != nil {
		return err
	}

	cli := ctx.CLIFormatter()
	if !c.IsPending() && !ctx.IsJSON() {
		// Not hard-enforced: the operator may genuinely collect twice in
		// one cycle.
		cli.Warning(c.Name + " is already marked Paid this cycle.")
	}

	rec, err := ctx.Book.RecordPayment(c.ID, payFlagNote)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(rec)
	}

	cli.Success("Payment of " + output.FormatAmount(rec.Amount) + " recorded for " + rec.ClientName)
	if rec.Notes != "" {
		cli.Printf("  Note: %s\n", cli.Note(rec.Notes))
	}
	cli.Muted("  record: " + shortID(rec.ID))
	return nil
}

func runUndo(cmd *cobra.Command, args []string) error {
	c, err := ctx.Book.FindClient(args[0])
	if err != nil {
		return err
	}

	ok, err := confirmAction(undoFlagYes, tui.Confirm{
		Title:   "Revert Payment",
		Message: "Set " + c.Name + " back to Pending? Their most recent payment record will be removed.",
		Action:  "Revert",
		Tier:    tui.TierWarning,
	})
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	removed, err := ctx.Book.UndoPayment(c.ID)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		resp := map[string]interface{}{
			"status": "reverted",
			"client": c.Name,
		}
		if removed != nil {
			resp["removed_record"] = removed.ID
		}
		return ctx.Formatter.JSON(resp)
	}

	cli := ctx.CLIFormatter()
	if removed != nil {
		cli.Success("Reverted payment of " + output.FormatAmount(removed.Amount) + " for " + c.Name)
	} else {
		// The status reset still happened; there was just nothing in the
		// ledger to remove.
		cli.Success("Set " + c.Name + " back to Pending (no ledger record to remove)")
	}
	return nil
}
