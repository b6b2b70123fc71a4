package cmd

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/alexgomez/lavafix/internal/billing"
	apperrors "github.com/alexgomez/lavafix/internal/errors"
	"github.com/alexgomez/lavafix/internal/output"
	"github.com/alexgomez/lavafix/internal/parser"
	"github.com/alexgomez/lavafix/internal/tui"
	"github.com/alexgomez/lavafix/internal/validate"
)

// History command flags.
var (
	historyFlagClient string
	historyFlagYear   int
	historyFlagMonth  int

	historyEditDate   string
	historyEditAmount string
	historyEditNotes  string

	historyDeleteYes bool
)

// historyCmd lists and maintains the payment ledger.
var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"payments", "ledger"},
	Short:   "Browse and correct the payment ledger",
	Long: `Show payment records, newest first. Filters combine, so
--client ana --year 2026 --month 3 shows Ana's March 2026 payments.`,
	RunE: runHistoryList,
}

var historyEditCmd = &cobra.Command{
	Use:   "edit RECORD",
	Short: "Edit a payment record",
	Long: `Change the date, amount, or notes of an existing ledger record.
Only the fields you pass are touched.

Dates accept several forms:
  lavafix history edit 0198f2 --date 2026-08-15
  lavafix history edit 0198f2 --date "last tuesday" --amount 175`,
	Args: cobra.ExactArgs(1),
	RunE: runHistoryEdit,
}

var historyDeleteCmd = &cobra.Command{
	Use:     "delete RECORD",
	Aliases: []string{"rm", "remove"},
	Short:   "Delete a payment record",
	Args:    cobra.ExactArgs(1),
	RunE:    runHistoryDelete,
}

func init() {
	historyCmd.Flags().StringVarP(&historyFlagClient, "client", "c", "", "Only records whose client name contains this text")
	historyCmd.Flags().IntVarP(&historyFlagYear, "year", "y", 0, "Only records from this year")
	historyCmd.Flags().IntVarP(&historyFlagMonth, "month", "m", 0, "Only records from this month (1-12)")

	historyEditCmd.Flags().StringVar(&historyEditDate, "date", "", "New date for the record")
	historyEditCmd.Flags().StringVar(&historyEditAmount, "amount", "", "New amount in quetzales")
	historyEditCmd.Flags().StringVar(&historyEditNotes, "notes", "", "New notes text")

	historyDeleteCmd.Flags().BoolVarP(&historyDeleteYes, "yes", "y", false, "Skip confirmation")

	historyCmd.AddCommand(historyEditCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}

func historyFilter() (billing.PaymentFilter, error) {
	f := billing.PaymentFilter{Name: historyFlagClient, Year: historyFlagYear}
	if historyFlagMonth != 0 {
		if historyFlagMonth < 1 || historyFlagMonth > 12 {
			return f, apperrors.NewUserErrorWithField(
				"month", strconv.Itoa(historyFlagMonth),
				"month must be between 1 and 12",
				"use the month's number, e.g. --month 3 for March")
		}
		f.Month = time.Month(historyFlagMonth)
	}
	return f, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	filter, err := historyFilter()
	if err != nil {
		return err
	}
	records := ctx.Book.QueryPayments(filter)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(records)
	}

	cli := ctx.CLIFormatter()
	if len(records) == 0 {
		cli.Muted("No payments recorded.")
		return nil
	}

	rows := make([]output.TableRow, 0, len(records))
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
		rows = append(rows, output.TableRow{Columns: []string{
			shortID(r.ID),
			r.ClientName,
			output.FormatDate(r.Date),
			output.FormatAmount(r.Amount),
			r.Notes,
		}})
	}
	cli.PrintTable([]string{"ID", "Client", "Date", "Amount", "Notes"}, rows)
	cli.Printf("\n%s %s across %d payments\n",
		cli.Bold("Total:"), output.FormatAmount(total), len(records))
	return nil
}

func runHistoryEdit(cmd *cobra.Command, args []string) error {
	rec, err := ctx.Book.FindRecord(args[0])
	if err != nil {
		return err
	}

	var patch billing.RecordPatch
	if cmd.Flags().Changed("date") {
		t, err := parser.ParseDate(historyEditDate)
		if err != nil {
			return err
		}
		patch.Date = &t
	}
	if cmd.Flags().Changed("amount") {
		amt, err := decimal.NewFromString(historyEditAmount)
		if err != nil {
			return apperrors.NewUserErrorWithField(
				"amount", historyEditAmount,
				"could not parse amount",
				"use a plain number like 150 or 150.50")
		}
		if err := validate.Amount(amt); err != nil {
			return err
		}
		patch.Amount = &amt
	}
	if cmd.Flags().Changed("notes") {
		if err := validate.Note(historyEditNotes); err != nil {
			return err
		}
		patch.Notes = &historyEditNotes
	}

	updated, err := ctx.Book.EditRecord(rec.ID, patch)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(updated)
	}

	cli := ctx.CLIFormatter()
	cli.Success("Updated record " + shortID(updated.ID))
	cli.Printf("  %s  %s  %s\n",
		updated.ClientName,
		output.FormatDate(updated.Date),
		output.FormatAmount(updated.Amount))
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	rec, err := ctx.Book.FindRecord(args[0])
	if err != nil {
		return err
	}

	ok, err := confirmAction(historyDeleteYes, tui.Confirm{
		Title: "Delete Record",
		Message: "Delete the " + output.FormatAmount(rec.Amount) + " payment from " +
			rec.ClientName + " on " + output.FormatDate(rec.Date) + "? This cannot be undone.",
		Action: "Delete",
		Tier:   tui.TierDanger,
	})
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	removed, err := ctx.Book.DeleteRecord(rec.ID)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.ErrRecordNotFound
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]string{"status": "deleted", "id": rec.ID})
	}
	ctx.CLIFormatter().Success("Deleted record " + shortID(rec.ID))
	return nil
}
