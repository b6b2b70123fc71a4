package cmd

import (
	"encoding/base64"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/alexgomez/lavafix/internal/billing"
	apperrors "github.com/alexgomez/lavafix/internal/errors"
	"github.com/alexgomez/lavafix/internal/model"
	"github.com/alexgomez/lavafix/internal/output"
	"github.com/alexgomez/lavafix/internal/tui"
	"github.com/alexgomez/lavafix/internal/validate"
)

// Client command flags.
var (
	clientFlagName    string
	clientFlagPhone   string
	clientFlagPhone2  string
	clientFlagAmount  string
	clientFlagPhoto   string
	clientListSearch  string
	clientListSort    string
	clientListDesc    bool
	clientListPending bool
	clientDeleteYes   bool
)

// clientCmd represents the client command group.
var clientCmd = &cobra.Command{
	Use:     "client",
	Aliases: []string{"clients", "c"},
	Short:   "Manage the client registry",
	RunE:    runClientList,
}

// clientAddCmd adds a new client.
var clientAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a new client",
	Long: `Add a client to the registry. New clients start the cycle as Pending.

Examples:
  lavafix client add "Ana López" --phone 55512345
  lavafix client add "Luis Pérez" --phone 55598765 --phone2 55511122 --amount 200`,
	Args: cobra.ExactArgs(1),
	RunE: runClientAdd,
}

// clientEditCmd edits an existing client.
var clientEditCmd = &cobra.Command{
	Use:   "edit CLIENT",
	Short: "Edit a client",
	Long: `Edit a client's details. Only the flags you pass change; everything
else is left as it was. CLIENT may be a name, a name fragment or an id.

Examples:
  lavafix client edit ana --amount 175
  lavafix client edit "Luis Pérez" --phone2 55533344`,
	Args: cobra.ExactArgs(1),
	RunE: runClientEdit,
}

// clientListCmd lists clients.
var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients",
	Long: `List clients, optionally filtered and sorted.

Examples:
  lavafix client list
  lavafix client list --search 555
  lavafix client list --sort name
  lavafix client list --sort status --desc
  lavafix client list --pending`,
	RunE: runClientList,
}

// clientDeleteCmd deletes a client and its payment history.
var clientDeleteCmd = &cobra.Command{
	Use:     "delete CLIENT",
	Aliases: []string{"rm", "remove"},
	Short:   "Delete a client and all their payment history",
	Args:    cobra.ExactArgs(1),
	RunE:    runClientDelete,
}

// clientReminderCmd toggles the reminder-sent flag.
var clientReminderCmd = &cobra.Command{
	Use:   "reminder CLIENT",
	Short: "Toggle the reminder-sent flag for a client",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientReminder,
}

func init() {
	clientAddCmd.Flags().StringVarP(&clientFlagPhone, "phone", "p", "", "Primary phone (required)")
	clientAddCmd.Flags().StringVar(&clientFlagPhone2, "phone2", "", "Secondary phone")
	clientAddCmd.Flags().StringVarP(&clientFlagAmount, "amount", "a", "", "Monthly amount (default 150)")
	clientAddCmd.Flags().StringVar(&clientFlagPhoto, "photo", "", "Path to a client photo to store inline")

	clientEditCmd.Flags().StringVarP(&clientFlagName, "name", "n", "", "New display name")
	clientEditCmd.Flags().StringVarP(&clientFlagPhone, "phone", "p", "", "New primary phone")
	clientEditCmd.Flags().StringVar(&clientFlagPhone2, "phone2", "", "New secondary phone")
	clientEditCmd.Flags().StringVarP(&clientFlagAmount, "amount", "a", "", "New monthly amount")
	clientEditCmd.Flags().StringVar(&clientFlagPhoto, "photo", "", "Path to a new client photo")

	clientListCmd.Flags().StringVarP(&clientListSearch, "search", "s", "", "Filter by name or phone substring")
	clientListCmd.Flags().StringVar(&clientListSort, "sort", "created", "Sort key: created, name, status")
	clientListCmd.Flags().BoolVar(&clientListDesc, "desc", false, "Sort descending")
	clientListCmd.Flags().BoolVar(&clientListPending, "pending", false, "Only clients that still owe this cycle")

	clientDeleteCmd.Flags().BoolVarP(&clientDeleteYes, "yes", "y", false, "Skip confirmation")

	clientCmd.AddCommand(clientAddCmd)
	clientCmd.AddCommand(clientEditCmd)
	clientCmd.AddCommand(clientListCmd)
	clientCmd.AddCommand(clientDeleteCmd)
	clientCmd.AddCommand(clientReminderCmd)

	rootCmd.AddCommand(clientCmd)
}

// parseAmountFlag parses the --amount flag, empty meaning "not provided".
func parseAmountFlag(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, apperrors.NewUserErrorWithField("amount", value,
			"Invalid amount",
			"Provide a number like 150 or 150.50")
	}
	return amount, validate.Amount(amount)
}

// encodePhoto reads an image file and returns its inline base64 encoding.
func encodePhoto(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", apperrors.NewUserErrorWithField("photo", path,
			"Could not read photo", "Check that the file exists and is readable")
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func runClientAdd(cmd *cobra.Command, args []string) error {
	name := args[0]

	if err := validate.ClientName(name); err != nil {
		return err
	}
	if err := validate.Phone(clientFlagPhone, true); err != nil {
		return err
	}
	if err := validate.Phone(clientFlagPhone2, false); err != nil {
		return err
	}
	amount, err := parseAmountFlag(clientFlagAmount)
	if err != nil {
		return err
	}
	photo, err := encodePhoto(clientFlagPhoto)
	if err != nil {
		return err
	}

	c, err := ctx.Book.UpsertClient(billing.ClientInput{
		Name:          name,
		Phone1:        clientFlagPhone,
		Phone2:        clientFlagPhone2,
		MonthlyAmount: amount,
		Image:         photo,
	})
	if err != nil {
		return err
	}
	if c == nil {
		// Validation above makes this unreachable; the core still treats
		// bad input as a no-op rather than an error.
		return nil
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(c)
	}

	cli := ctx.CLIFormatter()
	cli.Success("Added " + c.Name + " (" + output.FormatAmount(c.MonthlyAmount) + " monthly)")
	cli.Muted("  id: " + c.ID)
	return nil
}

func runClientEdit(cmd *cobra.Command, args []string) error {
	c, err := ctx.Book.FindClient(args[0])
	if err != nil {
		return err
	}

	in := billing.ClientInput{ID: c.ID}
	if cmd.Flags().Changed("name") {
		if err := validate.ClientName(clientFlagName); err != nil {
			return err
		}
		in.Name = clientFlagName
	}
	if cmd.Flags().Changed("phone") {
		if err := validate.Phone(clientFlagPhone, true); err != nil {
			return err
		}
		in.Phone1 = clientFlagPhone
	}
	if cmd.Flags().Changed("phone2") {
		if err := validate.Phone(clientFlagPhone2, false); err != nil {
			return err
		}
		in.Phone2 = clientFlagPhone2
	}
	if cmd.Flags().Changed("amount") {
		amount, err := parseAmountFlag(clientFlagAmount)
		if err != nil {
			return err
		}
		in.MonthlyAmount = amount
	}
	if cmd.Flags().Changed("photo") {
		photo, err := encodePhoto(clientFlagPhoto)
		if err != nil {
			return err
		}
		in.Image = photo
	}

	updated, err := ctx.Book.UpsertClient(in)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(updated)
	}

	ctx.CLIFormatter().Success("Updated " + updated.Name)
	return nil
}

func runClientList(cmd *cobra.Command, args []string) error {
	var clients []*model.Client
	if clientListPending {
		clients = ctx.Book.PendingClients(clientListSearch)
	} else {
		clients = ctx.Book.SearchClients(clientListSearch)
	}

	var key billing.SortKey
	switch clientListSort {
	case "name":
		key = billing.SortName
	case "status":
		key = billing.SortStatus
	default:
		key = billing.SortCreated
	}
	clients = billing.SortClients(clients, key, clientListDesc)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"clients": clients,
			"count":   len(clients),
		})
	}

	cli := ctx.CLIFormatter()
	if len(clients) == 0 {
		if clientListPending {
			cli.Success("Everyone is paid up.")
		} else {
			cli.Muted("No clients yet.")
			cli.Muted("Add one with: lavafix client add \"Name\" --phone NUMBER")
		}
		return nil
	}

	rows := make([]output.TableRow, len(clients))
	for i, c := range clients {
		phones := c.Phone1
		if c.Phone2 != "" {
			phones += ", " + c.Phone2
		}
		reminder := ""
		if c.ReminderSent {
			reminder = "sent"
		}
		rows[i] = output.TableRow{Columns: []string{
			shortID(c.ID),
			c.Name,
			phones,
			output.FormatAmount(c.MonthlyAmount),
			cli.Status(c.Status),
			reminder,
		}}
	}
	cli.PrintTable([]string{"ID", "Name", "Phones", "Monthly", "Status", "Reminder"}, rows)
	cli.Printf("\n%d clients\n", len(clients))
	return nil
}

func runClientDelete(cmd *cobra.Command, args []string) error {
	c, err := ctx.Book.FindClient(args[0])
	if err != nil {
		return err
	}

	ok, err := confirmAction(clientDeleteYes, tui.Confirm{
		Title:   "Delete Client",
		Message: "Delete " + c.Name + "? All their data and payment history will be removed permanently.",
		Action:  "Delete",
		Tier:    tui.TierDanger,
	})
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	deleted, err := ctx.Book.DeleteClient(c.ID)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]string{
			"status": "deleted",
			"id":     deleted.ID,
			"name":   deleted.Name,
		})
	}

	ctx.CLIFormatter().Success("Deleted " + deleted.Name + " and their payment history")
	return nil
}

func runClientReminder(cmd *cobra.Command, args []string) error {
	c, err := ctx.Book.FindClient(args[0])
	if err != nil {
		return err
	}

	updated, err := ctx.Book.ToggleReminder(c.ID)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"id":            updated.ID,
			"name":          updated.Name,
			"reminder_sent": updated.ReminderSent,
		})
	}

	cli := ctx.CLIFormatter()
	if updated.ReminderSent {
		cli.Success("Reminder marked as sent for " + updated.Name)
	} else {
		cli.Success("Reminder flag cleared for " + updated.Name)
	}
	return nil
}

// shortID returns the display prefix of an id.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
