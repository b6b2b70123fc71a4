package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	apperrors "github.com/alexgomez/lavafix/internal/errors"
	"github.com/alexgomez/lavafix/internal/model"
	"github.com/alexgomez/lavafix/internal/remind"
)

var remindFlagAll bool

// remindCmd builds WhatsApp reminder links for pending clients.
var remindCmd = &cobra.Command{
	Use:   "remind [CLIENT]",
	Short: "Build WhatsApp payment reminders",
	Long: `Print wa.me links carrying a prefilled payment reminder message.
With --all, reminders go to every Pending client that has not been
reminded this cycle. Opening a link is left to you; the client is
marked as reminded either way.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRemind,
}

func init() {
	remindCmd.Flags().BoolVarP(&remindFlagAll, "all", "a", false, "Remind every pending client not yet reminded")
	rootCmd.AddCommand(remindCmd)
}

func runRemind(cmd *cobra.Command, args []string) error {
	var targets []*model.Client
	switch {
	case remindFlagAll:
		for _, c := range ctx.Book.PendingClients("") {
			if !c.ReminderSent {
				targets = append(targets, c)
			}
		}
	case len(args) == 1:
		c, err := ctx.Book.FindClient(args[0])
		if err != nil {
			return err
		}
		targets = append(targets, c)
	default:
		return apperrors.NewUserError(
			"no client given",
			"name a client, or use --all to remind every pending client")
	}

	cli := ctx.CLIFormatter()
	if len(targets) == 0 {
		if ctx.IsJSON() {
			return ctx.Formatter.JSON([]any{})
		}
		cli.Muted("Nobody to remind.")
		return nil
	}

	type sent struct {
		Client string        `json:"client"`
		Links  []remind.Link `json:"links"`
	}
	var results []sent

	for _, c := range targets {
		var links []remind.Link
		err := remind.Send(c, func(l remind.Link) error {
			links = append(links, l)
			return nil
		})
		if err != nil {
			return err
		}
		results = append(results, sent{Client: c.Name, Links: links})

		if !c.ReminderSent {
			if _, err := ctx.Book.ToggleReminder(c.ID); err != nil {
				return err
			}
		}
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(results)
	}

	for _, r := range results {
		cli.Title(r.Client)
		for _, l := range r.Links {
			cli.Printf("  %s\n  %s\n", cli.Bold(l.Phone), l.URL)
		}
	}
	cli.Println("")
	cli.Success("Reminders prepared for " + pluralClients(len(results)))
	return nil
}

func pluralClients(n int) string {
	if n == 1 {
		return "1 client"
	}
	return strconv.Itoa(n) + " clients"
}
