package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alexgomez/lavafix/internal/output"
)

var notificationsFlagLimit int

// notificationsCmd shows the activity feed.
var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"feed", "activity"},
	Short:   "Show recent activity",
	Long:    `Show the activity feed, newest first. Every change to clients and payments leaves an entry here.`,
	RunE:    runNotifications,
}

func init() {
	notificationsCmd.Flags().IntVarP(&notificationsFlagLimit, "limit", "l", 0, "Show at most this many entries (0 = all)")
	rootCmd.AddCommand(notificationsCmd)
}

func runNotifications(cmd *cobra.Command, args []string) error {
	feed := ctx.Book.Notifications
	if notificationsFlagLimit > 0 && len(feed) > notificationsFlagLimit {
		feed = feed[:notificationsFlagLimit]
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(feed)
	}

	cli := ctx.CLIFormatter()
	if len(feed) == 0 {
		cli.Muted("No activity yet.")
		return nil
	}

	for _, n := range feed {
		cli.Printf("%s %s  %s\n",
			cli.SeverityIcon(n),
			cli.Bold(n.Title),
			cli.Note(output.FormatTimeShort(n.Timestamp)))
		cli.Printf("  %s\n", n.Message)
	}
	return nil
}
