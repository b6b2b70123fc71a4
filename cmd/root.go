// Package cmd provides the CLI commands for LavaFix.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/alexgomez/lavafix/internal/errors"
	"github.com/alexgomez/lavafix/internal/logging"
	"github.com/alexgomez/lavafix/internal/output"
	"github.com/alexgomez/lavafix/internal/runtime"
	"github.com/alexgomez/lavafix/internal/tui"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagDebug  bool
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "lavafix",
	Short: "Client billing and payment tracking for a repair service",
	Long: `LavaFix tracks monthly clients, their payments and payment reminders
from the command line.

Examples:
  lavafix client add "Ana López" --phone 55512345 --amount 200
  lavafix pay ana --note "paid cash"
  lavafix history --year 2026 --month 3
  lavafix export -o backup.csv`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for completion and help commands
		if cmd.Name() == "completion" || cmd.Name() == "help" {
			return nil
		}

		if flagDebug {
			logging.InitDebug()
		} else {
			logging.Init(logging.DefaultConfig())
		}

		// Parse format flag
		var format output.Format
		switch flagFormat {
		case "json":
			format = output.FormatJSON
		case "plain":
			format = output.FormatPlain
		default:
			format = output.FormatCLI
		}

		// Parse color flag
		var colorMode output.ColorMode
		switch flagColor {
		case "always":
			colorMode = output.ColorAlways
		case "never":
			colorMode = output.ColorNever
		default:
			colorMode = output.ColorAuto
		}

		opts := runtime.DefaultOptions()
		opts.Format = format
		opts.ColorMode = colorMode
		opts.Debug = flagDebug

		var err error
		ctx, err = runtime.New(opts)
		if err != nil {
			return err
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if ctx != nil {
			return ctx.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show the book summary
		return runSummary(cmd, args)
	},
}

// runSummary shows the dashboard totals.
func runSummary(cmd *cobra.Command, args []string) error {
	stats := ctx.Book.Stats()

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"clients":       stats.ClientCount,
			"total_income":  stats.TotalIncome.StringFixed(2),
			"pending_total": stats.PendingTotal.StringFixed(2),
			"pending_count": stats.PendingCount,
		})
	}

	cli := ctx.CLIFormatter()
	cli.Title("LavaFix")
	cli.Printf("  Clients:       %d\n", stats.ClientCount)
	cli.Printf("  Total income:  %s\n", output.FormatAmount(stats.TotalIncome))
	cli.Printf("  Pending:       %s (%d clients)\n", output.FormatAmount(stats.PendingTotal), stats.PendingCount)
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		Die(err)
	}
	return nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("lavafix %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}

// confirmAction gates a destructive operation. Returns true only when --yes
// was given or the user confirmed interactively. JSON mode has no prompt;
// destructive commands there must carry --yes explicitly.
func confirmAction(skip bool, c tui.Confirm) (bool, error) {
	if skip {
		return true, nil
	}
	if ctx.IsJSON() {
		return false, apperrors.NewUserError(
			"confirmation required",
			"pass --yes to confirm destructive commands with --format json")
	}
	ok, err := c.Run()
	if err != nil {
		return false, err
	}
	if !ok {
		ctx.CLIFormatter().Muted("Cancelled.")
	}
	return ok, nil
}

// Die prints an error and exits.
func Die(err error) {
	if ctx != nil && ctx.IsJSON() {
		ctx.Formatter.JSON(map[string]string{
			"status": "error",
			"error":  err.Error(),
		})
	} else {
		os.Stderr.WriteString("Error: " + apperrors.Format(err) + "\n")
	}
	os.Exit(1)
}
