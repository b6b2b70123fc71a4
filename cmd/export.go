package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/alexgomez/lavafix/internal/errors"
	"github.com/alexgomez/lavafix/internal/export"
)

var exportFlagOutput string

// exportCmd writes the ledger to a CSV backup.
var exportCmd = &cobra.Command{
	Use:     "export",
	Aliases: []string{"backup"},
	Short:   "Export the payment ledger to CSV",
	Long: `Write every payment record to a CSV file. With no --output the file
is named LavaFix_Backup_<date>.csv in the current directory. Use
--output - to write to stdout.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFlagOutput, "output", "o", "", "Destination file (- for stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	records := ctx.Book.Payments

	if exportFlagOutput == "-" {
		return export.WriteCSV(os.Stdout, records)
	}

	path := exportFlagOutput
	if path == "" {
		path = export.DefaultFilename(time.Now())
	}

	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewSystemErrorWithOp("export", "could not create export file", err)
	}
	defer f.Close()

	if err := export.WriteCSV(f, records); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"file":    path,
			"records": len(records),
		})
	}

	cli := ctx.CLIFormatter()
	cli.Success("Exported " + path)
	cli.Printf("  %d payment records\n", len(records))
	return nil
}
