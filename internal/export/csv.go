// Package export produces the read-only CSV projection of the payment
// ledger.
package export

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/alexgomez/lavafix/internal/model"
	"github.com/alexgomez/lavafix/internal/output"
)

// FilenamePrefix is the fixed prefix for generated backup files.
const FilenamePrefix = "LavaFix_Backup_"

// Header is the CSV column layout.
var Header = []string{"ID", "Client", "Date", "Amount", "Notes"}

// WriteCSV writes the ledger records as CSV. encoding/csv handles quoting,
// so client names and notes with embedded commas round-trip.
func WriteCSV(w io.Writer, records []*model.PaymentRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, p := range records {
		row := []string{
			p.ID,
			p.ClientName,
			output.FormatDateShort(p.Date),
			p.Amount.StringFixed(2),
			p.Notes,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// DefaultFilename returns the backup filename for the given day, e.g.
// "LavaFix_Backup_2026-08-31.csv".
func DefaultFilename(now time.Time) string {
	return FilenamePrefix + now.Local().Format("2006-01-02") + ".csv"
}
