package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecord is a single completed payment in the ledger. The client name
// is a snapshot taken at payment time so history survives client renames and
// deletions of unrelated clients.
type PaymentRecord struct {
	ID         string          `json:"id"`
	ClientID   string          `json:"client_id"`
	ClientName string          `json:"client_name"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	Notes      string          `json:"notes,omitempty"`
}

// NewPaymentRecord creates a ledger entry for the client's current monthly
// amount at the given time.
func NewPaymentRecord(c *Client, note string, at time.Time) *PaymentRecord {
	return &PaymentRecord{
		ID:         NewID(),
		ClientID:   c.ID,
		ClientName: c.Name,
		Amount:     c.MonthlyAmount,
		Date:       at,
		Notes:      note,
	}
}
