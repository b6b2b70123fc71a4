package billing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/alexgomez/lavafix/internal/errors"
	"github.com/alexgomez/lavafix/internal/model"
)

// RecordPayment settles the current cycle for a client: a ledger record for
// the client's monthly amount is prepended and the client flips to Paid with
// its last-payment timestamp set. Registry and ledger change together; both
// slots are written before the call returns.
func (b *Book) RecordPayment(clientID, note string) (*model.PaymentRecord, error) {
	c := b.clientByID(clientID)
	if c == nil {
		return nil, apperrors.ErrClientNotFound
	}

	now := time.Now()
	rec := model.NewPaymentRecord(c, note, now)
	b.Payments = append([]*model.PaymentRecord{rec}, b.Payments...)
	c.MarkPaid(now)

	if err := b.saveClients(); err != nil {
		return nil, err
	}
	if err := b.savePayments(); err != nil {
		return nil, err
	}
	if err := b.Notify("Payment Received", "Q"+rec.Amount.StringFixed(2)+" from "+rec.ClientName+".", model.SeveritySuccess); err != nil {
		return nil, err
	}
	return rec, nil
}

// UndoPayment reverts a client to Pending and removes that client's most
// recent ledger record, latest timestamp first with ledger order breaking
// ties. When the client has no records the ledger is left alone but the
// status still reverts and the last-payment timestamp still clears; that
// asymmetry is long-standing behavior the rest of the tool relies on.
// Returns the removed record, or nil when there was none.
func (b *Book) UndoPayment(clientID string) (*model.PaymentRecord, error) {
	c := b.clientByID(clientID)
	if c == nil {
		return nil, apperrors.ErrClientNotFound
	}

	c.MarkPending()

	var victim *model.PaymentRecord
	victimIdx := -1
	for i, p := range b.Payments {
		if p.ClientID != clientID {
			continue
		}
		// The ledger is newest first, so the first record seen wins a
		// timestamp tie.
		if victim == nil || p.Date.After(victim.Date) {
			victim = p
			victimIdx = i
		}
	}
	if victimIdx >= 0 {
		b.Payments = append(b.Payments[:victimIdx], b.Payments[victimIdx+1:]...)
	}

	if err := b.saveClients(); err != nil {
		return nil, err
	}
	if err := b.savePayments(); err != nil {
		return nil, err
	}
	if err := b.Notify("Correction Made", "Payment reverted for "+c.Name+".", model.SeverityInfo); err != nil {
		return nil, err
	}
	return victim, nil
}

// RecordPatch carries the editable fields of a ledger record. Nil fields are
// left unchanged.
type RecordPatch struct {
	Date   *time.Time
	Amount *decimal.Decimal
	Notes  *string
}

// EditRecord merges a patch into a ledger record in place. An unknown id is
// a no-op returning nil. The owning client's status is never touched here.
func (b *Book) EditRecord(id string, patch RecordPatch) (*model.PaymentRecord, error) {
	rec := b.recordByID(id)
	if rec == nil {
		return nil, nil
	}

	if patch.Date != nil {
		rec.Date = *patch.Date
	}
	if patch.Amount != nil {
		rec.Amount = *patch.Amount
	}
	if patch.Notes != nil {
		rec.Notes = *patch.Notes
	}

	if err := b.savePayments(); err != nil {
		return nil, err
	}
	if err := b.Notify("History Updated", "Record modified.", model.SeverityInfo); err != nil {
		return nil, err
	}
	return rec, nil
}

// DeleteRecord removes a ledger record by id, unconditionally. Returns false
// when the id is unknown.
func (b *Book) DeleteRecord(id string) (bool, error) {
	if b.recordByID(id) == nil {
		return false, nil
	}

	payments := b.Payments[:0]
	for _, p := range b.Payments {
		if p.ID != id {
			payments = append(payments, p)
		}
	}
	b.Payments = payments

	if err := b.savePayments(); err != nil {
		return false, err
	}
	if err := b.Notify("Record Deleted", "Record removed from history.", model.SeverityWarning); err != nil {
		return false, err
	}
	return true, nil
}

// PaymentFilter narrows a ledger query. Zero values mean "all"; filters
// compose with AND.
type PaymentFilter struct {
	Name  string     // case-insensitive client-name substring
	Year  int        // exact calendar year
	Month time.Month // exact calendar month, 1-12
}

// QueryPayments returns the ledger records matching the filter, preserving
// ledger (newest first) order. Year and month are evaluated in local time,
// matching how the records are displayed.
func (b *Book) QueryPayments(f PaymentFilter) []*model.PaymentRecord {
	name := strings.ToLower(f.Name)
	var out []*model.PaymentRecord
	for _, p := range b.Payments {
		if name != "" && !strings.Contains(strings.ToLower(p.ClientName), name) {
			continue
		}
		local := p.Date.Local()
		if f.Year != 0 && local.Year() != f.Year {
			continue
		}
		if f.Month != 0 && local.Month() != f.Month {
			continue
		}
		out = append(out, p)
	}
	return out
}

// recordByID returns the ledger record with the exact id, or nil.
func (b *Book) recordByID(id string) *model.PaymentRecord {
	for _, p := range b.Payments {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// FindRecord resolves a user-supplied reference to a ledger record by exact
// id or unique id prefix.
func (b *Book) FindRecord(ref string) (*model.PaymentRecord, error) {
	if rec := b.recordByID(ref); rec != nil {
		return rec, nil
	}

	var matches []*model.PaymentRecord
	for _, p := range b.Payments {
		if strings.HasPrefix(p.ID, ref) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, apperrors.ErrRecordNotFound
	default:
		return nil, apperrors.NewUserErrorWithField("record", ref,
			"Ambiguous record reference",
			"Use more characters of the record id")
	}
}

// ResetCycle begins a new billing month: the entire ledger is cleared and
// every client reverts to Pending with the reminder flag lowered. Unlike
// UndoPayment, the last-payment timestamps survive as history of the
// previous cycle. There is no undo for this.
func (b *Book) ResetCycle() error {
	b.Payments = nil
	for _, c := range b.Clients {
		c.Status = model.StatusPending
		c.ReminderSent = false
	}

	if err := b.saveClients(); err != nil {
		return err
	}
	if err := b.savePayments(); err != nil {
		return err
	}
	return b.Notify("Month Reset", "Counters cleared and statuses reset.", model.SeverityInfo)
}
