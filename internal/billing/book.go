// Package billing owns the client registry, the payment ledger and the
// notification feed, and coordinates every mutation across them. All three
// collections live in memory and are written back to their storage slots
// after each change; there is exactly one writer at a time.
package billing

import (
	"github.com/shopspring/decimal"

	apperrors "github.com/alexgomez/lavafix/internal/errors"
	"github.com/alexgomez/lavafix/internal/model"
	"github.com/alexgomez/lavafix/internal/storage"
)

// Book is the application state: three top-level collections plus the store
// they persist through. The ledger and the notification feed are kept newest
// first; the registry keeps insertion order.
type Book struct {
	store *storage.DB

	Clients       []*model.Client
	Payments      []*model.PaymentRecord
	Notifications []*model.Notification
}

// Open loads the three collection slots from the store. Missing or corrupt
// slots load as empty collections.
func Open(store *storage.DB) *Book {
	b := &Book{store: store}
	store.LoadSlot(storage.SlotClients, &b.Clients)
	store.LoadSlot(storage.SlotPayments, &b.Payments)
	store.LoadSlot(storage.SlotNotifications, &b.Notifications)
	return b
}

// saveClients writes the registry slot.
func (b *Book) saveClients() error {
	if err := b.store.SaveSlot(storage.SlotClients, b.Clients); err != nil {
		return apperrors.NewSystemErrorWithOp("save clients", "storage write failed", err)
	}
	return nil
}

// savePayments writes the ledger slot.
func (b *Book) savePayments() error {
	if err := b.store.SaveSlot(storage.SlotPayments, b.Payments); err != nil {
		return apperrors.NewSystemErrorWithOp("save payments", "storage write failed", err)
	}
	return nil
}

// saveNotifications writes the feed slot.
func (b *Book) saveNotifications() error {
	if err := b.store.SaveSlot(storage.SlotNotifications, b.Notifications); err != nil {
		return apperrors.NewSystemErrorWithOp("save notifications", "storage write failed", err)
	}
	return nil
}

// Notify prepends an entry to the notification feed and persists it.
func (b *Book) Notify(title, message string, severity model.Severity) error {
	n := model.NewNotification(title, message, severity)
	b.Notifications = append([]*model.Notification{n}, b.Notifications...)
	return b.saveNotifications()
}

// Stats summarizes the book for the dashboard view.
type Stats struct {
	ClientCount  int
	TotalIncome  decimal.Decimal
	PendingTotal decimal.Decimal
	PendingCount int
}

// Stats computes the derived dashboard totals. Nothing here is stored;
// "overdue" style distinctions are always derived, never persisted.
func (b *Book) Stats() Stats {
	s := Stats{
		ClientCount:  len(b.Clients),
		TotalIncome:  decimal.Zero,
		PendingTotal: decimal.Zero,
	}
	for _, p := range b.Payments {
		s.TotalIncome = s.TotalIncome.Add(p.Amount)
	}
	for _, c := range b.Clients {
		if c.IsPending() {
			s.PendingTotal = s.PendingTotal.Add(c.MonthlyAmount)
			s.PendingCount++
		}
	}
	return s
}
