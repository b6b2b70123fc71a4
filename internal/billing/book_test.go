package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/alexgomez/lavafix/internal/errors"
	"github.com/alexgomez/lavafix/internal/model"
	"github.com/alexgomez/lavafix/internal/storage"
)

func openTestBook(t *testing.T) *Book {
	t.Helper()
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return Open(db)
}

func addClient(t *testing.T, b *Book, name, phone string, amount int64) *model.Client {
	t.Helper()
	c, err := b.UpsertClient(ClientInput{
		Name:          name,
		Phone1:        phone,
		MonthlyAmount: decimal.NewFromInt(amount),
	})
	require.NoError(t, err)
	require.NotNil(t, c)
	return c
}

func TestUpsertClient(t *testing.T) {
	t.Run("adds a new pending client", func(t *testing.T) {
		b := openTestBook(t)

		c := addClient(t, b, "Ana López", "55512345", 200)

		assert.Len(t, b.Clients, 1)
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, model.StatusPending, c.Status)
		assert.Nil(t, c.LastPaymentDate)
		assert.True(t, c.MonthlyAmount.Equal(decimal.NewFromInt(200)))
	})

	t.Run("defaults the monthly amount when none given", func(t *testing.T) {
		b := openTestBook(t)

		c, err := b.UpsertClient(ClientInput{Name: "Luis", Phone1: "44412345"})
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.True(t, c.MonthlyAmount.Equal(model.DefaultMonthlyAmount))
	})

	t.Run("silently ignores a new client without name or phone", func(t *testing.T) {
		b := openTestBook(t)

		c, err := b.UpsertClient(ClientInput{Name: "Ana"})
		require.NoError(t, err)
		assert.Nil(t, c)

		c, err = b.UpsertClient(ClientInput{Phone1: "55512345"})
		require.NoError(t, err)
		assert.Nil(t, c)

		assert.Empty(t, b.Clients)
	})

	t.Run("edit merges only the provided fields", func(t *testing.T) {
		b := openTestBook(t)
		c := addClient(t, b, "Ana", "55512345", 200)

		updated, err := b.UpsertClient(ClientInput{
			ID:     c.ID,
			Phone2: "44498765",
		})
		require.NoError(t, err)
		require.NotNil(t, updated)

		assert.Equal(t, "Ana", updated.Name)
		assert.Equal(t, "55512345", updated.Phone1)
		assert.Equal(t, "44498765", updated.Phone2)
		assert.True(t, updated.MonthlyAmount.Equal(decimal.NewFromInt(200)))
		assert.Len(t, b.Clients, 1)
	})

	t.Run("edit does not change payment status", func(t *testing.T) {
		b := openTestBook(t)
		c := addClient(t, b, "Ana", "55512345", 200)
		_, err := b.RecordPayment(c.ID, "")
		require.NoError(t, err)

		_, err = b.UpsertClient(ClientInput{ID: c.ID, Name: "Ana María"})
		require.NoError(t, err)
		assert.Equal(t, model.StatusPaid, c.Status)
	})
}

func TestRecordPayment(t *testing.T) {
	t.Run("prepends a record and marks the client paid", func(t *testing.T) {
		b := openTestBook(t)
		c := addClient(t, b, "Ana", "55512345", 200)

		rec, err := b.RecordPayment(c.ID, "paid cash")
		require.NoError(t, err)

		assert.Equal(t, c.ID, rec.ClientID)
		assert.Equal(t, "Ana", rec.ClientName)
		assert.True(t, rec.Amount.Equal(decimal.NewFromInt(200)))
		assert.Equal(t, "paid cash", rec.Notes)

		assert.Equal(t, model.StatusPaid, c.Status)
		require.NotNil(t, c.LastPaymentDate)
		assert.Equal(t, rec.Date, *c.LastPaymentDate)

		require.Len(t, b.Payments, 1)
		assert.Same(t, rec, b.Payments[0])
	})

	t.Run("newest record comes first", func(t *testing.T) {
		b := openTestBook(t)
		ana := addClient(t, b, "Ana", "55512345", 200)
		luis := addClient(t, b, "Luis", "44412345", 150)

		_, err := b.RecordPayment(ana.ID, "")
		require.NoError(t, err)
		second, err := b.RecordPayment(luis.ID, "")
		require.NoError(t, err)

		require.Len(t, b.Payments, 2)
		assert.Same(t, second, b.Payments[0])
	})

	t.Run("unknown client", func(t *testing.T) {
		b := openTestBook(t)
		_, err := b.RecordPayment("nope", "")
		assert.ErrorIs(t, err, apperrors.ErrClientNotFound)
	})
}

func TestUndoPayment(t *testing.T) {
	t.Run("round trip returns the client to its starting state", func(t *testing.T) {
		b := openTestBook(t)
		c := addClient(t, b, "Ana", "55512345", 200)

		_, err := b.RecordPayment(c.ID, "")
		require.NoError(t, err)

		removed, err := b.UndoPayment(c.ID)
		require.NoError(t, err)
		require.NotNil(t, removed)

		assert.Equal(t, model.StatusPending, c.Status)
		assert.Nil(t, c.LastPaymentDate)
		assert.Empty(t, b.Payments)
	})

	t.Run("removes the latest record for the client only", func(t *testing.T) {
		b := openTestBook(t)
		ana := addClient(t, b, "Ana", "55512345", 200)
		luis := addClient(t, b, "Luis", "44412345", 150)

		old := &model.PaymentRecord{
			ID: model.NewID(), ClientID: ana.ID, ClientName: "Ana",
			Amount: decimal.NewFromInt(200), Date: time.Now().Add(-48 * time.Hour),
		}
		mid := &model.PaymentRecord{
			ID: model.NewID(), ClientID: luis.ID, ClientName: "Luis",
			Amount: decimal.NewFromInt(150), Date: time.Now().Add(-24 * time.Hour),
		}
		latest := &model.PaymentRecord{
			ID: model.NewID(), ClientID: ana.ID, ClientName: "Ana",
			Amount: decimal.NewFromInt(200), Date: time.Now(),
		}
		b.Payments = []*model.PaymentRecord{latest, mid, old}

		removed, err := b.UndoPayment(ana.ID)
		require.NoError(t, err)
		require.NotNil(t, removed)
		assert.Equal(t, latest.ID, removed.ID)

		require.Len(t, b.Payments, 2)
		assert.Equal(t, mid.ID, b.Payments[0].ID)
		assert.Equal(t, old.ID, b.Payments[1].ID)
	})

	t.Run("timestamp ties go to the record closest to the ledger head", func(t *testing.T) {
		b := openTestBook(t)
		ana := addClient(t, b, "Ana", "55512345", 200)

		when := time.Now()
		first := &model.PaymentRecord{
			ID: model.NewID(), ClientID: ana.ID, ClientName: "Ana",
			Amount: decimal.NewFromInt(200), Date: when,
		}
		second := &model.PaymentRecord{
			ID: model.NewID(), ClientID: ana.ID, ClientName: "Ana",
			Amount: decimal.NewFromInt(200), Date: when,
		}
		b.Payments = []*model.PaymentRecord{first, second}

		removed, err := b.UndoPayment(ana.ID)
		require.NoError(t, err)
		require.NotNil(t, removed)
		assert.Equal(t, first.ID, removed.ID)
	})

	t.Run("reverts status even with an empty ledger", func(t *testing.T) {
		b := openTestBook(t)
		c := addClient(t, b, "Ana", "55512345", 200)
		now := time.Now()
		c.MarkPaid(now)

		removed, err := b.UndoPayment(c.ID)
		require.NoError(t, err)
		assert.Nil(t, removed)
		assert.Equal(t, model.StatusPending, c.Status)
		assert.Nil(t, c.LastPaymentDate)
	})

	t.Run("unknown client", func(t *testing.T) {
		b := openTestBook(t)
		_, err := b.UndoPayment("nope")
		assert.ErrorIs(t, err, apperrors.ErrClientNotFound)
	})
}

func TestDeleteClient(t *testing.T) {
	t.Run("cascades to the client's ledger records", func(t *testing.T) {
		b := openTestBook(t)
		ana := addClient(t, b, "Ana", "55512345", 200)
		luis := addClient(t, b, "Luis", "44412345", 150)

		_, err := b.RecordPayment(ana.ID, "")
		require.NoError(t, err)
		_, err = b.RecordPayment(luis.ID, "")
		require.NoError(t, err)
		_, err = b.RecordPayment(ana.ID, "second")
		require.NoError(t, err)

		deleted, err := b.DeleteClient(ana.ID)
		require.NoError(t, err)
		require.NotNil(t, deleted)
		assert.Equal(t, ana.ID, deleted.ID)

		require.Len(t, b.Clients, 1)
		assert.Equal(t, luis.ID, b.Clients[0].ID)
		require.Len(t, b.Payments, 1)
		assert.Equal(t, luis.ID, b.Payments[0].ClientID)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		b := openTestBook(t)
		addClient(t, b, "Ana", "55512345", 200)

		deleted, err := b.DeleteClient("nope")
		require.NoError(t, err)
		assert.Nil(t, deleted)
		assert.Len(t, b.Clients, 1)
	})
}

func TestResetCycle(t *testing.T) {
	b := openTestBook(t)
	ana := addClient(t, b, "Ana", "55512345", 200)
	luis := addClient(t, b, "Luis", "44412345", 150)

	_, err := b.RecordPayment(ana.ID, "")
	require.NoError(t, err)
	paidAt := *ana.LastPaymentDate

	_, err = b.ToggleReminder(luis.ID)
	require.NoError(t, err)

	require.NoError(t, b.ResetCycle())

	assert.Empty(t, b.Payments)
	for _, c := range b.Clients {
		assert.Equal(t, model.StatusPending, c.Status)
		assert.False(t, c.ReminderSent)
	}
	// The previous cycle's payment timestamp survives the reset.
	require.NotNil(t, ana.LastPaymentDate)
	assert.Equal(t, paidAt, *ana.LastPaymentDate)
}

func TestEditRecord(t *testing.T) {
	t.Run("patches only the provided fields", func(t *testing.T) {
		b := openTestBook(t)
		c := addClient(t, b, "Ana", "55512345", 200)
		rec, err := b.RecordPayment(c.ID, "original")
		require.NoError(t, err)

		when := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)
		amount := decimal.NewFromInt(175)
		updated, err := b.EditRecord(rec.ID, RecordPatch{Date: &when, Amount: &amount})
		require.NoError(t, err)
		require.NotNil(t, updated)

		assert.Equal(t, when, updated.Date)
		assert.True(t, updated.Amount.Equal(amount))
		assert.Equal(t, "original", updated.Notes)
		assert.Equal(t, model.StatusPaid, c.Status)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		b := openTestBook(t)
		updated, err := b.EditRecord("nope", RecordPatch{})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})
}

func TestDeleteRecord(t *testing.T) {
	b := openTestBook(t)
	c := addClient(t, b, "Ana", "55512345", 200)
	rec, err := b.RecordPayment(c.ID, "")
	require.NoError(t, err)

	removed, err := b.DeleteRecord(rec.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, b.Payments)
	// Deleting a record never re-flips the client.
	assert.Equal(t, model.StatusPaid, c.Status)

	removed, err = b.DeleteRecord(rec.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestQueryPayments(t *testing.T) {
	b := openTestBook(t)
	ana := addClient(t, b, "Ana López", "55512345", 200)
	luis := addClient(t, b, "Luis", "44412345", 150)

	mk := func(c *model.Client, date time.Time) *model.PaymentRecord {
		return &model.PaymentRecord{
			ID: model.NewID(), ClientID: c.ID, ClientName: c.Name,
			Amount: c.MonthlyAmount, Date: date,
		}
	}
	b.Payments = []*model.PaymentRecord{
		mk(ana, time.Date(2026, 3, 5, 10, 0, 0, 0, time.Local)),
		mk(luis, time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)),
		mk(ana, time.Date(2025, 12, 28, 10, 0, 0, 0, time.Local)),
		mk(ana, time.Date(2024, 7, 1, 10, 0, 0, 0, time.Local)),
	}

	t.Run("no filter returns the full ledger in order", func(t *testing.T) {
		out := b.QueryPayments(PaymentFilter{})
		require.Len(t, out, 4)
		assert.Equal(t, b.Payments[0].ID, out[0].ID)
	})

	t.Run("filters by year", func(t *testing.T) {
		out := b.QueryPayments(PaymentFilter{Year: 2024})
		require.Len(t, out, 1)
		assert.Equal(t, 2024, out[0].Date.Year())
	})

	t.Run("filters by month alone", func(t *testing.T) {
		out := b.QueryPayments(PaymentFilter{Month: time.December})
		require.Len(t, out, 1)
		assert.Equal(t, 2025, out[0].Date.Year())
	})

	t.Run("filters compose with AND", func(t *testing.T) {
		out := b.QueryPayments(PaymentFilter{Name: "ana", Year: 2026, Month: time.March})
		require.Len(t, out, 1)
		assert.Equal(t, ana.ID, out[0].ClientID)
	})

	t.Run("name match is a case-insensitive substring", func(t *testing.T) {
		out := b.QueryPayments(PaymentFilter{Name: "LÓPEZ"})
		assert.Len(t, out, 3)
	})
}

func TestFindClient(t *testing.T) {
	b := openTestBook(t)
	ana := addClient(t, b, "Ana López", "55512345", 200)
	addClient(t, b, "Luis Anaya", "44412345", 150)

	t.Run("exact id", func(t *testing.T) {
		c, err := b.FindClient(ana.ID)
		require.NoError(t, err)
		assert.Equal(t, ana.ID, c.ID)
	})

	t.Run("exact name beats substring matches", func(t *testing.T) {
		c, err := b.FindClient("ana lópez")
		require.NoError(t, err)
		assert.Equal(t, ana.ID, c.ID)
	})

	t.Run("unique substring", func(t *testing.T) {
		c, err := b.FindClient("luis")
		require.NoError(t, err)
		assert.Equal(t, "Luis Anaya", c.Name)
	})

	t.Run("ambiguous substring is an error", func(t *testing.T) {
		_, err := b.FindClient("ana")
		var ue *apperrors.UserError
		require.ErrorAs(t, err, &ue)
		assert.Contains(t, ue.Suggestion, "Ana López")
		assert.Contains(t, ue.Suggestion, "Luis Anaya")
	})

	t.Run("unique id prefix", func(t *testing.T) {
		c, err := b.FindClient(ana.ID[:8])
		require.NoError(t, err)
		assert.Equal(t, ana.ID, c.ID)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := b.FindClient("zzz")
		assert.ErrorIs(t, err, apperrors.ErrClientNotFound)
	})
}

func TestSortClients(t *testing.T) {
	b := openTestBook(t)
	zoe := addClient(t, b, "Zoe", "111", 100)
	angel := addClient(t, b, "Ángel", "222", 100)
	berta := addClient(t, b, "Berta", "333", 100)
	_, err := b.RecordPayment(berta.ID, "")
	require.NoError(t, err)

	t.Run("by name uses Spanish collation", func(t *testing.T) {
		sorted := SortClients(b.Clients, SortName, false)
		assert.Equal(t, []string{angel.Name, berta.Name, zoe.Name},
			[]string{sorted[0].Name, sorted[1].Name, sorted[2].Name})
	})

	t.Run("by status puts paid first ascending", func(t *testing.T) {
		sorted := SortClients(b.Clients, SortStatus, false)
		assert.Equal(t, berta.ID, sorted[0].ID)
	})

	t.Run("descending reverses the comparison", func(t *testing.T) {
		sorted := SortClients(b.Clients, SortName, true)
		assert.Equal(t, zoe.Name, sorted[0].Name)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		first := b.Clients[0].ID
		SortClients(b.Clients, SortName, true)
		assert.Equal(t, first, b.Clients[0].ID)
	})
}

func TestNotifications(t *testing.T) {
	b := openTestBook(t)
	c := addClient(t, b, "Ana", "55512345", 200)
	_, err := b.RecordPayment(c.ID, "")
	require.NoError(t, err)

	require.Len(t, b.Notifications, 2)
	// Newest first.
	assert.Equal(t, "Payment Received", b.Notifications[0].Title)
	assert.Equal(t, "New Client", b.Notifications[1].Title)
	assert.Contains(t, b.Notifications[0].Message, "Q200.00")
	assert.Contains(t, b.Notifications[0].Message, "Ana")
}

func TestStats(t *testing.T) {
	b := openTestBook(t)
	ana := addClient(t, b, "Ana", "55512345", 200)
	addClient(t, b, "Luis", "44412345", 150)
	addClient(t, b, "Berta", "33312345", 175)

	_, err := b.RecordPayment(ana.ID, "")
	require.NoError(t, err)

	s := b.Stats()
	assert.Equal(t, 3, s.ClientCount)
	assert.True(t, s.TotalIncome.Equal(decimal.NewFromInt(200)))
	assert.True(t, s.PendingTotal.Equal(decimal.NewFromInt(325)))
	assert.Equal(t, 2, s.PendingCount)
}

func TestPersistenceRoundTrip(t *testing.T) {
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	defer db.Close()

	b := Open(db)
	ana := addClient(t, b, "Ana", "55512345", 200)
	_, err = b.RecordPayment(ana.ID, "march")
	require.NoError(t, err)

	// A fresh Book over the same store sees the same state.
	reloaded := Open(db)
	require.Len(t, reloaded.Clients, 1)
	assert.Equal(t, ana.ID, reloaded.Clients[0].ID)
	assert.Equal(t, model.StatusPaid, reloaded.Clients[0].Status)
	assert.True(t, reloaded.Clients[0].MonthlyAmount.Equal(decimal.NewFromInt(200)))
	require.Len(t, reloaded.Payments, 1)
	assert.Equal(t, "march", reloaded.Payments[0].Notes)
	require.Len(t, reloaded.Notifications, 2)
}
