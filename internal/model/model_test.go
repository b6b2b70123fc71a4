package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestNewClient(t *testing.T) {
	t.Run("starts pending with no payment date", func(t *testing.T) {
		c := NewClient("Ana", "55512345", "", decimal.NewFromInt(200))
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, StatusPending, c.Status)
		assert.Nil(t, c.LastPaymentDate)
		assert.NotZero(t, c.CreatedAt)
		assert.False(t, c.ReminderSent)
	})

	t.Run("zero amount falls back to the default", func(t *testing.T) {
		c := NewClient("Ana", "55512345", "", decimal.Zero)
		assert.True(t, c.MonthlyAmount.Equal(DefaultMonthlyAmount))
	})
}

func TestClientStatusTransitions(t *testing.T) {
	c := NewClient("Ana", "55512345", "", decimal.Zero)
	require.True(t, c.IsPending())

	now := time.Now()
	c.MarkPaid(now)
	assert.Equal(t, StatusPaid, c.Status)
	require.NotNil(t, c.LastPaymentDate)
	assert.Equal(t, now, *c.LastPaymentDate)

	c.MarkPending()
	assert.True(t, c.IsPending())
	assert.Nil(t, c.LastPaymentDate)
}

func TestClientMatches(t *testing.T) {
	c := NewClient("Ana López", "55512345", "44498765", decimal.Zero)

	assert.True(t, c.Matches(""))
	assert.True(t, c.Matches("LÓPEZ"))
	assert.True(t, c.Matches("5551"))
	assert.True(t, c.Matches("98765"))
	assert.False(t, c.Matches("luis"))
}

func TestClientPhones(t *testing.T) {
	c := NewClient("Ana", "55512345", "44498765", decimal.Zero)
	assert.Equal(t, []string{"55512345", "44498765"}, c.Phones())

	c.Phone2 = "  "
	assert.Equal(t, []string{"55512345"}, c.Phones())
}

func TestNewPaymentRecord(t *testing.T) {
	c := NewClient("Ana", "55512345", "", decimal.NewFromInt(200))
	when := time.Now()

	rec := NewPaymentRecord(c, "paid cash", when)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, c.ID, rec.ClientID)
	assert.Equal(t, "Ana", rec.ClientName)
	assert.True(t, rec.Amount.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, when, rec.Date)
	assert.Equal(t, "paid cash", rec.Notes)

	// The record snapshots name and amount; later client edits must not
	// rewrite history.
	c.Name = "Ana María"
	c.MonthlyAmount = decimal.NewFromInt(300)
	assert.Equal(t, "Ana", rec.ClientName)
	assert.True(t, rec.Amount.Equal(decimal.NewFromInt(200)))
}

func TestNotificationIcon(t *testing.T) {
	assert.Equal(t, "✓", NewNotification("t", "m", SeveritySuccess).Icon())
	assert.Equal(t, "⚠", NewNotification("t", "m", SeverityWarning).Icon())
	assert.Equal(t, "ℹ", NewNotification("t", "m", SeverityInfo).Icon())
}

func TestClientJSON(t *testing.T) {
	c := NewClient("Ana", "55512345", "", decimal.NewFromInt(200))

	data, err := json.Marshal(c)
	require.NoError(t, err)
	// Hidden optional fields stay out of the stored form.
	assert.NotContains(t, string(data), "last_payment_date")
	assert.NotContains(t, string(data), "phone2")

	var back Client
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, c.ID, back.ID)
	assert.Equal(t, StatusPending, back.Status)
	assert.True(t, back.MonthlyAmount.Equal(decimal.NewFromInt(200)))
}
