package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is a client's payment state within the current billing cycle.
type Status string

const (
	StatusPaid    Status = "Paid"
	StatusPending Status = "Pending"
)

// DefaultMonthlyAmount is applied when a client is created without an amount.
var DefaultMonthlyAmount = decimal.NewFromInt(150)

// Client is a billing subject with a recurring monthly charge.
type Client struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Phone1          string          `json:"phone1"`
	Phone2          string          `json:"phone2,omitempty"`
	MonthlyAmount   decimal.Decimal `json:"monthly_amount"`
	Status          Status          `json:"status"`
	LastPaymentDate *time.Time      `json:"last_payment_date,omitempty"`
	CreatedAt       int64           `json:"created_at"` // epoch milliseconds
	Image           string          `json:"image,omitempty"`
	ReminderSent    bool            `json:"reminder_sent"`
}

// NewClient creates a pending client with a fresh identifier. A zero amount
// falls back to DefaultMonthlyAmount.
func NewClient(name, phone1, phone2 string, amount decimal.Decimal) *Client {
	if amount.IsZero() {
		amount = DefaultMonthlyAmount
	}
	return &Client{
		ID:            NewID(),
		Name:          name,
		Phone1:        phone1,
		Phone2:        phone2,
		MonthlyAmount: amount,
		Status:        StatusPending,
		CreatedAt:     time.Now().UnixMilli(),
	}
}

// IsPending returns true if the client owes for the current cycle.
func (c *Client) IsPending() bool {
	return c.Status == StatusPending
}

// MarkPaid flips the client to Paid and records the payment time. The status
// and last-payment timestamp always move together.
func (c *Client) MarkPaid(at time.Time) {
	c.Status = StatusPaid
	t := at
	c.LastPaymentDate = &t
}

// MarkPending reverts the client to Pending and clears the last-payment
// timestamp.
func (c *Client) MarkPending() {
	c.Status = StatusPending
	c.LastPaymentDate = nil
}

// Matches reports whether the client matches a case-insensitive substring
// search over name and both phone numbers. An empty term matches everything.
func (c *Client) Matches(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(c.Name), term) {
		return true
	}
	if strings.Contains(c.Phone1, term) {
		return true
	}
	return c.Phone2 != "" && strings.Contains(c.Phone2, term)
}

// Phones returns the phone numbers on file, primary first.
func (c *Client) Phones() []string {
	phones := []string{}
	if c.Phone1 != "" {
		phones = append(phones, c.Phone1)
	}
	if strings.TrimSpace(c.Phone2) != "" {
		phones = append(phones, c.Phone2)
	}
	return phones
}
