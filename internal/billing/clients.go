package billing

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	apperrors "github.com/alexgomez/lavafix/internal/errors"
	"github.com/alexgomez/lavafix/internal/model"
)

// ClientInput carries the fields of an add or edit action. On edit, zero
// values mean "leave unchanged"; the CLI forms never need to blank a field
// that was previously set, matching the original partial-merge behavior.
type ClientInput struct {
	ID            string
	Name          string
	Phone1        string
	Phone2        string
	MonthlyAmount decimal.Decimal
	Image         string
}

// UpsertClient creates or updates a client. A new client (no matching ID)
// requires a name and primary phone; when either is missing the operation is
// a silent no-op and returns nil — the caller is expected to validate first,
// the core never raises on bad input. New clients default to Pending with the
// default monthly amount when none is given.
func (b *Book) UpsertClient(in ClientInput) (*model.Client, error) {
	if in.ID != "" {
		if existing := b.clientByID(in.ID); existing != nil {
			mergeClient(existing, in)
			if err := b.saveClients(); err != nil {
				return nil, err
			}
			if err := b.Notify("Client Updated", "Details for "+existing.Name+" updated.", model.SeverityInfo); err != nil {
				return nil, err
			}
			return existing, nil
		}
	}

	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Phone1) == "" {
		return nil, nil
	}

	c := model.NewClient(in.Name, in.Phone1, in.Phone2, in.MonthlyAmount)
	c.Image = in.Image
	b.Clients = append(b.Clients, c)
	if err := b.saveClients(); err != nil {
		return nil, err
	}
	if err := b.Notify("New Client", c.Name+" added.", model.SeveritySuccess); err != nil {
		return nil, err
	}
	return c, nil
}

// mergeClient applies the provided fields of in over c.
func mergeClient(c *model.Client, in ClientInput) {
	if strings.TrimSpace(in.Name) != "" {
		c.Name = in.Name
	}
	if strings.TrimSpace(in.Phone1) != "" {
		c.Phone1 = in.Phone1
	}
	if strings.TrimSpace(in.Phone2) != "" {
		c.Phone2 = in.Phone2
	}
	if !in.MonthlyAmount.IsZero() {
		c.MonthlyAmount = in.MonthlyAmount
	}
	if in.Image != "" {
		c.Image = in.Image
	}
}

// DeleteClient removes a client and cascades to every ledger record that
// references it. Unknown ids are a no-op. Irreversible; confirmation is the
// caller's responsibility.
func (b *Book) DeleteClient(id string) (*model.Client, error) {
	c := b.clientByID(id)
	if c == nil {
		return nil, nil
	}

	clients := b.Clients[:0]
	for _, existing := range b.Clients {
		if existing.ID != id {
			clients = append(clients, existing)
		}
	}
	b.Clients = clients

	payments := b.Payments[:0]
	for _, p := range b.Payments {
		if p.ClientID != id {
			payments = append(payments, p)
		}
	}
	b.Payments = payments

	if err := b.saveClients(); err != nil {
		return nil, err
	}
	if err := b.savePayments(); err != nil {
		return nil, err
	}
	if err := b.Notify("Client Deleted", "Data removed permanently.", model.SeverityWarning); err != nil {
		return nil, err
	}
	return c, nil
}

// SearchClients returns clients matching a case-insensitive substring of
// name or either phone. An empty term matches all.
func (b *Book) SearchClients(term string) []*model.Client {
	var out []*model.Client
	for _, c := range b.Clients {
		if c.Matches(term) {
			out = append(out, c)
		}
	}
	return out
}

// PendingClients returns the clients that still owe for this cycle,
// optionally narrowed by a search term.
func (b *Book) PendingClients(term string) []*model.Client {
	var out []*model.Client
	for _, c := range b.Clients {
		if c.IsPending() && c.Matches(term) {
			out = append(out, c)
		}
	}
	return out
}

// ToggleReminder flips the reminder-sent flag on a client.
func (b *Book) ToggleReminder(id string) (*model.Client, error) {
	c := b.clientByID(id)
	if c == nil {
		return nil, apperrors.ErrClientNotFound
	}
	c.ReminderSent = !c.ReminderSent
	if err := b.saveClients(); err != nil {
		return nil, err
	}
	return c, nil
}

// clientByID returns the client with the exact id, or nil.
func (b *Book) clientByID(id string) *model.Client {
	for _, c := range b.Clients {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// FindClient resolves a user-supplied reference to a single client: exact
// id, then exact name (case-insensitive), then a unique name substring, then
// a unique id prefix. Ambiguous references are reported rather than guessed.
func (b *Book) FindClient(ref string) (*model.Client, error) {
	if c := b.clientByID(ref); c != nil {
		return c, nil
	}

	lower := strings.ToLower(ref)
	for _, c := range b.Clients {
		if strings.ToLower(c.Name) == lower {
			return c, nil
		}
	}

	var matches []*model.Client
	for _, c := range b.Clients {
		if strings.Contains(strings.ToLower(c.Name), lower) {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		for _, c := range b.Clients {
			if strings.HasPrefix(c.ID, ref) {
				matches = append(matches, c)
			}
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, apperrors.ErrClientNotFound
	default:
		names := make([]string, len(matches))
		for i, c := range matches {
			names[i] = c.Name
		}
		return nil, apperrors.NewUserErrorWithField("client", ref,
			"Ambiguous client reference",
			"Matches: "+strings.Join(names, ", "))
	}
}

// SortKey selects the client list ordering.
type SortKey string

// Sort keys. SortCreated is the insertion order default.
const (
	SortCreated SortKey = "created"
	SortName    SortKey = "name"
	SortStatus  SortKey = "status"
)

// SortClients returns a sorted copy of clients. Name ordering is collated
// for Spanish, matching the original locale compare. Status ordering puts
// Paid before Pending ascending. Sorting is stable: equal elements keep
// their relative order, and descending order is the exact reverse comparison
// rather than a reversal of the slice.
func SortClients(clients []*model.Client, key SortKey, desc bool) []*model.Client {
	sorted := make([]*model.Client, len(clients))
	copy(sorted, clients)

	var less func(i, j int) bool
	switch key {
	case SortName:
		cl := collate.New(language.Spanish, collate.IgnoreCase)
		less = func(i, j int) bool {
			return cl.CompareString(sorted[i].Name, sorted[j].Name) < 0
		}
	case SortStatus:
		less = func(i, j int) bool {
			if sorted[i].Status == sorted[j].Status {
				return false
			}
			return sorted[i].Status == model.StatusPaid
		}
	default:
		less = func(i, j int) bool {
			return sorted[i].CreatedAt < sorted[j].CreatedAt
		}
	}

	if desc {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}

	sort.SliceStable(sorted, less)
	return sorted
}
