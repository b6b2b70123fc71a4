package model

import (
	"time"
)

// Severity tags a notification for display.
type Severity string

// Notification severities.
const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
)

// Notification is one entry in the append-only activity feed. Entries are
// never mutated or pruned; the feed grows without bound.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// NewNotification creates a feed entry stamped with the current time.
func NewNotification(title, message string, severity Severity) *Notification {
	return &Notification{
		ID:        NewID(),
		Title:     title,
		Message:   message,
		Severity:  severity,
		Timestamp: time.Now(),
	}
}

// Icon returns a glyph for the severity, used by the CLI feed.
func (n *Notification) Icon() string {
	switch n.Severity {
	case SeveritySuccess:
		return "✓"
	case SeverityWarning:
		return "⚠"
	default:
		return "ℹ"
	}
}
