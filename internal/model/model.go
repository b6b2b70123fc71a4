// Package model defines the domain models for LavaFix.
package model

import "github.com/google/uuid"

// NewID returns a UUIDv7 string. Version 7 keeps identifiers sortable by
// creation time, which the payment ledger and notification feed rely on as a
// tiebreaker. Falls back to a random UUIDv4 if the system clock source fails.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
