// Package parser provides date input parsing for the LavaFix CLI.
package parser

import (
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	apperrors "github.com/alexgomez/lavafix/internal/errors"
)

// explicitLayouts are tried before natural language parsing so unambiguous
// inputs never depend on parser heuristics.
var explicitLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006",
}

// ParseDate parses a date for the ledger edit command. Accepts explicit
// formats first, then natural language ("yesterday", "march 3", "last
// friday") via go-dateparser.
func ParseDate(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, "now") {
		return time.Now(), nil
	}

	for _, layout := range explicitLayouts {
		if t, err := time.ParseInLocation(layout, input, time.Local); err == nil {
			return t, nil
		}
	}

	cfg := &dateparser.Configuration{
		CurrentTime: time.Now(),
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return time.Time{}, apperrors.NewUserErrorWithField("date", input,
			"Could not parse date",
			"Use a format like 2024-03-01, 01/03/2024 or 'last friday'")
	}
	return result.Time, nil
}
