package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/alexgomez/lavafix/internal/errors"
)

func TestParseDateExplicit(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2026-03-01", time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)},
		{"01/03/2026", time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)},
		{"2026-03-01 14:30", time.Date(2026, 3, 1, 14, 30, 0, 0, time.Local)},
		{"2026-03-01 14:30:15", time.Date(2026, 3, 1, 14, 30, 15, 0, time.Local)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseDateNow(t *testing.T) {
	for _, input := range []string{"", "now", "NOW", "  "} {
		got, err := ParseDate(input)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), got, time.Minute)
	}
}

func TestParseDateNaturalLanguage(t *testing.T) {
	got, err := ParseDate("yesterday")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(-24*time.Hour), got, 2*time.Hour)
}

func TestParseDateInvalid(t *testing.T) {
	_, err := ParseDate("definitely not a date ###")
	require.Error(t, err)

	var ue *apperrors.UserError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "date", ue.Field)
	assert.NotEmpty(t, ue.Suggestion)
}
