package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexgomez/lavafix/internal/model"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green
	colorPending = lipgloss.Color("#F43F5E") // Rose

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	stylePaid = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSuccess)

	stylePending = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPending)

	styleNote = lipgloss.NewStyle().
			Italic(true).
			Foreground(colorMuted)
)

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	if c.IsColorEnabled() {
		c.Println(styleTitle.Render(text))
	} else {
		c.Println(text)
	}
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	if c.IsColorEnabled() {
		c.Println(styleSuccess.Render("✓ " + text))
	} else {
		c.Println("✓ " + text)
	}
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	if c.IsColorEnabled() {
		c.Println(styleWarning.Render("⚠ " + text))
	} else {
		c.Println("⚠ " + text)
	}
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	if c.IsColorEnabled() {
		c.Println(styleError.Render("✗ " + text))
	} else {
		c.Println("✗ " + text)
	}
}

// Muted prints de-emphasized text.
func (c *CLIFormatter) Muted(text string) {
	if c.IsColorEnabled() {
		c.Println(styleMuted.Render(text))
	} else {
		c.Println(text)
	}
}

// Bold returns bolded text.
func (c *CLIFormatter) Bold(text string) string {
	if c.IsColorEnabled() {
		return styleBold.Render(text)
	}
	return text
}

// Note returns note-styled text.
func (c *CLIFormatter) Note(text string) string {
	if c.IsColorEnabled() {
		return styleNote.Render(text)
	}
	return text
}

// Status returns a colored client status label.
func (c *CLIFormatter) Status(s model.Status) string {
	if !c.IsColorEnabled() {
		return string(s)
	}
	if s == model.StatusPaid {
		return stylePaid.Render(string(s))
	}
	return stylePending.Render(string(s))
}

// SeverityIcon returns a colored severity glyph for the notification feed.
func (c *CLIFormatter) SeverityIcon(n *model.Notification) string {
	if !c.IsColorEnabled() {
		return n.Icon()
	}
	switch n.Severity {
	case model.SeveritySuccess:
		return styleSuccess.Render(n.Icon())
	case model.SeverityWarning:
		return styleWarning.Render(n.Icon())
	default:
		return styleMuted.Render(n.Icon())
	}
}

// TableRow is one row of a simple table.
type TableRow struct {
	Columns []string
}

// padCell pads a cell to its rendered width. fmt's %-*s counts bytes, which
// breaks on ANSI-styled and accented cells.
func padCell(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// PrintTable prints a simple table.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	// Column widths by rendered cell width
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if w := lipgloss.Width(col); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}

	// Print headers
	var headerLine strings.Builder
	for i, h := range headers {
		headerLine.WriteString(padCell(h, widths[i]) + "  ")
	}
	if c.IsColorEnabled() {
		c.Println(styleBold.Render(headerLine.String()))
	} else {
		c.Println(headerLine.String())
	}

	// Print separator
	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(sep.String())

	// Print rows
	for _, row := range rows {
		var rowLine strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				rowLine.WriteString(padCell(col, widths[i]) + "  ")
			}
		}
		c.Println(strings.TrimRight(rowLine.String(), " "))
	}
}
