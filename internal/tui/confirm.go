// Package tui provides the interactive terminal components for LavaFix.
package tui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Tier is the severity of a confirmation. Destructive whole-collection
// operations use TierDanger; single-record corrections use TierWarning.
type Tier string

// Confirmation tiers.
const (
	TierInfo    Tier = "info"
	TierWarning Tier = "warning"
	TierDanger  Tier = "danger"
)

// Confirm describes a blocking confirmation put to the user before a
// mutating callback runs. Cancel must perform no state change, so callers
// only act on a true result.
type Confirm struct {
	Title   string
	Message string
	Action  string // label of the confirming choice, e.g. "Delete"
	Tier    Tier
}

// Run presents the confirmation and blocks until the user decides. On a
// terminal this is a bubbletea modal; otherwise it degrades to a plain
// y/N prompt on stdin.
func (c Confirm) Run() (bool, error) {
	if c.Action == "" {
		c.Action = "Confirm"
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return c.runPlain()
	}

	m, err := tea.NewProgram(newConfirmModel(c)).Run()
	if err != nil {
		return false, err
	}
	return m.(confirmModel).accepted, nil
}

// runPlain is the non-TTY fallback.
func (c Confirm) runPlain() (bool, error) {
	fmt.Fprintf(os.Stderr, "%s\n%s\n%s? [y/N] ", c.Title, c.Message, c.Action)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, nil
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// Styles for the confirm modal.
var (
	tierColors = map[Tier]lipgloss.Color{
		TierInfo:    lipgloss.Color("#3B82F6"), // Blue
		TierWarning: lipgloss.Color("#F97316"), // Orange
		TierDanger:  lipgloss.Color("#F43F5E"), // Rose
	}

	confirmBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 3)

	confirmTitle = lipgloss.NewStyle().Bold(true)

	confirmMessage = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Width(48)

	buttonIdle = lipgloss.NewStyle().
			Padding(0, 3).
			Foreground(lipgloss.Color("#6B7280"))

	buttonFocus = lipgloss.NewStyle().
			Padding(0, 3).
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))
)

// confirmModel is the bubbletea model for the modal. The cancel choice is
// focused initially; enter only confirms after an explicit move.
type confirmModel struct {
	confirm  Confirm
	focused  bool // true when the confirming choice has focus
	accepted bool
}

func newConfirmModel(c Confirm) confirmModel {
	return confirmModel{confirm: c}
}

// Init implements tea.Model.
func (m confirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "left", "right", "tab", "h", "l":
		m.focused = !m.focused
	case "y":
		m.accepted = true
		return m, tea.Quit
	case "n", "q", "esc", "ctrl+c":
		m.accepted = false
		return m, tea.Quit
	case "enter":
		m.accepted = m.focused
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m confirmModel) View() string {
	color := tierColors[m.confirm.Tier]
	if color == "" {
		color = tierColors[TierWarning]
	}

	cancel := buttonIdle.Render("Cancel")
	action := buttonIdle.Render(m.confirm.Action)
	if m.focused {
		action = buttonFocus.Background(color).Render(m.confirm.Action)
	} else {
		cancel = buttonFocus.Background(lipgloss.Color("#374151")).Render("Cancel")
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		confirmTitle.Foreground(color).Render(m.confirm.Title),
		"",
		confirmMessage.Render(m.confirm.Message),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, cancel, "  ", action),
	)

	return confirmBox.BorderForeground(color).Render(body) + "\n"
}
