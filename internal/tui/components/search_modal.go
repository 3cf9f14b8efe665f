package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kahaaniverse/kahaani/internal/tui/styles"
)

// SearchModal asks for a catalog search query
type SearchModal struct {
	visible bool
	input   textinput.Model
}

// NewSearchModal creates a new search prompt
func NewSearchModal() SearchModal {
	ti := textinput.New()
	ti.CharLimit = 80
	ti.Width = 36
	ti.Prompt = "Search: "
	ti.Placeholder = "title, author, genre..."
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return SearchModal{input: ti}
}

// Show displays the modal prefilled with the previous query
func (m *SearchModal) Show(query string) {
	m.visible = true
	m.input.SetValue(query)
	m.input.CursorEnd()
	m.input.Focus()
}

// Hide dismisses the modal
func (m *SearchModal) Hide() {
	m.visible = false
	m.input.Blur()
}

// IsVisible returns whether the modal is shown
func (m SearchModal) IsVisible() bool {
	return m.visible
}

// Query returns the trimmed query
func (m SearchModal) Query() string {
	return strings.TrimSpace(m.input.Value())
}

// Update handles input events, returns (modal, cmd, submitted)
func (m SearchModal) Update(msg tea.Msg) (SearchModal, tea.Cmd, bool) {
	if !m.visible {
		return m, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return m, nil, true
		case "esc":
			m.Hide()
			return m, nil, false
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd, false
}

// View renders the search prompt
func (m SearchModal) View() string {
	if !m.visible {
		return ""
	}

	line := lipgloss.NewStyle().Width(48).Background(styles.SlateDark)
	rows := []string{
		line.Foreground(styles.White).Bold(true).Render("Search books"),
		line.Render(""),
		line.Render(m.input.View()),
		line.Foreground(styles.DimGray).Render("matches title, author, genre and description"),
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Accent).
		Background(styles.SlateDark).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
