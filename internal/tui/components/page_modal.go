package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kahaaniverse/kahaani/internal/tui/styles"
)

// PageModal asks for a page number to jump to
type PageModal struct {
	visible   bool
	pageCount int
	errText   string
	input     textinput.Model
}

// NewPageModal creates a new page picker
func NewPageModal() PageModal {
	ti := textinput.New()
	ti.CharLimit = 6
	ti.Width = 10
	ti.Prompt = "Page: "
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle
	ti.Validate = func(s string) error {
		for _, r := range s {
			if r < '0' || r > '9' {
				return fmt.Errorf("digits only")
			}
		}
		return nil
	}

	return PageModal{input: ti}
}

// Show displays the modal for a book of pageCount pages
func (m *PageModal) Show(current, pageCount int) {
	m.visible = true
	m.pageCount = pageCount
	m.errText = ""
	m.input.Placeholder = strconv.Itoa(current)
	m.input.SetValue("")
	m.input.Focus()
}

// Hide dismisses the modal
func (m *PageModal) Hide() {
	m.visible = false
	m.input.Blur()
}

// IsVisible returns whether the modal is shown
func (m PageModal) IsVisible() bool {
	return m.visible
}

// PageNumber parses the entered 1-based page number
func (m PageModal) PageNumber() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
	if err != nil || n < 1 || n > m.pageCount {
		return 0, false
	}
	return n, true
}

// SetError shows a validation message under the input
func (m *PageModal) SetError(text string) {
	m.errText = text
}

// Update handles input events, returns (modal, cmd, submitted)
func (m PageModal) Update(msg tea.Msg) (PageModal, tea.Cmd, bool) {
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

	m.errText = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd, false
}

// View renders the page picker
func (m PageModal) View() string {
	if !m.visible {
		return ""
	}

	const modalWidth = 28

	line := lipgloss.NewStyle().Width(modalWidth).Background(styles.SlateDark)
	rows := []string{
		line.Foreground(styles.White).Bold(true).Render("Go to page"),
		line.Render(""),
		line.Render(m.input.View()),
		line.Foreground(styles.DimGray).Render(fmt.Sprintf("1 to %d", m.pageCount)),
	}
	if m.errText != "" {
		rows = append(rows, line.Foreground(styles.Red).Render(m.errText))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Accent).
		Background(styles.SlateDark).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
