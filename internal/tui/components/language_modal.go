package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kahaaniverse/kahaani/internal/domain"
	"github.com/kahaaniverse/kahaani/internal/tui/styles"
)

// LanguageModal is a small popup for choosing the reading language
type LanguageModal struct {
	visible bool
	options []domain.Language
	cursor  int
	active  domain.Language
}

// NewLanguageModal creates a new language modal
func NewLanguageModal() LanguageModal {
	return LanguageModal{options: domain.Languages()}
}

// Show displays the modal with the cursor on the active language
func (m *LanguageModal) Show(active domain.Language) {
	m.visible = true
	m.active = active
	m.cursor = 0
	for i, opt := range m.options {
		if opt == active {
			m.cursor = i
			break
		}
	}
}

// Hide dismisses the modal
func (m *LanguageModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m LanguageModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, selection).
// A non-nil selection is the confirmed language; the modal stays open
// until the caller hides it.
func (m *LanguageModal) HandleKey(key string) (handled bool, selection *domain.Language) {
	if !m.visible {
		return false, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		chosen := m.options[m.cursor]
		return true, &chosen
	case "1", "2", "3":
		i := int(key[0] - '1')
		if i < len(m.options) {
			chosen := m.options[i]
			return true, &chosen
		}
	case "esc", "L":
		m.visible = false
	}

	return true, nil // consume all keys when visible
}

// View renders the language modal
func (m LanguageModal) View() string {
	if !m.visible {
		return ""
	}

	var lines []string
	for i, opt := range m.options {
		prefix := "  "
		if opt == m.active {
			prefix = "✓ "
		}
		text := styles.Pad(prefix+string(rune('1'+i))+". "+opt.DisplayName(), 20)

		style := lipgloss.NewStyle().Foreground(styles.LightGray)
		switch {
		case i == m.cursor:
			style = lipgloss.NewStyle().Foreground(styles.White).Background(styles.SlateLight)
		case opt == m.active:
			style = styles.AccentStyle
		}
		lines = append(lines, style.Render(text))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Accent).
		Background(styles.SlateDark).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render("Language") + "\n" + strings.Join(lines, "\n"))
}
