package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kahaaniverse/kahaani/internal/tui/components"
	"github.com/kahaaniverse/kahaani/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return m.Spinner.View() + " Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	var body string
	switch m.Screen {
	case ScreenDetail:
		body = m.renderDetail()
	case ScreenReader:
		body = m.renderReader()
	default:
		body = m.renderBrowse()
	}

	// Modals are centered over the whole screen
	if m.PageModal.IsVisible() {
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, m.PageModal.View())
	}
	if m.LanguageModal.IsVisible() {
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, m.LanguageModal.View())
	}
	if m.SearchModal.IsVisible() {
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, m.SearchModal.View())
	}
	return body
}

func (m Model) renderBrowse() string {
	header := components.RenderTabs(m.Tab)
	list := m.List.View()
	if m.Loading {
		list = lipgloss.Place(m.Width, max(3, m.Height-ChromeHeight),
			lipgloss.Center, lipgloss.Center,
			m.Spinner.View()+" Loading books...")
	}

	footer := m.Help.ShortHelpView(Keys.ShortHelp())
	if m.Tab == components.TabCategories {
		footer = m.Help.ShortHelpView(append(Keys.ShortHelp(), Keys.PrevGenre, Keys.NextGenre))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, list, m.renderStatus(), footer)
}

func (m Model) renderDetail() string {
	b := m.Detail
	width := min(72, max(20, m.Width-4))
	wrap := lipgloss.NewStyle().Width(width)

	lines := []string{
		styles.TitleStyle.Render(b.Title),
		styles.SubtitleStyle.Render("by " + b.Author),
	}
	if b.Genre != "" {
		lines = append(lines, styles.AccentStyle.Render(b.Genre))
	}
	if b.Cover != "" {
		lines = append(lines, styles.DimStyle.Render("cover: "+b.Cover))
	}
	lines = append(lines, "", wrap.Render(b.Description), "",
		styles.DimStyle.Render("Reads in "+m.ReadingSvc.LanguagePreference().OrDefault().DisplayName()))

	if page, ok := m.ReadingSvc.Bookmark(b.ID); ok {
		lines = append(lines, styles.BookmarkStyle.Render(fmt.Sprintf("★ Bookmarked at page %d", page)))
	}

	action := styles.HighlightStyle.Render("enter  start reading")
	if m.Opening {
		action = m.Spinner.View() + " Opening book..."
	}
	lines = append(lines, "", action)

	card := styles.ActiveBorder.Padding(1, 2).Render(strings.Join(lines, "\n"))
	body := lipgloss.Place(m.Width, max(3, m.Height-2), lipgloss.Center, lipgloss.Center, card)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatus(),
		m.Help.ShortHelpView(append(Keys.ShortHelp()[:1], Keys.Back, Keys.Quit)))
}

func (m Model) renderReader() string {
	s := m.Session
	if s == nil {
		return ""
	}

	marker := "  "
	if s.IsBookmarked() {
		marker = styles.BookmarkStyle.Render("★ ")
	}
	header := marker + styles.TitleStyle.Render(s.Title()) +
		styles.DimStyle.Render("  ·  "+s.Language().DisplayName())

	content := ""
	if page, ok := s.CurrentPage(); ok {
		content = page.Content
	}
	textWidth := min(80, max(20, m.Width-8))
	bodyHeight := max(3, m.Height-4)
	body := lipgloss.Place(m.Width, bodyHeight, lipgloss.Center, lipgloss.Top,
		styles.PageContentStyle.Width(textWidth).Render(content))

	current, total := s.PageIndex()+1, s.PageCount()
	position := fmt.Sprintf("Page %d of %d ", current, total) +
		styles.RenderProgressBar(current*100/max(1, total), 20)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		position,
		m.renderStatus(),
		m.Help.ShortHelpView(Keys.readerHelp()),
	)
}

func (m Model) renderStatus() string {
	if m.StatusMsg == "" {
		return ""
	}
	if m.StatusIsErr {
		return styles.ErrorStyle.Render(m.StatusMsg)
	}
	return styles.SuccessStyle.Render(m.StatusMsg)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	full := m.Help.FullHelpView(Keys.FullHelp())
	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(styles.ModalTitleStyle.Render("Keys")+"\n"+full+"\n\n"+
			styles.DimStyle.Render("Press any key to return...")))
}
