package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kahaaniverse/kahaani/internal/reader"
	"github.com/kahaaniverse/kahaani/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.State == StateHelp {
		m.State = StateBrowsing
		return m, nil
	}

	// Route to active modal if any
	if m.PageModal.IsVisible() {
		return m.handlePageModalKey(msg)
	}
	if m.LanguageModal.IsVisible() {
		return m.handleLanguageModalKey(msg)
	}
	if m.SearchModal.IsVisible() {
		return m.handleSearchModalKey(msg)
	}

	switch m.Screen {
	case ScreenDetail:
		return m.handleDetailKey(msg)
	case ScreenReader:
		return m.handleReaderKey(msg)
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Typing into the filter takes every key
	if m.List.IsFilterTyping() {
		return m, m.List.Update(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.NextTab):
		return m, m.switchTab(m.Tab.Next())

	case key.Matches(msg, Keys.PrevTab):
		return m, m.switchTab(m.Tab.Prev())

	case key.Matches(msg, Keys.NextGenre):
		return m, m.cycleGenre(1)

	case key.Matches(msg, Keys.PrevGenre):
		return m, m.cycleGenre(-1)

	case key.Matches(msg, Keys.Filter):
		if !m.List.IsFiltering() {
			m.List.ToggleFilter()
			return m, nil
		}

	case key.Matches(msg, Keys.Search):
		m.SearchModal.Show(m.Query)
		return m, nil

	case key.Matches(msg, Keys.Refresh):
		return m, m.reloadTab()

	case key.Matches(msg, Keys.Enter):
		row, ok := m.List.Selected()
		if !ok {
			return m, nil
		}
		m.Detail = row.Book
		m.Screen = ScreenDetail
		return m, nil
	}

	return m, m.List.Update(msg)
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp

	case key.Matches(msg, Keys.Back):
		m.Opening = false
		m.Screen = ScreenBrowse

	case key.Matches(msg, Keys.Enter):
		if m.Opening {
			return m, nil
		}
		m.Opening = true
		return m, tea.Batch(
			OpenBookCmd(m.ReadingSvc, m.Detail.ID, m.observer),
			m.Spinner.Tick,
		)
	}
	return m, nil
}

func (m Model) handleReaderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.Session
	if s == nil {
		m.Screen = ScreenBrowse
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp

	case key.Matches(msg, Keys.Back):
		m.Session = nil
		m.Screen = ScreenBrowse
		return m, m.reloadTab()

	case key.Matches(msg, Keys.NextPage):
		return m, m.navigated(s.Next())

	case key.Matches(msg, Keys.PrevPage):
		return m, m.navigated(s.Previous())

	case key.Matches(msg, Keys.GoToPage):
		m.PageModal.Show(s.PageIndex()+1, s.PageCount())

	case key.Matches(msg, Keys.Bookmark):
		return m, m.bookmarkStatus(s.ToggleBookmark())

	case key.Matches(msg, Keys.Language):
		m.LanguageModal.Show(s.Language())
	}
	return m, nil
}

func (m Model) handlePageModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var submitted bool
	m.PageModal, cmd, submitted = m.PageModal.Update(msg)
	if !submitted || m.Session == nil {
		return m, cmd
	}

	page, ok := m.PageModal.PageNumber()
	if !ok {
		m.PageModal.SetError(fmt.Sprintf("Enter a page from 1 to %d", m.Session.PageCount()))
		return m, nil
	}
	m.PageModal.Hide()
	return m, m.navigated(m.Session.GoToPage(page - 1))
}

func (m Model) handleSearchModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var submitted bool
	m.SearchModal, cmd, submitted = m.SearchModal.Update(msg)
	if !submitted {
		return m, cmd
	}

	m.SearchModal.Hide()
	m.Query = m.SearchModal.Query()
	return m, m.switchTab(components.TabSearch)
}

func (m Model) handleLanguageModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	_, selection := m.LanguageModal.HandleKey(msg.String())
	if selection == nil || m.Session == nil {
		return m, nil
	}
	if !m.Session.ChangeLanguage(*selection) {
		return m, m.setStatus(selection.DisplayName()+" is not available for this book", true)
	}
	// the LanguageChanged event closes the modal
	return m, nil
}

// navigated schedules the end of the page-flip lock after an accepted move
func (m *Model) navigated(accepted bool) tea.Cmd {
	if !accepted {
		return nil
	}
	return TransitionDoneCmd(m.Session)
}

func (m *Model) bookmarkStatus(res reader.ToggleResult) tea.Cmd {
	switch res.Action {
	case reader.BookmarkAdded:
		return m.setStatus(fmt.Sprintf("Bookmarked page %d", res.PageNumber), false)
	case reader.BookmarkRemoved:
		return m.setStatus(fmt.Sprintf("Removed bookmark from page %d", res.PageNumber), false)
	default:
		return nil
	}
}
