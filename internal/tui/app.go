package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kahaaniverse/kahaani/internal/domain"
	"github.com/kahaaniverse/kahaani/internal/reader"
	"github.com/kahaaniverse/kahaani/internal/service"
	"github.com/kahaaniverse/kahaani/internal/tui/components"
	"github.com/kahaaniverse/kahaani/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
)

// Screen is the view currently on display
type Screen int

const (
	ScreenBrowse Screen = iota
	ScreenDetail
	ScreenReader
)

const (
	statusDuration = 3 * time.Second
	eventBuffer    = 32

	// Vertical chrome: tab bar + footer + status
	ChromeHeight = 3
)

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State  ApplicationState
	Screen Screen
	Ready  bool

	// Services
	ReadingSvc *service.ReadingService

	// UI Components
	Tab           components.Tab
	List          *components.BookList
	LanguageModal components.LanguageModal
	PageModal     components.PageModal
	SearchModal   components.SearchModal
	Spinner       spinner.Model
	Help          help.Model

	// Categories tab
	Genres []string
	Genre  string

	// Search tab
	Query string

	// Detail and reader state
	Detail   domain.BookMetadata
	Session  *reader.Session
	observer *ChannelObserver

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool
	statusSeq   int
	Loading     bool // tab rows
	Opening     bool // book on the detail view

	logger *slog.Logger
}

// NewModel creates a new application model
func NewModel(readingSvc *service.ReadingService, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	return Model{
		State:         StateBrowsing,
		Screen:        ScreenBrowse,
		ReadingSvc:    readingSvc,
		Tab:           components.TabCatalog,
		List:          components.NewBookList(components.TabCatalog.String()),
		LanguageModal: components.NewLanguageModal(),
		PageModal:     components.NewPageModal(),
		SearchModal:   components.NewSearchModal(),
		Spinner:       sp,
		Help:          help.New(),
		observer:      NewChannelObserver(eventBuffer),
		Loading:       true,
		logger:        logger,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadTabCmd(m.ReadingSvc, m.Tab, "", ""),
		WaitForEventCmd(m.observer.Events()),
		m.Spinner.Tick,
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case TabLoadedMsg:
		if msg.Tab != m.Tab || (msg.Tab == components.TabSearch && msg.Query != m.Query) {
			return m, nil // stale
		}
		m.Loading = false
		if msg.Tab == components.TabCategories {
			m.Genres = msg.Genres
			m.Genre = msg.Genre
		}
		m.List.SetTitle(m.listTitle())
		m.List.SetRows(msg.Rows)
		return m, nil

	case BookOpenedMsg:
		if !m.Opening || m.Screen != ScreenDetail || m.Detail.ID != msg.Session.Book().ID {
			m.logger.Debug("dropping opened book", "bookID", msg.Session.Book().ID)
			return m, nil
		}
		m.Opening = false
		m.Session = msg.Session
		m.Screen = ScreenReader
		m.logger.Debug("reader opened", "bookID", msg.Session.Book().ID)
		return m, nil

	case SessionEventMsg:
		cmd := m.handleSessionEvent(msg.Event)
		return m, tea.Batch(cmd, WaitForEventCmd(m.observer.Events()))

	case TransitionDoneMsg:
		if m.Session != nil && m.Session == msg.Session {
			m.Session.EndTransition(msg.Seq)
		}
		return m, nil

	case ErrMsg:
		m.Loading = false
		m.Opening = false
		m.logger.Error("operation failed", "context", msg.Context, "error", msg.Err)
		text := msg.Error()
		if errors.Is(msg.Err, domain.ErrBookNotFound) {
			text = "Book is not available"
		}
		return m, m.setStatus(text, true)

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	return m, nil
}

// handleSessionEvent turns session notifications into UI feedback
func (m *Model) handleSessionEvent(e domain.Event) tea.Cmd {
	// events raised while opening arrive before BookOpenedMsg
	switch {
	case m.Session != nil && m.Session.Book().ID == e.BookID:
	case m.Session == nil && m.Detail.ID == e.BookID:
	default:
		return nil
	}

	switch e.Kind {
	case domain.EventLanguageChanged:
		if e.CloseLanguageSelector {
			m.LanguageModal.Hide()
		}
		return m.setStatus("Reading in "+e.Language.DisplayName(), false)

	case domain.EventBookmarkInvalidated:
		return m.setStatus(fmt.Sprintf("Bookmark on page %d no longer exists", e.PageNumber), false)

	case domain.EventStoreWriteFailed:
		return m.setStatus("Could not save reading data", true)
	}
	return nil
}

// setStatus shows a transient status message
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(m.statusSeq, statusDuration)
}

// switchTab changes the browse tab and reloads it
func (m *Model) switchTab(tab components.Tab) tea.Cmd {
	m.Tab = tab
	m.Loading = true
	m.List.SetTitle(m.listTitle())
	m.List.SetRows(nil)
	return LoadTabCmd(m.ReadingSvc, tab, m.Genre, m.Query)
}

// reloadTab refreshes the rows of the current tab
func (m *Model) reloadTab() tea.Cmd {
	m.Loading = true
	return LoadTabCmd(m.ReadingSvc, m.Tab, m.Genre, m.Query)
}

// cycleGenre moves through categories by delta
func (m *Model) cycleGenre(delta int) tea.Cmd {
	if m.Tab != components.TabCategories || len(m.Genres) == 0 {
		return nil
	}
	i := 0
	for j, g := range m.Genres {
		if g == m.Genre {
			i = j
			break
		}
	}
	i = (i + delta + len(m.Genres)) % len(m.Genres)
	m.Genre = m.Genres[i]
	return m.reloadTab()
}

func (m Model) listTitle() string {
	if m.Tab == components.TabCategories && m.Genre != "" {
		return fmt.Sprintf("%s ‹ %s ›", m.Tab, m.Genre)
	}
	if m.Tab == components.TabSearch {
		if m.Query == "" {
			return "Search · press s to search"
		}
		return fmt.Sprintf("%s ‹ %s ›", m.Tab, m.Query)
	}
	return m.Tab.String()
}

// updateLayout sizes the list to the window
func (m *Model) updateLayout() {
	m.List.SetSize(m.Width, max(3, m.Height-ChromeHeight))
}
