package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kahaaniverse/kahaani/internal/content"
	"github.com/kahaaniverse/kahaani/internal/domain"
	"github.com/kahaaniverse/kahaani/internal/reader"
	"github.com/kahaaniverse/kahaani/internal/service"
	"github.com/kahaaniverse/kahaani/internal/store"
	"github.com/kahaaniverse/kahaani/internal/tui/components"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func newTestModel(t *testing.T, opts ...reader.Option) (Model, *service.ReadingService, *store.ReadingStore) {
	t.Helper()
	st := store.NewMemoryStore()
	t.Cleanup(func() { st.Close() })
	svc := service.NewReadingService(content.NewSampleProvider(), st, nil, opts...)

	m := NewModel(svc, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = update(t, m, LoadTabCmd(svc, components.TabCatalog, "", "")())
	return m, svc, st
}

// transitionDone is the tick scheduled by the latest accepted page flip
func transitionDone(s *reader.Session) TransitionDoneMsg {
	return TransitionDoneMsg{Session: s, Seq: s.Transition()}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = update(t, m, runes(string(r)))
	}
	return m
}

func rowIDs(m Model) []string {
	var ids []string
	m.List.Update(tea.KeyMsg{Type: tea.KeyHome})
	for i := 0; i < m.List.ItemCount(); i++ {
		row, _ := m.List.Selected()
		ids = append(ids, row.Book.ID)
		m.List.Update(runes("j"))
	}
	return ids
}

// drainUntil feeds queued session events back into the model until kind arrives
func drainUntil(t *testing.T, m Model, kind domain.EventKind) Model {
	t.Helper()
	for {
		select {
		case e := <-m.observer.Events():
			m = update(t, m, SessionEventMsg{Event: e})
			if e.Kind == kind {
				return m
			}
		default:
			t.Fatalf("no %s event queued", kind)
			return m
		}
	}
}

func openReader(t *testing.T, m Model, svc *service.ReadingService) Model {
	t.Helper()
	m = update(t, m, enter)
	require.Equal(t, ScreenDetail, m.Screen)
	m = update(t, m, enter)
	require.True(t, m.Opening)
	m = update(t, m, OpenBookCmd(svc, m.Detail.ID, m.observer)())
	require.Equal(t, ScreenReader, m.Screen)
	require.NotNil(t, m.Session)
	return m
}

func TestModel_LoadsCatalog(t *testing.T) {
	m, _, _ := newTestModel(t)

	assert.False(t, m.Loading)
	assert.Equal(t, 3, m.List.ItemCount())
	row, ok := m.List.Selected()
	require.True(t, ok)
	assert.Equal(t, "1", row.Book.ID)
	assert.Contains(t, m.View(), "The Enchanted Chronicles")
}

func TestModel_StaleTabIgnored(t *testing.T) {
	m, svc, _ := newTestModel(t)

	m.Tab = components.TabBookmarks
	m = update(t, m, LoadTabCmd(svc, components.TabCatalog, "", "")())
	assert.True(t, m.Tab == components.TabBookmarks)
}

func TestModel_CategoriesTabCyclesGenres(t *testing.T) {
	m, svc, _ := newTestModel(t)

	m.Tab = components.TabCategories
	m = update(t, m, LoadTabCmd(svc, components.TabCategories, "", "")())
	assert.Equal(t, []string{"Horror", "Mystery Thriller"}, m.Genres)
	assert.Equal(t, "Horror", m.Genre)
	assert.Equal(t, 1, m.List.ItemCount())

	next, cmd := m.Update(runes("]"))
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, "Mystery Thriller", m.Genre)
	m = update(t, m, LoadTabCmd(svc, components.TabCategories, m.Genre, "")())
	assert.Equal(t, 2, m.List.ItemCount())
}

func TestModel_FilterNarrowsList(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = update(t, m, runes("/"))
	require.True(t, m.List.IsFilterTyping())
	for _, r := range "digi" {
		m = update(t, m, runes(string(r)))
	}
	assert.Equal(t, 1, m.List.ItemCount())
	row, ok := m.List.Selected()
	require.True(t, ok)
	assert.Equal(t, "2", row.Book.ID)

	m = update(t, m, esc)
	assert.False(t, m.List.IsFiltering())
	assert.Equal(t, 3, m.List.ItemCount())
}

func TestModel_ReadingFlow(t *testing.T) {
	m, svc, st := newTestModel(t)
	m = openReader(t, m, svc)
	s := m.Session
	assert.Equal(t, 0, s.PageIndex())

	// transition lock drops the second flip until the tick lands
	m = update(t, m, runes("l"))
	assert.Equal(t, 1, s.PageIndex())
	m = update(t, m, runes("l"))
	assert.Equal(t, 1, s.PageIndex())
	m = update(t, m, transitionDone(s))
	m = update(t, m, runes("l"))
	assert.Equal(t, 2, s.PageIndex())
	m = update(t, m, transitionDone(s))

	m = update(t, m, runes("b"))
	assert.Equal(t, "Bookmarked page 3", m.StatusMsg)
	page, ok := store.GetBookmark(st, "1")
	require.True(t, ok)
	assert.Equal(t, 3, page)
	assert.Contains(t, m.View(), "★")

	m = update(t, m, runes("b"))
	assert.Equal(t, "Removed bookmark from page 3", m.StatusMsg)

	m = update(t, m, runes("h"))
	assert.Equal(t, 1, s.PageIndex())
	assert.Contains(t, m.View(), "Page 2 of 3")

	m = update(t, m, esc)
	assert.Equal(t, ScreenBrowse, m.Screen)
	assert.Nil(t, m.Session)
}

func TestModel_LanguageSelectorClosesOnChange(t *testing.T) {
	m, svc, st := newTestModel(t)
	m = openReader(t, m, svc)

	m = update(t, m, runes("L"))
	require.True(t, m.LanguageModal.IsVisible())

	m = update(t, m, runes("2")) // Hindi
	assert.Equal(t, domain.LanguageHindi, m.Session.Language())
	assert.Equal(t, 0, m.Session.PageIndex())
	assert.Equal(t, domain.LanguageHindi, st.GetLanguagePreference())

	m = drainUntil(t, m, domain.EventLanguageChanged)
	assert.False(t, m.LanguageModal.IsVisible())
	assert.Equal(t, "Reading in Hindi", m.StatusMsg)
}

func TestModel_PagePicker(t *testing.T) {
	m, svc, _ := newTestModel(t)
	m = openReader(t, m, svc)

	m = update(t, m, runes("g"))
	require.True(t, m.PageModal.IsVisible())

	m = update(t, m, runes("9"))
	m = update(t, m, enter)
	assert.True(t, m.PageModal.IsVisible(), "out of range keeps the picker open")

	m = update(t, m, esc)
	assert.False(t, m.PageModal.IsVisible())

	m = update(t, m, runes("g"))
	m = update(t, m, runes("3"))
	m = update(t, m, enter)
	assert.False(t, m.PageModal.IsVisible())
	assert.Equal(t, 2, m.Session.PageIndex())
}

func TestModel_FailedOpenStaysOnDetail(t *testing.T) {
	m, svc, _ := newTestModel(t)

	m = update(t, m, enter)
	m.Detail = domain.BookMetadata{ID: "42", Title: "Missing"}
	m = update(t, m, enter)
	m = update(t, m, OpenBookCmd(svc, "42", m.observer)())

	assert.Equal(t, ScreenDetail, m.Screen)
	assert.False(t, m.Opening)
	assert.True(t, m.StatusIsErr)
	assert.Equal(t, "Book is not available", m.StatusMsg)
}

func TestModel_StatusClearsOnlyLatest(t *testing.T) {
	m, _, _ := newTestModel(t)

	m.setStatus("first", false)
	m.setStatus("second", false)
	m = update(t, m, ClearStatusMsg{Seq: 1})
	assert.Equal(t, "second", m.StatusMsg)
	m = update(t, m, ClearStatusMsg{Seq: 2})
	assert.Empty(t, m.StatusMsg)
}

func TestModel_LateTickKeepsNewerFlipLocked(t *testing.T) {
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	clock := func() time.Time { return now }
	m, svc, _ := newTestModel(t, reader.WithClock(clock))
	m = openReader(t, m, svc)
	s := m.Session

	m = update(t, m, runes("l"))
	stale := transitionDone(s)

	// the first lock lapses before its tick is delivered
	now = now.Add(s.TransitionWindow())
	m = update(t, m, runes("l"))
	require.Equal(t, 2, s.PageIndex())

	m = update(t, m, stale)
	assert.True(t, s.IsTransitioning())
	m = update(t, m, runes("h"))
	assert.Equal(t, 2, s.PageIndex())

	m = update(t, m, transitionDone(s))
	assert.False(t, s.IsTransitioning())
}

func TestModel_TickFromClosedSessionIgnored(t *testing.T) {
	m, svc, _ := newTestModel(t)
	m = openReader(t, m, svc)
	old := m.Session
	m = update(t, m, runes("l"))
	stale := transitionDone(old)

	m = update(t, m, esc)
	m = openReader(t, m, svc)
	require.NotSame(t, old, m.Session)
	m = update(t, m, runes("l"))

	m = update(t, m, stale)
	assert.True(t, m.Session.IsTransitioning())
}

func TestModel_LatestTab(t *testing.T) {
	m, _, _ := newTestModel(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, components.TabLatest, m.Tab)

	m = update(t, m, cmd())
	assert.False(t, m.Loading)
	assert.Equal(t, []string{"3", "2", "1"}, rowIDs(m))
}

func TestModel_SearchMatchesAuthorGenreAndDescription(t *testing.T) {
	m, _, _ := newTestModel(t)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"author", "Neonbyte", []string{"2"}},
		{"genre", "horror", []string{"2"}},
		{"description", "victorian", []string{"3"}},
		{"title", "chronicles", []string{"1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := update(t, m, runes("s"))
			require.True(t, m.SearchModal.IsVisible())
			m = typeText(t, m, tt.query)

			next, cmd := m.Update(enter)
			m = next.(Model)
			require.NotNil(t, cmd)
			assert.False(t, m.SearchModal.IsVisible())
			assert.Equal(t, components.TabSearch, m.Tab)
			assert.Equal(t, tt.query, m.Query)

			m = update(t, m, cmd())
			assert.Equal(t, tt.want, rowIDs(m))
			assert.Contains(t, m.View(), tt.query)
		})
	}
}

func TestModel_StaleSearchIgnored(t *testing.T) {
	m, svc, _ := newTestModel(t)

	m.Tab = components.TabSearch
	m.Query = "digital"
	m.Loading = true
	m = update(t, m, LoadTabCmd(svc, components.TabSearch, "", "horror")())
	assert.True(t, m.Loading)

	m = update(t, m, LoadTabCmd(svc, components.TabSearch, "", "digital")())
	assert.False(t, m.Loading)
	assert.Equal(t, []string{"2"}, rowIDs(m))
}

func TestModel_OpenedBookIgnoredAfterLeavingDetail(t *testing.T) {
	m, svc, _ := newTestModel(t)

	m = update(t, m, enter)
	m = update(t, m, enter)
	require.True(t, m.Opening)
	opened := OpenBookCmd(svc, m.Detail.ID, m.observer)()

	m = update(t, m, esc)
	assert.Equal(t, ScreenBrowse, m.Screen)
	assert.False(t, m.Opening)

	m = update(t, m, opened)
	assert.Equal(t, ScreenBrowse, m.Screen)
	assert.Nil(t, m.Session)
}
