package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kahaaniverse/kahaani/internal/domain"
	"github.com/kahaaniverse/kahaani/internal/reader"
	"github.com/kahaaniverse/kahaani/internal/service"
	"github.com/kahaaniverse/kahaani/internal/tui/components"
)

// Command factories for async operations

const loadTimeout = 30 * time.Second

// LoadTabCmd loads the rows of a browse tab. genre selects the category
// shown in the categories tab (empty picks the first one), query the
// search tab's query.
func LoadTabCmd(svc *service.ReadingService, tab components.Tab, genre, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		msg := TabLoadedMsg{Tab: tab, Query: query}
		switch tab {
		case components.TabCatalog:
			msg.Rows = catalogRows(svc.Catalog(ctx))

		case components.TabLatest:
			msg.Rows = catalogRows(svc.Latest(ctx, 0))

		case components.TabLibrary:
			for _, e := range svc.Library(ctx) {
				msg.Rows = append(msg.Rows, components.BookRow{
					Book:     e.Metadata,
					Detail:   e.Progress.Label,
					Percent:  e.Progress.Percentage,
					Progress: e.Progress.Started,
				})
			}

		case components.TabBookmarks:
			for _, e := range svc.Bookmarked(ctx) {
				msg.Rows = append(msg.Rows, components.BookRow{
					Book:   e.Metadata,
					Detail: fmt.Sprintf("Page %d", e.PageNumber),
				})
			}

		case components.TabCategories:
			msg.Genres = svc.Genres(ctx)
			msg.Genre = genre
			if msg.Genre == "" && len(msg.Genres) > 0 {
				msg.Genre = msg.Genres[0]
			}
			msg.Rows = catalogRows(svc.ByGenre(ctx, msg.Genre))

		case components.TabSearch:
			if query != "" {
				msg.Rows = catalogRows(svc.Search(ctx, query))
			}
		}
		return msg
	}
}

func catalogRows(books []domain.BookMetadata) []components.BookRow {
	rows := make([]components.BookRow, len(books))
	for i, b := range books {
		detail := b.Author
		if b.Genre != "" {
			detail += " · " + b.Genre
		}
		rows[i] = components.BookRow{Book: b, Detail: detail}
	}
	return rows
}

// OpenBookCmd resolves a book and starts a session reporting to observer
func OpenBookCmd(svc *service.ReadingService, bookID string, observer domain.Observer) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		session, err := svc.OpenBook(ctx, bookID, reader.WithObserver(observer))
		if err != nil {
			return ErrMsg{Err: err, Context: "opening book"}
		}
		return BookOpenedMsg{Session: session}
	}
}

// WaitForEventCmd delivers the next session event
func WaitForEventCmd(events <-chan domain.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return nil
		}
		return SessionEventMsg{Event: e}
	}
}

// TransitionDoneCmd fires when the page-flip window of the latest
// navigation in s has passed
func TransitionDoneCmd(s *reader.Session) tea.Cmd {
	seq := s.Transition()
	return tea.Tick(s.TransitionWindow(), func(time.Time) tea.Msg {
		return TransitionDoneMsg{Session: s, Seq: seq}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(seq int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
