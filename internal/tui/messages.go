package tui

import (
	"github.com/kahaaniverse/kahaani/internal/domain"
	"github.com/kahaaniverse/kahaani/internal/reader"
	"github.com/kahaaniverse/kahaani/internal/tui/components"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// TabLoadedMsg carries the rows of a browse tab
type TabLoadedMsg struct {
	Tab    components.Tab
	Rows   []components.BookRow
	Genres []string // set for the categories tab
	Genre  string
	Query  string // set for the search tab
}

// BookOpenedMsg signals that a reading session is ready
type BookOpenedMsg struct {
	Session *reader.Session
}

// SessionEventMsg wraps an event emitted by the open session
type SessionEventMsg struct {
	Event domain.Event
}

// TransitionDoneMsg ends the page-flip lock of navigation Seq in Session
type TransitionDoneMsg struct {
	Session *reader.Session
	Seq     int
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct {
	Seq int
}
