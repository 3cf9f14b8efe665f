package domain

// EventKind identifies what changed in a reading session
type EventKind int

const (
	EventPageChanged EventKind = iota
	EventLanguageChanged
	EventBookmarkAdded
	EventBookmarkRemoved
	EventBookmarkInvalidated
	EventStoreWriteFailed
)

// String returns a short name for logging
func (k EventKind) String() string {
	switch k {
	case EventPageChanged:
		return "page_changed"
	case EventLanguageChanged:
		return "language_changed"
	case EventBookmarkAdded:
		return "bookmark_added"
	case EventBookmarkRemoved:
		return "bookmark_removed"
	case EventBookmarkInvalidated:
		return "bookmark_invalidated"
	case EventStoreWriteFailed:
		return "store_write_failed"
	default:
		return "unknown"
	}
}

// Event reports a reading session mutation to the host
type Event struct {
	Kind       EventKind
	BookID     string
	PageNumber int      // page involved, 1-based
	Language   Language // set on EventLanguageChanged

	// CloseLanguageSelector asks the host to dismiss its language picker
	CloseLanguageSelector bool

	// Err is set on EventStoreWriteFailed
	Err error
}

// Observer receives reading session events.
type Observer interface {
	OnEvent(event Event)
}

// NoOpObserver discards events (for testing/batch operations).
type NoOpObserver struct{}

func (NoOpObserver) OnEvent(Event) {}
