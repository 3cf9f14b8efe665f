package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kahaaniverse/kahaani/internal/domain"
	"github.com/kahaaniverse/kahaani/internal/service"
	"github.com/kahaaniverse/kahaani/internal/tui/styles"
)

// Border overhead of the list panel
const (
	BorderWidth  = 2
	BorderHeight = 2
)

// BookRow is one line of a book list
type BookRow struct {
	Book     domain.BookMetadata
	Detail   string // right-aligned secondary text
	Percent  int    // reading progress, drawn as a bar when Progress is set
	Progress bool
}

// BookList is a scrollable, fuzzy-filterable list of books
type BookList struct {
	title string
	rows  []BookRow
	index *service.FilterIndex

	cursor     int
	offset     int
	maxVisible int

	width  int
	height int

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filtered     []service.FilterResult
	filteredIdx  []int // indices into rows
}

// NewBookList creates an empty list with a header title
func NewBookList(title string) *BookList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &BookList{
		title:       title,
		index:       service.NewFilterIndex(nil),
		filterInput: ti,
	}
}

// SetRows replaces the rows and clears any filter
func (l *BookList) SetRows(rows []BookRow) {
	l.rows = rows
	books := make([]domain.BookMetadata, len(rows))
	for i, r := range rows {
		books[i] = r.Book
	}
	l.index = service.NewFilterIndex(books)
	l.clearFilter()
	if l.cursor >= len(rows) {
		l.cursor = max(0, len(rows)-1)
	}
	l.ensureVisible()
}

// SetTitle changes the header title
func (l *BookList) SetTitle(title string) { l.title = title }

// SetSize sets the outer size including the border
func (l *BookList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.recalcMaxVisible()
	l.ensureVisible()
}

// Selected returns the row under the cursor
func (l *BookList) Selected() (BookRow, bool) {
	if l.ItemCount() == 0 {
		return BookRow{}, false
	}
	return l.rows[l.mapIndex(l.cursor)], true
}

// SelectedIndex returns the cursor position in the visible (filtered) rows
func (l *BookList) SelectedIndex() int { return l.cursor }

// ItemCount returns the number of visible rows
func (l *BookList) ItemCount() int {
	if l.filteredIdx != nil {
		return len(l.filteredIdx)
	}
	return len(l.rows)
}

// ToggleFilter activates the filter input
func (l *BookList) ToggleFilter() {
	l.filterActive = true
	l.filterInput.Focus()
	l.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (l *BookList) IsFiltering() bool { return l.filterActive }

// IsFilterTyping returns true if filter is active AND input is focused
func (l *BookList) IsFilterTyping() bool {
	return l.filterActive && l.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all rows
func (l *BookList) ClearFilter() { l.clearFilter() }

// Update handles filter typing and cursor movement
func (l *BookList) Update(msg tea.Msg) tea.Cmd {
	keyMsg, isKey := msg.(tea.KeyMsg)

	if l.IsFilterTyping() {
		if isKey {
			switch keyMsg.String() {
			case "esc":
				l.clearFilter()
				return nil
			case "enter":
				l.filterInput.Blur()
				return nil
			case "backspace":
				if l.filterInput.Value() == "" {
					l.clearFilter()
					return nil
				}
			}
		}
		var cmd tea.Cmd
		l.filterInput, cmd = l.filterInput.Update(msg)
		l.applyFilter()
		return cmd
	}

	if !isKey {
		return nil
	}
	if l.filterActive {
		switch keyMsg.String() {
		case "esc":
			l.clearFilter()
			return nil
		case "/":
			l.filterInput.Focus()
			return nil
		}
	}

	count := l.ItemCount()
	if count == 0 {
		return nil
	}
	switch keyMsg.String() {
	case "j", "down":
		if l.cursor < count-1 {
			l.cursor++
		}
	case "k", "up":
		if l.cursor > 0 {
			l.cursor--
		}
	case "home":
		l.cursor = 0
	case "G", "end":
		l.cursor = count - 1
	case "ctrl+d", "pgdown":
		l.cursor = min(count-1, l.cursor+max(1, l.maxVisible/2))
	case "ctrl+u", "pgup":
		l.cursor = max(0, l.cursor-max(1, l.maxVisible/2))
	}
	l.ensureVisible()
	return nil
}

// View renders the bordered list
func (l *BookList) View() string {
	style := styles.ActiveBorder
	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(0, l.width-frameW)).
		Height(max(0, l.height-frameH)).
		Render(l.renderContent())
}

func (l *BookList) recalcMaxVisible() {
	l.maxVisible = l.height - BorderHeight - 1 // title line
	if l.filterActive {
		l.maxVisible--
	}
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
}

func (l *BookList) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

func (l *BookList) clearFilter() {
	l.filterActive = false
	l.filtered = nil
	l.filteredIdx = nil
	l.filterInput.SetValue("")
	l.filterInput.Blur()
	l.recalcMaxVisible()
}

func (l *BookList) applyFilter() {
	query := l.filterInput.Value()
	if strings.TrimSpace(query) == "" {
		l.filtered = nil
		l.filteredIdx = nil
		return
	}

	l.filtered = l.index.Filter(query)
	l.filteredIdx = make([]int, 0, len(l.filtered))
	for _, res := range l.filtered {
		for i, r := range l.rows {
			if r.Book.ID == res.Book.ID {
				l.filteredIdx = append(l.filteredIdx, i)
				break
			}
		}
	}
	l.cursor = 0
	l.offset = 0
}

func (l *BookList) mapIndex(i int) int {
	if l.filteredIdx != nil && i < len(l.filteredIdx) {
		return l.filteredIdx[i]
	}
	return i
}

func (l *BookList) matchesFor(i int) []int {
	if l.filtered == nil || i >= len(l.filtered) {
		return nil
	}
	return l.filtered[i].MatchedIndexes
}

func (l *BookList) renderContent() string {
	itemWidth := max(10, l.width-BorderWidth)

	lines := []string{styles.AccentStyle.Render(styles.Truncate(l.title, itemWidth))}
	if l.filterActive {
		lines = append(lines, l.filterInput.View())
	}

	count := l.ItemCount()
	if count == 0 {
		empty := "No books"
		if l.filterActive && l.filterInput.Value() != "" {
			empty = "No matches"
		}
		lines = append(lines, styles.DimStyle.Render(empty))
		return strings.Join(lines, "\n")
	}

	end := min(count, l.offset+l.maxVisible)
	for i := l.offset; i < end; i++ {
		lines = append(lines, l.renderRow(l.rows[l.mapIndex(i)], l.matchesFor(i), i == l.cursor, itemWidth))
	}
	return strings.Join(lines, "\n")
}

func (l *BookList) renderRow(row BookRow, matches []int, selected bool, width int) string {
	detail := row.Detail
	if row.Progress {
		detail = styles.RenderProgressBar(row.Percent, 10) + " " + detail
	}
	detailWidth := lipgloss.Width(detail)
	titleWidth := max(4, width-detailWidth-4)

	title := highlight(styles.Truncate(row.Book.Title, titleWidth), matches)
	gap := max(1, width-2-lipgloss.Width(title)-detailWidth)
	line := " " + title + strings.Repeat(" ", gap) + styles.DimStyle.Render(detail) + " "

	if selected {
		return lipgloss.NewStyle().Background(styles.SlateLight).Foreground(styles.White).Render(line)
	}
	return lipgloss.NewStyle().Foreground(styles.LightGray).Render(line)
}

// highlight renders the matched byte positions of title in the accent color
func highlight(title string, matches []int) string {
	if len(matches) == 0 {
		return title
	}
	set := make(map[int]bool, len(matches))
	for _, m := range matches {
		set[m] = true
	}
	var b strings.Builder
	for i, r := range title {
		if set[i] {
			b.WriteString(styles.MatchHighlightStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
