package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/kahaaniverse/kahaani/internal/tui/styles"
)

// Tab identifies a browse tab
type Tab int

const (
	TabCatalog Tab = iota
	TabLatest
	TabLibrary
	TabBookmarks
	TabCategories
	TabSearch
)

// AllTabs lists the tabs in display order
func AllTabs() []Tab {
	return []Tab{TabCatalog, TabLatest, TabLibrary, TabBookmarks, TabCategories, TabSearch}
}

// String returns the tab label
func (t Tab) String() string {
	switch t {
	case TabCatalog:
		return "Catalog"
	case TabLatest:
		return "Latest"
	case TabLibrary:
		return "Library"
	case TabBookmarks:
		return "Bookmarks"
	case TabCategories:
		return "Categories"
	case TabSearch:
		return "Search"
	default:
		return "Unknown"
	}
}

// Next cycles forward through the tabs
func (t Tab) Next() Tab {
	return (t + 1) % Tab(len(AllTabs()))
}

// Prev cycles backward through the tabs
func (t Tab) Prev() Tab {
	n := Tab(len(AllTabs()))
	return (t + n - 1) % n
}

// RenderTabs draws the tab bar with active highlighted
func RenderTabs(active Tab) string {
	parts := make([]string, 0, len(AllTabs()))
	for _, t := range AllTabs() {
		if t == active {
			parts = append(parts, styles.ActiveTabStyle.Render(t.String()))
		} else {
			parts = append(parts, styles.InactiveTabStyle.Render(t.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
