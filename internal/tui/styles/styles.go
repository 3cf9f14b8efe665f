package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	Saffron    = lipgloss.Color("#F59E0B")
	Rose       = lipgloss.Color("#F472B6")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
)

// Accent is the highlight color; ApplyTheme swaps it
var Accent = Saffron

// ApplyTheme selects the accent color by theme name
func ApplyTheme(name string) {
	switch strings.ToLower(name) {
	case "rose":
		Accent = Rose
	default:
		Accent = Saffron
	}
	rebuild()
}

// Borders
var (
	ActiveBorder   lipgloss.Style
	InactiveBorder lipgloss.Style
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	AccentStyle      lipgloss.Style
	HighlightStyle   lipgloss.Style
	BookmarkStyle    lipgloss.Style
	PageContentStyle = lipgloss.NewStyle().
				Foreground(White).
				Padding(1, 4)
)

// Modal styles
var (
	ModalStyle lipgloss.Style

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)
)

// Tab styles
var (
	ActiveTabStyle lipgloss.Style

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(LightGray).
				Padding(0, 2)
)

// Help, progress, filter and highlight styles
var (
	HelpKeyStyle  lipgloss.Style
	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	ProgressFullStyle  lipgloss.Style
	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(DimGray)

	SpinnerStyle        lipgloss.Style
	FilterStyle         lipgloss.Style
	FilterPromptStyle   lipgloss.Style
	MatchHighlightStyle lipgloss.Style
)

func init() {
	rebuild()
}

// rebuild recreates the accent-colored styles
func rebuild() {
	ActiveBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent)
	InactiveBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(DimGray)

	AccentStyle = lipgloss.NewStyle().Foreground(Accent)
	HighlightStyle = lipgloss.NewStyle().
		Foreground(SlateDark).
		Background(Accent).
		Padding(0, 1)
	BookmarkStyle = lipgloss.NewStyle().Foreground(Accent).Bold(true)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent).
		Padding(1, 2).
		Background(SlateDark)

	ActiveTabStyle = lipgloss.NewStyle().
		Foreground(SlateDark).
		Background(Accent).
		Bold(true).
		Padding(0, 2)

	HelpKeyStyle = lipgloss.NewStyle().Foreground(Accent)
	ProgressFullStyle = lipgloss.NewStyle().Foreground(Accent)
	SpinnerStyle = lipgloss.NewStyle().Foreground(Accent)
	FilterStyle = lipgloss.NewStyle().Foreground(Accent)
	FilterPromptStyle = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	MatchHighlightStyle = lipgloss.NewStyle().Foreground(Accent).Bold(true)
}

// Truncate shortens s to width runes, ending with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

// Pad pads or cuts s to exactly width cells
func Pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return Truncate(s, width)
}

// RenderProgressBar renders a percentage as a bar of width cells
func RenderProgressBar(percent int, width int) string {
	if width < 3 {
		return ""
	}
	filled := width * percent / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return ProgressFullStyle.Render(strings.Repeat("█", filled)) +
		ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// SpinnerFrames are the frames for spinners drawn outside Bubble Tea
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
