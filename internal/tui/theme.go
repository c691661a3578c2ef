package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Tab bar styles
	TabStyle       = lipgloss.NewStyle().Padding(0, 2)
	ActiveTabStyle = TabStyle.Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))
	InactiveTabStyle = TabStyle.
				Foreground(lipgloss.Color("#888888"))

	// Trade direction colors
	DirectionLongStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	DirectionShortStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)

	// R:R severity colors
	RRGoodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	RROkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))
	RRPoorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))

	// Stat tiles
	TileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#555555")).
			Padding(0, 1).
			MarginRight(1)
	TileLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	TileValueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA"))
	TrendUpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	TrendDownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))

	// Filter chips
	ChipStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#AAAAAA"))
	ActiveChipStyle = ChipStyle.Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#5A3FC0"))

	// General styles
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA"))
	SubtextStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	BorderStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#555555"))
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	NoticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00CCFF"))
	SelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#333355"))
	FeedbackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).PaddingLeft(2)
)
