package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rpggio/statusdeck/internal/domain/project"
)

var (
	// DeckTitleStyle is used for the board title in the header.
	DeckTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")) // Purple

	// SubtitleStyle is used for the board subtitle next to the title.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")) // Dark gray

	// WeekLabelStyle is used for the reported week in the header.
	WeekLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")) // Light blue

	// SlideTitleStyle is used for the project name on a slide.
	SlideTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")) // Pink

	// SectionLabelStyle is used for slide section headings.
	SectionLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("99"))

	// ItemStyle is used for bullet list entries on a slide.
	ItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // Light gray

	// MetaStyle is used for owner/category/date metadata lines.
	MetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	// DimStyle is used for footer hints and empty states.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	// PausedStyle marks the slideshow as paused in the footer.
	PausedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("214")). // Orange
			Foreground(lipgloss.Color("0")).
			Padding(0, 1)

	// StatNumberStyle is used for the big counters on the summary page.
	StatNumberStyle = lipgloss.NewStyle().
			Bold(true)
)

var statusStyles = map[project.Status]lipgloss.Style{
	project.StatusOnTrack:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("34")),  // Green
	project.StatusAtRisk:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")), // Orange
	project.StatusDelayed:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")), // Red
	project.StatusCompleted: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("141")), // Purple
	project.StatusOnHold:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("241")), // Gray
}

// statusStyle returns the color style for a project status.
func statusStyle(s project.Status) lipgloss.Style {
	if style, ok := statusStyles[s]; ok {
		return style
	}
	return DimStyle
}
