// Package tui renders the status board as a full-screen slideshow for
// weekly review meetings.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/rpggio/statusdeck/internal/views"
)

// Layout constants
const (
	maxBarWidth  = 40
	minBodyLines = 5
)

// Deck holds everything the slideshow renders. The caller assembles it from
// the store and its derived views; the TUI never touches storage itself.
type Deck struct {
	Title     string
	Subtitle  string
	Date      string
	WeekStart string
	WeekLabel string

	Summary  views.SummaryStats
	Statuses []views.StatusCount
	Slides   []views.Slide
}

// Model is the Bubble Tea model for presentation mode. Page 0 is the
// portfolio summary; pages 1..N show one project slide each.
type Model struct {
	deck Deck

	keymap KeyMap
	help   HelpModel
	bar    progress.Model

	index    int
	playing  bool
	interval time.Duration
	gen      int // invalidates ticks scheduled before a manual jump

	width    int
	height   int
	showHelp bool
}

// New creates the slideshow model. A non-positive interval disables
// autoplay; it can still be toggled on with the pause key.
func New(deck Deck, interval time.Duration) Model {
	bar := progress.New(progress.WithDefaultGradient())

	playing := interval > 0
	if interval <= 0 {
		interval = 10 * time.Second
	}

	return Model{
		deck:     deck,
		keymap:   DefaultKeyMap(),
		help:     NewHelpModel(DefaultKeyMap()),
		bar:      bar,
		playing:  playing,
		interval: interval,
	}
}

// PageCount returns the number of pages including the summary page.
func (m Model) PageCount() int {
	return 1 + len(m.deck.Slides)
}

// Init starts the autoplay timer.
func (m Model) Init() tea.Cmd {
	if m.playing {
		return m.tick()
	}
	return nil
}

// tick schedules the next autoplay advance for the current generation.
func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// Ticks from before a manual jump or pause are stale.
		if !m.playing || msg.gen != m.gen {
			return m, nil
		}
		m.index = (m.index + 1) % m.PageCount()
		return m, m.tick()

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

// handleKeyPress processes keyboard input.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if key.Matches(msg, m.keymap.Help) || key.Matches(msg, m.keymap.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keymap.Pause):
		m.playing = !m.playing
		m.gen++
		if m.playing {
			return m, m.tick()
		}
		return m, nil
	case key.Matches(msg, m.keymap.Next):
		return m.jump(m.index + 1)
	case key.Matches(msg, m.keymap.Prev):
		return m.jump(m.index - 1)
	case key.Matches(msg, m.keymap.First):
		return m.jump(0)
	case key.Matches(msg, m.keymap.Last):
		return m.jump(m.PageCount() - 1)
	}

	return m, nil
}

// jump moves to the page at idx, wrapping at both ends, and restarts the
// autoplay timer so a manual step gets a full interval on screen.
func (m Model) jump(idx int) (tea.Model, tea.Cmd) {
	count := m.PageCount()
	m.index = ((idx % count) + count) % count
	m.gen++
	if m.playing {
		return m, m.tick()
	}
	return m, nil
}

// View renders the current page.
func (m Model) View() string {
	width := m.width
	height := m.height
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	header := m.renderHeader(width)
	footer := m.renderFooter(width)

	var body string
	switch {
	case m.showHelp:
		body = m.help.View(width)
	case m.index == 0:
		body = m.renderSummary(width)
	default:
		body = m.renderSlide(width, m.deck.Slides[m.index-1])
	}

	// Pad the body so the footer sits on the bottom row.
	bodyHeight := height - lipgloss.Height(header) - lipgloss.Height(footer) - 1
	if bodyHeight < minBodyLines {
		bodyHeight = minBodyLines
	}
	bodyLines := strings.Split(body, "\n")
	if len(bodyLines) > bodyHeight {
		bodyLines = bodyLines[:bodyHeight]
	}
	for len(bodyLines) < bodyHeight {
		bodyLines = append(bodyLines, "")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		strings.Join(bodyLines, "\n"),
		footer,
	)
}

// renderHeader renders the board title with the reported week on the right.
func (m Model) renderHeader(width int) string {
	left := DeckTitleStyle.Render(m.deck.Title)
	if m.deck.Subtitle != "" {
		left += SubtitleStyle.Render(" · " + m.deck.Subtitle)
	}

	right := ""
	if m.deck.WeekLabel != "" {
		right = WeekLabelStyle.Render("Week of " + m.deck.WeekLabel)
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	return left + strings.Repeat(" ", padding) + right
}

// renderSummary renders page 0: portfolio counts and average progress.
func (m Model) renderSummary(width int) string {
	var b strings.Builder

	b.WriteString(SectionLabelStyle.Render("Portfolio"))
	b.WriteString("\n\n")

	b.WriteString(MetaStyle.Render("Projects: "))
	b.WriteString(StatNumberStyle.Render(fmt.Sprintf("%d", m.deck.Summary.Total)))
	b.WriteString("\n\n")

	for _, sc := range m.deck.Statuses {
		b.WriteString("  ")
		b.WriteString(statusStyle(sc.Status).Render(fmt.Sprintf("%-10s", sc.Label)))
		b.WriteString(StatNumberStyle.Render(fmt.Sprintf("  %d", sc.Count)))
		b.WriteString("\n")
	}
	if len(m.deck.Statuses) == 0 {
		b.WriteString(DimStyle.Render("  No projects on the board"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(MetaStyle.Render("Average progress"))
	b.WriteString("\n")
	b.WriteString(m.renderBar(width, m.deck.Summary.AvgProgress))

	return b.String()
}

// renderSlide renders one project page.
func (m Model) renderSlide(width int, slide views.Slide) string {
	var b strings.Builder
	wrapWidth := width - 4
	if wrapWidth < 20 {
		wrapWidth = 20
	}

	b.WriteString(SlideTitleStyle.Render(wordwrap.String(slide.Name, wrapWidth)))
	b.WriteString("  ")
	b.WriteString(statusStyle(slide.Status).Render(slide.StatusLabel))
	b.WriteString("\n")

	var meta []string
	if slide.Owner != "" {
		meta = append(meta, slide.Owner)
	}
	if slide.Category != "" {
		meta = append(meta, string(slide.Category))
	}
	if slide.TargetEndDate != "" {
		meta = append(meta, "target "+slide.TargetEndDate)
	}
	if len(meta) > 0 {
		b.WriteString(MetaStyle.Render(strings.Join(meta, " · ")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderBar(width, slide.Progress))
	b.WriteString("\n\n")

	if slide.Description != "" {
		b.WriteString(ItemStyle.Render(wordwrap.String(slide.Description, wrapWidth)))
		b.WriteString("\n\n")
	}

	if slide.Update == nil {
		b.WriteString(DimStyle.Render("No update for this week."))
		b.WriteString("\n")
		return b.String()
	}

	writeSection(&b, "Accomplishments", slide.Update.Accomplishments, wrapWidth)
	writeSection(&b, "Challenges", slide.Update.Challenges, wrapWidth)
	writeSection(&b, "Next Steps", slide.Update.NextSteps, wrapWidth)

	if slide.Update.EstimatedCompletion != "" {
		b.WriteString(MetaStyle.Render("Estimated completion: "))
		b.WriteString(ItemStyle.Render(slide.Update.EstimatedCompletion))
		b.WriteString("\n")
	}
	if slide.Update.SupportNeeded != "" {
		b.WriteString(MetaStyle.Render("Support needed: "))
		b.WriteString(ItemStyle.Render(wordwrap.String(slide.Update.SupportNeeded, wrapWidth)))
		b.WriteString("\n")
	}
	if slide.Update.Notes != "" {
		b.WriteString(MetaStyle.Render("Notes: "))
		b.WriteString(ItemStyle.Render(wordwrap.String(slide.Update.Notes, wrapWidth)))
		b.WriteString("\n")
	}

	return b.String()
}

// writeSection emits a labeled bullet list, skipping empty sections.
func writeSection(b *strings.Builder, label string, items []string, wrapWidth int) {
	if len(items) == 0 {
		return
	}
	b.WriteString(SectionLabelStyle.Render(label))
	b.WriteString("\n")
	for _, item := range items {
		wrapped := wordwrap.String(item, wrapWidth-2)
		lines := strings.Split(wrapped, "\n")
		for i, line := range lines {
			if i == 0 {
				b.WriteString(ItemStyle.Render("• " + line))
			} else {
				b.WriteString(ItemStyle.Render("  " + line))
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
}

// renderBar renders a progress bar at the given percentage.
func (m Model) renderBar(width, percent int) string {
	bar := m.bar
	bar.Width = width - 4
	if bar.Width > maxBarWidth {
		bar.Width = maxBarWidth
	}
	if bar.Width < 10 {
		bar.Width = 10
	}
	return bar.ViewAs(float64(percent) / 100)
}

// renderFooter renders the position indicator and key hints.
func (m Model) renderFooter(width int) string {
	var left string
	if m.index == 0 {
		left = fmt.Sprintf("summary · %d/%d", m.index+1, m.PageCount())
	} else {
		left = fmt.Sprintf("slide %d/%d", m.index+1, m.PageCount())
	}
	if m.playing {
		left += fmt.Sprintf(" · advancing every %ds", int(m.interval.Seconds()))
	} else {
		left += " " + PausedStyle.Render("PAUSED")
	}

	right := "[←/→]navigate [p]pause [?]help [q]quit"

	padding := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}
	return DimStyle.Render(left) + strings.Repeat(" ", padding) + DimStyle.Render(right)
}

// tickMsg advances the slideshow; gen pairs it with the timer that sent it.
type tickMsg struct {
	gen int
}
