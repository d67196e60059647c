// Package logoverlay shows the debug log lines over the release table when
// the application runs with --debug.
package logoverlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/releasedesk/internal/log"
	"github.com/zjrosen/releasedesk/internal/ui/overlay"
	"github.com/zjrosen/releasedesk/internal/ui/shared/panes"
	"github.com/zjrosen/releasedesk/internal/ui/styles"
)

const (
	maxEntries   = 500 // oldest lines are dropped beyond this
	maxBodyLines = 25
	minBodyLines = 5
	maxBoxWidth  = 160
	minBoxWidth  = 40
	borderLines  = 2
	screenMargin = 4
)

// CloseMsg is sent when the overlay closes itself.
type CloseMsg struct{}

// levelFilter is a key that shows lines at or above level.
type levelFilter struct {
	key   string
	level log.Level
	label string
}

var levelFilters = []levelFilter{
	{"d", log.LevelDebug, "Debug"},
	{"i", log.LevelInfo, "Info"},
	{"w", log.LevelWarn, "Warn"},
	{"e", log.LevelError, "Error"},
}

var (
	closeKey  = key.NewBinding(key.WithKeys("esc", "ctrl+x"))
	clearKey  = key.NewBinding(key.WithKeys("c"))
	quitKey   = key.NewBinding(key.WithKeys("ctrl+c"))
	topKey    = key.NewBinding(key.WithKeys("g", "home"))
	bottomKey = key.NewBinding(key.WithKeys("G", "end"))
)

// Model holds the recorded lines and the scroll position.
type Model struct {
	visible  bool
	minLevel log.Level
	entries  []string
	width    int
	height   int
	viewport viewport.Model
}

// New returns a hidden overlay showing every level.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// Append records a log line. Lines are kept while the overlay is hidden so
// opening it shows recent history.
func (m *Model) Append(entry string) {
	m.entries = append(m.entries, strings.TrimSuffix(entry, "\n"))
	if excess := len(m.entries) - maxEntries; excess > 0 {
		m.entries = append([]string(nil), m.entries[excess:]...)
	}
	if !m.visible {
		return
	}
	follow := m.viewport.AtBottom()
	m.refresh()
	if follow {
		m.viewport.GotoBottom()
	}
}

// Entries returns the recorded lines, oldest first.
func (m Model) Entries() []string {
	return m.entries
}

// Update handles keys while the overlay is visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, quitKey):
			return m, tea.Quit
		case key.Matches(msg, closeKey):
			m.visible = false
			return m, func() tea.Msg { return CloseMsg{} }
		case key.Matches(msg, clearKey):
			m.entries = nil
			m.refresh()
			return m, nil
		case key.Matches(msg, topKey):
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, bottomKey):
			m.viewport.GotoBottom()
			return m, nil
		}
		for _, f := range levelFilters {
			if msg.String() == f.key {
				m.minLevel = f.level
				m.refresh()
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the bordered log box, or "" while hidden.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	return panes.BorderedPane(panes.BorderConfig{
		Content:     m.viewport.View(),
		Width:       m.boxWidth(),
		Height:      m.viewport.Height + borderLines,
		TopLeft:     "Logs",
		TopRight:    fmt.Sprintf("%d/%d", len(m.filtered()), len(m.entries)),
		BottomLeft:  m.filterHint(),
		PreWrapped:  true,
		TitleColor:  styles.OverlayTitleColor,
		BorderColor: styles.OverlayBorderColor,
	})
}

// Overlay centers the log box on bg. A hidden overlay returns bg unchanged.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

// Visible reports whether the overlay is showing.
func (m Model) Visible() bool {
	return m.visible
}

// Toggle shows or hides the overlay.
func (m *Model) Toggle() {
	if m.visible {
		m.Hide()
		return
	}
	m.Show()
}

// Show makes the overlay visible, scrolled to the newest line.
func (m *Model) Show() {
	m.visible = true
	m.refresh()
	m.viewport.GotoBottom()
}

// Hide makes the overlay invisible.
func (m *Model) Hide() {
	m.visible = false
}

// SetSize records the screen size used for layout and centering.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.refresh()
}

func (m Model) boxWidth() int {
	return max(min(m.width-screenMargin, maxBoxWidth), minBoxWidth)
}

// refresh rebuilds the viewport content, keeping the scroll offset when the
// size is unchanged.
func (m *Model) refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}
	width := m.boxWidth() - borderLines
	height := max(min(maxBodyLines, m.height-borderLines-screenMargin), minBodyLines)
	if m.viewport.Width != width || m.viewport.Height != height {
		m.viewport = viewport.New(width, height)
	}
	m.viewport.SetContent(m.renderEntries(width))
}

func (m Model) filtered() []string {
	var out []string
	for _, entry := range m.entries {
		if level, ok := entryLevel(entry); !ok || level >= m.minLevel {
			out = append(out, entry)
		}
	}
	return out
}

func (m Model) renderEntries(width int) string {
	entries := m.filtered()
	if len(entries) == 0 {
		return lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			Italic(true).
			Render("No logs to display")
	}
	lines := make([]string, len(entries))
	for i, entry := range entries {
		lines[i] = m.renderEntry(entry, width)
	}
	return strings.Join(lines, "\n")
}

// renderEntry truncates entry to width and colors it by level.
func (m Model) renderEntry(entry string, width int) string {
	if ansi.StringWidth(entry) > width {
		entry = ansi.Truncate(entry, width, "...")
	}
	level, ok := entryLevel(entry)
	if !ok {
		return lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Render(entry)
	}
	return lipgloss.NewStyle().Foreground(levelColor(level)).Render(entry)
}

// entryLevel reads the first bracketed token of a line written by package
// log, e.g. "2025-06-15T10:45:00 [INFO] [registry] ...".
func entryLevel(entry string) (log.Level, bool) {
	start := strings.IndexByte(entry, '[')
	if start < 0 {
		return log.LevelDebug, false
	}
	end := strings.IndexByte(entry[start:], ']')
	if end < 0 {
		return log.LevelDebug, false
	}
	level, err := log.ParseLevel(entry[start+1 : start+end])
	return level, err == nil
}

func levelColor(level log.Level) lipgloss.TerminalColor {
	switch level {
	case log.LevelError:
		return styles.StatusErrorColor
	case log.LevelWarn:
		return styles.StatusWarningColor
	case log.LevelInfo:
		return styles.ToastBorderInfoColor
	default:
		return styles.TextMutedColor
	}
}

// filterHint lists the keys with the active level in bold.
func (m Model) filterHint() string {
	muted := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	hints := []string{muted.Render("[c] Clear")}
	for _, f := range levelFilters {
		style := muted
		if f.level == m.minLevel {
			style = active
		}
		hints = append(hints, style.Render(fmt.Sprintf("[%s] %s", f.key, f.label)))
	}
	return strings.Join(hints, "  ")
}
