// Package details renders the side pane with the selected release's fields
// and its description as markdown.
package details

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/releasedesk/internal/log"
	"github.com/zjrosen/releasedesk/internal/release"
	"github.com/zjrosen/releasedesk/internal/ui/shared/markdown"
	"github.com/zjrosen/releasedesk/internal/ui/shared/panes"
	"github.com/zjrosen/releasedesk/internal/ui/styles"
)

const (
	title        = "Release Details"
	labelWidth   = 10
	progressBarW = 20
	emptyMessage = "Select a release to see its details."
)

// Model is the details pane state.
type Model struct {
	release    release.Release
	hasRelease bool

	renderer   *markdown.CachedRenderer
	dateLayout string
	today      release.Date

	viewport viewport.Model
	content  string
	width    int
	height   int
}

// New creates an empty details pane. renderer may be nil, in which case the
// description is shown as plain text.
func New(renderer *markdown.CachedRenderer, dateLayout string) Model {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true
	return Model{
		renderer:   renderer,
		dateLayout: dateLayout,
		viewport:   vp,
	}
}

// SetRelease shows r. Switching to another release scrolls back to the top.
func (m Model) SetRelease(r release.Release) Model {
	if !m.hasRelease || m.release.ID != r.ID {
		m.viewport.GotoTop()
	}
	m.release = r
	m.hasRelease = true
	return m.refresh()
}

// Clear shows the empty state.
func (m Model) Clear() Model {
	m.release = release.Release{}
	m.hasRelease = false
	m.viewport.GotoTop()
	return m.refresh()
}

// Release returns the release on display.
func (m Model) Release() (release.Release, bool) {
	return m.release, m.hasRelease
}

// SetDateLayout changes the date format of the date rows.
func (m Model) SetDateLayout(layout string) Model {
	m.dateLayout = layout
	return m.refresh()
}

// SetToday sets the date used to flag a past start date.
func (m Model) SetToday(today release.Date) Model {
	m.today = today
	return m.refresh()
}

// SetSize sets the outer pane dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-2, 1)
	m.viewport.Height = max(height-2, 1)
	return m.refresh()
}

// Update scrolls the description with the mouse wheel and page keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "pgdown", "ctrl+d":
			m.viewport.HalfPageDown()
			return m, nil
		case "pgup", "ctrl+u":
			m.viewport.HalfPageUp()
			return m, nil
		}
		return m, nil
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the pane.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	vp := m.viewport
	return panes.ScrollablePane(m.width, m.height, panes.ScrollableConfig{
		Viewport:   &vp,
		LeftTitle:  title,
		TitleColor: styles.OverlayTitleColor,
	}, func(int) string { return m.content })
}

func (m Model) refresh() Model {
	m.content = m.renderContent(m.viewport.Width)
	m.viewport.SetContent(m.content)
	return m
}

func (m Model) renderContent(width int) string {
	if !m.hasRelease {
		return lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render(emptyMessage)
	}

	r := m.release
	labelStyle := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor).Width(labelWidth)
	divider := lipgloss.NewStyle().
		Foreground(styles.BorderDefaultColor).
		Render(strings.Repeat("─", max(width, 1)))

	row := func(label, value string) string {
		return labelStyle.Render(label) + value
	}

	start := styles.FormatDate(r.StartDate, m.dateLayout)
	if !m.today.IsZero() && release.ValidateStartDate(r.StartDate, m.today) == release.WarnPastStartDate && r.Status != release.StatusReleased {
		start += lipgloss.NewStyle().Foreground(styles.StatusWarningColor).Render(" (past)")
	}

	released := styles.FormatDate(r.ReleasedDate, m.dateLayout)
	if released == "" {
		released = lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("not set")
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimaryColor).Render(r.VersionName),
		divider,
		row("Status", styles.StatusStyle(r.Status).Render(r.Status.String())),
		row("Progress", styles.ProgressBar(r.Progress, min(progressBarW, max(width-labelWidth, 5)))),
		row("Start", start),
		row("Released", released),
		row("ID", lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render(r.ID)),
		divider,
		m.renderDescription(width),
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderDescription(width int) string {
	if strings.TrimSpace(m.release.Description) == "" {
		return lipgloss.NewStyle().Foreground(styles.TextMutedColor).Italic(true).Render("No description")
	}

	if m.renderer != nil {
		out, err := m.renderer.Render(context.Background(), width, m.release.Description)
		if err == nil {
			return out
		}
		log.ErrorErr(log.CatUI, "render release description", err, "release", m.release.ID)
	}

	return lipgloss.NewStyle().
		Foreground(styles.TextDescriptionColor).
		Width(max(width, 1)).
		Render(m.release.Description)
}
