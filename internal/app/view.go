package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/releasedesk/internal/release"
	"github.com/zjrosen/releasedesk/internal/ui/styles"
)

const (
	minDetailsWidth  = 30
	minSplitWidth    = 80
	tableWidthRatio  = 0.6
	statusBarHeight  = 1
	statusBarPadding = 1
)

// layout sizes the table, details pane and dialogs for the window.
func (m Model) layout() Model {
	bodyHeight := m.height
	if m.cfg.UI.ShowStatusBar {
		bodyHeight -= statusBarHeight
	}
	bodyHeight = max(bodyHeight, 0)

	tableWidth := m.width
	if m.detailsVisible() {
		tableWidth = int(float64(m.width) * tableWidthRatio)
		m.details = m.details.SetSize(m.width-tableWidth, bodyHeight)
	}
	m.table = m.table.SetSize(tableWidth, bodyHeight).EnsureVisible(m.selected)

	m.help = m.help.SetSize(m.width, m.height)
	m.form = m.form.SetSize(m.width, m.height)
	m.confirm = m.confirm.SetSize(m.width, m.height)
	return m
}

// detailsVisible reports whether the details pane is on and fits.
func (m Model) detailsVisible() bool {
	return m.cfg.UI.ShowDetails && m.width >= minSplitWidth &&
		m.width-int(float64(m.width)*tableWidthRatio) >= minDetailsWidth
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	view := m.table.ViewWithSelection(m.selected)
	if m.detailsVisible() {
		view = lipgloss.JoinHorizontal(lipgloss.Top, view, zone.Mark(detailsZoneID, m.details.View()))
	}
	if m.cfg.UI.ShowStatusBar {
		view = lipgloss.JoinVertical(lipgloss.Left, view, m.renderStatusBar())
	}

	switch m.active {
	case dialogForm:
		view = m.form.Overlay(view)
	case dialogConfirmDelete:
		view = m.confirm.Overlay(view)
	case dialogHelp:
		view = m.help.Overlay(view)
	}

	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}

	if m.debug && m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}

	return zone.Scan(view)
}

// renderStatusBar shows the count per status, today's date and the short
// help, truncated to the window width.
func (m Model) renderStatusBar() string {
	counts := m.svc.Counts()
	parts := make([]string, 0, 3)
	for _, s := range []release.Status{release.StatusInProgress, release.StatusUnreleased, release.StatusReleased} {
		parts = append(parts, styles.StatusStyle(s).Render(fmt.Sprintf("%s %d", s, counts[s])))
	}
	sep := lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render(" · ")
	left := strings.Join(parts, sep)

	today := "Today " + styles.FormatDate(m.svc.Today(), m.cfg.UI.DateFormat)
	right := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor).Render(today)

	// StatusBarStyle pads one column on each side.
	inner := m.width - 2*statusBarPadding
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)

	var line string
	if gap >= 2 {
		helpWidth := gap - 2
		shortHelp := m.help.ShortHelp(helpWidth)
		pad := max(gap-lipgloss.Width(shortHelp), 2)
		line = left + strings.Repeat(" ", pad/2) + shortHelp + strings.Repeat(" ", pad-pad/2) + right
		if lipgloss.Width(shortHelp) == 0 {
			line = left + strings.Repeat(" ", gap) + right
		}
	} else {
		line = styles.TruncateString(left+"  "+right, inner)
	}

	return styles.StatusBarStyle.Width(m.width).Render(line)
}
