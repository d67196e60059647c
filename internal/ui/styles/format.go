package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/releasedesk/internal/release"
)

// Progress bar glyphs
const (
	progressFilled = "█"
	progressEmpty  = "░"
)

// TruncateString truncates a string to fit within maxWidth, adding ellipsis if needed.
// ANSI sequences are preserved.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}
	return truncate.StringWithTail(s, uint(maxWidth), "...")
}

// FormatDate renders d with a Go time layout. An unset date renders empty.
func FormatDate(d release.Date, layout string) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(layout)
}

// StatusStyle returns the style used for a release status label.
func StatusStyle(s release.Status) lipgloss.Style {
	switch s {
	case release.StatusReleased:
		return ReleaseReleasedStyle
	case release.StatusUnreleased:
		return ReleaseUnreleasedStyle
	default:
		return ReleaseInProgressStyle
	}
}

// ProgressBar renders a bar followed by the percentage, e.g. "████░░░░  40%".
// width is the total width including the label. Progress is clamped to 0-100.
func ProgressBar(progress, width int) string {
	progress = min(max(progress, release.MinProgress), release.MaxProgress)
	label := fmt.Sprintf("%4d%%", progress)

	barWidth := width - lipgloss.Width(label)
	if barWidth < 1 {
		return label
	}

	filled := barWidth * progress / release.MaxProgress
	empty := barWidth - filled

	filledStyle := lipgloss.NewStyle().Foreground(ProgressFilledColor)
	emptyStyle := lipgloss.NewStyle().Foreground(ProgressEmptyColor)

	return filledStyle.Render(strings.Repeat(progressFilled, filled)) +
		emptyStyle.Render(strings.Repeat(progressEmpty, empty)) +
		label
}
