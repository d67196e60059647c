package table

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/releasedesk/internal/ui/styles"
)

// gutterWidth is the selection indicator column in front of every row.
const gutterWidth = 2

var (
	headerStyle      lipgloss.Style
	selectedRowStyle lipgloss.Style
	emptyStyle       lipgloss.Style
)

func init() {
	rebuildStyles()
	styles.RegisterStyleRebuilder(rebuildStyles)
}

func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().Foreground(styles.TextMutedColor).Bold(true)
	selectedRowStyle = lipgloss.NewStyle().
		Foreground(styles.TextPrimaryColor).
		Background(styles.SelectionBackgroundColor)
	emptyStyle = lipgloss.NewStyle().Foreground(styles.TextMutedColor)
}

// renderHeader renders the plain-text header row. Headers are never styled by
// callers, so runewidth is enough for measuring.
func renderHeader[T any](cols []ColumnConfig[T], widths []int) string {
	parts := make([]string, len(cols))
	for i, col := range cols {
		header := runewidth.Truncate(col.Header, widths[i], "…")
		parts[i] = alignPlain(header, widths[i], col.Align)
	}
	return headerStyle.Render(strings.Repeat(" ", gutterWidth) + strings.Join(parts, " "))
}

// renderRow renders one data row padded to fullWidth.
//
// A selected row loses the cell colors and takes the selection style, so the
// highlight is a single uninterrupted bar.
func renderRow[T any](row T, cols []ColumnConfig[T], widths []int, selected bool, fullWidth int) string {
	parts := make([]string, len(cols))
	for i, col := range cols {
		cell := safeRender(row, col, widths[i], selected)
		if lipgloss.Width(cell) > widths[i] {
			cell = styles.TruncateString(cell, widths[i])
		}
		if selected {
			cell = ansi.Strip(cell)
		}
		parts[i] = alignStyled(cell, widths[i], col.Align)
	}
	content := strings.Join(parts, " ")

	if !selected {
		return padRight(strings.Repeat(" ", gutterWidth)+content, fullWidth)
	}

	indicator := styles.SelectionIndicatorStyle.Render(">") + " "
	body := padRight(content, fullWidth-gutterWidth)
	return indicator + selectedRowStyle.Render(body)
}

// safeRender invokes the column's Render callback, turning a panic into a
// visible cell error instead of crashing the program.
func safeRender[T any](row T, col ColumnConfig[T], width int, selected bool) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = styles.TruncateString(fmt.Sprintf("!ERR:%v", r), width)
		}
	}()
	return col.Render(row, width, selected)
}

// renderEmptyState centers msg in a width x height block.
func renderEmptyState(msg string, width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}

	msg = styles.TruncateString(msg, width)
	leftPad := max((width-lipgloss.Width(msg))/2, 0)
	topPad := max((height-1)/2, 0)

	lines := make([]string, height)
	lines[topPad] = strings.Repeat(" ", leftPad) + emptyStyle.Render(msg)
	return lines
}

func alignPlain(text string, width int, align lipgloss.Position) string {
	switch align {
	case lipgloss.Right:
		return runewidth.FillLeft(text, width)
	case lipgloss.Center:
		left := max(width-runewidth.StringWidth(text), 0) / 2
		return runewidth.FillRight(strings.Repeat(" ", left)+text, width)
	default:
		return runewidth.FillRight(text, width)
	}
}

// alignStyled is alignPlain for text that may carry ANSI styling.
func alignStyled(text string, width int, align lipgloss.Position) string {
	padding := width - lipgloss.Width(text)
	if padding <= 0 {
		return text
	}
	switch align {
	case lipgloss.Right:
		return strings.Repeat(" ", padding) + text
	case lipgloss.Center:
		left := padding / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", padding-left)
	default:
		return text + strings.Repeat(" ", padding)
	}
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
