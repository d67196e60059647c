package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderFormSection draws content in a rounded box whose top edge carries
// the title and an optional muted hint:
//
//	╭─ Version Name (required) ───╮
//	│v1.0                         │
//	╰─────────────────────────────╯
//
// The box is width columns wide. Title and border take focusedBorderColor
// while focused.
func RenderFormSection(content []string, title, hint string, width int, focused bool, focusedBorderColor lipgloss.TerminalColor) string {
	var color lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		color = focusedBorderColor
	}
	border := lipgloss.RoundedBorder()
	inner := max(width-2, 1)

	body := lipgloss.NewStyle().
		Border(border, false, true, true, true).
		BorderForeground(color).
		Width(inner).
		Render(strings.Join(content, "\n"))

	return sectionTop(border, color, title, hint, inner) + "\n" + body
}

func sectionTop(b lipgloss.Border, color lipgloss.TerminalColor, title, hint string, inner int) string {
	edge := lipgloss.NewStyle().Foreground(color)
	if title == "" {
		return edge.Render(b.TopLeft + strings.Repeat(b.Top, inner) + b.TopRight)
	}

	label := lipgloss.NewStyle().Bold(true).Foreground(color).Render(title)
	if hint != "" {
		label += " " + lipgloss.NewStyle().Foreground(TextMutedColor).Render("("+hint+")")
	}
	// "─ " before the label and " " after it.
	fill := max(inner-lipgloss.Width(label)-3, 0)
	return edge.Render(b.TopLeft+b.Top+" ") + label + edge.Render(" "+strings.Repeat(b.Top, fill)+b.TopRight)
}
