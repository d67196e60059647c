// Package panes renders the bordered panes that frame the release table and
// the details view.
package panes

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/releasedesk/internal/ui/styles"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// BorderConfig configures the appearance of a bordered panel.
type BorderConfig struct {
	Content string // rendered inside the border
	Width   int    // total width including borders
	Height  int    // total height including borders

	TopLeft     string // title on the top border, left-aligned
	TopRight    string // title on the top border, right-aligned
	BottomLeft  string // text on the bottom border, left-aligned
	BottomRight string // text on the bottom border, right-aligned

	// PreWrapped skips lipgloss width/height handling. Content lines must
	// already fit; extra lines are dropped and short lines padded.
	PreWrapped bool

	Focused            bool
	TitleColor         lipgloss.TerminalColor
	BorderColor        lipgloss.TerminalColor // when not focused
	FocusedBorderColor lipgloss.TerminalColor
}

// BorderedPane renders content within a bordered panel with optional titles.
//
// Nil color fallback rules:
//   - Both BorderColor and FocusedBorderColor nil: BorderDefaultColor in both states
//   - Only BorderColor set: used in both states
//   - Only FocusedBorderColor set: BorderDefaultColor when unfocused
func BorderedPane(cfg BorderConfig) string {
	borderColor := resolveBorderColor(cfg.BorderColor, cfg.FocusedBorderColor, cfg.Focused)

	titleColor := cfg.TitleColor
	if titleColor == nil {
		titleColor = styles.BorderDefaultColor
	}

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(titleColor)

	innerWidth := max(cfg.Width-2, 1)
	contentHeight := max(cfg.Height-2, 1)

	top := edge{left: borderTopLeft, right: borderTopRight}
	bottom := edge{left: borderBottomLeft, right: borderBottomRight}

	constrained := cfg.Content
	if !cfg.PreWrapped {
		constrained = lipgloss.NewStyle().
			Width(innerWidth).
			MaxWidth(innerWidth).
			Height(contentHeight).
			MaxHeight(contentHeight).
			Render(cfg.Content)
	}
	contentLines := strings.Split(constrained, "\n")

	var result strings.Builder
	result.WriteString(top.render(cfg.TopLeft, cfg.TopRight, innerWidth, borderStyle, titleStyle))
	for i := range contentHeight {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		if w := lipgloss.Width(line); w < innerWidth {
			line += strings.Repeat(" ", innerWidth-w)
		}
		result.WriteString("\n")
		result.WriteString(borderStyle.Render(borderVertical) + line + borderStyle.Render(borderVertical))
	}
	result.WriteString("\n")
	result.WriteString(bottom.render(cfg.BottomLeft, cfg.BottomRight, innerWidth, borderStyle, titleStyle))

	return result.String()
}

func resolveBorderColor(borderColor, focusedBorderColor lipgloss.TerminalColor, focused bool) lipgloss.TerminalColor {
	switch {
	case borderColor == nil && focusedBorderColor == nil:
		return styles.BorderDefaultColor
	case focusedBorderColor == nil:
		return borderColor
	case focused:
		return focusedBorderColor
	case borderColor == nil:
		return styles.BorderDefaultColor
	default:
		return borderColor
	}
}

// edge is a horizontal border line with its corner glyphs.
type edge struct {
	left, right string
}

// render builds e.g. ╭─ Left ───────── Right ─╮. Titles that do not fit are
// dropped from the right first, then the left title is truncated.
func (e edge) render(leftTitle, rightTitle string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	plain := borderStyle.Render(e.left + strings.Repeat(borderHorizontal, innerWidth) + e.right)
	if leftTitle == "" && rightTitle == "" {
		return plain
	}

	leftWidth := lipgloss.Width(leftTitle)
	rightWidth := lipgloss.Width(rightTitle)

	// "─ " + left + " " and " " + right + " ─" around at least one dash
	need := 1
	if leftTitle != "" {
		need += leftWidth + 3
	}
	if rightTitle != "" {
		need += rightWidth + 3
	}

	if need > innerWidth && rightTitle != "" {
		rightTitle, rightWidth = "", 0
		need = 1 + leftWidth + 3
		if leftTitle == "" {
			return plain
		}
	}
	if need > innerWidth {
		available := innerWidth - 4
		if available < 1 {
			return plain
		}
		leftTitle = styles.TruncateString(leftTitle, available)
		leftWidth = lipgloss.Width(leftTitle)
	}

	dashes := innerWidth
	if leftTitle != "" {
		dashes -= leftWidth + 3
	}
	if rightTitle != "" {
		dashes -= rightWidth + 3
	}
	dashes = max(dashes, 1)

	var b strings.Builder
	b.WriteString(borderStyle.Render(e.left))
	if leftTitle != "" {
		b.WriteString(borderStyle.Render(borderHorizontal + " "))
		b.WriteString(titleStyle.Render(leftTitle))
		b.WriteString(borderStyle.Render(" "))
	}
	b.WriteString(borderStyle.Render(strings.Repeat(borderHorizontal, dashes)))
	if rightTitle != "" {
		b.WriteString(borderStyle.Render(" "))
		b.WriteString(titleStyle.Render(rightTitle))
		b.WriteString(borderStyle.Render(" " + borderHorizontal))
	}
	b.WriteString(borderStyle.Render(e.right))
	return b.String()
}
