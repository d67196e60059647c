package panes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/releasedesk/internal/ui/styles"
)

// ScrollableConfig holds the configuration for rendering a scrollable pane.
type ScrollableConfig struct {
	// Viewport keeps the scroll position between renders, so it must be a
	// pointer owned by the caller.
	Viewport *viewport.Model

	LeftTitle   string
	RightTitle  string
	BottomLeft  string
	Focused     bool
	TitleColor  lipgloss.TerminalColor
	BorderColor lipgloss.TerminalColor
	FocusColor  lipgloss.TerminalColor
}

// ScrollablePane sizes the viewport to the pane interior, sets its content
// and renders it inside a BorderedPane. Content is top aligned. The scroll
// position is clamped when the new content is shorter.
//
// contentFn receives the interior width so it can wrap to it.
func ScrollablePane(width, height int, cfg ScrollableConfig, contentFn func(wrapWidth int) string) string {
	vpWidth := max(width-2, 1)
	vpHeight := max(height-2, 1)

	cfg.Viewport.Width = vpWidth
	cfg.Viewport.Height = vpHeight
	cfg.Viewport.SetContent(contentFn(vpWidth))
	cfg.Viewport.SetYOffset(cfg.Viewport.YOffset)

	return BorderedPane(BorderConfig{
		Content:            cfg.Viewport.View(),
		Width:              width,
		Height:             height,
		TopLeft:            cfg.LeftTitle,
		TopRight:           cfg.RightTitle,
		BottomLeft:         cfg.BottomLeft,
		BottomRight:        ScrollIndicator(*cfg.Viewport),
		Focused:            cfg.Focused,
		TitleColor:         cfg.TitleColor,
		BorderColor:        cfg.BorderColor,
		FocusedBorderColor: cfg.FocusColor,
	})
}

// ScrollIndicator returns "NN%" when the content overflows the viewport, and
// an empty string when it fits.
func ScrollIndicator(vp viewport.Model) string {
	if vp.TotalLineCount() <= vp.Height {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(styles.TextMutedColor).
		Render(fmt.Sprintf("%.0f%%", vp.ScrollPercent()*100))
}
