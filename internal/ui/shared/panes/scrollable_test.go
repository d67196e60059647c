package panes

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func numbered(n int) func(int) string {
	return func(int) string {
		lines := make([]string, n)
		for i := range lines {
			lines[i] = fmt.Sprintf("line %d", i+1)
		}
		return strings.Join(lines, "\n")
	}
}

func TestScrollablePane_FitsContent(t *testing.T) {
	vp := viewport.New(0, 0)
	out := ansi.Strip(ScrollablePane(20, 6, ScrollableConfig{Viewport: &vp, LeftTitle: "Details"}, numbered(2)))

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)
	require.Contains(t, lines[1], "line 1")
	require.Equal(t, 18, vp.Width)
	require.Equal(t, 4, vp.Height)
	require.NotContains(t, lines[5], "%")
}

func TestScrollablePane_ShowsIndicatorWhenOverflowing(t *testing.T) {
	vp := viewport.New(0, 0)
	out := ansi.Strip(ScrollablePane(20, 6, ScrollableConfig{Viewport: &vp}, numbered(20)))

	lines := strings.Split(out, "\n")
	require.Contains(t, lines[5], "0%")

	vp.GotoBottom()
	out = ansi.Strip(ScrollablePane(20, 6, ScrollableConfig{Viewport: &vp}, numbered(20)))
	lines = strings.Split(out, "\n")
	require.Contains(t, lines[4], "line 20")
	require.Contains(t, lines[5], "100%")
}

func TestScrollablePane_ClampsOffsetWhenContentShrinks(t *testing.T) {
	vp := viewport.New(0, 0)
	ScrollablePane(20, 6, ScrollableConfig{Viewport: &vp}, numbered(20))
	vp.GotoBottom()

	out := ansi.Strip(ScrollablePane(20, 6, ScrollableConfig{Viewport: &vp}, numbered(3)))
	require.Contains(t, out, "line 1")
	require.Equal(t, 0, vp.YOffset)
}

func TestScrollIndicator(t *testing.T) {
	vp := viewport.New(10, 5)
	vp.SetContent("a\nb")
	require.Empty(t, ScrollIndicator(vp))
}
