package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grid(w, h int) string {
	return strings.TrimSuffix(strings.Repeat(strings.Repeat(".", w)+"\n", h), "\n")
}

func TestPlace_Center(t *testing.T) {
	result := Place(Config{Width: 10, Height: 5, Position: Center}, "XX\nXX", grid(10, 5))

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "..........", lines[0])
	assert.Equal(t, "....XX....", lines[1])
	assert.Equal(t, "....XX....", lines[2])
	assert.Equal(t, "..........", lines[3])
}

func TestPlace_BottomRight(t *testing.T) {
	result := Place(Config{Width: 10, Height: 4, Position: BottomRight, PadX: 1, PadY: 1}, "OK", grid(10, 4))

	lines := strings.Split(result, "\n")
	assert.Equal(t, ".......OK.", lines[2])
	assert.Equal(t, "..........", lines[3])
}

func TestPlace_PadsShortBackground(t *testing.T) {
	result := Place(Config{Width: 6, Height: 3, Position: Center}, "ab", "..")

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "  ab  ", lines[1])
}

func TestPlace_LargeForegroundDoesNotPanic(t *testing.T) {
	result := Place(Config{Width: 3, Height: 3, Position: Center}, "XXXXX\nXXXXX", grid(3, 3))

	lines := strings.Split(result, "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "XXXXX"))
}

func TestPlace_PreservesStyledBackground(t *testing.T) {
	bg := lipgloss.NewStyle().Bold(true).Render("..........")
	result := Place(Config{Width: 10, Height: 1, Position: Center}, "[]", bg)

	assert.Equal(t, "....[]....", ansi.Strip(result))
	assert.Equal(t, 10, ansi.StringWidth(result))
}

func TestCalculatePosition(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		wantX int
		wantY int
	}{
		{"center", Config{Width: 10, Height: 10, Position: Center}, 3, 4},
		{"top", Config{Width: 10, Height: 10, Position: Top, PadY: 2}, 3, 2},
		{"bottom", Config{Width: 10, Height: 10, Position: Bottom, PadY: 1}, 3, 7},
		{"bottom right", Config{Width: 10, Height: 10, Position: BottomRight, PadX: 2, PadY: 1}, 4, 7},
		{"clamped", Config{Width: 2, Height: 1, Position: Center}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := calculatePosition(tt.cfg, 4, 2)
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
		})
	}
}
