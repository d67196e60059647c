package table

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

const (
	timeout = time.Second
	tick    = 10 * time.Millisecond
)

type item struct {
	name     string
	progress int
}

func testColumns() []ColumnConfig[item] {
	return []ColumnConfig[item]{
		{Key: "name", Header: "Version", MinWidth: 8, Render: func(r item, _ int, _ bool) string {
			return r.name
		}},
		{Key: "progress", Header: "Progress", Width: 8, Align: lipgloss.Right, Render: func(r item, _ int, _ bool) string {
			return lipgloss.NewStyle().Bold(true).Render(strings.Repeat("#", r.progress/25))
		}},
	}
}

func newTable(rows ...item) Model[item] {
	return New(Config[item]{
		Columns:      testColumns(),
		Title:        "Releases",
		EmptyMessage: "No Release Available",
		RowZoneID:    func(i int, _ item) string { return "row-" + string(rune('a'+i)) },
	}).SetRows(rows).SetSize(40, 8)
}

func viewLines(s string) []string {
	return strings.Split(ansi.Strip(zone.Scan(s)), "\n")
}

func TestNew_PanicsOnInvalidConfig(t *testing.T) {
	require.Panics(t, func() { New(Config[item]{}) })
	require.Panics(t, func() {
		New(Config[item]{Columns: []ColumnConfig[item]{{Key: "x"}}})
	})
}

func TestValidateConfig(t *testing.T) {
	err := ValidateConfig(Config[item]{Columns: []ColumnConfig[item]{{Key: "version"}}})
	require.ErrorContains(t, err, `column "version"`)

	err = ValidateConfig(Config[item]{Columns: []ColumnConfig[item]{{}}})
	require.ErrorContains(t, err, "column 0")

	require.NoError(t, ValidateConfig(Config[item]{Columns: testColumns()}))
}

func TestView_EmptyState(t *testing.T) {
	lines := viewLines(newTable().View())

	tbl := New(Config[item]{Columns: testColumns()}).SetSize(40, 6)
	assert.Contains(t, strings.Join(viewLines(tbl.View()), "\n"), DefaultEmptyMessage)

	require.Len(t, lines, 8)
	assert.Contains(t, lines[1], "Version")
	assert.Contains(t, lines[1], "Progress")
	assert.Contains(t, strings.Join(lines, "\n"), "No Release Available")
}

func TestView_RowsAndSelection(t *testing.T) {
	tbl := newTable(item{"v1.0", 100}, item{"v1.1", 50})
	lines := viewLines(tbl.ViewWithSelection(1))

	require.Len(t, lines, 8)
	for _, l := range lines {
		assert.Equal(t, 40, lipgloss.Width(l), "line %q", l)
	}
	assert.True(t, strings.HasPrefix(lines[0], "╭─ Releases "))
	assert.True(t, strings.HasSuffix(lines[0], " 2/2 ─╮"))
	assert.True(t, strings.HasPrefix(lines[2], "│  v1.0"))
	assert.True(t, strings.HasPrefix(lines[3], "│> v1.1"))
	assert.Contains(t, lines[2], "####")
	assert.Contains(t, lines[3], "##")
}

func TestView_NoSelection(t *testing.T) {
	lines := viewLines(newTable(item{"v1.0", 0}).View())
	assert.NotContains(t, lines[0], "/")
	assert.NotContains(t, strings.Join(lines, "\n"), ">")
}

func TestView_ZeroSize(t *testing.T) {
	tbl := newTable(item{"v1.0", 0}).SetSize(0, 0)
	assert.Empty(t, tbl.View())
}

func TestView_RenderPanicShowsError(t *testing.T) {
	tbl := New(Config[item]{Columns: []ColumnConfig[item]{{
		Key: "boom", Header: "Boom", Render: func(item, int, bool) string { panic("bad") },
	}}}).SetRows([]item{{}}).SetSize(30, 5)

	assert.Contains(t, strings.Join(viewLines(tbl.View()), "\n"), "!ERR:bad")
}

func TestEnsureVisible(t *testing.T) {
	rows := make([]item, 10)
	for i := range rows {
		rows[i] = item{name: string(rune('a' + i))}
	}
	// height 8 leaves 5 body rows
	tbl := newTable(rows...)

	tbl = tbl.EnsureVisible(7)
	assert.Equal(t, 3, tbl.YOffset())

	tbl = tbl.EnsureVisible(1)
	assert.Equal(t, 1, tbl.YOffset())

	tbl = tbl.EnsureVisible(99)
	assert.Equal(t, 1, tbl.YOffset())

	tbl = tbl.SetRows(rows[:2])
	assert.Equal(t, 0, tbl.YOffset())
}

func TestRowZones(t *testing.T) {
	tbl := newTable(item{"v1.0", 0}, item{"v1.1", 0})
	zone.Scan(tbl.View())

	require.Eventually(t, func() bool { return zone.Get("row-b") != nil && !zone.Get("row-b").IsZero() }, timeout, tick)

	z := zone.Get("row-b")
	assert.True(t, z.InBounds(tea.MouseMsg{X: 5, Y: 3}))
	assert.False(t, z.InBounds(tea.MouseMsg{X: 5, Y: 2}))
}

func TestFilterVisibleColumns(t *testing.T) {
	cols := testColumns()
	cols[1].HideBelow = 50

	assert.Len(t, filterVisibleColumns(cols, 40), 1)
	assert.Len(t, filterVisibleColumns(cols, 50), 2)
}

func TestCalculateColumnWidths(t *testing.T) {
	cols := []ColumnConfig[item]{
		{Width: 10},
		{MinWidth: 5},
		{MinWidth: 5, MaxWidth: 6},
	}

	// 30 - 2 separators - 10 fixed = 18 for flex
	widths := calculateColumnWidths(cols, 30)
	assert.Equal(t, []int{10, 12, 6}, widths)

	// Too narrow: floors still apply
	widths = calculateColumnWidths(cols, 10)
	assert.Equal(t, []int{10, 5, 5}, widths)

	assert.Empty(t, calculateColumnWidths[item](nil, 10))
}
