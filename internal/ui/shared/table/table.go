package table

import (
	"fmt"
	"strings"

	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/releasedesk/internal/ui/shared/panes"
)

// Model holds table rendering state. Selection is owned by the caller; the
// table only tracks the scroll offset needed to keep it visible.
type Model[T any] struct {
	config Config[T]
	rows   []T
	width  int
	height int
	offset int
}

// New creates a table. It panics if cfg is invalid, which is a programming
// error.
func New[T any](cfg Config[T]) Model[T] {
	if err := ValidateConfig(cfg); err != nil {
		panic(err)
	}
	if cfg.EmptyMessage == "" {
		cfg.EmptyMessage = DefaultEmptyMessage
	}
	return Model[T]{config: cfg}
}

// SetRows replaces the row data.
func (m Model[T]) SetRows(rows []T) Model[T] {
	m.rows = rows
	m.offset = m.clampOffset(m.offset)
	return m
}

// SetConfig updates dynamic config values such as Focused.
func (m Model[T]) SetConfig(cfg Config[T]) Model[T] {
	if cfg.EmptyMessage == "" {
		cfg.EmptyMessage = DefaultEmptyMessage
	}
	m.config = cfg
	return m
}

// Config returns the current configuration.
func (m Model[T]) Config() Config[T] {
	return m.config
}

// SetSize sets the outer dimensions including the border.
func (m Model[T]) SetSize(width, height int) Model[T] {
	m.width = width
	m.height = height
	m.offset = m.clampOffset(m.offset)
	return m
}

// YOffset returns the index of the first visible row.
func (m Model[T]) YOffset() int {
	return m.offset
}

// bodyHeight is the number of row lines that fit under the header.
func (m Model[T]) bodyHeight() int {
	return max(m.height-3, 0)
}

func (m Model[T]) clampOffset(offset int) int {
	maxOffset := max(len(m.rows)-m.bodyHeight(), 0)
	return min(max(offset, 0), maxOffset)
}

// EnsureVisible scrolls so row index is on screen.
func (m Model[T]) EnsureVisible(index int) Model[T] {
	if index < 0 || index >= len(m.rows) {
		return m
	}
	if index < m.offset {
		m.offset = index
	}
	if h := m.bodyHeight(); h > 0 && index >= m.offset+h {
		m.offset = index - h + 1
	}
	m.offset = m.clampOffset(m.offset)
	return m
}

// View renders the table without a selection.
func (m Model[T]) View() string {
	return m.render(-1)
}

// ViewWithSelection renders the table with row selected highlighted. An
// out-of-range index means no selection.
func (m Model[T]) ViewWithSelection(selected int) string {
	return m.render(selected)
}

func (m Model[T]) render(selected int) string {
	innerWidth := m.width - 2
	innerHeight := m.height - 2
	if innerWidth <= 0 || innerHeight <= 0 {
		return ""
	}

	cols := filterVisibleColumns(m.config.Columns, m.width)
	widths := calculateColumnWidths(cols, innerWidth-gutterWidth)

	lines := make([]string, 0, innerHeight)
	lines = append(lines, padRight(renderHeader(cols, widths), innerWidth))

	bodyHeight := innerHeight - 1
	if len(m.rows) == 0 {
		lines = append(lines, renderEmptyState(m.config.EmptyMessage, innerWidth, bodyHeight)...)
	} else {
		end := min(m.offset+bodyHeight, len(m.rows))
		for i := m.offset; i < end; i++ {
			line := renderRow(m.rows[i], cols, widths, i == selected, innerWidth)
			if m.config.RowZoneID != nil {
				if id := m.config.RowZoneID(i, m.rows[i]); id != "" {
					line = zone.Mark(id, line)
				}
			}
			lines = append(lines, line)
		}
	}

	var position string
	if selected >= 0 && selected < len(m.rows) {
		position = fmt.Sprintf("%d/%d", selected+1, len(m.rows))
	}

	return panes.BorderedPane(panes.BorderConfig{
		Content:            strings.Join(lines, "\n"),
		Width:              m.width,
		Height:             m.height,
		TopLeft:            m.config.Title,
		TopRight:           position,
		BorderColor:        m.config.BorderColor,
		Focused:            m.config.Focused,
		FocusedBorderColor: m.config.FocusedBorderColor,
		PreWrapped:         true,
	})
}
