// Package table renders the release list as a bordered, column-configured
// table.
//
// The table is a render component with external selection state. Callers
// pass column configurations with Render callbacks, the rows, and the
// dimensions; the table handles the border, header, cell truncation,
// selection highlighting, and keeping the selected row scrolled into view.
//
//	tbl := table.New(table.Config[release.Release]{
//	    Columns: []table.ColumnConfig[release.Release]{
//	        {Key: "version", Header: "Version", MinWidth: 10, Render: func(r release.Release, w int, _ bool) string {
//	            return r.VersionName
//	        }},
//	    },
//	    EmptyMessage: "No Release Available",
//	}).SetRows(releases).SetSize(80, 20)
//	view := tbl.ViewWithSelection(cursor)
package table

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// DefaultEmptyMessage is shown when the table has no rows.
const DefaultEmptyMessage = "No data"

// minColumnWidth is the narrowest a flex column is squeezed to.
const minColumnWidth = 3

// ColumnConfig defines a single table column.
//
// Width configuration:
//   - Width: fixed width in cells (0 = flex)
//   - MinWidth: minimum width for flex columns
//   - MaxWidth: maximum width for flex columns (0 = no limit)
//   - HideBelow: hide the column when the table is narrower than this
type ColumnConfig[T any] struct {
	Key       string
	Header    string
	Width     int
	MinWidth  int
	MaxWidth  int
	HideBelow int
	Align     lipgloss.Position

	// Render returns the cell content. Content wider than width is truncated.
	Render func(row T, width int, selected bool) string
}

// Config defines the complete table configuration.
type Config[T any] struct {
	Columns      []ColumnConfig[T] // at least one
	Title        string            // shown on the top border
	EmptyMessage string            // default DefaultEmptyMessage

	// RowZoneID returns a bubblezone id for a row. When set, each row is
	// wrapped with zone.Mark for mouse click detection.
	RowZoneID func(index int, row T) string

	Focused            bool
	BorderColor        lipgloss.TerminalColor
	FocusedBorderColor lipgloss.TerminalColor
}

// ValidateConfig returns an error if there are no columns or a column has no
// Render callback.
func ValidateConfig[T any](cfg Config[T]) error {
	if len(cfg.Columns) == 0 {
		return errors.New("table config: at least one column is required")
	}
	for i, col := range cfg.Columns {
		if col.Render == nil {
			if col.Key != "" {
				return fmt.Errorf("table config: column %q has nil Render callback", col.Key)
			}
			return fmt.Errorf("table config: column %d has nil Render callback", i)
		}
	}
	return nil
}
