package table

// filterVisibleColumns drops columns whose HideBelow threshold is above the
// table width.
func filterVisibleColumns[T any](cols []ColumnConfig[T], tableWidth int) []ColumnConfig[T] {
	visible := make([]ColumnConfig[T], 0, len(cols))
	for _, col := range cols {
		if col.HideBelow > 0 && tableWidth < col.HideBelow {
			continue
		}
		visible = append(visible, col)
	}
	return visible
}

// calculateColumnWidths splits available (cells, excluding the one-cell
// separators) across the columns. Fixed columns get their width, flex
// columns share what is left, bounded by MinWidth and MaxWidth. Leftover
// cells from capped columns go to uncapped ones left to right.
func calculateColumnWidths[T any](cols []ColumnConfig[T], available int) []int {
	widths := make([]int, len(cols))
	if len(cols) == 0 {
		return widths
	}

	remaining := available - (len(cols) - 1)
	var flex []int
	for i, col := range cols {
		if col.Width > 0 {
			widths[i] = col.Width
			remaining -= col.Width
			continue
		}
		flex = append(flex, i)
	}
	if len(flex) == 0 {
		return widths
	}

	// Floors first so every flex column is at least readable.
	for _, i := range flex {
		widths[i] = max(cols[i].MinWidth, minColumnWidth)
		remaining -= widths[i]
	}

	// Hand out the rest one cell at a time, skipping capped columns.
	for remaining > 0 {
		grew := false
		for _, i := range flex {
			if remaining == 0 {
				break
			}
			if cols[i].MaxWidth > 0 && widths[i] >= cols[i].MaxWidth {
				continue
			}
			widths[i]++
			remaining--
			grew = true
		}
		if !grew {
			break
		}
	}

	return widths
}
