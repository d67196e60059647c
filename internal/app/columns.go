package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/releasedesk/internal/release"
	"github.com/zjrosen/releasedesk/internal/ui/shared/table"
	"github.com/zjrosen/releasedesk/internal/ui/styles"
)

const emptyTableMessage = "No Release Available"

func rowZoneID(_ int, r release.Release) string {
	return "release-row-" + r.ID
}

// releaseColumns returns the release table columns. Dates use layout.
func releaseColumns(layout string) []table.ColumnConfig[release.Release] {
	return []table.ColumnConfig[release.Release]{
		{
			Key: "version", Header: "Version", MinWidth: 8, MaxWidth: 24,
			Render: func(r release.Release, _ int, _ bool) string {
				return r.VersionName
			},
		},
		{
			Key: "start", Header: "Start Date", Width: 12,
			Render: func(r release.Release, _ int, _ bool) string {
				return styles.FormatDate(r.StartDate, layout)
			},
		},
		{
			Key: "released", Header: "Released Date", Width: 13, HideBelow: 70,
			Render: func(r release.Release, _ int, _ bool) string {
				if !r.HasReleasedDate() {
					return lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("-")
				}
				return styles.FormatDate(r.ReleasedDate, layout)
			},
		},
		{
			Key: "description", Header: "Description", MinWidth: 10, HideBelow: 90,
			Render: func(r release.Release, _ int, _ bool) string {
				// First line only; the details pane shows the rest.
				line, _, _ := strings.Cut(r.Description, "\n")
				return line
			},
		},
		{
			Key: "status", Header: "Status", Width: 11,
			Render: func(r release.Release, _ int, _ bool) string {
				return styles.StatusStyle(r.Status).Render(r.Status.String())
			},
		},
		{
			Key: "progress", Header: "Progress", Width: 16, HideBelow: 60,
			Render: func(r release.Release, w int, _ bool) string {
				return styles.ProgressBar(r.Progress, w)
			},
		},
	}
}

// tableConfig builds the table configuration from the current theme colors.
func tableConfig(layout string) table.Config[release.Release] {
	return table.Config[release.Release]{
		Columns:            releaseColumns(layout),
		Title:              "Releases",
		EmptyMessage:       emptyTableMessage,
		RowZoneID:          rowZoneID,
		Focused:            true,
		FocusedBorderColor: styles.BorderHighlightFocusColor,
	}
}
