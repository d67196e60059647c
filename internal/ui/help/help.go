// Package help renders the keybinding overlay and the one-line short help
// shown in the status bar.
package help

import (
	"strings"

	bubbleshelp "github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/releasedesk/internal/keys"
	"github.com/zjrosen/releasedesk/internal/ui/overlay"
	"github.com/zjrosen/releasedesk/internal/ui/styles"
)

// wideLayoutWidth is the terminal width needed for three columns per row.
const wideLayoutWidth = 110

// Section titles, in the order of keys.KeyMap.FullHelp.
var sectionTitles = []string{"Navigation", "Actions", "Layout", "General"}

var (
	titleStyle   lipgloss.Style
	dividerStyle lipgloss.Style
	sectionStyle lipgloss.Style
	keyStyle     lipgloss.Style
	descStyle    lipgloss.Style
	boxStyle     lipgloss.Style
	contentStyle lipgloss.Style
	footerStyle  lipgloss.Style
)

func init() {
	rebuildStyles()
	styles.RegisterStyleRebuilder(rebuildStyles)
}

func rebuildStyles() {
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(2)

	dividerStyle = lipgloss.NewStyle().
		Foreground(styles.OverlayBorderColor)

	sectionStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		MarginTop(1)

	keyStyle = lipgloss.NewStyle().
		Foreground(styles.TextSecondaryColor).
		Width(11)

	descStyle = lipgloss.NewStyle().
		Foreground(styles.TextDescriptionColor)

	boxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor)

	contentStyle = lipgloss.NewStyle().
		Padding(0, 2)

	footerStyle = lipgloss.NewStyle().
		Foreground(styles.TextMutedColor).
		MarginTop(1)
}

// Model holds the help view state.
type Model struct {
	keys   keys.KeyMap
	short  bubbleshelp.Model
	width  int
	height int
}

// New creates a help model for the default keymap.
func New() Model {
	return Model{
		keys:  keys.DefaultKeyMap(),
		short: bubbleshelp.New(),
	}
}

// SetSize sets the area the overlay is centered in.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// ShortHelp renders the compact binding list, truncated to width.
func (m Model) ShortHelp(width int) string {
	h := m.short
	h.Width = width
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	return h.ShortHelpView(m.keys.ShortHelp())
}

func (m Model) View() string {
	return m.Overlay("")
}

// Overlay renders the help box on top of a background view.
func (m Model) Overlay(background string) string {
	helpBox := m.renderContent()

	if background == "" {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			helpBox,
		)
	}

	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, helpBox, background)
}

func (m Model) renderContent() string {
	columnStyle := lipgloss.NewStyle().MarginRight(4)

	groups := m.keys.FullHelp()
	cols := make([]string, 0, len(groups)+1)
	for i, group := range groups {
		var col strings.Builder
		col.WriteString(sectionStyle.Render(sectionTitles[i]))
		col.WriteString("\n")
		for _, b := range group {
			col.WriteString(renderBinding(b))
		}
		cols = append(cols, col.String())
	}

	var dialog strings.Builder
	dialog.WriteString(sectionStyle.Render("Dialogs"))
	dialog.WriteString("\n")
	dialog.WriteString(renderKeyDesc("tab/S-tab", "next/prev field"))
	dialog.WriteString(renderBinding(keys.Form.Submit))
	dialog.WriteString(renderKeyDesc("y/n", "confirm/cancel"))
	dialog.WriteString(renderBinding(keys.Form.Cancel))
	cols = append(cols, dialog.String())

	perRow := 3
	if m.width > 0 && m.width < wideLayoutWidth {
		perRow = 2
	}
	var rows []string
	for start := 0; start < len(cols); start += perRow {
		end := min(start+perRow, len(cols))
		row := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			if i < end-1 {
				row = append(row, columnStyle.Render(cols[i]))
			} else {
				row = append(row, cols[i])
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	columns := lipgloss.JoinVertical(lipgloss.Left, rows...)

	boxWidth := lipgloss.Width(columns) + 4
	body := contentStyle.Render(columns + "\n" + footerStyle.Render("Press ? or Esc to close"))
	divider := dividerStyle.Render(strings.Repeat("─", boxWidth))

	var content strings.Builder
	content.WriteString(titleStyle.Render("Keybindings"))
	content.WriteString("\n")
	content.WriteString(divider)
	content.WriteString("\n")
	content.WriteString(body)

	return boxStyle.Width(boxWidth).Render(content.String())
}

func renderBinding(b key.Binding) string {
	h := b.Help()
	return renderKeyDesc(h.Key, h.Desc)
}

func renderKeyDesc(key, desc string) string {
	return keyStyle.Render(key) + descStyle.Render(desc) + "\n"
}
