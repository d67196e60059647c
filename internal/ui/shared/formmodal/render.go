package formmodal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/releasedesk/internal/ui/overlay"
	"github.com/zjrosen/releasedesk/internal/ui/styles"
)

const defaultWidth = 50

// View renders the modal content (without overlay).
func (m Model) View() string {
	width := m.config.MinWidth
	if width == 0 {
		width = defaultWidth
	}
	contentWidth := width - 2

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor)
	borderStyle := lipgloss.NewStyle().Foreground(styles.BorderDefaultColor)
	titleBorder := borderStyle.Render(strings.Repeat("─", width))

	contentPadding := lipgloss.NewStyle().PaddingLeft(1)

	var content strings.Builder
	content.WriteString(contentPadding.Render(titleStyle.Render(m.config.Title)))
	content.WriteString("\n")
	content.WriteString(titleBorder)
	content.WriteString("\n\n")

	for i := range m.fields {
		content.WriteString(contentPadding.Render(m.renderField(i, contentWidth)))
		content.WriteString("\n")
		if line := m.renderFeedback(i, contentWidth); line != "" {
			content.WriteString(contentPadding.Render(line))
			content.WriteString("\n")
		}
	}
	content.WriteString("\n")

	if m.generalError != "" {
		errorStyle := lipgloss.NewStyle().Foreground(styles.StatusErrorColor).Width(contentWidth - 1)
		content.WriteString(contentPadding.Render(" " + errorStyle.Render(m.generalError)))
		content.WriteString("\n\n")
	}

	content.WriteString(contentPadding.Render(" " + m.renderButtons()))
	content.WriteString("\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(width)

	return boxStyle.Render(content.String())
}

// renderField renders one field as a bordered section.
func (m Model) renderField(index int, width int) string {
	fs := &m.fields[index]
	focused := m.focusedIndex == index

	row := fs.textInput.View()
	hint := fs.config.Hint
	if m.isDisabled(index) {
		row = lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render(fs.value())
		hint = "locked"
	}

	focusColor := styles.BorderHighlightFocusColor
	if m.errorFor(index) != "" {
		focusColor = styles.StatusErrorColor
	}

	section := styles.RenderFormSection([]string{row}, fs.config.Label, hint, width, focused, focusColor)
	return zone.Mark(makeFieldZoneID(index), section)
}

// renderFeedback renders the error or warning line under a field.
func (m Model) renderFeedback(index int, width int) string {
	if msg := m.errorFor(index); msg != "" {
		return lipgloss.NewStyle().Foreground(styles.StatusErrorColor).
			Render(styles.TruncateString("✗ "+msg, width))
	}
	if msg := m.warningFor(index); msg != "" {
		return lipgloss.NewStyle().Foreground(styles.StatusWarningColor).
			Render(styles.TruncateString("! "+msg, width))
	}
	return ""
}

// renderButtons renders the submit and cancel buttons.
func (m Model) renderButtons() string {
	onButtons := m.focusedIndex == -1

	submitLabel := m.config.SubmitLabel
	if submitLabel == "" {
		submitLabel = "Save"
	}
	submitStyle := styles.PrimaryButtonStyle
	if m.hasErrors() {
		submitStyle = styles.DisabledButtonStyle
	} else if onButtons && m.focusedButton == buttonSubmit {
		submitStyle = styles.PrimaryButtonFocusedStyle
	}

	cancelLabel := m.config.CancelLabel
	if cancelLabel == "" {
		cancelLabel = "Cancel"
	}
	cancelStyle := styles.SecondaryButtonStyle
	if onButtons && m.focusedButton == buttonCancel {
		cancelStyle = styles.SecondaryButtonFocusedStyle
	}

	submitBtn := zone.Mark(zoneSubmitButton, submitStyle.Render(submitLabel))
	cancelBtn := zone.Mark(zoneCancelButton, cancelStyle.Render(cancelLabel))
	return submitBtn + "  " + cancelBtn
}

// Overlay renders the modal centered on a background view.
func (m Model) Overlay(bg string) string {
	fg := m.View()
	if bg == "" {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			fg,
		)
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, fg, bg)
}
