// Package modal provides the confirmation dialog shown before a release is
// deleted.
package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/releasedesk/internal/keys"
	"github.com/zjrosen/releasedesk/internal/ui/overlay"
	"github.com/zjrosen/releasedesk/internal/ui/styles"
)

// Zone IDs for mouse click detection.
const (
	zoneConfirmButton = "modal-confirm"
	zoneCancelButton  = "modal-cancel"
)

const defaultMinWidth = 40

// ButtonVariant controls the styling of the confirm button.
type ButtonVariant int

const (
	ButtonPrimary ButtonVariant = iota // Blue (default)
	ButtonDanger                       // Red (for destructive actions)
)

// Config controls modal appearance.
type Config struct {
	Title          string        // e.g. "Delete Release"
	Message        string        // body text
	ConfirmLabel   string        // default "Confirm"
	ConfirmVariant ButtonVariant // default ButtonPrimary
	MinWidth       int           // 0 means 40
}

// ConfirmMsg is sent when the user confirms.
type ConfirmMsg struct{}

// CancelMsg is sent when the user cancels (Esc key or Cancel button).
type CancelMsg struct{}

// Field identifies which button is focused.
type Field int

const (
	FieldConfirm Field = iota
	FieldCancel
)

// Model is the modal component state.
type Model struct {
	config       Config
	focusedField Field
	width        int
	height       int
}

// New creates a modal focused on the confirm button.
func New(cfg Config) Model {
	if cfg.ConfirmLabel == "" {
		cfg.ConfirmLabel = "Confirm"
	}
	return Model{config: cfg, focusedField: FieldConfirm}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the modal.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Form.Cancel), msg.String() == "n":
			return m, cancel
		case msg.String() == "y":
			return m, confirm
		case key.Matches(msg, keys.Form.Next), key.Matches(msg, keys.Form.Prev):
			m.focusedField = 1 - m.focusedField
		case key.Matches(msg, keys.Form.Left):
			m.focusedField = FieldConfirm
		case key.Matches(msg, keys.Form.Right):
			m.focusedField = FieldCancel
		case msg.Type == tea.KeyEnter:
			if m.focusedField == FieldConfirm {
				return m, confirm
			}
			return m, cancel
		}

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			if z := zone.Get(zoneConfirmButton); z != nil && z.InBounds(msg) {
				m.focusedField = FieldConfirm
				return m, confirm
			}
			if z := zone.Get(zoneCancelButton); z != nil && z.InBounds(msg) {
				m.focusedField = FieldCancel
				return m, cancel
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

func confirm() tea.Msg { return ConfirmMsg{} }
func cancel() tea.Msg  { return CancelMsg{} }

// View renders the modal content (without overlay).
func (m Model) View() string {
	contentWidth := max(m.config.MinWidth, defaultMinWidth, lipgloss.Width(m.config.Title))
	boxWidth := contentWidth + 2

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1)

	divider := lipgloss.NewStyle().
		Foreground(styles.OverlayBorderColor).
		Render(strings.Repeat("─", boxWidth))

	var content strings.Builder
	if m.config.Message != "" {
		msgStyle := lipgloss.NewStyle().
			Foreground(styles.TextPrimaryColor).
			Width(contentWidth)
		content.WriteString(msgStyle.Render(m.config.Message))
		content.WriteString("\n\n")
	}
	content.WriteString(m.renderButtons())

	var result strings.Builder
	result.WriteString(titleStyle.Render(m.config.Title))
	result.WriteString("\n")
	result.WriteString(divider)
	result.WriteString("\n")
	result.WriteString(lipgloss.NewStyle().Padding(1, 1).Render(content.String()))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(boxWidth)

	return boxStyle.Render(result.String())
}

func (m Model) renderButtons() string {
	var confirmStyle lipgloss.Style
	switch m.config.ConfirmVariant {
	case ButtonDanger:
		confirmStyle = styles.DangerButtonStyle
		if m.focusedField == FieldConfirm {
			confirmStyle = styles.DangerButtonFocusedStyle
		}
	default:
		confirmStyle = styles.PrimaryButtonStyle
		if m.focusedField == FieldConfirm {
			confirmStyle = styles.PrimaryButtonFocusedStyle
		}
	}

	cancelStyle := styles.SecondaryButtonStyle
	if m.focusedField == FieldCancel {
		cancelStyle = styles.SecondaryButtonFocusedStyle
	}

	confirmBtn := zone.Mark(zoneConfirmButton, confirmStyle.Render(m.config.ConfirmLabel))
	cancelBtn := zone.Mark(zoneCancelButton, cancelStyle.Render("Cancel"))
	return confirmBtn + "  " + cancelBtn
}

// Overlay renders the modal centered on the given background.
func (m Model) Overlay(bg string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

// SetSize updates the viewport size used for centering.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// FocusedField returns the currently focused button.
func (m Model) FocusedField() Field {
	return m.focusedField
}
