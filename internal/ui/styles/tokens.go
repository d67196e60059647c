package styles

// ColorToken is a named, themeable color. Tokens are the keys accepted under
// theme.colors in the config file.
type ColorToken string

const (
	// Text hierarchy
	TokenTextPrimary     ColorToken = "text.primary"
	TokenTextSecondary   ColorToken = "text.secondary"
	TokenTextMuted       ColorToken = "text.muted"
	TokenTextDescription ColorToken = "text.description"
	TokenTextPlaceholder ColorToken = "text.placeholder"

	// Borders
	TokenBorderDefault   ColorToken = "border.default"
	TokenBorderFocus     ColorToken = "border.focus"
	TokenBorderHighlight ColorToken = "border.highlight"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	// Selection
	TokenSelectionIndicator  ColorToken = "selection.indicator"
	TokenSelectionBackground ColorToken = "selection.background"

	// Buttons
	TokenButtonText             ColorToken = "button.text"
	TokenButtonPrimaryBg        ColorToken = "button.primary.bg"
	TokenButtonPrimaryFocusBg   ColorToken = "button.primary.focus"
	TokenButtonSecondaryBg      ColorToken = "button.secondary.bg"
	TokenButtonSecondaryFocusBg ColorToken = "button.secondary.focus"
	TokenButtonDangerBg         ColorToken = "button.danger.bg"
	TokenButtonDangerFocusBg    ColorToken = "button.danger.focus"
	TokenButtonDisabledBg       ColorToken = "button.disabled.bg"

	// Forms
	TokenFormBorder      ColorToken = "form.border"
	TokenFormBorderFocus ColorToken = "form.border.focus"
	TokenFormLabel       ColorToken = "form.label"
	TokenFormLabelFocus  ColorToken = "form.label.focus"

	// Overlays
	TokenOverlayTitle  ColorToken = "overlay.title"
	TokenOverlayBorder ColorToken = "overlay.border"

	// Toasts
	TokenToastSuccess ColorToken = "toast.success"
	TokenToastError   ColorToken = "toast.error"
	TokenToastInfo    ColorToken = "toast.info"
	TokenToastWarn    ColorToken = "toast.warn"

	// Release status
	TokenReleaseInProgress ColorToken = "release.in_progress"
	TokenReleaseUnreleased ColorToken = "release.unreleased"
	TokenReleaseReleased   ColorToken = "release.released"

	// Progress bar
	TokenProgressFilled ColorToken = "progress.filled"
	TokenProgressEmpty  ColorToken = "progress.empty"
)

// AllTokens returns every valid color token.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,
		TokenTextDescription,
		TokenTextPlaceholder,

		TokenBorderDefault,
		TokenBorderFocus,
		TokenBorderHighlight,

		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,

		TokenSelectionIndicator,
		TokenSelectionBackground,

		TokenButtonText,
		TokenButtonPrimaryBg,
		TokenButtonPrimaryFocusBg,
		TokenButtonSecondaryBg,
		TokenButtonSecondaryFocusBg,
		TokenButtonDangerBg,
		TokenButtonDangerFocusBg,
		TokenButtonDisabledBg,

		TokenFormBorder,
		TokenFormBorderFocus,
		TokenFormLabel,
		TokenFormLabelFocus,

		TokenOverlayTitle,
		TokenOverlayBorder,

		TokenToastSuccess,
		TokenToastError,
		TokenToastInfo,
		TokenToastWarn,

		TokenReleaseInProgress,
		TokenReleaseUnreleased,
		TokenReleaseReleased,

		TokenProgressFilled,
		TokenProgressEmpty,
	}
}
