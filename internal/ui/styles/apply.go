package styles

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// styleRebuilders holds callbacks to rebuild styles in other packages.
// styles can't import its consumers, so they register instead.
var styleRebuilders []func()

// RegisterStyleRebuilder adds a callback that will be called after ApplyTheme
// updates colors. Use this to rebuild styles in packages that depend on styles.
func RegisterStyleRebuilder(fn func()) {
	styleRebuilders = append(styleRebuilders, fn)
}

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	Colors map[string]string
}

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ApplyTheme applies a complete theme configuration.
// Order of application:
// 1. Start with default colors
// 2. Apply preset (if specified)
// 3. Apply individual color overrides
// 4. Rebuild all Style objects
//
// On error no color is changed.
func ApplyTheme(cfg ThemeConfig) error {
	colors := maps.Clone(DefaultPreset.Colors)

	if cfg.Preset != "" && cfg.Preset != DefaultPreset.Name {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
	}

	// Sorted so the reported error is stable when several overrides are bad.
	keys := make([]string, 0, len(cfg.Colors))
	for key := range cfg.Colors {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := cfg.Colors[key]
		token := ColorToken(key)
		if !isValidToken(token) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	applyColors(colors)
	rebuildStyles()

	return nil
}

// PresetNames returns the built-in preset names, sorted.
func PresetNames() []string {
	return slices.Sorted(maps.Keys(Presets))
}

func applyColors(colors map[ColorToken]string) {
	makeColor := func(hex string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: hex, Dark: hex}
	}

	targets := map[ColorToken][]*lipgloss.AdaptiveColor{
		TokenTextPrimary:     {&TextPrimaryColor},
		TokenTextSecondary:   {&TextSecondaryColor},
		TokenTextMuted:       {&TextMutedColor},
		TokenTextDescription: {&TextDescriptionColor},
		TokenTextPlaceholder: {&TextPlaceholderColor},

		TokenBorderDefault:   {&BorderDefaultColor},
		TokenBorderHighlight: {&BorderHighlightFocusColor},

		TokenStatusSuccess: {&StatusSuccessColor},
		TokenStatusWarning: {&StatusWarningColor},
		TokenStatusError:   {&StatusErrorColor},

		TokenSelectionIndicator:  {&SelectionIndicatorColor},
		TokenSelectionBackground: {&SelectionBackgroundColor},

		TokenButtonText:             {&ButtonTextColor},
		TokenButtonPrimaryBg:        {&ButtonPrimaryBgColor},
		TokenButtonPrimaryFocusBg:   {&ButtonPrimaryFocusBgColor},
		TokenButtonSecondaryBg:      {&ButtonSecondaryBgColor},
		TokenButtonSecondaryFocusBg: {&ButtonSecondaryFocusBgColor},
		TokenButtonDangerBg:         {&ButtonDangerBgColor},
		TokenButtonDangerFocusBg:    {&ButtonDangerFocusBgColor},
		TokenButtonDisabledBg:       {&ButtonDisabledBgColor},

		TokenOverlayTitle:  {&OverlayTitleColor},
		TokenOverlayBorder: {&OverlayBorderColor},

		TokenToastSuccess: {&ToastBorderSuccessColor},
		TokenToastError:   {&ToastBorderErrorColor},
		TokenToastInfo:    {&ToastBorderInfoColor},
		TokenToastWarn:    {&ToastBorderWarnColor},

		TokenReleaseInProgress: {&ReleaseInProgressColor},
		TokenReleaseUnreleased: {&ReleaseUnreleasedColor},
		TokenReleaseReleased:   {&ReleaseReleasedColor},

		TokenProgressFilled: {&ProgressFilledColor},
		TokenProgressEmpty:  {&ProgressEmptyColor},
	}

	for token, ptrs := range targets {
		if c, ok := colors[token]; ok {
			for _, p := range ptrs {
				*p = makeColor(c)
			}
		}
	}

	// Form colors layer: border.focus is the fallback for the focused form
	// colors, the form.* tokens win when present.
	if c, ok := colors[TokenBorderFocus]; ok {
		FormTextInputFocusedBorderColor = makeColor(c)
		FormTextInputFocusedLabelColor = makeColor(c)
	}
	if c, ok := colors[TokenFormBorder]; ok {
		FormTextInputBorderColor = makeColor(c)
		FormTextInputLabelColor = makeColor(c)
	}
	if c, ok := colors[TokenFormBorderFocus]; ok {
		FormTextInputFocusedBorderColor = makeColor(c)
	}
	if c, ok := colors[TokenFormLabel]; ok {
		FormTextInputLabelColor = makeColor(c)
	}
	if c, ok := colors[TokenFormLabelFocus]; ok {
		FormTextInputFocusedLabelColor = makeColor(c)
	}
}

// rebuildStyles recreates all Style objects with updated colors.
// lipgloss.Style objects capture colors at creation time.
func rebuildStyles() {
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	baseButtonStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true)

	PrimaryButtonStyle = baseButtonStyle.
		Foreground(ButtonTextColor).
		Background(ButtonPrimaryBgColor)

	PrimaryButtonFocusedStyle = baseButtonStyle.
		Foreground(ButtonTextColor).
		Background(ButtonPrimaryFocusBgColor).
		Underline(true).
		UnderlineSpaces(true)

	SecondaryButtonStyle = baseButtonStyle.
		Foreground(ButtonTextColor).
		Background(ButtonSecondaryBgColor)

	SecondaryButtonFocusedStyle = baseButtonStyle.
		Foreground(ButtonTextColor).
		Background(ButtonSecondaryFocusBgColor).
		Underline(true).
		UnderlineSpaces(true)

	DangerButtonStyle = baseButtonStyle.
		Foreground(ButtonTextColor).
		Background(ButtonDangerBgColor)

	DangerButtonFocusedStyle = baseButtonStyle.
		Foreground(ButtonTextColor).
		Background(ButtonDangerFocusBgColor).
		Underline(true).
		UnderlineSpaces(true)

	DisabledButtonStyle = baseButtonStyle.
		Foreground(TextMutedColor).
		Background(ButtonDisabledBgColor)

	ReleaseInProgressStyle = lipgloss.NewStyle().Foreground(ReleaseInProgressColor)
	ReleaseUnreleasedStyle = lipgloss.NewStyle().Foreground(ReleaseUnreleasedColor)
	ReleaseReleasedStyle = lipgloss.NewStyle().Foreground(ReleaseReleasedColor).Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(TextSecondaryColor).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(StatusErrorColor).
		Bold(true).
		Padding(1, 2)

	for _, fn := range styleRebuilders {
		fn()
	}
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func isValidHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}
