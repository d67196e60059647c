package styles

// Preset is a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains the built-in themes by name.
var Presets = map[string]Preset{
	"default":       DefaultPreset,
	"nord":          NordPreset,
	"high-contrast": HighContrastPreset,
}

// DefaultPreset matches the initial values in styles.go (dark variants).
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#CCCCCC",
		TokenTextSecondary:   "#BBBBBB",
		TokenTextMuted:       "#696969",
		TokenTextDescription: "#999999",
		TokenTextPlaceholder: "#777777",

		TokenBorderDefault:   "#696969",
		TokenBorderFocus:     "#FFFFFF",
		TokenBorderHighlight: "#54A0FF",

		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FECA57",
		TokenStatusError:   "#FF8787",

		TokenSelectionIndicator:  "#FFFFFF",
		TokenSelectionBackground: "#2A3A4A",

		TokenButtonText:             "#FFFFFF",
		TokenButtonPrimaryBg:        "#1A5276",
		TokenButtonPrimaryFocusBg:   "#3498DB",
		TokenButtonSecondaryBg:      "#2D3436",
		TokenButtonSecondaryFocusBg: "#636E72",
		TokenButtonDangerBg:         "#922B21",
		TokenButtonDangerFocusBg:    "#E74C3C",
		TokenButtonDisabledBg:       "#2D2D2D",

		TokenFormBorder:      "#8C8C8C",
		TokenFormBorderFocus: "#FFFFFF",
		TokenFormLabel:       "#8C8C8C",
		TokenFormLabelFocus:  "#FFFFFF",

		TokenOverlayTitle:  "#C9C9C9",
		TokenOverlayBorder: "#8C8C8C",

		TokenToastSuccess: "#73F59F",
		TokenToastError:   "#FF8787",
		TokenToastInfo:    "#54A0FF",
		TokenToastWarn:    "#FECA57",

		TokenReleaseInProgress: "#54A0FF",
		TokenReleaseUnreleased: "#FECA57",
		TokenReleaseReleased:   "#73F59F",

		TokenProgressFilled: "#54A0FF",
		TokenProgressEmpty:  "#3A3A3A",
	},
}

// NordPreset is based on the Nord palette.
var NordPreset = Preset{
	Name:        "nord",
	Description: "Arctic, north-bluish palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#ECEFF4",
		TokenTextSecondary:   "#E5E9F0",
		TokenTextMuted:       "#4C566A",
		TokenTextDescription: "#D8DEE9",
		TokenTextPlaceholder: "#616E88",

		TokenBorderDefault:   "#4C566A",
		TokenBorderFocus:     "#88C0D0",
		TokenBorderHighlight: "#81A1C1",

		TokenStatusSuccess: "#A3BE8C",
		TokenStatusWarning: "#EBCB8B",
		TokenStatusError:   "#BF616A",

		TokenSelectionIndicator:  "#88C0D0",
		TokenSelectionBackground: "#3B4252",

		TokenButtonText:             "#2E3440",
		TokenButtonPrimaryBg:        "#5E81AC",
		TokenButtonPrimaryFocusBg:   "#88C0D0",
		TokenButtonSecondaryBg:      "#434C5E",
		TokenButtonSecondaryFocusBg: "#4C566A",
		TokenButtonDangerBg:         "#BF616A",
		TokenButtonDangerFocusBg:    "#D08770",
		TokenButtonDisabledBg:       "#3B4252",

		TokenFormBorder:      "#4C566A",
		TokenFormBorderFocus: "#88C0D0",
		TokenFormLabel:       "#D8DEE9",
		TokenFormLabelFocus:  "#88C0D0",

		TokenOverlayTitle:  "#88C0D0",
		TokenOverlayBorder: "#4C566A",

		TokenToastSuccess: "#A3BE8C",
		TokenToastError:   "#BF616A",
		TokenToastInfo:    "#81A1C1",
		TokenToastWarn:    "#EBCB8B",

		TokenReleaseInProgress: "#81A1C1",
		TokenReleaseUnreleased: "#EBCB8B",
		TokenReleaseReleased:   "#A3BE8C",

		TokenProgressFilled: "#88C0D0",
		TokenProgressEmpty:  "#3B4252",
	},
}

// HighContrastPreset uses pure, saturated colors.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast colors",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#FFFFFF",
		TokenTextSecondary:   "#FFFFFF",
		TokenTextMuted:       "#C0C0C0",
		TokenTextDescription: "#FFFFFF",
		TokenTextPlaceholder: "#C0C0C0",

		TokenBorderDefault:   "#FFFFFF",
		TokenBorderFocus:     "#FFFF00",
		TokenBorderHighlight: "#00FFFF",

		TokenStatusSuccess: "#00FF00",
		TokenStatusWarning: "#FFFF00",
		TokenStatusError:   "#FF0000",

		TokenSelectionIndicator:  "#FFFF00",
		TokenSelectionBackground: "#000080",

		TokenButtonText:             "#000000",
		TokenButtonPrimaryBg:        "#00FFFF",
		TokenButtonPrimaryFocusBg:   "#FFFF00",
		TokenButtonSecondaryBg:      "#C0C0C0",
		TokenButtonSecondaryFocusBg: "#FFFFFF",
		TokenButtonDangerBg:         "#FF0000",
		TokenButtonDangerFocusBg:    "#FF00FF",
		TokenButtonDisabledBg:       "#808080",

		TokenFormBorder:      "#FFFFFF",
		TokenFormBorderFocus: "#FFFF00",
		TokenFormLabel:       "#FFFFFF",
		TokenFormLabelFocus:  "#FFFF00",

		TokenOverlayTitle:  "#FFFFFF",
		TokenOverlayBorder: "#FFFFFF",

		TokenToastSuccess: "#00FF00",
		TokenToastError:   "#FF0000",
		TokenToastInfo:    "#00FFFF",
		TokenToastWarn:    "#FFFF00",

		TokenReleaseInProgress: "#00FFFF",
		TokenReleaseUnreleased: "#FFFF00",
		TokenReleaseReleased:   "#00FF00",

		TokenProgressFilled: "#00FFFF",
		TokenProgressEmpty:  "#808080",
	},
}
