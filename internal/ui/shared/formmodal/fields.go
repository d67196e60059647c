package formmodal

import "github.com/charmbracelet/bubbles/textinput"

// fieldState holds runtime state for a field.
type fieldState struct {
	config    FieldConfig
	textInput textinput.Model
	touched   bool // edited since the form opened
}

func newFieldState(cfg FieldConfig) fieldState {
	ti := textinput.New()
	ti.Placeholder = cfg.Placeholder
	ti.Prompt = ""
	if cfg.MaxLength > 0 {
		ti.CharLimit = cfg.MaxLength
	}
	if cfg.InitialValue != "" {
		ti.SetValue(cfg.InitialValue)
	}
	ti.Width = 36
	return fieldState{config: cfg, textInput: ti}
}

func (fs *fieldState) value() string {
	return fs.textInput.Value()
}
