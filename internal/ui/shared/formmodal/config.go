// Package formmodal provides a configuration-driven dialog of single-line
// text fields with live validation.
//
// Quick Start:
//
//	cfg := formmodal.FormConfig{
//	    Title: "Create Release",
//	    Fields: []formmodal.FieldConfig{
//	        {Key: "version", Label: "Version Name", Hint: "required"},
//	        {Key: "description", Label: "Description"},
//	    },
//	    SubmitLabel: "Create",
//	    Check: func(values map[string]string) formmodal.Feedback {
//	        var fb formmodal.Feedback
//	        if values["version"] == "" {
//	            fb = fb.WithError("version", "Please Enter Version Name")
//	        }
//	        return fb
//	    },
//	}
//	m := formmodal.New(cfg)
//
// Check runs after every edit. Feedback is shown on a field once the user
// has changed it, and on every field after the first submit attempt. Submit
// is refused while Check reports any error.
//
// Keyboard Navigation:
//
//	Tab, Down, Ctrl+N      - Next field/button
//	Shift+Tab, Up, Ctrl+P  - Previous field/button
//	Enter                  - Next field, or activate the focused button
//	Ctrl+S                 - Submit from anywhere
//	Esc                    - Cancel
//	Left/Right             - Move between buttons
//
// When the form is submitted, formmodal sends OnSubmit(values) or a SubmitMsg.
// When cancelled, it sends OnCancel() or a CancelMsg.
package formmodal

import (
	"maps"

	tea "github.com/charmbracelet/bubbletea"
)

// FieldConfig defines a single text field.
type FieldConfig struct {
	Key          string // identifier used in the values map
	Label        string // section label, e.g. "Version Name"
	Hint         string // shown next to the label, e.g. "required"
	Placeholder  string
	MaxLength    int // 0 = unlimited
	InitialValue string
}

// FormConfig defines the complete form modal configuration.
type FormConfig struct {
	Title       string
	Fields      []FieldConfig
	SubmitLabel string // default "Save"
	CancelLabel string // default "Cancel"
	MinWidth    int    // default 50

	// Check validates the current values. It is called after every edit and
	// before submit.
	Check func(values map[string]string) Feedback

	// OnSubmit produces the message sent on a successful submit.
	// If nil, formmodal produces SubmitMsg{Values: values}.
	OnSubmit func(values map[string]string) tea.Msg

	// OnCancel produces the message sent on cancel.
	// If nil, formmodal produces CancelMsg{}.
	OnCancel func() tea.Msg
}

// SubmitMsg is sent when the form passes Check and is submitted.
type SubmitMsg struct {
	Values map[string]string
}

// CancelMsg is sent when the form is cancelled.
type CancelMsg struct{}

// Feedback is the result of a Check. The zero value reports nothing.
type Feedback struct {
	Errors   map[string]string // field key -> blocking message
	Warnings map[string]string // field key -> advisory message
	Disabled map[string]bool   // fields that cannot be focused or edited
}

// WithError returns a copy of f with an error recorded for key.
func (f Feedback) WithError(key, msg string) Feedback {
	f.Errors = withEntry(f.Errors, key, msg)
	return f
}

// WithWarning returns a copy of f with a warning recorded for key.
func (f Feedback) WithWarning(key, msg string) Feedback {
	f.Warnings = withEntry(f.Warnings, key, msg)
	return f
}

// WithDisabled returns a copy of f with key disabled.
func (f Feedback) WithDisabled(key string) Feedback {
	next := make(map[string]bool, len(f.Disabled)+1)
	maps.Copy(next, f.Disabled)
	next[key] = true
	f.Disabled = next
	return f
}

// HasErrors reports whether any field has a blocking error.
func (f Feedback) HasErrors() bool {
	return len(f.Errors) > 0
}

func withEntry(m map[string]string, key, msg string) map[string]string {
	next := make(map[string]string, len(m)+1)
	maps.Copy(next, m)
	next[key] = msg
	return next
}
