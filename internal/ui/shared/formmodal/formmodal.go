package formmodal

import (
	"fmt"
	"maps"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/releasedesk/internal/keys"
)

// Zone IDs for mouse click detection.
const (
	zoneSubmitButton = "formmodal-submit"
	zoneCancelButton = "formmodal-cancel"
)

func makeFieldZoneID(index int) string {
	return fmt.Sprintf("formmodal-field-%d", index)
}

const (
	buttonSubmit = 0
	buttonCancel = 1
)

// Model is the form modal state. Methods return a new Model rather than
// modifying the receiver.
type Model struct {
	config        FormConfig
	fields        []fieldState
	focusedIndex  int // index into fields, -1 = on buttons
	focusedButton int // buttonSubmit or buttonCancel when focusedIndex == -1

	width, height int

	feedback       Feedback
	externalErrors map[string]string // errors set by the caller, cleared on edit
	submitted      bool              // a submit was attempted
	generalError   string
}

// New creates a form focused on its first enabled field.
func New(cfg FormConfig) Model {
	m := Model{
		config:         cfg,
		fields:         make([]fieldState, len(cfg.Fields)),
		externalErrors: make(map[string]string),
	}
	for i, fieldCfg := range cfg.Fields {
		m.fields[i] = newFieldState(fieldCfg)
	}
	m.runCheck()

	m.focusedIndex = -1
	if first := m.nextEnabled(-1); first >= 0 {
		m.focusedIndex = first
		m.fields[first].textInput.Focus()
	}
	return m
}

// Init returns a cursor blink command when a field has focus.
func (m Model) Init() tea.Cmd {
	return m.blinkCmd()
}

// Update handles messages for the form modal.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			if cmd, ok := m.handleButtonClick(msg); ok {
				return m, cmd
			}
			if m.handleFieldClick(msg) {
				return m, m.blinkCmd()
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	// Cursor blink and other internal textinput messages.
	if fs := m.focusedField(); fs != nil {
		var cmd tea.Cmd
		fs.textInput, cmd = fs.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Form.Cancel):
		return m, m.cancelCmd()
	case key.Matches(msg, keys.Form.Submit):
		return m.submit()
	case key.Matches(msg, keys.Form.Next):
		m = m.nextField()
		return m, m.blinkCmd()
	case key.Matches(msg, keys.Form.Prev):
		m = m.prevField()
		return m, m.blinkCmd()
	case msg.Type == tea.KeyEnter:
		return m.handleEnter()
	}

	fs := m.focusedField()
	if fs == nil {
		// On buttons.
		switch {
		case key.Matches(msg, keys.Form.Left):
			m.focusedButton = buttonSubmit
		case key.Matches(msg, keys.Form.Right):
			m.focusedButton = buttonCancel
		}
		return m, nil
	}

	before := fs.value()
	var cmd tea.Cmd
	fs.textInput, cmd = fs.textInput.Update(msg)
	if fs.value() != before {
		fs.touched = true
		// Check re-validates every field, so a rejection from the caller no
		// longer applies once anything changes.
		m.externalErrors = nil
		m.generalError = ""
		m.runCheck()
		m.ensureFocusEnabled()
	}
	return m, cmd
}

func (m Model) handleEnter() (Model, tea.Cmd) {
	if m.focusedIndex >= 0 {
		m = m.nextField()
		return m, m.blinkCmd()
	}
	if m.focusedButton == buttonCancel {
		return m, m.cancelCmd()
	}
	return m.submit()
}

// submit runs Check and, when it passes, emits the submit message.
// On failure focus moves to the first field with an error.
func (m Model) submit() (Model, tea.Cmd) {
	m.submitted = true
	m.runCheck()

	if m.hasErrors() {
		for i := range m.fields {
			if m.errorFor(i) != "" && !m.isDisabled(i) {
				m.blurCurrentField()
				m.focusedIndex = i
				m.fields[i].textInput.Focus()
				break
			}
		}
		return m, nil
	}

	values := m.Values()
	if m.config.OnSubmit != nil {
		return m, func() tea.Msg { return m.config.OnSubmit(values) }
	}
	return m, func() tea.Msg { return SubmitMsg{Values: values} }
}

func (m Model) cancelCmd() tea.Cmd {
	if m.config.OnCancel != nil {
		return func() tea.Msg { return m.config.OnCancel() }
	}
	return func() tea.Msg { return CancelMsg{} }
}

// nextField moves focus to the next enabled field, then the buttons, then
// wraps to the first field.
func (m Model) nextField() Model {
	m.blurCurrentField()
	switch {
	case m.focusedIndex >= 0:
		if next := m.nextEnabled(m.focusedIndex); next >= 0 {
			m.focusedIndex = next
		} else {
			m.focusedIndex = -1
			m.focusedButton = buttonSubmit
		}
	case m.focusedButton == buttonSubmit:
		m.focusedButton = buttonCancel
	default:
		m.focusedIndex = m.nextEnabled(-1)
		m.focusedButton = buttonSubmit
	}
	m.focusCurrentField()
	return m
}

// prevField is nextField in reverse.
func (m Model) prevField() Model {
	m.blurCurrentField()
	switch {
	case m.focusedIndex >= 0:
		if prev := m.prevEnabled(m.focusedIndex); prev >= 0 {
			m.focusedIndex = prev
		} else {
			m.focusedIndex = -1
			m.focusedButton = buttonCancel
		}
	case m.focusedButton == buttonCancel:
		m.focusedButton = buttonSubmit
	default:
		m.focusedIndex = m.prevEnabled(len(m.fields))
		if m.focusedIndex < 0 {
			m.focusedButton = buttonCancel
		}
	}
	m.focusCurrentField()
	return m
}

func (m Model) nextEnabled(from int) int {
	for i := from + 1; i < len(m.fields); i++ {
		if !m.isDisabled(i) {
			return i
		}
	}
	return -1
}

func (m Model) prevEnabled(from int) int {
	for i := from - 1; i >= 0; i-- {
		if !m.isDisabled(i) {
			return i
		}
	}
	return -1
}

// ensureFocusEnabled moves focus off a field that an edit just disabled.
func (m *Model) ensureFocusEnabled() {
	if m.focusedIndex >= 0 && m.isDisabled(m.focusedIndex) {
		*m = m.nextField()
	}
}

func (m Model) blinkCmd() tea.Cmd {
	if m.focusedIndex >= 0 {
		return textinput.Blink
	}
	return nil
}

func (m *Model) focusedField() *fieldState {
	if m.focusedIndex < 0 || m.focusedIndex >= len(m.fields) {
		return nil
	}
	return &m.fields[m.focusedIndex]
}

func (m *Model) blurCurrentField() {
	if fs := m.focusedField(); fs != nil {
		fs.textInput.Blur()
	}
}

func (m *Model) focusCurrentField() {
	if fs := m.focusedField(); fs != nil {
		fs.textInput.Focus()
	}
}

func (m *Model) runCheck() {
	if m.config.Check == nil {
		m.feedback = Feedback{}
		return
	}
	m.feedback = m.config.Check(m.Values())
}

func (m Model) hasErrors() bool {
	return m.feedback.HasErrors() || len(m.externalErrors) > 0
}

func (m Model) isDisabled(index int) bool {
	return m.feedback.Disabled[m.fields[index].config.Key]
}

// visible reports whether feedback for the field at index is shown.
func (m Model) visible(index int) bool {
	return m.submitted || m.fields[index].touched
}

func (m Model) anyTouched() bool {
	for _, fs := range m.fields {
		if fs.touched {
			return true
		}
	}
	return false
}

// errorFor returns the error shown under the field, external errors first.
func (m Model) errorFor(index int) string {
	k := m.fields[index].config.Key
	if msg := m.externalErrors[k]; msg != "" {
		return msg
	}
	if m.isDisabled(index) {
		// A locked field is never touched, so its error follows the form.
		if !m.submitted && !m.anyTouched() {
			return ""
		}
		return m.feedback.Errors[k]
	}
	if !m.visible(index) {
		return ""
	}
	return m.feedback.Errors[k]
}

func (m Model) warningFor(index int) string {
	if m.isDisabled(index) || !m.visible(index) {
		return ""
	}
	return m.feedback.Warnings[m.fields[index].config.Key]
}

// handleFieldClick focuses a clicked field. Returns true if one was focused.
func (m *Model) handleFieldClick(msg tea.MouseMsg) bool {
	for i := range m.fields {
		if m.isDisabled(i) {
			continue
		}
		if z := zone.Get(makeFieldZoneID(i)); z != nil && z.InBounds(msg) {
			m.blurCurrentField()
			m.focusedIndex = i
			m.focusCurrentField()
			return true
		}
	}
	return false
}

// handleButtonClick handles clicks on the submit and cancel buttons.
func (m *Model) handleButtonClick(msg tea.MouseMsg) (tea.Cmd, bool) {
	if z := zone.Get(zoneSubmitButton); z != nil && z.InBounds(msg) {
		m.blurCurrentField()
		m.focusedIndex = -1
		m.focusedButton = buttonSubmit
		next, cmd := m.submit()
		*m = next
		return cmd, true
	}
	if z := zone.Get(zoneCancelButton); z != nil && z.InBounds(msg) {
		m.blurCurrentField()
		m.focusedIndex = -1
		m.focusedButton = buttonCancel
		return m.cancelCmd(), true
	}
	return nil, false
}

// SetSize sets the area the modal is centered in.
func (m Model) SetSize(w, h int) Model {
	m.width = w
	m.height = h
	return m
}

// SetFieldError shows msg under the field with key until the field is edited.
// An unknown key shows msg above the buttons instead.
func (m Model) SetFieldError(key, msg string) Model {
	m.externalErrors = maps.Clone(m.externalErrors)
	if m.externalErrors == nil {
		m.externalErrors = make(map[string]string)
	}
	for i := range m.fields {
		if m.fields[i].config.Key == key {
			m.externalErrors[key] = msg
			return m
		}
	}
	m.generalError = msg
	return m
}

// SetError shows a form-level error above the buttons.
func (m Model) SetError(msg string) Model {
	m.generalError = msg
	return m
}

// Values returns the current value of every field keyed by FieldConfig.Key.
func (m Model) Values() map[string]string {
	values := make(map[string]string, len(m.fields))
	for i := range m.fields {
		values[m.fields[i].config.Key] = m.fields[i].value()
	}
	return values
}

// Value returns the current value of the field with key.
func (m Model) Value(key string) string {
	for i := range m.fields {
		if m.fields[i].config.Key == key {
			return m.fields[i].value()
		}
	}
	return ""
}

// Feedback returns the result of the latest Check.
func (m Model) Feedback() Feedback {
	return m.feedback
}

// FocusedKey returns the key of the focused field, or "" when a button has
// focus.
func (m Model) FocusedKey() string {
	if m.focusedIndex < 0 {
		return ""
	}
	return m.fields[m.focusedIndex].config.Key
}
