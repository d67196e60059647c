// Package releaseform is the add and edit dialog for a single release. It
// wraps formmodal with the release field rules.
package releaseform

import (
	"errors"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/releasedesk/internal/release"
	"github.com/zjrosen/releasedesk/internal/ui/shared/formmodal"
)

// Field keys.
const (
	FieldVersion     = "version"
	FieldStartDate   = "start_date"
	FieldReleased    = "released_date"
	FieldProgress    = "progress"
	FieldDescription = "description"
)

// Messages shown under fields.
const (
	MsgEmptyVersion        = "Please Enter Version Name"
	MsgDuplicateVersion    = "Version Name must be a unique value"
	MsgPastStartDate       = "Start Date must be greater than Current Date"
	MsgReleasedBeforeToday = "Released Date must be greater than Current Date"
	MsgReleasedBeforeStart = "Released Date must be greater than Start Date"
	MsgBadDate             = "Use dd/mm/yyyy"
	MsgMissingStartDate    = "Start Date is required"
	MsgBadProgress         = "Progress must be 0-100"
)

// Mode is add or edit.
type Mode int

const (
	ModeAdd Mode = iota
	ModeEdit
)

// Validator answers the checks that depend on the rest of the collection.
// *releases.Service implements it.
type Validator interface {
	ValidateVersionName(name, excludingID string) error
	ValidateReleasedDate(released, start release.Date) error
	CheckStartDate(start release.Date) release.Warning
	Today() release.Date
}

// SubmitMsg carries validated fields to the caller, which applies them to
// the registry.
type SubmitMsg struct {
	Mode   Mode
	ID     string // set in ModeEdit
	Fields release.Fields
}

// CancelMsg is sent when the dialog is dismissed without saving.
type CancelMsg struct{}

// Model is the release dialog.
type Model struct {
	form   formmodal.Model
	mode   Mode
	id     string
	locked bool // editing a release that is already at 100%
}

// NewAdd opens an empty dialog with the start date set to today.
func NewAdd(v Validator) Model {
	m := Model{mode: ModeAdd}
	m.form = formmodal.New(m.formConfig(v, release.Fields{StartDate: v.Today()}))
	return m
}

// NewEdit opens a dialog prefilled from rel.
func NewEdit(v Validator, rel release.Release) Model {
	m := Model{
		mode:   ModeEdit,
		id:     rel.ID,
		locked: rel.Progress == release.MaxProgress,
	}
	m.form = formmodal.New(m.formConfig(v, rel.Fields()))
	return m
}

func (m Model) formConfig(v Validator, initial release.Fields) formmodal.FormConfig {
	fields := []formmodal.FieldConfig{
		{Key: FieldVersion, Label: "Version Name", Hint: "required", Placeholder: "v1.0.0", MaxLength: 64,
			InitialValue: initial.VersionName},
		{Key: FieldStartDate, Label: "Start Date", Hint: "dd/mm/yyyy", MaxLength: 10,
			InitialValue: initial.StartDate.Format(release.LayoutDisplay)},
		{Key: FieldReleased, Label: "Released Date", Hint: "optional", Placeholder: "dd/mm/yyyy", MaxLength: 10,
			InitialValue: initial.ReleasedDate.Format(release.LayoutDisplay)},
	}
	if m.mode == ModeEdit {
		fields = append(fields, formmodal.FieldConfig{
			Key: FieldProgress, Label: "Progress", Hint: "0-100", MaxLength: 3,
			InitialValue: strconv.Itoa(initial.Progress),
		})
	}
	fields = append(fields, formmodal.FieldConfig{
		Key: FieldDescription, Label: "Description", Hint: "markdown", Placeholder: "What ships in this release",
		InitialValue: initial.Description,
	})

	title, submit := "Create Release", "Create"
	if m.mode == ModeEdit {
		title, submit = "Edit Release", "Save"
	}

	mode, id, locked := m.mode, m.id, m.locked
	return formmodal.FormConfig{
		Title:       title,
		Fields:      fields,
		SubmitLabel: submit,
		MinWidth:    56,
		Check: func(values map[string]string) formmodal.Feedback {
			return check(v, id, locked, values)
		},
		OnSubmit: func(values map[string]string) tea.Msg {
			f, _ := parseFields(values)
			return SubmitMsg{Mode: mode, ID: id, Fields: f}
		},
		OnCancel: func() tea.Msg { return CancelMsg{} },
	}
}

// check is the live validation run after every edit.
func check(v Validator, id string, locked bool, values map[string]string) formmodal.Feedback {
	var fb formmodal.Feedback

	if err := v.ValidateVersionName(strings.TrimSpace(values[FieldVersion]), id); err != nil {
		fb = fb.WithError(FieldVersion, messageFor(err))
	}

	start, startErr := release.ParseDate(values[FieldStartDate])
	switch {
	case strings.TrimSpace(values[FieldStartDate]) == "":
		fb = fb.WithError(FieldStartDate, MsgMissingStartDate)
	case startErr != nil:
		fb = fb.WithError(FieldStartDate, MsgBadDate)
	case v.CheckStartDate(start) == release.WarnPastStartDate:
		fb = fb.WithWarning(FieldStartDate, MsgPastStartDate)
	}

	progress := 0
	if _, ok := values[FieldProgress]; ok {
		if locked {
			fb = fb.WithDisabled(FieldProgress)
		}
		p, err := parseProgress(values[FieldProgress])
		if err != nil {
			fb = fb.WithError(FieldProgress, MsgBadProgress)
		} else {
			progress = p
		}
	}

	// A complete release locks the released date but still saves it, so it
	// is validated against the start date either way.
	if progress == release.MaxProgress {
		fb = fb.WithDisabled(FieldReleased)
	}
	if raw := strings.TrimSpace(values[FieldReleased]); raw != "" {
		released, err := release.ParseDate(raw)
		switch {
		case err != nil:
			fb = fb.WithError(FieldReleased, MsgBadDate)
		case startErr == nil:
			if err := v.ValidateReleasedDate(released, start); err != nil {
				fb = fb.WithError(FieldReleased, messageFor(err))
			}
		}
	}

	return fb
}

// parseFields converts submitted values. Callers only submit values that
// passed check, so errors are limited to fields check already reported.
func parseFields(values map[string]string) (release.Fields, error) {
	var errs []error
	f := release.Fields{
		VersionName: strings.TrimSpace(values[FieldVersion]),
		Description: values[FieldDescription],
	}

	start, err := release.ParseDate(values[FieldStartDate])
	errs = append(errs, err)
	f.StartDate = start

	if raw := strings.TrimSpace(values[FieldReleased]); raw != "" {
		released, err := release.ParseDate(raw)
		errs = append(errs, err)
		f.ReleasedDate = released
	}

	if raw, ok := values[FieldProgress]; ok {
		p, err := parseProgress(raw)
		errs = append(errs, err)
		f.Progress = p
	}

	return f, errors.Join(errs...)
}

func parseProgress(s string) (int, error) {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if err := release.ValidateProgress(p); err != nil {
		return 0, err
	}
	return p, nil
}

// messageFor maps a registry error to the text shown to the user.
func messageFor(err error) string {
	switch {
	case errors.Is(err, release.ErrEmptyVersion):
		return MsgEmptyVersion
	case errors.Is(err, release.ErrDuplicateVersion):
		return MsgDuplicateVersion
	case errors.Is(err, release.ErrReleasedBeforeToday):
		return MsgReleasedBeforeToday
	case errors.Is(err, release.ErrReleasedBeforeStart):
		return MsgReleasedBeforeStart
	case errors.Is(err, release.ErrProgressOutOfRange):
		return MsgBadProgress
	case errors.Is(err, release.ErrMissingStartDate):
		return MsgMissingStartDate
	default:
		return err.Error()
	}
}

// fieldFor returns the field a registry error belongs to, or "" when it
// belongs to no field.
func fieldFor(err error) string {
	switch {
	case errors.Is(err, release.ErrEmptyVersion), errors.Is(err, release.ErrDuplicateVersion):
		return FieldVersion
	case errors.Is(err, release.ErrReleasedBeforeToday), errors.Is(err, release.ErrReleasedBeforeStart):
		return FieldReleased
	case errors.Is(err, release.ErrProgressOutOfRange):
		return FieldProgress
	case errors.Is(err, release.ErrMissingStartDate):
		return FieldStartDate
	default:
		return ""
	}
}

// SetError shows a registry error from a rejected save on the field it
// belongs to.
func (m Model) SetError(err error) Model {
	m.form = m.form.SetFieldError(fieldFor(err), messageFor(err))
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update forwards messages to the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

// View renders the dialog without overlay.
func (m Model) View() string {
	return m.form.View()
}

// Overlay renders the dialog centered on bg.
func (m Model) Overlay(bg string) string {
	return m.form.Overlay(bg)
}

// SetSize sets the area the dialog is centered in.
func (m Model) SetSize(width, height int) Model {
	m.form = m.form.SetSize(width, height)
	return m
}

// Mode returns whether the dialog adds or edits.
func (m Model) Mode() Mode { return m.mode }

// ReleaseID returns the id of the release being edited.
func (m Model) ReleaseID() string { return m.id }

// Form exposes the underlying form for inspection.
func (m Model) Form() formmodal.Model { return m.form }
