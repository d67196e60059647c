package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/releasedesk/internal/config"
	"github.com/zjrosen/releasedesk/internal/flags"
	"github.com/zjrosen/releasedesk/internal/log"
	"github.com/zjrosen/releasedesk/internal/pubsub"
	"github.com/zjrosen/releasedesk/internal/release"
	"github.com/zjrosen/releasedesk/internal/ui/modal"
	"github.com/zjrosen/releasedesk/internal/ui/releaseform"
	"github.com/zjrosen/releasedesk/internal/ui/styles"
	"github.com/zjrosen/releasedesk/internal/ui/toaster"
)

func (m Model) openAddForm() (tea.Model, tea.Cmd) {
	m.form = releaseform.NewAdd(m.svc).SetSize(m.width, m.height)
	m.active = dialogForm
	log.Debug(log.CatUI, "Opened add dialog")
	return m, m.form.Init()
}

func (m Model) openEditForm() (tea.Model, tea.Cmd) {
	rel, ok := m.selectedRelease()
	if !ok {
		return m, nil
	}
	m.form = releaseform.NewEdit(m.svc, rel).SetSize(m.width, m.height)
	m.active = dialogForm
	log.Debug(log.CatUI, "Opened edit dialog", "id", rel.ID, "version", rel.VersionName)
	return m, m.form.Init()
}

// handleFormSubmit applies the dialog's fields. A rejected save keeps the
// dialog open with the error on its field.
func (m Model) handleFormSubmit(msg releaseform.SubmitMsg) (tea.Model, tea.Cmd) {
	var (
		rel release.Release
		err error
	)
	switch msg.Mode {
	case releaseform.ModeEdit:
		rel, err = m.svc.Update(msg.ID, msg.Fields)
	default:
		rel, err = m.svc.Create(msg.Fields)
	}
	if err != nil {
		m.form = m.form.SetError(err)
		return m, nil
	}

	m.active = dialogNone
	m = m.reloadRows()
	return m.selectRow(m.indexOf(rel.ID, m.selected)), nil
}

// requestDelete deletes the selected release, asking first when the
// confirm-delete flag is on.
func (m Model) requestDelete() (tea.Model, tea.Cmd) {
	rel, ok := m.selectedRelease()
	if !ok {
		return m, nil
	}
	if !m.flags.Enabled(flags.FlagConfirmDelete) {
		return m.deleteRelease(rel.ID)
	}

	m.pendingDelete = rel.ID
	m.confirm = modal.New(modal.Config{
		Title:          "Delete Release",
		Message:        fmt.Sprintf("Delete release %q? This cannot be undone.", rel.VersionName),
		ConfirmLabel:   "Delete",
		ConfirmVariant: modal.ButtonDanger,
	}).SetSize(m.width, m.height)
	m.active = dialogConfirmDelete
	return m, nil
}

func (m Model) deleteRelease(id string) (tea.Model, tea.Cmd) {
	if id == "" {
		return m, nil
	}
	if err := m.svc.Delete(id); err != nil {
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show("Delete failed: "+err.Error(), toaster.StyleError, toaster.DefaultDuration)
		return m, cmd
	}
	return m.reloadRows(), nil
}

// handleReleaseEvent shows a toast for a registry change and keeps
// listening.
func (m Model) handleReleaseEvent(ev pubsub.Event[release.Release]) (tea.Model, tea.Cmd) {
	var text string
	switch ev.Type {
	case pubsub.CreatedEvent:
		text = fmt.Sprintf("Release %s created", ev.Payload.VersionName)
	case pubsub.UpdatedEvent:
		text = fmt.Sprintf("Release %s updated", ev.Payload.VersionName)
	case pubsub.DeletedEvent:
		text = fmt.Sprintf("Release %s deleted", ev.Payload.VersionName)
	default:
		return m, m.releaseListener.Listen()
	}

	var toastCmd tea.Cmd
	m.toaster, toastCmd = m.toaster.Show(text, toaster.StyleSuccess, toaster.DefaultDuration)
	m = m.reloadRows()
	return m, tea.Batch(toastCmd, m.releaseListener.Listen())
}

// reloadConfig re-reads the config file and re-applies the theme and the
// display settings. Seed releases are only read at start-up.
func (m Model) reloadConfig(path string) (Model, tea.Cmd) {
	var cmd tea.Cmd

	cfg, err := config.Load(path)
	if err == nil {
		err = config.Validate(cfg)
	}
	if err == nil {
		err = styles.ApplyTheme(styles.ThemeConfig{Preset: cfg.Theme.Preset, Colors: cfg.Theme.Colors})
	}
	if err != nil {
		log.ErrorErr(log.CatConfig, "Config reload failed", err, "path", path)
		m.toaster, cmd = m.toaster.Show("Config reload failed: "+err.Error(), toaster.StyleError, toaster.DefaultDuration)
		return m, cmd
	}

	m.cfg.Theme = cfg.Theme
	m.cfg.UI.DateFormat = cfg.UI.DateFormat
	m.table = m.table.SetConfig(tableConfig(cfg.UI.DateFormat))
	m.details = m.details.SetDateLayout(cfg.UI.DateFormat)
	log.Info(log.CatConfig, "Config reloaded", "path", path, "preset", cfg.Theme.Preset)

	m.toaster, cmd = m.toaster.Show("Theme reloaded", toaster.StyleInfo, toaster.DefaultDuration)
	return m, cmd
}

// saveUI persists the ui section after a runtime toggle.
func (m Model) saveUI() tea.Cmd {
	if m.configPath == "" {
		return nil
	}
	path, ui := m.configPath, m.cfg.UI
	return func() tea.Msg {
		if err := config.SaveUI(path, ui); err != nil {
			log.ErrorErr(log.CatConfig, "Saving ui settings failed", err)
		}
		return nil
	}
}
