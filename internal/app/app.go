// Package app contains the root application model.
package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/releasedesk/internal/application/releases"
	"github.com/zjrosen/releasedesk/internal/cachemanager"
	"github.com/zjrosen/releasedesk/internal/config"
	"github.com/zjrosen/releasedesk/internal/flags"
	"github.com/zjrosen/releasedesk/internal/keys"
	"github.com/zjrosen/releasedesk/internal/log"
	"github.com/zjrosen/releasedesk/internal/pubsub"
	"github.com/zjrosen/releasedesk/internal/release"
	"github.com/zjrosen/releasedesk/internal/ui/details"
	"github.com/zjrosen/releasedesk/internal/ui/help"
	"github.com/zjrosen/releasedesk/internal/ui/modal"
	"github.com/zjrosen/releasedesk/internal/ui/releaseform"
	"github.com/zjrosen/releasedesk/internal/ui/shared/logoverlay"
	"github.com/zjrosen/releasedesk/internal/ui/shared/markdown"
	"github.com/zjrosen/releasedesk/internal/ui/shared/table"
	"github.com/zjrosen/releasedesk/internal/ui/toaster"
	"github.com/zjrosen/releasedesk/internal/watcher"
)

const detailsZoneID = "details-pane"

// dialog is the overlay that currently owns keyboard input.
type dialog int

const (
	dialogNone dialog = iota
	dialogForm
	dialogConfirmDelete
	dialogHelp
)

// configChangedMsg is delivered when the watched config file changes.
type configChangedMsg struct {
	path string
}

// Options wires the model to its services.
type Options struct {
	Service    *releases.Service
	Config     config.Config
	ConfigPath string // "" disables saving and watching
	Flags      *flags.Registry

	// MarkdownCache stores rendered descriptions. Nil disables caching.
	MarkdownCache cachemanager.CacheManager[string, string]

	Debug bool // enables the log overlay
	Watch bool // watch ConfigPath for theme changes
}

// Model is the root application state.
type Model struct {
	svc        *releases.Service
	cfg        config.Config
	configPath string
	flags      *flags.Registry
	keys       keys.KeyMap

	rows     []release.Release
	selected int
	table    table.Model[release.Release]
	details  details.Model

	active  dialog
	form    releaseform.Model
	confirm modal.Model
	// pendingDelete is the id awaiting confirmation.
	pendingDelete string

	help       help.Model
	toaster    toaster.Model
	debug      bool
	logOverlay logoverlay.Model

	width  int
	height int

	ctx             context.Context
	cancel          context.CancelFunc
	releaseListener *pubsub.ContinuousListener[release.Release]
	logListener     *log.LogListener
	watcherHandle   *watcher.Watcher
	watcherListener *pubsub.ContinuousListener[string]
}

// New creates the root model. The caller owns opts.Service and must call
// Close when the program exits.
func New(opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())

	flagReg := opts.Flags
	if flagReg == nil {
		flagReg = flags.New(opts.Config.Flags)
	}

	var renderer *markdown.CachedRenderer
	if opts.MarkdownCache != nil {
		renderer = markdown.NewCached(opts.Config.UI.MarkdownStyle, opts.MarkdownCache)
	}

	m := Model{
		svc:             opts.Service,
		cfg:             opts.Config,
		configPath:      opts.ConfigPath,
		flags:           flagReg,
		keys:            keys.DefaultKeyMap(),
		table:           table.New(tableConfig(opts.Config.UI.DateFormat)),
		details:         details.New(renderer, opts.Config.UI.DateFormat),
		help:            help.New(),
		toaster:         toaster.New(),
		debug:           opts.Debug,
		logOverlay:      logoverlay.New(),
		ctx:             ctx,
		cancel:          cancel,
		releaseListener: pubsub.NewContinuousListener(ctx, opts.Service.Broker()),
	}

	if opts.Debug {
		m.logListener = log.NewListener(ctx)
	}

	if opts.Watch && opts.ConfigPath != "" && flagReg.Enabled(flags.FlagConfigWatch) {
		m.startWatcher(opts.ConfigPath)
	}

	return m.reloadRows()
}

func (m *Model) startWatcher(path string) {
	w, err := watcher.New(watcher.DefaultConfig(path))
	if err != nil {
		log.ErrorErr(log.CatWatcher, "Failed to create config watcher", err)
		return
	}
	if err := w.Start(); err != nil {
		log.ErrorErr(log.CatWatcher, "Failed to start config watcher", err)
		_ = w.Stop()
		return
	}
	m.watcherHandle = w
	m.watcherListener = pubsub.NewContinuousListener(m.ctx, w.Broker())
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.releaseListener.Listen()}
	if m.watcherListener != nil {
		cmds = append(cmds, m.listenWatcher())
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// listenWatcher converts watcher events to configChangedMsg so they are not
// confused with log lines, which share the payload type.
func (m Model) listenWatcher() tea.Cmd {
	listen := m.watcherListener.Listen()
	if listen == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := listen().(pubsub.Event[string])
		if !ok {
			return nil
		}
		return configChangedMsg{path: ev.Payload}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logOverlay.SetSize(msg.Width, msg.Height)
		return m.layout(), nil

	case pubsub.Event[release.Release]:
		return m.handleReleaseEvent(msg)

	case log.LogEvent:
		m.logOverlay.Append(msg.Payload)
		return m, m.logListener.Listen()

	case configChangedMsg:
		var cmd tea.Cmd
		m, cmd = m.reloadConfig(msg.path)
		return m, tea.Batch(cmd, m.listenWatcher())

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case releaseform.SubmitMsg:
		return m.handleFormSubmit(msg)

	case releaseform.CancelMsg:
		m.active = dialogNone
		return m, nil

	case modal.ConfirmMsg:
		id := m.pendingDelete
		m.active = dialogNone
		m.pendingDelete = ""
		return m.deleteRelease(id)

	case modal.CancelMsg:
		m.active = dialogNone
		m.pendingDelete = ""
		return m, nil

	case logoverlay.CloseMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	// Cursor blink and other component-internal messages.
	if m.active == dialogForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.debug && key.Matches(msg, keys.Logs) {
		m.logOverlay.Toggle()
		return m, nil
	}
	if m.logOverlay.Visible() {
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd
	}

	switch m.active {
	case dialogForm:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	case dialogConfirmDelete:
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	case dialogHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Close, m.keys.Quit) {
			m.active = dialogNone
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.active = dialogHelp
		return m, nil
	case key.Matches(msg, m.keys.Up):
		return m.selectRow(m.selected - 1), nil
	case key.Matches(msg, m.keys.Down):
		return m.selectRow(m.selected + 1), nil
	case key.Matches(msg, m.keys.Top):
		return m.selectRow(0), nil
	case key.Matches(msg, m.keys.Bottom):
		return m.selectRow(len(m.rows) - 1), nil
	case key.Matches(msg, m.keys.Add):
		return m.openAddForm()
	case key.Matches(msg, m.keys.Edit):
		return m.openEditForm()
	case key.Matches(msg, m.keys.Delete):
		return m.requestDelete()
	case key.Matches(msg, m.keys.ToggleDetails):
		m.cfg.UI.ShowDetails = !m.cfg.UI.ShowDetails
		return m.layout(), m.saveUI()
	case key.Matches(msg, m.keys.ToggleStatus):
		m.cfg.UI.ShowStatusBar = !m.cfg.UI.ShowStatusBar
		return m.layout(), m.saveUI()
	}

	if m.detailsVisible() {
		var cmd tea.Cmd
		m.details, cmd = m.details.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch m.active {
	case dialogForm:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	case dialogConfirmDelete:
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	case dialogHelp:
		return m, nil
	}
	if m.logOverlay.Visible() {
		return m, nil
	}

	if m.detailsVisible() {
		if z := zone.Get(detailsZoneID); z != nil && z.InBounds(msg) {
			var cmd tea.Cmd
			m.details, cmd = m.details.Update(msg)
			return m, cmd
		}
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		return m.selectRow(m.selected - 1), nil
	case msg.Button == tea.MouseButtonWheelDown:
		return m.selectRow(m.selected + 1), nil
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease:
		for i, r := range m.rows {
			if z := zone.Get(rowZoneID(i, r)); z != nil && z.InBounds(msg) {
				return m.selectRow(i), nil
			}
		}
	}
	return m, nil
}

// selectRow moves the selection to index, clamped to the rows.
func (m Model) selectRow(index int) Model {
	if len(m.rows) == 0 {
		m.selected = 0
		m.details = m.details.Clear()
		return m
	}
	m.selected = min(max(index, 0), len(m.rows)-1)
	m.table = m.table.EnsureVisible(m.selected)
	m.details = m.details.SetRelease(m.rows[m.selected])
	return m
}

// reloadRows re-reads the releases from the service, keeping the selection
// on the same release when it still exists.
func (m Model) reloadRows() Model {
	var selectedID string
	if m.selected >= 0 && m.selected < len(m.rows) {
		selectedID = m.rows[m.selected].ID
	}
	m.rows = m.svc.List()
	m.table = m.table.SetRows(m.rows)
	m.details = m.details.SetToday(m.svc.Today())
	return m.selectRow(m.indexOf(selectedID, m.selected))
}

// indexOf returns the row index of id, or fallback when absent.
func (m Model) indexOf(id string, fallback int) int {
	for i, r := range m.rows {
		if r.ID == id {
			return i
		}
	}
	return fallback
}

func (m Model) selectedRelease() (release.Release, bool) {
	if m.selected < 0 || m.selected >= len(m.rows) {
		return release.Release{}, false
	}
	return m.rows[m.selected], true
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	m.cancel()
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return fmt.Errorf("stopping config watcher: %w", err)
		}
	}
	return nil
}
