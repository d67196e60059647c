package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/releasedesk/internal/application/releases"
	"github.com/zjrosen/releasedesk/internal/cachemanager"
	"github.com/zjrosen/releasedesk/internal/config"
	"github.com/zjrosen/releasedesk/internal/flags"
	"github.com/zjrosen/releasedesk/internal/log"
	"github.com/zjrosen/releasedesk/internal/pubsub"
	"github.com/zjrosen/releasedesk/internal/release"
	"github.com/zjrosen/releasedesk/internal/testutil"
	"github.com/zjrosen/releasedesk/internal/ui/modal"
	"github.com/zjrosen/releasedesk/internal/ui/releaseform"
	"github.com/zjrosen/releasedesk/internal/ui/styles"
)

const (
	waitTimeout = time.Second
	waitTick    = 10 * time.Millisecond
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

type option func(*Options)

func withFlags(values map[string]bool) option {
	return func(o *Options) { o.Flags = flags.New(values) }
}

func withConfigPath(path string) option {
	return func(o *Options) { o.ConfigPath = path }
}

func withDebug() option {
	return func(o *Options) { o.Debug = true }
}

func withoutReleases() option {
	return func(o *Options) {
		o.Service.Close()
		o.Service = releases.New(testutil.NewRegistry())
	}
}

// newModel builds a sized model over the standard releases.
func newModel(t *testing.T, opts ...option) Model {
	t.Helper()
	reg := testutil.NewBuilder(t, nil).WithStandardReleases().Build()
	o := Options{
		Service:       releases.New(reg),
		Config:        config.Defaults(),
		MarkdownCache: cachemanager.NewInMemoryCacheManager[string, string]("test", time.Minute, time.Minute),
	}
	for _, opt := range opts {
		opt(&o)
	}
	m := New(o)
	t.Cleanup(func() {
		_ = m.Close()
		o.Service.Close()
	})
	return resize(m, 120, 30)
}

func resize(m Model, w, h int) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return next.(Model)
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+x":
		msg = tea.KeyMsg{Type: tea.KeyCtrlX}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func view(m Model) string {
	return ansi.Strip(m.View())
}

func TestNew_LoadsReleases(t *testing.T) {
	m := newModel(t)

	require.Len(t, m.rows, 3)
	assert.Equal(t, 0, m.selected)

	out := view(m)
	assert.Contains(t, out, "Releases")
	assert.Contains(t, out, "v1.0")
	assert.Contains(t, out, "v1.1")
	assert.Contains(t, out, "v2.0")
	assert.Contains(t, out, "16/05/2025", "start date in the configured layout")
}

func TestView_EmptyBeforeSize(t *testing.T) {
	reg := testutil.NewBuilder(t, nil).WithStandardReleases().Build()
	svc := releases.New(reg)
	t.Cleanup(svc.Close)
	m := New(Options{Service: svc, Config: config.Defaults()})
	t.Cleanup(func() { _ = m.Close() })

	assert.Empty(t, m.View())
}

func TestView_EmptyTable(t *testing.T) {
	m := newModel(t, withoutReleases())

	assert.Empty(t, m.rows)
	assert.Contains(t, view(m), "No Release Available")

	// Edit and delete are no-ops without a selection.
	m, cmd := press(t, m, "e")
	assert.Nil(t, cmd)
	assert.Equal(t, dialogNone, m.active)
	m, _ = press(t, m, "d")
	assert.Equal(t, dialogNone, m.active)
}

func TestNavigation(t *testing.T) {
	m := newModel(t)

	m, _ = press(t, m, "j")
	assert.Equal(t, 1, m.selected)
	m, _ = press(t, m, "G")
	assert.Equal(t, 2, m.selected)
	m, _ = press(t, m, "j")
	assert.Equal(t, 2, m.selected, "clamped at the last row")
	m, _ = press(t, m, "g")
	assert.Equal(t, 0, m.selected)
	m, _ = press(t, m, "k")
	assert.Equal(t, 0, m.selected, "clamped at the first row")
}

func TestQuit(t *testing.T) {
	m := newModel(t)

	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestStatusBar(t *testing.T) {
	m := newModel(t)

	out := view(m)
	assert.Contains(t, out, "In Progress 1")
	assert.Contains(t, out, "Unreleased 1")
	assert.Contains(t, out, "Released 1")
	assert.Contains(t, out, "Today 15/06/2025")

	m, _ = press(t, m, "w")
	assert.False(t, m.cfg.UI.ShowStatusBar)
	assert.NotContains(t, view(m), "Today 15/06/2025")
}

func TestToggleDetails(t *testing.T) {
	m := newModel(t)
	require.False(t, m.detailsVisible())

	m, _ = press(t, m, "v")
	assert.True(t, m.cfg.UI.ShowDetails)
	assert.True(t, m.detailsVisible())
	assert.Contains(t, view(m), "Initial")

	// Too narrow for a split.
	narrow := resize(m, 60, 30)
	assert.False(t, narrow.detailsVisible())
}

func TestToggle_SavesUI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path))

	m := newModel(t, withConfigPath(path))
	m, cmd := press(t, m, "v")
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.UI.ShowDetails)
	assert.True(t, m.cfg.UI.ShowDetails)
}

func TestHelpDialog(t *testing.T) {
	m := newModel(t)

	m, _ = press(t, m, "?")
	assert.Equal(t, dialogHelp, m.active)
	assert.Contains(t, view(m), "Keybindings")

	// Table keys are ignored while help is open.
	m, _ = press(t, m, "j")
	assert.Equal(t, 0, m.selected)

	m, _ = press(t, m, "esc")
	assert.Equal(t, dialogNone, m.active)
}

func TestAddFlow(t *testing.T) {
	m := newModel(t)

	m, cmd := press(t, m, "a")
	assert.NotNil(t, cmd, "cursor blink")
	require.Equal(t, dialogForm, m.active)
	assert.Equal(t, releaseform.ModeAdd, m.form.Mode())
	assert.Contains(t, view(m), "Create Release")

	m, _ = send(m, releaseform.SubmitMsg{
		Mode:   releaseform.ModeAdd,
		Fields: testutil.Fields("v3.0", testutil.Start(testutil.Days(1))),
	})

	assert.Equal(t, dialogNone, m.active)
	require.Len(t, m.rows, 4)
	assert.Equal(t, "v3.0", m.rows[m.selected].VersionName)
}

func TestAddFlow_RejectedKeepsDialogOpen(t *testing.T) {
	m := newModel(t)
	m, _ = press(t, m, "a")

	m, _ = send(m, releaseform.SubmitMsg{
		Mode:   releaseform.ModeAdd,
		Fields: testutil.Fields("v1.0", testutil.Start(testutil.Days(1))),
	})

	assert.Equal(t, dialogForm, m.active)
	assert.Len(t, m.rows, 3)
	assert.Contains(t, view(m), releaseform.MsgDuplicateVersion)
}

func TestFormCancel(t *testing.T) {
	m := newModel(t)
	m, _ = press(t, m, "a")

	m, cmd := press(t, m, "esc")
	require.NotNil(t, cmd)
	m, _ = send(m, cmd())

	assert.Equal(t, dialogNone, m.active)
}

func TestEditFlow(t *testing.T) {
	m := newModel(t)
	m, _ = press(t, m, "j")

	m, _ = press(t, m, "enter")
	require.Equal(t, dialogForm, m.active)
	assert.Equal(t, releaseform.ModeEdit, m.form.Mode())
	id := m.form.ReleaseID()
	assert.Equal(t, m.rows[1].ID, id)
	assert.Contains(t, view(m), "Edit Release")

	f := m.rows[1].Fields()
	f.Progress = 80
	m, _ = send(m, releaseform.SubmitMsg{Mode: releaseform.ModeEdit, ID: id, Fields: f})

	assert.Equal(t, dialogNone, m.active)
	assert.Equal(t, 1, m.selected)
	assert.Equal(t, 80, m.rows[1].Progress)
}

func TestDelete_Confirmed(t *testing.T) {
	m := newModel(t)

	m, _ = press(t, m, "d")
	require.Equal(t, dialogConfirmDelete, m.active)
	assert.Equal(t, m.rows[0].ID, m.pendingDelete)
	assert.Contains(t, view(m), `Delete release "v1.0"?`)

	m, _ = send(m, modal.ConfirmMsg{})

	assert.Equal(t, dialogNone, m.active)
	assert.Empty(t, m.pendingDelete)
	require.Len(t, m.rows, 2)
	assert.Equal(t, "v1.1", m.rows[0].VersionName)
}

func TestDelete_Cancelled(t *testing.T) {
	m := newModel(t)

	m, _ = press(t, m, "d")
	m, _ = send(m, modal.CancelMsg{})

	assert.Equal(t, dialogNone, m.active)
	assert.Empty(t, m.pendingDelete)
	assert.Len(t, m.rows, 3)
}

func TestDelete_WithoutConfirmation(t *testing.T) {
	m := newModel(t, withFlags(map[string]bool{flags.FlagConfirmDelete: false}))

	m, _ = press(t, m, "G")
	m, _ = press(t, m, "d")

	assert.Equal(t, dialogNone, m.active)
	require.Len(t, m.rows, 2)
	assert.Equal(t, 1, m.selected, "selection clamps to the new last row")
}

func TestDelete_MissingReleaseShowsToast(t *testing.T) {
	m := newModel(t)

	next, cmd := m.deleteRelease("missing")

	require.NotNil(t, cmd)
	got := next.(Model)
	assert.True(t, got.toaster.Visible())
	assert.Contains(t, got.toaster.Message(), "Delete failed")
}

func TestReleaseEvent_ShowsToast(t *testing.T) {
	tests := []struct {
		name  string
		event pubsub.EventType
		want  string
	}{
		{"created", pubsub.CreatedEvent, "Release v9.9 created"},
		{"updated", pubsub.UpdatedEvent, "Release v9.9 updated"},
		{"deleted", pubsub.DeletedEvent, "Release v9.9 deleted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(t)

			m, cmd := send(m, pubsub.Event[release.Release]{
				Type:    tt.event,
				Payload: release.Release{VersionName: "v9.9"},
			})

			assert.NotNil(t, cmd)
			assert.True(t, m.toaster.Visible())
			assert.Equal(t, tt.want, m.toaster.Message())
			assert.Contains(t, view(m), tt.want)
		})
	}
}

func TestReleaseEvent_FromService(t *testing.T) {
	m := newModel(t)
	cmd := m.Init()
	require.NotNil(t, cmd)

	_, err := m.svc.Create(testutil.Fields("v4.0", testutil.Start(testutil.Days(2))))
	require.NoError(t, err)

	msg := m.releaseListener.Listen()()
	ev, ok := msg.(pubsub.Event[release.Release])
	require.True(t, ok)
	assert.Equal(t, pubsub.CreatedEvent, ev.Type)

	m, _ = send(m, ev)
	assert.Len(t, m.rows, 4)
	assert.Equal(t, "Release v4.0 created", m.toaster.Message())
}

func TestConfigReload(t *testing.T) {
	t.Cleanup(func() { _ = styles.ApplyTheme(styles.ThemeConfig{}) })
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("ui:\n  date_format: \"2006-01-02\"\n"), 0o600))

	m := newModel(t)
	m, cmd := send(m, configChangedMsg{path: good})
	assert.NotNil(t, cmd)
	assert.Equal(t, "Theme reloaded", m.toaster.Message())
	assert.Equal(t, "2006-01-02", m.cfg.UI.DateFormat)
	assert.Contains(t, view(m), "2025-05-16")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("ui:\n  markdown_style: purple\n"), 0o600))

	m, _ = send(m, configChangedMsg{path: bad})
	assert.Contains(t, m.toaster.Message(), "Config reload failed")
	assert.Equal(t, "2006-01-02", m.cfg.UI.DateFormat, "previous settings kept")
}

func TestDebugLogOverlay(t *testing.T) {
	var buf strings.Builder
	cleanup := log.InitWriter(&buf)
	t.Cleanup(cleanup)

	m := newModel(t, withDebug())
	require.NotNil(t, m.logListener)

	m, _ = press(t, m, "ctrl+x")
	assert.True(t, m.logOverlay.Visible())

	m, cmd := send(m, log.LogEvent{Type: pubsub.CreatedEvent, Payload: "2025-06-15T10:00:00 [INFO] [ui] hello\n"})
	assert.NotNil(t, cmd)
	assert.Equal(t, []string{"2025-06-15T10:00:00 [INFO] [ui] hello"}, m.logOverlay.Entries())
	assert.Contains(t, view(m), "hello")

	// Table keys go to the overlay while it is open.
	m, _ = press(t, m, "j")
	assert.Equal(t, 0, m.selected)

	m, _ = press(t, m, "ctrl+x")
	assert.False(t, m.logOverlay.Visible())
}

func TestDebugKey_IgnoredWithoutDebug(t *testing.T) {
	m := newModel(t)

	m, _ = press(t, m, "ctrl+x")
	assert.False(t, m.logOverlay.Visible())
}

func TestMouse_ClickRowSelects(t *testing.T) {
	m := newModel(t)
	target := rowZoneID(2, m.rows[2])
	_ = m.View()

	require.Eventually(t, func() bool {
		z := zone.Get(target)
		if z == nil || z.IsZero() {
			return false
		}
		m, _ = send(m, tea.MouseMsg{
			X: z.StartX, Y: z.StartY,
			Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease,
		})
		return m.selected == 2
	}, waitTimeout, waitTick)
}

func TestMouse_WheelMovesSelection(t *testing.T) {
	m := newModel(t)

	m, _ = send(m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Equal(t, 1, m.selected)
	m, _ = send(m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.Equal(t, 0, m.selected)
}

func TestMouse_ConfirmButton(t *testing.T) {
	m := newModel(t)
	m, _ = press(t, m, "d")
	_ = m.View()

	var msg tea.Msg
	require.Eventually(t, func() bool {
		z := zone.Get("modal-confirm")
		if z == nil || z.IsZero() {
			return false
		}
		_, cmd := send(m, tea.MouseMsg{
			X: z.StartX, Y: z.StartY,
			Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease,
		})
		if cmd == nil {
			return false
		}
		msg = cmd()
		return true
	}, waitTimeout, waitTick)
	assert.IsType(t, modal.ConfirmMsg{}, msg)
}
