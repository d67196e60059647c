// Package cmd wires the releasedesk command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/releasedesk/internal/app"
	"github.com/zjrosen/releasedesk/internal/application/releases"
	"github.com/zjrosen/releasedesk/internal/cachemanager"
	"github.com/zjrosen/releasedesk/internal/config"
	"github.com/zjrosen/releasedesk/internal/log"
	"github.com/zjrosen/releasedesk/internal/release"
	"github.com/zjrosen/releasedesk/internal/tracing"
	"github.com/zjrosen/releasedesk/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const (
	debugLogPath = "debug.log"

	markdownCacheTTL     = 30 * time.Minute
	markdownCacheCleanup = 10 * time.Minute

	tracingShutdownTimeout = 5 * time.Second
)

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	noWatch   bool
)

var rootCmd = &cobra.Command{
	Use:     "releasedesk",
	Short:   "A terminal ui for tracking releases",
	Long:    `A terminal user interface for planning release versions: start and released dates, progress and descriptions.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .releasedesk/config.yaml, then ~/.config/releasedesk/config.yaml)")
	rootCmd.PersistentFlags().String("date-format", "",
		"Go time layout used to display dates (overrides ui.date_format)")
	rootCmd.Flags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs to "+debugLogPath+" (also enabled by "+log.EnvDebug+")")
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false,
		"do not re-apply theme changes when the config file changes")
}

// loadConfig resolves the config file and decodes it. When none exists and
// writeDefault is set, the commented default is written first. It returns
// the path that was read, or "" when running on defaults only.
func loadConfig(cmd *cobra.Command, writeDefault bool) (config.Config, string, error) {
	v := config.NewViper()
	if f := cmd.Root().PersistentFlags().Lookup("date-format"); f != nil {
		if err := v.BindPFlag("ui"+config.KeyDelimiter+"date_format", f); err != nil {
			return config.Config{}, "", fmt.Errorf("binding date-format flag: %w", err)
		}
	}

	path := resolveConfigPath(cfgFile)
	if path == "" && writeDefault {
		// Nothing found anywhere: create the default next to the working dir.
		if err := config.WriteDefaultConfig(config.LocalConfigPath); err == nil {
			path = config.LocalConfigPath
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config.Config{}, "", fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg, err := config.Decode(v)
	if err != nil {
		return config.Config{}, "", err
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, "", fmt.Errorf("invalid configuration: %w", err)
	}
	log.Debug(log.CatConfig, "Loaded config", "path", path, "releases", len(cfg.Releases))
	return cfg, path, nil
}

// resolveConfigPath returns the explicit path, or the first existing file
// in lookup order:
//  1. .releasedesk/config.yaml (current directory)
//  2. ~/.config/releasedesk/config.yaml (user config)
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, candidate := range []string{config.LocalConfigPath, config.UserConfigPath()} {
		if candidate == "" {
			continue
		}
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		} else if !errors.Is(err, fs.ErrNotExist) {
			log.ErrorErr(log.CatConfig, "Checking config path", err, "path", candidate)
		}
	}
	return ""
}

// newTracing builds the span provider. Tracing runs when the config enables
// it or debug mode is on.
func newTracing(cfg config.TracingConfig, debug bool) (*tracing.Provider, error) {
	p, err := tracing.NewProvider(tracing.Config{
		Enabled:     cfg.Enabled || debug,
		Exporter:    cfg.Exporter,
		FilePath:    cfg.FilePath,
		SampleRate:  cfg.SampleRate,
		ServiceName: tracing.DefaultServiceName,
	})
	if err != nil {
		return nil, fmt.Errorf("starting tracing: %w", err)
	}
	if p.Enabled() {
		log.Info(log.CatConfig, "Tracing enabled", "exporter", cfg.Exporter, "path", cfg.FilePath)
	}
	return p, nil
}

func shutdownTracing(p *tracing.Provider) {
	ctx, cancel := context.WithTimeout(context.Background(), tracingShutdownTimeout)
	defer cancel()
	if err := p.Shutdown(ctx); err != nil {
		log.ErrorErr(log.CatConfig, "Flushing traces", err)
	}
}

// newService creates a registry on the system clock and seeds it from cfg.
func newService(cfg config.Config, tracer trace.Tracer) (*releases.Service, error) {
	svc := releases.New(release.NewRegistry(), releases.WithTracer(tracer))
	if err := svc.Seed(cfg.Releases); err != nil {
		svc.Close()
		return nil, fmt.Errorf("loading releases: %w", err)
	}
	return svc, nil
}

func debugEnabled() bool {
	return debugFlag || os.Getenv(log.EnvDebug) != ""
}

func runApp(cmd *cobra.Command, _ []string) error {
	debug := debugEnabled()
	if debug {
		cleanup, err := log.Init(debugLogPath)
		if err != nil {
			return err
		}
		defer cleanup()
		log.Info(log.CatConfig, "releasedesk starting", "version", version, "debug", true)
	}

	cfg, configPath, err := loadConfig(cmd, true)
	if err != nil {
		return err
	}

	if err := styles.ApplyTheme(styles.ThemeConfig{Preset: cfg.Theme.Preset, Colors: cfg.Theme.Colors}); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	tp, err := newTracing(cfg.Tracing, debug)
	if err != nil {
		return err
	}
	defer shutdownTracing(tp)

	svc, err := newService(cfg, tp.Tracer())
	if err != nil {
		return err
	}
	defer svc.Close()

	zone.NewGlobal()

	model := app.New(app.Options{
		Service:       svc,
		Config:        cfg,
		ConfigPath:    configPath,
		MarkdownCache: cachemanager.NewInMemoryCacheManager[string, string]("markdown", markdownCacheTTL, markdownCacheCleanup),
		Debug:         debug,
		Watch:         !noWatch,
	})
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	// Clean up watcher resources
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
