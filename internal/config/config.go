// Package config provides configuration types, defaults, loading and
// persistence for releasedesk.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/zjrosen/releasedesk/internal/log"
	"github.com/zjrosen/releasedesk/internal/release"
)

// KeyDelimiter separates nested viper keys. It is not "." so that dotted
// color tokens like "text.muted" survive as single map keys.
const KeyDelimiter = "::"

// Default config locations, in lookup order.
const (
	LocalConfigPath = ".releasedesk/config.yaml"
	AppName         = "releasedesk"
)

// Config holds all configuration options for releasedesk.
type Config struct {
	UI       UIConfig        `mapstructure:"ui"`
	Theme    ThemeConfig     `mapstructure:"theme"`
	Flags    map[string]bool `mapstructure:"flags"`
	Tracing  TracingConfig   `mapstructure:"tracing"`
	Releases []ReleaseConfig `mapstructure:"releases"`
}

// UIConfig holds user interface options.
type UIConfig struct {
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
	ShowDetails   bool   `mapstructure:"show_details"`
	DateFormat    string `mapstructure:"date_format"`    // Go time layout
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// ThemeConfig holds theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base: "default", "nord",
	// "high-contrast".
	Preset string `mapstructure:"preset"`

	// Colors overrides individual color tokens, e.g. "status.error": "#FF0000".
	Colors map[string]string `mapstructure:"colors"`
}

// TracingConfig holds span export options. --debug turns tracing on even
// when Enabled is false.
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Exporter is "none", "file" (default) or "stdout". The stdout exporter
	// writes to stderr.
	Exporter string `mapstructure:"exporter"`

	// FilePath is the JSONL output for the "file" exporter.
	FilePath string `mapstructure:"file_path"`

	// SampleRate is the fraction of traces kept, 0.0 to 1.0.
	SampleRate float64 `mapstructure:"sample_rate"`
}

// ReleaseConfig is a seed release loaded at start-up.
type ReleaseConfig struct {
	Version      string `mapstructure:"version" yaml:"version"`
	StartDate    string `mapstructure:"start_date" yaml:"start_date"`
	ReleasedDate string `mapstructure:"released_date" yaml:"released_date,omitempty"`
	Description  string `mapstructure:"description" yaml:"description,omitempty"`
	Progress     int    `mapstructure:"progress" yaml:"progress"`
}

// Fields parses the seed's dates and returns release fields with the version
// name trimmed. Registry rules (uniqueness, date ordering) are not checked
// here.
func (r ReleaseConfig) Fields() (release.Fields, error) {
	start, err := release.ParseDate(r.StartDate)
	if err != nil {
		return release.Fields{}, fmt.Errorf("start_date: %w", err)
	}
	var released release.Date
	if r.ReleasedDate != "" {
		released, err = release.ParseDate(r.ReleasedDate)
		if err != nil {
			return release.Fields{}, fmt.Errorf("released_date: %w", err)
		}
	}
	return release.Fields{
		VersionName:  strings.TrimSpace(r.Version),
		StartDate:    start,
		ReleasedDate: released,
		Description:  r.Description,
		Progress:     r.Progress,
	}, nil
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		UI: UIConfig{
			ShowStatusBar: true,
			ShowDetails:   false,
			DateFormat:    release.LayoutDisplay,
			MarkdownStyle: "dark",
		},
		Flags: map[string]bool{},
		Tracing: TracingConfig{
			Enabled:    false,
			Exporter:   "file",
			FilePath:   "traces.jsonl",
			SampleRate: 1.0,
		},
	}
}

// SetDefaults registers Defaults on v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault(key("ui", "show_status_bar"), d.UI.ShowStatusBar)
	v.SetDefault(key("ui", "show_details"), d.UI.ShowDetails)
	v.SetDefault(key("ui", "date_format"), d.UI.DateFormat)
	v.SetDefault(key("ui", "markdown_style"), d.UI.MarkdownStyle)
	v.SetDefault(key("tracing", "enabled"), d.Tracing.Enabled)
	v.SetDefault(key("tracing", "exporter"), d.Tracing.Exporter)
	v.SetDefault(key("tracing", "file_path"), d.Tracing.FilePath)
	v.SetDefault(key("tracing", "sample_rate"), d.Tracing.SampleRate)
}

func key(parts ...string) string {
	k := parts[0]
	for _, p := range parts[1:] {
		k += KeyDelimiter + p
	}
	return k
}

// NewViper returns a viper instance using KeyDelimiter with defaults set.
func NewViper() *viper.Viper {
	v := viper.NewWithOptions(viper.KeyDelimiter(KeyDelimiter))
	SetDefaults(v)
	return v
}

// Load reads and decodes the config file at path.
func Load(path string) (Config, error) {
	v := NewViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Decode(v)
}

// Decode unmarshals v into a Config.
func Decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Flags == nil {
		cfg.Flags = map[string]bool{}
	}
	return cfg, nil
}

// Validate checks every section and joins the errors.
func Validate(cfg Config) error {
	return errors.Join(
		ValidateUI(cfg.UI),
		ValidateTheme(cfg.Theme),
		ValidateTracing(cfg.Tracing),
		ValidateReleases(cfg.Releases),
	)
}

var referenceDate = time.Date(2006, time.January, 2, 0, 0, 0, 0, time.UTC)

// ValidateUI checks the date layout round-trips and the markdown style is
// known.
func ValidateUI(ui UIConfig) error {
	if ui.DateFormat != "" {
		formatted := referenceDate.Format(ui.DateFormat)
		parsed, err := time.Parse(ui.DateFormat, formatted)
		if err != nil || !parsed.Equal(referenceDate) {
			return fmt.Errorf("ui.date_format %q must contain day, month and year", ui.DateFormat)
		}
	}
	switch ui.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", ui.MarkdownStyle)
	}
	return nil
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateTheme checks color override values are hex colors. Token names
// are checked when the theme is applied.
func ValidateTheme(theme ThemeConfig) error {
	for token, value := range theme.Colors {
		if !hexColor.MatchString(value) {
			return fmt.Errorf("theme.colors.%s: invalid hex color %q", token, value)
		}
	}
	return nil
}

// ValidateTracing checks the exporter is known and the sample rate is a
// fraction. The file path is only required while tracing is enabled.
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0 || tracing.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}
	switch tracing.Exporter {
	case "", "none", "file", "stdout":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\" or \"stdout\", got %q", tracing.Exporter)
	}
	if tracing.Enabled && tracing.Exporter == "file" && tracing.FilePath == "" {
		return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
	}
	return nil
}

// ValidateReleases checks each seed release can be turned into fields.
// Returns nil for an empty list.
func ValidateReleases(seeds []ReleaseConfig) error {
	for i, seed := range seeds {
		if _, err := seed.Fields(); err != nil {
			return fmt.Errorf("release %d (%s): %w", i, seed.Version, err)
		}
		if err := release.ValidateProgress(seed.Progress); err != nil {
			return fmt.Errorf("release %d (%s): %w", i, seed.Version, err)
		}
	}
	return nil
}

// UserConfigPath returns ~/.config/releasedesk/config.yaml.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName, "config.yaml")
}

// DefaultConfigTemplate returns the default config as YAML with comments.
func DefaultConfigTemplate() string {
	return `# releasedesk configuration

# UI settings
ui:
  show_status_bar: true     # Show release counts and today's date at the bottom
  show_details: false       # Show the details pane next to the table
  date_format: "02/01/2006" # Go time layout used to display dates
  # markdown_style: dark    # Description rendering style: "dark" (default) or "light"

# Theme configuration
theme:
  # preset: nord
  #
  # Available presets:
  #   default        - Default theme
  #   nord           - Arctic, north-bluish palette
  #   high-contrast  - High contrast colors
  #
  # Override specific colors:
  # colors:
  #   text.muted: "#888888"
  #   status.error: "#FF0000"
  #   release.released: "#73F59F"

# Feature flags
# flags:
#   confirm-delete: true   # Ask before deleting a release
#   config-watch: true     # Re-apply theme changes when this file changes

# Span tracing of release changes (also enabled by --debug)
# tracing:
#   enabled: false
#   exporter: file             # "file" (JSONL), "stdout" (written to stderr) or "none"
#   file_path: traces.jsonl
#   sample_rate: 1.0

# Releases loaded at start-up. Changes made in the app are not written back.
# releases:
#   - version: v1.0
#     start_date: 01/07/2025      # dd/mm/yyyy or yyyy-mm-dd
#     released_date: 15/08/2025   # optional
#     description: First release
#     progress: 100               # 0-100; 0 = In Progress, 100 = Released
`
}

// WriteDefaultConfig creates a config file at configPath with default
// settings and comments, creating the parent directory if needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
