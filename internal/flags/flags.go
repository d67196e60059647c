// Package flags provides feature flags read from the config file.
// Flags are read-only after initialization; unknown flags are disabled.
package flags

import (
	"maps"

	"github.com/zjrosen/releasedesk/internal/log"
)

const (
	// FlagConfirmDelete asks for confirmation before a release is deleted.
	// When disabled, delete is immediate.
	FlagConfirmDelete = "confirm-delete"

	// FlagConfigWatch re-applies the theme when the config file changes.
	FlagConfigWatch = "config-watch"
)

// Defaults returns the value of every known flag when the config omits it.
func Defaults() map[string]bool {
	return map[string]bool{
		FlagConfirmDelete: true,
		FlagConfigWatch:   true,
	}
}

// Registry holds feature flag state.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from Defaults overlaid with configured values.
func New(configured map[string]bool) *Registry {
	flags := Defaults()
	maps.Copy(flags, configured)
	r := &Registry{flags: flags}
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(flags), "flags", r.All())
	return r
}

// Enabled reports whether the named flag is on. Unknown flags and a nil
// registry report false.
func (r *Registry) Enabled(name string) bool {
	if r == nil || r.flags == nil {
		return false
	}
	value, exists := r.flags[name]
	if !exists {
		log.Debug(log.CatConfig, "Unknown flag accessed", "flag", name)
		return false
	}
	return value
}

// All returns a copy of all flags.
func (r *Registry) All() map[string]bool {
	if r == nil || r.flags == nil {
		return make(map[string]bool)
	}
	return maps.Clone(r.flags)
}
