// Package testutil holds fixtures shared by package tests: a fixed clock, a
// release fields builder and a registry builder.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/releasedesk/internal/release"
)

// Builder accumulates releases and creates them in order.
type Builder struct {
	t        *testing.T
	registry *release.Registry
	fields   []release.Fields
}

// NewBuilder creates a builder that fills reg. A nil reg gets a fresh
// registry from NewRegistry.
func NewBuilder(t *testing.T, reg *release.Registry) *Builder {
	t.Helper()
	if reg == nil {
		reg = NewRegistry()
	}
	return &Builder{t: t, registry: reg}
}

// WithRelease queues a release.
func (b *Builder) WithRelease(version string, opts ...ReleaseOption) *Builder {
	b.fields = append(b.fields, Fields(version, opts...))
	return b
}

// Build creates every queued release, failing the test on the first error.
func (b *Builder) Build() *release.Registry {
	b.t.Helper()
	for _, f := range b.fields {
		_, err := b.registry.Create(f)
		require.NoError(b.t, err, "create %q", f.VersionName)
	}
	b.fields = nil
	return b.registry
}
