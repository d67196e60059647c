package testutil

import "github.com/zjrosen/releasedesk/internal/release"

// ReleaseOption customizes the fields of a release added with WithRelease.
type ReleaseOption func(*release.Fields)

// Start sets the start date.
func Start(d release.Date) ReleaseOption {
	return func(f *release.Fields) { f.StartDate = d }
}

// Released sets the released date.
func Released(d release.Date) ReleaseOption {
	return func(f *release.Fields) { f.ReleasedDate = d }
}

// Description sets the description.
func Description(s string) ReleaseOption {
	return func(f *release.Fields) { f.Description = s }
}

// Progress sets the progress percentage.
func Progress(p int) ReleaseOption {
	return func(f *release.Fields) { f.Progress = p }
}

// Fields returns release fields for version with a start date one week from
// Today, modified by opts.
func Fields(version string, opts ...ReleaseOption) release.Fields {
	f := release.Fields{
		VersionName: version,
		StartDate:   Days(7),
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}
