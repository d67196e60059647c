package testutil

// WithStandardReleases queues one release per status:
//
//	v1.0  released    progress 100
//	v1.1  unreleased  progress 40
//	v2.0  in progress progress 0
func (b *Builder) WithStandardReleases() *Builder {
	return b.
		WithRelease("v1.0",
			Start(Days(-30)), Released(Days(-30)), Progress(100),
			Description("Initial **stable** release")).
		WithRelease("v1.1",
			Start(Days(-5)), Released(Days(10)), Progress(40),
			Description("Bug fixes")).
		WithRelease("v2.0",
			Start(Days(14)),
			Description("Next major version"))
}
