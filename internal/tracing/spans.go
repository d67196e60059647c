package tracing

import (
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	SpanSeed   = "releases.seed"
	SpanCreate = "releases.create"
	SpanUpdate = "releases.update"
	SpanDelete = "releases.delete"
)

// Span attribute keys.
const (
	AttrReleaseID      = "release.id"
	AttrReleaseVersion = "release.version"
	AttrReleaseStatus  = "release.status"
	AttrSeedCount      = "seed.count"
	AttrErrorType      = "error.type"
)

// Finish records the outcome of the operation on span and ends it.
func Finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
