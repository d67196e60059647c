package releases

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/releasedesk/internal/config"
	"github.com/zjrosen/releasedesk/internal/log"
	"github.com/zjrosen/releasedesk/internal/pubsub"
	"github.com/zjrosen/releasedesk/internal/release"
	"github.com/zjrosen/releasedesk/internal/tracing"
)

// Service coordinates registry mutations with events, logging and spans.
type Service struct {
	registry *release.Registry
	broker   *pubsub.Broker[release.Release]
	tracer   trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithBroker replaces the default event broker.
func WithBroker(b *pubsub.Broker[release.Release]) Option {
	return func(s *Service) {
		if b != nil {
			s.broker = b
		}
	}
}

// WithTracer records a span around each mutation. The default tracer is a
// no-op.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// New creates a service over reg.
func New(reg *release.Registry, opts ...Option) *Service {
	s := &Service{
		registry: reg,
		broker:   pubsub.NewBroker[release.Release](),
		tracer:   noop.NewTracerProvider().Tracer("releases"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed creates one release per seed, in order. It stops at the first seed
// that fails to parse or validate; releases created before it are kept.
func (s *Service) Seed(seeds []config.ReleaseConfig) (err error) {
	_, span := s.tracer.Start(context.Background(), tracing.SpanSeed,
		trace.WithAttributes(attribute.Int(tracing.AttrSeedCount, len(seeds))))
	defer func() { tracing.Finish(span, err) }()

	for i, seed := range seeds {
		f, err := seed.Fields()
		if err != nil {
			return fmt.Errorf("seed release %d (%s): %w", i, seed.Version, err)
		}
		rel, err := s.registry.Create(f)
		if err != nil {
			return fmt.Errorf("seed release %d (%s): %w", i, seed.Version, err)
		}
		log.Debug(log.CatRegistry, "Seeded release", "id", rel.ID, "version", rel.VersionName)
	}
	if len(seeds) > 0 {
		log.Info(log.CatRegistry, "Seeded releases", "count", len(seeds))
	}
	return nil
}

// List returns all releases in insertion order.
func (s *Service) List() []release.Release {
	return s.registry.ListAll()
}

// Get returns the release with id.
func (s *Service) Get(id string) (release.Release, bool) {
	return s.registry.Get(id)
}

// FindByVersionName returns the release named name.
func (s *Service) FindByVersionName(name string) (release.Release, bool) {
	return s.registry.FindByVersionName(name)
}

// Today returns the registry's current date.
func (s *Service) Today() release.Date {
	return s.registry.Today()
}

// ValidateVersionName checks name against the collection, ignoring
// excludingID.
func (s *Service) ValidateVersionName(name, excludingID string) error {
	return s.registry.ValidateVersionName(name, excludingID)
}

// ValidateReleasedDate checks released against start and today.
func (s *Service) ValidateReleasedDate(released, start release.Date) error {
	return release.ValidateReleasedDate(released, start, s.Today())
}

// CheckStartDate returns the advisory warning for start, if any.
func (s *Service) CheckStartDate(start release.Date) release.Warning {
	return release.ValidateStartDate(start, s.Today())
}

// Create adds a release and publishes a created event.
func (s *Service) Create(f release.Fields) (rel release.Release, err error) {
	span := s.startSpan(tracing.SpanCreate, "", f.VersionName)
	defer func() { finishSpan(span, rel, err) }()

	rel, err = s.registry.Create(f)
	if err != nil {
		logRejected("create", "", f, err)
		return release.Release{}, err
	}
	log.Info(log.CatRegistry, "Release created", "id", rel.ID, "version", rel.VersionName, "status", rel.Status.Key())
	s.broker.Publish(pubsub.CreatedEvent, rel)
	return rel, nil
}

// Update overwrites the release with id and publishes an updated event.
func (s *Service) Update(id string, f release.Fields) (rel release.Release, err error) {
	span := s.startSpan(tracing.SpanUpdate, id, f.VersionName)
	defer func() { finishSpan(span, rel, err) }()

	rel, err = s.registry.Update(id, f)
	if err != nil {
		logRejected("update", id, f, err)
		return release.Release{}, err
	}
	log.Info(log.CatRegistry, "Release updated", "id", rel.ID, "version", rel.VersionName, "status", rel.Status.Key())
	s.broker.Publish(pubsub.UpdatedEvent, rel)
	return rel, nil
}

// Delete removes the release with id and publishes a deleted event.
func (s *Service) Delete(id string) (err error) {
	existing, ok := s.registry.Get(id)
	span := s.startSpan(tracing.SpanDelete, id, existing.VersionName)
	defer func() { tracing.Finish(span, err) }()

	if err := s.registry.Delete(id); err != nil {
		log.Debug(log.CatRegistry, "Delete rejected", "id", id, "error", err)
		return err
	}
	if ok {
		log.Info(log.CatRegistry, "Release deleted", "id", id, "version", existing.VersionName)
		s.broker.Publish(pubsub.DeletedEvent, existing)
	}
	return nil
}

// Counts returns the number of releases per status.
func (s *Service) Counts() map[release.Status]int {
	counts := map[release.Status]int{
		release.StatusInProgress: 0,
		release.StatusUnreleased: 0,
		release.StatusReleased:   0,
	}
	for _, rel := range s.registry.ListAll() {
		counts[rel.Status]++
	}
	return counts
}

// Len returns the number of releases.
func (s *Service) Len() int {
	return s.registry.Len()
}

// Broker returns the event broker.
func (s *Service) Broker() *pubsub.Broker[release.Release] {
	return s.broker
}

// Close shuts down the broker.
func (s *Service) Close() {
	s.broker.Close()
}

func (s *Service) startSpan(name, id, version string) trace.Span {
	_, span := s.tracer.Start(context.Background(), name)
	if id != "" {
		span.SetAttributes(attribute.String(tracing.AttrReleaseID, id))
	}
	if version != "" {
		span.SetAttributes(attribute.String(tracing.AttrReleaseVersion, version))
	}
	return span
}

// finishSpan adds the stored release's id and status, then ends span.
func finishSpan(span trace.Span, rel release.Release, err error) {
	if err == nil {
		span.SetAttributes(
			attribute.String(tracing.AttrReleaseID, rel.ID),
			attribute.String(tracing.AttrReleaseStatus, rel.Status.Key()),
		)
	} else if isValidationError(err) {
		span.SetAttributes(attribute.String(tracing.AttrErrorType, "validation"))
	}
	tracing.Finish(span, err)
}

func logRejected(op, id string, f release.Fields, err error) {
	level := log.Debug
	if !isValidationError(err) {
		level = log.Warn
	}
	level(log.CatRegistry, "Release "+op+" rejected", "id", id, "version", f.VersionName, "error", err)
}

func isValidationError(err error) bool {
	for _, target := range []error{
		release.ErrEmptyVersion,
		release.ErrDuplicateVersion,
		release.ErrReleasedBeforeToday,
		release.ErrReleasedBeforeStart,
		release.ErrProgressOutOfRange,
		release.ErrMissingStartDate,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
