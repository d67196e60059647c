package release

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Registry holds release records in insertion order.
//
// Registry is not safe for concurrent use. It is owned by a single caller
// (the TUI update loop) and every operation completes synchronously.
type Registry struct {
	records map[string]Release // arena keyed by id
	order   []string           // ids in insertion order
	byName  map[string]string  // version name -> id

	clock Clock
	newID func() string
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock sets the clock used to determine "today" during validation.
func WithClock(c Clock) Option {
	return func(r *Registry) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithIDGenerator overrides id assignment. Generated ids must never repeat.
func WithIDGenerator(fn func() string) Option {
	return func(r *Registry) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		records: make(map[string]Release),
		order:   make([]string, 0),
		byName:  make(map[string]string),
		clock:   SystemClock{},
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Today returns the registry's notion of the current date.
func (r *Registry) Today() Date {
	return Today(r.clock)
}

// Len returns the number of releases.
func (r *Registry) Len() int {
	return len(r.order)
}

// ListAll returns all releases in insertion order.
func (r *Registry) ListAll() []Release {
	result := make([]Release, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.records[id])
	}
	return result
}

// Get returns the release with the given id.
func (r *Registry) Get(id string) (Release, bool) {
	rel, ok := r.records[id]
	return rel, ok
}

// FindByVersionName returns the release whose version name matches name
// exactly.
func (r *Registry) FindByVersionName(name string) (Release, bool) {
	id, ok := r.byName[name]
	if !ok {
		return Release{}, false
	}
	return r.records[id], true
}

// ValidateVersionName checks name is non-blank and not used by any release
// other than excludingID. Pass "" for excludingID when validating a new
// release.
func (r *Registry) ValidateVersionName(name, excludingID string) error {
	if isBlank(name) {
		return ErrEmptyVersion
	}
	if id, ok := r.byName[name]; ok && id != excludingID {
		return fmt.Errorf("%w: %q", ErrDuplicateVersion, name)
	}
	return nil
}

// Validate runs every blocking check for f. excludingID is the id of the
// release being edited, or "" for a new release.
func (r *Registry) Validate(f Fields, excludingID string) error {
	if err := r.ValidateVersionName(f.VersionName, excludingID); err != nil {
		return err
	}
	if f.StartDate.IsZero() {
		return ErrMissingStartDate
	}
	if err := ValidateProgress(f.Progress); err != nil {
		return err
	}
	if !f.ReleasedDate.IsZero() {
		if err := ValidateReleasedDate(f.ReleasedDate, f.StartDate, r.Today()); err != nil {
			return err
		}
	}
	return nil
}

// Create validates f and appends a new release with a fresh id.
// On error the collection is unchanged.
func (r *Registry) Create(f Fields) (Release, error) {
	if err := r.Validate(f, ""); err != nil {
		return Release{}, err
	}

	id := r.newID()
	if _, exists := r.records[id]; exists {
		return Release{}, fmt.Errorf("id generator returned duplicate id %q", id)
	}

	rel := newRelease(id, f)
	r.records[id] = rel
	r.order = append(r.order, id)
	r.byName[rel.VersionName] = id
	return rel, nil
}

// Update validates f and overwrites the release with the given id, keeping
// its position in the collection.
func (r *Registry) Update(id string, f Fields) (Release, error) {
	existing, ok := r.records[id]
	if !ok {
		return Release{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := r.Validate(f, id); err != nil {
		return Release{}, err
	}

	rel := newRelease(id, f)
	delete(r.byName, existing.VersionName)
	r.byName[rel.VersionName] = id
	r.records[id] = rel
	return rel, nil
}

// Delete removes the release with the given id. The relative order of the
// remaining releases is preserved.
func (r *Registry) Delete(id string) error {
	existing, ok := r.records[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	idx := slices.Index(r.order, id)
	r.order = slices.Delete(r.order, idx, idx+1)
	delete(r.records, id)
	delete(r.byName, existing.VersionName)
	return nil
}
