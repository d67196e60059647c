package release

import (
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// sequentialIDs returns an id generator producing rel-1, rel-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("rel-%d", n)
	}
}

// newTestRegistry returns a registry whose today is 2025-06-15.
func newTestRegistry() *Registry {
	return NewRegistry(
		WithClock(fixedClock{now: time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC)}),
		WithIDGenerator(sequentialIDs()),
	)
}

func fields(name string) Fields {
	return Fields{
		VersionName: name,
		StartDate:   NewDate(2025, time.July, 1),
	}
}

func versionNames(rels []Release) []string {
	names := make([]string, 0, len(rels))
	for _, r := range rels {
		names = append(names, r.VersionName)
	}
	return names
}

func TestNewRegistry_Empty(t *testing.T) {
	r := newTestRegistry()
	require.Equal(t, 0, r.Len())
	require.Empty(t, r.ListAll())
	require.Equal(t, NewDate(2025, time.June, 15), r.Today())
}

func TestRegistry_Create(t *testing.T) {
	r := newTestRegistry()

	rel, err := r.Create(Fields{
		VersionName:  "v1.0",
		StartDate:    NewDate(2025, time.July, 1),
		ReleasedDate: NewDate(2025, time.August, 1),
		Description:  "first cut",
		Progress:     40,
	})
	require.NoError(t, err)
	require.Equal(t, "rel-1", rel.ID)
	require.Equal(t, StatusUnreleased, rel.Status)
	require.True(t, rel.HasReleasedDate())
	require.Equal(t, 1, r.Len())
}

func TestRegistry_Create_DefaultsToInProgress(t *testing.T) {
	r := newTestRegistry()

	rel, err := r.Create(fields("v1.0"))
	require.NoError(t, err)
	require.Equal(t, 0, rel.Progress)
	require.Equal(t, StatusInProgress, rel.Status)
	require.False(t, rel.HasReleasedDate())
}

func TestRegistry_Create_EmptyVersion(t *testing.T) {
	r := newTestRegistry()

	for _, name := range []string{"", " ", "\t\n"} {
		_, err := r.Create(fields(name))
		require.ErrorIs(t, err, ErrEmptyVersion)
	}
	require.Equal(t, 0, r.Len())
}

func TestRegistry_Create_DuplicateVersion(t *testing.T) {
	r := newTestRegistry()

	_, err := r.Create(fields("v1.0"))
	require.NoError(t, err)

	_, err = r.Create(fields("v1.0"))
	require.ErrorIs(t, err, ErrDuplicateVersion)
	require.Equal(t, 1, r.Len())
}

func TestRegistry_Create_VersionMatchIsCaseSensitive(t *testing.T) {
	r := newTestRegistry()

	_, err := r.Create(fields("v1.0"))
	require.NoError(t, err)
	_, err = r.Create(fields("V1.0"))
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())
}

func TestRegistry_Create_MissingStartDate(t *testing.T) {
	r := newTestRegistry()

	_, err := r.Create(Fields{VersionName: "v1.0"})
	require.ErrorIs(t, err, ErrMissingStartDate)
	require.Equal(t, 0, r.Len())
}

func TestRegistry_Create_ProgressOutOfRange(t *testing.T) {
	r := newTestRegistry()

	f := fields("v1.0")
	f.Progress = 101
	_, err := r.Create(f)
	require.ErrorIs(t, err, ErrProgressOutOfRange)

	f.Progress = -5
	_, err = r.Create(f)
	require.ErrorIs(t, err, ErrProgressOutOfRange)
	require.Equal(t, 0, r.Len())
}

func TestRegistry_Create_ReleasedDateErrors(t *testing.T) {
	r := newTestRegistry()

	f := fields("v1.0")
	f.StartDate = NewDate(2025, time.June, 20)
	f.ReleasedDate = NewDate(2025, time.June, 1)
	_, err := r.Create(f)
	require.ErrorIs(t, err, ErrReleasedBeforeToday)

	f.ReleasedDate = NewDate(2025, time.June, 18)
	_, err = r.Create(f)
	require.ErrorIs(t, err, ErrReleasedBeforeStart)
	require.Equal(t, 0, r.Len())
}

func TestRegistry_Create_PastStartDateIsAllowed(t *testing.T) {
	r := newTestRegistry()

	f := fields("v0.9")
	f.StartDate = NewDate(2024, time.January, 1)
	_, err := r.Create(f)
	require.NoError(t, err)
	require.Equal(t, WarnPastStartDate, ValidateStartDate(f.StartDate, r.Today()))
}

func TestRegistry_Create_DuplicateGeneratedID(t *testing.T) {
	r := NewRegistry(WithIDGenerator(func() string { return "same" }))

	_, err := r.Create(fields("v1.0"))
	require.NoError(t, err)
	_, err = r.Create(fields("v2.0"))
	require.Error(t, err)
	require.Equal(t, 1, r.Len())
}

func TestRegistry_RoundTrip(t *testing.T) {
	r := newTestRegistry()

	in := Fields{
		VersionName:  "v2.1",
		StartDate:    NewDate(2025, time.September, 1),
		ReleasedDate: NewDate(2025, time.October, 15),
		Description:  "maintenance release",
		Progress:     100,
	}
	created, err := r.Create(in)
	require.NoError(t, err)

	found, ok := r.FindByVersionName("v2.1")
	require.True(t, ok)
	require.Equal(t, Release{
		ID:           created.ID,
		VersionName:  in.VersionName,
		StartDate:    in.StartDate,
		ReleasedDate: in.ReleasedDate,
		Description:  in.Description,
		Progress:     in.Progress,
		Status:       StatusReleased,
	}, found)
	require.Equal(t, in, found.Fields())

	got, ok := r.Get(created.ID)
	require.True(t, ok)
	require.Equal(t, found, got)
}

func TestRegistry_FindByVersionName_Missing(t *testing.T) {
	r := newTestRegistry()
	_, err := r.Create(fields("v1.0"))
	require.NoError(t, err)

	_, ok := r.FindByVersionName("v1.1")
	require.False(t, ok)
	_, ok = r.FindByVersionName("v1.0 ")
	require.False(t, ok)
}

func TestRegistry_ListAll_ReturnsCopy(t *testing.T) {
	r := newTestRegistry()
	_, err := r.Create(fields("v1.0"))
	require.NoError(t, err)

	list := r.ListAll()
	list[0].VersionName = "mutated"

	again := r.ListAll()
	require.Equal(t, "v1.0", again[0].VersionName)
}

func TestRegistry_Update_KeepsOwnName(t *testing.T) {
	r := newTestRegistry()
	rel, err := r.Create(fields("v1.0"))
	require.NoError(t, err)

	f := rel.Fields()
	f.Progress = 50
	f.Description = "halfway"
	updated, err := r.Update(rel.ID, f)
	require.NoError(t, err)
	require.Equal(t, rel.ID, updated.ID)
	require.Equal(t, StatusUnreleased, updated.Status)
	require.Equal(t, "halfway", updated.Description)
}

func TestRegistry_Update_Rename(t *testing.T) {
	r := newTestRegistry()
	rel, err := r.Create(fields("v1.0"))
	require.NoError(t, err)

	_, err = r.Update(rel.ID, fields("v1.1"))
	require.NoError(t, err)

	_, ok := r.FindByVersionName("v1.0")
	require.False(t, ok)
	found, ok := r.FindByVersionName("v1.1")
	require.True(t, ok)
	require.Equal(t, rel.ID, found.ID)

	// The old name is free again.
	_, err = r.Create(fields("v1.0"))
	require.NoError(t, err)
}

func TestRegistry_Update_DuplicateOfOther(t *testing.T) {
	r := newTestRegistry()
	a, err := r.Create(fields("v1.0"))
	require.NoError(t, err)
	_, err = r.Create(fields("v2.0"))
	require.NoError(t, err)

	_, err = r.Update(a.ID, fields("v2.0"))
	require.ErrorIs(t, err, ErrDuplicateVersion)

	got, ok := r.Get(a.ID)
	require.True(t, ok)
	require.Equal(t, "v1.0", got.VersionName)
}

func TestRegistry_Update_NotFound(t *testing.T) {
	r := newTestRegistry()
	_, err := r.Update("missing", fields("v1.0"))
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, 0, r.Len())
}

func TestRegistry_Update_PreservesPosition(t *testing.T) {
	r := newTestRegistry()
	for _, name := range []string{"a", "b", "c"} {
		_, err := r.Create(fields(name))
		require.NoError(t, err)
	}

	b, ok := r.FindByVersionName("b")
	require.True(t, ok)
	_, err := r.Update(b.ID, fields("b2"))
	require.NoError(t, err)

	require.Equal(t, []string{"a", "b2", "c"}, versionNames(r.ListAll()))
}

func TestRegistry_Update_InvalidLeavesRecord(t *testing.T) {
	r := newTestRegistry()
	rel, err := r.Create(fields("v1.0"))
	require.NoError(t, err)

	_, err = r.Update(rel.ID, fields(""))
	require.ErrorIs(t, err, ErrEmptyVersion)

	got, _ := r.Get(rel.ID)
	require.Equal(t, rel, got)
	_, ok := r.FindByVersionName("v1.0")
	require.True(t, ok)
}

func TestRegistry_Delete(t *testing.T) {
	r := newTestRegistry()
	for _, name := range []string{"a", "b", "c", "d"} {
		_, err := r.Create(fields(name))
		require.NoError(t, err)
	}

	c, _ := r.FindByVersionName("c")
	require.NoError(t, r.Delete(c.ID))
	require.Equal(t, []string{"a", "b", "d"}, versionNames(r.ListAll()))

	_, ok := r.Get(c.ID)
	require.False(t, ok)
	_, ok = r.FindByVersionName("c")
	require.False(t, ok)
}

func TestRegistry_Delete_NotFound(t *testing.T) {
	r := newTestRegistry()
	_, err := r.Create(fields("a"))
	require.NoError(t, err)

	err = r.Delete("missing")
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, 1, r.Len())
}

func TestRegistry_Delete_IDsNotReused(t *testing.T) {
	r := newTestRegistry()
	a, err := r.Create(fields("a"))
	require.NoError(t, err)
	require.NoError(t, r.Delete(a.ID))

	b, err := r.Create(fields("a"))
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)
}

func TestRegistry_Scenario(t *testing.T) {
	r := newTestRegistry()

	start := NewDate(2025, time.January, 1)
	rel, err := r.Create(Fields{VersionName: "v1.0", StartDate: start, Progress: 0})
	require.NoError(t, err)
	require.Equal(t, StatusInProgress, rel.Status)

	released := NewDate(2025, time.January, 1)
	require.NoError(t, ValidateReleasedDate(released, start, r.Today()))

	updated, err := r.Update(rel.ID, Fields{
		VersionName:  "v1.0",
		StartDate:    start,
		ReleasedDate: released,
		Progress:     100,
	})
	require.NoError(t, err)
	require.Equal(t, StatusReleased, updated.Status)
	require.Equal(t, 1, r.Len())
}

// TestProperty_CreateUniqueNames checks every create with a fresh name grows
// the collection by exactly one.
func TestProperty_CreateUniqueNames(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := newTestRegistry()
		names := rapid.SliceOfDistinct(
			rapid.StringMatching(`[a-z0-9.]{1,12}`),
			func(s string) string { return s },
		).Draw(t, "names")

		for i, name := range names {
			if _, err := r.Create(fields(name)); err != nil {
				t.Fatalf("create %q: %v", name, err)
			}
			if r.Len() != i+1 {
				t.Fatalf("len = %d after %d creates", r.Len(), i+1)
			}
		}
	})
}

// TestProperty_RegistryInvariants runs random operation sequences and checks
// that names stay unique and the collection matches a simple model.
func TestProperty_RegistryInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := newTestRegistry()
		model := []string{} // version names in order

		nameGen := rapid.SampledFrom([]string{"", " ", "a", "b", "c", "d", "e"})

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				name := nameGen.Draw(t, "createName")
				_, err := r.Create(fields(name))
				switch {
				case isBlank(name):
					require.ErrorIs(t, err, ErrEmptyVersion)
				case slices.Contains(model, name):
					require.ErrorIs(t, err, ErrDuplicateVersion)
				default:
					require.NoError(t, err)
					model = append(model, name)
				}
			case 1:
				if len(model) == 0 {
					continue
				}
				idx := rapid.IntRange(0, len(model)-1).Draw(t, "updateIdx")
				name := nameGen.Draw(t, "updateName")
				rel, ok := r.FindByVersionName(model[idx])
				require.True(t, ok)
				_, err := r.Update(rel.ID, fields(name))
				switch {
				case isBlank(name):
					require.ErrorIs(t, err, ErrEmptyVersion)
				case name != model[idx] && slices.Contains(model, name):
					require.ErrorIs(t, err, ErrDuplicateVersion)
				default:
					require.NoError(t, err)
					model[idx] = name
				}
			case 2:
				if len(model) == 0 {
					require.ErrorIs(t, r.Delete("nope"), ErrNotFound)
					continue
				}
				idx := rapid.IntRange(0, len(model)-1).Draw(t, "deleteIdx")
				rel, ok := r.FindByVersionName(model[idx])
				require.True(t, ok)
				require.NoError(t, r.Delete(rel.ID))
				model = append(model[:idx], model[idx+1:]...)
			}

			require.Equal(t, model, versionNames(r.ListAll()))
		}
	})
}
