package release

// Status is the lifecycle classification derived from a release's progress.
type Status int

const (
	StatusInProgress Status = iota // progress == 0
	StatusUnreleased               // 0 < progress < 100
	StatusReleased                 // progress == 100
)

// String returns the display label for s.
func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "In Progress"
	case StatusUnreleased:
		return "Unreleased"
	case StatusReleased:
		return "Released"
	default:
		return "Unknown"
	}
}

// Key returns a stable lowercase identifier for s, used in machine output.
func (s Status) Key() string {
	switch s {
	case StatusInProgress:
		return "in_progress"
	case StatusUnreleased:
		return "unreleased"
	case StatusReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Progress bounds.
const (
	MinProgress = 0
	MaxProgress = 100
)

// DeriveStatus maps a progress percentage to its status.
// Only the exact values 0 and 100 are special.
func DeriveStatus(progress int) Status {
	switch progress {
	case MinProgress:
		return StatusInProgress
	case MaxProgress:
		return StatusReleased
	default:
		return StatusUnreleased
	}
}

// Fields are the user-editable values of a release, as submitted by the
// add and edit workflows.
type Fields struct {
	VersionName  string
	StartDate    Date
	ReleasedDate Date // zero when not set
	Description  string
	Progress     int
}

// Release is one version's lifecycle record.
type Release struct {
	ID           string
	VersionName  string
	StartDate    Date
	ReleasedDate Date
	Description  string
	Progress     int
	Status       Status
}

// HasReleasedDate reports whether a released date was set.
func (r Release) HasReleasedDate() bool {
	return !r.ReleasedDate.IsZero()
}

// Fields returns the editable values of r, e.g. to prefill an edit form.
func (r Release) Fields() Fields {
	return Fields{
		VersionName:  r.VersionName,
		StartDate:    r.StartDate,
		ReleasedDate: r.ReleasedDate,
		Description:  r.Description,
		Progress:     r.Progress,
	}
}

func newRelease(id string, f Fields) Release {
	return Release{
		ID:           id,
		VersionName:  f.VersionName,
		StartDate:    f.StartDate,
		ReleasedDate: f.ReleasedDate,
		Description:  f.Description,
		Progress:     f.Progress,
		Status:       DeriveStatus(f.Progress),
	}
}
