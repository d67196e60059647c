package release

import (
	"errors"
	"fmt"
	"strings"
)

// Registry errors
var (
	ErrEmptyVersion        = errors.New("version name is empty")
	ErrDuplicateVersion    = errors.New("version name already in use")
	ErrReleasedBeforeToday = errors.New("released date is before today")
	ErrReleasedBeforeStart = errors.New("released date is before start date")
	ErrNotFound            = errors.New("release not found")
	ErrProgressOutOfRange  = errors.New("progress out of range")
	ErrMissingStartDate    = errors.New("start date is required")
)

// Warning is an advisory validation result. Warnings never block a save.
type Warning int

const (
	NoWarning Warning = iota
	WarnPastStartDate
)

func (w Warning) String() string {
	switch w {
	case NoWarning:
		return "none"
	case WarnPastStartDate:
		return "start date is in the past"
	default:
		return "unknown"
	}
}

// ValidateStartDate flags a start date strictly before today.
func ValidateStartDate(start, today Date) Warning {
	if start.Before(today) {
		return WarnPastStartDate
	}
	return NoWarning
}

// ValidateReleasedDate checks a released date against the start date and
// today. The start date check runs first: a released date on or after the
// start date is accepted regardless of today.
func ValidateReleasedDate(released, start, today Date) error {
	if !released.Before(start) {
		return nil
	}
	if released.Before(today) {
		return fmt.Errorf("%w: %s < %s", ErrReleasedBeforeToday, released, today)
	}
	return fmt.Errorf("%w: %s < %s", ErrReleasedBeforeStart, released, start)
}

// ValidateProgress checks progress is within [MinProgress, MaxProgress].
func ValidateProgress(progress int) error {
	if progress < MinProgress || progress > MaxProgress {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrProgressOutOfRange, progress, MinProgress, MaxProgress)
	}
	return nil
}

func isBlank(name string) bool {
	return strings.TrimSpace(name) == ""
}
