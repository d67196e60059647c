package presentation

import (
	"github.com/zjrosen/releasedesk/internal/release"
)

// ReleaseDTO represents a release for machine-readable output. Dates use
// the ISO layout regardless of the configured display layout.
type ReleaseDTO struct {
	ID           string `json:"id" yaml:"id"`
	Version      string `json:"version" yaml:"version"`
	StartDate    string `json:"start_date" yaml:"start_date"`
	ReleasedDate string `json:"released_date,omitempty" yaml:"released_date,omitempty"`
	Description  string `json:"description" yaml:"description"`
	Progress     int    `json:"progress" yaml:"progress"`
	Status       string `json:"status" yaml:"status"`
}

// FromRelease converts a domain release to a DTO.
func FromRelease(r release.Release) ReleaseDTO {
	dto := ReleaseDTO{
		ID:          r.ID,
		Version:     r.VersionName,
		StartDate:   r.StartDate.Format(release.LayoutISO),
		Description: r.Description,
		Progress:    r.Progress,
		Status:      r.Status.Key(),
	}
	if r.HasReleasedDate() {
		dto.ReleasedDate = r.ReleasedDate.Format(release.LayoutISO)
	}
	return dto
}

// FromReleases converts a slice of domain releases to DTOs. The result is
// never nil so an empty list encodes as [].
func FromReleases(rs []release.Release) []ReleaseDTO {
	dtos := make([]ReleaseDTO, len(rs))
	for i, r := range rs {
		dtos[i] = FromRelease(r)
	}
	return dtos
}
