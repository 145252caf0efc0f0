package domain

import "time"

// ResourceKind distinguishes the two bookable resource kinds
type ResourceKind string

const (
	KindOfficiant ResourceKind = "officiant"
	KindLocation  ResourceKind = "location"
)

// Resource represents a bookable resource: an officiant or a location
type Resource struct {
	ID       int64
	Kind     ResourceKind
	Name     string
	IsActive bool

	// Languages the resource can serve ceremonies in (ISO 639-1 codes)
	Languages []string

	// Certification window for officiants; CertifiedUntil == nil means open-ended
	CertifiedFrom  *time.Time
	CertifiedUntil *time.Time

	// Capacity for locations: how many non-conflicting reservations may
	// share the same time interval. Always 1 for officiants.
	Capacity int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOfficiant returns true if the resource is an officiant
func (r *Resource) IsOfficiant() bool {
	return r.Kind == KindOfficiant
}

// IsLocation returns true if the resource is a location
func (r *Resource) IsLocation() bool {
	return r.Kind == KindLocation
}

// SpeaksAny returns true if the resource's language set intersects the required set
// An empty requirement always matches
func (r *Resource) SpeaksAny(required []string) bool {
	if len(required) == 0 {
		return true
	}
	for _, want := range required {
		for _, have := range r.Languages {
			if have == want {
				return true
			}
		}
	}
	return false
}

// IsCertifiedOn returns true if the certification window covers the given date
// Resources without a certification window (locations) are always certified
func (r *Resource) IsCertifiedOn(date time.Time) bool {
	day := truncateToDay(date)
	if r.CertifiedFrom != nil && day.Before(truncateToDay(*r.CertifiedFrom)) {
		return false
	}
	if r.CertifiedUntil != nil && day.After(truncateToDay(*r.CertifiedUntil)) {
		return false
	}
	return true
}

// EffectiveCapacity returns the capacity used for overlap accounting
func (r *Resource) EffectiveCapacity() int {
	if r.Capacity < DefaultLocationCapacity {
		return DefaultLocationCapacity
	}
	return r.Capacity
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
