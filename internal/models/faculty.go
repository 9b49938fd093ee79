package models

import "time"

// DateLayout is the canonical wire and lookup format for calendar dates.
const DateLayout = "2006-01-02"

// PeriodsPerDay is the number of teaching periods in a school day.
const PeriodsPerDay = 8

// AvailabilityTable maps a date (DateLayout) to a per-period free/busy flag.
// Missing dates or periods are treated as unavailable.
type AvailabilityTable map[string]map[int]bool

// IsFree reports whether the slot is marked available. Dates outside the
// generated window resolve to false.
func (t AvailabilityTable) IsFree(date time.Time, period int) bool {
	if t == nil {
		return false
	}
	day, ok := t[date.Format(DateLayout)]
	if !ok {
		return false
	}
	return day[period]
}

// FacultyRecord represents one staff member of the roster.
//
// CurrentSubstitutions is caller-owned booking state: the matching engine
// only reads it to filter candidates. It changes exclusively through the
// explicit commit operation.
type FacultyRecord struct {
	ID                      string            `db:"id" json:"id"`
	Name                    string            `db:"name" json:"name"`
	Subject                 string            `db:"subject" json:"subject"`
	Specialization          string            `db:"specialization" json:"specialization,omitempty"`
	Classes                 []string          `db:"-" json:"classes"`
	Experience              int               `db:"experience" json:"experience"`
	Qualifications          []string          `db:"-" json:"qualifications"`
	Availability            AvailabilityTable `db:"-" json:"availability,omitempty"`
	PreferredPeriods        []int             `db:"-" json:"preferredPeriods"`
	MaxSubstitutionsPerWeek int               `db:"max_substitutions_per_week" json:"maxSubstitutionsPerWeek"`
	CurrentSubstitutions    int               `db:"current_substitutions" json:"currentSubstitutions"`
}

// PrefersPeriod reports membership of period in the preferred set.
func (f *FacultyRecord) PrefersPeriod(period int) bool {
	for _, p := range f.PreferredPeriods {
		if p == period {
			return true
		}
	}
	return false
}

// RemainingCapacity is the number of substitutions still acceptable this week.
func (f *FacultyRecord) RemainingCapacity() int {
	remaining := f.MaxSubstitutionsPerWeek - f.CurrentSubstitutions
	if remaining < 0 {
		return 0
	}
	return remaining
}
