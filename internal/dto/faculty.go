package dto

// CreateFacultyRequest adds a staff member to the roster.
type CreateFacultyRequest struct {
	Name                    string   `json:"name" validate:"required"`
	Subject                 string   `json:"subject" validate:"required"`
	Specialization          string   `json:"specialization"`
	Classes                 []string `json:"classes"`
	Experience              int      `json:"experience" validate:"min=0"`
	Qualifications          []string `json:"qualifications"`
	PreferredPeriods        []int    `json:"preferredPeriods" validate:"dive,min=1,max=8"`
	MaxSubstitutionsPerWeek int      `json:"maxSubstitutionsPerWeek" validate:"required,min=1"`
}
