package dto

import "github.com/edudesk/edudesk-api/internal/models"

// GenerateSubstitutionRequest asks the engine for a ranked substitute decision.
type GenerateSubstitutionRequest struct {
	AbsentFacultyID string `json:"absentFacultyId" validate:"required"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	Period          int    `json:"period" validate:"required,min=1,max=8"`
}

// CommitAssignmentRequest books a previously recommended candidate, bumping
// their weekly substitution counter. The id requirement is enforced by
// MatchingService.CommitAssignment.
type CommitAssignmentRequest struct {
	FacultyID string `json:"facultyId"`
}

// SubstitutionSlipRequest carries a produced result back for PDF rendering.
// The exporter rejects results missing either participant.
type SubstitutionSlipRequest struct {
	Result models.SubstitutionResult `json:"result"`
}
