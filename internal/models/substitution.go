package models

import "time"

// SubstitutionRequest is the immutable input of one matching call.
type SubstitutionRequest struct {
	AbsentFacultyID string
	Date            time.Time
	Period          int
}

// ScoredCandidate pairs a roster record with its derived compatibility score.
// It exists only for the duration of ranking.
type ScoredCandidate struct {
	Faculty    *FacultyRecord `json:"faculty"`
	MatchScore int            `json:"matchScore"`
}

// MatchDetails explains, structurally, why the top candidate matched.
type MatchDetails struct {
	SameSubject     bool     `json:"sameSubject"`
	RelatedSubject  bool     `json:"relatedSubject"`
	ClassOverlap    []string `json:"classOverlap"`
	ExperienceMatch bool     `json:"experienceMatch"`
	PreferredPeriod bool     `json:"preferredPeriod"`
}

// SubstitutionResult is the engine's answer to one request. Immutable; the
// engine does not persist it or retain references to it across calls.
type SubstitutionResult struct {
	ID                 string            `json:"id"`
	AbsentFaculty      *FacultyRecord    `json:"absentFaculty"`
	BestMatch          ScoredCandidate   `json:"bestMatch"`
	AlternativeMatches []ScoredCandidate `json:"alternativeMatches"`
	Reasoning          string            `json:"reasoning"`
	MatchDetails       MatchDetails      `json:"matchDetails"`
	Date               string            `json:"date"`
	Period             int               `json:"period"`
}

// DecisionLog is the advisory audit record of a produced recommendation.
// Written asynchronously; never authoritative for bookings.
type DecisionLog struct {
	ID              string    `db:"id" json:"id"`
	AbsentFacultyID string    `db:"absent_faculty_id" json:"absent_faculty_id"`
	BestMatchID     string    `db:"best_match_id" json:"best_match_id"`
	MatchScore      int       `db:"match_score" json:"match_score"`
	Date            string    `db:"date" json:"date"`
	Period          int       `db:"period" json:"period"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
