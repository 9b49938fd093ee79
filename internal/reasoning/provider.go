// Package reasoning produces the natural-language justification attached to a
// substitution decision. The remote provider asks an external explanation
// service; the deterministic builder covers every failure of that call so the
// engine's primary guarantee never depends on the dependency being up.
package reasoning

import (
	"context"

	"github.com/edudesk/edudesk-api/internal/models"
)

// Payload describes one decided match for explanation purposes.
type Payload struct {
	Absent    *models.FacultyRecord
	Candidate *models.FacultyRecord
	Score     int
	Details   models.MatchDetails
}

// Provider generates a short explanation for a decided match.
type Provider interface {
	Explain(ctx context.Context, payload Payload) (string, error)
}
