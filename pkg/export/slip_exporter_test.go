package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edudesk/edudesk-api/internal/models"
)

func slipResult() models.SubstitutionResult {
	return models.SubstitutionResult{
		ID:            "sub-1",
		AbsentFaculty: &models.FacultyRecord{Name: "Dr. Verma", Subject: "Science"},
		BestMatch: models.ScoredCandidate{
			Faculty:    &models.FacultyRecord{Name: "Ms. Iyer", Subject: "Science"},
			MatchScore: 89,
		},
		Reasoning: "Ms. Iyer is the recommended substitute.",
		Date:      "2026-09-07",
		Period:    3,
	}
}

func TestSlipExporterRender(t *testing.T) {
	raw, err := NewSlipExporter().Render(slipResult())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestSlipExporterRenderRequiresParticipants(t *testing.T) {
	missingAbsent := slipResult()
	missingAbsent.AbsentFaculty = nil
	_, err := NewSlipExporter().Render(missingAbsent)
	require.Error(t, err)

	missingBest := slipResult()
	missingBest.BestMatch.Faculty = nil
	_, err = NewSlipExporter().Render(missingBest)
	require.Error(t, err)
}

func TestSlipExporterRenderSkipsAlternativesWithoutFaculty(t *testing.T) {
	result := slipResult()
	result.AlternativeMatches = []models.ScoredCandidate{
		{MatchScore: 10},
		{Faculty: &models.FacultyRecord{Name: "Mr. Rao"}, MatchScore: 33},
	}

	raw, err := NewSlipExporter().Render(result)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}
