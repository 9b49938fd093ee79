package reasoning

import (
	"fmt"
	"strings"
)

// BuildFallback assembles a deterministic explanation from the decided match.
// Pure function of its inputs: same payload, same sentence. Clauses that do
// not apply are omitted entirely; in the degenerate case only the lead
// sentence remains. It never fails.
func BuildFallback(payload Payload) string {
	absent := payload.Absent
	candidate := payload.Candidate
	details := payload.Details

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s is the recommended substitute for %s with a compatibility score of %d out of 100.",
		candidate.Name, absent.Name, payload.Score)

	switch {
	case details.SameSubject:
		fmt.Fprintf(&sb, " They teach the same subject (%s), so lessons can continue without disruption.", candidate.Subject)
	case details.RelatedSubject:
		fmt.Fprintf(&sb, " Their subject (%s) is closely related to %s, so they can cover the material competently.",
			candidate.Subject, absent.Subject)
	}

	if len(details.ClassOverlap) > 0 {
		fmt.Fprintf(&sb, " They already teach %s, so the students know them.", strings.Join(details.ClassOverlap, ", "))
	}

	if candidate.CurrentSubstitutions < candidate.MaxSubstitutionsPerWeek-1 {
		fmt.Fprintf(&sb, " They have spare substitution capacity this week (%d of %d used).",
			candidate.CurrentSubstitutions, candidate.MaxSubstitutionsPerWeek)
	}

	return sb.String()
}
