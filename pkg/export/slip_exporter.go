package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/edudesk/edudesk-api/internal/models"
)

// SlipExporter renders a substitution decision into a printable PDF slip for
// the staff room notice board.
type SlipExporter struct{}

// NewSlipExporter constructs a slip exporter.
func NewSlipExporter() *SlipExporter {
	return &SlipExporter{}
}

// Render produces the PDF bytes for one substitution result.
func (e *SlipExporter) Render(result models.SubstitutionResult) ([]byte, error) {
	if result.AbsentFaculty == nil || result.BestMatch.Faculty == nil {
		return nil, fmt.Errorf("slip requires absent faculty and best match")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "SUBSTITUTION SLIP", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Date: %s    Period: %d", result.Date, result.Period), "", 1, "", false, 0, "")
	pdf.Ln(2)

	writeRow := func(label, value string) {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(55, 8, label, "1", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(125, 8, value, "1", 1, "", false, 0, "")
	}

	absent := result.AbsentFaculty
	best := result.BestMatch.Faculty
	writeRow("Absent faculty", fmt.Sprintf("%s (%s)", absent.Name, absent.Subject))
	writeRow("Substitute", fmt.Sprintf("%s (%s)", best.Name, best.Subject))
	writeRow("Compatibility score", fmt.Sprintf("%d / 100", result.BestMatch.MatchScore))
	if len(result.MatchDetails.ClassOverlap) > 0 {
		writeRow("Shared classes", strings.Join(result.MatchDetails.ClassOverlap, ", "))
	}
	names := make([]string, 0, len(result.AlternativeMatches))
	for _, alt := range result.AlternativeMatches {
		// Client-supplied payloads can carry alternatives without a faculty
		// record; those are unprintable, not fatal.
		if alt.Faculty == nil {
			continue
		}
		names = append(names, fmt.Sprintf("%s (%d)", alt.Faculty.Name, alt.MatchScore))
	}
	if len(names) > 0 {
		writeRow("Alternatives", strings.Join(names, "; "))
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 10)
	pdf.MultiCell(0, 6, result.Reasoning, "", "", false)

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render slip pdf: %w", err)
	}
	return buf.Bytes(), nil
}
