package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edudesk/edudesk-api/internal/dto"
	"github.com/edudesk/edudesk-api/internal/models"
	"github.com/edudesk/edudesk-api/pkg/export"
	appErrors "github.com/edudesk/edudesk-api/pkg/errors"
	"github.com/edudesk/edudesk-api/pkg/response"
)

type substitutionEngine interface {
	Generate(ctx context.Context, roster []*models.FacultyRecord, req dto.GenerateSubstitutionRequest) (*models.SubstitutionResult, error)
	CommitAssignment(ctx context.Context, facultyID string) error
}

type rosterProvider interface {
	List(ctx context.Context) ([]*models.FacultyRecord, error)
}

type availabilityPopulator interface {
	PopulateRoster(roster []*models.FacultyRecord, rate float64)
}

// SubstitutionHandler exposes the matching engine endpoints. It owns the
// caller-side orchestration: load the roster snapshot, attach availability
// tables, hand the snapshot to the engine.
type SubstitutionHandler struct {
	engine       substitutionEngine
	roster       rosterProvider
	availability availabilityPopulator
	slips        *export.SlipExporter
	rate         float64
}

// NewSubstitutionHandler constructs the handler.
func NewSubstitutionHandler(engine substitutionEngine, roster rosterProvider, availability availabilityPopulator, slips *export.SlipExporter, rate float64) *SubstitutionHandler {
	return &SubstitutionHandler{
		engine:       engine,
		roster:       roster,
		availability: availability,
		slips:        slips,
		rate:         rate,
	}
}

// Generate godoc
// @Summary Recommend a substitute for an absent faculty member
// @Tags Substitutions
// @Accept json
// @Produce json
// @Param payload body dto.GenerateSubstitutionRequest true "Substitution request"
// @Success 200 {object} response.Envelope
// @Router /substitutions/generate [post]
func (h *SubstitutionHandler) Generate(c *gin.Context) {
	var req dto.GenerateSubstitutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid substitution payload"))
		return
	}

	roster, err := h.loadRoster(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.engine.Generate(c.Request.Context(), roster, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Commit godoc
// @Summary Book an accepted recommendation
// @Description Increments the candidate's weekly substitution counter. Matching alone never changes workload state.
// @Tags Substitutions
// @Accept json
// @Produce json
// @Param payload body dto.CommitAssignmentRequest true "Commit payload"
// @Success 204
// @Router /substitutions/commit [post]
func (h *SubstitutionHandler) Commit(c *gin.Context) {
	var req dto.CommitAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid commit payload"))
		return
	}
	if err := h.engine.CommitAssignment(c.Request.Context(), req.FacultyID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Slip godoc
// @Summary Render a substitution slip PDF
// @Tags Substitutions
// @Accept json
// @Produce application/pdf
// @Param payload body dto.SubstitutionSlipRequest true "Substitution result"
// @Success 200 {file} binary
// @Router /substitutions/slip [post]
func (h *SubstitutionHandler) Slip(c *gin.Context) {
	var req dto.SubstitutionSlipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid slip payload"))
		return
	}
	pdf, err := h.slips.Render(req.Result)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "could not render slip"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="substitution-slip.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *SubstitutionHandler) loadRoster(ctx context.Context) ([]*models.FacultyRecord, error) {
	roster, err := h.roster.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	if h.availability != nil {
		h.availability.PopulateRoster(roster, h.rate)
	}
	return roster, nil
}
