package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edudesk/edudesk-api/internal/dto"
	"github.com/edudesk/edudesk-api/internal/models"
	appErrors "github.com/edudesk/edudesk-api/pkg/errors"
	"github.com/edudesk/edudesk-api/pkg/response"
)

type availabilityGenerator interface {
	Generate(rate float64) models.AvailabilityTable
}

// AvailabilityHandler exposes availability table synthesis for previewing
// different availability rates in the dashboard.
type AvailabilityHandler struct {
	generator availabilityGenerator
}

// NewAvailabilityHandler constructs the handler.
func NewAvailabilityHandler(generator availabilityGenerator) *AvailabilityHandler {
	return &AvailabilityHandler{generator: generator}
}

// Regenerate godoc
// @Summary Synthesize a fresh availability table
// @Description Each of the 30×8 cells is independently free with the given probability. Unseeded randomness: results differ per call.
// @Tags Availability
// @Accept json
// @Produce json
// @Param payload body dto.RegenerateAvailabilityRequest true "Availability rate"
// @Success 200 {object} response.Envelope
// @Router /availability/regenerate [post]
func (h *AvailabilityHandler) Regenerate(c *gin.Context) {
	var req dto.RegenerateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid availability payload"))
		return
	}
	if req.Rate <= 0 || req.Rate >= 1 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "rate must be a probability in (0,1)"))
		return
	}
	response.JSON(c, http.StatusOK, h.generator.Generate(req.Rate), nil)
}
