package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edudesk/edudesk-api/internal/models"
	appErrors "github.com/edudesk/edudesk-api/pkg/errors"
	"github.com/edudesk/edudesk-api/pkg/response"
)

type decisionLister interface {
	ListRecent(ctx context.Context, limit int) ([]models.DecisionLog, error)
}

// DecisionHandler serves the recommendation audit trail.
type DecisionHandler struct {
	decisions decisionLister
}

// NewDecisionHandler constructs the handler.
func NewDecisionHandler(decisions decisionLister) *DecisionHandler {
	return &DecisionHandler{decisions: decisions}
}

// Recent godoc
// @Summary Latest produced recommendations
// @Tags Decisions
// @Produce json
// @Param limit query int false "Maximum entries (default 20, cap 100)"
// @Success 200 {object} response.Envelope
// @Router /decisions [get]
func (h *DecisionHandler) Recent(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "limit must be an integer"))
			return
		}
		limit = parsed
	}

	logs, err := h.decisions.ListRecent(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load decision logs"))
		return
	}
	response.JSON(c, http.StatusOK, logs, nil)
}
