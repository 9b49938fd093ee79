package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edudesk/edudesk-api/internal/models"
	"github.com/edudesk/edudesk-api/pkg/export"
	appErrors "github.com/edudesk/edudesk-api/pkg/errors"
	"github.com/edudesk/edudesk-api/pkg/response"
)

type dayScheduleBuilder interface {
	DaySchedule(ctx context.Context, roster []*models.FacultyRecord, date time.Time) []models.ScheduleEntry
}

// ScheduleHandler serves the derived day schedule for calendar display.
type ScheduleHandler struct {
	schedules    dayScheduleBuilder
	roster       rosterProvider
	availability availabilityPopulator
	csv          *export.CSVExporter
	rate         float64
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(schedules dayScheduleBuilder, roster rosterProvider, availability availabilityPopulator, csv *export.CSVExporter, rate float64) *ScheduleHandler {
	return &ScheduleHandler{
		schedules:    schedules,
		roster:       roster,
		availability: availability,
		csv:          csv,
		rate:         rate,
	}
}

// Day godoc
// @Summary Derived teaching slots for one date
// @Description Advisory placement only; the fixed period rule does not detect collisions.
// @Tags Schedule
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /schedule [get]
func (h *ScheduleHandler) Day(c *gin.Context) {
	date, err := parseDateQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	entries, err := h.buildDay(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// Export godoc
// @Summary Day schedule as CSV
// @Tags Schedule
// @Produce text/csv
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Router /schedule/export [get]
func (h *ScheduleHandler) Export(c *gin.Context) {
	date, err := parseDateQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	entries, err := h.buildDay(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}

	data := export.Dataset{
		Headers: []string{"class", "subject", "faculty", "period", "available"},
	}
	for _, entry := range entries {
		data.Rows = append(data.Rows, map[string]string{
			"class":     entry.ClassName,
			"subject":   entry.Subject,
			"faculty":   entry.FacultyName,
			"period":    fmt.Sprintf("%d", entry.Period),
			"available": fmt.Sprintf("%t", entry.IsAvailable),
		})
	}
	raw, err := h.csv.Render(data)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "could not render csv"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="schedule-%s.csv"`, date.Format(models.DateLayout)))
	c.Data(http.StatusOK, "text/csv", raw)
}

func (h *ScheduleHandler) buildDay(ctx context.Context, date time.Time) ([]models.ScheduleEntry, error) {
	roster, err := h.roster.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	if h.availability != nil {
		h.availability.PopulateRoster(roster, h.rate)
	}
	return h.schedules.DaySchedule(ctx, roster, date), nil
}

func parseDateQuery(c *gin.Context) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "date query parameter is required")
	}
	date, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "date must be formatted YYYY-MM-DD")
	}
	return date, nil
}
