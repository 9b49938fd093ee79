package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/edudesk/edudesk-api/internal/dto"
	"github.com/edudesk/edudesk-api/internal/models"
	appErrors "github.com/edudesk/edudesk-api/pkg/errors"
	"github.com/edudesk/edudesk-api/pkg/response"
)

type facultyStore interface {
	List(ctx context.Context) ([]*models.FacultyRecord, error)
	FindByID(ctx context.Context, id string) (*models.FacultyRecord, error)
	Create(ctx context.Context, faculty *models.FacultyRecord) error
	ResetWeeklyCounters(ctx context.Context) error
}

// FacultyHandler exposes roster management for the administration dashboard.
type FacultyHandler struct {
	store    facultyStore
	validate *validator.Validate
}

// NewFacultyHandler constructs the handler.
func NewFacultyHandler(store facultyStore, validate *validator.Validate) *FacultyHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &FacultyHandler{store: store, validate: validate}
}

// List godoc
// @Summary Full faculty roster
// @Tags Faculty
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /faculty [get]
func (h *FacultyHandler) List(c *gin.Context) {
	roster, err := h.store.List(c.Request.Context())
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster"))
		return
	}
	response.JSON(c, http.StatusOK, roster, nil)
}

// Get godoc
// @Summary One roster entry
// @Tags Faculty
// @Produce json
// @Param id path string true "Faculty id"
// @Success 200 {object} response.Envelope
// @Router /faculty/{id} [get]
func (h *FacultyHandler) Get(c *gin.Context) {
	faculty, err := h.store.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faculty, nil)
}

// Create godoc
// @Summary Add a staff member to the roster
// @Tags Faculty
// @Accept json
// @Produce json
// @Param payload body dto.CreateFacultyRequest true "Faculty member"
// @Success 201 {object} response.Envelope
// @Router /faculty [post]
func (h *FacultyHandler) Create(c *gin.Context) {
	var req dto.CreateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid faculty payload"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid faculty payload"))
		return
	}

	faculty := &models.FacultyRecord{
		Name:                    req.Name,
		Subject:                 req.Subject,
		Specialization:          req.Specialization,
		Classes:                 req.Classes,
		Experience:              req.Experience,
		Qualifications:          req.Qualifications,
		PreferredPeriods:        req.PreferredPeriods,
		MaxSubstitutionsPerWeek: req.MaxSubstitutionsPerWeek,
	}
	if err := h.store.Create(c.Request.Context(), faculty); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create faculty"))
		return
	}
	response.Created(c, faculty)
}

// ResetWeek godoc
// @Summary Zero every weekly substitution counter
// @Description Run at the week boundary so capacity filtering starts fresh.
// @Tags Faculty
// @Success 204
// @Router /faculty/reset-week [post]
func (h *FacultyHandler) ResetWeek(c *gin.Context) {
	if err := h.store.ResetWeeklyCounters(c.Request.Context()); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset weekly counters"))
		return
	}
	response.NoContent(c)
}
