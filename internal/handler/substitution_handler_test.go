package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edudesk/edudesk-api/internal/dto"
	"github.com/edudesk/edudesk-api/internal/models"
	"github.com/edudesk/edudesk-api/internal/service"
	"github.com/edudesk/edudesk-api/pkg/export"
	appErrors "github.com/edudesk/edudesk-api/pkg/errors"
)

type engineStub struct {
	result    *models.SubstitutionResult
	err       error
	commitErr error

	gotRoster []*models.FacultyRecord
	gotReq    dto.GenerateSubstitutionRequest
	committed string
}

func (e *engineStub) Generate(_ context.Context, roster []*models.FacultyRecord, req dto.GenerateSubstitutionRequest) (*models.SubstitutionResult, error) {
	e.gotRoster = roster
	e.gotReq = req
	return e.result, e.err
}

func (e *engineStub) CommitAssignment(_ context.Context, facultyID string) error {
	e.committed = facultyID
	return e.commitErr
}

type rosterStub struct {
	roster []*models.FacultyRecord
	err    error
}

func (r *rosterStub) List(context.Context) ([]*models.FacultyRecord, error) {
	return r.roster, r.err
}

type populatorStub struct {
	calls int
	rate  float64
}

func (p *populatorStub) PopulateRoster(roster []*models.FacultyRecord, rate float64) {
	p.calls++
	p.rate = rate
}

func newSubstitutionRouter(h *SubstitutionHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/substitutions/generate", h.Generate)
	router.POST("/substitutions/commit", h.Commit)
	router.POST("/substitutions/slip", h.Slip)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sampleResult() *models.SubstitutionResult {
	return &models.SubstitutionResult{
		ID:            "sub-1",
		AbsentFaculty: &models.FacultyRecord{ID: "f1", Name: "Dr. Verma"},
		BestMatch: models.ScoredCandidate{
			Faculty:    &models.FacultyRecord{ID: "f2", Name: "Ms. Iyer", Subject: "Science"},
			MatchScore: 89,
		},
		Reasoning: "Ms. Iyer is the recommended substitute.",
		Date:      "2026-09-07",
		Period:    3,
	}
}

func TestSubstitutionHandlerGenerate(t *testing.T) {
	engine := &engineStub{result: sampleResult()}
	roster := &rosterStub{roster: []*models.FacultyRecord{{ID: "f1"}, {ID: "f2"}}}
	populator := &populatorStub{}
	h := NewSubstitutionHandler(engine, roster, populator, export.NewSlipExporter(), 0.7)

	w := postJSON(t, newSubstitutionRouter(h), "/substitutions/generate", gin.H{
		"absentFacultyId": "f1",
		"date":            "2026-09-07",
		"period":          3,
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, populator.calls)
	assert.Equal(t, 0.7, populator.rate)
	assert.Len(t, engine.gotRoster, 2)
	assert.Equal(t, "f1", engine.gotReq.AbsentFacultyID)

	var envelope struct {
		Data models.SubstitutionResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "sub-1", envelope.Data.ID)
	assert.Equal(t, 89, envelope.Data.BestMatch.MatchScore)
}

func TestSubstitutionHandlerGenerateBadJSON(t *testing.T) {
	h := NewSubstitutionHandler(&engineStub{}, &rosterStub{}, &populatorStub{}, export.NewSlipExporter(), 0.7)
	router := newSubstitutionRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/substitutions/generate", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubstitutionHandlerGenerateRosterFailure(t *testing.T) {
	roster := &rosterStub{err: errors.New("connection refused")}
	h := NewSubstitutionHandler(&engineStub{}, roster, &populatorStub{}, export.NewSlipExporter(), 0.7)

	w := postJSON(t, newSubstitutionRouter(h), "/substitutions/generate", gin.H{
		"absentFacultyId": "f1",
		"date":            "2026-09-07",
		"period":          3,
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSubstitutionHandlerGenerateNotFound(t *testing.T) {
	engine := &engineStub{err: appErrors.Clone(appErrors.ErrFacultyNotFound, "")}
	h := NewSubstitutionHandler(engine, &rosterStub{}, &populatorStub{}, export.NewSlipExporter(), 0.7)

	w := postJSON(t, newSubstitutionRouter(h), "/substitutions/generate", gin.H{
		"absentFacultyId": "missing",
		"date":            "2026-09-07",
		"period":          3,
	})

	require.Equal(t, http.StatusNotFound, w.Code)

	var envelope struct {
		Error *appErrors.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrFacultyNotFound.Code, envelope.Error.Code)
}

func TestSubstitutionHandlerGenerateNoCandidates(t *testing.T) {
	engine := &engineStub{err: appErrors.Clone(appErrors.ErrNoCandidates, "")}
	h := NewSubstitutionHandler(engine, &rosterStub{}, &populatorStub{}, export.NewSlipExporter(), 0.7)

	w := postJSON(t, newSubstitutionRouter(h), "/substitutions/generate", gin.H{
		"absentFacultyId": "f1",
		"date":            "2026-09-07",
		"period":          3,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSubstitutionHandlerCommit(t *testing.T) {
	engine := &engineStub{}
	h := NewSubstitutionHandler(engine, &rosterStub{}, &populatorStub{}, export.NewSlipExporter(), 0.7)

	w := postJSON(t, newSubstitutionRouter(h), "/substitutions/commit", gin.H{"facultyId": "f2"})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "f2", engine.committed)
}

func TestSubstitutionHandlerCommitAtCapacity(t *testing.T) {
	engine := &engineStub{commitErr: appErrors.Clone(appErrors.ErrConflict, "faculty member is at weekly substitution capacity")}
	h := NewSubstitutionHandler(engine, &rosterStub{}, &populatorStub{}, export.NewSlipExporter(), 0.7)

	w := postJSON(t, newSubstitutionRouter(h), "/substitutions/commit", gin.H{"facultyId": "f2"})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSubstitutionHandlerCommitRequiresID(t *testing.T) {
	engine := service.NewMatchingService(nil, nil, nil, nil, nil, nil)
	h := NewSubstitutionHandler(engine, &rosterStub{}, &populatorStub{}, export.NewSlipExporter(), 0.7)

	w := postJSON(t, newSubstitutionRouter(h), "/substitutions/commit", gin.H{"facultyId": ""})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubstitutionHandlerSlip(t *testing.T) {
	h := NewSubstitutionHandler(&engineStub{}, &rosterStub{}, &populatorStub{}, export.NewSlipExporter(), 0.7)

	w := postJSON(t, newSubstitutionRouter(h), "/substitutions/slip", gin.H{"result": sampleResult()})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "substitution-slip.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestSubstitutionHandlerSlipToleratesPartialAlternatives(t *testing.T) {
	h := NewSubstitutionHandler(&engineStub{}, &rosterStub{}, &populatorStub{}, export.NewSlipExporter(), 0.7)

	result := sampleResult()
	result.AlternativeMatches = []models.ScoredCandidate{{MatchScore: 10}}
	w := postJSON(t, newSubstitutionRouter(h), "/substitutions/slip", gin.H{"result": result})

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestSubstitutionHandlerSlipRejectsEmptyResult(t *testing.T) {
	h := NewSubstitutionHandler(&engineStub{}, &rosterStub{}, &populatorStub{}, export.NewSlipExporter(), 0.7)

	w := postJSON(t, newSubstitutionRouter(h), "/substitutions/slip", gin.H{"result": models.SubstitutionResult{}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
