package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edudesk/edudesk-api/internal/models"
	"github.com/edudesk/edudesk-api/pkg/export"
)

type scheduleBuilderStub struct {
	entries []models.ScheduleEntry
	gotDate time.Time
}

func (s *scheduleBuilderStub) DaySchedule(_ context.Context, _ []*models.FacultyRecord, date time.Time) []models.ScheduleEntry {
	s.gotDate = date
	return s.entries
}

func newScheduleRouter(h *ScheduleHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/schedule", h.Day)
	router.GET("/schedule/export", h.Export)
	return router
}

func scheduleEntries() []models.ScheduleEntry {
	return []models.ScheduleEntry{
		{ClassName: "6A", Subject: "Science", FacultyID: "f1", FacultyName: "Dr. Verma", Period: 1, IsAvailable: true},
		{ClassName: "6A", Subject: "Science", FacultyID: "f1", FacultyName: "Dr. Verma", Period: 7, IsAvailable: false},
	}
}

func TestScheduleHandlerDay(t *testing.T) {
	builder := &scheduleBuilderStub{entries: scheduleEntries()}
	h := NewScheduleHandler(builder, &rosterStub{roster: []*models.FacultyRecord{{ID: "f1"}}}, &populatorStub{}, export.NewCSVExporter(), 0.7)

	req := httptest.NewRequest(http.MethodGet, "/schedule?date=2026-09-07", nil)
	w := httptest.NewRecorder()
	newScheduleRouter(h).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2026-09-07", builder.gotDate.Format(models.DateLayout))

	var envelope struct {
		Data []models.ScheduleEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 2)
	assert.Equal(t, "6A", envelope.Data[0].ClassName)
}

func TestScheduleHandlerDayMissingDate(t *testing.T) {
	h := NewScheduleHandler(&scheduleBuilderStub{}, &rosterStub{}, &populatorStub{}, export.NewCSVExporter(), 0.7)

	req := httptest.NewRequest(http.MethodGet, "/schedule", nil)
	w := httptest.NewRecorder()
	newScheduleRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleHandlerDayBadDate(t *testing.T) {
	h := NewScheduleHandler(&scheduleBuilderStub{}, &rosterStub{}, &populatorStub{}, export.NewCSVExporter(), 0.7)

	req := httptest.NewRequest(http.MethodGet, "/schedule?date=07/09/2026", nil)
	w := httptest.NewRecorder()
	newScheduleRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleHandlerExport(t *testing.T) {
	builder := &scheduleBuilderStub{entries: scheduleEntries()}
	h := NewScheduleHandler(builder, &rosterStub{roster: []*models.FacultyRecord{{ID: "f1"}}}, &populatorStub{}, export.NewCSVExporter(), 0.7)

	req := httptest.NewRequest(http.MethodGet, "/schedule/export?date=2026-09-07", nil)
	w := httptest.NewRecorder()
	newScheduleRouter(h).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "schedule-2026-09-07.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "class,subject,faculty,period,available", lines[0])
	assert.Equal(t, "6A,Science,Dr. Verma,1,true", lines[1])
	assert.Equal(t, "6A,Science,Dr. Verma,7,false", lines[2])
}
