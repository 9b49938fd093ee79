package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edudesk/edudesk-api/internal/models"
)

type generatorStub struct {
	table   models.AvailabilityTable
	gotRate float64
}

func (g *generatorStub) Generate(rate float64) models.AvailabilityTable {
	g.gotRate = rate
	return g.table
}

func newAvailabilityRouter(h *AvailabilityHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/availability/regenerate", h.Regenerate)
	return router
}

func TestAvailabilityHandlerRegenerate(t *testing.T) {
	stub := &generatorStub{table: models.AvailabilityTable{
		"2026-09-07": {1: true, 2: false},
	}}
	h := NewAvailabilityHandler(stub)

	w := postJSON(t, newAvailabilityRouter(h), "/availability/regenerate", gin.H{"rate": 0.5})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.5, stub.gotRate)

	var envelope struct {
		Data models.AvailabilityTable `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Data["2026-09-07"][1])
	assert.False(t, envelope.Data["2026-09-07"][2])
}

func TestAvailabilityHandlerRegenerateRejectsRateOutOfRange(t *testing.T) {
	h := NewAvailabilityHandler(&generatorStub{})
	router := newAvailabilityRouter(h)

	for _, rate := range []float64{0, 1, 1.5, -0.2} {
		w := postJSON(t, router, "/availability/regenerate", gin.H{"rate": rate})
		assert.Equal(t, http.StatusBadRequest, w.Code, "rate %v should be rejected", rate)
	}
}
