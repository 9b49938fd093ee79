package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edudesk/edudesk-api/internal/models"
	"github.com/edudesk/edudesk-api/pkg/jobs"
)

type insertSpy struct {
	mu   sync.Mutex
	logs []models.DecisionLog
	done chan struct{}
}

func (s *insertSpy) Insert(_ context.Context, log models.DecisionLog) error {
	s.mu.Lock()
	s.logs = append(s.logs, log)
	s.mu.Unlock()
	close(s.done)
	return nil
}

func TestDecisionRecorderPersistsThroughQueue(t *testing.T) {
	spy := &insertSpy{done: make(chan struct{})}
	queue := jobs.NewQueue("decisions", NewDecisionLogHandler(spy), jobs.QueueConfig{Workers: 1})
	queue.Start(context.Background())
	defer queue.Stop()

	recorder := NewDecisionRecorder(queue, nil)
	recorder.Record(models.DecisionLog{
		ID:              "d1",
		AbsentFacultyID: "f1",
		BestMatchID:     "f2",
		MatchScore:      89,
		Date:            "2026-09-07",
		Period:          3,
	})

	select {
	case <-spy.done:
	case <-time.After(2 * time.Second):
		t.Fatal("decision log was not persisted")
	}

	spy.mu.Lock()
	defer spy.mu.Unlock()
	require.Len(t, spy.logs, 1)
	assert.Equal(t, "d1", spy.logs[0].ID)
	assert.Equal(t, 89, spy.logs[0].MatchScore)
}

func TestDecisionRecorderDropsWhenQueueStopped(t *testing.T) {
	spy := &insertSpy{done: make(chan struct{})}
	queue := jobs.NewQueue("decisions", NewDecisionLogHandler(spy), jobs.QueueConfig{Workers: 1})

	// Never started: Record must not panic or block.
	recorder := NewDecisionRecorder(queue, nil)
	recorder.Record(models.DecisionLog{ID: "d1"})

	select {
	case <-spy.done:
		t.Fatal("nothing should have been persisted")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDecisionRecorderNilSafe(t *testing.T) {
	var recorder *DecisionRecorder
	recorder.Record(models.DecisionLog{ID: "d1"})
}
