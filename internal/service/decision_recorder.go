package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/edudesk/edudesk-api/internal/models"
	"github.com/edudesk/edudesk-api/pkg/jobs"
)

const decisionJobType = "decision_log"

type decisionLogInserter interface {
	Insert(ctx context.Context, log models.DecisionLog) error
}

// DecisionRecorder pushes produced recommendations onto a background queue so
// the audit trail never slows down or fails a matching request.
type DecisionRecorder struct {
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewDecisionRecorder builds the queue-backed sink. The worker handler is
// created separately via NewDecisionLogHandler and owns the actual insert.
func NewDecisionRecorder(queue *jobs.Queue, logger *zap.Logger) *DecisionRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DecisionRecorder{queue: queue, logger: logger}
}

// Record enqueues the log entry. Enqueue failures are logged and dropped: the
// audit trail is advisory.
func (r *DecisionRecorder) Record(log models.DecisionLog) {
	if r == nil || r.queue == nil {
		return
	}
	err := r.queue.Enqueue(jobs.Job{
		ID:      log.ID,
		Type:    decisionJobType,
		Payload: log,
	})
	if err != nil {
		r.logger.Warn("failed to enqueue decision log", zap.String("id", log.ID), zap.Error(err))
	}
}

// NewDecisionLogHandler returns the queue handler persisting decision logs.
func NewDecisionLogHandler(repo decisionLogInserter) jobs.Handler {
	return func(ctx context.Context, job jobs.Job) error {
		log, ok := job.Payload.(models.DecisionLog)
		if !ok {
			return fmt.Errorf("unexpected payload type for job %s", job.ID)
		}
		return repo.Insert(ctx, log)
	}
}
