package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edudesk/edudesk-api/internal/models"
)

// DecisionLogRepository persists the advisory recommendation audit trail.
type DecisionLogRepository struct {
	db *sqlx.DB
}

// NewDecisionLogRepository constructs a DecisionLogRepository.
func NewDecisionLogRepository(db *sqlx.DB) *DecisionLogRepository {
	return &DecisionLogRepository{db: db}
}

// Insert stores one produced recommendation.
func (r *DecisionLogRepository) Insert(ctx context.Context, log models.DecisionLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO decision_logs (id, absent_faculty_id, best_match_id, match_score, date, period, created_at)
		VALUES (:id, :absent_faculty_id, :best_match_id, :match_score, :date, :period, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("insert decision log: %w", err)
	}
	return nil
}

// ListRecent returns the latest recommendations for dashboard display.
func (r *DecisionLogRepository) ListRecent(ctx context.Context, limit int) ([]models.DecisionLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query := fmt.Sprintf("SELECT id, absent_faculty_id, best_match_id, match_score, date, period, created_at FROM decision_logs ORDER BY created_at DESC LIMIT %d", limit)
	var logs []models.DecisionLog
	if err := r.db.SelectContext(ctx, &logs, query); err != nil {
		return nil, fmt.Errorf("list decision logs: %w", err)
	}
	return logs, nil
}
