package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/edudesk/edudesk-api/internal/models"
	appErrors "github.com/edudesk/edudesk-api/pkg/errors"
)

// FacultyRepository manages persistence for the faculty roster.
type FacultyRepository struct {
	db *sqlx.DB
}

// NewFacultyRepository constructs a FacultyRepository.
func NewFacultyRepository(db *sqlx.DB) *FacultyRepository {
	return &FacultyRepository{db: db}
}

type facultyRow struct {
	ID                      string         `db:"id"`
	Name                    string         `db:"name"`
	Subject                 string         `db:"subject"`
	Specialization          sql.NullString `db:"specialization"`
	Classes                 pq.StringArray `db:"classes"`
	Experience              int            `db:"experience"`
	Qualifications          pq.StringArray `db:"qualifications"`
	PreferredPeriods        pq.Int64Array  `db:"preferred_periods"`
	MaxSubstitutionsPerWeek int            `db:"max_substitutions_per_week"`
	CurrentSubstitutions    int            `db:"current_substitutions"`
}

func (r facultyRow) toModel() *models.FacultyRecord {
	preferred := make([]int, 0, len(r.PreferredPeriods))
	for _, p := range r.PreferredPeriods {
		preferred = append(preferred, int(p))
	}
	return &models.FacultyRecord{
		ID:                      r.ID,
		Name:                    r.Name,
		Subject:                 r.Subject,
		Specialization:          r.Specialization.String,
		Classes:                 []string(r.Classes),
		Experience:              r.Experience,
		Qualifications:          []string(r.Qualifications),
		PreferredPeriods:        preferred,
		MaxSubstitutionsPerWeek: r.MaxSubstitutionsPerWeek,
		CurrentSubstitutions:    r.CurrentSubstitutions,
	}
}

const facultyColumns = "id, name, subject, specialization, classes, experience, qualifications, preferred_periods, max_substitutions_per_week, current_substitutions"

// List returns the full roster. Availability tables are not persisted; the
// availability generator attaches them after loading.
func (r *FacultyRepository) List(ctx context.Context) ([]*models.FacultyRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM faculty ORDER BY name ASC", facultyColumns)
	var rows []facultyRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list faculty: %w", err)
	}
	roster := make([]*models.FacultyRecord, 0, len(rows))
	for _, row := range rows {
		roster = append(roster, row.toModel())
	}
	return roster, nil
}

// FindByID returns one roster entry.
func (r *FacultyRepository) FindByID(ctx context.Context, id string) (*models.FacultyRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM faculty WHERE id = $1", facultyColumns)
	var row facultyRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrFacultyNotFound, "")
		}
		return nil, fmt.Errorf("find faculty %s: %w", id, err)
	}
	return row.toModel(), nil
}

// Create inserts a roster entry, assigning an id when absent.
func (r *FacultyRepository) Create(ctx context.Context, faculty *models.FacultyRecord) error {
	if faculty.ID == "" {
		faculty.ID = uuid.NewString()
	}
	preferred := make(pq.Int64Array, 0, len(faculty.PreferredPeriods))
	for _, p := range faculty.PreferredPeriods {
		preferred = append(preferred, int64(p))
	}
	query := `INSERT INTO faculty (id, name, subject, specialization, classes, experience, qualifications, preferred_periods, max_substitutions_per_week, current_substitutions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query,
		faculty.ID,
		faculty.Name,
		faculty.Subject,
		nullableString(faculty.Specialization),
		pq.StringArray(faculty.Classes),
		faculty.Experience,
		pq.StringArray(faculty.Qualifications),
		preferred,
		faculty.MaxSubstitutionsPerWeek,
		faculty.CurrentSubstitutions,
	)
	if err != nil {
		return fmt.Errorf("create faculty: %w", err)
	}
	return nil
}

// IncrementSubstitutions bumps the weekly counter for a committed booking.
// The guard keeps the counter below the per-week capacity; a commit past
// capacity is a conflict, a commit for an unknown id is not found.
func (r *FacultyRepository) IncrementSubstitutions(ctx context.Context, facultyID string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE faculty SET current_substitutions = current_substitutions + 1 WHERE id = $1 AND current_substitutions < max_substitutions_per_week",
		facultyID,
	)
	if err != nil {
		return fmt.Errorf("increment substitutions: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment substitutions: %w", err)
	}
	if affected == 0 {
		var exists bool
		if err := r.db.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM faculty WHERE id = $1)", facultyID); err != nil {
			return fmt.Errorf("increment substitutions: %w", err)
		}
		if !exists {
			return appErrors.Clone(appErrors.ErrFacultyNotFound, "")
		}
		return appErrors.Clone(appErrors.ErrConflict, "faculty member is at weekly substitution capacity")
	}
	return nil
}

// ResetWeeklyCounters zeroes every counter, typically at the week boundary.
func (r *FacultyRepository) ResetWeeklyCounters(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE faculty SET current_substitutions = 0"); err != nil {
		return fmt.Errorf("reset weekly counters: %w", err)
	}
	return nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
