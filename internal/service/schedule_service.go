package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/edudesk/edudesk-api/internal/models"
)

// ScheduleService derives the day's teaching slots from the roster. The
// placement rule is fixed and collision-unaware: it can put two faculty
// members on the same class and period, and nothing here detects that. The
// output is advisory, for calendar display only.
type ScheduleService struct {
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewScheduleService wires the builder. The Redis client is optional; without
// it every call rebuilds from the roster.
func NewScheduleService(cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *ScheduleService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// BuildDay emits two entries per class taught: class index i lands on periods
// (i mod 4)+1 and ((i+2) mod 4)+5. Exactly 2×Σ|classes| entries per call.
// No ordering guarantee across faculty; grouping is the caller's concern.
func (s *ScheduleService) BuildDay(roster []*models.FacultyRecord, date time.Time) []models.ScheduleEntry {
	var entries []models.ScheduleEntry
	for _, faculty := range roster {
		for i, class := range faculty.Classes {
			p1 := (i % 4) + 1
			p2 := ((i + 2) % 4) + 5
			for _, period := range []int{p1, p2} {
				entries = append(entries, models.ScheduleEntry{
					ClassName:   class,
					Subject:     faculty.Subject,
					FacultyID:   faculty.ID,
					FacultyName: faculty.Name,
					Period:      period,
					IsAvailable: faculty.Availability.IsFree(date, period),
				})
			}
		}
	}
	return entries
}

// DaySchedule returns the derived schedule for the date, serving from cache
// when possible. Cache failures degrade to a rebuild, never to an error.
func (s *ScheduleService) DaySchedule(ctx context.Context, roster []*models.FacultyRecord, date time.Time) []models.ScheduleEntry {
	key := "schedule:day:" + date.Format(models.DateLayout)

	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key).Bytes()
		if err == nil {
			var cached []models.ScheduleEntry
			if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
				return cached
			}
		} else if err != redis.Nil {
			s.logger.Warn("schedule cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	entries := s.BuildDay(roster, date)

	if s.cache != nil {
		if raw, err := json.Marshal(entries); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("schedule cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}

	return entries
}
