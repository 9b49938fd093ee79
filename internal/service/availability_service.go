package service

import (
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/edudesk/edudesk-api/internal/models"
)

// availabilityWindowDays is the rolling window the generator populates,
// counted from today inclusive.
const availabilityWindowDays = 30

// RandSource is the injectable randomness behind availability synthesis.
// Tests supply deterministic sequences. Implementations must be safe for
// concurrent use: one service instance serves every handler.
type RandSource interface {
	Float64() float64
}

// lockedSource serializes access to a *rand.Rand, which is not safe for
// concurrent use on its own.
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// AvailabilityService synthesizes per-date, per-period availability tables.
// Impure by contract: production uses ambient randomness, so two calls with
// the same rate produce different tables.
type AvailabilityService struct {
	rng    RandSource
	now    func() time.Time
	logger *zap.Logger
}

// NewAvailabilityService wires the generator. A nil source gets a time-seeded,
// mutex-guarded math/rand fallback; a nil clock defaults to time.Now.
func NewAvailabilityService(rng RandSource, now func() time.Time, logger *zap.Logger) *AvailabilityService {
	if rng == nil {
		rng = &lockedSource{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{rng: rng, now: now, logger: logger}
}

// Generate returns a table covering exactly availabilityWindowDays consecutive
// calendar dates starting today, with all PeriodsPerDay periods populated.
// Each cell is independently free with probability rate.
func (s *AvailabilityService) Generate(rate float64) models.AvailabilityTable {
	table := make(models.AvailabilityTable, availabilityWindowDays)
	start := s.now()
	for day := 0; day < availabilityWindowDays; day++ {
		date := start.AddDate(0, 0, day).Format(models.DateLayout)
		periods := make(map[int]bool, models.PeriodsPerDay)
		for period := 1; period <= models.PeriodsPerDay; period++ {
			periods[period] = s.rng.Float64() < rate
		}
		table[date] = periods
	}
	return table
}

// PopulateRoster attaches a freshly generated table to every roster record.
func (s *AvailabilityService) PopulateRoster(roster []*models.FacultyRecord, rate float64) {
	for _, faculty := range roster {
		faculty.Availability = s.Generate(rate)
	}
	s.logger.Debug("availability tables regenerated",
		zap.Int("faculty", len(roster)),
		zap.Float64("rate", rate),
	)
}
