package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/edudesk/edudesk-api/internal/dto"
	"github.com/edudesk/edudesk-api/internal/models"
	"github.com/edudesk/edudesk-api/internal/reasoning"
	appErrors "github.com/edudesk/edudesk-api/pkg/errors"
)

// Scoring weights. They sum to exactly 100; same-subject and related-subject
// are mutually exclusive, so a score can never exceed 100.
const (
	weightSameSubject     = 40
	weightRelatedSubject  = 20
	weightClassOverlap    = 15
	weightExperience      = 10
	weightWorkload        = 10
	weightPreferredPeriod = 10
	weightSpecialization  = 15
)

// experienceMatchThreshold bounds |Δexperience| for the MatchDetails flag.
const experienceMatchThreshold = 5

// relatedSubjectGroups is the fixed, closed set of partially compatible
// subjects. Membership is symmetric: two subjects are related when both
// appear in the same group.
var relatedSubjectGroups = [][]string{
	{"Science", "Mathematics"},
	{"English", "Hindi", "Library"},
	{"Social Science", "Library"},
	{"Computer Science", "Mathematics"},
}

type facultyCommitter interface {
	IncrementSubstitutions(ctx context.Context, facultyID string) error
}

// DecisionSink receives produced recommendations for advisory audit logging.
// Implementations must not block the request path.
type DecisionSink interface {
	Record(log models.DecisionLog)
}

// MatchingService selects the best available substitute for an absent faculty
// member. Matching reads the roster snapshot and never writes it; booking is
// the separate CommitAssignment operation.
type MatchingService struct {
	reasoner  reasoning.Provider
	faculty   facultyCommitter
	decisions DecisionSink
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMatchingService wires the engine. Reasoner, committer, sink and metrics
// are all optional: without a reasoner every explanation is the deterministic
// fallback, without a committer CommitAssignment is unavailable.
func NewMatchingService(
	reasoner reasoning.Provider,
	faculty facultyCommitter,
	decisions DecisionSink,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
) *MatchingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchingService{
		reasoner:  reasoner,
		faculty:   faculty,
		decisions: decisions,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// Generate validates the request payload and runs the matching pipeline.
func (s *MatchingService) Generate(ctx context.Context, roster []*models.FacultyRecord, req dto.GenerateSubstitutionRequest) (*models.SubstitutionResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid substitution payload")
	}
	date, err := time.Parse(models.DateLayout, req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be formatted YYYY-MM-DD")
	}
	return s.GenerateSubstitution(ctx, roster, models.SubstitutionRequest{
		AbsentFacultyID: req.AbsentFacultyID,
		Date:            date,
		Period:          req.Period,
	})
}

// GenerateSubstitution runs the full pipeline for one request: resolve the
// absentee, filter eligible candidates, score, rank, explain. The roster is an
// immutable snapshot owned by the caller; no reference outlives the call.
func (s *MatchingService) GenerateSubstitution(ctx context.Context, roster []*models.FacultyRecord, req models.SubstitutionRequest) (*models.SubstitutionResult, error) {
	absent, found := lo.Find(roster, func(f *models.FacultyRecord) bool {
		return f.ID == req.AbsentFacultyID
	})
	if !found {
		s.observeMatch("not_found")
		return nil, appErrors.Clone(appErrors.ErrFacultyNotFound, "absent faculty "+req.AbsentFacultyID+" not found in roster")
	}

	eligible := filterEligible(roster, req)
	if len(eligible) == 0 {
		s.observeMatch("no_candidates")
		return nil, appErrors.Clone(appErrors.ErrNoCandidates, "no substitute available for the requested slot")
	}

	ranked := rankCandidates(absent, eligible, req.Period)
	best := ranked[0]
	alternatives := ranked[1:min(len(ranked), 3)]
	details := buildMatchDetails(absent, best.Faculty, req.Period)

	result := &models.SubstitutionResult{
		ID:                 uuid.NewString(),
		AbsentFaculty:      absent,
		BestMatch:          best,
		AlternativeMatches: alternatives,
		Reasoning:          s.explain(ctx, absent, best, details),
		MatchDetails:       details,
		Date:               req.Date.Format(models.DateLayout),
		Period:             req.Period,
	}

	if s.decisions != nil {
		s.decisions.Record(models.DecisionLog{
			ID:              result.ID,
			AbsentFacultyID: absent.ID,
			BestMatchID:     best.Faculty.ID,
			MatchScore:      best.MatchScore,
			Date:            result.Date,
			Period:          result.Period,
			CreatedAt:       time.Now().UTC(),
		})
	}

	s.observeMatch("ok")
	s.logger.Info("substitution generated",
		zap.String("absent", absent.ID),
		zap.String("best_match", best.Faculty.ID),
		zap.Int("score", best.MatchScore),
		zap.Int("alternatives", len(alternatives)),
	)
	return result, nil
}

// CommitAssignment books an accepted recommendation by bumping the weekly
// substitution counter. Explicitly separated from matching so repeated
// recommendations never mutate workload state on their own.
func (s *MatchingService) CommitAssignment(ctx context.Context, facultyID string) error {
	if facultyID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "facultyId is required")
	}
	if s.faculty == nil {
		return appErrors.Clone(appErrors.ErrInternal, "roster store unavailable")
	}
	if err := s.faculty.IncrementSubstitutions(ctx, facultyID); err != nil {
		return err
	}
	s.logger.Info("substitution committed", zap.String("faculty", facultyID))
	return nil
}

func (s *MatchingService) explain(ctx context.Context, absent *models.FacultyRecord, best models.ScoredCandidate, details models.MatchDetails) string {
	payload := reasoning.Payload{
		Absent:    absent,
		Candidate: best.Faculty,
		Score:     best.MatchScore,
		Details:   details,
	}
	if s.reasoner != nil {
		text, err := s.reasoner.Explain(ctx, payload)
		if err == nil {
			return text
		}
		// Recovered failure: the caller never sees reasoning errors.
		s.logger.Warn("explanation service failed, using fallback", zap.Error(err))
		if s.metrics != nil {
			s.metrics.ObserveReasoningFallback()
		}
	}
	return reasoning.BuildFallback(payload)
}

func (s *MatchingService) observeMatch(outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveMatchRequest(outcome)
	}
}

// filterEligible keeps candidates that are not the absentee, are marked free
// for the requested slot (missing entries count as busy), and still have
// weekly substitution capacity.
func filterEligible(roster []*models.FacultyRecord, req models.SubstitutionRequest) []*models.FacultyRecord {
	return lo.Filter(roster, func(f *models.FacultyRecord, _ int) bool {
		if f.ID == req.AbsentFacultyID {
			return false
		}
		if !f.Availability.IsFree(req.Date, req.Period) {
			return false
		}
		return f.CurrentSubstitutions < f.MaxSubstitutionsPerWeek
	})
}

// rankCandidates scores every eligible candidate and sorts descending. The
// sort is stable: equal scores keep their eligibility-filter order, which
// decides who is best between two identical candidates.
func rankCandidates(absent *models.FacultyRecord, eligible []*models.FacultyRecord, period int) []models.ScoredCandidate {
	ranked := lo.Map(eligible, func(f *models.FacultyRecord, _ int) models.ScoredCandidate {
		return models.ScoredCandidate{Faculty: f, MatchScore: scoreCandidate(absent, f, period)}
	})
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchScore > ranked[j].MatchScore
	})
	return ranked
}

// scoreCandidate computes the 0-100 weighted compatibility score. Pure.
// Rounding is math.Round, half away from zero.
func scoreCandidate(absent, candidate *models.FacultyRecord, period int) int {
	score := 0.0

	if candidate.Subject == absent.Subject {
		score += weightSameSubject
	} else if subjectsRelated(candidate.Subject, absent.Subject) {
		score += weightRelatedSubject
	}

	if len(absent.Classes) > 0 {
		overlap := lo.Intersect(absent.Classes, candidate.Classes)
		score += weightClassOverlap * float64(len(overlap)) / float64(len(absent.Classes))
	}

	delta := math.Abs(float64(candidate.Experience - absent.Experience))
	score += weightExperience * math.Max(0, 1-delta/20)

	if candidate.MaxSubstitutionsPerWeek > 0 {
		score += weightWorkload * float64(candidate.RemainingCapacity()) / float64(candidate.MaxSubstitutionsPerWeek)
	}

	if candidate.PrefersPeriod(period) {
		score += weightPreferredPeriod
	}

	if candidate.Specialization != "" && candidate.Specialization == absent.Specialization {
		score += weightSpecialization
	}

	return int(math.Round(score))
}

// buildMatchDetails derives the structured explanation flags for the top
// pick, using the same predicates as the scorer.
func buildMatchDetails(absent, candidate *models.FacultyRecord, period int) models.MatchDetails {
	sameSubject := candidate.Subject == absent.Subject
	return models.MatchDetails{
		SameSubject:     sameSubject,
		RelatedSubject:  !sameSubject && subjectsRelated(candidate.Subject, absent.Subject),
		ClassOverlap:    lo.Intersect(absent.Classes, candidate.Classes),
		ExperienceMatch: abs(candidate.Experience-absent.Experience) <= experienceMatchThreshold,
		PreferredPeriod: candidate.PrefersPeriod(period),
	}
}

func subjectsRelated(a, b string) bool {
	for _, group := range relatedSubjectGroups {
		if lo.Contains(group, a) && lo.Contains(group, b) {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
