package app

import (
	"context"
	"time"

	"fitmetrics/internal/domain"
	"fitmetrics/internal/importer"
	"fitmetrics/internal/metrics"
)

// WeightInput is a weight measurement as submitted by a user. Week may be
// left at zero to derive it from the plan.
type WeightInput struct {
	Date   time.Time
	Week   int
	Weight float64
	Unit   string
	Notes  string
}

// WeightService encapsulates weight-tracking use cases.
type WeightService struct {
	repo     domain.WeightRepository
	plans    *PlanService
	importer *importer.Importer
}

// NewWeightService creates a WeightService backed by the given repository.
// CSV uploads go through im.
func NewWeightService(repo domain.WeightRepository, plans *PlanService, im *importer.Importer) *WeightService {
	return &WeightService{repo: repo, plans: plans, importer: im}
}

func (s *WeightService) entry(ctx context.Context, userID int64, in WeightInput) (domain.WeightEntry, error) {
	if in.Unit == "" {
		in.Unit = domain.UnitKg
	}
	if err := validateWeight(in.Weight, in.Unit); err != nil {
		return domain.WeightEntry{}, err
	}
	date, err := requireDate(in.Date)
	if err != nil {
		return domain.WeightEntry{}, err
	}
	week, err := resolveWeek(ctx, s.plans, userID, date, in.Week)
	if err != nil {
		return domain.WeightEntry{}, err
	}
	return domain.WeightEntry{
		UserID: userID,
		Date:   date,
		Week:   week,
		Weight: in.Weight,
		Unit:   in.Unit,
		Notes:  in.Notes,
	}, nil
}

// Record validates and stores a new weight measurement.
func (s *WeightService) Record(ctx context.Context, userID int64, in WeightInput) (*domain.WeightEntry, error) {
	e, err := s.entry(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	e.CreatedAt = time.Now().UTC()
	id, err := s.repo.AddWeight(ctx, userID, e)
	if err != nil {
		return nil, err
	}
	e.ID = id
	return &e, nil
}

// Update replaces the fields of an existing measurement.
func (s *WeightService) Update(ctx context.Context, userID, id int64, in WeightInput) (*domain.WeightEntry, error) {
	e, err := s.entry(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	e.ID = id
	if err := s.repo.UpdateWeight(ctx, userID, e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete removes a measurement.
func (s *WeightService) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.DeleteWeight(ctx, userID, id)
}

// ListRecent returns the most recent measurements up to limit.
func (s *WeightService) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error) {
	return s.repo.RecentWeights(ctx, userID, limit)
}

// Weekly groups all of the user's measurements by plan week, newest week
// first, with values expressed in unit.
func (s *WeightService) Weekly(ctx context.Context, userID int64, unit string) ([]metrics.WeekBucket, error) {
	if !domain.ValidUnit(unit) {
		return nil, invalid("unit must be %q or %q", domain.UnitKg, domain.UnitLb)
	}
	entries, err := s.repo.ListWeights(ctx, userID, domain.DateRange{})
	if err != nil {
		return nil, err
	}
	return metrics.GroupByWeek(weightMetrics(entries, unit)), nil
}

// Import parses a CSV upload and stores its valid rows.
func (s *WeightService) Import(ctx context.Context, userID int64, raw string) (*importer.Result, error) {
	return s.importer.ImportWeights(ctx, userID, raw)
}

func weightMetrics(entries []domain.WeightEntry, unit string) []metrics.DatedMetric {
	out := make([]metrics.DatedMetric, len(entries))
	for i, e := range entries {
		out[i] = metrics.DatedMetric{
			Date:  e.Date,
			Value: metrics.RoundTo(domain.ConvertWeight(e.Weight, e.Unit, unit), 1),
			Week:  e.Week,
		}
	}
	return out
}
