package assessment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// EventPublisher emits integration events after an assessment is stored.
type EventPublisher interface {
	Publish(ctx context.Context, key string, payload any) error
}

// Notifier is told about assessments that landed in the danger band.
type Notifier interface {
	NotifyHighRisk(ctx context.Context, rec AnalysisRecord, res Result) error
}

// Recorder collects service metrics.
type Recorder interface {
	AssessmentCompleted(level string, factors []string, elapsed time.Duration)
	ValidationFailed(field string)
}

// CompletedEvent is published once per stored assessment.
type CompletedEvent struct {
	RecordID   uuid.UUID    `json:"record_id"`
	Scores     RiskScoreSet `json:"scores"`
	Factors    []RiskFactor `json:"factors"`
	Level      RiskLevel    `json:"risk_level"`
	OccurredAt time.Time    `json:"occurred_at"`
}

type Service interface {
	Analyze(ctx context.Context, raw map[string]any) (*Result, error)
	Get(ctx context.Context, id uuid.UUID) (*AnalysisRecord, error)
}

type Option func(*service)

// WithDelay pauses before scoring to simulate processing time.
func WithDelay(d time.Duration) Option {
	return func(s *service) { s.delay = d }
}

func WithPublisher(p EventPublisher) Option {
	return func(s *service) { s.publisher = p }
}

func WithNotifier(n Notifier) Option {
	return func(s *service) { s.notifier = n }
}

func WithRecorder(r Recorder) Option {
	return func(s *service) { s.recorder = r }
}

type service struct {
	repo      Repository
	logger    *slog.Logger
	delay     time.Duration
	publisher EventPublisher
	notifier  Notifier
	recorder  Recorder
	now       func() time.Time
}

func NewService(repo Repository, logger *slog.Logger, opts ...Option) Service {
	s := &service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Analyze(ctx context.Context, raw map[string]any) (*Result, error) {
	start := s.now()

	// 1. Validate
	in, err := Normalize(raw)
	if err != nil {
		var verr *ValidationError
		if s.recorder != nil && errors.As(err, &verr) {
			s.recorder.ValidationFailed(verr.Field)
		}
		return nil, err
	}

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	// 2. Score and advise
	scores, factors := Score(in)
	res := &Result{
		ID:              uuid.New(),
		Scores:          scores,
		Factors:         factors.List(),
		Recommendations: Recommend(factors),
		Level:           LevelFor(scores.Metabolic),
	}

	// 3. Persist
	rec := AnalysisRecord{
		ID:                res.ID,
		Name:              in.Name,
		Age:               in.Age,
		BMI:               in.BMI,
		SystolicBP:        in.SystolicBP,
		BloodSugar:        in.BloodSugar,
		IsSmoker:          in.IsSmoker,
		MetabolicScore:    scores.Metabolic,
		HypertensionScore: scores.Hypertension,
		DiabetesScore:     scores.Diabetes,
		CreatedAt:         s.now().UTC(),
	}
	if err := s.repo.Save(ctx, &rec); err != nil {
		return nil, err
	}

	if s.recorder != nil {
		names := make([]string, len(res.Factors))
		for i, f := range res.Factors {
			names[i] = string(f)
		}
		s.recorder.AssessmentCompleted(string(res.Level), names, s.now().Sub(start))
	}

	// 4. Side effects never fail the request
	if s.publisher != nil {
		evt := CompletedEvent{
			RecordID:   rec.ID,
			Scores:     res.Scores,
			Factors:    res.Factors,
			Level:      res.Level,
			OccurredAt: rec.CreatedAt,
		}
		if err := s.publisher.Publish(ctx, rec.ID.String(), evt); err != nil {
			s.logger.Warn("failed to publish assessment event", "record_id", rec.ID, "error", err)
		}
	}

	if s.notifier != nil && res.Level == LevelDanger {
		go func(rec AnalysisRecord, res Result) {
			bgCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.notifier.NotifyHighRisk(bgCtx, rec, res); err != nil {
				s.logger.Error("high-risk notification failed", "record_id", rec.ID, "error", err)
			}
		}(rec, *res)
	}

	return res, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*AnalysisRecord, error) {
	return s.repo.GetByID(ctx, id)
}
