package dashboard

import (
	"context"
	"fmt"

	"health-risk-analyzer/internal/assessment"
)

// RecordSource is the read side of the assessment store.
type RecordSource interface {
	List(ctx context.Context) ([]assessment.AnalysisRecord, error)
	Count(ctx context.Context, f assessment.RecordFilter) (int, error)
}

type Service struct {
	records RecordSource
}

func NewService(records RecordSource) *Service {
	return &Service{records: records}
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	recs, err := s.records.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load records: %w", err)
	}
	return Aggregate(recs), nil
}

func (s *Service) Count(ctx context.Context, f assessment.RecordFilter) (int, error) {
	return s.records.Count(ctx, f)
}
