package analytics

import "context"

// Repository owns the derived tables. Only the rebuild jobs and the dev
// maintenance operations write through it.
type Repository interface {
	ListSurveys(ctx context.Context, eventID uint64) ([]SatisfactionSurvey, error)
	CreateSurvey(ctx context.Context, s *SatisfactionSurvey) error
	SaveSurvey(ctx context.Context, s *SatisfactionSurvey) error
	DeleteSurveys(ctx context.Context, ids []uint64) error

	ListHistory(ctx context.Context, f HistoryFilter) ([]ParticipationHistory, error)
	CreateHistory(ctx context.Context, h *ParticipationHistory) error
	SaveHistory(ctx context.Context, h *ParticipationHistory) error
	DeleteHistory(ctx context.Context, ids []uint64) error
	DeleteHistoryByEmailPatterns(ctx context.Context, patterns []string) (int64, error)

	ListSemesterSatisfaction(ctx context.Context) ([]SemesterSatisfaction, error)
	ReplaceSemesterSatisfaction(ctx context.Context, rows []SemesterSatisfaction) error

	// Truncate empties every derived table.
	Truncate(ctx context.Context) error
}
