package scoring

import "context"

// Repository persists scored results. Scoring always replaces prior rows for
// the same scope, so deletes are scoped the same way the writes are.
type Repository interface {
	ReplaceDivisionScores(ctx context.Context, divisionKey string, records []DivisionScoreRecord) error
	ListDivisionScores(ctx context.Context, divisionKey string) ([]DivisionScoreRecord, error)
	ListDivisionScoresByUser(ctx context.Context, userID string) ([]DivisionScoreRecord, error)

	ReplaceEinsteinScores(ctx context.Context, records []EinsteinScoreRecord) error
	ListEinsteinScores(ctx context.Context) ([]EinsteinScoreRecord, error)

	ReplaceGlobalScores(ctx context.Context, records []GlobalScoreRecord) error
	ListGlobalScores(ctx context.Context, limit int) ([]GlobalScoreRecord, error)
	GetGlobalScore(ctx context.Context, userID string) (GlobalScoreRecord, bool, error)
}
