package prediction

import "context"

// DivisionRepository persists one division prediction per user per division.
type DivisionRepository interface {
	GetDivision(ctx context.Context, userID, divisionKey string) (DivisionPrediction, bool, error)
	UpsertDivision(ctx context.Context, p DivisionPrediction) error
	ListDivision(ctx context.Context, divisionKey string) ([]DivisionPrediction, error)
}

// EinsteinRepository persists one championship prediction per user.
type EinsteinRepository interface {
	GetEinstein(ctx context.Context, userID string) (EinsteinPrediction, bool, error)
	UpsertEinstein(ctx context.Context, p EinsteinPrediction) error
	ListEinstein(ctx context.Context) ([]EinsteinPrediction, error)
}

// Repository combines both prediction kinds behind one storage boundary.
type Repository interface {
	DivisionRepository
	EinsteinRepository
}
