package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	ListByDivision(ctx context.Context, divisionKey string) ([]Team, error)
	ListKeysByDivision(ctx context.Context, divisionKey string) ([]string, error)
	GetByKey(ctx context.Context, key string) (Team, bool, error)
	Upsert(ctx context.Context, t Team) error
	// AssignDivision moves the listed teams into divisionKey and reports how
	// many stored teams were affected. Unknown keys are skipped.
	AssignDivision(ctx context.Context, divisionKey string, teamKeys []string) (int, error)
}
