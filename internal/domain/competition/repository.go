package competition

import "context"

// Repository describes competition reads needed by use cases.
type Repository interface {
	Get(ctx context.Context, competitionID, season string) (Competition, bool, error)
	ListResults(ctx context.Context, competitionID, season string) ([]Result, error)
	ListFixtures(ctx context.Context, competitionID, season string, filter FixtureFilter) ([]Fixture, error)
	ListGoals(ctx context.Context, competitionID, season string) ([]Goal, error)
}
