package player

import "context"

// Repository describes player reads needed by use cases.
type Repository interface {
	Search(ctx context.Context, filter SearchFilter) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)

	// Count* methods scope to a competition season when season is non-empty.
	CountGoals(ctx context.Context, playerID, season string) (int, error)
	CountAssists(ctx context.Context, playerID, season string) (int, error)
	CountMatches(ctx context.Context, playerID, season string) (int, error)
	CountCards(ctx context.Context, playerID, season string) (CardTally, error)

	// ListTenures returns the player's spells ordered most recent first.
	ListTenures(ctx context.Context, playerID string) ([]Tenure, error)
	// ListTenuresForTeam returns every spell at the given team, one entry
	// per player per PLAYS_FOR edge.
	ListTenuresForTeam(ctx context.Context, teamID string) ([]Tenure, error)

	// ListTransfers scopes to a calendar year when year > 0.
	ListTransfers(ctx context.Context, playerID string, year int) ([]Transfer, error)

	FindByCareerPath(ctx context.Context, query CareerPathQuery) ([]CareerPathRow, error)
}
