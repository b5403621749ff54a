package team

import "context"

// Repository describes team reads needed by use cases.
type Repository interface {
	Search(ctx context.Context, filter SearchFilter) ([]Team, error)
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	GetProfile(ctx context.Context, teamID string) (Profile, bool, error)

	// ListMatches scopes to a competition season when season is non-empty.
	ListMatches(ctx context.Context, teamID, season string) ([]PlayedMatch, error)
	ListRoster(ctx context.Context, teamID string) ([]RosterPlayer, error)
	ListCompetitions(ctx context.Context, teamID string) ([]CompetitionEntry, error)
	ListChampionships(ctx context.Context, teamID string) ([]Championship, error)
}
