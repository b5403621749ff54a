package match

import "context"

// Repository describes match reads needed by use cases.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	ListGoals(ctx context.Context, matchID string) ([]Goal, error)
	ListCards(ctx context.Context, matchID string) ([]Card, error)

	Search(ctx context.Context, filter SearchFilter) ([]Match, error)

	// ListBetween returns every meeting of the two teams in either venue
	// order, newest first. sinceYear <= 0 means no cutoff.
	ListBetween(ctx context.Context, team1ID, team2ID string, sinceYear int) ([]Match, error)
	// ListGoalsBetween returns the goals scored across those meetings.
	ListGoalsBetween(ctx context.Context, team1ID, team2ID string, sinceYear int) ([]Goal, error)
}
