package graphdb

import (
	"context"

	"github.com/ferreiralabs/soccergraph/internal/domain/competition"
	"github.com/ferreiralabs/soccergraph/internal/platform/cypher"
)

type CompetitionRepository struct {
	runner Runner
}

func NewCompetitionRepository(runner Runner) *CompetitionRepository {
	return &CompetitionRepository{runner: runner}
}

var _ competition.Repository = (*CompetitionRepository)(nil)

func (r *CompetitionRepository) Get(ctx context.Context, competitionID, season string) (competition.Competition, bool, error) {
	query := `MATCH (c:Competition {competition_id: $competition_id, season: $season})
RETURN c.competition_id AS competition_id, c.name AS name, c.season AS season`

	rows, err := r.runner.ExecuteRead(ctx, query, map[string]any{
		"competition_id": competitionID,
		"season":         season,
	})
	if err != nil {
		return competition.Competition{}, false, err
	}
	if len(rows) == 0 {
		return competition.Competition{}, false, nil
	}

	row := rows[0]

	return competition.Competition{
		ID:     asString(row["competition_id"]),
		Name:   asString(row["name"]),
		Season: asString(row["season"]),
	}, true, nil
}

func (r *CompetitionRepository) ListResults(ctx context.Context, competitionID, season string) ([]competition.Result, error) {
	query := `MATCH (m:Match)-[:PART_OF]->(c:Competition {competition_id: $competition_id, season: $season})
MATCH (home:Team {team_id: m.home_team_id})
MATCH (away:Team {team_id: m.away_team_id})
RETURN m.match_id AS match_id,
  m.home_team_id AS home_team_id, home.name AS home_team,
  m.away_team_id AS away_team_id, away.name AS away_team,
  m.home_score AS home_score, m.away_score AS away_score`

	rows, err := r.runner.ExecuteRead(ctx, query, map[string]any{
		"competition_id": competitionID,
		"season":         season,
	})
	if err != nil {
		return nil, err
	}

	results := make([]competition.Result, 0, len(rows))
	for _, row := range rows {
		results = append(results, competition.Result{
			MatchID:    asString(row["match_id"]),
			HomeTeamID: asString(row["home_team_id"]),
			HomeTeam:   asString(row["home_team"]),
			AwayTeamID: asString(row["away_team_id"]),
			AwayTeam:   asString(row["away_team"]),
			HomeScore:  asInt(row["home_score"]),
			AwayScore:  asInt(row["away_score"]),
		})
	}

	return results, nil
}

func (r *CompetitionRepository) ListFixtures(ctx context.Context, competitionID, season string, filter competition.FixtureFilter) ([]competition.Fixture, error) {
	b := cypher.Match("(m:Match)-[:PART_OF]->(c:Competition)").
		Match("(home:Team {team_id: m.home_team_id})").
		Match("(away:Team {team_id: m.away_team_id})")

	conds := []cypher.Condition{
		cypher.Eq("c.competition_id", competitionID),
		cypher.Eq("c.season", season),
	}
	if filter.Team != "" {
		conds = append(conds, cypher.Or(
			cypher.Contains("home.name", filter.Team),
			cypher.Contains("away.name", filter.Team),
		))
	}
	if filter.Round != "" {
		conds = append(conds, cypher.Eq("m.round", filter.Round))
	}

	query, params, err := b.
		Where(conds...).
		Return(
			"m.match_id AS match_id",
			"m.date AS date",
			"home.name AS home_team",
			"away.name AS away_team",
			"m.home_score AS home_score",
			"m.away_score AS away_score",
			"m.round AS round",
			"m.attendance AS attendance",
		).
		OrderBy("m.date DESC", "m.round").
		Build()
	if err != nil {
		return nil, err
	}

	rows, err := r.runner.ExecuteRead(ctx, query, params)
	if err != nil {
		return nil, err
	}

	fixtures := make([]competition.Fixture, 0, len(rows))
	for _, row := range rows {
		date, _ := asTime(row["date"])
		fixtures = append(fixtures, competition.Fixture{
			MatchID:    asString(row["match_id"]),
			Date:       date,
			HomeTeam:   asString(row["home_team"]),
			AwayTeam:   asString(row["away_team"]),
			HomeScore:  asInt(row["home_score"]),
			AwayScore:  asInt(row["away_score"]),
			Round:      asString(row["round"]),
			Attendance: asInt(row["attendance"]),
		})
	}

	return fixtures, nil
}

func (r *CompetitionRepository) ListGoals(ctx context.Context, competitionID, season string) ([]competition.Goal, error) {
	query := `MATCH (p:Player)-[g:SCORED_IN]->(m:Match)-[:PART_OF]->(c:Competition {competition_id: $competition_id, season: $season})
OPTIONAL MATCH (t:Team {team_id: g.team_id})
RETURN p.player_id AS player_id, p.name AS player_name, p.position AS position, t.name AS team_name`

	rows, err := r.runner.ExecuteRead(ctx, query, map[string]any{
		"competition_id": competitionID,
		"season":         season,
	})
	if err != nil {
		return nil, err
	}

	goals := make([]competition.Goal, 0, len(rows))
	for _, row := range rows {
		goals = append(goals, competition.Goal{
			PlayerID:   asString(row["player_id"]),
			PlayerName: asString(row["player_name"]),
			Position:   asString(row["position"]),
			TeamName:   asString(row["team_name"]),
		})
	}

	return goals, nil
}
