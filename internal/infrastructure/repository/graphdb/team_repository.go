package graphdb

import (
	"context"

	"github.com/ferreiralabs/soccergraph/internal/domain/team"
	"github.com/ferreiralabs/soccergraph/internal/platform/cypher"
)

type TeamRepository struct {
	runner Runner
}

func NewTeamRepository(runner Runner) *TeamRepository {
	return &TeamRepository{runner: runner}
}

var _ team.Repository = (*TeamRepository)(nil)

const teamColumns = "t.team_id AS team_id, t.name AS name, t.city AS city, t.stadium AS stadium, " +
	"t.founded_year AS founded_year, t.colors AS colors, t.nickname AS nickname"

func (r *TeamRepository) Search(ctx context.Context, filter team.SearchFilter) ([]team.Team, error) {
	b := cypher.Match("(t:Team)")

	var conds []cypher.Condition
	if filter.Name != "" {
		conds = append(conds, cypher.Contains("t.name", filter.Name))
	}
	if filter.City != "" {
		conds = append(conds, cypher.Contains("t.city", filter.City))
	}
	if len(conds) > 0 {
		b.Where(conds...)
	}

	query, params, err := b.
		Return(teamColumns).
		OrderBy("t.name").
		Limit(filter.Limit).
		Build()
	if err != nil {
		return nil, err
	}

	rows, err := r.runner.ExecuteRead(ctx, query, params)
	if err != nil {
		return nil, err
	}

	teams := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, teamFromRow(row))
	}

	return teams, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query := "MATCH (t:Team {team_id: $team_id})\nRETURN " + teamColumns

	rows, err := r.runner.ExecuteRead(ctx, query, map[string]any{"team_id": teamID})
	if err != nil {
		return team.Team{}, false, err
	}
	if len(rows) == 0 {
		return team.Team{}, false, nil
	}

	return teamFromRow(rows[0]), true, nil
}

func (r *TeamRepository) GetProfile(ctx context.Context, teamID string) (team.Profile, bool, error) {
	query := "MATCH (t:Team {team_id: $team_id})\n" +
		"OPTIONAL MATCH (t)-[:PLAYS_AT]->(s:Stadium)\n" +
		"RETURN " + teamColumns + ", s.name AS stadium_name, s.capacity AS stadium_capacity"

	rows, err := r.runner.ExecuteRead(ctx, query, map[string]any{"team_id": teamID})
	if err != nil {
		return team.Profile{}, false, err
	}
	if len(rows) == 0 {
		return team.Profile{}, false, nil
	}

	row := rows[0]

	return team.Profile{
		Team:            teamFromRow(row),
		StadiumName:     asString(row["stadium_name"]),
		StadiumCapacity: asInt(row["stadium_capacity"]),
	}, true, nil
}

func (r *TeamRepository) ListMatches(ctx context.Context, teamID, season string) ([]team.PlayedMatch, error) {
	b := cypher.Match("(m:Match)")

	conds := []cypher.Condition{
		cypher.Or(
			cypher.Eq("m.home_team_id", teamID),
			cypher.Eq("m.away_team_id", teamID),
		),
	}
	if season != "" {
		b.Match("(m)-[:PART_OF]->(c:Competition)")
		conds = append(conds, cypher.Eq("c.season", season))
	}

	query, params, err := b.
		Where(conds...).
		Return(
			"m.match_id AS match_id",
			"m.date AS date",
			"m.home_team_id AS home_team_id",
			"m.away_team_id AS away_team_id",
			"m.home_score AS home_score",
			"m.away_score AS away_score",
		).
		OrderBy("m.date DESC").
		Build()
	if err != nil {
		return nil, err
	}

	rows, err := r.runner.ExecuteRead(ctx, query, params)
	if err != nil {
		return nil, err
	}

	matches := make([]team.PlayedMatch, 0, len(rows))
	for _, row := range rows {
		date, _ := asTime(row["date"])
		matches = append(matches, team.PlayedMatch{
			MatchID:    asString(row["match_id"]),
			Date:       date,
			HomeTeamID: asString(row["home_team_id"]),
			AwayTeamID: asString(row["away_team_id"]),
			HomeScore:  asInt(row["home_score"]),
			AwayScore:  asInt(row["away_score"]),
		})
	}

	return matches, nil
}

func (r *TeamRepository) ListRoster(ctx context.Context, teamID string) ([]team.RosterPlayer, error) {
	query := `MATCH (p:Player)-[f:PLAYS_FOR]->(t:Team {team_id: $team_id})
RETURN p.player_id AS player_id, p.name AS name, p.position AS position,
  p.jersey_number AS jersey_number, p.nationality AS nationality,
  f.from_date AS from_date, f.to_date AS to_date
ORDER BY p.position, p.jersey_number`

	rows, err := r.runner.ExecuteRead(ctx, query, map[string]any{"team_id": teamID})
	if err != nil {
		return nil, err
	}

	roster := make([]team.RosterPlayer, 0, len(rows))
	for _, row := range rows {
		roster = append(roster, team.RosterPlayer{
			PlayerID:     asString(row["player_id"]),
			Name:         asString(row["name"]),
			Position:     asString(row["position"]),
			JerseyNumber: asInt(row["jersey_number"]),
			Nationality:  asString(row["nationality"]),
			From:         asTimePtr(row["from_date"]),
			To:           asTimePtr(row["to_date"]),
		})
	}

	return roster, nil
}

// ListCompetitions derives participation from the matches the team competed
// in; COMPETED_IN points at matches, not at competition editions.
func (r *TeamRepository) ListCompetitions(ctx context.Context, teamID string) ([]team.CompetitionEntry, error) {
	query := `MATCH (t:Team {team_id: $team_id})-[:COMPETED_IN]->(m:Match)-[:PART_OF]->(c:Competition)
RETURN DISTINCT c.competition_id AS competition_id, c.name AS name, c.season AS season
ORDER BY c.season DESC`

	rows, err := r.runner.ExecuteRead(ctx, query, map[string]any{"team_id": teamID})
	if err != nil {
		return nil, err
	}

	entries := make([]team.CompetitionEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, team.CompetitionEntry{
			CompetitionID: asString(row["competition_id"]),
			Name:          asString(row["name"]),
			Season:        asString(row["season"]),
		})
	}

	return entries, nil
}

func (r *TeamRepository) ListChampionships(ctx context.Context, teamID string) ([]team.Championship, error) {
	query := `MATCH (t:Team {team_id: $team_id})-[:WON]->(c:Competition)
RETURN c.competition_id AS competition_id, c.name AS name, c.season AS season
ORDER BY c.season DESC`

	rows, err := r.runner.ExecuteRead(ctx, query, map[string]any{"team_id": teamID})
	if err != nil {
		return nil, err
	}

	titles := make([]team.Championship, 0, len(rows))
	for _, row := range rows {
		titles = append(titles, team.Championship{
			CompetitionID: asString(row["competition_id"]),
			Name:          asString(row["name"]),
			Season:        asString(row["season"]),
		})
	}

	return titles, nil
}

func teamFromRow(row map[string]any) team.Team {
	return team.Team{
		ID:          asString(row["team_id"]),
		Name:        asString(row["name"]),
		City:        asString(row["city"]),
		Stadium:     asString(row["stadium"]),
		FoundedYear: asInt(row["founded_year"]),
		Colors:      asStringSlice(row["colors"]),
		Nickname:    asString(row["nickname"]),
	}
}
