package graphdb

import (
	"context"

	"github.com/ferreiralabs/soccergraph/internal/domain/match"
	"github.com/ferreiralabs/soccergraph/internal/platform/cypher"
)

type MatchRepository struct {
	runner Runner
}

func NewMatchRepository(runner Runner) *MatchRepository {
	return &MatchRepository{runner: runner}
}

var _ match.Repository = (*MatchRepository)(nil)

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query := `MATCH (m:Match {match_id: $match_id})
MATCH (home:Team {team_id: m.home_team_id})
MATCH (away:Team {team_id: m.away_team_id})
OPTIONAL MATCH (m)-[:PART_OF]->(c:Competition)
OPTIONAL MATCH (m)-[:PLAYED_AT]->(s:Stadium)
RETURN m.match_id AS match_id, m.date AS date,
  m.home_team_id AS home_team_id, home.name AS home_team,
  m.away_team_id AS away_team_id, away.name AS away_team,
  m.home_score AS home_score, m.away_score AS away_score,
  c.name AS competition_name, c.season AS season,
  m.round AS round, m.attendance AS attendance, m.referee AS referee,
  s.name AS stadium_name, s.city AS stadium_city`

	rows, err := r.runner.ExecuteRead(ctx, query, map[string]any{"match_id": matchID})
	if err != nil {
		return match.Match{}, false, err
	}
	if len(rows) == 0 {
		return match.Match{}, false, nil
	}

	return matchFromRow(rows[0]), true, nil
}

func (r *MatchRepository) ListGoals(ctx context.Context, matchID string) ([]match.Goal, error) {
	query := `MATCH (p:Player)-[g:SCORED_IN]->(m:Match {match_id: $match_id})
OPTIONAL MATCH (t:Team {team_id: g.team_id})
RETURN p.player_id AS player_id, p.name AS player_name, p.position AS position,
  g.team_id AS team_id, t.name AS team_name, g.minute AS minute, g.goal_type AS goal_type
ORDER BY g.minute`

	rows, err := r.runner.ExecuteRead(ctx, query, map[string]any{"match_id": matchID})
	if err != nil {
		return nil, err
	}

	return goalsFromRows(rows), nil
}

func (r *MatchRepository) ListCards(ctx context.Context, matchID string) ([]match.Card, error) {
	query := `MATCH (p:Player)-[rc:RECEIVED_CARD]->(m:Match {match_id: $match_id})
OPTIONAL MATCH (t:Team {team_id: rc.team_id})
RETURN p.player_id AS player_id, p.name AS player_name, t.name AS team_name,
  rc.minute AS minute, rc.card_type AS card_type
ORDER BY rc.minute`

	rows, err := r.runner.ExecuteRead(ctx, query, map[string]any{"match_id": matchID})
	if err != nil {
		return nil, err
	}

	cards := make([]match.Card, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, match.Card{
			PlayerID:   asString(row["player_id"]),
			PlayerName: asString(row["player_name"]),
			TeamName:   asString(row["team_name"]),
			Minute:     asInt(row["minute"]),
			CardType:   asString(row["card_type"]),
		})
	}

	return cards, nil
}

func (r *MatchRepository) Search(ctx context.Context, filter match.SearchFilter) ([]match.Match, error) {
	b := cypher.Match("(m:Match)").
		Match("(home:Team {team_id: m.home_team_id})").
		Match("(away:Team {team_id: m.away_team_id})")

	var conds []cypher.Condition
	if filter.Team != "" {
		conds = append(conds, cypher.Or(
			cypher.Contains("home.name", filter.Team),
			cypher.Contains("away.name", filter.Team),
		))
	}
	if filter.Competition != "" {
		b.Match("(m)-[:PART_OF]->(c:Competition)")
		conds = append(conds, cypher.Contains("c.name", filter.Competition))
	} else {
		b.OptionalMatch("(m)-[:PART_OF]->(c:Competition)")
	}
	if filter.DateFrom != nil {
		conds = append(conds, cypher.Expr("date(m.date) >= date(?)", filter.DateFrom.Format("2006-01-02")))
	}
	if filter.DateTo != nil {
		conds = append(conds, cypher.Expr("date(m.date) <= date(?)", filter.DateTo.Format("2006-01-02")))
	}
	if len(conds) > 0 {
		b.Where(conds...)
	}

	query, params, err := b.
		Return(matchSummaryColumns...).
		OrderBy("m.date DESC").
		Limit(filter.Limit).
		Build()
	if err != nil {
		return nil, err
	}

	return r.collectMatches(ctx, query, params)
}

func (r *MatchRepository) ListBetween(ctx context.Context, team1ID, team2ID string, sinceYear int) ([]match.Match, error) {
	b := cypher.Match("(m:Match)").
		Match("(home:Team {team_id: m.home_team_id})").
		Match("(away:Team {team_id: m.away_team_id})").
		OptionalMatch("(m)-[:PART_OF]->(c:Competition)")

	conds := []cypher.Condition{pairCondition(team1ID, team2ID)}
	if sinceYear > 0 {
		conds = append(conds, cypher.Gte("date(m.date).year", sinceYear))
	}

	query, params, err := b.
		Where(conds...).
		Return(matchSummaryColumns...).
		OrderBy("m.date DESC").
		Build()
	if err != nil {
		return nil, err
	}

	return r.collectMatches(ctx, query, params)
}

func (r *MatchRepository) ListGoalsBetween(ctx context.Context, team1ID, team2ID string, sinceYear int) ([]match.Goal, error) {
	b := cypher.Match("(p:Player)-[g:SCORED_IN]->(m:Match)").
		OptionalMatch("(t:Team {team_id: g.team_id})")

	conds := []cypher.Condition{pairCondition(team1ID, team2ID)}
	if sinceYear > 0 {
		conds = append(conds, cypher.Gte("date(m.date).year", sinceYear))
	}

	query, params, err := b.
		Where(conds...).
		Return(
			"p.player_id AS player_id",
			"p.name AS player_name",
			"p.position AS position",
			"g.team_id AS team_id",
			"t.name AS team_name",
			"g.minute AS minute",
			"g.goal_type AS goal_type",
		).
		OrderBy("m.date DESC", "g.minute").
		Build()
	if err != nil {
		return nil, err
	}

	rows, err := r.runner.ExecuteRead(ctx, query, params)
	if err != nil {
		return nil, err
	}

	return goalsFromRows(rows), nil
}

var matchSummaryColumns = []string{
	"m.match_id AS match_id",
	"m.date AS date",
	"m.home_team_id AS home_team_id",
	"home.name AS home_team",
	"m.away_team_id AS away_team_id",
	"away.name AS away_team",
	"m.home_score AS home_score",
	"m.away_score AS away_score",
	"c.name AS competition_name",
	"c.season AS season",
}

// pairCondition matches the two teams in either venue order.
func pairCondition(team1ID, team2ID string) cypher.Condition {
	return cypher.Or(
		cypher.Expr("(m.home_team_id = ? AND m.away_team_id = ?)", team1ID, team2ID),
		cypher.Expr("(m.home_team_id = ? AND m.away_team_id = ?)", team2ID, team1ID),
	)
}

func (r *MatchRepository) collectMatches(ctx context.Context, query string, params map[string]any) ([]match.Match, error) {
	rows, err := r.runner.ExecuteRead(ctx, query, params)
	if err != nil {
		return nil, err
	}

	matches := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, matchFromRow(row))
	}

	return matches, nil
}

func matchFromRow(row map[string]any) match.Match {
	date, _ := asTime(row["date"])

	return match.Match{
		ID:              asString(row["match_id"]),
		Date:            date,
		HomeTeamID:      asString(row["home_team_id"]),
		HomeTeam:        asString(row["home_team"]),
		AwayTeamID:      asString(row["away_team_id"]),
		AwayTeam:        asString(row["away_team"]),
		HomeScore:       asInt(row["home_score"]),
		AwayScore:       asInt(row["away_score"]),
		CompetitionName: asString(row["competition_name"]),
		Season:          asString(row["season"]),
		Round:           asString(row["round"]),
		Attendance:      asInt(row["attendance"]),
		Referee:         asString(row["referee"]),
		StadiumName:     asString(row["stadium_name"]),
		StadiumCity:     asString(row["stadium_city"]),
	}
}

func goalsFromRows(rows []map[string]any) []match.Goal {
	goals := make([]match.Goal, 0, len(rows))
	for _, row := range rows {
		goals = append(goals, match.Goal{
			PlayerID:   asString(row["player_id"]),
			PlayerName: asString(row["player_name"]),
			Position:   asString(row["position"]),
			TeamID:     asString(row["team_id"]),
			TeamName:   asString(row["team_name"]),
			Minute:     asInt(row["minute"]),
			GoalType:   asString(row["goal_type"]),
		})
	}

	return goals
}
