package graphdb

import (
	"context"
	"strconv"
	"strings"

	"github.com/ferreiralabs/soccergraph/internal/domain/player"
	"github.com/ferreiralabs/soccergraph/internal/platform/cypher"
)

type PlayerRepository struct {
	runner Runner
}

func NewPlayerRepository(runner Runner) *PlayerRepository {
	return &PlayerRepository{runner: runner}
}

var _ player.Repository = (*PlayerRepository)(nil)

const playerColumns = "p.player_id AS player_id, p.name AS name, p.birth_date AS birth_date, " +
	"p.nationality AS nationality, p.position AS position, p.jersey_number AS jersey_number"

func (r *PlayerRepository) Search(ctx context.Context, filter player.SearchFilter) ([]player.Player, error) {
	b := cypher.Match("(p:Player)")

	var conds []cypher.Condition
	if filter.Name != "" {
		conds = append(conds, cypher.Contains("p.name", filter.Name))
	}
	if filter.Position != "" {
		conds = append(conds, cypher.Eq("p.position", filter.Position))
	}
	if filter.Team != "" {
		b.Match("(p)-[:PLAYS_FOR]->(t:Team)")
		conds = append(conds, cypher.Contains("t.name", filter.Team))
	}
	if len(conds) > 0 {
		b.Where(conds...)
	}

	query, params, err := b.
		Return("DISTINCT " + playerColumns).
		OrderBy("p.name").
		Limit(filter.Limit).
		Build()
	if err != nil {
		return nil, err
	}

	rows, err := r.runner.ExecuteRead(ctx, query, params)
	if err != nil {
		return nil, err
	}

	players := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		players = append(players, playerFromRow(row))
	}

	return players, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query := "MATCH (p:Player {player_id: $player_id})\nRETURN " + playerColumns

	rows, err := r.runner.ExecuteRead(ctx, query, map[string]any{"player_id": playerID})
	if err != nil {
		return player.Player{}, false, err
	}
	if len(rows) == 0 {
		return player.Player{}, false, nil
	}

	return playerFromRow(rows[0]), true, nil
}

func (r *PlayerRepository) CountGoals(ctx context.Context, playerID, season string) (int, error) {
	return r.countEdges(ctx, "SCORED_IN", "count(*)", playerID, season)
}

func (r *PlayerRepository) CountAssists(ctx context.Context, playerID, season string) (int, error) {
	return r.countEdges(ctx, "ASSISTED_IN", "count(*)", playerID, season)
}

func (r *PlayerRepository) CountMatches(ctx context.Context, playerID, season string) (int, error) {
	return r.countEdges(ctx, "PLAYED_IN", "count(DISTINCT m)", playerID, season)
}

// countEdges tallies edges of one relationship type from the player to
// matches, optionally scoped to a competition season. The relationship type
// and aggregate come from a fixed caller-side set, never from input.
func (r *PlayerRepository) countEdges(ctx context.Context, rel, aggregate, playerID, season string) (int, error) {
	var b strings.Builder
	b.WriteString("MATCH (p:Player {player_id: $player_id})-[:")
	b.WriteString(rel)
	b.WriteString("]->(m:Match)")
	params := map[string]any{"player_id": playerID}
	if season != "" {
		b.WriteString("\nMATCH (m)-[:PART_OF]->(c:Competition {season: $season})")
		params["season"] = season
	}
	b.WriteString("\nRETURN ")
	b.WriteString(aggregate)
	b.WriteString(" AS total")

	rows, err := r.runner.ExecuteRead(ctx, b.String(), params)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}

	return asInt(rows[0]["total"]), nil
}

func (r *PlayerRepository) CountCards(ctx context.Context, playerID, season string) (player.CardTally, error) {
	var b strings.Builder
	b.WriteString("MATCH (p:Player {player_id: $player_id})-[r:RECEIVED_CARD]->(m:Match)")
	params := map[string]any{"player_id": playerID}
	if season != "" {
		b.WriteString("\nMATCH (m)-[:PART_OF]->(c:Competition {season: $season})")
		params["season"] = season
	}
	b.WriteString("\nRETURN r.card_type AS card_type, count(*) AS total")

	rows, err := r.runner.ExecuteRead(ctx, b.String(), params)
	if err != nil {
		return player.CardTally{}, err
	}

	var tally player.CardTally
	for _, row := range rows {
		switch asString(row["card_type"]) {
		case "Yellow":
			tally.Yellow = asInt(row["total"])
		case "Red":
			tally.Red = asInt(row["total"])
		}
	}

	return tally, nil
}

func (r *PlayerRepository) ListTenures(ctx context.Context, playerID string) ([]player.Tenure, error) {
	query := `MATCH (p:Player {player_id: $player_id})-[f:PLAYS_FOR]->(t:Team)
RETURN p.player_id AS player_id, p.name AS player_name, t.team_id AS team_id, t.name AS team_name,
  f.from_date AS from_date, f.to_date AS to_date
ORDER BY f.from_date DESC`

	rows, err := r.runner.ExecuteRead(ctx, query, map[string]any{"player_id": playerID})
	if err != nil {
		return nil, err
	}

	return tenuresFromRows(rows), nil
}

func (r *PlayerRepository) ListTenuresForTeam(ctx context.Context, teamID string) ([]player.Tenure, error) {
	query := `MATCH (p:Player)-[f:PLAYS_FOR]->(t:Team {team_id: $team_id})
RETURN p.player_id AS player_id, p.name AS player_name, t.team_id AS team_id, t.name AS team_name,
  f.from_date AS from_date, f.to_date AS to_date
ORDER BY p.name, f.from_date DESC`

	rows, err := r.runner.ExecuteRead(ctx, query, map[string]any{"team_id": teamID})
	if err != nil {
		return nil, err
	}

	return tenuresFromRows(rows), nil
}

func (r *PlayerRepository) ListTransfers(ctx context.Context, playerID string, year int) ([]player.Transfer, error) {
	b := cypher.Match("(p:Player {player_id: $player_id})-[tf:TRANSFERRED_FROM]->(from:Team)").
		Match("(p)-[tt:TRANSFERRED_TO]->(to:Team)")

	// Edges written by the importer carry a shared transfer_id; older data
	// pairs on the move date.
	conds := []cypher.Condition{
		cypher.Expr("((tf.transfer_id IS NOT NULL AND tf.transfer_id = tt.transfer_id) " +
			"OR (tf.transfer_id IS NULL AND tf.transfer_date = tt.transfer_date))"),
	}
	if year > 0 {
		conds = append(conds, cypher.Eq("date(tf.transfer_date).year", year))
	}

	query, params, err := b.
		Where(conds...).
		Return(
			"from.name AS from_team",
			"to.name AS to_team",
			"tf.transfer_date AS transfer_date",
			"tf.fee AS fee",
			"tf.loan AS loan",
		).
		OrderBy("tf.transfer_date DESC").
		Build()
	if err != nil {
		return nil, err
	}
	params["player_id"] = playerID

	rows, err := r.runner.ExecuteRead(ctx, query, params)
	if err != nil {
		return nil, err
	}

	transfers := make([]player.Transfer, 0, len(rows))
	for _, row := range rows {
		date, _ := asTime(row["transfer_date"])
		transfers = append(transfers, player.Transfer{
			FromTeam: asString(row["from_team"]),
			ToTeam:   asString(row["to_team"]),
			Date:     date,
			Fee:      asFloatPtr(row["fee"]),
			Loan:     asBool(row["loan"]),
		})
	}

	return transfers, nil
}

// FindByCareerPath chains one PLAYS_FOR match per requested team so only
// players who passed through every club survive. With no teams the chain is
// skipped and only the remaining predicates apply. Threshold filtering and
// the result cap stay in the use case.
func (r *PlayerRepository) FindByCareerPath(ctx context.Context, query player.CareerPathQuery) ([]player.CareerPathRow, error) {
	var b strings.Builder
	params := make(map[string]any, len(query.Teams)+1)

	b.WriteString("MATCH (p:Player)")
	for i := range query.Teams {
		alias := "t" + strconv.Itoa(i+1)
		b.WriteString("\nMATCH (p)-[:PLAYS_FOR]->(")
		b.WriteString(alias)
		b.WriteString(":Team)")
	}
	conds := 0
	writeCond := func() {
		if conds == 0 {
			b.WriteString("\nWHERE ")
		} else {
			b.WriteString("\n  AND ")
		}
		conds++
	}
	for i, name := range query.Teams {
		writeCond()
		alias := "t" + strconv.Itoa(i+1)
		paramName := "team" + strconv.Itoa(i+1)
		b.WriteString(alias)
		b.WriteString(".name CONTAINS $")
		b.WriteString(paramName)
		params[paramName] = name
	}
	if len(query.Positions) > 0 {
		writeCond()
		b.WriteString("p.position IN $positions")
		params["positions"] = query.Positions
	}
	b.WriteString(`
WITH DISTINCT p
MATCH (p)-[:PLAYS_FOR]->(club:Team)
WITH p, collect(DISTINCT club.name) AS teams
OPTIONAL MATCH (p)-[g:SCORED_IN]->(:Match)
WITH p, teams, count(g) AS goals
RETURN p.player_id AS player_id, p.name AS name, p.position AS position,
  p.nationality AS nationality, teams, goals
ORDER BY size(teams) DESC, p.name`)

	rows, err := r.runner.ExecuteRead(ctx, b.String(), params)
	if err != nil {
		return nil, err
	}

	out := make([]player.CareerPathRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.CareerPathRow{
			PlayerID:    asString(row["player_id"]),
			Name:        asString(row["name"]),
			Position:    asString(row["position"]),
			Nationality: asString(row["nationality"]),
			Teams:       asStringSlice(row["teams"]),
			Goals:       asInt(row["goals"]),
		})
	}

	return out, nil
}

func playerFromRow(row map[string]any) player.Player {
	return player.Player{
		ID:           asString(row["player_id"]),
		Name:         asString(row["name"]),
		BirthDate:    asTimePtr(row["birth_date"]),
		Nationality:  asString(row["nationality"]),
		Position:     asString(row["position"]),
		JerseyNumber: asInt(row["jersey_number"]),
	}
}

func tenuresFromRows(rows []map[string]any) []player.Tenure {
	tenures := make([]player.Tenure, 0, len(rows))
	for _, row := range rows {
		tenures = append(tenures, player.Tenure{
			PlayerID:   asString(row["player_id"]),
			PlayerName: asString(row["player_name"]),
			TeamID:     asString(row["team_id"]),
			TeamName:   asString(row["team_name"]),
			From:       asTimePtr(row["from_date"]),
			To:         asTimePtr(row["to_date"]),
		})
	}

	return tenures
}
