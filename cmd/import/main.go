// Command import initializes the graph schema (constraints + indexes) and
// loads a JSON dataset: nodes first, then relationship edges.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/ferreiralabs/soccergraph/internal/config"
	"github.com/ferreiralabs/soccergraph/internal/domain/match"
	"github.com/ferreiralabs/soccergraph/internal/graph"
	"github.com/ferreiralabs/soccergraph/internal/platform/logging"
	"github.com/panjf2000/ants/v2"
)

var schemaStatements = []string{
	"CREATE CONSTRAINT player_id_unique IF NOT EXISTS FOR (p:Player) REQUIRE p.player_id IS UNIQUE",
	"CREATE CONSTRAINT player_name_required IF NOT EXISTS FOR (p:Player) REQUIRE p.name IS NOT NULL",
	"CREATE CONSTRAINT team_id_unique IF NOT EXISTS FOR (t:Team) REQUIRE t.team_id IS UNIQUE",
	"CREATE CONSTRAINT team_name_required IF NOT EXISTS FOR (t:Team) REQUIRE t.name IS NOT NULL",
	"CREATE CONSTRAINT match_id_unique IF NOT EXISTS FOR (m:Match) REQUIRE m.match_id IS UNIQUE",
	"CREATE CONSTRAINT match_date_required IF NOT EXISTS FOR (m:Match) REQUIRE m.date IS NOT NULL",
	"CREATE CONSTRAINT competition_id_unique IF NOT EXISTS FOR (c:Competition) REQUIRE c.competition_id IS UNIQUE",
	"CREATE CONSTRAINT stadium_id_unique IF NOT EXISTS FOR (s:Stadium) REQUIRE s.stadium_id IS UNIQUE",
	"CREATE CONSTRAINT coach_id_unique IF NOT EXISTS FOR (co:Coach) REQUIRE co.coach_id IS UNIQUE",
	"CREATE INDEX player_name_index IF NOT EXISTS FOR (p:Player) ON (p.name)",
	"CREATE INDEX player_position_index IF NOT EXISTS FOR (p:Player) ON (p.position)",
	"CREATE INDEX team_name_index IF NOT EXISTS FOR (t:Team) ON (t.name)",
	"CREATE INDEX team_city_index IF NOT EXISTS FOR (t:Team) ON (t.city)",
	"CREATE INDEX match_date_index IF NOT EXISTS FOR (m:Match) ON (m.date)",
	"CREATE INDEX competition_season_index IF NOT EXISTS FOR (c:Competition) ON (c.season)",
	"CREATE INDEX stadium_name_index IF NOT EXISTS FOR (s:Stadium) ON (s.name)",
	"CREATE INDEX coach_name_index IF NOT EXISTS FOR (co:Coach) ON (co.name)",
}

type dataset struct {
	Stadiums     []stadiumRecord     `json:"stadiums"`
	Teams        []teamRecord        `json:"teams"`
	Players      []playerRecord      `json:"players"`
	Competitions []competitionRecord `json:"competitions"`
	Coaches      []coachRecord       `json:"coaches"`
	Matches      []matchRecord       `json:"matches"`

	Relationships relationshipSet `json:"relationships"`
}

type stadiumRecord struct {
	StadiumID  string `json:"stadium_id"`
	Name       string `json:"name"`
	City       string `json:"city"`
	State      string `json:"state"`
	Capacity   int    `json:"capacity"`
	OpenedYear int    `json:"opened_year"`
}

type teamRecord struct {
	TeamID      string   `json:"team_id"`
	Name        string   `json:"name"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	FoundedYear int      `json:"founded_year"`
	StadiumName string   `json:"stadium_name"`
	Colors      []string `json:"colors"`
	Nickname    string   `json:"nickname"`
}

type playerRecord struct {
	PlayerID     string `json:"player_id"`
	Name         string `json:"name"`
	BirthDate    string `json:"birth_date"`
	Nationality  string `json:"nationality"`
	Position     string `json:"position"`
	JerseyNumber int    `json:"jersey_number"`
}

type competitionRecord struct {
	CompetitionID string `json:"competition_id"`
	Name          string `json:"name"`
	Season        string `json:"season"`
	Type          string `json:"type"`
	Tier          int    `json:"tier"`
}

type coachRecord struct {
	CoachID     string `json:"coach_id"`
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
	BirthDate   string `json:"birth_date"`
}

type matchRecord struct {
	MatchID    string `json:"match_id"`
	Date       string `json:"date"`
	HomeTeamID string `json:"home_team_id"`
	AwayTeamID string `json:"away_team_id"`
	HomeScore  int    `json:"home_score"`
	AwayScore  int    `json:"away_score"`
	Round      string `json:"round"`
	Attendance int    `json:"attendance"`
	Referee    string `json:"referee"`
}

type relationshipSet struct {
	PlaysFor          []tenureRecord       `json:"plays_for"`
	Goals             []goalRecord         `json:"goals"`
	Assists           []assistRecord       `json:"assists"`
	Appearances       []appearanceRecord   `json:"appearances"`
	Cards             []cardRecord         `json:"cards"`
	Transfers         []transferRecord     `json:"transfers"`
	MatchCompetitions []matchEditionRecord `json:"match_competitions"`
	MatchTeams        []matchTeamRecord    `json:"match_teams"`
	Championships     []teamEditionRecord  `json:"championships"`
	TeamStadiums      []teamStadiumRecord  `json:"team_stadiums"`
	MatchStadiums     []matchStadiumRecord `json:"match_stadiums"`
	CoachSpells       []coachTenureRecord  `json:"coach_spells"`
}

type tenureRecord struct {
	PlayerID     string `json:"player_id"`
	TeamID       string `json:"team_id"`
	FromDate     string `json:"from_date"`
	ToDate       string `json:"to_date"`
	JerseyNumber int    `json:"jersey_number"`
}

type goalRecord struct {
	PlayerID string `json:"player_id"`
	MatchID  string `json:"match_id"`
	TeamID   string `json:"team_id"`
	Minute   int    `json:"minute"`
	GoalType string `json:"goal_type"`
}

type assistRecord struct {
	PlayerID string `json:"player_id"`
	MatchID  string `json:"match_id"`
	TeamID   string `json:"team_id"`
	Minute   int    `json:"minute"`
}

type appearanceRecord struct {
	PlayerID string `json:"player_id"`
	MatchID  string `json:"match_id"`
	TeamID   string `json:"team_id"`
	Position string `json:"position"`
}

type cardRecord struct {
	PlayerID string `json:"player_id"`
	MatchID  string `json:"match_id"`
	TeamID   string `json:"team_id"`
	Minute   int    `json:"minute"`
	CardType string `json:"card_type"`
}

type transferRecord struct {
	PlayerID     string   `json:"player_id"`
	FromTeamID   string   `json:"from_team_id"`
	ToTeamID     string   `json:"to_team_id"`
	TransferDate string   `json:"transfer_date"`
	Fee          *float64 `json:"fee"`
	Loan         bool     `json:"loan"`
}

type matchEditionRecord struct {
	MatchID       string `json:"match_id"`
	CompetitionID string `json:"competition_id"`
}

type matchTeamRecord struct {
	TeamID  string `json:"team_id"`
	MatchID string `json:"match_id"`
	Side    string `json:"side"`
}

type teamEditionRecord struct {
	TeamID        string `json:"team_id"`
	CompetitionID string `json:"competition_id"`
}

type teamStadiumRecord struct {
	TeamID    string `json:"team_id"`
	StadiumID string `json:"stadium_id"`
}

type matchStadiumRecord struct {
	MatchID   string `json:"match_id"`
	StadiumID string `json:"stadium_id"`
}

type coachTenureRecord struct {
	CoachID  string `json:"coach_id"`
	TeamID   string `json:"team_id"`
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
}

func main() {
	dataPath := flag.String("data", "", "path to the dataset JSON file")
	schemaOnly := flag.Bool("schema-only", false, "create constraints and indexes, skip data import")
	workers := flag.Int("workers", 8, "concurrent import workers")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	if !*schemaOnly && *dataPath == "" {
		fmt.Fprintln(os.Stderr, "usage: import -data <dataset.json> [-schema-only] [-workers N]")
		os.Exit(2)
	}

	pool := graph.NewPool(graph.Config{
		URI:          cfg.Neo4jURI,
		User:         cfg.Neo4jUser,
		Password:     cfg.Neo4jPassword,
		Database:     cfg.Neo4jDatabase,
		QueryTimeout: cfg.Neo4jQueryTimeout,
		MaxPoolSize:  cfg.Neo4jMaxPoolSize,
	}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := pool.Connect(ctx); err != nil {
		logger.Error("connect graph", "error", err)
		os.Exit(1)
	}
	defer func() { _ = pool.Close(context.Background()) }()

	im := &importer{pool: pool, logger: logger}

	if err := im.initSchema(ctx); err != nil {
		logger.Error("initialize schema", "error", err)
		os.Exit(1)
	}

	if !*schemaOnly {
		ds, err := loadDataset(*dataPath)
		if err != nil {
			logger.Error("load dataset", "path", *dataPath, "error", err)
			os.Exit(1)
		}
		im.importDataset(ctx, ds, *workers)
	}

	health := pool.HealthCheck(ctx)
	logger.Info("import finished",
		"total_nodes", health.TotalNodes,
		"nodes_created", im.nodes.Load(),
		"relationships_created", im.relationships.Load(),
		"rows_skipped", im.skipped.Load(),
		"errors", im.errors.Load(),
	)
	if im.errors.Load() > 0 {
		os.Exit(1)
	}
}

func loadDataset(path string) (dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return dataset{}, err
	}

	var ds dataset
	if err := sonic.Unmarshal(raw, &ds); err != nil {
		return dataset{}, fmt.Errorf("decode dataset: %w", err)
	}

	return ds, nil
}

type importer struct {
	pool   *graph.Pool
	logger *logging.Logger

	nodes         atomic.Int64
	relationships atomic.Int64
	skipped       atomic.Int64
	errors        atomic.Int64
}

func (im *importer) initSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := im.pool.ExecuteWrite(ctx, stmt, nil); err != nil {
			return err
		}
	}
	im.logger.InfoContext(ctx, "schema initialized", "statements", len(schemaStatements))

	return nil
}

type writeTask struct {
	query  string
	params map[string]any
}

func (im *importer) importDataset(ctx context.Context, ds dataset, workers int) {
	// Relationship queries MATCH on node ids, so nodes go in first.
	im.runBatch(ctx, workers, im.nodeTasks(ds))
	im.runBatch(ctx, workers, im.relationshipTasks(ds))
}

func (im *importer) runBatch(ctx context.Context, workers int, tasks []writeTask) {
	if workers < 1 {
		workers = 1
	}

	p, err := ants.NewPool(workers)
	if err != nil {
		im.logger.ErrorContext(ctx, "create worker pool", "error", err)
		im.errors.Add(int64(len(tasks)))
		return
	}
	defer p.Release()

	var wg sync.WaitGroup
	for _, t := range tasks {
		t := t
		wg.Add(1)
		if err := p.Submit(func() {
			defer wg.Done()
			summary, err := im.pool.ExecuteWrite(ctx, t.query, t.params)
			if err != nil {
				im.errors.Add(1)
				return
			}
			im.nodes.Add(int64(summary.NodesCreated))
			im.relationships.Add(int64(summary.RelationshipsCreated))
		}); err != nil {
			wg.Done()
			im.errors.Add(1)
		}
	}
	wg.Wait()
}

func (im *importer) nodeTasks(ds dataset) []writeTask {
	tasks := make([]writeTask, 0, len(ds.Stadiums)+len(ds.Teams)+len(ds.Players)+len(ds.Competitions)+len(ds.Coaches)+len(ds.Matches))

	for _, s := range ds.Stadiums {
		tasks = append(tasks, writeTask{
			query: `MERGE (s:Stadium {stadium_id: $stadium_id})
SET s.name = $name, s.city = $city, s.state = $state,
    s.capacity = $capacity, s.opened_year = $opened_year`,
			params: map[string]any{
				"stadium_id": s.StadiumID, "name": s.Name, "city": s.City,
				"state": s.State, "capacity": s.Capacity, "opened_year": s.OpenedYear,
			},
		})
	}

	for _, t := range ds.Teams {
		tasks = append(tasks, writeTask{
			query: `MERGE (t:Team {team_id: $team_id})
SET t.name = $name, t.city = $city, t.state = $state,
    t.founded_year = $founded_year, t.stadium_name = $stadium_name,
    t.colors = $colors, t.nickname = $nickname`,
			params: map[string]any{
				"team_id": t.TeamID, "name": t.Name, "city": t.City, "state": t.State,
				"founded_year": t.FoundedYear, "stadium_name": t.StadiumName,
				"colors": t.Colors, "nickname": t.Nickname,
			},
		})
	}

	for _, p := range ds.Players {
		tasks = append(tasks, writeTask{
			query: `MERGE (p:Player {player_id: $player_id})
SET p.name = $name, p.birth_date = $birth_date, p.nationality = $nationality,
    p.position = $position, p.jersey_number = $jersey_number`,
			params: map[string]any{
				"player_id": p.PlayerID, "name": p.Name, "birth_date": p.BirthDate,
				"nationality": p.Nationality, "position": p.Position,
				"jersey_number": p.JerseyNumber,
			},
		})
	}

	for _, c := range ds.Competitions {
		tasks = append(tasks, writeTask{
			query: `MERGE (c:Competition {competition_id: $competition_id})
SET c.name = $name, c.season = $season, c.type = $type, c.tier = $tier`,
			params: map[string]any{
				"competition_id": c.CompetitionID, "name": c.Name,
				"season": c.Season, "type": c.Type, "tier": c.Tier,
			},
		})
	}

	for _, c := range ds.Coaches {
		tasks = append(tasks, writeTask{
			query: `MERGE (co:Coach {coach_id: $coach_id})
SET co.name = $name, co.nationality = $nationality, co.birth_date = $birth_date`,
			params: map[string]any{
				"coach_id": c.CoachID, "name": c.Name,
				"nationality": c.Nationality, "birth_date": c.BirthDate,
			},
		})
	}

	for _, m := range ds.Matches {
		if err := validateMatchRecord(m); err != nil {
			im.logger.Warn("skipping invalid match row", "match_id", m.MatchID, "error", err)
			im.skipped.Add(1)
			continue
		}
		tasks = append(tasks, writeTask{
			query: `MERGE (m:Match {match_id: $match_id})
SET m.date = $date, m.home_team_id = $home_team_id, m.away_team_id = $away_team_id,
    m.home_score = $home_score, m.away_score = $away_score,
    m.round = $round, m.attendance = $attendance, m.referee = $referee`,
			params: map[string]any{
				"match_id": m.MatchID, "date": m.Date,
				"home_team_id": m.HomeTeamID, "away_team_id": m.AwayTeamID,
				"home_score": m.HomeScore, "away_score": m.AwayScore,
				"round": m.Round, "attendance": m.Attendance, "referee": m.Referee,
			},
		})
	}

	return tasks
}

func validateMatchRecord(m matchRecord) error {
	date, err := time.Parse("2006-01-02", m.Date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", m.Date, err)
	}

	candidate := match.Match{
		ID:         m.MatchID,
		Date:       date,
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
		HomeScore:  m.HomeScore,
		AwayScore:  m.AwayScore,
	}

	return candidate.Validate()
}

func (im *importer) relationshipTasks(ds dataset) []writeTask {
	rels := ds.Relationships
	var tasks []writeTask

	for _, r := range rels.PlaysFor {
		tasks = append(tasks, writeTask{
			query: `MATCH (p:Player {player_id: $player_id})
MATCH (t:Team {team_id: $team_id})
MERGE (p)-[rel:PLAYS_FOR {from_date: $from_date}]->(t)
SET rel.to_date = $to_date, rel.jersey_number = $jersey_number`,
			params: map[string]any{
				"player_id": r.PlayerID, "team_id": r.TeamID,
				"from_date": r.FromDate, "to_date": nullableDate(r.ToDate),
				"jersey_number": r.JerseyNumber,
			},
		})
	}

	for _, r := range rels.Goals {
		tasks = append(tasks, writeTask{
			query: `MATCH (p:Player {player_id: $player_id})
MATCH (m:Match {match_id: $match_id})
CREATE (p)-[:SCORED_IN {team_id: $team_id, minute: $minute, goal_type: $goal_type}]->(m)`,
			params: map[string]any{
				"player_id": r.PlayerID, "match_id": r.MatchID,
				"team_id": r.TeamID, "minute": r.Minute, "goal_type": r.GoalType,
			},
		})
	}

	for _, r := range rels.Assists {
		tasks = append(tasks, writeTask{
			query: `MATCH (p:Player {player_id: $player_id})
MATCH (m:Match {match_id: $match_id})
CREATE (p)-[:ASSISTED_IN {team_id: $team_id, minute: $minute}]->(m)`,
			params: map[string]any{
				"player_id": r.PlayerID, "match_id": r.MatchID,
				"team_id": r.TeamID, "minute": r.Minute,
			},
		})
	}

	for _, r := range rels.Appearances {
		tasks = append(tasks, writeTask{
			query: `MATCH (p:Player {player_id: $player_id})
MATCH (m:Match {match_id: $match_id})
MERGE (p)-[rel:PLAYED_IN]->(m)
SET rel.team_id = $team_id, rel.position = $position`,
			params: map[string]any{
				"player_id": r.PlayerID, "match_id": r.MatchID,
				"team_id": r.TeamID, "position": r.Position,
			},
		})
	}

	for _, r := range rels.Cards {
		tasks = append(tasks, writeTask{
			query: `MATCH (p:Player {player_id: $player_id})
MATCH (m:Match {match_id: $match_id})
CREATE (p)-[:RECEIVED_CARD {team_id: $team_id, minute: $minute, card_type: $card_type}]->(m)`,
			params: map[string]any{
				"player_id": r.PlayerID, "match_id": r.MatchID,
				"team_id": r.TeamID, "minute": r.Minute, "card_type": r.CardType,
			},
		})
	}

	// Both edges of a transfer share a transfer_id so reads can pair them
	// even when a player moves twice on the same date.
	for _, r := range rels.Transfers {
		transferID := r.PlayerID + ":" + r.TransferDate + ":" + r.ToTeamID
		params := map[string]any{
			"player_id": r.PlayerID, "from_team_id": r.FromTeamID,
			"to_team_id": r.ToTeamID, "transfer_id": transferID,
			"transfer_date": r.TransferDate, "fee": r.Fee, "loan": r.Loan,
		}
		tasks = append(tasks, writeTask{
			query: `MATCH (p:Player {player_id: $player_id})
MATCH (t:Team {team_id: $from_team_id})
MERGE (p)-[rel:TRANSFERRED_FROM {transfer_id: $transfer_id}]->(t)
SET rel.transfer_date = $transfer_date, rel.fee = $fee, rel.loan = $loan`,
			params: params,
		})
		tasks = append(tasks, writeTask{
			query: `MATCH (p:Player {player_id: $player_id})
MATCH (t:Team {team_id: $to_team_id})
MERGE (p)-[rel:TRANSFERRED_TO {transfer_id: $transfer_id}]->(t)
SET rel.transfer_date = $transfer_date, rel.fee = $fee, rel.loan = $loan`,
			params: params,
		})
	}

	for _, r := range rels.MatchCompetitions {
		tasks = append(tasks, writeTask{
			query: `MATCH (m:Match {match_id: $match_id})
MATCH (c:Competition {competition_id: $competition_id})
MERGE (m)-[:PART_OF]->(c)`,
			params: map[string]any{"match_id": r.MatchID, "competition_id": r.CompetitionID},
		})
	}

	// One COMPETED_IN edge per team per match, tagged with the side the
	// team played on. Competition participation is derived through PART_OF.
	for _, r := range rels.MatchTeams {
		tasks = append(tasks, writeTask{
			query: `MATCH (t:Team {team_id: $team_id})
MATCH (m:Match {match_id: $match_id})
MERGE (t)-[rel:COMPETED_IN]->(m)
SET rel.side = $side`,
			params: map[string]any{"team_id": r.TeamID, "match_id": r.MatchID, "side": r.Side},
		})
	}

	for _, r := range rels.Championships {
		tasks = append(tasks, writeTask{
			query: `MATCH (t:Team {team_id: $team_id})
MATCH (c:Competition {competition_id: $competition_id})
MERGE (t)-[:WON]->(c)`,
			params: map[string]any{"team_id": r.TeamID, "competition_id": r.CompetitionID},
		})
	}

	for _, r := range rels.TeamStadiums {
		tasks = append(tasks, writeTask{
			query: `MATCH (t:Team {team_id: $team_id})
MATCH (s:Stadium {stadium_id: $stadium_id})
MERGE (t)-[:PLAYS_AT]->(s)`,
			params: map[string]any{"team_id": r.TeamID, "stadium_id": r.StadiumID},
		})
	}

	for _, r := range rels.MatchStadiums {
		tasks = append(tasks, writeTask{
			query: `MATCH (m:Match {match_id: $match_id})
MATCH (s:Stadium {stadium_id: $stadium_id})
MERGE (m)-[:PLAYED_AT]->(s)`,
			params: map[string]any{"match_id": r.MatchID, "stadium_id": r.StadiumID},
		})
	}

	for _, r := range rels.CoachSpells {
		tasks = append(tasks, writeTask{
			query: `MATCH (co:Coach {coach_id: $coach_id})
MATCH (t:Team {team_id: $team_id})
MERGE (co)-[rel:COACHES {from_date: $from_date}]->(t)
SET rel.to_date = $to_date`,
			params: map[string]any{
				"coach_id": r.CoachID, "team_id": r.TeamID,
				"from_date": r.FromDate, "to_date": nullableDate(r.ToDate),
			},
		})
	}

	return tasks
}

func nullableDate(v string) any {
	if v == "" {
		return nil
	}
	return v
}
