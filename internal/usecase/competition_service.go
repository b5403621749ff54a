package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ferreiralabs/soccergraph/internal/domain/competition"
	"github.com/ferreiralabs/soccergraph/internal/platform/cache"
)

const defaultTopScorers = 20

// CompetitionService answers standings, top scorer and fixture queries for
// one competition edition. Computed tables are cached when a store is
// configured; edition data only changes on import.
type CompetitionService struct {
	competitionRepo competition.Repository
	store           *cache.Store
	maxResults      int
}

func NewCompetitionService(competitionRepo competition.Repository, store *cache.Store, maxResults int) *CompetitionService {
	return &CompetitionService{
		competitionRepo: competitionRepo,
		store:           store,
		maxResults:      maxResults,
	}
}

type StandingRow struct {
	Position       int    `json:"position"`
	TeamID         string `json:"team_id"`
	TeamName       string `json:"team_name"`
	Played         int    `json:"played"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
}

type Standings struct {
	Competition CompetitionRef `json:"competition"`
	Standings   []StandingRow  `json:"standings"`
	TotalTeams  int            `json:"total_teams"`
}

func (s *CompetitionService) GetStandings(ctx context.Context, competitionID, season string) (Standings, error) {
	ctx, span := startUsecaseSpan(ctx, "CompetitionService.GetStandings")
	defer span.End()

	comp, err := s.requireCompetition(ctx, competitionID, season)
	if err != nil {
		return Standings{}, err
	}

	key := "standings:" + comp.ID + ":" + comp.Season
	value, err := s.cached(ctx, key, func(ctx context.Context) (any, error) {
		results, err := s.competitionRepo.ListResults(ctx, comp.ID, comp.Season)
		if err != nil {
			return nil, fmt.Errorf("list results: %w", err)
		}
		return buildStandings(comp, results), nil
	})
	if err != nil {
		return Standings{}, err
	}

	return value.(Standings), nil
}

// buildStandings folds match results into a table. Ties break on points,
// goal difference, goals for, then team name and id so the order is stable.
func buildStandings(comp competition.Competition, results []competition.Result) Standings {
	rows := make(map[string]*StandingRow)
	entry := func(teamID, name string) *StandingRow {
		row, ok := rows[teamID]
		if !ok {
			row = &StandingRow{TeamID: teamID, TeamName: name}
			rows[teamID] = row
		}
		return row
	}

	for _, res := range results {
		home := entry(res.HomeTeamID, res.HomeTeam)
		away := entry(res.AwayTeamID, res.AwayTeam)

		home.Played++
		away.Played++
		home.GoalsFor += res.HomeScore
		home.GoalsAgainst += res.AwayScore
		away.GoalsFor += res.AwayScore
		away.GoalsAgainst += res.HomeScore

		switch {
		case res.HomeScore > res.AwayScore:
			home.Wins++
			away.Losses++
		case res.HomeScore < res.AwayScore:
			away.Wins++
			home.Losses++
		default:
			home.Draws++
			away.Draws++
		}
	}

	table := make([]StandingRow, 0, len(rows))
	for _, row := range rows {
		row.GoalDifference = row.GoalsFor - row.GoalsAgainst
		row.Points = row.Wins*3 + row.Draws
		table = append(table, *row)
	}

	sort.SliceStable(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		if a.TeamName != b.TeamName {
			return a.TeamName < b.TeamName
		}
		return a.TeamID < b.TeamID
	})
	for i := range table {
		table[i].Position = i + 1
	}

	return Standings{
		Competition: competitionRef(comp),
		Standings:   table,
		TotalTeams:  len(table),
	}
}

type ScorerRank struct {
	Rank       int    `json:"rank"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Position   string `json:"position,omitempty"`
	TeamName   string `json:"team_name,omitempty"`
	Goals      int    `json:"goals"`
}

type TopScorers struct {
	Competition  CompetitionRef `json:"competition"`
	TopScorers   []ScorerRank   `json:"top_scorers"`
	TotalScorers int            `json:"total_scorers"`
}

func (s *CompetitionService) GetTopScorers(ctx context.Context, competitionID, season string, limit int) (TopScorers, error) {
	ctx, span := startUsecaseSpan(ctx, "CompetitionService.GetTopScorers")
	defer span.End()

	comp, err := s.requireCompetition(ctx, competitionID, season)
	if err != nil {
		return TopScorers{}, err
	}

	if limit <= 0 {
		limit = defaultTopScorers
	}
	if limit > s.maxResults {
		limit = s.maxResults
	}

	key := "topscorers:" + comp.ID + ":" + comp.Season
	value, err := s.cached(ctx, key, func(ctx context.Context) (any, error) {
		goals, err := s.competitionRepo.ListGoals(ctx, comp.ID, comp.Season)
		if err != nil {
			return nil, fmt.Errorf("list goals: %w", err)
		}
		return rankScorers(goals), nil
	})
	if err != nil {
		return TopScorers{}, err
	}

	ranking := value.([]ScorerRank)
	if limit > len(ranking) {
		limit = len(ranking)
	}

	return TopScorers{
		Competition:  competitionRef(comp),
		TopScorers:   ranking[:limit],
		TotalScorers: limit,
	}, nil
}

func rankScorers(goals []competition.Goal) []ScorerRank {
	tallies := make(map[string]*ScorerRank)
	for _, g := range goals {
		row, ok := tallies[g.PlayerID]
		if !ok {
			row = &ScorerRank{
				PlayerID:   g.PlayerID,
				PlayerName: g.PlayerName,
				Position:   g.Position,
				TeamName:   g.TeamName,
			}
			tallies[g.PlayerID] = row
		}
		row.Goals++
	}

	ranking := make([]ScorerRank, 0, len(tallies))
	for _, row := range tallies {
		ranking = append(ranking, *row)
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].Goals != ranking[j].Goals {
			return ranking[i].Goals > ranking[j].Goals
		}
		return ranking[i].PlayerName < ranking[j].PlayerName
	})
	for i := range ranking {
		ranking[i].Rank = i + 1
	}

	return ranking
}

type FixtureEntry struct {
	MatchID    string `json:"match_id"`
	Date       string `json:"date"`
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	HomeScore  int    `json:"home_score"`
	AwayScore  int    `json:"away_score"`
	Round      string `json:"round,omitempty"`
	Attendance int    `json:"attendance,omitempty"`
}

type CompetitionMatches struct {
	Competition  CompetitionRef `json:"competition"`
	Matches      []FixtureEntry `json:"matches"`
	TotalMatches int            `json:"total_matches"`
}

func (s *CompetitionService) GetCompetitionMatches(ctx context.Context, competitionID, season, teamFilter, round string) (CompetitionMatches, error) {
	comp, err := s.requireCompetition(ctx, competitionID, season)
	if err != nil {
		return CompetitionMatches{}, err
	}

	fixtures, err := s.competitionRepo.ListFixtures(ctx, comp.ID, comp.Season, competition.FixtureFilter{
		Team:  strings.TrimSpace(teamFilter),
		Round: strings.TrimSpace(round),
	})
	if err != nil {
		return CompetitionMatches{}, fmt.Errorf("list fixtures: %w", err)
	}

	entries := make([]FixtureEntry, 0, len(fixtures))
	for _, f := range fixtures {
		entries = append(entries, FixtureEntry{
			MatchID:    f.MatchID,
			Date:       formatDate(f.Date),
			HomeTeam:   f.HomeTeam,
			AwayTeam:   f.AwayTeam,
			HomeScore:  f.HomeScore,
			AwayScore:  f.AwayScore,
			Round:      f.Round,
			Attendance: f.Attendance,
		})
	}

	return CompetitionMatches{
		Competition:  competitionRef(comp),
		Matches:      entries,
		TotalMatches: len(entries),
	}, nil
}

func (s *CompetitionService) requireCompetition(ctx context.Context, competitionID, season string) (competition.Competition, error) {
	competitionID = strings.TrimSpace(competitionID)
	season = strings.TrimSpace(season)
	if competitionID == "" {
		return competition.Competition{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}
	if season == "" {
		return competition.Competition{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}

	comp, exists, err := s.competitionRepo.Get(ctx, competitionID, season)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return competition.Competition{}, fmt.Errorf("%w: competition=%s season=%s", ErrNotFound, competitionID, season)
	}

	return comp, nil
}

func (s *CompetitionService) cached(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if s.store == nil {
		return loader(ctx)
	}
	return s.store.GetOrLoad(ctx, key, loader)
}

func competitionRef(c competition.Competition) CompetitionRef {
	return CompetitionRef{
		CompetitionID: c.ID,
		Name:          c.Name,
		Season:        c.Season,
	}
}
