package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/ferreiralabs/soccergraph/internal/domain/team"
	"github.com/ferreiralabs/soccergraph/internal/platform/interval"
)

const defaultTeamSearchLimit = 10

// TeamService answers team search, roster, record and history queries.
type TeamService struct {
	teamRepo   team.Repository
	maxResults int
}

func NewTeamService(teamRepo team.Repository, maxResults int) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		maxResults: maxResults,
	}
}

type SearchTeamsInput struct {
	Name  string
	City  string
	Limit int
}

type TeamSummary struct {
	TeamID      string   `json:"team_id"`
	Name        string   `json:"name"`
	City        string   `json:"city,omitempty"`
	Stadium     string   `json:"stadium,omitempty"`
	FoundedYear int      `json:"founded_year,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	Nickname    string   `json:"nickname,omitempty"`
}

func (s *TeamService) SearchTeams(ctx context.Context, in SearchTeamsInput) ([]TeamSummary, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.City = strings.TrimSpace(in.City)
	if in.Name == "" && in.City == "" {
		return nil, fmt.Errorf("%w: at least one of name or city is required", ErrInvalidInput)
	}

	limit := in.Limit
	if limit <= 0 {
		limit = defaultTeamSearchLimit
	}
	if limit > s.maxResults {
		limit = s.maxResults
	}

	teams, err := s.teamRepo.Search(ctx, team.SearchFilter{
		Name:  in.Name,
		City:  in.City,
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search teams: %w", err)
	}

	out := make([]TeamSummary, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamSummary(t))
	}

	return out, nil
}

type RosterEntry struct {
	PlayerID     string `json:"player_id"`
	Name         string `json:"name"`
	Position     string `json:"position,omitempty"`
	JerseyNumber int    `json:"jersey_number,omitempty"`
	Nationality  string `json:"nationality,omitempty"`
	FromDate     string `json:"from_date,omitempty"`
	ToDate       string `json:"to_date,omitempty"`
}

type TeamRoster struct {
	Team              TeamSummary         `json:"team"`
	Season            string              `json:"season,omitempty"`
	Players           []RosterEntry       `json:"players"`
	PlayersByPosition map[string][]string `json:"players_by_position"`
	TotalPlayers      int                 `json:"total_players"`
}

// GetTeamRoster returns the players on the team's books. A season like
// "2023" keeps only spells that cover that year; spells with missing dates
// stay in.
func (s *TeamService) GetTeamRoster(ctx context.Context, teamID, season string) (TeamRoster, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return TeamRoster{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	season = strings.TrimSpace(season)
	seasonYear := 0
	if season != "" {
		year, err := strconv.Atoi(season)
		if err != nil || year <= 0 {
			return TeamRoster{}, fmt.Errorf("%w: season must be a year like %q", ErrInvalidInput, "2023")
		}
		seasonYear = year
	}

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return TeamRoster{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return TeamRoster{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	roster, err := s.teamRepo.ListRoster(ctx, teamID)
	if err != nil {
		return TeamRoster{}, fmt.Errorf("list roster: %w", err)
	}

	players := make([]RosterEntry, 0, len(roster))
	byPosition := make(map[string][]string)
	for _, rp := range roster {
		if seasonYear > 0 && !tenureCoversYear(rp, seasonYear) {
			continue
		}
		players = append(players, RosterEntry{
			PlayerID:     rp.PlayerID,
			Name:         rp.Name,
			Position:     rp.Position,
			JerseyNumber: rp.JerseyNumber,
			Nationality:  rp.Nationality,
			FromDate:     formatDatePtr(rp.From),
			ToDate:       formatDatePtr(rp.To),
		})
		byPosition[rp.Position] = append(byPosition[rp.Position], rp.Name)
	}

	return TeamRoster{
		Team:              teamSummary(t),
		Season:            season,
		Players:           players,
		PlayersByPosition: byPosition,
		TotalPlayers:      len(players),
	}, nil
}

type VenueRecord struct {
	Matches int `json:"matches"`
	Wins    int `json:"wins"`
}

type TeamStats struct {
	TeamID         string      `json:"team_id"`
	TeamName       string      `json:"team_name"`
	Season         string      `json:"season,omitempty"`
	TotalMatches   int         `json:"total_matches"`
	Wins           int         `json:"wins"`
	Draws          int         `json:"draws"`
	Losses         int         `json:"losses"`
	GoalsScored    int         `json:"goals_scored"`
	GoalsConceded  int         `json:"goals_conceded"`
	GoalDifference int         `json:"goal_difference"`
	WinRate        float64     `json:"win_rate"`
	Points         int         `json:"points"`
	HomeRecord     VenueRecord `json:"home_record"`
	AwayRecord     VenueRecord `json:"away_record"`
}

func (s *TeamService) GetTeamStats(ctx context.Context, teamID, season string) (TeamStats, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.GetTeamStats")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return TeamStats{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return TeamStats{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return TeamStats{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	matches, err := s.teamRepo.ListMatches(ctx, teamID, season)
	if err != nil {
		return TeamStats{}, fmt.Errorf("list matches: %w", err)
	}

	stats := tallyTeamStats(teamID, matches)
	stats.TeamName = t.Name
	stats.Season = season

	return stats, nil
}

// tallyTeamStats folds raw fixtures into a win/draw/loss record from the
// given team's point of view.
func tallyTeamStats(teamID string, matches []team.PlayedMatch) TeamStats {
	stats := TeamStats{TeamID: teamID}

	for _, m := range matches {
		home := m.HomeTeamID == teamID
		goalsFor, goalsAgainst := m.HomeScore, m.AwayScore
		if !home {
			goalsFor, goalsAgainst = m.AwayScore, m.HomeScore
		}

		stats.TotalMatches++
		stats.GoalsScored += goalsFor
		stats.GoalsConceded += goalsAgainst

		venue := &stats.AwayRecord
		if home {
			venue = &stats.HomeRecord
		}
		venue.Matches++

		switch {
		case goalsFor > goalsAgainst:
			stats.Wins++
			venue.Wins++
		case goalsFor == goalsAgainst:
			stats.Draws++
		default:
			stats.Losses++
		}
	}

	stats.GoalDifference = stats.GoalsScored - stats.GoalsConceded
	stats.Points = stats.Wins*3 + stats.Draws
	if stats.TotalMatches > 0 {
		stats.WinRate = round2(float64(stats.Wins) / float64(stats.TotalMatches) * 100)
	}

	return stats
}

type CompetitionRef struct {
	CompetitionID string `json:"competition_id"`
	Name          string `json:"name"`
	Season        string `json:"season"`
}

type TeamHistory struct {
	Team                     TeamSummary      `json:"team"`
	StadiumName              string           `json:"stadium_name,omitempty"`
	StadiumCapacity          int              `json:"stadium_capacity,omitempty"`
	CompetitionsParticipated []CompetitionRef `json:"competitions_participated"`
	TotalCompetitions        int              `json:"total_competitions"`
	Championships            []CompetitionRef `json:"championships,omitempty"`
	TotalChampionships       int              `json:"total_championships"`
	AllTimeStats             TeamStats        `json:"all_time_stats"`
}

func (s *TeamService) GetTeamHistory(ctx context.Context, teamID string, includeChampionships bool) (TeamHistory, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.GetTeamHistory")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return TeamHistory{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	profile, exists, err := s.teamRepo.GetProfile(ctx, teamID)
	if err != nil {
		return TeamHistory{}, fmt.Errorf("get team profile: %w", err)
	}
	if !exists {
		return TeamHistory{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	history := TeamHistory{
		Team:                     teamSummary(profile.Team),
		StadiumName:              profile.StadiumName,
		StadiumCapacity:          profile.StadiumCapacity,
		CompetitionsParticipated: []CompetitionRef{},
	}

	grp := pool.New().WithContext(ctx).WithCancelOnError()
	grp.Go(func(ctx context.Context) error {
		entries, err := s.teamRepo.ListCompetitions(ctx, teamID)
		if err != nil {
			return fmt.Errorf("list competitions: %w", err)
		}
		for _, e := range entries {
			history.CompetitionsParticipated = append(history.CompetitionsParticipated, CompetitionRef{
				CompetitionID: e.CompetitionID,
				Name:          e.Name,
				Season:        e.Season,
			})
		}
		return nil
	})
	if includeChampionships {
		grp.Go(func(ctx context.Context) error {
			titles, err := s.teamRepo.ListChampionships(ctx, teamID)
			if err != nil {
				return fmt.Errorf("list championships: %w", err)
			}
			history.Championships = make([]CompetitionRef, 0, len(titles))
			for _, title := range titles {
				history.Championships = append(history.Championships, CompetitionRef{
					CompetitionID: title.CompetitionID,
					Name:          title.Name,
					Season:        title.Season,
				})
			}
			return nil
		})
	}
	grp.Go(func(ctx context.Context) error {
		matches, err := s.teamRepo.ListMatches(ctx, teamID, "")
		if err != nil {
			return fmt.Errorf("list matches: %w", err)
		}
		stats := tallyTeamStats(teamID, matches)
		stats.TeamName = profile.Team.Name
		history.AllTimeStats = stats
		return nil
	})
	if err := grp.Wait(); err != nil {
		return TeamHistory{}, err
	}

	sort.SliceStable(history.CompetitionsParticipated, func(i, j int) bool {
		return history.CompetitionsParticipated[i].Season > history.CompetitionsParticipated[j].Season
	})
	history.TotalCompetitions = len(history.CompetitionsParticipated)
	history.TotalChampionships = len(history.Championships)

	return history, nil
}

func tenureCoversYear(rp team.RosterPlayer, year int) bool {
	return interval.New(rp.From, rp.To).CoversYear(year)
}

func teamSummary(t team.Team) TeamSummary {
	return TeamSummary{
		TeamID:      t.ID,
		Name:        t.Name,
		City:        t.City,
		Stadium:     t.Stadium,
		FoundedYear: t.FoundedYear,
		Colors:      t.Colors,
		Nickname:    t.Nickname,
	}
}
