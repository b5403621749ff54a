package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/ferreiralabs/soccergraph/internal/domain/match"
	"github.com/ferreiralabs/soccergraph/internal/domain/player"
	"github.com/ferreiralabs/soccergraph/internal/domain/team"
)

const (
	rivalryBiggestWins = 5
	rivalryTopScorers  = 10
	careerPathMaxTotal = 50
)

// AnalysisService answers the cross-entity queries: shared teammates,
// rivalry records and career path searches.
type AnalysisService struct {
	playerRepo player.Repository
	teamRepo   team.Repository
	matchRepo  match.Repository
}

func NewAnalysisService(playerRepo player.Repository, teamRepo team.Repository, matchRepo match.Repository) *AnalysisService {
	return &AnalysisService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
	}
}

type PlayerRef struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

type TeammateEntry struct {
	PlayerID string   `json:"player_id"`
	Name     string   `json:"name"`
	Teams    []string `json:"teams"`
}

type CommonTeammates struct {
	Player1              PlayerRef       `json:"player1"`
	Player2              PlayerRef       `json:"player2"`
	CommonTeammates      []TeammateEntry `json:"common_teammates"`
	TotalCommonTeammates int             `json:"total_common_teammates"`
}

// FindCommonTeammates returns every player who was on the books of a club
// where both given players held spells, with the candidate's spell
// overlapping one of each player's spells at that club. Overlap uses
// open-ended semantics: a missing date does not exclude a spell.
func (s *AnalysisService) FindCommonTeammates(ctx context.Context, player1ID, player2ID string) (CommonTeammates, error) {
	ctx, span := startUsecaseSpan(ctx, "AnalysisService.FindCommonTeammates")
	defer span.End()

	player1ID = strings.TrimSpace(player1ID)
	player2ID = strings.TrimSpace(player2ID)
	if player1ID == "" || player2ID == "" {
		return CommonTeammates{}, fmt.Errorf("%w: both player ids are required", ErrInvalidInput)
	}
	if player1ID == player2ID {
		return CommonTeammates{}, fmt.Errorf("%w: player ids must differ", ErrInvalidInput)
	}

	p1, err := s.requirePlayer(ctx, player1ID)
	if err != nil {
		return CommonTeammates{}, err
	}
	p2, err := s.requirePlayer(ctx, player2ID)
	if err != nil {
		return CommonTeammates{}, err
	}

	var tenures1, tenures2 []player.Tenure
	grp := pool.New().WithContext(ctx).WithCancelOnError()
	grp.Go(func(ctx context.Context) error {
		var err error
		tenures1, err = s.playerRepo.ListTenures(ctx, player1ID)
		if err != nil {
			return fmt.Errorf("list tenures: %w", err)
		}
		return nil
	})
	grp.Go(func(ctx context.Context) error {
		var err error
		tenures2, err = s.playerRepo.ListTenures(ctx, player2ID)
		if err != nil {
			return fmt.Errorf("list tenures: %w", err)
		}
		return nil
	})
	if err := grp.Wait(); err != nil {
		return CommonTeammates{}, err
	}

	spells1 := groupSpellsByTeam(tenures1)
	spells2 := groupSpellsByTeam(tenures2)

	// Only clubs both players passed through can host a common teammate.
	teammates := make(map[string]*TeammateEntry)
	for teamID, own1 := range spells1 {
		own2, ok := spells2[teamID]
		if !ok {
			continue
		}
		roster, err := s.playerRepo.ListTenuresForTeam(ctx, teamID)
		if err != nil {
			return CommonTeammates{}, fmt.Errorf("list team tenures: %w", err)
		}
		for _, candidate := range roster {
			if candidate.PlayerID == player1ID || candidate.PlayerID == player2ID {
				continue
			}
			if !overlapsAny(candidate, own1) || !overlapsAny(candidate, own2) {
				continue
			}
			entry, ok := teammates[candidate.PlayerID]
			if !ok {
				entry = &TeammateEntry{PlayerID: candidate.PlayerID, Name: candidate.PlayerName}
				teammates[candidate.PlayerID] = entry
			}
			entry.Teams = mergeTeamNames(entry.Teams, []string{candidate.TeamName})
		}
	}

	common := make([]TeammateEntry, 0, len(teammates))
	for _, entry := range teammates {
		common = append(common, *entry)
	}
	sort.SliceStable(common, func(i, j int) bool { return common[i].Name < common[j].Name })

	return CommonTeammates{
		Player1:              PlayerRef{PlayerID: p1.ID, Name: p1.Name},
		Player2:              PlayerRef{PlayerID: p2.ID, Name: p2.Name},
		CommonTeammates:      common,
		TotalCommonTeammates: len(common),
	}, nil
}

func groupSpellsByTeam(tenures []player.Tenure) map[string][]player.Tenure {
	spells := make(map[string][]player.Tenure, len(tenures))
	for _, tenure := range tenures {
		spells[tenure.TeamID] = append(spells[tenure.TeamID], tenure)
	}

	return spells
}

func overlapsAny(candidate player.Tenure, spells []player.Tenure) bool {
	for _, spell := range spells {
		if spell.Interval().Overlaps(candidate.Interval()) {
			return true
		}
	}

	return false
}

type RivalTeam struct {
	TeamID string `json:"team_id"`
	Name   string `json:"name"`
	Wins   int    `json:"wins"`
	Goals  int    `json:"goals"`
}

type RivalryTeams struct {
	Team1 RivalTeam `json:"team1"`
	Team2 RivalTeam `json:"team2"`
}

type RivalryOverall struct {
	TotalMatches  int `json:"total_matches"`
	Draws         int `json:"draws"`
	BiggestMargin int `json:"biggest_margin"`
}

type BiggestWin struct {
	Date   string `json:"date"`
	Winner string `json:"winner"`
	Score  string `json:"score"`
	Margin int    `json:"margin"`
}

type RivalScorer struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	TeamName string `json:"team_name,omitempty"`
	Goals    int    `json:"goals"`
}

type RivalryStats struct {
	Teams            RivalryTeams   `json:"teams"`
	Overall          RivalryOverall `json:"overall"`
	BiggestVictories []BiggestWin   `json:"biggest_victories"`
	TopScorers       []RivalScorer  `json:"top_scorers"`
	TimePeriod       string         `json:"time_period"`
}

func (s *AnalysisService) GetRivalryStats(ctx context.Context, team1ID, team2ID string, years int) (RivalryStats, error) {
	ctx, span := startUsecaseSpan(ctx, "AnalysisService.GetRivalryStats")
	defer span.End()

	team1ID = strings.TrimSpace(team1ID)
	team2ID = strings.TrimSpace(team2ID)
	if team1ID == "" || team2ID == "" {
		return RivalryStats{}, fmt.Errorf("%w: both team ids are required", ErrInvalidInput)
	}
	if team1ID == team2ID {
		return RivalryStats{}, fmt.Errorf("%w: team ids must differ", ErrInvalidInput)
	}
	if years < 0 {
		return RivalryStats{}, fmt.Errorf("%w: years must not be negative", ErrInvalidInput)
	}

	t1, err := s.requireTeam(ctx, team1ID)
	if err != nil {
		return RivalryStats{}, err
	}
	t2, err := s.requireTeam(ctx, team2ID)
	if err != nil {
		return RivalryStats{}, err
	}

	sinceYear := 0
	timePeriod := "All time"
	if years > 0 {
		sinceYear = time.Now().Year() - years
		timePeriod = fmt.Sprintf("Last %d years", years)
	}

	var meetings []match.Match
	var goals []match.Goal
	grp := pool.New().WithContext(ctx).WithCancelOnError()
	grp.Go(func(ctx context.Context) error {
		var err error
		meetings, err = s.matchRepo.ListBetween(ctx, team1ID, team2ID, sinceYear)
		if err != nil {
			return fmt.Errorf("list meetings: %w", err)
		}
		return nil
	})
	grp.Go(func(ctx context.Context) error {
		var err error
		goals, err = s.matchRepo.ListGoalsBetween(ctx, team1ID, team2ID, sinceYear)
		if err != nil {
			return fmt.Errorf("list goals: %w", err)
		}
		return nil
	})
	if err := grp.Wait(); err != nil {
		return RivalryStats{}, err
	}

	stats := RivalryStats{
		Teams: RivalryTeams{
			Team1: RivalTeam{TeamID: t1.ID, Name: t1.Name},
			Team2: RivalTeam{TeamID: t2.ID, Name: t2.Name},
		},
		Overall:          RivalryOverall{TotalMatches: len(meetings)},
		BiggestVictories: []BiggestWin{},
		TimePeriod:       timePeriod,
	}

	wins := make([]BiggestWin, 0, len(meetings))
	for _, m := range meetings {
		goals1, goals2 := m.HomeScore, m.AwayScore
		if m.HomeTeamID != team1ID {
			goals1, goals2 = goals2, goals1
		}
		stats.Teams.Team1.Goals += goals1
		stats.Teams.Team2.Goals += goals2

		margin := goals1 - goals2
		winner := stats.Teams.Team1.Name
		switch {
		case margin > 0:
			stats.Teams.Team1.Wins++
		case margin < 0:
			stats.Teams.Team2.Wins++
			margin = -margin
			winner = stats.Teams.Team2.Name
		default:
			stats.Overall.Draws++
			continue
		}

		if margin > stats.Overall.BiggestMargin {
			stats.Overall.BiggestMargin = margin
		}
		wins = append(wins, BiggestWin{
			Date:   formatDate(m.Date),
			Winner: winner,
			Score:  fmt.Sprintf("%d-%d", m.HomeScore, m.AwayScore),
			Margin: margin,
		})
	}

	// Meetings arrive newest first, so the stable sort keeps the most
	// recent win ahead on equal margins.
	sort.SliceStable(wins, func(i, j int) bool { return wins[i].Margin > wins[j].Margin })
	if len(wins) > rivalryBiggestWins {
		wins = wins[:rivalryBiggestWins]
	}
	stats.BiggestVictories = wins

	stats.TopScorers = rankRivalScorers(goals)

	return stats, nil
}

func rankRivalScorers(goals []match.Goal) []RivalScorer {
	tallies := make(map[string]*RivalScorer)
	for _, g := range goals {
		row, ok := tallies[g.PlayerID]
		if !ok {
			row = &RivalScorer{PlayerID: g.PlayerID, Name: g.PlayerName, TeamName: g.TeamName}
			tallies[g.PlayerID] = row
		}
		row.Goals++
	}

	ranking := make([]RivalScorer, 0, len(tallies))
	for _, row := range tallies {
		ranking = append(ranking, *row)
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].Goals != ranking[j].Goals {
			return ranking[i].Goals > ranking[j].Goals
		}
		return ranking[i].Name < ranking[j].Name
	})
	if len(ranking) > rivalryTopScorers {
		ranking = ranking[:rivalryTopScorers]
	}

	return ranking
}

type CareerPathInput struct {
	Teams     []string
	Positions []string
	MinTeams  int
	MinGoals  int
}

type CareerPathEntry struct {
	PlayerID    string   `json:"player_id"`
	Name        string   `json:"name"`
	Position    string   `json:"position,omitempty"`
	Nationality string   `json:"nationality,omitempty"`
	Teams       []string `json:"teams"`
	NumTeams    int      `json:"num_teams"`
}

type CareerPathResult struct {
	Players      []CareerPathEntry `json:"players"`
	TotalPlayers int               `json:"total_players"`
}

// FindPlayersByCareerPath matches players who passed through every named
// club, then applies the career thresholds. Every criterion is optional;
// position-only or goals-only searches skip the club traversal entirely.
func (s *AnalysisService) FindPlayersByCareerPath(ctx context.Context, in CareerPathInput) (CareerPathResult, error) {
	ctx, span := startUsecaseSpan(ctx, "AnalysisService.FindPlayersByCareerPath")
	defer span.End()

	teams := make([]string, 0, len(in.Teams))
	for _, name := range in.Teams {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			teams = append(teams, trimmed)
		}
	}
	if in.MinTeams < 0 || in.MinGoals < 0 {
		return CareerPathResult{}, fmt.Errorf("%w: thresholds must not be negative", ErrInvalidInput)
	}

	rows, err := s.playerRepo.FindByCareerPath(ctx, player.CareerPathQuery{
		Teams:     teams,
		Positions: in.Positions,
		MinTeams:  in.MinTeams,
		MinGoals:  in.MinGoals,
	})
	if err != nil {
		return CareerPathResult{}, fmt.Errorf("find by career path: %w", err)
	}

	players := make([]CareerPathEntry, 0, len(rows))
	for _, row := range rows {
		if in.MinTeams > 0 && len(row.Teams) < in.MinTeams {
			continue
		}
		if in.MinGoals > 0 && row.Goals < in.MinGoals {
			continue
		}
		players = append(players, CareerPathEntry{
			PlayerID:    row.PlayerID,
			Name:        row.Name,
			Position:    row.Position,
			Nationality: row.Nationality,
			Teams:       row.Teams,
			NumTeams:    len(row.Teams),
		})
	}

	sort.SliceStable(players, func(i, j int) bool {
		if players[i].NumTeams != players[j].NumTeams {
			return players[i].NumTeams > players[j].NumTeams
		}
		return players[i].Name < players[j].Name
	})
	if len(players) > careerPathMaxTotal {
		players = players[:careerPathMaxTotal]
	}

	return CareerPathResult{
		Players:      players,
		TotalPlayers: len(players),
	}, nil
}

func (s *AnalysisService) requirePlayer(ctx context.Context, playerID string) (player.Player, error) {
	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return p, nil
}

func (s *AnalysisService) requireTeam(ctx context.Context, teamID string) (team.Team, error) {
	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	return t, nil
}

// mergeTeamNames unions two sorted-or-unsorted name lists without duplicates.
func mergeTeamNames(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, name := range append(append([]string{}, a...), b...) {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}
