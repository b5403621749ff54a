package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/ferreiralabs/soccergraph/internal/domain/match"
	"github.com/ferreiralabs/soccergraph/internal/domain/team"
)

const (
	defaultMatchSearchLimit = 20
	defaultRecentMatches    = 5
)

// MatchService answers match detail, search and head-to-head queries.
type MatchService struct {
	matchRepo  match.Repository
	teamRepo   team.Repository
	maxResults int
}

func NewMatchService(matchRepo match.Repository, teamRepo team.Repository, maxResults int) *MatchService {
	return &MatchService{
		matchRepo:  matchRepo,
		teamRepo:   teamRepo,
		maxResults: maxResults,
	}
}

type MatchInfo struct {
	MatchID         string `json:"match_id"`
	Date            string `json:"date"`
	HomeTeamID      string `json:"home_team_id"`
	HomeTeam        string `json:"home_team"`
	AwayTeamID      string `json:"away_team_id"`
	AwayTeam        string `json:"away_team"`
	HomeScore       int    `json:"home_score"`
	AwayScore       int    `json:"away_score"`
	CompetitionName string `json:"competition_name,omitempty"`
	Season          string `json:"season,omitempty"`
	Round           string `json:"round,omitempty"`
	Attendance      int    `json:"attendance,omitempty"`
	Referee         string `json:"referee,omitempty"`
	StadiumName     string `json:"stadium_name,omitempty"`
	StadiumCity     string `json:"stadium_city,omitempty"`
}

type ScorerEntry struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Position   string `json:"position,omitempty"`
	TeamID     string `json:"team_id,omitempty"`
	TeamName   string `json:"team_name,omitempty"`
	Minute     int    `json:"minute"`
	GoalType   string `json:"goal_type,omitempty"`
}

type CardEntry struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	TeamName   string `json:"team_name,omitempty"`
	Minute     int    `json:"minute"`
	CardType   string `json:"card_type"`
}

type MatchDetails struct {
	Match      MatchInfo     `json:"match"`
	Scorers    []ScorerEntry `json:"scorers"`
	Cards      []CardEntry   `json:"cards"`
	TotalGoals int           `json:"total_goals"`
	TotalCards int           `json:"total_cards"`
}

func (s *MatchService) GetMatchDetails(ctx context.Context, matchID string) (MatchDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.GetMatchDetails")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return MatchDetails{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return MatchDetails{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return MatchDetails{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	details := MatchDetails{
		Match:   matchInfo(m),
		Scorers: []ScorerEntry{},
		Cards:   []CardEntry{},
	}

	grp := pool.New().WithContext(ctx).WithCancelOnError()
	grp.Go(func(ctx context.Context) error {
		goals, err := s.matchRepo.ListGoals(ctx, matchID)
		if err != nil {
			return fmt.Errorf("list goals: %w", err)
		}
		details.Scorers = scorerEntries(goals)
		return nil
	})
	grp.Go(func(ctx context.Context) error {
		cards, err := s.matchRepo.ListCards(ctx, matchID)
		if err != nil {
			return fmt.Errorf("list cards: %w", err)
		}
		for _, c := range cards {
			details.Cards = append(details.Cards, CardEntry{
				PlayerID:   c.PlayerID,
				PlayerName: c.PlayerName,
				TeamName:   c.TeamName,
				Minute:     c.Minute,
				CardType:   c.CardType,
			})
		}
		return nil
	})
	if err := grp.Wait(); err != nil {
		return MatchDetails{}, err
	}

	details.TotalGoals = len(details.Scorers)
	details.TotalCards = len(details.Cards)

	return details, nil
}

type SearchMatchesInput struct {
	Team        string
	Competition string
	DateFrom    string
	DateTo      string
	Limit       int
}

type MatchSummary struct {
	MatchID         string `json:"match_id"`
	Date            string `json:"date"`
	HomeTeam        string `json:"home_team"`
	AwayTeam        string `json:"away_team"`
	HomeScore       int    `json:"home_score"`
	AwayScore       int    `json:"away_score"`
	CompetitionName string `json:"competition_name,omitempty"`
	Season          string `json:"season,omitempty"`
}

func (s *MatchService) SearchMatches(ctx context.Context, in SearchMatchesInput) ([]MatchSummary, error) {
	from, err := parseDate(strings.TrimSpace(in.DateFrom))
	if err != nil {
		return nil, fmt.Errorf("%w: date_from must be YYYY-MM-DD", ErrInvalidInput)
	}
	to, err := parseDate(strings.TrimSpace(in.DateTo))
	if err != nil {
		return nil, fmt.Errorf("%w: date_to must be YYYY-MM-DD", ErrInvalidInput)
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, fmt.Errorf("%w: date_from is after date_to", ErrInvalidInput)
	}

	limit := in.Limit
	if limit <= 0 {
		limit = defaultMatchSearchLimit
	}
	if limit > s.maxResults {
		limit = s.maxResults
	}

	matches, err := s.matchRepo.Search(ctx, match.SearchFilter{
		Team:        strings.TrimSpace(in.Team),
		Competition: strings.TrimSpace(in.Competition),
		DateFrom:    from,
		DateTo:      to,
		Limit:       limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search matches: %w", err)
	}

	return matchSummaries(matches), nil
}

type HeadToHeadTeam struct {
	TeamID string `json:"team_id"`
	Name   string `json:"name"`
	Wins   int    `json:"wins"`
	Goals  int    `json:"goals"`
}

type HeadToHead struct {
	Team1         HeadToHeadTeam `json:"team1"`
	Team2         HeadToHeadTeam `json:"team2"`
	TotalMatches  int            `json:"total_matches"`
	Draws         int            `json:"draws"`
	RecentMatches []MatchSummary `json:"recent_matches"`
}

func (s *MatchService) GetHeadToHead(ctx context.Context, team1ID, team2ID string, limit int) (HeadToHead, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.GetHeadToHead")
	defer span.End()

	team1ID = strings.TrimSpace(team1ID)
	team2ID = strings.TrimSpace(team2ID)
	if team1ID == "" || team2ID == "" {
		return HeadToHead{}, fmt.Errorf("%w: both team ids are required", ErrInvalidInput)
	}
	if team1ID == team2ID {
		return HeadToHead{}, fmt.Errorf("%w: team ids must differ", ErrInvalidInput)
	}

	t1, err := s.requireTeam(ctx, team1ID)
	if err != nil {
		return HeadToHead{}, err
	}
	t2, err := s.requireTeam(ctx, team2ID)
	if err != nil {
		return HeadToHead{}, err
	}

	matches, err := s.matchRepo.ListBetween(ctx, team1ID, team2ID, 0)
	if err != nil {
		return HeadToHead{}, fmt.Errorf("list meetings: %w", err)
	}

	out := HeadToHead{
		Team1:        HeadToHeadTeam{TeamID: t1.ID, Name: t1.Name},
		Team2:        HeadToHeadTeam{TeamID: t2.ID, Name: t2.Name},
		TotalMatches: len(matches),
	}
	for _, m := range matches {
		goals1, goals2 := m.HomeScore, m.AwayScore
		if m.HomeTeamID != team1ID {
			goals1, goals2 = goals2, goals1
		}
		out.Team1.Goals += goals1
		out.Team2.Goals += goals2
		switch {
		case goals1 > goals2:
			out.Team1.Wins++
		case goals2 > goals1:
			out.Team2.Wins++
		default:
			out.Draws++
		}
	}

	if limit <= 0 {
		limit = defaultRecentMatches
	}
	if limit > s.maxResults {
		limit = s.maxResults
	}
	if limit > len(matches) {
		limit = len(matches)
	}
	out.RecentMatches = matchSummaries(matches[:limit])

	return out, nil
}

type MatchScorers struct {
	MatchID    string        `json:"match_id"`
	Scorers    []ScorerEntry `json:"scorers"`
	TotalGoals int           `json:"total_goals"`
}

func (s *MatchService) GetMatchScorers(ctx context.Context, matchID string) (MatchScorers, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return MatchScorers{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	_, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return MatchScorers{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return MatchScorers{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	goals, err := s.matchRepo.ListGoals(ctx, matchID)
	if err != nil {
		return MatchScorers{}, fmt.Errorf("list goals: %w", err)
	}

	scorers := scorerEntries(goals)

	return MatchScorers{
		MatchID:    matchID,
		Scorers:    scorers,
		TotalGoals: len(scorers),
	}, nil
}

func (s *MatchService) requireTeam(ctx context.Context, teamID string) (team.Team, error) {
	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	return t, nil
}

func matchInfo(m match.Match) MatchInfo {
	return MatchInfo{
		MatchID:         m.ID,
		Date:            formatDate(m.Date),
		HomeTeamID:      m.HomeTeamID,
		HomeTeam:        m.HomeTeam,
		AwayTeamID:      m.AwayTeamID,
		AwayTeam:        m.AwayTeam,
		HomeScore:       m.HomeScore,
		AwayScore:       m.AwayScore,
		CompetitionName: m.CompetitionName,
		Season:          m.Season,
		Round:           m.Round,
		Attendance:      m.Attendance,
		Referee:         m.Referee,
		StadiumName:     m.StadiumName,
		StadiumCity:     m.StadiumCity,
	}
}

func matchSummaries(matches []match.Match) []MatchSummary {
	out := make([]MatchSummary, 0, len(matches))
	for _, m := range matches {
		out = append(out, MatchSummary{
			MatchID:         m.ID,
			Date:            formatDate(m.Date),
			HomeTeam:        m.HomeTeam,
			AwayTeam:        m.AwayTeam,
			HomeScore:       m.HomeScore,
			AwayScore:       m.AwayScore,
			CompetitionName: m.CompetitionName,
			Season:          m.Season,
		})
	}

	return out
}

func scorerEntries(goals []match.Goal) []ScorerEntry {
	out := make([]ScorerEntry, 0, len(goals))
	for _, g := range goals {
		out = append(out, ScorerEntry{
			PlayerID:   g.PlayerID,
			PlayerName: g.PlayerName,
			Position:   g.Position,
			TeamID:     g.TeamID,
			TeamName:   g.TeamName,
			Minute:     g.Minute,
			GoalType:   g.GoalType,
		})
	}

	return out
}
