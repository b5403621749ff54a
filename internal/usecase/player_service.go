package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/ferreiralabs/soccergraph/internal/domain/player"
)

const defaultPlayerSearchLimit = 10

// PlayerService answers player search, statistics, career and transfer
// queries.
type PlayerService struct {
	playerRepo player.Repository
	maxResults int
}

func NewPlayerService(playerRepo player.Repository, maxResults int) *PlayerService {
	return &PlayerService{
		playerRepo: playerRepo,
		maxResults: maxResults,
	}
}

type SearchPlayersInput struct {
	Name     string
	Team     string
	Position string
	Limit    int
}

type PlayerSummary struct {
	PlayerID     string `json:"player_id"`
	Name         string `json:"name"`
	BirthDate    string `json:"birth_date,omitempty"`
	Nationality  string `json:"nationality,omitempty"`
	Position     string `json:"position,omitempty"`
	JerseyNumber int    `json:"jersey_number,omitempty"`
}

func (s *PlayerService) SearchPlayers(ctx context.Context, in SearchPlayersInput) ([]PlayerSummary, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Team = strings.TrimSpace(in.Team)
	in.Position = strings.TrimSpace(in.Position)
	if in.Name == "" && in.Team == "" && in.Position == "" {
		return nil, fmt.Errorf("%w: at least one of name, team or position is required", ErrInvalidInput)
	}

	players, err := s.playerRepo.Search(ctx, player.SearchFilter{
		Name:     in.Name,
		Team:     in.Team,
		Position: in.Position,
		Limit:    s.clampLimit(in.Limit),
	})
	if err != nil {
		return nil, fmt.Errorf("search players: %w", err)
	}

	out := make([]PlayerSummary, 0, len(players))
	for _, p := range players {
		out = append(out, playerSummary(p))
	}

	return out, nil
}

type PlayerStats struct {
	PlayerID     string   `json:"player_id"`
	PlayerName   string   `json:"player_name"`
	Position     string   `json:"position,omitempty"`
	Season       string   `json:"season,omitempty"`
	TotalGoals   int      `json:"total_goals"`
	TotalAssists int      `json:"total_assists"`
	TotalMatches int      `json:"total_matches"`
	YellowCards  int      `json:"yellow_cards"`
	RedCards     int      `json:"red_cards"`
	Teams        []string `json:"teams"`
}

func (s *PlayerService) GetPlayerStats(ctx context.Context, playerID, season string) (PlayerStats, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.GetPlayerStats")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return PlayerStats{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return PlayerStats{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return PlayerStats{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	stats := PlayerStats{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Position:   p.Position,
		Season:     season,
		Teams:      []string{},
	}

	// The five tallies hit disjoint edge types, so they run concurrently.
	grp := pool.New().WithContext(ctx).WithCancelOnError()
	grp.Go(func(ctx context.Context) error {
		goals, err := s.playerRepo.CountGoals(ctx, playerID, season)
		if err != nil {
			return fmt.Errorf("count goals: %w", err)
		}
		stats.TotalGoals = goals
		return nil
	})
	grp.Go(func(ctx context.Context) error {
		assists, err := s.playerRepo.CountAssists(ctx, playerID, season)
		if err != nil {
			return fmt.Errorf("count assists: %w", err)
		}
		stats.TotalAssists = assists
		return nil
	})
	grp.Go(func(ctx context.Context) error {
		matches, err := s.playerRepo.CountMatches(ctx, playerID, season)
		if err != nil {
			return fmt.Errorf("count matches: %w", err)
		}
		stats.TotalMatches = matches
		return nil
	})
	grp.Go(func(ctx context.Context) error {
		cards, err := s.playerRepo.CountCards(ctx, playerID, season)
		if err != nil {
			return fmt.Errorf("count cards: %w", err)
		}
		stats.YellowCards = cards.Yellow
		stats.RedCards = cards.Red
		return nil
	})
	grp.Go(func(ctx context.Context) error {
		tenures, err := s.playerRepo.ListTenures(ctx, playerID)
		if err != nil {
			return fmt.Errorf("list tenures: %w", err)
		}
		for _, tenure := range tenures {
			stats.Teams = append(stats.Teams, tenure.TeamName)
		}
		return nil
	})
	if err := grp.Wait(); err != nil {
		return PlayerStats{}, err
	}

	return stats, nil
}

type CareerTeam struct {
	TeamID   string `json:"team_id"`
	Name     string `json:"name"`
	FromDate string `json:"from_date,omitempty"`
	ToDate   string `json:"to_date,omitempty"`
}

type TransferRecord struct {
	FromTeam     string   `json:"from_team"`
	ToTeam       string   `json:"to_team"`
	TransferDate string   `json:"transfer_date"`
	Fee          *float64 `json:"fee"`
	Loan         bool     `json:"loan"`
}

type PlayerCareer struct {
	PlayerID    string           `json:"player_id"`
	Name        string           `json:"name"`
	BirthDate   string           `json:"birth_date,omitempty"`
	Nationality string           `json:"nationality,omitempty"`
	Position    string           `json:"position,omitempty"`
	Teams       []CareerTeam     `json:"teams"`
	Transfers   []TransferRecord `json:"transfers"`
	CareerStats PlayerStats      `json:"career_stats"`
}

func (s *PlayerService) GetPlayerCareer(ctx context.Context, playerID string) (PlayerCareer, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.GetPlayerCareer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return PlayerCareer{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return PlayerCareer{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return PlayerCareer{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	career := PlayerCareer{
		PlayerID:    p.ID,
		Name:        p.Name,
		BirthDate:   formatDatePtr(p.BirthDate),
		Nationality: p.Nationality,
		Position:    p.Position,
		Teams:       []CareerTeam{},
		Transfers:   []TransferRecord{},
	}

	grp := pool.New().WithContext(ctx).WithCancelOnError()
	grp.Go(func(ctx context.Context) error {
		tenures, err := s.playerRepo.ListTenures(ctx, playerID)
		if err != nil {
			return fmt.Errorf("list tenures: %w", err)
		}
		for _, tenure := range tenures {
			career.Teams = append(career.Teams, CareerTeam{
				TeamID:   tenure.TeamID,
				Name:     tenure.TeamName,
				FromDate: formatDatePtr(tenure.From),
				ToDate:   formatDatePtr(tenure.To),
			})
		}
		return nil
	})
	grp.Go(func(ctx context.Context) error {
		transfers, err := s.playerRepo.ListTransfers(ctx, playerID, 0)
		if err != nil {
			return fmt.Errorf("list transfers: %w", err)
		}
		career.Transfers = transferRecords(transfers)
		return nil
	})
	grp.Go(func(ctx context.Context) error {
		stats, err := s.GetPlayerStats(ctx, playerID, "")
		if err != nil {
			return fmt.Errorf("career stats: %w", err)
		}
		career.CareerStats = stats
		return nil
	})
	if err := grp.Wait(); err != nil {
		return PlayerCareer{}, err
	}

	return career, nil
}

type PlayerTransfers struct {
	PlayerID       string           `json:"player_id"`
	PlayerName     string           `json:"player_name"`
	Year           int              `json:"year,omitempty"`
	Transfers      []TransferRecord `json:"transfers"`
	TotalTransfers int              `json:"total_transfers"`
}

func (s *PlayerService) GetPlayerTransfers(ctx context.Context, playerID string, year int) (PlayerTransfers, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return PlayerTransfers{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if year < 0 {
		return PlayerTransfers{}, fmt.Errorf("%w: year must not be negative", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return PlayerTransfers{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return PlayerTransfers{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	transfers, err := s.playerRepo.ListTransfers(ctx, playerID, year)
	if err != nil {
		return PlayerTransfers{}, fmt.Errorf("list transfers: %w", err)
	}

	records := transferRecords(transfers)

	return PlayerTransfers{
		PlayerID:       p.ID,
		PlayerName:     p.Name,
		Year:           year,
		Transfers:      records,
		TotalTransfers: len(records),
	}, nil
}

func (s *PlayerService) clampLimit(limit int) int {
	if limit <= 0 {
		limit = defaultPlayerSearchLimit
	}
	if limit > s.maxResults {
		limit = s.maxResults
	}
	return limit
}

func playerSummary(p player.Player) PlayerSummary {
	return PlayerSummary{
		PlayerID:     p.ID,
		Name:         p.Name,
		BirthDate:    formatDatePtr(p.BirthDate),
		Nationality:  p.Nationality,
		Position:     p.Position,
		JerseyNumber: p.JerseyNumber,
	}
}

func transferRecords(transfers []player.Transfer) []TransferRecord {
	records := make([]TransferRecord, 0, len(transfers))
	for _, t := range transfers {
		records = append(records, TransferRecord{
			FromTeam:     t.FromTeam,
			ToTeam:       t.ToTeam,
			TransferDate: formatDate(t.Date),
			Fee:          t.Fee,
			Loan:         t.Loan,
		})
	}

	return records
}
