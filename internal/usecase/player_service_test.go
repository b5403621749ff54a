package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ferreiralabs/soccergraph/internal/domain/player"
)

func datePtr(value string) *time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestPlayerService_SearchRequiresCriteria(t *testing.T) {
	t.Parallel()

	svc := NewPlayerService(&stubPlayerRepo{}, 100)

	_, err := svc.SearchPlayers(context.Background(), SearchPlayersInput{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %+v", err)
	}
}

func TestPlayerService_SearchPlayersDefaultLimit(t *testing.T) {
	t.Parallel()

	players := make(map[string]player.Player, 12)
	for i := 0; i < 12; i++ {
		id := fmt.Sprintf("P%02d", i)
		players[id] = player.Player{ID: id, Name: "Silva " + id}
	}
	svc := NewPlayerService(&stubPlayerRepo{players: players}, 100)

	// No limit in the request falls back to ten, not to the global cap.
	out, err := svc.SearchPlayers(context.Background(), SearchPlayersInput{Name: "Silva"})
	if err != nil {
		t.Fatalf("SearchPlayers error: %+v", err)
	}
	if len(out) != 10 {
		t.Fatalf("len = %d, want 10", len(out))
	}
}

func TestPlayerService_GetPlayerStats(t *testing.T) {
	t.Parallel()

	repo := &stubPlayerRepo{
		players: map[string]player.Player{
			"P001": {ID: "P001", Name: "Zico", Position: "Midfielder"},
		},
		goals:   map[string]int{statKey("P001", "1981"): 21},
		assists: map[string]int{statKey("P001", "1981"): 9},
		matches: map[string]int{statKey("P001", "1981"): 30},
		cards:   map[string]player.CardTally{statKey("P001", "1981"): {Yellow: 3, Red: 1}},
		tenures: map[string][]player.Tenure{
			"P001": {
				{PlayerID: "P001", TeamID: "T001", TeamName: "Flamengo", From: datePtr("1971-01-01")},
			},
		},
	}
	svc := NewPlayerService(repo, 100)

	stats, err := svc.GetPlayerStats(context.Background(), "P001", "1981")
	if err != nil {
		t.Fatalf("GetPlayerStats error: %+v", err)
	}

	if stats.PlayerName != "Zico" || stats.Season != "1981" {
		t.Fatalf("unexpected header: %+v", stats)
	}
	if stats.TotalGoals != 21 || stats.TotalAssists != 9 || stats.TotalMatches != 30 {
		t.Fatalf("unexpected tallies: %+v", stats)
	}
	if stats.YellowCards != 3 || stats.RedCards != 1 {
		t.Fatalf("unexpected cards: %+v", stats)
	}
	if len(stats.Teams) != 1 || stats.Teams[0] != "Flamengo" {
		t.Fatalf("unexpected teams: %v", stats.Teams)
	}
}

func TestPlayerService_GetPlayerStatsNotFound(t *testing.T) {
	t.Parallel()

	svc := NewPlayerService(&stubPlayerRepo{players: map[string]player.Player{}}, 100)

	_, err := svc.GetPlayerStats(context.Background(), "P404", "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %+v", err)
	}
}

func TestPlayerService_GetPlayerStatsZeroActivity(t *testing.T) {
	t.Parallel()

	// A player with no recorded edges is a valid answer, not a 404.
	repo := &stubPlayerRepo{
		players: map[string]player.Player{"P002": {ID: "P002", Name: "Novato"}},
	}
	svc := NewPlayerService(repo, 100)

	stats, err := svc.GetPlayerStats(context.Background(), "P002", "")
	if err != nil {
		t.Fatalf("GetPlayerStats error: %+v", err)
	}
	if stats.TotalGoals != 0 || stats.TotalMatches != 0 || len(stats.Teams) != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}

func TestPlayerService_GetPlayerTransfersFiltersYear(t *testing.T) {
	t.Parallel()

	fee := 8.5
	repo := &stubPlayerRepo{
		players: map[string]player.Player{"P001": {ID: "P001", Name: "Zico"}},
		transfers: map[string][]player.Transfer{
			"P001": {
				{FromTeam: "Flamengo", ToTeam: "Udinese", Date: *datePtr("1983-07-01"), Fee: &fee},
				{FromTeam: "Udinese", ToTeam: "Flamengo", Date: *datePtr("1985-07-01")},
			},
		},
	}
	svc := NewPlayerService(repo, 100)

	out, err := svc.GetPlayerTransfers(context.Background(), "P001", 1983)
	if err != nil {
		t.Fatalf("GetPlayerTransfers error: %+v", err)
	}
	if out.TotalTransfers != 1 || out.Transfers[0].ToTeam != "Udinese" {
		t.Fatalf("unexpected transfers: %+v", out)
	}
	if out.Transfers[0].TransferDate != "1983-07-01" {
		t.Fatalf("unexpected date: %q", out.Transfers[0].TransferDate)
	}
	if out.Transfers[0].Fee == nil || *out.Transfers[0].Fee != 8.5 {
		t.Fatalf("unexpected fee: %v", out.Transfers[0].Fee)
	}
}

func TestPlayerService_GetPlayerCareerEmbedsStats(t *testing.T) {
	t.Parallel()

	repo := &stubPlayerRepo{
		players: map[string]player.Player{
			"P001": {ID: "P001", Name: "Zico", BirthDate: datePtr("1953-03-03")},
		},
		goals: map[string]int{statKey("P001", ""): 509},
		tenures: map[string][]player.Tenure{
			"P001": {
				{PlayerID: "P001", TeamID: "T001", TeamName: "Flamengo", From: datePtr("1971-01-01"), To: datePtr("1983-06-30")},
			},
		},
	}
	svc := NewPlayerService(repo, 100)

	career, err := svc.GetPlayerCareer(context.Background(), "P001")
	if err != nil {
		t.Fatalf("GetPlayerCareer error: %+v", err)
	}
	if career.BirthDate != "1953-03-03" {
		t.Fatalf("unexpected birth date: %q", career.BirthDate)
	}
	if len(career.Teams) != 1 || career.Teams[0].ToDate != "1983-06-30" {
		t.Fatalf("unexpected teams: %+v", career.Teams)
	}
	if career.CareerStats.TotalGoals != 509 {
		t.Fatalf("unexpected career stats: %+v", career.CareerStats)
	}
}
