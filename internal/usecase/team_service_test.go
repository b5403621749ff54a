package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ferreiralabs/soccergraph/internal/domain/team"
)

func TestTeamService_SearchTeamsDefaultLimit(t *testing.T) {
	t.Parallel()

	teams := make(map[string]team.Team, 12)
	for i := 0; i < 12; i++ {
		id := fmt.Sprintf("T%02d", i)
		teams[id] = team.Team{ID: id, Name: "Clube " + id}
	}
	svc := NewTeamService(&stubTeamRepo{teams: teams}, 100)

	out, err := svc.SearchTeams(context.Background(), SearchTeamsInput{Name: "Clube"})
	if err != nil {
		t.Fatalf("SearchTeams error: %+v", err)
	}
	if len(out) != 10 {
		t.Fatalf("len = %d, want 10", len(out))
	}
}

func TestTeamService_GetTeamStats(t *testing.T) {
	t.Parallel()

	repo := &stubTeamRepo{
		teams: map[string]team.Team{"T001": {ID: "T001", Name: "Flamengo"}},
		matches: map[string][]team.PlayedMatch{
			statKey("T001", "2023"): {
				{MatchID: "M1", HomeTeamID: "T001", AwayTeamID: "T002", HomeScore: 3, AwayScore: 1},
				{MatchID: "M2", HomeTeamID: "T003", AwayTeamID: "T001", HomeScore: 2, AwayScore: 2},
				{MatchID: "M3", HomeTeamID: "T001", AwayTeamID: "T004", HomeScore: 0, AwayScore: 1},
				{MatchID: "M4", HomeTeamID: "T005", AwayTeamID: "T001", HomeScore: 0, AwayScore: 2},
			},
		},
	}
	svc := NewTeamService(repo, 100)

	stats, err := svc.GetTeamStats(context.Background(), "T001", "2023")
	if err != nil {
		t.Fatalf("GetTeamStats error: %+v", err)
	}

	if stats.TotalMatches != 4 || stats.Wins != 2 || stats.Draws != 1 || stats.Losses != 1 {
		t.Fatalf("unexpected record: %+v", stats)
	}
	if stats.Wins+stats.Draws+stats.Losses != stats.TotalMatches {
		t.Fatalf("record does not add up: %+v", stats)
	}
	if stats.GoalsScored != 7 || stats.GoalsConceded != 4 || stats.GoalDifference != 3 {
		t.Fatalf("unexpected goals: %+v", stats)
	}
	if stats.Points != 7 {
		t.Fatalf("points = %d, want 7", stats.Points)
	}
	if stats.WinRate != 50.0 {
		t.Fatalf("win rate = %v, want 50", stats.WinRate)
	}
	if stats.HomeRecord.Matches != 2 || stats.HomeRecord.Wins != 1 {
		t.Fatalf("unexpected home record: %+v", stats.HomeRecord)
	}
	if stats.AwayRecord.Matches != 2 || stats.AwayRecord.Wins != 1 {
		t.Fatalf("unexpected away record: %+v", stats.AwayRecord)
	}
}

func TestTeamService_GetTeamStatsNoMatches(t *testing.T) {
	t.Parallel()

	repo := &stubTeamRepo{
		teams: map[string]team.Team{"T001": {ID: "T001", Name: "Flamengo"}},
	}
	svc := NewTeamService(repo, 100)

	stats, err := svc.GetTeamStats(context.Background(), "T001", "1900")
	if err != nil {
		t.Fatalf("GetTeamStats error: %+v", err)
	}
	if stats.TotalMatches != 0 || stats.WinRate != 0 || stats.Points != 0 {
		t.Fatalf("expected empty record, got %+v", stats)
	}
}

func TestTeamService_GetTeamStatsNotFound(t *testing.T) {
	t.Parallel()

	svc := NewTeamService(&stubTeamRepo{teams: map[string]team.Team{}}, 100)

	_, err := svc.GetTeamStats(context.Background(), "T404", "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %+v", err)
	}
}

func TestTeamService_GetTeamRosterSeasonFilter(t *testing.T) {
	t.Parallel()

	repo := &stubTeamRepo{
		teams: map[string]team.Team{"T001": {ID: "T001", Name: "Flamengo"}},
		roster: map[string][]team.RosterPlayer{
			"T001": {
				{PlayerID: "P1", Name: "Zico", Position: "Midfielder", From: datePtr("1971-01-01"), To: datePtr("1983-06-30")},
				{PlayerID: "P2", Name: "Adriano", Position: "Forward", From: datePtr("2009-01-01"), To: datePtr("2010-12-31")},
				{PlayerID: "P3", Name: "Perpetuo", Position: "Forward"},
			},
		},
	}
	svc := NewTeamService(repo, 100)

	roster, err := svc.GetTeamRoster(context.Background(), "T001", "2009")
	if err != nil {
		t.Fatalf("GetTeamRoster error: %+v", err)
	}

	// Zico's spell ended in 1983; the undated spell stays in.
	if roster.TotalPlayers != 2 {
		t.Fatalf("total players = %d, want 2: %+v", roster.TotalPlayers, roster.Players)
	}
	if len(roster.PlayersByPosition["Forward"]) != 2 {
		t.Fatalf("unexpected position grouping: %v", roster.PlayersByPosition)
	}
	if roster.Season != "2009" {
		t.Fatalf("season = %q", roster.Season)
	}
}

func TestTeamService_GetTeamRosterBadSeason(t *testing.T) {
	t.Parallel()

	repo := &stubTeamRepo{
		teams: map[string]team.Team{"T001": {ID: "T001", Name: "Flamengo"}},
	}
	svc := NewTeamService(repo, 100)

	_, err := svc.GetTeamRoster(context.Background(), "T001", "2009/10")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %+v", err)
	}
}

func TestTeamService_GetTeamHistory(t *testing.T) {
	t.Parallel()

	repo := &stubTeamRepo{
		teams: map[string]team.Team{"T001": {ID: "T001", Name: "Flamengo"}},
		profiles: map[string]team.Profile{
			"T001": {
				Team:            team.Team{ID: "T001", Name: "Flamengo"},
				StadiumName:     "Maracanã",
				StadiumCapacity: 78838,
			},
		},
		comps: map[string][]team.CompetitionEntry{
			"T001": {
				{CompetitionID: "C1", Name: "Brasileirão", Season: "2022"},
				{CompetitionID: "C1", Name: "Brasileirão", Season: "2023"},
			},
		},
		titles: map[string][]team.Championship{
			"T001": {{CompetitionID: "C2", Name: "Libertadores", Season: "2022"}},
		},
		matches: map[string][]team.PlayedMatch{
			statKey("T001", ""): {
				{MatchID: "M1", HomeTeamID: "T001", AwayTeamID: "T002", HomeScore: 1, AwayScore: 0},
			},
		},
	}
	svc := NewTeamService(repo, 100)

	history, err := svc.GetTeamHistory(context.Background(), "T001", true)
	if err != nil {
		t.Fatalf("GetTeamHistory error: %+v", err)
	}

	if history.StadiumName != "Maracanã" || history.StadiumCapacity != 78838 {
		t.Fatalf("unexpected stadium: %+v", history)
	}
	if history.TotalCompetitions != 2 {
		t.Fatalf("total competitions = %d", history.TotalCompetitions)
	}
	if history.CompetitionsParticipated[0].Season != "2023" {
		t.Fatalf("expected newest season first: %+v", history.CompetitionsParticipated)
	}
	if history.TotalChampionships != 1 {
		t.Fatalf("total championships = %d", history.TotalChampionships)
	}
	if history.AllTimeStats.Wins != 1 {
		t.Fatalf("unexpected all time stats: %+v", history.AllTimeStats)
	}
}

func TestTeamService_GetTeamHistoryWithoutChampionships(t *testing.T) {
	t.Parallel()

	repo := &stubTeamRepo{
		teams: map[string]team.Team{"T001": {ID: "T001", Name: "Flamengo"}},
		profiles: map[string]team.Profile{
			"T001": {Team: team.Team{ID: "T001", Name: "Flamengo"}},
		},
		titles: map[string][]team.Championship{
			"T001": {{CompetitionID: "C2", Name: "Libertadores", Season: "2022"}},
		},
	}
	svc := NewTeamService(repo, 100)

	history, err := svc.GetTeamHistory(context.Background(), "T001", false)
	if err != nil {
		t.Fatalf("GetTeamHistory error: %+v", err)
	}
	if history.Championships != nil || history.TotalChampionships != 0 {
		t.Fatalf("expected championships omitted, got %+v", history.Championships)
	}
}
