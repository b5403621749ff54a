package toolapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/ferreiralabs/soccergraph/internal/domain/competition"
	"github.com/ferreiralabs/soccergraph/internal/domain/match"
	"github.com/ferreiralabs/soccergraph/internal/domain/player"
	"github.com/ferreiralabs/soccergraph/internal/domain/team"
	"github.com/ferreiralabs/soccergraph/internal/graph"
	"github.com/ferreiralabs/soccergraph/internal/platform/logging"
	"github.com/ferreiralabs/soccergraph/internal/usecase"
)

type stubPlayerRepo struct {
	players map[string]player.Player
}

func (s *stubPlayerRepo) Search(_ context.Context, filter player.SearchFilter) ([]player.Player, error) {
	out := make([]player.Player, 0, len(s.players))
	for _, p := range s.players {
		if filter.Name != "" && !strings.Contains(p.Name, filter.Name) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *stubPlayerRepo) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	p, ok := s.players[playerID]
	return p, ok, nil
}

func (s *stubPlayerRepo) CountGoals(context.Context, string, string) (int, error)   { return 0, nil }
func (s *stubPlayerRepo) CountAssists(context.Context, string, string) (int, error) { return 0, nil }
func (s *stubPlayerRepo) CountMatches(context.Context, string, string) (int, error) { return 0, nil }
func (s *stubPlayerRepo) CountCards(context.Context, string, string) (player.CardTally, error) {
	return player.CardTally{}, nil
}
func (s *stubPlayerRepo) ListTenures(context.Context, string) ([]player.Tenure, error) {
	return nil, nil
}
func (s *stubPlayerRepo) ListTenuresForTeam(context.Context, string) ([]player.Tenure, error) {
	return nil, nil
}
func (s *stubPlayerRepo) ListTransfers(context.Context, string, int) ([]player.Transfer, error) {
	return nil, nil
}
func (s *stubPlayerRepo) FindByCareerPath(context.Context, player.CareerPathQuery) ([]player.CareerPathRow, error) {
	return nil, nil
}

type stubTeamRepo struct {
	teams    map[string]team.Team
	profiles map[string]team.Profile
	titles   map[string][]team.Championship
}

func (s *stubTeamRepo) Search(context.Context, team.SearchFilter) ([]team.Team, error) {
	return nil, nil
}

func (s *stubTeamRepo) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	t, ok := s.teams[teamID]
	return t, ok, nil
}

func (s *stubTeamRepo) GetProfile(_ context.Context, teamID string) (team.Profile, bool, error) {
	p, ok := s.profiles[teamID]
	return p, ok, nil
}

func (s *stubTeamRepo) ListMatches(context.Context, string, string) ([]team.PlayedMatch, error) {
	return nil, nil
}
func (s *stubTeamRepo) ListRoster(context.Context, string) ([]team.RosterPlayer, error) {
	return nil, nil
}
func (s *stubTeamRepo) ListCompetitions(context.Context, string) ([]team.CompetitionEntry, error) {
	return nil, nil
}
func (s *stubTeamRepo) ListChampionships(_ context.Context, teamID string) ([]team.Championship, error) {
	return s.titles[teamID], nil
}

type stubMatchRepo struct{}

func (s *stubMatchRepo) GetByID(context.Context, string) (match.Match, bool, error) {
	return match.Match{}, false, nil
}
func (s *stubMatchRepo) ListGoals(context.Context, string) ([]match.Goal, error) { return nil, nil }
func (s *stubMatchRepo) ListCards(context.Context, string) ([]match.Card, error) { return nil, nil }
func (s *stubMatchRepo) Search(context.Context, match.SearchFilter) ([]match.Match, error) {
	return nil, nil
}
func (s *stubMatchRepo) ListBetween(context.Context, string, string, int) ([]match.Match, error) {
	return nil, nil
}
func (s *stubMatchRepo) ListGoalsBetween(context.Context, string, string, int) ([]match.Goal, error) {
	return nil, nil
}

type stubCompetitionRepo struct{}

func (s *stubCompetitionRepo) Get(context.Context, string, string) (competition.Competition, bool, error) {
	return competition.Competition{}, false, nil
}
func (s *stubCompetitionRepo) ListResults(context.Context, string, string) ([]competition.Result, error) {
	return nil, nil
}
func (s *stubCompetitionRepo) ListFixtures(context.Context, string, string, competition.FixtureFilter) ([]competition.Fixture, error) {
	return nil, nil
}
func (s *stubCompetitionRepo) ListGoals(context.Context, string, string) ([]competition.Goal, error) {
	return nil, nil
}

type stubHealth struct {
	health graph.Health
}

func (s *stubHealth) HealthCheck(context.Context) graph.Health { return s.health }

func newTestRouter(t *testing.T, playerRepo player.Repository, teamRepo team.Repository, health graph.Health) http.Handler {
	t.Helper()

	playerService := usecase.NewPlayerService(playerRepo, 100)
	teamService := usecase.NewTeamService(teamRepo, 100)
	matchService := usecase.NewMatchService(&stubMatchRepo{}, teamRepo, 100)
	competitionService := usecase.NewCompetitionService(&stubCompetitionRepo{}, nil, 100)
	analysisService := usecase.NewAnalysisService(playerRepo, teamRepo, &stubMatchRepo{})

	handler := NewHandler(
		playerService, teamService, matchService, competitionService, analysisService,
		&stubHealth{health: health}, logging.NewNop(),
	)
	return NewRouter(handler, logging.NewNop(), nil)
}

func callTool(t *testing.T, router http.Handler, tool, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/tools/"+tool, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestCallTool_UnknownTool(t *testing.T) {
	router := newTestRouter(t, &stubPlayerRepo{}, &stubTeamRepo{}, graph.Health{Status: graph.StatusHealthy})

	rec := callTool(t, router, "does_not_exist", `{}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", rec.Code, rec.Body.String())
	}
	if _, ok := decodeBody(t, rec)["error"]; !ok {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
}

func TestCallTool_InvalidJSON(t *testing.T) {
	router := newTestRouter(t, &stubPlayerRepo{}, &stubTeamRepo{}, graph.Health{Status: graph.StatusHealthy})

	rec := callTool(t, router, "get_player_stats", `{"player_id":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCallTool_ValidationFailure(t *testing.T) {
	router := newTestRouter(t, &stubPlayerRepo{}, &stubTeamRepo{}, graph.Health{Status: graph.StatusHealthy})

	rec := callTool(t, router, "get_player_stats", `{"season":"2023"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCallTool_UnknownField(t *testing.T) {
	router := newTestRouter(t, &stubPlayerRepo{}, &stubTeamRepo{}, graph.Health{Status: graph.StatusHealthy})

	rec := callTool(t, router, "get_player_stats", `{"player_id":"P1","bogus":true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCallTool_SearchPlayer(t *testing.T) {
	playerRepo := &stubPlayerRepo{
		players: map[string]player.Player{
			"P1": {ID: "P1", Name: "Zico", Position: "Midfielder"},
		},
	}
	router := newTestRouter(t, playerRepo, &stubTeamRepo{}, graph.Health{Status: graph.StatusHealthy})

	rec := callTool(t, router, "search_player", `{"name":"Zico"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data envelope, got %s", rec.Body.String())
	}
	if total, _ := data["total_results"].(float64); total != 1 {
		t.Fatalf("expected one result, got %v", data["total_results"])
	}
}

func TestCallTool_PlayerNotFound(t *testing.T) {
	router := newTestRouter(t, &stubPlayerRepo{players: map[string]player.Player{}}, &stubTeamRepo{}, graph.Health{Status: graph.StatusHealthy})

	rec := callTool(t, router, "get_player_stats", `{"player_id":"P404"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCallTool_TeamHistoryDefaultsChampionships(t *testing.T) {
	teamRepo := &stubTeamRepo{
		teams: map[string]team.Team{"T1": {ID: "T1", Name: "Flamengo"}},
		profiles: map[string]team.Profile{
			"T1": {Team: team.Team{ID: "T1", Name: "Flamengo"}},
		},
		titles: map[string][]team.Championship{
			"T1": {{CompetitionID: "C1", Name: "Libertadores", Season: "2022"}},
		},
	}
	router := newTestRouter(t, &stubPlayerRepo{}, teamRepo, graph.Health{Status: graph.StatusHealthy})

	rec := callTool(t, router, "get_team_history", `{"team_id":"T1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data, _ := decodeBody(t, rec)["data"].(map[string]any)
	if total, _ := data["total_championships"].(float64); total != 1 {
		t.Fatalf("expected championships by default, got %s", rec.Body.String())
	}
}

func TestCallTool_CareerPathWithoutTeams(t *testing.T) {
	router := newTestRouter(t, &stubPlayerRepo{}, &stubTeamRepo{}, graph.Health{Status: graph.StatusHealthy})

	// Goals-only criteria are a valid search; no club list required.
	rec := callTool(t, router, "find_players_by_career_path", `{"min_goals":10}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data, _ := decodeBody(t, rec)["data"].(map[string]any)
	if total, _ := data["total_players"].(float64); total != 0 {
		t.Fatalf("expected empty result, got %s", rec.Body.String())
	}
}

func TestCallTool_TeamRosterSeasonString(t *testing.T) {
	teamRepo := &stubTeamRepo{
		teams: map[string]team.Team{"T1": {ID: "T1", Name: "Flamengo"}},
	}
	router := newTestRouter(t, &stubPlayerRepo{}, teamRepo, graph.Health{Status: graph.StatusHealthy})

	rec := callTool(t, router, "get_team_roster", `{"team_id":"T1","season":"2023"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data, _ := decodeBody(t, rec)["data"].(map[string]any)
	if season, _ := data["season"].(string); season != "2023" {
		t.Fatalf("season = %v, want \"2023\"", data["season"])
	}
}

func TestListTools(t *testing.T) {
	router := newTestRouter(t, &stubPlayerRepo{}, &stubTeamRepo{}, graph.Health{Status: graph.StatusHealthy})

	req := httptest.NewRequest(http.MethodGet, "/v1/tools", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	data, _ := decodeBody(t, rec)["data"].(map[string]any)
	if total, _ := data["total_tools"].(float64); total != 18 {
		t.Fatalf("expected 18 tools, got %v", data["total_tools"])
	}
}

func TestHealthz(t *testing.T) {
	tests := []struct {
		name   string
		health graph.Health
		want   int
	}{
		{name: "healthy", health: graph.Health{Status: graph.StatusHealthy, Connected: true, TotalNodes: 42}, want: http.StatusOK},
		{name: "disconnected", health: graph.Health{Status: graph.StatusDisconnected}, want: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, &stubPlayerRepo{}, &stubTeamRepo{}, tt.health)

			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected status %d, got %d", tt.want, rec.Code)
			}

			data, _ := decodeBody(t, rec)["data"].(map[string]any)
			if got, _ := data["status"].(string); got != tt.health.Status {
				t.Fatalf("expected status %q, got %q", tt.health.Status, got)
			}
		})
	}
}

func TestRecoverPanic(t *testing.T) {
	inner := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	handler := recoverPanic(logging.NewNop(), inner)

	req := httptest.NewRequest(http.MethodGet, "/v1/tools", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	var body map[string]string
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body["error"] != internalErrorMessage {
		t.Fatalf("expected masked message, got %q", body["error"])
	}
}
