// Package toolapi exposes the query engine as a set of named tools over
// HTTP. Every tool is invoked with POST /v1/tools/{tool} and a JSON body;
// responses use a uniform {"data": ...} / {"error": "..."} envelope.
package toolapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/ferreiralabs/soccergraph/internal/graph"
	"github.com/ferreiralabs/soccergraph/internal/platform/logging"
	"github.com/ferreiralabs/soccergraph/internal/usecase"
	"github.com/go-playground/validator/v10"
)

// HealthChecker reports the state of the graph backend.
type HealthChecker interface {
	HealthCheck(ctx context.Context) graph.Health
}

type Handler struct {
	playerService      *usecase.PlayerService
	teamService        *usecase.TeamService
	matchService       *usecase.MatchService
	competitionService *usecase.CompetitionService
	analysisService    *usecase.AnalysisService
	health             HealthChecker
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	playerService *usecase.PlayerService,
	teamService *usecase.TeamService,
	matchService *usecase.MatchService,
	competitionService *usecase.CompetitionService,
	analysisService *usecase.AnalysisService,
	health HealthChecker,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		playerService:      playerService,
		teamService:        teamService,
		matchService:       matchService,
		competitionService: competitionService,
		analysisService:    analysisService,
		health:             health,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "toolapi.Handler.Healthz")
	defer span.End()

	health := h.health.HealthCheck(ctx)
	status := http.StatusOK
	if health.Status != graph.StatusHealthy {
		status = http.StatusServiceUnavailable
	}

	writeSuccess(ctx, w, status, health)
}

func (h *Handler) CallTool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "toolapi.Handler.CallTool")
	defer span.End()

	name := strings.TrimSpace(r.PathValue("tool"))
	entry, ok := toolRegistry[name]
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: unknown tool %q", usecase.ErrNotFound, name))
		return
	}

	result, err := entry.invoke(h, ctx, r)
	if err != nil {
		h.logger.WarnContext(ctx, "tool call failed", "tool", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ListTools(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "toolapi.Handler.ListTools")
	defer span.End()

	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]toolDescriptor, 0, len(names))
	for _, name := range names {
		items = append(items, toolDescriptor{
			Name:        name,
			Description: toolRegistry[name].description,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, toolListResponse{
		Tools:      items,
		TotalTools: len(items),
	})
}

type toolDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type toolListResponse struct {
	Tools      []toolDescriptor `json:"tools"`
	TotalTools int              `json:"total_tools"`
}

type toolEntry struct {
	description string
	invoke      func(h *Handler, ctx context.Context, r *http.Request) (any, error)
}

var toolRegistry = map[string]toolEntry{
	"search_player":               {"Search players by name, team, or position.", (*Handler).searchPlayer},
	"get_player_stats":            {"Goals, assists, matches, and cards for a player, optionally per season.", (*Handler).getPlayerStats},
	"get_player_career":           {"Career timeline with team spells, transfers, and all-time stats.", (*Handler).getPlayerCareer},
	"get_player_transfers":        {"Transfer records for a player, optionally filtered by year.", (*Handler).getPlayerTransfers},
	"search_team":                 {"Search teams by name or city.", (*Handler).searchTeam},
	"get_team_roster":             {"Squad of a team, optionally restricted to a season year.", (*Handler).getTeamRoster},
	"get_team_stats":              {"Win/draw/loss record and goal tallies for a team.", (*Handler).getTeamStats},
	"get_team_history":            {"Stadium, competitions, championships, and all-time record of a team.", (*Handler).getTeamHistory},
	"get_match_details":           {"Full detail of a single match including scorers and cards.", (*Handler).getMatchDetails},
	"search_matches":              {"Search matches by team, competition, or date range.", (*Handler).searchMatches},
	"get_head_to_head":            {"Historical record between two teams.", (*Handler).getHeadToHead},
	"get_match_scorers":           {"Goal scorers of a single match.", (*Handler).getMatchScorers},
	"get_competition_standings":   {"Standings table computed from a competition edition's results.", (*Handler).getCompetitionStandings},
	"get_competition_top_scorers": {"Top scorer ranking of a competition edition.", (*Handler).getCompetitionTopScorers},
	"get_competition_matches":     {"Fixtures of a competition edition, filterable by team and round.", (*Handler).getCompetitionMatches},
	"find_common_teammates":       {"Players who shared a dressing room with both given players.", (*Handler).findCommonTeammates},
	"get_rivalry_stats":           {"Rivalry breakdown between two teams: wins, margins, top scorers.", (*Handler).getRivalryStats},
	"find_players_by_career_path": {"Players who played for all given teams, with optional thresholds.", (*Handler).findPlayersByCareerPath},
}

// decodeRequest tolerates an empty body so tools whose parameters are all
// optional can be called without one; required-field validation still runs.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	ctx, span := startSpan(ctx, "toolapi.Handler.decodeRequest")
	defer span.End()

	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, dst)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "toolapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
