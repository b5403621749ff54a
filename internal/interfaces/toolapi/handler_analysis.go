package toolapi

import (
	"context"
	"net/http"

	"github.com/ferreiralabs/soccergraph/internal/usecase"
)

type commonTeammatesRequest struct {
	Player1ID string `json:"player1_id" validate:"required"`
	Player2ID string `json:"player2_id" validate:"required"`
}

func (h *Handler) findCommonTeammates(ctx context.Context, r *http.Request) (any, error) {
	ctx, span := startSpan(ctx, "toolapi.Handler.findCommonTeammates")
	defer span.End()

	var req commonTeammatesRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		return nil, err
	}

	return h.analysisService.FindCommonTeammates(ctx, req.Player1ID, req.Player2ID)
}

type rivalryStatsRequest struct {
	Team1ID string `json:"team1_id" validate:"required"`
	Team2ID string `json:"team2_id" validate:"required"`
	Years   int    `json:"years" validate:"omitempty,min=0,max=200"`
}

func (h *Handler) getRivalryStats(ctx context.Context, r *http.Request) (any, error) {
	ctx, span := startSpan(ctx, "toolapi.Handler.getRivalryStats")
	defer span.End()

	var req rivalryStatsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		return nil, err
	}

	return h.analysisService.GetRivalryStats(ctx, req.Team1ID, req.Team2ID, req.Years)
}

type careerPathRequest struct {
	Teams     []string `json:"teams" validate:"omitempty,dive,required"`
	Positions []string `json:"positions" validate:"omitempty,dive,required"`
	MinTeams  int      `json:"min_teams" validate:"omitempty,min=0"`
	MinGoals  int      `json:"min_goals" validate:"omitempty,min=0"`
}

func (h *Handler) findPlayersByCareerPath(ctx context.Context, r *http.Request) (any, error) {
	ctx, span := startSpan(ctx, "toolapi.Handler.findPlayersByCareerPath")
	defer span.End()

	var req careerPathRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		return nil, err
	}

	return h.analysisService.FindPlayersByCareerPath(ctx, usecase.CareerPathInput{
		Teams:     req.Teams,
		Positions: req.Positions,
		MinTeams:  req.MinTeams,
		MinGoals:  req.MinGoals,
	})
}
