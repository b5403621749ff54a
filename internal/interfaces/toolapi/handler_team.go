package toolapi

import (
	"context"
	"net/http"

	"github.com/ferreiralabs/soccergraph/internal/usecase"
)

type searchTeamRequest struct {
	Name  string `json:"name"`
	City  string `json:"city"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=500"`
}

type searchTeamsResponse struct {
	Teams        []usecase.TeamSummary `json:"teams"`
	TotalResults int                   `json:"total_results"`
}

func (h *Handler) searchTeam(ctx context.Context, r *http.Request) (any, error) {
	ctx, span := startSpan(ctx, "toolapi.Handler.searchTeam")
	defer span.End()

	var req searchTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		return nil, err
	}

	teams, err := h.teamService.SearchTeams(ctx, usecase.SearchTeamsInput{
		Name:  req.Name,
		City:  req.City,
		Limit: req.Limit,
	})
	if err != nil {
		return nil, err
	}

	return searchTeamsResponse{Teams: teams, TotalResults: len(teams)}, nil
}

type teamRosterRequest struct {
	TeamID string `json:"team_id" validate:"required"`
	Season string `json:"season" validate:"omitempty,numeric"`
}

func (h *Handler) getTeamRoster(ctx context.Context, r *http.Request) (any, error) {
	ctx, span := startSpan(ctx, "toolapi.Handler.getTeamRoster")
	defer span.End()

	var req teamRosterRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		return nil, err
	}

	return h.teamService.GetTeamRoster(ctx, req.TeamID, req.Season)
}

type teamStatsRequest struct {
	TeamID string `json:"team_id" validate:"required"`
	Season string `json:"season"`
}

func (h *Handler) getTeamStats(ctx context.Context, r *http.Request) (any, error) {
	ctx, span := startSpan(ctx, "toolapi.Handler.getTeamStats")
	defer span.End()

	var req teamStatsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		return nil, err
	}

	return h.teamService.GetTeamStats(ctx, req.TeamID, req.Season)
}

type teamHistoryRequest struct {
	TeamID string `json:"team_id" validate:"required"`
	// nil means "not provided" and defaults to including championships.
	IncludeChampionships *bool `json:"include_championships"`
}

func (h *Handler) getTeamHistory(ctx context.Context, r *http.Request) (any, error) {
	ctx, span := startSpan(ctx, "toolapi.Handler.getTeamHistory")
	defer span.End()

	var req teamHistoryRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		return nil, err
	}

	includeChampionships := true
	if req.IncludeChampionships != nil {
		includeChampionships = *req.IncludeChampionships
	}

	return h.teamService.GetTeamHistory(ctx, req.TeamID, includeChampionships)
}
