package toolapi

import (
	"context"
	"net/http"

	"github.com/ferreiralabs/soccergraph/internal/usecase"
)

type searchPlayerRequest struct {
	Name     string `json:"name"`
	Team     string `json:"team"`
	Position string `json:"position"`
	Limit    int    `json:"limit" validate:"omitempty,min=1,max=500"`
}

type searchPlayersResponse struct {
	Players      []usecase.PlayerSummary `json:"players"`
	TotalResults int                     `json:"total_results"`
}

func (h *Handler) searchPlayer(ctx context.Context, r *http.Request) (any, error) {
	ctx, span := startSpan(ctx, "toolapi.Handler.searchPlayer")
	defer span.End()

	var req searchPlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		return nil, err
	}

	players, err := h.playerService.SearchPlayers(ctx, usecase.SearchPlayersInput{
		Name:     req.Name,
		Team:     req.Team,
		Position: req.Position,
		Limit:    req.Limit,
	})
	if err != nil {
		return nil, err
	}

	return searchPlayersResponse{Players: players, TotalResults: len(players)}, nil
}

type playerStatsRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	Season   string `json:"season"`
}

func (h *Handler) getPlayerStats(ctx context.Context, r *http.Request) (any, error) {
	ctx, span := startSpan(ctx, "toolapi.Handler.getPlayerStats")
	defer span.End()

	var req playerStatsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		return nil, err
	}

	return h.playerService.GetPlayerStats(ctx, req.PlayerID, req.Season)
}

type playerCareerRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}

func (h *Handler) getPlayerCareer(ctx context.Context, r *http.Request) (any, error) {
	ctx, span := startSpan(ctx, "toolapi.Handler.getPlayerCareer")
	defer span.End()

	var req playerCareerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		return nil, err
	}

	return h.playerService.GetPlayerCareer(ctx, req.PlayerID)
}

type playerTransfersRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	Year     int    `json:"year" validate:"omitempty,min=1800,max=2200"`
}

func (h *Handler) getPlayerTransfers(ctx context.Context, r *http.Request) (any, error) {
	ctx, span := startSpan(ctx, "toolapi.Handler.getPlayerTransfers")
	defer span.End()

	var req playerTransfersRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		return nil, err
	}

	return h.playerService.GetPlayerTransfers(ctx, req.PlayerID, req.Year)
}
