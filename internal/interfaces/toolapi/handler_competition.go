package toolapi

import (
	"context"
	"net/http"
)

type competitionStandingsRequest struct {
	CompetitionID string `json:"competition_id" validate:"required"`
	Season        string `json:"season" validate:"required"`
}

func (h *Handler) getCompetitionStandings(ctx context.Context, r *http.Request) (any, error) {
	ctx, span := startSpan(ctx, "toolapi.Handler.getCompetitionStandings")
	defer span.End()

	var req competitionStandingsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		return nil, err
	}

	return h.competitionService.GetStandings(ctx, req.CompetitionID, req.Season)
}

type competitionTopScorersRequest struct {
	CompetitionID string `json:"competition_id" validate:"required"`
	Season        string `json:"season" validate:"required"`
	Limit         int    `json:"limit" validate:"omitempty,min=1,max=100"`
}

func (h *Handler) getCompetitionTopScorers(ctx context.Context, r *http.Request) (any, error) {
	ctx, span := startSpan(ctx, "toolapi.Handler.getCompetitionTopScorers")
	defer span.End()

	var req competitionTopScorersRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		return nil, err
	}

	return h.competitionService.GetTopScorers(ctx, req.CompetitionID, req.Season, req.Limit)
}

type competitionMatchesRequest struct {
	CompetitionID string `json:"competition_id" validate:"required"`
	Season        string `json:"season" validate:"required"`
	Team          string `json:"team"`
	Round         string `json:"round"`
}

func (h *Handler) getCompetitionMatches(ctx context.Context, r *http.Request) (any, error) {
	ctx, span := startSpan(ctx, "toolapi.Handler.getCompetitionMatches")
	defer span.End()

	var req competitionMatchesRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		return nil, err
	}

	return h.competitionService.GetCompetitionMatches(ctx, req.CompetitionID, req.Season, req.Team, req.Round)
}
