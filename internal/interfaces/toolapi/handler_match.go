package toolapi

import (
	"context"
	"net/http"

	"github.com/ferreiralabs/soccergraph/internal/usecase"
)

type matchDetailsRequest struct {
	MatchID string `json:"match_id" validate:"required"`
}

func (h *Handler) getMatchDetails(ctx context.Context, r *http.Request) (any, error) {
	ctx, span := startSpan(ctx, "toolapi.Handler.getMatchDetails")
	defer span.End()

	var req matchDetailsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		return nil, err
	}

	return h.matchService.GetMatchDetails(ctx, req.MatchID)
}

type searchMatchesRequest struct {
	Team        string `json:"team"`
	Competition string `json:"competition"`
	DateFrom    string `json:"date_from"`
	DateTo      string `json:"date_to"`
	Limit       int    `json:"limit" validate:"omitempty,min=1,max=500"`
}

type searchMatchesResponse struct {
	Matches      []usecase.MatchSummary `json:"matches"`
	TotalResults int                    `json:"total_results"`
}

func (h *Handler) searchMatches(ctx context.Context, r *http.Request) (any, error) {
	ctx, span := startSpan(ctx, "toolapi.Handler.searchMatches")
	defer span.End()

	var req searchMatchesRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		return nil, err
	}

	matches, err := h.matchService.SearchMatches(ctx, usecase.SearchMatchesInput{
		Team:        req.Team,
		Competition: req.Competition,
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
		Limit:       req.Limit,
	})
	if err != nil {
		return nil, err
	}

	return searchMatchesResponse{Matches: matches, TotalResults: len(matches)}, nil
}

type headToHeadRequest struct {
	Team1ID string `json:"team1_id" validate:"required"`
	Team2ID string `json:"team2_id" validate:"required"`
	Limit   int    `json:"limit" validate:"omitempty,min=1,max=50"`
}

func (h *Handler) getHeadToHead(ctx context.Context, r *http.Request) (any, error) {
	ctx, span := startSpan(ctx, "toolapi.Handler.getHeadToHead")
	defer span.End()

	var req headToHeadRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		return nil, err
	}

	return h.matchService.GetHeadToHead(ctx, req.Team1ID, req.Team2ID, req.Limit)
}

type matchScorersRequest struct {
	MatchID string `json:"match_id" validate:"required"`
}

func (h *Handler) getMatchScorers(ctx context.Context, r *http.Request) (any, error) {
	ctx, span := startSpan(ctx, "toolapi.Handler.getMatchScorers")
	defer span.End()

	var req matchScorersRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		return nil, err
	}

	return h.matchService.GetMatchScorers(ctx, req.MatchID)
}
