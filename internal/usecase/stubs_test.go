package usecase

import (
	"context"

	"github.com/ferreiralabs/soccergraph/internal/domain/competition"
	"github.com/ferreiralabs/soccergraph/internal/domain/match"
	"github.com/ferreiralabs/soccergraph/internal/domain/player"
	"github.com/ferreiralabs/soccergraph/internal/domain/team"
)

func statKey(id, season string) string { return id + "|" + season }

type stubPlayerRepo struct {
	players     map[string]player.Player
	goals       map[string]int
	assists     map[string]int
	matches     map[string]int
	cards       map[string]player.CardTally
	tenures     map[string][]player.Tenure
	teamTenures map[string][]player.Tenure
	transfers   map[string][]player.Transfer
	careerRows  []player.CareerPathRow
	err         error
}

func (s *stubPlayerRepo) Search(_ context.Context, filter player.SearchFilter) ([]player.Player, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]player.Player, 0)
	for _, p := range s.players {
		out = append(out, p)
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *stubPlayerRepo) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	if s.err != nil {
		return player.Player{}, false, s.err
	}
	p, ok := s.players[playerID]
	return p, ok, nil
}

func (s *stubPlayerRepo) CountGoals(_ context.Context, playerID, season string) (int, error) {
	return s.goals[statKey(playerID, season)], s.err
}

func (s *stubPlayerRepo) CountAssists(_ context.Context, playerID, season string) (int, error) {
	return s.assists[statKey(playerID, season)], s.err
}

func (s *stubPlayerRepo) CountMatches(_ context.Context, playerID, season string) (int, error) {
	return s.matches[statKey(playerID, season)], s.err
}

func (s *stubPlayerRepo) CountCards(_ context.Context, playerID, season string) (player.CardTally, error) {
	return s.cards[statKey(playerID, season)], s.err
}

func (s *stubPlayerRepo) ListTenures(_ context.Context, playerID string) ([]player.Tenure, error) {
	return s.tenures[playerID], s.err
}

func (s *stubPlayerRepo) ListTenuresForTeam(_ context.Context, teamID string) ([]player.Tenure, error) {
	return s.teamTenures[teamID], s.err
}

func (s *stubPlayerRepo) ListTransfers(_ context.Context, playerID string, year int) ([]player.Transfer, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]player.Transfer, 0)
	for _, t := range s.transfers[playerID] {
		if year > 0 && t.Date.Year() != year {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *stubPlayerRepo) FindByCareerPath(_ context.Context, _ player.CareerPathQuery) ([]player.CareerPathRow, error) {
	return s.careerRows, s.err
}

type stubTeamRepo struct {
	teams    map[string]team.Team
	profiles map[string]team.Profile
	matches  map[string][]team.PlayedMatch
	roster   map[string][]team.RosterPlayer
	comps    map[string][]team.CompetitionEntry
	titles   map[string][]team.Championship
	err      error
}

func (s *stubTeamRepo) Search(_ context.Context, filter team.SearchFilter) ([]team.Team, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]team.Team, 0)
	for _, t := range s.teams {
		out = append(out, t)
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *stubTeamRepo) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	if s.err != nil {
		return team.Team{}, false, s.err
	}
	t, ok := s.teams[teamID]
	return t, ok, nil
}

func (s *stubTeamRepo) GetProfile(_ context.Context, teamID string) (team.Profile, bool, error) {
	if s.err != nil {
		return team.Profile{}, false, s.err
	}
	p, ok := s.profiles[teamID]
	return p, ok, nil
}

func (s *stubTeamRepo) ListMatches(_ context.Context, teamID, season string) ([]team.PlayedMatch, error) {
	return s.matches[statKey(teamID, season)], s.err
}

func (s *stubTeamRepo) ListRoster(_ context.Context, teamID string) ([]team.RosterPlayer, error) {
	return s.roster[teamID], s.err
}

func (s *stubTeamRepo) ListCompetitions(_ context.Context, teamID string) ([]team.CompetitionEntry, error) {
	return s.comps[teamID], s.err
}

func (s *stubTeamRepo) ListChampionships(_ context.Context, teamID string) ([]team.Championship, error) {
	return s.titles[teamID], s.err
}

type stubMatchRepo struct {
	matches      map[string]match.Match
	goals        map[string][]match.Goal
	cards        map[string][]match.Card
	searchResult []match.Match
	between      []match.Match
	betweenGoals []match.Goal
	err          error
}

func (s *stubMatchRepo) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	if s.err != nil {
		return match.Match{}, false, s.err
	}
	m, ok := s.matches[matchID]
	return m, ok, nil
}

func (s *stubMatchRepo) ListGoals(_ context.Context, matchID string) ([]match.Goal, error) {
	return s.goals[matchID], s.err
}

func (s *stubMatchRepo) ListCards(_ context.Context, matchID string) ([]match.Card, error) {
	return s.cards[matchID], s.err
}

func (s *stubMatchRepo) Search(_ context.Context, filter match.SearchFilter) ([]match.Match, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := s.searchResult
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *stubMatchRepo) ListBetween(_ context.Context, _, _ string, _ int) ([]match.Match, error) {
	return s.between, s.err
}

func (s *stubMatchRepo) ListGoalsBetween(_ context.Context, _, _ string, _ int) ([]match.Goal, error) {
	return s.betweenGoals, s.err
}

type stubCompetitionRepo struct {
	comps    map[string]competition.Competition
	results  map[string][]competition.Result
	fixtures map[string][]competition.Fixture
	goals    map[string][]competition.Goal
	err      error
}

func (s *stubCompetitionRepo) Get(_ context.Context, competitionID, season string) (competition.Competition, bool, error) {
	if s.err != nil {
		return competition.Competition{}, false, s.err
	}
	c, ok := s.comps[statKey(competitionID, season)]
	return c, ok, nil
}

func (s *stubCompetitionRepo) ListResults(_ context.Context, competitionID, season string) ([]competition.Result, error) {
	return s.results[statKey(competitionID, season)], s.err
}

func (s *stubCompetitionRepo) ListFixtures(_ context.Context, competitionID, season string, _ competition.FixtureFilter) ([]competition.Fixture, error) {
	return s.fixtures[statKey(competitionID, season)], s.err
}

func (s *stubCompetitionRepo) ListGoals(_ context.Context, competitionID, season string) ([]competition.Goal, error) {
	return s.goals[statKey(competitionID, season)], s.err
}
