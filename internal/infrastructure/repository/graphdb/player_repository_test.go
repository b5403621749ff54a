package graphdb

import (
	"context"
	"strings"
	"testing"

	"github.com/ferreiralabs/soccergraph/internal/domain/player"
)

func TestPlayerRepository_FindByCareerPathTeamChain(t *testing.T) {
	t.Parallel()

	runner := &stubRunner{}
	repo := NewPlayerRepository(runner)

	_, err := repo.FindByCareerPath(context.Background(), player.CareerPathQuery{
		Teams: []string{"Santos", "Barcelona"},
	})
	if err != nil {
		t.Fatalf("FindByCareerPath error: %+v", err)
	}

	if !strings.Contains(runner.query, "MATCH (p)-[:PLAYS_FOR]->(t1:Team)") ||
		!strings.Contains(runner.query, "MATCH (p)-[:PLAYS_FOR]->(t2:Team)") {
		t.Fatalf("expected one traversal per club:\n%s", runner.query)
	}
	if runner.params["team1"] != "Santos" || runner.params["team2"] != "Barcelona" {
		t.Fatalf("unexpected params: %v", runner.params)
	}
}

func TestPlayerRepository_FindByCareerPathWithoutTeams(t *testing.T) {
	t.Parallel()

	runner := &stubRunner{}
	repo := NewPlayerRepository(runner)

	// Position-only criteria skip the club chain entirely.
	_, err := repo.FindByCareerPath(context.Background(), player.CareerPathQuery{
		Positions: []string{"Forward"},
	})
	if err != nil {
		t.Fatalf("FindByCareerPath error: %+v", err)
	}

	if strings.Contains(runner.query, "t1:Team") {
		t.Fatalf("unexpected club traversal:\n%s", runner.query)
	}
	if !strings.Contains(runner.query, "WHERE p.position IN $positions") {
		t.Fatalf("missing position predicate:\n%s", runner.query)
	}
}
