package graphdb

import (
	"context"
	"strings"
	"testing"
)

type stubRunner struct {
	query  string
	params map[string]any
	rows   []map[string]any
	err    error
}

func (r *stubRunner) ExecuteRead(_ context.Context, query string, params map[string]any) ([]map[string]any, error) {
	r.query = query
	r.params = params
	return r.rows, r.err
}

func TestTeamRepository_ListCompetitionsTraversesMatches(t *testing.T) {
	t.Parallel()

	runner := &stubRunner{
		rows: []map[string]any{
			{"competition_id": "C1", "name": "Brasileirão", "season": "2023"},
			{"competition_id": "C1", "name": "Brasileirão", "season": "2022"},
		},
	}
	repo := NewTeamRepository(runner)

	entries, err := repo.ListCompetitions(context.Background(), "T001")
	if err != nil {
		t.Fatalf("ListCompetitions error: %+v", err)
	}

	// Participation hangs off the matches a team competed in, not off a
	// direct team-to-competition edge.
	if !strings.Contains(runner.query, "-[:COMPETED_IN]->(m:Match)-[:PART_OF]->(c:Competition)") {
		t.Fatalf("unexpected query:\n%s", runner.query)
	}
	if runner.params["team_id"] != "T001" {
		t.Fatalf("unexpected params: %v", runner.params)
	}
	if len(entries) != 2 || entries[0].CompetitionID != "C1" || entries[0].Season != "2023" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}
