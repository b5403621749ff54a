package cypher

import (
	"testing"
)

func TestBuilder_MatchWhereReturn(t *testing.T) {
	t.Parallel()

	query, params, err := Match("(p:Player)").
		Where(
			Contains("p.name", "Silva"),
			Eq("p.position", "Forward"),
		).
		Return("p.player_id AS player_id", "p.name AS name").
		Limit(10).
		Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	want := "MATCH (p:Player)\n" +
		"WHERE p.name CONTAINS $p1\n" +
		"  AND p.position = $p2\n" +
		"RETURN p.player_id AS player_id, p.name AS name\n" +
		"LIMIT $limit"
	if query != want {
		t.Fatalf("unexpected query:\n%s\nwant:\n%s", query, want)
	}

	if params["p1"] != "Silva" {
		t.Fatalf("expected p1=Silva, got %v", params["p1"])
	}
	if params["p2"] != "Forward" {
		t.Fatalf("expected p2=Forward, got %v", params["p2"])
	}
	if params["limit"] != 10 {
		t.Fatalf("expected limit=10, got %v", params["limit"])
	}
}

func TestBuilder_MultipleMatchParts(t *testing.T) {
	t.Parallel()

	query, params, err := Match("(p:Player)").
		Match("(p)-[:PLAYS_FOR]->(t:Team)").
		Where(Contains("t.name", "Flamengo")).
		Return("p.name AS name").
		Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	want := "MATCH (p:Player)\n" +
		"MATCH (p)-[:PLAYS_FOR]->(t:Team)\n" +
		"WHERE t.name CONTAINS $p1\n" +
		"RETURN p.name AS name"
	if query != want {
		t.Fatalf("unexpected query:\n%s", query)
	}
	if len(params) != 1 {
		t.Fatalf("expected one param, got %v", params)
	}
}

func TestBuilder_OptionalMatchAndOrder(t *testing.T) {
	t.Parallel()

	query, _, err := Match("(m:Match)").
		OptionalMatch("(m)-[:PART_OF]->(c:Competition)").
		Where(Gte("date(m.date)", "2023-01-01"), Lte("date(m.date)", "2023-12-31")).
		Return("m.match_id AS match_id").
		OrderBy("m.date DESC").
		Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	want := "MATCH (m:Match)\n" +
		"WHERE date(m.date) >= $p1\n" +
		"  AND date(m.date) <= $p2\n" +
		"OPTIONAL MATCH (m)-[:PART_OF]->(c:Competition)\n" +
		"RETURN m.match_id AS match_id\n" +
		"ORDER BY m.date DESC"
	if query != want {
		t.Fatalf("unexpected query:\n%s", query)
	}
}

func TestBuilder_OrGroupsAndExpr(t *testing.T) {
	t.Parallel()

	query, params, err := Match("(m:Match)").
		Where(Or(
			Expr("(m.home_team_id = ? AND m.away_team_id = ?)", "T001", "T002"),
			Expr("(m.home_team_id = ? AND m.away_team_id = ?)", "T002", "T001"),
		)).
		Return("m.match_id AS match_id").
		Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	want := "MATCH (m:Match)\n" +
		"WHERE ((m.home_team_id = $p1 AND m.away_team_id = $p2) OR (m.home_team_id = $p3 AND m.away_team_id = $p4))\n" +
		"RETURN m.match_id AS match_id"
	if query != want {
		t.Fatalf("unexpected query:\n%s", query)
	}
	if params["p1"] != "T001" || params["p4"] != "T001" {
		t.Fatalf("unexpected params: %v", params)
	}
}

func TestBuilder_InEmptyListNeverMatches(t *testing.T) {
	t.Parallel()

	query, params, err := Match("(p:Player)").
		Where(In("p.position", nil)).
		Return("p.name AS name").
		Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	want := "MATCH (p:Player)\nWHERE false\nRETURN p.name AS name"
	if query != want {
		t.Fatalf("unexpected query:\n%s", query)
	}
	if len(params) != 0 {
		t.Fatalf("expected no params, got %v", params)
	}
}

func TestBuilder_RequiresMatchAndReturn(t *testing.T) {
	t.Parallel()

	if _, _, err := (&Builder{}).Build(); err == nil {
		t.Fatal("expected error for missing match")
	}
	if _, _, err := Match("(p:Player)").Build(); err == nil {
		t.Fatal("expected error for missing return")
	}
}
