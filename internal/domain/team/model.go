package team

import (
	"fmt"
	"time"
)

// Team is a club node in the knowledge graph.
type Team struct {
	ID          string
	Name        string
	City        string
	Stadium     string
	FoundedYear int
	Colors      []string
	Nickname    string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// SearchFilter narrows a team search. Both fields are substring matches.
type SearchFilter struct {
	Name  string
	City  string
	Limit int
}

// Profile joins a team with its home ground.
type Profile struct {
	Team            Team
	StadiumName     string
	StadiumCapacity int
}

// PlayedMatch is one fixture the team appeared in, home or away.
type PlayedMatch struct {
	MatchID    string
	Date       time.Time
	HomeTeamID string
	AwayTeamID string
	HomeScore  int
	AwayScore  int
}

// RosterPlayer is one PLAYS_FOR edge into the team.
type RosterPlayer struct {
	PlayerID     string
	Name         string
	Position     string
	JerseyNumber int
	Nationality  string
	From         *time.Time
	To           *time.Time
}

// CompetitionEntry is one competition edition the team took part in,
// derived from its COMPETED_IN matches.
type CompetitionEntry struct {
	CompetitionID string
	Name          string
	Season        string
}

// Championship is one WON edge.
type Championship struct {
	CompetitionID string
	Name          string
	Season        string
}
