package competition

import "time"

// Competition is one edition of a tournament, identified by id and season.
type Competition struct {
	ID     string
	Name   string
	Season string
}

// Result is one played fixture, reduced to what a table needs.
type Result struct {
	MatchID    string
	HomeTeamID string
	HomeTeam   string
	AwayTeamID string
	AwayTeam   string
	HomeScore  int
	AwayScore  int
}

// Fixture is one match of the edition with its schedule context.
type Fixture struct {
	MatchID    string
	Date       time.Time
	HomeTeam   string
	AwayTeam   string
	HomeScore  int
	AwayScore  int
	Round      string
	Attendance int
}

// FixtureFilter narrows a fixture listing. Team is a substring match against
// either side, Round is exact.
type FixtureFilter struct {
	Team  string
	Round string
}

// Goal is one SCORED_IN edge within the edition.
type Goal struct {
	PlayerID   string
	PlayerName string
	Position   string
	TeamName   string
}
