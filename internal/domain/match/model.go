package match

import (
	"fmt"
	"time"
)

// Match is one fixture node with its joined team, competition and stadium
// context.
type Match struct {
	ID              string
	Date            time.Time
	HomeTeamID      string
	HomeTeam        string
	AwayTeamID      string
	AwayTeam        string
	HomeScore       int
	AwayScore       int
	CompetitionName string
	Season          string
	Round           string
	Attendance      int
	Referee         string
	StadiumName     string
	StadiumCity     string
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return fmt.Errorf("match %s: both team ids are required", m.ID)
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("match %s: home and away team are the same", m.ID)
	}
	if m.Date.IsZero() {
		return fmt.Errorf("match %s: date is required", m.ID)
	}

	return nil
}

// Goal is one SCORED_IN edge.
type Goal struct {
	PlayerID   string
	PlayerName string
	Position   string
	TeamID     string
	TeamName   string
	Minute     int
	GoalType   string
}

// Card is one RECEIVED_CARD edge.
type Card struct {
	PlayerID   string
	PlayerName string
	TeamName   string
	Minute     int
	CardType   string
}

// SearchFilter narrows a match search. Team and Competition are substring
// matches against either side and the competition name.
type SearchFilter struct {
	Team        string
	Competition string
	DateFrom    *time.Time
	DateTo      *time.Time
	Limit       int
}
