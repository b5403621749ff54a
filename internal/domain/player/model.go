package player

import (
	"fmt"
	"time"

	"github.com/ferreiralabs/soccergraph/internal/platform/interval"
)

// Player is a person node in the knowledge graph.
type Player struct {
	ID           string
	Name         string
	BirthDate    *time.Time
	Nationality  string
	Position     string
	JerseyNumber int
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}

	return nil
}

// SearchFilter narrows a player search. Name and Team are substring matches,
// Position is exact.
type SearchFilter struct {
	Name     string
	Team     string
	Position string
	Limit    int
}

// Tenure is one PLAYS_FOR edge. A nil bound means the date is unknown or the
// spell is ongoing.
type Tenure struct {
	PlayerID   string
	PlayerName string
	TeamID     string
	TeamName   string
	From       *time.Time
	To         *time.Time
}

func (t Tenure) Interval() interval.Interval {
	return interval.New(t.From, t.To)
}

// CardTally counts bookings by colour.
type CardTally struct {
	Yellow int
	Red    int
}

// Transfer is one move between clubs, reconstructed from the
// TRANSFERRED_FROM and TRANSFERRED_TO edge pair.
type Transfer struct {
	FromTeam string
	ToTeam   string
	Date     time.Time
	Fee      *float64
	Loan     bool
}

// CareerPathQuery matches players who played for every named team.
type CareerPathQuery struct {
	Teams     []string
	Positions []string
	MinTeams  int
	MinGoals  int
}

// CareerPathRow is one candidate from a career path traversal, before the
// minimum team and goal thresholds are applied.
type CareerPathRow struct {
	PlayerID    string
	Name        string
	Position    string
	Nationality string
	Teams       []string
	Goals       int
}
