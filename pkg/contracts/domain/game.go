package domain

import (
	"fmt"
	"sort"
)

// Outcome is the result of a single game from one team's point of view
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeTie  Outcome = "tie"
)

// Valid reports whether the outcome is one of the three known values
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeWin, OutcomeLoss, OutcomeTie:
		return true
	default:
		return false
	}
}

// GameRef identifies one scoresheet: the game played in a room during a round.
type GameRef struct {
	Room  int `json:"room"`
	Round int `json:"round"`
}

func (g GameRef) String() string {
	return fmt.Sprintf("room %d round %d", g.Room, g.Round)
}

// Roster is a set of player names.
type Roster map[string]struct{}

// NewRoster builds a roster from names, ignoring duplicates.
func NewRoster(names ...string) Roster {
	r := make(Roster, len(names))
	for _, n := range names {
		r.Add(n)
	}
	return r
}

// Add inserts a name. Adding an existing name is a no-op.
func (r Roster) Add(name string) {
	r[name] = struct{}{}
}

// Has reports whether name is in the roster
func (r Roster) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// Union adds every member of other to r.
func (r Roster) Union(other Roster) {
	for name := range other {
		r.Add(name)
	}
}

// Sorted returns the members in ascending order.
func (r Roster) Sorted() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TeamGame is one team's result in one game. The extractor creates it and the
// aggregator consumes it; nothing mutates it in between.
type TeamGame struct {
	Team            string  `json:"team"`
	Outcome         Outcome `json:"outcome"`
	Roster          Roster  `json:"roster"`
	Score           int     `json:"score"`
	CategoryPoints  int     `json:"category_points"`
	AlphabetPoints  int     `json:"alphabet_points"`
	LightningPoints int     `json:"lightning_points"`
	Tossups         int     `json:"tossups"`
	Powers          int     `json:"powers"`
}

// IndivGame is one player's line in one game.
type IndivGame struct {
	Player  string `json:"player"`
	Points  int    `json:"points"`
	Tossups int    `json:"tossups"`
	Powers  int    `json:"powers"`
}

// Grid lists every (room, round) pair in traversal order: room-major, then
// round. Rooms are 0-based and rounds 1-based.
func Grid(rooms, rounds int) []GameRef {
	if rooms <= 0 || rounds <= 0 {
		return nil
	}
	refs := make([]GameRef, 0, rooms*rounds)
	for room := 0; room < rooms; room++ {
		for round := 1; round <= rounds; round++ {
			refs = append(refs, GameRef{Room: room, Round: round})
		}
	}
	return refs
}
