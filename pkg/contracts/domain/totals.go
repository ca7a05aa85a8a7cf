package domain

// TeamTotals is the cumulative record of a team across the tournament.
// Counters only ever grow; Roster is the union of every roster fielded.
type TeamTotals struct {
	Win             int    `json:"win"`
	Loss            int    `json:"loss"`
	Tie             int    `json:"tie"`
	Points          int    `json:"points"`
	CategoryPoints  int    `json:"cat_points"`
	AlphabetPoints  int    `json:"alpha_points"`
	LightningPoints int    `json:"light_points"`
	Tossups         int    `json:"tossups"`
	Powers          int    `json:"powers"`
	Roster          Roster `json:"roster"`
}

// NewTeamTotals returns a zero record with an empty roster.
func NewTeamTotals() *TeamTotals {
	return &TeamTotals{Roster: NewRoster()}
}

// Games is the number of counted games.
func (t *TeamTotals) Games() int {
	return t.Win + t.Loss + t.Tie
}

// Apply folds one game into the totals.
func (t *TeamTotals) Apply(g TeamGame) {
	switch g.Outcome {
	case OutcomeWin:
		t.Win++
	case OutcomeLoss:
		t.Loss++
	case OutcomeTie:
		t.Tie++
	}
	t.Points += g.Score
	t.CategoryPoints += g.CategoryPoints
	t.AlphabetPoints += g.AlphabetPoints
	t.LightningPoints += g.LightningPoints
	t.Tossups += g.Tossups
	t.Powers += g.Powers
	t.Roster.Union(g.Roster)
}

// PlayerTotals is the cumulative record of a player across the tournament.
type PlayerTotals struct {
	Games   int `json:"games"`
	Points  int `json:"points"`
	Tossups int `json:"tossups"`
	Powers  int `json:"powers"`
}

// Apply folds one game into the totals.
func (p *PlayerTotals) Apply(g IndivGame) {
	p.Games++
	p.Points += g.Points
	p.Tossups += g.Tossups
	p.Powers += g.Powers
}
