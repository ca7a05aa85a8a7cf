package dataprocessing

import "quizstats/pkg/contracts/domain"

// TeamLedger accumulates TeamTotals keyed by team name and remembers the
// order in which teams first appeared.
type TeamLedger struct {
	order  []string
	totals map[string]*domain.TeamTotals
}

// NewTeamLedger returns an empty ledger.
func NewTeamLedger() *TeamLedger {
	return &TeamLedger{totals: make(map[string]*domain.TeamTotals)}
}

// Add folds one game into the ledger, creating the team on first sight.
func (l *TeamLedger) Add(g domain.TeamGame) {
	t, ok := l.totals[g.Team]
	if !ok {
		t = domain.NewTeamTotals()
		l.totals[g.Team] = t
		l.order = append(l.order, g.Team)
	}
	t.Apply(g)
}

// Names returns team names in first-appearance order.
func (l *TeamLedger) Names() []string {
	return append([]string(nil), l.order...)
}

// Get returns the totals for name.
func (l *TeamLedger) Get(name string) (*domain.TeamTotals, bool) {
	t, ok := l.totals[name]
	return t, ok
}

// Len is the number of teams seen.
func (l *TeamLedger) Len() int {
	return len(l.order)
}

// FoldTeams folds games, in order, into a new ledger.
func FoldTeams(games []domain.TeamGame) *TeamLedger {
	l := NewTeamLedger()
	for _, g := range games {
		l.Add(g)
	}
	return l
}

// PlayerLedger accumulates PlayerTotals keyed by player name.
type PlayerLedger struct {
	order  []string
	totals map[string]*domain.PlayerTotals
}

// NewPlayerLedger returns an empty player ledger.
func NewPlayerLedger() *PlayerLedger {
	return &PlayerLedger{totals: make(map[string]*domain.PlayerTotals)}
}

// Add folds one player game into the ledger, creating the player on first sight.
func (l *PlayerLedger) Add(g domain.IndivGame) {
	p, ok := l.totals[g.Player]
	if !ok {
		p = &domain.PlayerTotals{}
		l.totals[g.Player] = p
		l.order = append(l.order, g.Player)
	}
	p.Apply(g)
}

// Names returns players in first-appearance order.
func (l *PlayerLedger) Names() []string {
	return append([]string(nil), l.order...)
}

// Get returns the running totals for name.
func (l *PlayerLedger) Get(name string) (*domain.PlayerTotals, bool) {
	p, ok := l.totals[name]
	return p, ok
}

// Len returns the number of players seen.
func (l *PlayerLedger) Len() int {
	return len(l.order)
}

// FoldPlayers folds games into a new ledger.
func FoldPlayers(games []domain.IndivGame) *PlayerLedger {
	l := NewPlayerLedger()
	for _, g := range games {
		l.Add(g)
	}
	return l
}
