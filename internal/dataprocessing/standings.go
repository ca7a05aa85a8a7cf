package dataprocessing

import (
	"sort"

	"quizstats/pkg/contracts/domain"
)

// TeamStandings derives per-game metrics for every team and ranks them by
// win percentage, highest first. Equal percentages keep first-appearance
// order. Teams without games are left out.
func TeamStandings(l *TeamLedger) []domain.TeamStanding {
	rows := make([]domain.TeamStanding, 0, l.Len())
	for _, name := range l.Names() {
		t, _ := l.Get(name)
		games := t.Games()
		if games == 0 {
			continue
		}
		g := float64(games)
		rows = append(rows, domain.TeamStanding{
			Team:            name,
			Win:             t.Win,
			Loss:            t.Loss,
			Tie:             t.Tie,
			Games:           games,
			Pct:             (float64(t.Win) + 0.5*float64(t.Tie)) / g,
			PPG:             float64(t.Points) / g,
			PowPG:           float64(t.Powers) / g,
			TUPG:            float64(t.Tossups) / g,
			CatPPG:          float64(t.CategoryPoints) / g,
			AlphaPPG:        float64(t.AlphabetPoints) / g,
			LightPPG:        float64(t.LightningPoints) / g,
			Points:          t.Points,
			Powers:          t.Powers,
			Tossups:         t.Tossups,
			CategoryPoints:  t.CategoryPoints,
			AlphabetPoints:  t.AlphabetPoints,
			LightningPoints: t.LightningPoints,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Pct > rows[j].Pct
	})
	return rows
}

// PlayerStandings ranks players by points per game, highest first.
func PlayerStandings(l *PlayerLedger) []domain.PlayerStanding {
	rows := make([]domain.PlayerStanding, 0, l.Len())
	for _, name := range l.Names() {
		p, _ := l.Get(name)
		if p.Games == 0 {
			continue
		}
		g := float64(p.Games)
		rows = append(rows, domain.PlayerStanding{
			Player:  name,
			PPG:     float64(p.Points) / g,
			PowPG:   float64(p.Powers) / g,
			TUPG:    float64(p.Tossups) / g,
			Powers:  p.Powers,
			Tossups: p.Tossups,
			Points:  p.Points,
			Games:   p.Games,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].PPG > rows[j].PPG
	})
	return rows
}

// RosterTable lists each team's distinct players alphabetically, teams in
// first-appearance order.
func RosterTable(l *TeamLedger) []domain.RosterRow {
	rows := make([]domain.RosterRow, 0, l.Len())
	for _, name := range l.Names() {
		t, _ := l.Get(name)
		if t.Games() == 0 {
			continue
		}
		rows = append(rows, domain.RosterRow{Team: name, Players: t.Roster.Sorted()})
	}
	return rows
}

// BuildReport derives the three report tables from a season.
func BuildReport(s *Season) domain.SeasonReport {
	return domain.SeasonReport{
		Teams:   TeamStandings(s.Teams),
		Players: PlayerStandings(s.Players),
		Rosters: RosterTable(s.Teams),
	}
}
