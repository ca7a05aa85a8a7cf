package dataprocessing

import (
	"path/filepath"
	"testing"

	"quizstats/internal/files"
	"quizstats/internal/shared/testutil"
	"quizstats/pkg/contracts/domain"
)

const testPrefix = "MATCH"

// playerLine is one Individuals row: name, points, powers, tossups.
type playerLine struct {
	Name    interface{}
	Points  interface{}
	Powers  interface{}
	Tossups interface{}
}

// scoresheet describes the cells of a test workbook laid out like
// DefaultLayout. Nil values leave the cell blank.
type scoresheet struct {
	TeamA, TeamB     string
	RosterA, RosterB []string
	CatA, CatB       interface{}
	AlphaA, AlphaB   interface{}
	LightA, LightB   interface{}
	FinalA, FinalB   interface{}
	Players          []playerLine
	// Omit drops a sheet from the workbook.
	Omit string
}

func (s scoresheet) cells() map[CellAddr]interface{} {
	l := DefaultLayout
	out := map[CellAddr]interface{}{
		l.Teams[0].Name:            s.TeamA,
		l.Teams[1].Name:            s.TeamB,
		l.Teams[0].CategoryPoints:  s.CatA,
		l.Teams[1].CategoryPoints:  s.CatB,
		l.Teams[0].AlphabetPoints:  s.AlphaA,
		l.Teams[1].AlphabetPoints:  s.AlphaB,
		l.Teams[0].LightningPoints: s.LightA,
		l.Teams[1].LightningPoints: s.LightB,
		l.Teams[0].FinalScore:      s.FinalA,
		l.Teams[1].FinalScore:      s.FinalB,
	}
	for i, name := range s.RosterA {
		out[l.Teams[0].Roster[i]] = name
	}
	for i, name := range s.RosterB {
		out[l.Teams[1].Roster[i]] = name
	}
	rows := l.Players.Rows()
	for i, p := range s.Players {
		out[rows[i].Name] = p.Name
		out[rows[i].Points] = p.Points
		out[rows[i].Powers] = p.Powers
		out[rows[i].Tossups] = p.Tossups
	}
	return out
}

// writeScoresheet saves s as the scoresheet for ref under dir.
func writeScoresheet(t *testing.T, dir string, ref domain.GameRef, s scoresheet) string {
	t.Helper()

	var sheets []string
	for _, name := range []string{SheetCategory, SheetAlphabet, SheetLightning, SheetFinal, SheetIndividuals} {
		if name != s.Omit {
			sheets = append(sheets, name)
		}
	}

	wb := testutil.NewWorkbook(t, sheets...)
	for addr, v := range s.cells() {
		if addr.Sheet != s.Omit {
			wb.Set(addr.Sheet, addr.Cell, v)
		}
	}
	return wb.Save(filepath.Join(dir, files.ScoresheetName(testPrefix, ref.Room, ref.Round)))
}

// owlsVsHawks is a 220-180 game won by team A.
func owlsVsHawks() scoresheet {
	return scoresheet{
		TeamA:   "Owls",
		TeamB:   "Hawks",
		RosterA: []string{"Ann", "Bob"},
		RosterB: []string{"Cal", "Dee"},
		CatA:    100, CatB: 80,
		AlphaA: 60, AlphaB: 50,
		LightA: 40, LightB: 30,
		FinalA: 220, FinalB: 180,
		Players: []playerLine{
			{"Ann", 60, 1, 4},
			{"Bob", 40, 0, 2},
			{"Cal", 50, 1, 3},
			{"Dee", 30, 0, 2},
		},
	}
}

func newTestExtractor(dir string, mode ParseMode) *Extractor {
	return NewExtractor(files.NewDiscovery(dir, testPrefix), nil, ExtractorConfig{Mode: mode})
}
