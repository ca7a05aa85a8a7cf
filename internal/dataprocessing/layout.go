package dataprocessing

import "github.com/xuri/excelize/v2"

// CellAddr is a cell in a named sheet.
type CellAddr struct {
	Sheet string
	Cell  string
}

func (c CellAddr) String() string {
	return c.Sheet + "!" + c.Cell
}

// TeamCells locates one team's fields on the scoresheet.
type TeamCells struct {
	Name            CellAddr
	Roster          []CellAddr
	CategoryPoints  CellAddr
	AlphabetPoints  CellAddr
	LightningPoints CellAddr
	FinalScore      CellAddr
}

// PlayerRows locates the block of individual player lines.
type PlayerRows struct {
	Sheet      string
	FirstRow   int
	LastRow    int
	NameCol    string
	PointsCol  string
	PowersCol  string
	TossupsCol string
}

// PlayerRowCells holds the addresses of one player line.
type PlayerRowCells struct {
	Name, Points, Powers, Tossups CellAddr
}

// Rows returns the addresses of every line in the block, top to bottom.
func (p PlayerRows) Rows() []PlayerRowCells {
	var rows []PlayerRowCells
	for r := p.FirstRow; r <= p.LastRow; r++ {
		at := func(col string) CellAddr {
			// An invalid column leaves Cell empty; reading it fails as PARSING.
			cell, _ := excelize.JoinCellName(col, r)
			return CellAddr{Sheet: p.Sheet, Cell: cell}
		}
		rows = append(rows, PlayerRowCells{
			Name:    at(p.NameCol),
			Points:  at(p.PointsCol),
			Powers:  at(p.PowersCol),
			Tossups: at(p.TossupsCol),
		})
	}
	return rows
}

// Layout maps scoresheet fields to cell addresses. It is the only place that
// knows the template; swap it when the template changes.
type Layout struct {
	Teams   [2]TeamCells
	Players PlayerRows
}

// Sheet names of the scoresheet template.
const (
	SheetCategory    = "Category"
	SheetAlphabet    = "Alphabet"
	SheetLightning   = "Lightning"
	SheetFinal       = "Final"
	SheetIndividuals = "Individuals"
)

// DefaultLayout is the tournament scoresheet template.
var DefaultLayout = Layout{
	Teams: [2]TeamCells{
		{
			Name:            CellAddr{SheetCategory, "C1"},
			Roster:          []CellAddr{{SheetCategory, "C2"}, {SheetCategory, "D2"}},
			CategoryPoints:  CellAddr{SheetCategory, "E33"},
			AlphabetPoints:  CellAddr{SheetAlphabet, "B3"},
			LightningPoints: CellAddr{SheetLightning, "E33"},
			FinalScore:      CellAddr{SheetFinal, "C9"},
		},
		{
			Name:            CellAddr{SheetCategory, "F1"},
			Roster:          []CellAddr{{SheetCategory, "F2"}, {SheetCategory, "G2"}},
			CategoryPoints:  CellAddr{SheetCategory, "H33"},
			AlphabetPoints:  CellAddr{SheetAlphabet, "F3"},
			LightningPoints: CellAddr{SheetLightning, "H33"},
			FinalScore:      CellAddr{SheetFinal, "H9"},
		},
	},
	Players: PlayerRows{
		Sheet:      SheetIndividuals,
		FirstRow:   2,
		LastRow:    5,
		NameCol:    "A",
		PointsCol:  "B",
		PowersCol:  "C",
		TossupsCol: "D",
	},
}
