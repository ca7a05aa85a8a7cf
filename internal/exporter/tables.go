package exporter

import "quizstats/pkg/contracts/domain"

// Sheet names of the combined workbook.
const (
	SheetTeamStats       = "Team Stats"
	SheetIndividualStats = "Individual Stats"
	SheetTeamRosters     = "Team Rosters"
)

// File names of the CSV tables.
const (
	FileTeamStats       = "team_stats.csv"
	FileIndividualStats = "individual_stats.csv"
	FileTeamRosters     = "team_rosters.csv"
)

// table is one emitted table. The first column of every row is the team or
// player name; Header is nil for the roster table.
type table struct {
	Sheet  string
	File   string
	Header []interface{}
	Rows   [][]interface{}
}

func headerRow(columns []string) []interface{} {
	row := make([]interface{}, 0, len(columns)+1)
	row = append(row, "")
	for _, c := range columns {
		row = append(row, c)
	}
	return row
}

// buildTables lays out the three report tables in emit order.
func buildTables(r domain.SeasonReport) []table {
	teams := table{
		Sheet:  SheetTeamStats,
		File:   FileTeamStats,
		Header: headerRow(domain.TeamStatsColumns),
	}
	for _, s := range r.Teams {
		teams.Rows = append(teams.Rows, append([]interface{}{s.Team}, s.Values()...))
	}

	players := table{
		Sheet:  SheetIndividualStats,
		File:   FileIndividualStats,
		Header: headerRow(domain.IndividualStatsColumns),
	}
	for _, s := range r.Players {
		players.Rows = append(players.Rows, append([]interface{}{s.Player}, s.Values()...))
	}

	rosters := table{Sheet: SheetTeamRosters, File: FileTeamRosters}
	width := domain.RosterWidth(r.Rosters)
	for _, roster := range r.Rosters {
		row := make([]interface{}, width+1)
		row[0] = roster.Team
		for i := range row[1:] {
			row[i+1] = ""
		}
		for i, name := range roster.Players {
			row[i+1] = name
		}
		rosters.Rows = append(rosters.Rows, row)
	}

	return []table{teams, players, rosters}
}
