package exporter

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"quizstats/internal/config"
	apperrors "quizstats/internal/errors"
	"quizstats/pkg/contracts/domain"
)

func sampleReport() domain.SeasonReport {
	return domain.SeasonReport{
		Teams: []domain.TeamStanding{
			{
				Team: "Owls", Win: 1, Loss: 1, Games: 2, Pct: 0.5, PPG: 185, PowPG: 0.5,
				TUPG: 4.5, CatPPG: 100, AlphaPPG: 60, LightPPG: 40, Points: 370, Powers: 1,
				Tossups: 9, CategoryPoints: 200, AlphabetPoints: 120, LightningPoints: 80,
			},
			{Team: "Hawks", Win: 1, Loss: 1, Games: 2, Pct: 0.5, PPG: 195, Points: 390},
		},
		Players: []domain.PlayerStanding{
			{Player: "Ann", PPG: 40, PowPG: 0.5, TUPG: 2.5, Powers: 1, Tossups: 5, Points: 80, Games: 2},
		},
		Rosters: []domain.RosterRow{
			{Team: "Owls", Players: []string{"Ann", "Bob", "Eve"}},
			{Team: "Hawks", Players: []string{"Cal"}},
		},
	}
}

func TestBuildTables(t *testing.T) {
	tables := buildTables(sampleReport())
	require.Len(t, tables, 3)

	teams := tables[0]
	assert.Equal(t, SheetTeamStats, teams.Sheet)
	require.Len(t, teams.Header, len(domain.TeamStatsColumns)+1)
	assert.Equal(t, "", teams.Header[0])
	assert.Equal(t, "win", teams.Header[1])
	assert.Equal(t, "light_points", teams.Header[len(teams.Header)-1])
	assert.Equal(t, []interface{}{
		"Owls", 1, 1, 0, 0.5, 185.0, 0.5, 4.5, 100.0, 60.0, 40.0, 370, 1, 9, 200, 120, 80,
	}, teams.Rows[0])

	players := tables[1]
	assert.Equal(t, []interface{}{"", "ppg", "powpg", "tupg", "powers", "tossups", "points", "games"}, players.Header)
	assert.Equal(t, []interface{}{"Ann", 40.0, 0.5, 2.5, 1, 5, 80, 2}, players.Rows[0])

	rosters := tables[2]
	assert.Nil(t, rosters.Header)
	assert.Equal(t, [][]interface{}{
		{"Owls", "Ann", "Bob", "Eve"},
		{"Hawks", "Cal", "", ""},
	}, rosters.Rows)
}

func TestWorkbookWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "combined_stats.xlsx")

	written, err := NewWorkbookWriter(path, nil).Write(context.Background(), sampleReport())
	require.NoError(t, err)
	assert.Equal(t, []string{path}, written)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetTeamStats, SheetIndividualStats, SheetTeamRosters}, f.GetSheetList())

	teamRows, err := f.GetRows(SheetTeamStats)
	require.NoError(t, err)
	require.Len(t, teamRows, 3)
	assert.Equal(t, "win", teamRows[0][1])
	assert.Equal(t, "Owls", teamRows[1][0])
	assert.Equal(t, "0.5", teamRows[1][4])
	assert.Equal(t, "Hawks", teamRows[2][0])

	playerRows, err := f.GetRows(SheetIndividualStats)
	require.NoError(t, err)
	require.Len(t, playerRows, 2)
	assert.Equal(t, []string{"Ann", "40", "0.5", "2.5", "1", "5", "80", "2"}, playerRows[1])

	rosterRows, err := f.GetRows(SheetTeamRosters)
	require.NoError(t, err)
	require.Len(t, rosterRows, 2)
	assert.Equal(t, []string{"Owls", "Ann", "Bob", "Eve"}, rosterRows[0])
	assert.Equal(t, "Cal", rosterRows[1][1])
}

func TestWorkbookWriter_EmptyReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	_, err := NewWorkbookWriter(path, nil).Write(context.Background(), domain.SeasonReport{})
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetTeamStats)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	rows, err = f.GetRows(SheetTeamRosters)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestWorkbookWriter_SaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "taken")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := NewWorkbookWriter(filepath.Join(blocker, "out.xlsx"), nil).Write(context.Background(), sampleReport())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(content, utf8BOM))

	r := csv.NewReader(bytes.NewReader(content[len(utf8BOM):]))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVReportWriter_Write(t *testing.T) {
	dir := t.TempDir()

	written, err := NewCSVReportWriter(dir, nil).Write(context.Background(), sampleReport())
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, FileTeamStats),
		filepath.Join(dir, FileIndividualStats),
		filepath.Join(dir, FileTeamRosters),
	}, written)

	teams := readCSV(t, written[0])
	require.Len(t, teams, 3)
	assert.Equal(t, "", teams[0][0])
	assert.Equal(t, "pct", teams[0][4])
	assert.Equal(t, []string{"Owls", "1", "1", "0", "0.5", "185", "0.5", "4.5", "100", "60", "40", "370", "1", "9", "200", "120", "80"}, teams[1])

	players := readCSV(t, written[1])
	assert.Equal(t, []string{"Ann", "40", "0.5", "2.5", "1", "5", "80", "2"}, players[1])

	rosters := readCSV(t, written[2])
	assert.Equal(t, [][]string{
		{"Owls", "Ann", "Bob", "Eve"},
		{"Hawks", "Cal", "", ""},
	}, rosters)
}

func TestNewReportWriter(t *testing.T) {
	paths := &config.Paths{OutputPath: "/out/combined_stats.xlsx", OutputDir: "/out"}

	w, err := NewReportWriter(config.FormatXLSX, paths, nil)
	require.NoError(t, err)
	assert.IsType(t, &WorkbookWriter{}, w)

	w, err = NewReportWriter("", paths, nil)
	require.NoError(t, err)
	assert.IsType(t, &WorkbookWriter{}, w)

	w, err = NewReportWriter(config.FormatCSV, paths, nil)
	require.NoError(t, err)
	assert.IsType(t, &CSVReportWriter{}, w)

	_, err = NewReportWriter("pdf", paths, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}
