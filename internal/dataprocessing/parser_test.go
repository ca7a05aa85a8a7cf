package dataprocessing

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "quizstats/internal/errors"
	"quizstats/internal/files"
	"quizstats/internal/shared/testutil"
	"quizstats/pkg/contracts/domain"
)

func TestDecideOutcome(t *testing.T) {
	tests := []struct {
		name       string
		a, b       int
		wantA      domain.Outcome
		wantB      domain.Outcome
		wantPlayed bool
	}{
		{"a wins", 220, 180, domain.OutcomeWin, domain.OutcomeLoss, true},
		{"b wins", 90, 140, domain.OutcomeLoss, domain.OutcomeWin, true},
		{"tie", 150, 150, domain.OutcomeTie, domain.OutcomeTie, true},
		{"shutout still played", 0, 30, domain.OutcomeLoss, domain.OutcomeWin, true},
		{"not played", 0, 0, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, played := DecideOutcome(tt.a, tt.b)
			assert.Equal(t, tt.wantA, a)
			assert.Equal(t, tt.wantB, b)
			assert.Equal(t, tt.wantPlayed, played)
		})
	}
}

func TestExtractor_TeamGames(t *testing.T) {
	dir := t.TempDir()
	ref := domain.GameRef{Room: 0, Round: 1}
	writeScoresheet(t, dir, ref, owlsVsHawks())

	games, err := newTestExtractor(dir, ParseLenient).TeamGames(context.Background(), ref)
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, domain.TeamGame{
		Team:            "Owls",
		Outcome:         domain.OutcomeWin,
		Roster:          domain.NewRoster("Ann", "Bob"),
		Score:           220,
		CategoryPoints:  100,
		AlphabetPoints:  60,
		LightningPoints: 40,
		Tossups:         6,
		Powers:          1,
	}, games[0])
	assert.Equal(t, domain.TeamGame{
		Team:            "Hawks",
		Outcome:         domain.OutcomeLoss,
		Roster:          domain.NewRoster("Cal", "Dee"),
		Score:           180,
		CategoryPoints:  80,
		AlphabetPoints:  50,
		LightningPoints: 30,
		Tossups:         5,
		Powers:          1,
	}, games[1])
}

func TestExtractor_TeamGames_Variants(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*scoresheet)
		check  func(t *testing.T, games []domain.TeamGame)
	}{
		{
			name: "tie",
			modify: func(s *scoresheet) {
				s.FinalA, s.FinalB = 150, 150
			},
			check: func(t *testing.T, games []domain.TeamGame) {
				assert.Equal(t, domain.OutcomeTie, games[0].Outcome)
				assert.Equal(t, domain.OutcomeTie, games[1].Outcome)
			},
		},
		{
			name: "names are trimmed",
			modify: func(s *scoresheet) {
				s.TeamA = "  Owls "
				s.RosterA = []string{" Ann", "Bob  "}
			},
			check: func(t *testing.T, games []domain.TeamGame) {
				assert.Equal(t, "Owls", games[0].Team)
				assert.Equal(t, domain.NewRoster("Ann", "Bob"), games[0].Roster)
				assert.Equal(t, 6, games[0].Tossups)
			},
		},
		{
			name: "empty and zero roster cells are skipped",
			modify: func(s *scoresheet) {
				s.RosterA = []string{"Ann", "0"}
				s.RosterB = []string{"", "Dee"}
			},
			check: func(t *testing.T, games []domain.TeamGame) {
				assert.Equal(t, domain.NewRoster("Ann"), games[0].Roster)
				assert.Equal(t, domain.NewRoster("Dee"), games[1].Roster)
				assert.Equal(t, 4, games[0].Tossups)
				assert.Equal(t, 2, games[1].Tossups)
			},
		},
		{
			name: "players outside both rosters add nothing",
			modify: func(s *scoresheet) {
				s.Players[3] = playerLine{"Zed", 90, 3, 9}
			},
			check: func(t *testing.T, games []domain.TeamGame) {
				assert.Equal(t, 3, games[1].Tossups)
				assert.Equal(t, 1, games[1].Powers)
			},
		},
		{
			name: "text in a points cell becomes zero",
			modify: func(s *scoresheet) {
				s.AlphaB = "forfeit"
				s.LightA = nil
			},
			check: func(t *testing.T, games []domain.TeamGame) {
				assert.Equal(t, 0, games[1].AlphabetPoints)
				assert.Equal(t, 0, games[0].LightningPoints)
			},
		},
		{
			name: "fractional score truncates",
			modify: func(s *scoresheet) {
				s.FinalA = 219.5
			},
			check: func(t *testing.T, games []domain.TeamGame) {
				assert.Equal(t, 219, games[0].Score)
				assert.Equal(t, domain.OutcomeWin, games[0].Outcome)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			ref := domain.GameRef{Room: 2, Round: 3}
			sheet := owlsVsHawks()
			tt.modify(&sheet)
			writeScoresheet(t, dir, ref, sheet)

			games, err := newTestExtractor(dir, ParseLenient).TeamGames(context.Background(), ref)
			require.NoError(t, err)
			require.Len(t, games, 2)
			tt.check(t, games)
		})
	}
}

func TestExtractor_IndividualGames(t *testing.T) {
	dir := t.TempDir()
	ref := domain.GameRef{Room: 1, Round: 4}
	writeScoresheet(t, dir, ref, owlsVsHawks())

	games, err := newTestExtractor(dir, ParseLenient).IndividualGames(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, []domain.IndivGame{
		{Player: "Ann", Points: 60, Powers: 1, Tossups: 4},
		{Player: "Bob", Points: 40, Powers: 0, Tossups: 2},
		{Player: "Cal", Points: 50, Powers: 1, Tossups: 3},
		{Player: "Dee", Points: 30, Powers: 0, Tossups: 2},
	}, games)
}

func TestExtractor_IndividualGames_RowRules(t *testing.T) {
	dir := t.TempDir()
	ref := domain.GameRef{Room: 0, Round: 2}
	sheet := owlsVsHawks()
	sheet.Players = []playerLine{
		{"Ann", 60, 1, 4},
		{"0", 99, 9, 9},
		{"Cal", 50, 1, 3},
		{" Ann ", 70, 2, 5},
	}
	writeScoresheet(t, dir, ref, sheet)

	games, err := newTestExtractor(dir, ParseLenient).IndividualGames(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, []domain.IndivGame{
		{Player: "Ann", Points: 70, Powers: 2, Tossups: 5},
		{Player: "Cal", Points: 50, Powers: 1, Tossups: 3},
	}, games)
}

func TestExtractor_NotPlayed(t *testing.T) {
	dir := t.TempDir()
	ref := domain.GameRef{Room: 3, Round: 7}
	sheet := owlsVsHawks()
	sheet.FinalA, sheet.FinalB = 0, nil
	writeScoresheet(t, dir, ref, sheet)

	e := newTestExtractor(dir, ParseLenient)

	teams, err := e.TeamGames(context.Background(), ref)
	assert.ErrorIs(t, err, ErrGameNotPlayed)
	assert.Nil(t, teams)

	players, err := e.IndividualGames(context.Background(), ref)
	assert.ErrorIs(t, err, ErrGameNotPlayed)
	assert.Nil(t, players)
}

func TestExtractor_StrictMode(t *testing.T) {
	dir := t.TempDir()
	ref := domain.GameRef{Room: 0, Round: 1}
	sheet := owlsVsHawks()
	sheet.Players[1].Tossups = "two"
	writeScoresheet(t, dir, ref, sheet)

	_, err := newTestExtractor(dir, ParseStrict).TeamGames(context.Background(), ref)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, SheetIndividuals, appErr.Context["sheet"])
	assert.Equal(t, "D3", appErr.Context["cell"])
	assert.Equal(t, ref.String(), appErr.Context["game"])

	games, err := newTestExtractor(dir, ParseLenient).TeamGames(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, 4, games[0].Tossups)
}

func TestExtractor_Failures(t *testing.T) {
	ref := domain.GameRef{Room: 1, Round: 1}

	t.Run("missing workbook", func(t *testing.T) {
		_, err := newTestExtractor(t.TempDir(), ParseLenient).TeamGames(context.Background(), ref)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
	})

	t.Run("missing sheet", func(t *testing.T) {
		dir := t.TempDir()
		sheet := owlsVsHawks()
		sheet.Omit = SheetLightning
		writeScoresheet(t, dir, ref, sheet)

		_, err := newTestExtractor(dir, ParseLenient).TeamGames(context.Background(), ref)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
		assert.Contains(t, err.Error(), SheetLightning)
	})

	t.Run("corrupt workbook", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "MATCH11.xlsx")
		require.NoError(t, os.WriteFile(path, []byte("not a zip archive"), 0o644))

		_, err := newTestExtractor(dir, ParseLenient).IndividualGames(context.Background(), ref)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
	})
}

// closeTracker wraps a workbook and records whether it was closed.
type closeTracker struct {
	*excelize.File
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return c.File.Close()
}

func TestExtractor_ClosesWorkbook(t *testing.T) {
	dir := t.TempDir()
	ref := domain.GameRef{Room: 0, Round: 1}
	sheet := owlsVsHawks()
	sheet.Players[0].Points = "lots"
	writeScoresheet(t, dir, ref, sheet)

	var opened []*closeTracker
	opener := func(path string) (CellSource, error) {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, err
		}
		c := &closeTracker{File: f}
		opened = append(opened, c)
		return c, nil
	}

	e := newTestExtractor(dir, ParseStrict)
	e.open = opener

	_, err := e.IndividualGames(context.Background(), ref)
	require.Error(t, err)
	_, err = e.TeamGames(context.Background(), ref)
	require.NoError(t, err)

	require.Len(t, opened, 2)
	for _, c := range opened {
		assert.True(t, c.closed)
	}
}

func TestExtractor_OpenerError(t *testing.T) {
	dir := t.TempDir()
	ref := domain.GameRef{Room: 0, Round: 1}
	writeScoresheet(t, dir, ref, owlsVsHawks())

	boom := errors.New("disk on fire")
	e := NewExtractor(newTestExtractor(dir, "").locator, nil, ExtractorConfig{
		Opener: func(string) (CellSource, error) { return nil, boom },
	})

	_, err := e.TeamGames(context.Background(), ref)
	assert.ErrorIs(t, err, boom)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestExtractor_LogsCoercions(t *testing.T) {
	dir := t.TempDir()
	ref := domain.GameRef{Room: 0, Round: 1}
	sheet := owlsVsHawks()
	sheet.AlphaB = "forfeit"
	writeScoresheet(t, dir, ref, sheet)

	logger, logs := testutil.NewTestLogger()
	e := NewExtractor(files.NewDiscovery(dir, testPrefix), logger, ExtractorConfig{})
	_, err := e.TeamGames(context.Background(), ref)
	require.NoError(t, err)

	coerced := logs.Find("Cell coerced to zero")
	require.Len(t, coerced, 1)
	assert.Equal(t, slog.LevelDebug, coerced[0].Level)
	assert.Equal(t, "Alphabet!F3", coerced[0].Attrs["cell"])
	assert.Equal(t, "forfeit", coerced[0].Attrs["value"])
	assert.Equal(t, "extractor", coerced[0].Attrs["component"])
	assert.Equal(t, "team", coerced[0].Attrs["view"])
	testutil.AssertLogContains(t, logs, slog.LevelDebug, "Scoresheet extracted")
}

func TestExtractor_TeamGames_SharedName(t *testing.T) {
	dir := t.TempDir()
	ref := domain.GameRef{Room: 0, Round: 1}
	sheet := owlsVsHawks()
	sheet.TeamB = " Owls"
	writeScoresheet(t, dir, ref, sheet)

	logger, logs := testutil.NewTestLogger()
	e := NewExtractor(files.NewDiscovery(dir, testPrefix), logger, ExtractorConfig{})
	games, err := e.TeamGames(context.Background(), ref)
	require.NoError(t, err)

	require.Len(t, games, 1)
	assert.Equal(t, "Owls", games[0].Team)
	assert.Equal(t, domain.OutcomeLoss, games[0].Outcome)
	assert.Equal(t, 180, games[0].Score)
	assert.Equal(t, domain.NewRoster("Cal", "Dee"), games[0].Roster)
	assert.Equal(t, 5, games[0].Tossups)
	testutil.AssertLogContains(t, logs, slog.LevelWarn, "Both teams share a name")
}
