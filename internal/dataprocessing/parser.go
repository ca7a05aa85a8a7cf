package dataprocessing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	apperrors "quizstats/internal/errors"
	"quizstats/internal/infrastructure"
	"quizstats/pkg/contracts/domain"
)

// ErrGameNotPlayed marks a scoresheet whose final score is 0-0. It is not a
// failure; callers skip the game.
var ErrGameNotPlayed = errors.New("game not played")

// CellSource is the read side of an open workbook.
type CellSource interface {
	GetCellValue(sheet, cell string, opts ...excelize.Options) (string, error)
	Close() error
}

// Opener opens the workbook at path.
type Opener func(path string) (CellSource, error)

// OpenWorkbook opens an xlsx file with excelize.
func OpenWorkbook(path string) (CellSource, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Locator resolves a game to its scoresheet path.
type Locator interface {
	Locate(ref domain.GameRef) (string, error)
}

// ExtractorConfig configures an Extractor. Zero values select DefaultLayout,
// lenient parsing, excelize and no-op telemetry.
type ExtractorConfig struct {
	Layout  *Layout
	Mode    ParseMode
	Opener  Opener
	Tracer  trace.Tracer
	Metrics *infrastructure.RunMetrics
}

// Extractor reads TeamGame and IndivGame records out of scoresheets.
type Extractor struct {
	locator Locator
	layout  Layout
	coercer Coercer
	open    Opener
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *infrastructure.RunMetrics
}

// NewExtractor creates an extractor that finds scoresheets through locator.
func NewExtractor(locator Locator, logger *slog.Logger, cfg ExtractorConfig) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Extractor{
		locator: locator,
		layout:  DefaultLayout,
		coercer: Coercer{Mode: ParseLenient},
		open:    OpenWorkbook,
		logger:  infrastructure.WithComponent(logger, "extractor"),
		tracer:  cfg.Tracer,
		metrics: cfg.Metrics,
	}
	if cfg.Layout != nil {
		e.layout = *cfg.Layout
	}
	if cfg.Mode != "" {
		e.coercer.Mode = cfg.Mode
	}
	if cfg.Opener != nil {
		e.open = cfg.Opener
	}
	if e.tracer == nil {
		e.tracer = noop.NewTracerProvider().Tracer(infrastructure.ServiceName)
	}
	if e.metrics == nil {
		e.metrics = infrastructure.NoopRunMetrics()
	}
	return e
}

// DecideOutcome compares two final scores. A 0-0 game was not played.
func DecideOutcome(a, b int) (domain.Outcome, domain.Outcome, bool) {
	switch {
	case a == 0 && b == 0:
		return "", "", false
	case a > b:
		return domain.OutcomeWin, domain.OutcomeLoss, true
	case a < b:
		return domain.OutcomeLoss, domain.OutcomeWin, true
	default:
		return domain.OutcomeTie, domain.OutcomeTie, true
	}
}

// TeamGames returns the records of team A and team B, in that order. When
// both teams carry the same name only team B's record is returned.
func (e *Extractor) TeamGames(ctx context.Context, ref domain.GameRef) ([]domain.TeamGame, error) {
	var games []domain.TeamGame
	err := e.withSheet(ctx, ref, "team", func(r *sheetReader) error {
		outcomes, err := e.outcomes(r)
		if err != nil {
			return err
		}

		for i, cells := range e.layout.Teams {
			g := domain.TeamGame{
				Team:            Trim(r.text(cells.Name)),
				Outcome:         outcomes[i],
				Roster:          domain.NewRoster(),
				CategoryPoints:  r.number(cells.CategoryPoints),
				AlphabetPoints:  r.number(cells.AlphabetPoints),
				LightningPoints: r.number(cells.LightningPoints),
				Score:           r.number(cells.FinalScore),
			}
			for _, addr := range cells.Roster {
				if name := Trim(r.text(addr)); IsPlayerName(name) {
					g.Roster.Add(name)
				}
			}
			games = append(games, g)
		}

		for _, row := range e.layout.Players.Rows() {
			name := Trim(r.text(row.Name))
			if !IsPlayerName(name) {
				continue
			}
			tossups, powers := r.number(row.Tossups), r.number(row.Powers)
			for i := range games {
				if games[i].Roster.Has(name) {
					games[i].Tossups += tossups
					games[i].Powers += powers
				}
			}
		}
		if r.err != nil {
			return r.err
		}

		if games[0].Team == games[1].Team {
			r.logger.WarnContext(r.ctx, "Both teams share a name, keeping team B",
				slog.String("team", games[1].Team))
			games = games[1:]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return games, nil
}

// IndividualGames returns one record per named player row. A name repeated in
// a later row replaces the earlier values and keeps the earlier position.
func (e *Extractor) IndividualGames(ctx context.Context, ref domain.GameRef) ([]domain.IndivGame, error) {
	var games []domain.IndivGame
	err := e.withSheet(ctx, ref, "individual", func(r *sheetReader) error {
		if _, err := e.outcomes(r); err != nil {
			return err
		}

		index := make(map[string]int)
		for _, row := range e.layout.Players.Rows() {
			name := Trim(r.text(row.Name))
			if !IsPlayerName(name) {
				continue
			}
			g := domain.IndivGame{
				Player:  name,
				Points:  r.number(row.Points),
				Powers:  r.number(row.Powers),
				Tossups: r.number(row.Tossups),
			}
			if i, ok := index[name]; ok {
				games[i] = g
				continue
			}
			index[name] = len(games)
			games = append(games, g)
		}
		return r.err
	})
	if err != nil {
		return nil, err
	}
	return games, nil
}

// outcomes reads both final scores and decides the game.
func (e *Extractor) outcomes(r *sheetReader) ([2]domain.Outcome, error) {
	a := r.number(e.layout.Teams[0].FinalScore)
	b := r.number(e.layout.Teams[1].FinalScore)
	if r.err != nil {
		return [2]domain.Outcome{}, r.err
	}
	outA, outB, played := DecideOutcome(a, b)
	if !played {
		return [2]domain.Outcome{}, ErrGameNotPlayed
	}
	return [2]domain.Outcome{outA, outB}, nil
}

// withSheet opens the scoresheet for ref, runs fn against it and closes it.
func (e *Extractor) withSheet(ctx context.Context, ref domain.GameRef, view string, fn func(*sheetReader) error) (err error) {
	ctx, span := e.tracer.Start(ctx, "extract."+view,
		trace.WithAttributes(
			attribute.Int("game.room", ref.Room),
			attribute.Int("game.round", ref.Round),
		))
	defer span.End()

	logger := e.logger.With(
		slog.String("view", view),
		slog.Int("room", ref.Room),
		slog.Int("round", ref.Round),
	)

	status := "ok"
	defer func() {
		switch {
		case errors.Is(err, ErrGameNotPlayed):
			status = "not_played"
		case err != nil:
			status = "error"
			infrastructure.RecordError(ctx, err)
		}
		e.metrics.GamesExtracted.Add(ctx, 1, metric.WithAttributes(
			attribute.String("view", view),
			attribute.String("status", status),
		))
	}()

	path, err := e.locator.Locate(ref)
	if err != nil {
		return fmt.Errorf("locate scoresheet for %s: %w", ref, err)
	}

	src, err := e.open(path)
	if err != nil {
		return apperrors.NewParsingError(fmt.Sprintf("cannot open scoresheet for %s", ref), err).
			WithContext("path", path)
	}
	defer src.Close()
	e.metrics.ScoresheetsOpened.Add(ctx, 1)

	r := &sheetReader{ctx: ctx, src: src, coercer: e.coercer, logger: logger}
	err = fn(r)
	if r.coerced > 0 {
		e.metrics.CellsCoerced.Add(ctx, int64(r.coerced))
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		appErr.WithContext("path", path).WithContext("game", ref.String())
	}
	if err == nil {
		logger.DebugContext(ctx, "Scoresheet extracted", slog.String("path", path))
	}
	return err
}

// sheetReader reads cells from one workbook and keeps the first error, so
// extraction code can read a run of cells and check once.
type sheetReader struct {
	ctx     context.Context
	src     CellSource
	coercer Coercer
	logger  *slog.Logger
	err     error
	coerced int
}

func (r *sheetReader) text(addr CellAddr) string {
	if r.err != nil {
		return ""
	}
	v, err := r.src.GetCellValue(addr.Sheet, addr.Cell, excelize.Options{RawCellValue: true})
	if err != nil {
		r.err = apperrors.NewParsingError("cannot read cell "+addr.String(), err).
			WithContext("sheet", addr.Sheet).
			WithContext("cell", addr.Cell)
		return ""
	}
	return v
}

func (r *sheetReader) number(addr CellAddr) int {
	raw := r.text(addr)
	if r.err != nil {
		return 0
	}
	v, lenient, err := r.coercer.Int(addr, raw)
	if err != nil {
		r.err = err
		return 0
	}
	if lenient {
		r.coerced++
		r.logger.DebugContext(r.ctx, "Cell coerced to zero",
			slog.String("cell", addr.String()),
			slog.String("value", raw))
	}
	return v
}
