package dataprocessing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"quizstats/internal/config"
	apperrors "quizstats/internal/errors"
	"quizstats/internal/infrastructure"
	"quizstats/pkg/contracts/domain"
)

// GameSource produces the records of one scoresheet. Both methods return
// ErrGameNotPlayed for a 0-0 game.
type GameSource interface {
	TeamGames(ctx context.Context, ref domain.GameRef) ([]domain.TeamGame, error)
	IndividualGames(ctx context.Context, ref domain.GameRef) ([]domain.IndivGame, error)
}

// Season is the result of folding every scoresheet of a tournament.
type Season struct {
	Teams   *TeamLedger
	Players *PlayerLedger
	// Played counts scoresheets folded, Skipped those not played.
	Played  int
	Skipped int
}

// Aggregator walks every (room, round) of a tournament and folds the records
// into season ledgers.
type Aggregator struct {
	cfg     config.TournamentConfig
	source  GameSource
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *infrastructure.RunMetrics
}

// NewAggregator creates an aggregator over the rooms and rounds in cfg.
func NewAggregator(cfg config.TournamentConfig, source GameSource, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		cfg:     cfg,
		source:  source,
		logger:  infrastructure.WithComponent(logger, "aggregator"),
		tracer:  noop.NewTracerProvider().Tracer(infrastructure.ServiceName),
		metrics: infrastructure.NoopRunMetrics(),
	}
}

// WithTelemetry sets the tracer and instruments used by Run. Nil arguments
// leave the current ones in place.
func (a *Aggregator) WithTelemetry(tracer trace.Tracer, metrics *infrastructure.RunMetrics) *Aggregator {
	if tracer != nil {
		a.tracer = tracer
	}
	if metrics != nil {
		a.metrics = metrics
	}
	return a
}

// Run folds the whole tournament. Any error other than ErrGameNotPlayed aborts
// the run and no partial season is returned. Cancellation is checked between
// scoresheets.
func (a *Aggregator) Run(ctx context.Context) (*Season, error) {
	ctx, span := a.tracer.Start(ctx, "aggregate",
		trace.WithAttributes(
			attribute.Int("tournament.rooms", a.cfg.Rooms),
			attribute.Int("tournament.rounds", a.cfg.Rounds),
		))
	defer span.End()

	start := time.Now()
	a.logger.InfoContext(ctx, "Aggregating tournament",
		slog.Int("rooms", a.cfg.Rooms),
		slog.Int("rounds", a.cfg.Rounds),
		slog.String("input_dir", a.cfg.InputDir))

	season := &Season{
		Teams:   NewTeamLedger(),
		Players: NewPlayerLedger(),
	}

	for _, ref := range domain.Grid(a.cfg.Rooms, a.cfg.Rounds) {
		if err := ctx.Err(); err != nil {
			infrastructure.RecordError(ctx, err)
			return nil, fmt.Errorf("aggregation cancelled before %s: %w", ref, err)
		}

		played, err := a.fold(ctx, ref, season)
		if err != nil {
			infrastructure.RecordError(ctx, err)
			infrastructure.WithError(a.logger, err).ErrorContext(ctx, "Aggregation failed",
				slog.String("game", ref.String()))
			return nil, err
		}
		if played {
			season.Played++
		} else {
			season.Skipped++
		}
	}

	a.metrics.RunDuration.Record(ctx, time.Since(start).Seconds())
	span.SetAttributes(
		attribute.Int("games.played", season.Played),
		attribute.Int("games.skipped", season.Skipped),
	)
	a.logger.InfoContext(ctx, "Tournament aggregated",
		slog.Int("played", season.Played),
		slog.Int("skipped", season.Skipped),
		slog.Int("teams", season.Teams.Len()),
		slog.Int("players", season.Players.Len()),
		slog.Duration("elapsed", time.Since(start)))
	return season, nil
}

// fold extracts both views of one scoresheet into season. It reports false
// when the game was not played.
func (a *Aggregator) fold(ctx context.Context, ref domain.GameRef, season *Season) (bool, error) {
	teams, err := a.source.TeamGames(ctx, ref)
	switch {
	case errors.Is(err, ErrGameNotPlayed):
		a.logger.DebugContext(ctx, "Skipping unplayed game", slog.String("game", ref.String()))
		teams = nil
	case err != nil:
		return false, err
	}

	players, err := a.source.IndividualGames(ctx, ref)
	switch {
	case errors.Is(err, ErrGameNotPlayed):
		players = nil
	case err != nil:
		return false, err
	}

	for _, g := range teams {
		if !g.Outcome.Valid() {
			return false, apperrors.NewValidationError(
				fmt.Sprintf("team %q has no valid outcome for %s", g.Team, ref), nil).
				WithContext("outcome", string(g.Outcome))
		}
	}
	for _, g := range teams {
		season.Teams.Add(g)
	}
	for _, g := range players {
		season.Players.Add(g)
	}
	return len(teams) > 0, nil
}
