// Package dataprocessing turns tournament scoresheets into season standings.
//
// The Extractor reads one scoresheet workbook per room and round using the
// cell addresses in a Layout and yields TeamGame and IndivGame records. A
// game with a 0-0 final score was not played; both views return
// ErrGameNotPlayed for it.
//
// The Aggregator walks every room and round, room-major, and folds records
// into a TeamLedger and a PlayerLedger. Ledgers create an entity the first
// time it appears and only ever add to it, so totals do not depend on the
// order games are folded in. Only first-appearance order does.
//
// TeamStandings, PlayerStandings and RosterTable derive per-game averages and
// rank the ledgers. Ranking is a stable descending sort on win percentage for
// teams and points per game for players, so ties keep first-appearance order.
//
// Usage:
//
//	discovery := files.NewDiscovery("scoresheets", "MATCH")
//	extractor := dataprocessing.NewExtractor(discovery, logger, dataprocessing.ExtractorConfig{})
//	season, err := dataprocessing.NewAggregator(cfg.Tournament, extractor, logger).Run(ctx)
//	if err != nil {
//	    return err
//	}
//	report := dataprocessing.BuildReport(season)
package dataprocessing
