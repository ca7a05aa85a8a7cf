// Package shared holds code used across packages that belongs to no single
// one of them.
//
// The testutil subpackage provides test helpers:
//
//   - NewTestLogger returns a logger whose records can be inspected.
//   - NewWorkbook builds xlsx fixtures cell by cell.
//
// Example usage:
//
//	logger, logs := testutil.NewTestLogger()
//	testutil.NewWorkbook(t, "Final").Set("Final", "C9", 220).Save(path)
//	testutil.AssertLogContains(t, logs, slog.LevelInfo, "Tournament aggregated")
package shared
