// Package exporter writes season reports.
//
// WorkbookWriter produces one xlsx workbook with the sheets "Team Stats",
// "Individual Stats" and "Team Rosters". CSVReportWriter writes the same
// tables to team_stats.csv, individual_stats.csv and team_rosters.csv through
// CSVWriter, which prefixes a UTF-8 BOM so spreadsheet applications detect
// the encoding.
//
// Stats tables start with a header row whose first cell is empty; the first
// column of each row holds the team or player name. The roster table has no
// header and its rows are padded with empty cells to the longest roster.
//
// Example usage:
//
//	writer, err := exporter.NewReportWriter(cfg.Report.Format, paths, logger)
//	if err != nil {
//	    return err
//	}
//	files, err := writer.Write(ctx, report)
package exporter
