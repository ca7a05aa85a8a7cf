package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"quizstats/internal/config"
	apperrors "quizstats/internal/errors"
	"quizstats/pkg/contracts/domain"
)

// ReportWriter emits a season report and returns the paths it wrote.
type ReportWriter interface {
	Write(ctx context.Context, report domain.SeasonReport) ([]string, error)
}

// NewReportWriter returns the writer for format, placing output according to
// paths.
func NewReportWriter(format string, paths *config.Paths, logger *slog.Logger) (ReportWriter, error) {
	switch format {
	case "", config.FormatXLSX:
		return NewWorkbookWriter(paths.OutputPath, logger), nil
	case config.FormatCSV:
		return NewCSVReportWriter(paths.OutputDir, logger), nil
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown report format %q", format), nil)
	}
}

// WorkbookWriter writes the report as one xlsx workbook with a sheet per
// table.
type WorkbookWriter struct {
	path   string
	logger *slog.Logger
}

// NewWorkbookWriter creates a writer for the workbook at path.
func NewWorkbookWriter(path string, logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{path: path, logger: logger}
}

// Write saves the workbook, replacing any existing file.
func (w *WorkbookWriter) Write(ctx context.Context, report domain.SeasonReport) ([]string, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, tbl := range buildTables(report) {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), tbl.Sheet); err != nil {
				return nil, apperrors.NewStorageError("failed to name sheet", err)
			}
		} else if _, err := f.NewSheet(tbl.Sheet); err != nil {
			return nil, apperrors.NewStorageError("failed to add sheet", err)
		}

		rows := tbl.Rows
		if tbl.Header != nil {
			rows = append([][]interface{}{tbl.Header}, rows...)
		}
		for r := range rows {
			axis, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return nil, apperrors.NewStorageError("failed to address row", err)
			}
			if err := f.SetSheetRow(tbl.Sheet, axis, &rows[r]); err != nil {
				return nil, apperrors.NewStorageError("failed to write row", err).
					WithContext("sheet", tbl.Sheet)
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return nil, apperrors.NewStorageError("failed to create output directory", err)
	}
	if err := f.SaveAs(w.path); err != nil {
		return nil, apperrors.NewStorageError("failed to save workbook", err).
			WithContext("path", w.path)
	}

	w.logger.InfoContext(ctx, "Report workbook written",
		slog.String("path", w.path),
		slog.Int("teams", len(report.Teams)),
		slog.Int("players", len(report.Players)))
	return []string{w.path}, nil
}

// CSVReportWriter writes each table to its own CSV file in a directory.
type CSVReportWriter struct {
	csv    *CSVWriter
	logger *slog.Logger
}

// NewCSVReportWriter creates a writer for the directory dir.
func NewCSVReportWriter(dir string, logger *slog.Logger) *CSVReportWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVReportWriter{csv: NewCSVWriter(dir, logger), logger: logger}
}

// Write emits one CSV file per table and returns their paths.
func (w *CSVReportWriter) Write(ctx context.Context, report domain.SeasonReport) ([]string, error) {
	var written []string
	for _, tbl := range buildTables(report) {
		records := make([][]string, 0, len(tbl.Rows))
		for _, row := range tbl.Rows {
			records = append(records, formatRow(row))
		}
		var header []string
		if tbl.Header != nil {
			header = formatRow(tbl.Header)
		}

		path, err := w.csv.WriteSimpleCSV(tbl.File, header, records)
		if err != nil {
			return written, apperrors.NewStorageError("failed to write "+tbl.File, err)
		}
		written = append(written, path)
	}

	w.logger.InfoContext(ctx, "Report tables written", slog.Any("files", written))
	return written, nil
}
