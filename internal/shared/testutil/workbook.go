package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// Workbook builds an xlsx fixture cell by cell.
type Workbook struct {
	t testing.TB
	f *excelize.File
}

// NewWorkbook creates a workbook holding the named sheets, in order.
func NewWorkbook(t testing.TB, sheets ...string) *Workbook {
	t.Helper()

	f := excelize.NewFile()
	for i, name := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), name))
			continue
		}
		_, err := f.NewSheet(name)
		require.NoError(t, err)
	}
	return &Workbook{t: t, f: f}
}

// Set writes v to cell. A nil v leaves the cell blank.
func (w *Workbook) Set(sheet, cell string, v interface{}) *Workbook {
	w.t.Helper()
	if v != nil {
		require.NoError(w.t, w.f.SetCellValue(sheet, cell, v))
	}
	return w
}

// SetRow writes values from column A of row.
func (w *Workbook) SetRow(sheet string, row int, values ...interface{}) *Workbook {
	w.t.Helper()
	axis, err := excelize.CoordinatesToCellName(1, row)
	require.NoError(w.t, err)
	require.NoError(w.t, w.f.SetSheetRow(sheet, axis, &values))
	return w
}

// Save writes the workbook to path, closes it and returns path.
func (w *Workbook) Save(path string) string {
	w.t.Helper()
	require.NoError(w.t, w.f.SaveAs(path))
	require.NoError(w.t, w.f.Close())
	return path
}
