package dataprocessing

import (
	"math"
	"strconv"
	"strings"

	apperrors "quizstats/internal/errors"
)

// ParseMode decides what happens to a numeric cell that does not parse.
type ParseMode string

const (
	// ParseLenient turns unparseable cells into zero.
	ParseLenient ParseMode = "lenient"
	// ParseStrict fails the scoresheet on a non-blank, non-numeric cell.
	// Blank cells are zero in both modes.
	ParseStrict ParseMode = "strict"
)

// Trim strips leading and trailing whitespace from a cell value.
func Trim(value string) string {
	return strings.TrimSpace(value)
}

// IsPlayerName reports whether a name cell holds a player. Empty cells and a
// literal 0 (an unfilled formula reference) do not.
func IsPlayerName(value string) bool {
	v := Trim(value)
	return v != "" && v != "0"
}

// CoerceInt converts a cell to an integer, returning 0 on any failure.
// Numeric text with a fractional part is truncated toward zero.
func CoerceInt(value string) int {
	v, err := parseInt(value)
	if err != nil {
		return 0
	}
	return v
}

// parseInt parses a trimmed cell value. Blank is zero.
func parseInt(value string) (int, error) {
	s := Trim(value)
	if s == "" {
		return 0, nil
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, strconv.ErrRange
	}
	return int(f), nil
}

// Coercer applies a ParseMode to numeric cells.
type Coercer struct {
	Mode ParseMode
}

// Int parses raw, read from addr. lenient is true when a non-blank cell was
// replaced by zero; in strict mode that case is a PARSING error instead.
func (c Coercer) Int(addr CellAddr, raw string) (v int, lenient bool, err error) {
	v, perr := parseInt(raw)
	if perr == nil {
		return v, false, nil
	}
	if c.Mode == ParseStrict {
		return 0, false, apperrors.NewParsingError("cell "+addr.String()+" is not a number", perr).
			WithContext("sheet", addr.Sheet).
			WithContext("cell", addr.Cell).
			WithContext("value", raw)
	}
	return 0, true, nil
}
