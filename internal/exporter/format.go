package exporter

import (
	"fmt"
	"strconv"
)

// formatFloat writes the shortest representation that round-trips.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// formatCell renders one table cell for CSV output.
func formatCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return formatInt(int64(val))
	case int64:
		return formatInt(val)
	case float64:
		return formatFloat(val)
	default:
		return fmt.Sprint(val)
	}
}

// formatRow renders a table row for CSV output.
func formatRow(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = formatCell(v)
	}
	return out
}
